package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingPending   BookingStatus = "pending"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingConfirmed, BookingPending, BookingCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "paid"
	PaymentPartial  PaymentStatus = "partial"
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPaid, PaymentPartial, PaymentUnpaid, PaymentRefunded:
		return true
	}
	return false
}

// Booking is a customer's reservation against a tour package.
type Booking struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	PackageName   string             `json:"packageName" bson:"packageName" validate:"required"`
	PackageID     string             `json:"packageId" bson:"packageId" validate:"required"`
	Date          Date               `json:"date" bson:"date" validate:"required"`
	EndDate       Date               `json:"endDate" bson:"endDate" validate:"required"`
	Person        int                `json:"person" bson:"person" validate:"min=1"`
	Name          string             `json:"name" bson:"name" validate:"required"`
	Email         string             `json:"email" bson:"email" validate:"required,email"`
	Phone         string             `json:"phone" bson:"phone" validate:"required"`
	Status        BookingStatus      `json:"status" bson:"status" validate:"omitempty,enum"`
	PaymentStatus PaymentStatus      `json:"paymentStatus" bson:"paymentStatus" validate:"omitempty,enum"`
	Amount        float64            `json:"amount" bson:"amount" validate:"min=0"`
	Currency      string             `json:"currency" bson:"currency" validate:"omitempty,len=3"`
	Notes         string             `json:"notes,omitempty" bson:"notes,omitempty"`
	Timestamps    `bson:",inline"`
}

func (b *Booking) ApplyDefaults() {
	if b.Status == "" {
		b.Status = BookingPending
	}
	if b.PaymentStatus == "" {
		b.PaymentStatus = PaymentUnpaid
	}
	if b.Currency == "" {
		b.Currency = "USD"
	}
}

// DatesInOrder reports whether the trip does not end before it starts.
func (b *Booking) DatesInOrder() bool {
	return !b.EndDate.Before(b.Date.Time)
}

// BookingSummary backs the bookings page header.
type BookingSummary struct {
	Total     int64   `json:"total"`
	Confirmed int64   `json:"confirmed"`
	Pending   int64   `json:"pending"`
	Revenue   float64 `json:"revenue"`
}
