package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FeedbackStatus string

const (
	FeedbackPending  FeedbackStatus = "Pending"
	FeedbackApproved FeedbackStatus = "Approved"
	FeedbackRejected FeedbackStatus = "Rejected"
)

func (s FeedbackStatus) Valid() bool {
	switch s {
	case FeedbackPending, FeedbackApproved, FeedbackRejected:
		return true
	}
	return false
}

type FeedbackCategory string

const (
	CategoryGeneral     FeedbackCategory = "General"
	CategoryBug         FeedbackCategory = "Bug"
	CategoryFeature     FeedbackCategory = "Feature Request"
	CategoryPerformance FeedbackCategory = "Performance"
)

func (c FeedbackCategory) Valid() bool {
	switch c {
	case CategoryGeneral, CategoryBug, CategoryFeature, CategoryPerformance:
		return true
	}
	return false
}

type Feedback struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	User       primitive.ObjectID `json:"user" bson:"user" validate:"required"`
	Message    string             `json:"message" bson:"message" validate:"required"`
	Date       Date               `json:"date" bson:"date"`
	Status     FeedbackStatus     `json:"status" bson:"status" validate:"omitempty,enum"`
	Category   FeedbackCategory   `json:"category" bson:"category" validate:"omitempty,enum"`
	Responses  []Response         `json:"responses" bson:"responses"`
	Timestamps `bson:",inline"`
}

func (f *Feedback) ApplyDefaults() {
	if f.Status == "" {
		f.Status = FeedbackPending
	}
	if f.Category == "" {
		f.Category = CategoryGeneral
	}
	if f.Responses == nil {
		f.Responses = []Response{}
	}
}

// FeedbackView is a feedback entry with its author joined in.
type FeedbackView struct {
	Feedback `bson:",inline"`
	Author   *PersonRef `json:"author,omitempty" bson:"author,omitempty"`
}
