// Package queue defines the domain events the dashboard emits and the
// publishers and consumer that move them over a message broker.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// Event types.
const (
	BookingStatusChanged = "booking.status_changed"
	BookingMessage       = "booking.message"
	TicketAssigned       = "ticket.assigned"
	TicketResponded      = "ticket.responded"
	InquiryAssigned      = "inquiry.assigned"
	InquiryResponded     = "inquiry.responded"
)

// Event is the JSON envelope published for every state change worth telling
// other systems about. Subject is the id of the document that changed.
type Event struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Subject    string            `json:"subject"`
	OccurredAt time.Time         `json:"occurredAt"`
	Data       map[string]string `json:"data,omitempty"`
}

func NewEvent(typ, subject string, data map[string]string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       typ,
		Subject:    subject,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}
