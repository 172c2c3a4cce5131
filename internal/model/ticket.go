package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TicketStatus is shared by support tickets and inquiries.
type TicketStatus string

const (
	TicketPending    TicketStatus = "Pending"
	TicketInProgress TicketStatus = "In_Progress"
	TicketResolved   TicketStatus = "Resolved"
	TicketClosed     TicketStatus = "Closed"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketPending, TicketInProgress, TicketResolved, TicketClosed:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityNormal Priority = "Normal"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// SupportTicket is a customer problem report routed to an agent.
type SupportTicket struct {
	ID          primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	Subject     string              `json:"subject" bson:"subject" validate:"required"`
	Description string              `json:"description" bson:"description" validate:"required"`
	Status      TicketStatus        `json:"status" bson:"status" validate:"omitempty,enum"`
	Priority    Priority            `json:"priority" bson:"priority" validate:"omitempty,enum"`
	UserID      *primitive.ObjectID `json:"userId,omitempty" bson:"userId,omitempty"`
	AssignedTo  *primitive.ObjectID `json:"assignedTo,omitempty" bson:"assignedTo,omitempty"`
	Responses   []Response          `json:"responses" bson:"responses"`
	Timestamps  `bson:",inline"`
}

func (t *SupportTicket) ApplyDefaults() {
	if t.Status == "" {
		t.Status = TicketPending
	}
	if t.Priority == "" {
		t.Priority = PriorityNormal
	}
	if t.Responses == nil {
		t.Responses = []Response{}
	}
}

// TicketView is a ticket with its customer and assignee joined in.
type TicketView struct {
	SupportTicket `bson:",inline"`
	Customer      *PersonRef `json:"customer,omitempty" bson:"customer,omitempty"`
	Assignee      *PersonRef `json:"assignee,omitempty" bson:"assignee,omitempty"`
}
