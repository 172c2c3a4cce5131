package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Inquiry is a contact-form message from a prospective customer.
type Inquiry struct {
	ID         primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	Name       string              `json:"name" bson:"name" validate:"required"`
	Email      string              `json:"email" bson:"email" validate:"required,email"`
	Phone      string              `json:"phone" bson:"phone" validate:"required"`
	Subject    string              `json:"subject" bson:"subject" validate:"required"`
	Message    string              `json:"message" bson:"message" validate:"required"`
	Status     TicketStatus        `json:"status" bson:"status" validate:"omitempty,enum"`
	Priority   Priority            `json:"priority" bson:"priority" validate:"omitempty,enum"`
	UserID     *primitive.ObjectID `json:"userId,omitempty" bson:"userId,omitempty"`
	AssignedTo *primitive.ObjectID `json:"assignedTo,omitempty" bson:"assignedTo,omitempty"`
	Responses  []Response          `json:"responses" bson:"responses"`
	Timestamps `bson:",inline"`
}

func (q *Inquiry) ApplyDefaults() {
	if q.Status == "" {
		q.Status = TicketPending
	}
	if q.Priority == "" {
		q.Priority = PriorityNormal
	}
	if q.Responses == nil {
		q.Responses = []Response{}
	}
}

// InquiryRow is the flattened shape of the inquiries table.
type InquiryRow struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Subject    string       `json:"subject"`
	Date       string       `json:"date"`
	Status     TicketStatus `json:"status"`
	Priority   Priority     `json:"priority"`
	AssignedTo string       `json:"assignedTo"`
}

// Row formats the inquiry for the list view. assignee is the joined name, if any.
func (q Inquiry) Row(assignee string) InquiryRow {
	if assignee == "" {
		assignee = "Unassigned"
	}
	return InquiryRow{
		ID:         q.ID.Hex(),
		Name:       q.Name,
		Email:      q.Email,
		Subject:    q.Subject,
		Date:       q.CreatedAt.UTC().Format("2006-01-02"),
		Status:     q.Status,
		Priority:   q.Priority,
		AssignedTo: assignee,
	}
}

// InquiryView is an inquiry with its assignee joined in.
type InquiryView struct {
	Inquiry  `bson:",inline"`
	Assignee *PersonRef `json:"assignee,omitempty" bson:"assignee,omitempty"`
}
