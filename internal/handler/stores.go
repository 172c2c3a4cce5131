package handler

import (
	"context"
	"mime/multipart"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mountaintravels/admin-dashboard/internal/model"
	"github.com/mountaintravels/admin-dashboard/internal/repository"
)

type AdminStore interface {
	Create(ctx context.Context, name, email, passwordHash string) (*model.Admin, error)
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Admin, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, ch repository.ProfileChange) (*model.Admin, error)
}

// SessionStore records logged-out session ids.
type SessionStore interface {
	Revoke(ctx context.Context, jti string, exp time.Time) error
}

type TourStore interface {
	List(ctx context.Context, q repository.ListQuery) ([]model.TourSummary, error)
	Get(ctx context.Context, id primitive.ObjectID) (*model.Tour, error)
	Create(ctx context.Context, t *model.Tour) error
	Update(ctx context.Context, id primitive.ObjectID, t *model.Tour) (*model.Tour, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, s model.TourStatus) (*model.Tour, error)
	AddImages(ctx context.Context, id primitive.ObjectID, paths []string) (*model.Tour, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type BookingStore interface {
	List(ctx context.Context, q repository.ListQuery) ([]model.Booking, error)
	Get(ctx context.Context, id primitive.ObjectID) (*model.Booking, error)
	Create(ctx context.Context, b *model.Booking) error
	Update(ctx context.Context, id primitive.ObjectID, b *model.Booking) (*model.Booking, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, s model.BookingStatus) (*model.Booking, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Summary(ctx context.Context) (model.BookingSummary, error)
}

type TicketStore interface {
	List(ctx context.Context, q repository.ListQuery) ([]model.TicketView, error)
	View(ctx context.Context, id primitive.ObjectID) (*model.TicketView, error)
	Get(ctx context.Context, id primitive.ObjectID) (*model.SupportTicket, error)
	Create(ctx context.Context, t *model.SupportTicket) error
	Update(ctx context.Context, id primitive.ObjectID, t *model.SupportTicket) (*model.SupportTicket, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, s model.TicketStatus) (*model.SupportTicket, error)
	SetPriority(ctx context.Context, id primitive.ObjectID, p model.Priority) (*model.SupportTicket, error)
	Assign(ctx context.Context, id, agentID primitive.ObjectID) (*model.SupportTicket, error)
	AddResponse(ctx context.Context, id primitive.ObjectID, r model.Response) (*model.SupportTicket, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type InquiryStore interface {
	List(ctx context.Context, q repository.ListQuery) ([]model.InquiryView, error)
	View(ctx context.Context, id primitive.ObjectID) (*model.InquiryView, error)
	Create(ctx context.Context, q *model.Inquiry) error
	SetStatus(ctx context.Context, id primitive.ObjectID, s model.TicketStatus) (*model.Inquiry, error)
	Assign(ctx context.Context, id, assignee primitive.ObjectID) (*model.Inquiry, error)
	AddResponse(ctx context.Context, id primitive.ObjectID, r model.Response) (*model.Inquiry, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type FeedbackStore interface {
	List(ctx context.Context, q repository.ListQuery) ([]model.FeedbackView, error)
	Get(ctx context.Context, id primitive.ObjectID) (*model.Feedback, error)
	Create(ctx context.Context, f *model.Feedback) error
	Update(ctx context.Context, id primitive.ObjectID, f *model.Feedback) (*model.Feedback, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, s model.FeedbackStatus) (*model.Feedback, error)
	AddResponse(ctx context.Context, id primitive.ObjectID, r model.Response) (*model.Feedback, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type StaffStore interface {
	List(ctx context.Context, q repository.ListQuery) ([]model.Staff, error)
	Get(ctx context.Context, id primitive.ObjectID) (*model.Staff, error)
	Create(ctx context.Context, s *model.Staff) error
	Update(ctx context.Context, id primitive.ObjectID, s *model.Staff) (*model.Staff, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, s model.Availability) (*model.Staff, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type AgentStore interface {
	List(ctx context.Context, q repository.ListQuery, available *bool) ([]model.Agent, error)
	Get(ctx context.Context, id primitive.ObjectID) (*model.Agent, error)
	Create(ctx context.Context, a *model.Agent) error
	Update(ctx context.Context, id primitive.ObjectID, a *model.Agent) (*model.Agent, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, s model.Availability) (*model.Agent, error)
	SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) (*model.Agent, error)
	AddTicket(ctx context.Context, id, ticketID primitive.ObjectID) (*model.Agent, error)
	ReleaseTicket(ctx context.Context, ticketID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type UserStore interface {
	List(ctx context.Context, q repository.ListQuery) ([]model.User, error)
	Get(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type DashboardStore interface {
	Summary(ctx context.Context, now time.Time) (model.DashboardSummary, error)
	TourStats(ctx context.Context, limit int64) ([]model.TourStat, error)
	Trends(ctx context.Context, now time.Time, months int) ([]model.MonthlyTrend, error)
}

// ImageStore saves uploaded images and returns their public paths.
type ImageStore interface {
	SaveImage(fh *multipart.FileHeader, sub string) (string, error)
	Remove(publicPath string) error
}
