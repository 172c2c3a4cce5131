package handler_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mountaintravels/admin-dashboard/internal/model"
	"github.com/mountaintravels/admin-dashboard/internal/queue"
	"github.com/mountaintravels/admin-dashboard/internal/repository"
)

// mem is an ordered in-memory collection standing in for a Mongo repository.
type mem[T any] struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]T
	order []primitive.ObjectID
}

func newMem[T any]() *mem[T] { return &mem[T]{items: map[primitive.ObjectID]T{}} }

func (m *mem[T]) insert(id primitive.ObjectID, v T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id] = v
	m.order = append(m.order, id)
}

func (m *mem[T]) get(id primitive.ObjectID) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &v, nil
}

func (m *mem[T]) modify(id primitive.ObjectID, fn func(*T)) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	fn(&v)
	m.items[id] = v
	return &v, nil
}

func (m *mem[T]) remove(id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.items, id)
	for i, o := range m.order {
		if o == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mem[T]) all() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]T, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.items[id])
	}
	return out
}

func (m *mem[T]) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func stamp(ts *model.Timestamps) { ts.Touch(time.Now().UTC()) }

type memTours struct{ *mem[model.Tour] }

func (s memTours) List(context.Context, repository.ListQuery) ([]model.TourSummary, error) {
	var out []model.TourSummary
	for _, t := range s.all() {
		out = append(out, model.TourSummary{ID: t.ID, Title: t.Title, Location: t.Location, Price: t.Price, Status: t.Status})
	}
	return out, nil
}
func (s memTours) Get(_ context.Context, id primitive.ObjectID) (*model.Tour, error) { return s.get(id) }
func (s memTours) Create(_ context.Context, t *model.Tour) error {
	t.ID = primitive.NewObjectID()
	stamp(&t.Timestamps)
	s.insert(t.ID, *t)
	return nil
}
func (s memTours) Update(_ context.Context, id primitive.ObjectID, t *model.Tour) (*model.Tour, error) {
	return s.modify(id, func(old *model.Tour) {
		created := old.CreatedAt
		*old = *t
		old.ID, old.CreatedAt = id, created
	})
}
func (s memTours) SetStatus(_ context.Context, id primitive.ObjectID, st model.TourStatus) (*model.Tour, error) {
	return s.modify(id, func(t *model.Tour) { t.Status = st })
}
func (s memTours) AddImages(_ context.Context, id primitive.ObjectID, paths []string) (*model.Tour, error) {
	return s.modify(id, func(t *model.Tour) { t.Images = append(t.Images, paths...) })
}
func (s memTours) Delete(_ context.Context, id primitive.ObjectID) error { return s.remove(id) }

type memBookings struct{ *mem[model.Booking] }

func (s memBookings) List(context.Context, repository.ListQuery) ([]model.Booking, error) {
	return s.all(), nil
}
func (s memBookings) Get(_ context.Context, id primitive.ObjectID) (*model.Booking, error) {
	return s.get(id)
}
func (s memBookings) Create(_ context.Context, b *model.Booking) error {
	b.ID = primitive.NewObjectID()
	stamp(&b.Timestamps)
	s.insert(b.ID, *b)
	return nil
}
func (s memBookings) Update(_ context.Context, id primitive.ObjectID, b *model.Booking) (*model.Booking, error) {
	return s.modify(id, func(old *model.Booking) { *old = *b; old.ID = id })
}
func (s memBookings) SetStatus(_ context.Context, id primitive.ObjectID, st model.BookingStatus) (*model.Booking, error) {
	return s.modify(id, func(b *model.Booking) { b.Status = st })
}
func (s memBookings) Delete(_ context.Context, id primitive.ObjectID) error { return s.remove(id) }
func (s memBookings) Summary(context.Context) (model.BookingSummary, error) {
	var out model.BookingSummary
	for _, b := range s.all() {
		out.Total++
		switch b.Status {
		case model.BookingConfirmed:
			out.Confirmed++
			out.Revenue += b.Amount
		case model.BookingPending:
			out.Pending++
		}
	}
	return out, nil
}

type memTickets struct{ *mem[model.SupportTicket] }

func (s memTickets) List(context.Context, repository.ListQuery) ([]model.TicketView, error) {
	var out []model.TicketView
	for _, t := range s.all() {
		out = append(out, model.TicketView{SupportTicket: t})
	}
	return out, nil
}
func (s memTickets) View(_ context.Context, id primitive.ObjectID) (*model.TicketView, error) {
	t, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return &model.TicketView{SupportTicket: *t}, nil
}
func (s memTickets) Get(_ context.Context, id primitive.ObjectID) (*model.SupportTicket, error) {
	return s.get(id)
}
func (s memTickets) Create(_ context.Context, t *model.SupportTicket) error {
	t.ID = primitive.NewObjectID()
	stamp(&t.Timestamps)
	s.insert(t.ID, *t)
	return nil
}
func (s memTickets) Update(_ context.Context, id primitive.ObjectID, t *model.SupportTicket) (*model.SupportTicket, error) {
	return s.modify(id, func(old *model.SupportTicket) {
		old.Subject, old.Description, old.Status, old.Priority = t.Subject, t.Description, t.Status, t.Priority
	})
}
func (s memTickets) SetStatus(_ context.Context, id primitive.ObjectID, st model.TicketStatus) (*model.SupportTicket, error) {
	return s.modify(id, func(t *model.SupportTicket) { t.Status = st })
}
func (s memTickets) SetPriority(_ context.Context, id primitive.ObjectID, p model.Priority) (*model.SupportTicket, error) {
	return s.modify(id, func(t *model.SupportTicket) { t.Priority = p })
}
func (s memTickets) Assign(_ context.Context, id, agent primitive.ObjectID) (*model.SupportTicket, error) {
	return s.modify(id, func(t *model.SupportTicket) { t.AssignedTo = &agent })
}
func (s memTickets) AddResponse(_ context.Context, id primitive.ObjectID, r model.Response) (*model.SupportTicket, error) {
	return s.modify(id, func(t *model.SupportTicket) { t.Responses = append(t.Responses, r) })
}
func (s memTickets) Delete(_ context.Context, id primitive.ObjectID) error { return s.remove(id) }

type memInquiries struct{ *mem[model.Inquiry] }

func (s memInquiries) List(context.Context, repository.ListQuery) ([]model.InquiryView, error) {
	var out []model.InquiryView
	for _, q := range s.all() {
		out = append(out, model.InquiryView{Inquiry: q})
	}
	return out, nil
}
func (s memInquiries) View(_ context.Context, id primitive.ObjectID) (*model.InquiryView, error) {
	q, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return &model.InquiryView{Inquiry: *q}, nil
}
func (s memInquiries) Create(_ context.Context, q *model.Inquiry) error {
	q.ID = primitive.NewObjectID()
	stamp(&q.Timestamps)
	s.insert(q.ID, *q)
	return nil
}
func (s memInquiries) SetStatus(_ context.Context, id primitive.ObjectID, st model.TicketStatus) (*model.Inquiry, error) {
	return s.modify(id, func(q *model.Inquiry) { q.Status = st })
}
func (s memInquiries) Assign(_ context.Context, id, who primitive.ObjectID) (*model.Inquiry, error) {
	return s.modify(id, func(q *model.Inquiry) { q.AssignedTo = &who })
}
func (s memInquiries) AddResponse(_ context.Context, id primitive.ObjectID, r model.Response) (*model.Inquiry, error) {
	return s.modify(id, func(q *model.Inquiry) { q.Responses = append(q.Responses, r) })
}
func (s memInquiries) Delete(_ context.Context, id primitive.ObjectID) error { return s.remove(id) }

type memFeedback struct{ *mem[model.Feedback] }

func (s memFeedback) List(context.Context, repository.ListQuery) ([]model.FeedbackView, error) {
	var out []model.FeedbackView
	for _, f := range s.all() {
		out = append(out, model.FeedbackView{Feedback: f})
	}
	return out, nil
}
func (s memFeedback) Get(_ context.Context, id primitive.ObjectID) (*model.Feedback, error) {
	return s.get(id)
}
func (s memFeedback) Create(_ context.Context, f *model.Feedback) error {
	f.ID = primitive.NewObjectID()
	stamp(&f.Timestamps)
	s.insert(f.ID, *f)
	return nil
}
func (s memFeedback) Update(_ context.Context, id primitive.ObjectID, f *model.Feedback) (*model.Feedback, error) {
	return s.modify(id, func(old *model.Feedback) {
		old.Message, old.Status, old.Category = f.Message, f.Status, f.Category
	})
}
func (s memFeedback) SetStatus(_ context.Context, id primitive.ObjectID, st model.FeedbackStatus) (*model.Feedback, error) {
	return s.modify(id, func(f *model.Feedback) { f.Status = st })
}
func (s memFeedback) AddResponse(_ context.Context, id primitive.ObjectID, r model.Response) (*model.Feedback, error) {
	return s.modify(id, func(f *model.Feedback) { f.Responses = append(f.Responses, r) })
}
func (s memFeedback) Delete(_ context.Context, id primitive.ObjectID) error { return s.remove(id) }

type memStaff struct{ *mem[model.Staff] }

func (s memStaff) List(context.Context, repository.ListQuery) ([]model.Staff, error) {
	return s.all(), nil
}
func (s memStaff) Get(_ context.Context, id primitive.ObjectID) (*model.Staff, error) {
	return s.get(id)
}
func (s memStaff) Create(_ context.Context, m *model.Staff) error {
	for _, o := range s.all() {
		if strings.EqualFold(o.Email, m.Email) {
			return repository.ErrDuplicate
		}
	}
	m.ID = primitive.NewObjectID()
	stamp(&m.Timestamps)
	s.insert(m.ID, *m)
	return nil
}
func (s memStaff) Update(_ context.Context, id primitive.ObjectID, m *model.Staff) (*model.Staff, error) {
	return s.modify(id, func(old *model.Staff) { *old = *m; old.ID = id })
}
func (s memStaff) SetStatus(_ context.Context, id primitive.ObjectID, st model.Availability) (*model.Staff, error) {
	return s.modify(id, func(m *model.Staff) { m.Status = st })
}
func (s memStaff) Delete(_ context.Context, id primitive.ObjectID) error { return s.remove(id) }

type memAgents struct{ *mem[model.Agent] }

func (s memAgents) List(_ context.Context, _ repository.ListQuery, available *bool) ([]model.Agent, error) {
	var out []model.Agent
	for _, a := range s.all() {
		if available == nil || (a.IsAvailable != nil && *a.IsAvailable == *available) {
			out = append(out, a)
		}
	}
	return out, nil
}
func (s memAgents) Get(_ context.Context, id primitive.ObjectID) (*model.Agent, error) {
	return s.get(id)
}
func (s memAgents) Create(_ context.Context, a *model.Agent) error {
	a.ID = primitive.NewObjectID()
	stamp(&a.Timestamps)
	s.insert(a.ID, *a)
	return nil
}
func (s memAgents) Update(_ context.Context, id primitive.ObjectID, a *model.Agent) (*model.Agent, error) {
	return s.modify(id, func(old *model.Agent) {
		keep := old.IsAvailable
		tickets := old.AssignedTickets
		*old = *a
		old.ID, old.AssignedTickets = id, tickets
		if a.IsAvailable == nil {
			old.IsAvailable = keep
		}
	})
}
func (s memAgents) SetStatus(_ context.Context, id primitive.ObjectID, st model.Availability) (*model.Agent, error) {
	return s.modify(id, func(a *model.Agent) { a.Status = st })
}
func (s memAgents) SetAvailability(_ context.Context, id primitive.ObjectID, v bool) (*model.Agent, error) {
	return s.modify(id, func(a *model.Agent) { a.IsAvailable = &v })
}
func (s memAgents) AddTicket(_ context.Context, id, ticket primitive.ObjectID) (*model.Agent, error) {
	return s.modify(id, func(a *model.Agent) {
		for _, t := range a.AssignedTickets {
			if t == ticket {
				return
			}
		}
		a.AssignedTickets = append(a.AssignedTickets, ticket)
	})
}
func (s memAgents) ReleaseTicket(_ context.Context, ticket primitive.ObjectID) error {
	for _, a := range s.all() {
		_, _ = s.modify(a.ID, func(a *model.Agent) {
			kept := a.AssignedTickets[:0]
			for _, t := range a.AssignedTickets {
				if t != ticket {
					kept = append(kept, t)
				}
			}
			a.AssignedTickets = kept
		})
	}
	return nil
}
func (s memAgents) Delete(_ context.Context, id primitive.ObjectID) error { return s.remove(id) }

type memUsers struct{ *mem[model.User] }

func (s memUsers) List(context.Context, repository.ListQuery) ([]model.User, error) {
	return s.all(), nil
}
func (s memUsers) Get(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	return s.get(id)
}
func (s memUsers) Create(_ context.Context, u *model.User) error {
	u.ID = primitive.NewObjectID()
	stamp(&u.Timestamps)
	s.insert(u.ID, *u)
	return nil
}
func (s memUsers) Exists(_ context.Context, id primitive.ObjectID) (bool, error) {
	_, err := s.get(id)
	return err == nil, nil
}
func (s memUsers) Delete(_ context.Context, id primitive.ObjectID) error { return s.remove(id) }

type memAdmins struct{ *mem[model.Admin] }

func (s memAdmins) Create(_ context.Context, name, email, hash string) (*model.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, a := range s.all() {
		if a.Email == email {
			return nil, repository.ErrDuplicate
		}
	}
	a := model.Admin{ID: primitive.NewObjectID(), Name: name, Email: email, PasswordHash: hash}
	stamp(&a.Timestamps)
	s.insert(a.ID, a)
	return &a, nil
}
func (s memAdmins) GetByEmail(_ context.Context, email string) (*model.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, a := range s.all() {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}
func (s memAdmins) GetByID(_ context.Context, id primitive.ObjectID) (*model.Admin, error) {
	return s.get(id)
}
func (s memAdmins) UpdateProfile(_ context.Context, id primitive.ObjectID, ch repository.ProfileChange) (*model.Admin, error) {
	return s.modify(id, func(a *model.Admin) {
		if ch.Name != nil {
			a.Name = *ch.Name
		}
		if ch.Email != nil {
			a.Email = *ch.Email
		}
		if ch.PasswordHash != nil {
			a.PasswordHash = *ch.PasswordHash
		}
		if ch.Avatar != nil {
			a.Avatar = *ch.Avatar
		}
	})
}

// memSessions satisfies both the handler's SessionStore and the
// middleware's RevocationChecker.
type memSessions struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func (s *memSessions) Revoke(_ context.Context, jti string, exp time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[jti] = exp
	return nil
}

func (s *memSessions) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[jti]
	return ok, nil
}

type fakeStats struct {
	summary model.DashboardSummary
	months  int
}

func (f *fakeStats) Summary(context.Context, time.Time) (model.DashboardSummary, error) {
	return f.summary, nil
}
func (f *fakeStats) TourStats(context.Context, int64) ([]model.TourStat, error) {
	return []model.TourStat{{ID: "t1", Title: "Fairy Meadows", Bookings: 3, Revenue: 2700}}, nil
}
func (f *fakeStats) Trends(_ context.Context, now time.Time, months int) ([]model.MonthlyTrend, error) {
	f.months = months
	return repository.FillTrends(repository.MonthStart(now).AddDate(0, -(months-1), 0), months,
		func(int, time.Month) (int64, float64) { return 0, 0 }), nil
}

// recorder keeps published events.
type recorder struct {
	mu     sync.Mutex
	events []queue.Event
}

func (r *recorder) Publish(_ context.Context, ev queue.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) Close() error { return nil }

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}
