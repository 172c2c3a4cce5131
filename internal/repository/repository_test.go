package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mountaintravels/admin-dashboard/internal/model"
)

func TestParseID(t *testing.T) {
	id := primitive.NewObjectID()
	got, err := ParseID(" " + id.Hex() + " ")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseID("123")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestEditableFieldsDropsIdentity(t *testing.T) {
	b := model.Booking{ID: primitive.NewObjectID(), Name: "Ayesha", Amount: 10}
	b.Touch(time.Now())

	set, err := editableFields(&b, "notes")
	require.NoError(t, err)
	assert.NotContains(t, set, "_id")
	assert.NotContains(t, set, "createdAt")
	assert.NotContains(t, set, "updatedAt")
	assert.Equal(t, "Ayesha", set["name"])
}

func TestListQueryPaging(t *testing.T) {
	opts := ListQuery{Page: 3, Limit: 10}.findOptions(bson.D{{Key: "name", Value: 1}})
	require.NotNil(t, opts.Skip)
	assert.Equal(t, int64(20), *opts.Skip)
	assert.Equal(t, int64(10), *opts.Limit)

	all := ListQuery{}.findOptions(bson.D{})
	assert.Nil(t, all.Limit)
}

func TestFillTrendsCoversEveryMonth(t *testing.T) {
	start := MonthStart(time.Date(2025, 11, 17, 8, 0, 0, 0, time.UTC)).AddDate(0, -5, 0)
	trends := FillTrends(start, 6, func(y int, m time.Month) (int64, float64) {
		if y == 2025 && m == time.August {
			return 3, 1500
		}
		return 0, 0
	})

	require.Len(t, trends, 6)
	assert.Equal(t, "Jun", trends[0].Month)
	assert.Equal(t, "Nov", trends[5].Month)
	assert.Equal(t, model.MonthlyTrend{Year: 2025, Month: "Aug", Bookings: 3, Revenue: 1500}, trends[2])
}

func TestTourLifecycle(t *testing.T) {
	db := testDB(t)
	ctx := ctxT(t)
	repo := NewTourRepo(db)

	tour := &model.Tour{Title: "K2 Base Camp", Description: "Trek", Location: "Skardu", Price: 2500, Duration: 21, Category: "Trekking"}
	tour.ApplyDefaults()
	require.NoError(t, repo.Create(ctx, tour))

	got, err := repo.Get(ctx, tour.ID)
	require.NoError(t, err)
	assert.Equal(t, "K2 Base Camp", got.Title)
	assert.Equal(t, model.TourDraft, got.Status)

	updated, err := repo.SetStatus(ctx, tour.ID, model.TourPublished)
	require.NoError(t, err)
	assert.Equal(t, model.TourPublished, updated.Status)
	assert.True(t, updated.UpdatedAt.After(got.UpdatedAt) || updated.UpdatedAt.Equal(got.UpdatedAt))

	withImages, err := repo.AddImages(ctx, tour.ID, []string{"/uploads/tours/a.jpg"})
	require.NoError(t, err)
	assert.Equal(t, model.StringList{"/uploads/tours/a.jpg"}, withImages.Images)

	list, err := repo.List(ctx, ListQuery{Search: "skardu"})
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, tour.ID))
	_, err = repo.Get(ctx, tour.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, tour.ID), ErrNotFound)

	_, err = repo.SetStatus(ctx, primitive.NewObjectID(), model.TourArchived)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingSummaryAndDashboard(t *testing.T) {
	db := testDB(t)
	ctx := ctxT(t)
	tours := NewTourRepo(db)
	bookings := NewBookingRepo(db)
	dash := NewDashboardRepo(db)

	published := &model.Tour{Title: "Hunza", Status: model.TourPublished, Duration: 5, Category: "Culture"}
	draft := &model.Tour{Title: "Deosai", Status: model.TourDraft, Duration: 3, Category: "Nature"}
	require.NoError(t, tours.Create(ctx, published))
	require.NoError(t, tours.Create(ctx, draft))

	now := time.Now().UTC()
	add := func(status model.BookingStatus, amount float64, date time.Time) {
		b := &model.Booking{
			PackageName: published.Title, PackageID: published.ID.Hex(),
			Date: model.NewDate(date), EndDate: model.NewDate(date.AddDate(0, 0, 5)),
			Person: 1, Name: "C", Email: "c@example.com", Phone: "1",
			Status: status, Amount: amount,
		}
		b.ApplyDefaults()
		require.NoError(t, bookings.Create(ctx, b))
	}
	add(model.BookingConfirmed, 1000, now)
	add(model.BookingConfirmed, 500, MonthStart(now).AddDate(0, -2, 0))
	add(model.BookingPending, 700, now)
	add(model.BookingCancelled, 300, now)

	sum, err := bookings.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.BookingSummary{Total: 4, Confirmed: 2, Pending: 1, Revenue: 1500}, sum)

	ds, err := dash.Summary(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(4), ds.TotalBookings)
	assert.Equal(t, int64(1), ds.ActiveTours)
	assert.Equal(t, 1000.0, ds.MonthlyRevenue)

	stats, err := dash.TourStats(ctx, 5)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, published.ID.Hex(), stats[0].ID)
	assert.Equal(t, int64(2), stats[0].Bookings)
	assert.Equal(t, 1500.0, stats[0].Revenue)

	trends, err := dash.Trends(ctx, now, 6)
	require.NoError(t, err)
	require.Len(t, trends, 6)
	assert.Equal(t, int64(3), trends[5].Bookings)
	assert.Equal(t, 1000.0, trends[5].Revenue)
	assert.Equal(t, int64(1), trends[3].Bookings)

	filtered, err := bookings.List(ctx, ListQuery{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, 700.0, filtered[0].Amount)
}

func TestTicketAssignmentAndJoins(t *testing.T) {
	db := testDB(t)
	ctx := ctxT(t)
	tickets := NewTicketRepo(db)
	agents := NewAgentRepo(db)
	users := NewUserRepo(db)

	customer := &model.User{Name: "Usman", Email: "usman@example.com"}
	require.NoError(t, users.Create(ctx, customer))
	agent := &model.Agent{Name: "Zara", Email: "zara@example.com", Role: "Support", Department: "Ops"}
	agent.ApplyDefaults()
	require.NoError(t, agents.Create(ctx, agent))

	tk := &model.SupportTicket{Subject: "Refund", Description: "Trip cancelled", UserID: &customer.ID}
	tk.ApplyDefaults()
	require.NoError(t, tickets.Create(ctx, tk))

	_, err := tickets.Assign(ctx, tk.ID, agent.ID)
	require.NoError(t, err)
	_, err = agents.AddTicket(ctx, agent.ID, tk.ID)
	require.NoError(t, err)
	again, err := agents.AddTicket(ctx, agent.ID, tk.ID)
	require.NoError(t, err)
	assert.Len(t, again.AssignedTickets, 1)

	_, err = tickets.AddResponse(ctx, tk.ID, model.NewResponse("On it", &agent.ID))
	require.NoError(t, err)

	view, err := tickets.View(ctx, tk.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Customer)
	require.NotNil(t, view.Assignee)
	assert.Equal(t, "Usman", view.Customer.Name)
	assert.Equal(t, "Zara", view.Assignee.Name)
	require.Len(t, view.Responses, 1)

	require.NoError(t, tickets.Delete(ctx, tk.ID))
	require.NoError(t, agents.ReleaseTicket(ctx, tk.ID))
	a, err := agents.Get(ctx, agent.ID)
	require.NoError(t, err)
	assert.Empty(t, a.AssignedTickets)
}

func TestStaffUniqueEmailAndTextSearch(t *testing.T) {
	db := testDB(t)
	ctx := ctxT(t)
	repo := NewStaffRepo(db)

	s := &model.Staff{Name: "Imran Khan", Email: "imran@example.com", Role: model.RoleTourGuide, Department: "Expeditions"}
	s.ApplyDefaults()
	require.NoError(t, repo.Create(ctx, s))

	dup := &model.Staff{Name: "Other", Email: "imran@example.com", Role: model.RoleSupport}
	err := repo.Create(ctx, dup)
	assert.True(t, errors.Is(err, ErrDuplicate))

	hits, err := repo.List(ctx, ListQuery{Search: "expeditions"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, s.ID, hits[0].ID)
}

func TestInquiryAssigneeFromStaff(t *testing.T) {
	db := testDB(t)
	ctx := ctxT(t)
	inquiries := NewInquiryRepo(db)
	staff := NewStaffRepo(db)

	member := &model.Staff{Name: "Nadia", Email: "nadia@example.com", Role: model.RoleSupport}
	require.NoError(t, staff.Create(ctx, member))

	q := &model.Inquiry{Name: "Tom", Email: "tom@example.com", Phone: "1", Subject: "Visa", Message: "Help"}
	q.ApplyDefaults()
	require.NoError(t, inquiries.Create(ctx, q))
	_, err := inquiries.Assign(ctx, q.ID, member.ID)
	require.NoError(t, err)

	rows, err := inquiries.List(ctx, ListQuery{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Assignee)
	assert.Equal(t, "Nadia", rows[0].Assignee.Name)
}

func TestAdminProfile(t *testing.T) {
	db := testDB(t)
	ctx := ctxT(t)
	repo := NewAdminRepo(db)

	a, err := repo.Create(ctx, "Site Admin", " Admin@Example.com ", "hash")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", a.Email)

	_, err = repo.Create(ctx, "Twin Admin", "admin@example.com", "hash")
	assert.ErrorIs(t, err, ErrDuplicate)

	found, err := repo.GetByEmail(ctx, "ADMIN@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hash", found.PasswordHash)

	avatar := "/uploads/avatars/x.png"
	updated, err := repo.UpdateProfile(ctx, a.ID, ProfileChange{Avatar: &avatar})
	require.NoError(t, err)
	assert.Equal(t, avatar, updated.Avatar)
	assert.Equal(t, "Site Admin", updated.Name)
}
