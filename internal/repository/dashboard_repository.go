package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mountaintravels/admin-dashboard/internal/model"
)

// DashboardRepo runs the read-only aggregations behind the dashboard.
type DashboardRepo struct {
	bookings *mongo.Collection
	tours    *mongo.Collection
}

func NewDashboardRepo(db *mongo.Database) *DashboardRepo {
	return &DashboardRepo{
		bookings: db.Collection(BookingsCollection),
		tours:    db.Collection(ToursCollection),
	}
}

// MonthStart returns midnight UTC on the first day of t's month.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Summary counts bookings and published tours; revenue covers confirmed
// bookings dated on or after the first day of now's month.
func (r *DashboardRepo) Summary(ctx context.Context, now time.Time) (model.DashboardSummary, error) {
	var (
		s   model.DashboardSummary
		err error
	)
	if s.TotalBookings, err = r.bookings.CountDocuments(ctx, bson.M{}); err != nil {
		return s, fmt.Errorf("count bookings: %w", err)
	}
	if s.ConfirmedBookings, err = r.bookings.CountDocuments(ctx, bson.M{"status": model.BookingConfirmed}); err != nil {
		return s, fmt.Errorf("count confirmed: %w", err)
	}
	if s.PendingBookings, err = r.bookings.CountDocuments(ctx, bson.M{"status": model.BookingPending}); err != nil {
		return s, fmt.Errorf("count pending: %w", err)
	}
	if s.ActiveTours, err = r.tours.CountDocuments(ctx, bson.M{"status": model.TourPublished}); err != nil {
		return s, fmt.Errorf("count tours: %w", err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status": model.BookingConfirmed,
			"date":   bson.M{"$gte": MonthStart(now)},
		}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "revenue": bson.M{"$sum": "$amount"}}}},
	}
	rows, err := aggregateAll[struct {
		Revenue float64 `bson:"revenue"`
	}](ctx, r.bookings, pipeline)
	if err != nil {
		return s, fmt.Errorf("monthly revenue: %w", err)
	}
	if len(rows) > 0 {
		s.MonthlyRevenue = rows[0].Revenue
	}
	return s, nil
}

// TourStats returns the top published tours by confirmed revenue. Bookings
// reference tours through packageId, which holds the tour id as hex.
func (r *DashboardRepo) TourStats(ctx context.Context, limit int64) ([]model.TourStat, error) {
	if limit <= 0 {
		limit = 5
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": model.TourPublished}}},
		{{Key: "$lookup", Value: bson.M{
			"from": BookingsCollection,
			"let":  bson.M{"tid": bson.M{"$toString": "$_id"}},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$packageId", "$$tid"}},
					bson.M{"$eq": bson.A{"$status", model.BookingConfirmed}},
				}}}},
				bson.M{"$group": bson.M{"_id": nil, "count": bson.M{"$sum": 1}, "revenue": bson.M{"$sum": "$amount"}}},
			},
			"as": "stats",
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":      bson.M{"$toString": "$_id"},
			"title":    1,
			"bookings": bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$stats.count", 0}}, 0}},
			"revenue":  bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$stats.revenue", 0}}, 0}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "revenue", Value: -1}, {Key: "bookings", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}
	return aggregateAll[model.TourStat](ctx, r.tours, pipeline)
}

// Trends groups bookings by calendar month for the `months` months ending
// with now's month, oldest first. Empty months are included with zeros.
func (r *DashboardRepo) Trends(ctx context.Context, now time.Time, months int) ([]model.MonthlyTrend, error) {
	if months <= 0 {
		months = 6
	}
	start := MonthStart(now).AddDate(0, -(months - 1), 0)
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"date": bson.M{"$gte": start}}}},
		{{Key: "$group", Value: bson.M{
			"_id":      bson.M{"year": bson.M{"$year": "$date"}, "month": bson.M{"$month": "$date"}},
			"bookings": bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$status", model.BookingConfirmed}}, "$amount", 0,
			}}},
		}}},
	}
	rows, err := aggregateAll[struct {
		ID struct {
			Year  int `bson:"year"`
			Month int `bson:"month"`
		} `bson:"_id"`
		Bookings int64   `bson:"bookings"`
		Revenue  float64 `bson:"revenue"`
	}](ctx, r.bookings, pipeline)
	if err != nil {
		return nil, fmt.Errorf("booking trends: %w", err)
	}

	type ym struct{ y, m int }
	byMonth := make(map[ym]model.MonthlyTrend, len(rows))
	for _, row := range rows {
		byMonth[ym{row.ID.Year, row.ID.Month}] = model.MonthlyTrend{Bookings: row.Bookings, Revenue: row.Revenue}
	}
	return FillTrends(start, months, func(y int, m time.Month) (int64, float64) {
		t := byMonth[ym{y, int(m)}]
		return t.Bookings, t.Revenue
	}), nil
}

// FillTrends builds one entry per month starting at start.
func FillTrends(start time.Time, months int, lookup func(int, time.Month) (int64, float64)) []model.MonthlyTrend {
	out := make([]model.MonthlyTrend, 0, months)
	for i := 0; i < months; i++ {
		t := start.AddDate(0, i, 0)
		bookings, revenue := lookup(t.Year(), t.Month())
		out = append(out, model.MonthlyTrend{
			Year:     t.Year(),
			Month:    t.Month().String()[:3],
			Bookings: bookings,
			Revenue:  revenue,
		})
	}
	return out
}
