package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mountaintravels/admin-dashboard/internal/model"
)

// BookingRepo persists bookings.
type BookingRepo struct{ coll *mongo.Collection }

func NewBookingRepo(db *mongo.Database) *BookingRepo {
	return &BookingRepo{coll: db.Collection(BookingsCollection)}
}

var bookingSorts = map[string]bson.D{
	"date":        {{Key: "date", Value: -1}},
	"name":        {{Key: "name", Value: 1}},
	"packageName": {{Key: "packageName", Value: 1}},
	"createdAt":   {{Key: "createdAt", Value: -1}},
	"amount":      {{Key: "amount", Value: -1}},
}

// List filters by status (ignored when "all") and by a case-insensitive
// search over package name and customer contact fields.
func (r *BookingRepo) List(ctx context.Context, q ListQuery) ([]model.Booking, error) {
	filter := bson.M{}
	if q.Status != "" && q.Status != "all" {
		filter["status"] = q.Status
	}
	if q.Search != "" {
		filter["$or"] = anyFieldMatches(q.Search, "packageName", "name", "email", "phone")
	}
	opts := q.findOptions(sortBy(q.SortBy, bookingSorts, bookingSorts["date"]))
	return findAll[model.Booking](ctx, r.coll, filter, opts)
}

func (r *BookingRepo) Get(ctx context.Context, id primitive.ObjectID) (*model.Booking, error) {
	return findByID[model.Booking](ctx, r.coll, id)
}

func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	b.ID = primitive.NewObjectID()
	b.Touch(time.Now().UTC())
	return insertOne(ctx, r.coll, b)
}

func (r *BookingRepo) Update(ctx context.Context, id primitive.ObjectID, b *model.Booking) (*model.Booking, error) {
	set, err := editableFields(b)
	if err != nil {
		return nil, err
	}
	return updateByID[model.Booking](ctx, r.coll, id, bson.M{"$set": set})
}

func (r *BookingRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status model.BookingStatus) (*model.Booking, error) {
	return updateByID[model.Booking](ctx, r.coll, id, bson.M{"$set": bson.M{"status": status}})
}

func (r *BookingRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id)
}

// Summary counts bookings by status and sums confirmed revenue.
func (r *BookingRepo) Summary(ctx context.Context) (model.BookingSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":       nil,
			"total":     bson.M{"$sum": 1},
			"confirmed": bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$status", model.BookingConfirmed}}, 1, 0}}},
			"pending":   bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$status", model.BookingPending}}, 1, 0}}},
			"revenue":   bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$status", model.BookingConfirmed}}, "$amount", 0}}},
		}}},
	}
	rows, err := aggregateAll[struct {
		Total     int64   `bson:"total"`
		Confirmed int64   `bson:"confirmed"`
		Pending   int64   `bson:"pending"`
		Revenue   float64 `bson:"revenue"`
	}](ctx, r.coll, pipeline)
	if err != nil {
		return model.BookingSummary{}, fmt.Errorf("booking summary: %w", err)
	}
	if len(rows) == 0 {
		return model.BookingSummary{}, nil
	}
	return model.BookingSummary{
		Total:     rows[0].Total,
		Confirmed: rows[0].Confirmed,
		Pending:   rows[0].Pending,
		Revenue:   rows[0].Revenue,
	}, nil
}
