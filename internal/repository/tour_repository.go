package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mountaintravels/admin-dashboard/internal/model"
)

// TourRepo persists tours.
type TourRepo struct{ coll *mongo.Collection }

func NewTourRepo(db *mongo.Database) *TourRepo {
	return &TourRepo{coll: db.Collection(ToursCollection)}
}

var tourSorts = map[string]bson.D{
	"title":     {{Key: "title", Value: 1}},
	"price":     {{Key: "price", Value: 1}},
	"-price":    {{Key: "price", Value: -1}},
	"duration":  {{Key: "duration", Value: 1}},
	"createdAt": {{Key: "createdAt", Value: -1}},
}

// List returns the summary projection of matching tours, newest first unless
// sortBy says otherwise.
func (r *TourRepo) List(ctx context.Context, q ListQuery) ([]model.TourSummary, error) {
	filter := bson.M{}
	if q.Status != "" && q.Status != "all" {
		filter["status"] = q.Status
	}
	if q.Category != "" && q.Category != "all" {
		filter["category"] = q.Category
	}
	if q.Search != "" {
		filter["$or"] = anyFieldMatches(q.Search, "title", "location", "category", "keywords")
	}
	opts := q.findOptions(sortBy(q.SortBy, tourSorts, bson.D{{Key: "createdAt", Value: -1}})).
		SetProjection(bson.M{
			"title": 1, "location": 1, "price": 1, "duration": 1, "category": 1,
			"images": 1, "difficultyLevel": 1, "status": 1, "createdAt": 1, "updatedAt": 1,
		})
	return findAll[model.TourSummary](ctx, r.coll, filter, opts)
}

func (r *TourRepo) Get(ctx context.Context, id primitive.ObjectID) (*model.Tour, error) {
	return findByID[model.Tour](ctx, r.coll, id)
}

// Create assigns an id and timestamps and stores the tour.
func (r *TourRepo) Create(ctx context.Context, t *model.Tour) error {
	t.ID = primitive.NewObjectID()
	t.Touch(time.Now().UTC())
	return insertOne(ctx, r.coll, t)
}

// Update replaces every editable field of the tour.
func (r *TourRepo) Update(ctx context.Context, id primitive.ObjectID, t *model.Tour) (*model.Tour, error) {
	set, err := editableFields(t)
	if err != nil {
		return nil, err
	}
	return updateByID[model.Tour](ctx, r.coll, id, bson.M{"$set": set})
}

func (r *TourRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status model.TourStatus) (*model.Tour, error) {
	return updateByID[model.Tour](ctx, r.coll, id, bson.M{"$set": bson.M{"status": status}})
}

// AddImages appends uploaded image paths to the tour gallery.
func (r *TourRepo) AddImages(ctx context.Context, id primitive.ObjectID, paths []string) (*model.Tour, error) {
	return updateByID[model.Tour](ctx, r.coll, id, bson.M{
		"$push": bson.M{"images": bson.M{"$each": paths}},
	})
}

func (r *TourRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := deleteByID(ctx, r.coll, id); err != nil {
		return err
	}
	// drop dangling references from other tours
	_, err := r.coll.UpdateMany(ctx, bson.M{"relatedTours": id},
		bson.M{"$pull": bson.M{"relatedTours": id}}, options.Update())
	return err
}
