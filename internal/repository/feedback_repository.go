package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mountaintravels/admin-dashboard/internal/model"
)

// FeedbackRepo persists customer feedback.
type FeedbackRepo struct{ coll *mongo.Collection }

func NewFeedbackRepo(db *mongo.Database) *FeedbackRepo {
	return &FeedbackRepo{coll: db.Collection(FeedbackCollection)}
}

// List returns feedback newest first with the author joined.
func (r *FeedbackRepo) List(ctx context.Context, q ListQuery) ([]model.FeedbackView, error) {
	match := bson.M{}
	if q.Status != "" && q.Status != "all" {
		match["status"] = q.Status
	}
	if q.Category != "" && q.Category != "all" {
		match["category"] = q.Category
	}
	if q.Search != "" {
		match["message"] = containsRegex(q.Search)
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}}}},
	}
	pipeline = q.pageStages(pipeline)
	pipeline = append(pipeline, lookupOne(UsersCollection, "user", "author")...)
	return aggregateAll[model.FeedbackView](ctx, r.coll, pipeline)
}

func (r *FeedbackRepo) Get(ctx context.Context, id primitive.ObjectID) (*model.Feedback, error) {
	return findByID[model.Feedback](ctx, r.coll, id)
}

// Create stamps the submission date unless the client supplied one.
func (r *FeedbackRepo) Create(ctx context.Context, f *model.Feedback) error {
	now := time.Now().UTC()
	f.ID = primitive.NewObjectID()
	if f.Date.IsZero() {
		f.Date = model.NewDate(now)
	}
	f.Touch(now)
	return insertOne(ctx, r.coll, f)
}

// Update replaces message, category, status and date; responses are kept.
func (r *FeedbackRepo) Update(ctx context.Context, id primitive.ObjectID, f *model.Feedback) (*model.Feedback, error) {
	set, err := editableFields(f, "responses")
	if err != nil {
		return nil, err
	}
	if f.Date.IsZero() {
		delete(set, "date")
	}
	return updateByID[model.Feedback](ctx, r.coll, id, bson.M{"$set": set})
}

func (r *FeedbackRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status model.FeedbackStatus) (*model.Feedback, error) {
	return updateByID[model.Feedback](ctx, r.coll, id, bson.M{"$set": bson.M{"status": status}})
}

func (r *FeedbackRepo) AddResponse(ctx context.Context, id primitive.ObjectID, resp model.Response) (*model.Feedback, error) {
	return updateByID[model.Feedback](ctx, r.coll, id, bson.M{"$push": bson.M{"responses": resp}})
}

func (r *FeedbackRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id)
}
