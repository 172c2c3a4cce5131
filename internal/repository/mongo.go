package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	AdminsCollection    = "admins"
	AgentsCollection    = "agents"
	BookingsCollection  = "bookings"
	FeedbackCollection  = "feedback"
	InquiriesCollection = "inquiries"
	StaffCollection     = "staff"
	TicketsCollection   = "supporttickets"
	ToursCollection     = "tours"
	UsersCollection     = "users"
)

// ListQuery carries the query-string options every list endpoint accepts.
// Zero values mean "no filter"; Limit 0 returns everything.
type ListQuery struct {
	Search   string
	SortBy   string
	Status   string
	Category string
	Priority string
	Page     int64
	Limit    int64
}

func (q ListQuery) findOptions(sort bson.D) *options.FindOptions {
	opts := options.Find().SetSort(sort)
	if q.Limit > 0 {
		page := q.Page
		if page < 1 {
			page = 1
		}
		opts.SetSkip((page - 1) * q.Limit).SetLimit(q.Limit)
	}
	return opts
}

// pageStages appends $skip/$limit to an aggregation when paging is requested.
func (q ListQuery) pageStages(pipeline mongo.Pipeline) mongo.Pipeline {
	if q.Limit <= 0 {
		return pipeline
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	return append(pipeline,
		bson.D{{Key: "$skip", Value: (page - 1) * q.Limit}},
		bson.D{{Key: "$limit", Value: q.Limit}},
	)
}

// containsRegex builds a case-insensitive substring match for user input.
func containsRegex(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(strings.TrimSpace(s)), Options: "i"}
}

func anyFieldMatches(search string, fields ...string) bson.A {
	re := containsRegex(search)
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: re})
	}
	return or
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", coll.Name(), err)
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return out, nil
}

func aggregateAll[T any](ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline) ([]T, error) {
	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", coll.Name(), err)
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return out, nil
}

func findByID[T any](ctx context.Context, coll *mongo.Collection, id primitive.ObjectID) (*T, error) {
	var out T
	err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", coll.Name(), err)
	}
	return &out, nil
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc any) error {
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", coll.Name(), err)
	}
	return nil
}

// updateByID applies update and returns the document as it is afterwards.
// A "$set" of updatedAt is always added.
func updateByID[T any](ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, update bson.M) (*T, error) {
	set, _ := update["$set"].(bson.M)
	if set == nil {
		set = bson.M{}
	}
	set["updatedAt"] = time.Now().UTC()
	update["$set"] = set

	var out T
	err := coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&out)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return nil, ErrDuplicate
	case err != nil:
		return nil, fmt.Errorf("update %s: %w", coll.Name(), err)
	}
	return &out, nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID) error {
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s: %w", coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// editableFields turns a bound document into a $set payload, leaving out the
// identity and creation time so a PUT cannot rewrite them.
func editableFields(doc any, skip ...string) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal update: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("unmarshal update: %w", err)
	}
	for _, k := range append([]string{"_id", "createdAt", "updatedAt"}, skip...) {
		delete(m, k)
	}
	return m, nil
}

// lookupOne joins a single referenced document as field `as`, keeping only
// the fields of model.PersonRef.
func lookupOne(from, localField, as string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         from,
			"localField":   localField,
			"foreignField": "_id",
			"as":           as,
			"pipeline": bson.A{
				bson.M{"$project": bson.M{"name": 1, "email": 1, "department": 1}},
			},
		}}},
		{{Key: "$set", Value: bson.M{as: bson.M{"$arrayElemAt": bson.A{"$" + as, 0}}}}},
	}
}

func sortBy(key string, allowed map[string]bson.D, def bson.D) bson.D {
	if s, ok := allowed[key]; ok {
		return s
	}
	return def
}
