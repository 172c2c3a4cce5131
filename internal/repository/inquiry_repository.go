package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mountaintravels/admin-dashboard/internal/model"
)

// InquiryRepo persists contact-form inquiries.
type InquiryRepo struct{ coll *mongo.Collection }

func NewInquiryRepo(db *mongo.Database) *InquiryRepo {
	return &InquiryRepo{coll: db.Collection(InquiriesCollection)}
}

var inquirySorts = map[string]bson.D{
	"createdAt": {{Key: "createdAt", Value: -1}},
	"name":      {{Key: "name", Value: 1}},
	"subject":   {{Key: "subject", Value: 1}},
	"status":    {{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
}

// An inquiry may be assigned to an agent or a staff member; whichever
// matches is joined as "assignee".
func inquiryJoins() mongo.Pipeline {
	p := lookupOne(AgentsCollection, "assignedTo", "assigneeAgent")
	p = append(p, lookupOne(StaffCollection, "assignedTo", "assigneeStaff")...)
	return append(p,
		bson.D{{Key: "$set", Value: bson.M{"assignee": bson.M{"$ifNull": bson.A{"$assigneeAgent", "$assigneeStaff"}}}}},
		bson.D{{Key: "$unset", Value: bson.A{"assigneeAgent", "assigneeStaff"}}},
	)
}

func (r *InquiryRepo) List(ctx context.Context, q ListQuery) ([]model.InquiryView, error) {
	match := bson.M{}
	if q.Status != "" && q.Status != "all" {
		match["status"] = q.Status
	}
	if q.Priority != "" && q.Priority != "all" {
		match["priority"] = q.Priority
	}
	if q.Search != "" {
		match["$or"] = anyFieldMatches(q.Search, "name", "email", "subject", "message")
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: sortBy(q.SortBy, inquirySorts, inquirySorts["createdAt"])}},
	}
	pipeline = q.pageStages(pipeline)
	pipeline = append(pipeline, inquiryJoins()...)
	return aggregateAll[model.InquiryView](ctx, r.coll, pipeline)
}

func (r *InquiryRepo) View(ctx context.Context, id primitive.ObjectID) (*model.InquiryView, error) {
	pipeline := append(mongo.Pipeline{{{Key: "$match", Value: bson.M{"_id": id}}}}, inquiryJoins()...)
	rows, err := aggregateAll[model.InquiryView](ctx, r.coll, pipeline)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (r *InquiryRepo) Create(ctx context.Context, q *model.Inquiry) error {
	q.ID = primitive.NewObjectID()
	q.Touch(time.Now().UTC())
	return insertOne(ctx, r.coll, q)
}

func (r *InquiryRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status model.TicketStatus) (*model.Inquiry, error) {
	return updateByID[model.Inquiry](ctx, r.coll, id, bson.M{"$set": bson.M{"status": status}})
}

func (r *InquiryRepo) Assign(ctx context.Context, id, assignee primitive.ObjectID) (*model.Inquiry, error) {
	return updateByID[model.Inquiry](ctx, r.coll, id, bson.M{"$set": bson.M{"assignedTo": assignee}})
}

func (r *InquiryRepo) AddResponse(ctx context.Context, id primitive.ObjectID, resp model.Response) (*model.Inquiry, error) {
	return updateByID[model.Inquiry](ctx, r.coll, id, bson.M{"$push": bson.M{"responses": resp}})
}

func (r *InquiryRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id)
}
