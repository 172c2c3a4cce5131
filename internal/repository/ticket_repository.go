package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mountaintravels/admin-dashboard/internal/model"
)

// TicketRepo persists support tickets.
type TicketRepo struct{ coll *mongo.Collection }

func NewTicketRepo(db *mongo.Database) *TicketRepo {
	return &TicketRepo{coll: db.Collection(TicketsCollection)}
}

var ticketSorts = map[string]bson.D{
	"createdAt": {{Key: "createdAt", Value: -1}},
	"updatedAt": {{Key: "updatedAt", Value: -1}},
	"priority":  {{Key: "priority", Value: 1}, {Key: "createdAt", Value: -1}},
	"status":    {{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
}

func ticketJoins() mongo.Pipeline {
	p := lookupOne(UsersCollection, "userId", "customer")
	return append(p, lookupOne(AgentsCollection, "assignedTo", "assignee")...)
}

// List returns tickets newest first with customer and assignee joined.
func (r *TicketRepo) List(ctx context.Context, q ListQuery) ([]model.TicketView, error) {
	match := bson.M{}
	if q.Status != "" && q.Status != "all" {
		match["status"] = q.Status
	}
	if q.Priority != "" && q.Priority != "all" {
		match["priority"] = q.Priority
	}
	if q.Search != "" {
		match["$or"] = anyFieldMatches(q.Search, "subject", "description")
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: sortBy(q.SortBy, ticketSorts, ticketSorts["createdAt"])}},
	}
	pipeline = q.pageStages(pipeline)
	pipeline = append(pipeline, ticketJoins()...)
	return aggregateAll[model.TicketView](ctx, r.coll, pipeline)
}

// View returns one ticket with its joins.
func (r *TicketRepo) View(ctx context.Context, id primitive.ObjectID) (*model.TicketView, error) {
	pipeline := append(mongo.Pipeline{{{Key: "$match", Value: bson.M{"_id": id}}}}, ticketJoins()...)
	rows, err := aggregateAll[model.TicketView](ctx, r.coll, pipeline)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (r *TicketRepo) Get(ctx context.Context, id primitive.ObjectID) (*model.SupportTicket, error) {
	return findByID[model.SupportTicket](ctx, r.coll, id)
}

func (r *TicketRepo) Create(ctx context.Context, t *model.SupportTicket) error {
	t.ID = primitive.NewObjectID()
	t.Touch(time.Now().UTC())
	return insertOne(ctx, r.coll, t)
}

// Update replaces subject, description, status and priority. Responses and
// the assignment are owned by their own operations.
func (r *TicketRepo) Update(ctx context.Context, id primitive.ObjectID, t *model.SupportTicket) (*model.SupportTicket, error) {
	set, err := editableFields(t, "responses", "assignedTo")
	if err != nil {
		return nil, err
	}
	return updateByID[model.SupportTicket](ctx, r.coll, id, bson.M{"$set": set})
}

func (r *TicketRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status model.TicketStatus) (*model.SupportTicket, error) {
	return updateByID[model.SupportTicket](ctx, r.coll, id, bson.M{"$set": bson.M{"status": status}})
}

func (r *TicketRepo) SetPriority(ctx context.Context, id primitive.ObjectID, p model.Priority) (*model.SupportTicket, error) {
	return updateByID[model.SupportTicket](ctx, r.coll, id, bson.M{"$set": bson.M{"priority": p}})
}

func (r *TicketRepo) Assign(ctx context.Context, id, agentID primitive.ObjectID) (*model.SupportTicket, error) {
	return updateByID[model.SupportTicket](ctx, r.coll, id, bson.M{"$set": bson.M{"assignedTo": agentID}})
}

func (r *TicketRepo) AddResponse(ctx context.Context, id primitive.ObjectID, resp model.Response) (*model.SupportTicket, error) {
	return updateByID[model.SupportTicket](ctx, r.coll, id, bson.M{"$push": bson.M{"responses": resp}})
}

func (r *TicketRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id)
}
