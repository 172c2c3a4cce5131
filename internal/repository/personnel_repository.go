package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mountaintravels/admin-dashboard/internal/model"
)

// StaffRepo persists staff members.
type StaffRepo struct{ coll *mongo.Collection }

func NewStaffRepo(db *mongo.Database) *StaffRepo {
	return &StaffRepo{coll: db.Collection(StaffCollection)}
}

var staffSorts = map[string]bson.D{
	"name":        {{Key: "name", Value: 1}},
	"email":       {{Key: "email", Value: 1}},
	"role":        {{Key: "role", Value: 1}, {Key: "name", Value: 1}},
	"department":  {{Key: "department", Value: 1}, {Key: "name", Value: 1}},
	"joiningDate": {{Key: "joiningDate", Value: -1}},
	"createdAt":   {{Key: "createdAt", Value: -1}},
}

// List uses the staff text index for search; results are sorted by name
// unless sortBy names another field.
func (r *StaffRepo) List(ctx context.Context, q ListQuery) ([]model.Staff, error) {
	filter := bson.M{}
	if q.Search != "" {
		filter["$text"] = bson.M{"$search": q.Search}
	}
	if q.Status != "" && q.Status != "all" {
		filter["status"] = q.Status
	}
	if q.Category != "" && q.Category != "all" {
		filter["role"] = q.Category
	}
	opts := q.findOptions(sortBy(q.SortBy, staffSorts, staffSorts["name"]))
	return findAll[model.Staff](ctx, r.coll, filter, opts)
}

func (r *StaffRepo) Get(ctx context.Context, id primitive.ObjectID) (*model.Staff, error) {
	return findByID[model.Staff](ctx, r.coll, id)
}

func (r *StaffRepo) Create(ctx context.Context, s *model.Staff) error {
	s.ID = primitive.NewObjectID()
	s.Touch(time.Now().UTC())
	return insertOne(ctx, r.coll, s)
}

func (r *StaffRepo) Update(ctx context.Context, id primitive.ObjectID, s *model.Staff) (*model.Staff, error) {
	set, err := editableFields(s)
	if err != nil {
		return nil, err
	}
	return updateByID[model.Staff](ctx, r.coll, id, bson.M{"$set": set})
}

func (r *StaffRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status model.Availability) (*model.Staff, error) {
	return updateByID[model.Staff](ctx, r.coll, id, bson.M{"$set": bson.M{"status": status}})
}

func (r *StaffRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id)
}

// AgentRepo persists support agents.
type AgentRepo struct{ coll *mongo.Collection }

func NewAgentRepo(db *mongo.Database) *AgentRepo {
	return &AgentRepo{coll: db.Collection(AgentsCollection)}
}

var agentSorts = map[string]bson.D{
	"name":       {{Key: "name", Value: 1}},
	"department": {{Key: "department", Value: 1}, {Key: "name", Value: 1}},
	"createdAt":  {{Key: "createdAt", Value: -1}},
}

// List filters by status and, when available is non-nil, by isAvailable.
func (r *AgentRepo) List(ctx context.Context, q ListQuery, available *bool) ([]model.Agent, error) {
	filter := bson.M{}
	if q.Status != "" && q.Status != "all" {
		filter["status"] = q.Status
	}
	if available != nil {
		filter["isAvailable"] = *available
	}
	if q.Search != "" {
		filter["$or"] = anyFieldMatches(q.Search, "name", "email", "department", "expertise")
	}
	opts := q.findOptions(sortBy(q.SortBy, agentSorts, agentSorts["name"]))
	return findAll[model.Agent](ctx, r.coll, filter, opts)
}

func (r *AgentRepo) Get(ctx context.Context, id primitive.ObjectID) (*model.Agent, error) {
	return findByID[model.Agent](ctx, r.coll, id)
}

func (r *AgentRepo) Create(ctx context.Context, a *model.Agent) error {
	a.ID = primitive.NewObjectID()
	a.Touch(time.Now().UTC())
	return insertOne(ctx, r.coll, a)
}

// Update replaces the profile fields; the ticket list is managed by assignment.
func (r *AgentRepo) Update(ctx context.Context, id primitive.ObjectID, a *model.Agent) (*model.Agent, error) {
	set, err := editableFields(a, "assignedTickets")
	if err != nil {
		return nil, err
	}
	if a.IsAvailable == nil {
		delete(set, "isAvailable")
	}
	return updateByID[model.Agent](ctx, r.coll, id, bson.M{"$set": set})
}

func (r *AgentRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status model.Availability) (*model.Agent, error) {
	return updateByID[model.Agent](ctx, r.coll, id, bson.M{"$set": bson.M{"status": status}})
}

func (r *AgentRepo) SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) (*model.Agent, error) {
	return updateByID[model.Agent](ctx, r.coll, id, bson.M{"$set": bson.M{"isAvailable": available}})
}

// AddTicket records a ticket on the agent; adding the same ticket twice is a no-op.
func (r *AgentRepo) AddTicket(ctx context.Context, id, ticketID primitive.ObjectID) (*model.Agent, error) {
	return updateByID[model.Agent](ctx, r.coll, id, bson.M{"$addToSet": bson.M{"assignedTickets": ticketID}})
}

// ReleaseTicket removes a ticket from whichever agents hold it.
func (r *AgentRepo) ReleaseTicket(ctx context.Context, ticketID primitive.ObjectID) error {
	_, err := r.coll.UpdateMany(ctx, bson.M{"assignedTickets": ticketID},
		bson.M{"$pull": bson.M{"assignedTickets": ticketID}})
	return err
}

func (r *AgentRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id)
}
