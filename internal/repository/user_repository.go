package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mountaintravels/admin-dashboard/internal/model"
)

// AdminRepo provides access to dashboard operators.
type AdminRepo struct{ coll *mongo.Collection }

func NewAdminRepo(db *mongo.Database) *AdminRepo {
	return &AdminRepo{coll: db.Collection(AdminsCollection)}
}

// Create inserts an admin whose password has already been hashed. Emails are
// stored lower-cased; a taken email yields ErrDuplicate.
func (r *AdminRepo) Create(ctx context.Context, name, email, passwordHash string) (*model.Admin, error) {
	a := &model.Admin{
		ID:           primitive.NewObjectID(),
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
	}
	a.Touch(time.Now().UTC())
	if err := insertOne(ctx, r.coll, a); err != nil {
		return nil, err
	}
	return a, nil
}

// GetByEmail returns ErrNotFound when no admin uses the email.
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var a model.Admin
	err := r.coll.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return &a, nil
}

func (r *AdminRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Admin, error) {
	return findByID[model.Admin](ctx, r.coll, id)
}

// ProfileChange lists the profile fields to overwrite; nil fields are kept.
type ProfileChange struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Avatar       *string
}

func (r *AdminRepo) UpdateProfile(ctx context.Context, id primitive.ObjectID, ch ProfileChange) (*model.Admin, error) {
	set := bson.M{}
	if ch.Name != nil {
		set["name"] = strings.TrimSpace(*ch.Name)
	}
	if ch.Email != nil {
		set["email"] = strings.ToLower(strings.TrimSpace(*ch.Email))
	}
	if ch.PasswordHash != nil {
		set["password"] = *ch.PasswordHash
	}
	if ch.Avatar != nil {
		set["avatar"] = *ch.Avatar
	}
	return updateByID[model.Admin](ctx, r.coll, id, bson.M{"$set": set})
}

// UserRepo persists customers.
type UserRepo struct{ coll *mongo.Collection }

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{coll: db.Collection(UsersCollection)}
}

func (r *UserRepo) List(ctx context.Context, q ListQuery) ([]model.User, error) {
	filter := bson.M{}
	if q.Search != "" {
		filter["$or"] = anyFieldMatches(q.Search, "name", "email", "phone")
	}
	sort := bson.D{{Key: "name", Value: 1}}
	if q.SortBy == "createdAt" {
		sort = bson.D{{Key: "createdAt", Value: -1}}
	}
	return findAll[model.User](ctx, r.coll, filter, q.findOptions(sort))
}

func (r *UserRepo) Get(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return findByID[model.User](ctx, r.coll, id)
}

func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.ID = primitive.NewObjectID()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Touch(time.Now().UTC())
	return insertOne(ctx, r.coll, u)
}

// Exists reports whether a customer with the id is on file.
func (r *UserRepo) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	return n > 0, err
}

func (r *UserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id)
}
