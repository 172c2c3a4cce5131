package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin is a dashboard operator. PasswordHash holds a bcrypt digest and is
// never serialized to clients.
type Admin struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	PasswordHash string             `json:"-" bson:"password"`
	Avatar       string             `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Timestamps   `bson:",inline"`
}

// User is a customer who books tours or files tickets and feedback.
type User struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name" validate:"required"`
	Email      string             `json:"email" bson:"email" validate:"required,email"`
	Phone      string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Timestamps `bson:",inline"`
}
