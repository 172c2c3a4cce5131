package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Availability is the working state of staff members and agents.
type Availability string

const (
	AvailabilityActive   Availability = "active"
	AvailabilityInactive Availability = "inactive"
	AvailabilityOnLeave  Availability = "on_leave"
)

func (a Availability) Valid() bool {
	switch a {
	case AvailabilityActive, AvailabilityInactive, AvailabilityOnLeave:
		return true
	}
	return false
}

type StaffRole string

const (
	RoleAdmin          StaffRole = "Admin"
	RoleSupport        StaffRole = "Support"
	RoleManager        StaffRole = "Manager"
	RoleTourGuide      StaffRole = "TourGuide"
	RoleAgent          StaffRole = "Agent"
	RoleContentCreator StaffRole = "ContentCreator"
	RoleTraveler       StaffRole = "Traveler"
)

func (r StaffRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupport, RoleManager, RoleTourGuide, RoleAgent, RoleContentCreator, RoleTraveler:
		return true
	}
	return false
}

type Staff struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" validate:"required"`
	Email       string             `json:"email" bson:"email" validate:"required,email"`
	Role        StaffRole          `json:"role" bson:"role" validate:"required,enum"`
	Phone       string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Address     string             `json:"address,omitempty" bson:"address,omitempty"`
	Department  string             `json:"department,omitempty" bson:"department,omitempty"`
	JoiningDate Date               `json:"joiningDate" bson:"joiningDate,omitempty"`
	Notes       string             `json:"notes,omitempty" bson:"notes,omitempty"`
	Status      Availability       `json:"status" bson:"status" validate:"omitempty,enum"`
	Timestamps  `bson:",inline"`
}

func (s *Staff) ApplyDefaults() {
	if s.Status == "" {
		s.Status = AvailabilityActive
	}
}

type Agent struct {
	ID              primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Name            string               `json:"name" bson:"name" validate:"required"`
	Email           string               `json:"email" bson:"email" validate:"required,email"`
	Phone           string               `json:"phone,omitempty" bson:"phone,omitempty"`
	Role            string               `json:"role" bson:"role" validate:"required"`
	Department      string               `json:"department" bson:"department" validate:"required"`
	IsAvailable     *bool                `json:"isAvailable" bson:"isAvailable"`
	Status          Availability         `json:"status" bson:"status" validate:"omitempty,enum"`
	Expertise       StringList           `json:"expertise" bson:"expertise"`
	AssignedTickets []primitive.ObjectID `json:"assignedTickets" bson:"assignedTickets"`
	Location        string               `json:"location,omitempty" bson:"location,omitempty"`
	ProfileImage    string               `json:"profileImage,omitempty" bson:"profileImage,omitempty"`
	Timestamps      `bson:",inline"`
}

func (a *Agent) ApplyDefaults() {
	if a.IsAvailable == nil {
		yes := true
		a.IsAvailable = &yes
	}
	if a.Status == "" {
		a.Status = AvailabilityActive
	}
	if a.AssignedTickets == nil {
		a.AssignedTickets = []primitive.ObjectID{}
	}
	if a.Expertise == nil {
		a.Expertise = StringList{}
	}
}

// CanTakeTickets reports whether the agent may receive a new ticket.
func (a *Agent) CanTakeTickets() bool {
	return a.IsAvailable != nil && *a.IsAvailable && a.Status == AvailabilityActive
}
