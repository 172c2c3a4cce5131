package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TourStatus string

const (
	TourDraft     TourStatus = "Draft"
	TourPublished TourStatus = "Published"
	TourArchived  TourStatus = "Archived"
)

func (s TourStatus) Valid() bool {
	switch s {
	case TourDraft, TourPublished, TourArchived:
		return true
	}
	return false
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

type ItineraryDay struct {
	Day           int      `json:"day" bson:"day" validate:"min=1"`
	Title         string   `json:"title" bson:"title" validate:"required"`
	Description   string   `json:"description" bson:"description" validate:"required"`
	Accommodation string   `json:"accommodation,omitempty" bson:"accommodation,omitempty"`
	Meals         string   `json:"meals,omitempty" bson:"meals,omitempty"`
	Time          string   `json:"time,omitempty" bson:"time,omitempty"`
	Distance      *float64 `json:"distance,omitempty" bson:"distance,omitempty"`
	Ascent        *float64 `json:"ascent,omitempty" bson:"ascent,omitempty"`
	Descent       *float64 `json:"descent,omitempty" bson:"descent,omitempty"`
}

type FAQ struct {
	Question string `json:"question" bson:"question" validate:"required"`
	Answer   string `json:"answer" bson:"answer" validate:"required"`
}

type SeasonalPrice struct {
	StartDate Date    `json:"startDate" bson:"startDate" validate:"required"`
	EndDate   Date    `json:"endDate" bson:"endDate" validate:"required"`
	Price     float64 `json:"price" bson:"price" validate:"min=0"`
}

// Tour is a sellable travel package.
type Tour struct {
	ID                 primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title              string             `json:"title" bson:"title" validate:"required"`
	Description        string             `json:"description" bson:"description" validate:"required"`
	Location           string             `json:"location" bson:"location" validate:"required"`
	Price              float64            `json:"price" bson:"price" validate:"min=0"`
	Duration           int                `json:"duration" bson:"duration" validate:"min=1"`
	Category           string             `json:"category" bson:"category" validate:"required"`
	Images             StringList         `json:"images" bson:"images"`
	Itineraries        []ItineraryDay     `json:"itineraries" bson:"itineraries" validate:"dive"`
	MapIframe          string             `json:"mapIframe,omitempty" bson:"mapIframe,omitempty"`
	FAQs               []FAQ              `json:"faqs" bson:"faqs" validate:"dive"`
	TermsAndConditions string             `json:"termsAndConditions,omitempty" bson:"termsAndConditions,omitempty"`
	MaxGroupSize       int                `json:"maxGroupSize" bson:"maxGroupSize" validate:"min=0"`
	DifficultyLevel    Difficulty         `json:"difficultyLevel" bson:"difficultyLevel" validate:"omitempty,enum"`
	StartDates         []Date             `json:"startDates" bson:"startDates"`
	IncludedServices   StringList         `json:"includedServices" bson:"includedServices"`
	ExcludedServices   StringList         `json:"excludedServices" bson:"excludedServices"`
	RequiredEquipment  StringList         `json:"requiredEquipment" bson:"requiredEquipment"`
	MeetingPoint       string             `json:"meetingPoint,omitempty" bson:"meetingPoint,omitempty"`
	EndPoint           string             `json:"endPoint,omitempty" bson:"endPoint,omitempty"`
	Status             TourStatus         `json:"status" bson:"status" validate:"omitempty,enum"`
	SeasonalPricing    []SeasonalPrice    `json:"seasonalPricing" bson:"seasonalPricing" validate:"dive"`
	RelatedTours       IDList             `json:"relatedTours" bson:"relatedTours"`
	Keywords           StringList         `json:"keywords" bson:"keywords"`
	Timestamps         `bson:",inline"`
}

// ApplyDefaults fills the defaults a freshly created tour gets.
func (t *Tour) ApplyDefaults() {
	if t.Status == "" {
		t.Status = TourDraft
	}
	if t.DifficultyLevel == "" {
		t.DifficultyLevel = DifficultyEasy
	}
	if t.MaxGroupSize < 1 {
		t.MaxGroupSize = 1
	}
	if t.Images == nil {
		t.Images = StringList{}
	}
}

// TourSummary is the projection used by list views.
type TourSummary struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id"`
	Title           string             `json:"title" bson:"title"`
	Location        string             `json:"location" bson:"location"`
	Price           float64            `json:"price" bson:"price"`
	Duration        int                `json:"duration" bson:"duration"`
	Category        string             `json:"category" bson:"category"`
	Images          []string           `json:"images" bson:"images"`
	DifficultyLevel Difficulty         `json:"difficultyLevel" bson:"difficultyLevel"`
	Status          TourStatus         `json:"status" bson:"status"`
	Timestamps      `bson:",inline"`
}
