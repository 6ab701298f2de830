package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Aspect groups checklist items under a year. The (name, year) pair is
// unique; checklist items reference the aspect by name, not by id.
type Aspect struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name" validate:"required"`
	Year      int                `json:"year" bson:"year" validate:"required,min=1900,max=2100"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

type AspectFilter struct {
	Year   *int
	Search *string // case-insensitive match on name
}
