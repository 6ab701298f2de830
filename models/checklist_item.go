package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChecklistItem is a single compliance requirement for a year. Aspect is
// matched by value against the Aspect collection for the same year.
type ChecklistItem struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Aspect      string             `json:"aspect" bson:"aspect" validate:"required"`
	Description string             `json:"description" bson:"description" validate:"required"`
	Year        int                `json:"year" bson:"year" validate:"required,min=1900,max=2100"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

type ChecklistFilter struct {
	Year   *int
	Aspect *string
	Search *string // case-insensitive match on description
}

// ChecklistStatus summarizes the fulfillment state of one checklist item.
type ChecklistStatus struct {
	Uploaded         bool  `json:"uploaded"`
	Assigned         bool  `json:"assigned"`
	Completed        bool  `json:"completed"`
	FilesCount       int64 `json:"files_count"`
	AssignmentsCount int64 `json:"assignments_count"`
}
