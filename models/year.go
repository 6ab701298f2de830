package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Year is a compliance book year. Every aspect, checklist item and org unit
// hangs off exactly one year; the year cannot be deleted while any of them
// exist.
type Year struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Year        int                `json:"year" bson:"year" validate:"required,min=1900,max=2100"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	IsActive    bool               `json:"is_active" bson:"is_active"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// YearDetail is a year record together with its child collections.
type YearDetail struct {
	Year      *Year           `json:"year"`
	Aspects   []Aspect        `json:"aspects"`
	Checklist []ChecklistItem `json:"checklist"`
	Units     []OrgUnit       `json:"units"`
}

// YearStats is the dashboard summary for one year. Progress values are a
// coarse 100/0 indicator per category, not a completion percentage.
type YearStats struct {
	Year      int          `json:"year"`
	Aspects   int64        `json:"aspects_count"`
	Checklist int64        `json:"checklist_count"`
	Units     int64        `json:"units_count"`
	Users     int64        `json:"users_count"`
	Progress  YearProgress `json:"progress"`
}

type YearProgress struct {
	Aspects   int `json:"aspects"`
	Checklist int `json:"checklist"`
	Units     int `json:"units"`
}
