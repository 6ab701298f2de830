package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusOverdue    = "OVERDUE"
)

// Assignment binds a checklist item to an org unit. The pair is unique, and
// Year is stamped from the checklist item at creation (the create rule
// guarantees the unit's year is equal).
type Assignment struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ChecklistID primitive.ObjectID `json:"checklist_id" bson:"checklist_id"`
	UnitID      primitive.ObjectID `json:"unit_id" bson:"unit_id"`
	Year        int                `json:"year" bson:"year"`
	Status      string             `json:"status" bson:"status"`
	DueDate     *time.Time         `json:"due_date" bson:"due_date"`
	Notes       string             `json:"notes" bson:"notes"`
	AssignedBy  primitive.ObjectID `json:"assigned_by" bson:"assigned_by"`
	AssignedAt  time.Time          `json:"assigned_at" bson:"assigned_at"`
}

// ValidStatus reports whether s is one of the accepted assignment statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusOverdue:
		return true
	}
	return false
}

type AssignmentFilter struct {
	Year        *int
	ChecklistID *primitive.ObjectID
	UnitID      *primitive.ObjectID
	Status      *string
	AssignedBy  *primitive.ObjectID
}

// AssignmentStats is the dashboard summary over assignments.
type AssignmentStats struct {
	Total          int64         `json:"total"`
	ByStatus       []StatusCount `json:"by_status"`
	ByMonth        []MonthCount  `json:"by_month"`
	CompletionRate int           `json:"completion_rate"`
}

type StatusCount struct {
	Status string `json:"status" bson:"_id"`
	Count  int64  `json:"count" bson:"count"`
}

type MonthCount struct {
	Month string `json:"month" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}
