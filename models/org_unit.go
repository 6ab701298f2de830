package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrgUnit is a (directorate, sub-directorate, division) node responsible for
// checklist items in a given year. Division may be nil, which means the unit
// covers all divisions of its sub-directorate. The full tuple is unique per
// year.
type OrgUnit struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Year           int                `json:"year" bson:"year" validate:"required,min=1900,max=2100"`
	Directorate    string             `json:"directorate" bson:"directorate" validate:"required"`
	SubDirectorate string             `json:"sub_directorate" bson:"sub_directorate" validate:"required"`
	Division       *string            `json:"division" bson:"division"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

type OrgUnitFilter struct {
	Year           *int
	Directorate    *string
	SubDirectorate *string
	Division       *string
}

// OrgUnitStats counts units and the distinct values of each organizational
// dimension, with a per-value breakdown. Nil divisions are excluded from the
// division counts.
type OrgUnitStats struct {
	Total          int64            `json:"total"`
	Directorate    int              `json:"directorate"`
	SubDirectorate int              `json:"sub_directorate"`
	Division       int              `json:"division"`
	Breakdown      OrgUnitBreakdown `json:"breakdown"`
}

type OrgUnitBreakdown struct {
	Directorate    []NameCount `json:"directorate"`
	SubDirectorate []NameCount `json:"sub_directorate"`
	Division       []NameCount `json:"division"`
}

type NameCount struct {
	Name  string `json:"name" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}
