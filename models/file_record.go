package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FileRecord is the metadata row for an uploaded supporting document. The
// content itself lives in GridFS under FileID. Year always equals the owning
// checklist item's year.
type FileRecord struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FileID       primitive.ObjectID `json:"file_id" bson:"file_id"`
	StoredName   string             `json:"stored_name" bson:"stored_name"`
	OriginalName string             `json:"original_name" bson:"original_name"`
	Size         int64              `json:"size" bson:"size"`
	MimeType     string             `json:"mime_type" bson:"mime_type"`
	ChecklistID  primitive.ObjectID `json:"checklist_id" bson:"checklist_id"`
	Year         int                `json:"year" bson:"year"`
	UploadedBy   primitive.ObjectID `json:"uploaded_by" bson:"uploaded_by"`
	UploadedAt   time.Time          `json:"uploaded_at" bson:"uploaded_at"`
}

type FileFilter struct {
	Year        *int
	ChecklistID *primitive.ObjectID
	UploadedBy  *primitive.ObjectID
	Search      *string // case-insensitive match on stored or original name
}

// FileStats is the dashboard summary over uploaded files.
type FileStats struct {
	Total       int64        `json:"total"`
	TotalSize   int64        `json:"total_size"`
	AverageSize int64        `json:"average_size"`
	MedianSize  int64        `json:"median_size"`
	ByType      []TypeCount  `json:"by_type"`
	ByMonth     []MonthCount `json:"by_month"`
}

type TypeCount struct {
	Type  string `json:"type" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}
