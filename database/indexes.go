package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateIndexes builds the unique and query indexes for all collections. The
// unique indexes double as the store-level backstop for the check-then-act
// uniqueness validation done in the services.
func CreateIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	perCollection := map[string][]mongo.IndexModel{
		"users": {
			{
				Keys:    bson.D{{Key: "username", Value: 1}},
				Options: options.Index().SetName("uniq_username").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("uniq_email").SetUnique(true),
			},
			// role + name supports the user listing sort
			{
				Keys:    bson.D{{Key: "role", Value: 1}, {Key: "name", Value: 1}},
				Options: options.Index().SetName("idx_role_name"),
			},
		},
		"years": {
			{
				Keys:    bson.D{{Key: "year", Value: 1}},
				Options: options.Index().SetName("uniq_year").SetUnique(true),
			},
		},
		"aspects": {
			{
				Keys:    bson.D{{Key: "name", Value: 1}, {Key: "year", Value: 1}},
				Options: options.Index().SetName("uniq_name_year").SetUnique(true),
			},
		},
		"checklist_items": {
			// year desc, aspect asc is the fixed listing order
			{
				Keys:    bson.D{{Key: "year", Value: -1}, {Key: "aspect", Value: 1}},
				Options: options.Index().SetName("idx_year_aspect"),
			},
		},
		"org_units": {
			{
				Keys: bson.D{
					{Key: "year", Value: 1},
					{Key: "directorate", Value: 1},
					{Key: "sub_directorate", Value: 1},
					{Key: "division", Value: 1},
				},
				Options: options.Index().SetName("uniq_unit_tuple").SetUnique(true),
			},
		},
		"assignments": {
			{
				Keys:    bson.D{{Key: "checklist_id", Value: 1}, {Key: "unit_id", Value: 1}},
				Options: options.Index().SetName("uniq_checklist_unit").SetUnique(true),
			},
			// year filter + status grouping for the stats pipeline
			{
				Keys:    bson.D{{Key: "year", Value: 1}, {Key: "status", Value: 1}},
				Options: options.Index().SetName("idx_year_status"),
			},
			{
				Keys:    bson.D{{Key: "unit_id", Value: 1}},
				Options: options.Index().SetName("idx_unit_id"),
			},
		},
		"file_records": {
			{
				Keys:    bson.D{{Key: "checklist_id", Value: 1}},
				Options: options.Index().SetName("idx_checklist_id"),
			},
			// year filter + mime grouping for the stats pipeline
			{
				Keys:    bson.D{{Key: "year", Value: 1}, {Key: "mime_type", Value: 1}},
				Options: options.Index().SetName("idx_year_mime"),
			},
			{
				Keys:    bson.D{{Key: "uploaded_by", Value: 1}},
				Options: options.Index().SetName("idx_uploaded_by"),
			},
		},
	}

	for name, indexes := range perCollection {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("failed to create %s indexes: %v", name, err)
		}
	}

	return nil
}
