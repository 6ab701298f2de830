package repository

import (
	"context"
	"regexp"
	"time"

	"gcghub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ChecklistRepository interface {
	Create(ctx context.Context, item *models.ChecklistItem) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.ChecklistItem, error)
	List(ctx context.Context, filter models.ChecklistFilter) ([]models.ChecklistItem, error)
	Update(ctx context.Context, id primitive.ObjectID, item *models.ChecklistItem) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByYear(ctx context.Context, year int) (int64, error)
	CountByAspect(ctx context.Context, aspectName string, year int) (int64, error)
}

type checklistRepository struct {
	collection *mongo.Collection
}

func NewChecklistRepository(db *mongo.Database) ChecklistRepository {
	return &checklistRepository{collection: db.Collection("checklist_items")}
}

func (r *checklistRepository) Create(ctx context.Context, item *models.ChecklistItem) error {
	item.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, item)
	return err
}

func (r *checklistRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ChecklistItem, error) {
	var item models.ChecklistItem
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *checklistRepository) List(ctx context.Context, filter models.ChecklistFilter) ([]models.ChecklistItem, error) {
	query := bson.M{}
	if filter.Year != nil {
		query["year"] = *filter.Year
	}
	if filter.Aspect != nil {
		query["aspect"] = *filter.Aspect
	}
	if filter.Search != nil {
		query["description"] = primitive.Regex{Pattern: regexp.QuoteMeta(*filter.Search), Options: "i"}
	}

	// Fixed order: newest year first, then aspect, then insertion order.
	opts := options.Find().SetSort(bson.D{
		{Key: "year", Value: -1},
		{Key: "aspect", Value: 1},
		{Key: "_id", Value: 1},
	})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.ChecklistItem
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *checklistRepository) Update(ctx context.Context, id primitive.ObjectID, item *models.ChecklistItem) error {
	item.UpdatedAt = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": item})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *checklistRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *checklistRepository) CountByYear(ctx context.Context, year int) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"year": year})
}

func (r *checklistRepository) CountByAspect(ctx context.Context, aspectName string, year int) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"aspect": aspectName, "year": year})
}
