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

type AspectRepository interface {
	Create(ctx context.Context, aspect *models.Aspect) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Aspect, error)
	List(ctx context.Context, filter models.AspectFilter) ([]models.Aspect, error)
	FindByNameYear(ctx context.Context, name string, year int, excludeID *primitive.ObjectID) (*models.Aspect, error)
	Update(ctx context.Context, id primitive.ObjectID, aspect *models.Aspect) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByYear(ctx context.Context, year int) (int64, error)
}

type aspectRepository struct {
	collection *mongo.Collection
}

func NewAspectRepository(db *mongo.Database) AspectRepository {
	return &aspectRepository{collection: db.Collection("aspects")}
}

func (r *aspectRepository) Create(ctx context.Context, aspect *models.Aspect) error {
	aspect.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, aspect)
	return err
}

func (r *aspectRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Aspect, error) {
	var aspect models.Aspect
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&aspect)
	if err != nil {
		return nil, err
	}

	return &aspect, nil
}

func (r *aspectRepository) List(ctx context.Context, filter models.AspectFilter) ([]models.Aspect, error) {
	query := bson.M{}
	if filter.Year != nil {
		query["year"] = *filter.Year
	}
	if filter.Search != nil {
		query["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(*filter.Search), Options: "i"}
	}

	opts := options.Find().SetSort(bson.D{{Key: "year", Value: -1}, {Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var aspects []models.Aspect
	if err = cursor.All(ctx, &aspects); err != nil {
		return nil, err
	}

	return aspects, nil
}

// FindByNameYear checks the (name, year) uniqueness key, optionally skipping
// one record during updates.
func (r *aspectRepository) FindByNameYear(ctx context.Context, name string, year int, excludeID *primitive.ObjectID) (*models.Aspect, error) {
	query := bson.M{"name": name, "year": year}
	if excludeID != nil {
		query["_id"] = bson.M{"$ne": *excludeID}
	}

	var aspect models.Aspect
	err := r.collection.FindOne(ctx, query).Decode(&aspect)
	if err != nil {
		return nil, err
	}

	return &aspect, nil
}

func (r *aspectRepository) Update(ctx context.Context, id primitive.ObjectID, aspect *models.Aspect) error {
	aspect.UpdatedAt = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": aspect})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *aspectRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *aspectRepository) CountByYear(ctx context.Context, year int) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"year": year})
}
