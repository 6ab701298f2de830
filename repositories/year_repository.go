package repository

import (
	"context"
	"time"

	"gcghub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type YearRepository interface {
	Create(ctx context.Context, year *models.Year) error
	GetByYear(ctx context.Context, yearNumber int) (*models.Year, error)
	List(ctx context.Context) ([]models.Year, error)
	Update(ctx context.Context, yearNumber int, year *models.Year) error
	Delete(ctx context.Context, yearNumber int) error
}

type yearRepository struct {
	collection *mongo.Collection
}

func NewYearRepository(db *mongo.Database) YearRepository {
	return &yearRepository{collection: db.Collection("years")}
}

func (r *yearRepository) Create(ctx context.Context, year *models.Year) error {
	year.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, year)
	return err
}

func (r *yearRepository) GetByYear(ctx context.Context, yearNumber int) (*models.Year, error) {
	var year models.Year
	err := r.collection.FindOne(ctx, bson.M{"year": yearNumber}).Decode(&year)
	if err != nil {
		return nil, err
	}

	return &year, nil
}

func (r *yearRepository) List(ctx context.Context) ([]models.Year, error) {
	opts := options.Find().SetSort(bson.D{{Key: "year", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var years []models.Year
	if err = cursor.All(ctx, &years); err != nil {
		return nil, err
	}

	return years, nil
}

func (r *yearRepository) Update(ctx context.Context, yearNumber int, year *models.Year) error {
	year.UpdatedAt = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"year": yearNumber}, bson.M{"$set": year})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *yearRepository) Delete(ctx context.Context, yearNumber int) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"year": yearNumber})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}
