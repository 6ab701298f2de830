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

type OrgUnitRepository interface {
	Create(ctx context.Context, unit *models.OrgUnit) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.OrgUnit, error)
	List(ctx context.Context, filter models.OrgUnitFilter) ([]models.OrgUnit, error)
	FindByTuple(ctx context.Context, year int, directorate, subDirectorate string, division *string, excludeID *primitive.ObjectID) (*models.OrgUnit, error)
	Update(ctx context.Context, id primitive.ObjectID, unit *models.OrgUnit) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByYear(ctx context.Context, year int) (int64, error)
	Count(ctx context.Context, year *int) (int64, error)
	GroupByField(ctx context.Context, field string, year *int) ([]models.NameCount, error)
}

type orgUnitRepository struct {
	collection *mongo.Collection
}

func NewOrgUnitRepository(db *mongo.Database) OrgUnitRepository {
	return &orgUnitRepository{collection: db.Collection("org_units")}
}

func (r *orgUnitRepository) Create(ctx context.Context, unit *models.OrgUnit) error {
	unit.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, unit)
	return err
}

func (r *orgUnitRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.OrgUnit, error) {
	var unit models.OrgUnit
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&unit)
	if err != nil {
		return nil, err
	}

	return &unit, nil
}

func (r *orgUnitRepository) List(ctx context.Context, filter models.OrgUnitFilter) ([]models.OrgUnit, error) {
	query := bson.M{}
	if filter.Year != nil {
		query["year"] = *filter.Year
	}
	if filter.Directorate != nil {
		query["directorate"] = *filter.Directorate
	}
	if filter.SubDirectorate != nil {
		query["sub_directorate"] = *filter.SubDirectorate
	}
	if filter.Division != nil {
		query["division"] = *filter.Division
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "year", Value: -1},
		{Key: "directorate", Value: 1},
		{Key: "sub_directorate", Value: 1},
		{Key: "division", Value: 1},
	})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var units []models.OrgUnit
	if err = cursor.All(ctx, &units); err != nil {
		return nil, err
	}

	return units, nil
}

// FindByTuple checks the (year, directorate, sub-directorate, division)
// uniqueness key. A nil division matches documents where division is null.
func (r *orgUnitRepository) FindByTuple(ctx context.Context, year int, directorate, subDirectorate string, division *string, excludeID *primitive.ObjectID) (*models.OrgUnit, error) {
	query := bson.M{
		"year":            year,
		"directorate":     directorate,
		"sub_directorate": subDirectorate,
	}
	if division != nil {
		query["division"] = *division
	} else {
		query["division"] = nil
	}
	if excludeID != nil {
		query["_id"] = bson.M{"$ne": *excludeID}
	}

	var unit models.OrgUnit
	err := r.collection.FindOne(ctx, query).Decode(&unit)
	if err != nil {
		return nil, err
	}

	return &unit, nil
}

func (r *orgUnitRepository) Update(ctx context.Context, id primitive.ObjectID, unit *models.OrgUnit) error {
	unit.UpdatedAt = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": unit})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *orgUnitRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *orgUnitRepository) CountByYear(ctx context.Context, year int) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"year": year})
}

func (r *orgUnitRepository) Count(ctx context.Context, year *int) (int64, error) {
	query := bson.M{}
	if year != nil {
		query["year"] = *year
	}
	return r.collection.CountDocuments(ctx, query)
}

// GroupByField counts units per distinct value of one organizational
// dimension. Null values (unset divisions) are dropped from the result.
func (r *orgUnitRepository) GroupByField(ctx context.Context, field string, year *int) ([]models.NameCount, error) {
	match := bson.M{field: bson.M{"$ne": nil}}
	if year != nil {
		match["year"] = *year
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$" + field,
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.NameCount
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	return results, nil
}
