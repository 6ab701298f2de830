package repository

import (
	"context"

	"gcghub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error)
	List(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, error)
	FindByPair(ctx context.Context, checklistID, unitID primitive.ObjectID) (*models.Assignment, error)
	Update(ctx context.Context, id primitive.ObjectID, assignment *models.Assignment) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByChecklist(ctx context.Context, checklistID primitive.ObjectID) (int64, error)
	CountByUnit(ctx context.Context, unitID primitive.ObjectID) (int64, error)
	CountByAssigner(ctx context.Context, userID primitive.ObjectID) (int64, error)
	ListByChecklist(ctx context.Context, checklistID primitive.ObjectID) ([]models.Assignment, error)
	Count(ctx context.Context, year *int) (int64, error)
	GroupByStatus(ctx context.Context, year *int) ([]models.StatusCount, error)
	GroupByMonth(ctx context.Context, year *int) ([]models.MonthCount, error)
}

type assignmentRepository struct {
	collection *mongo.Collection
}

func NewAssignmentRepository(db *mongo.Database) AssignmentRepository {
	return &assignmentRepository{collection: db.Collection("assignments")}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	assignment.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, assignment)
	return err
}

func (r *assignmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error) {
	var assignment models.Assignment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&assignment)
	if err != nil {
		return nil, err
	}

	return &assignment, nil
}

func (r *assignmentRepository) List(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, error) {
	query := bson.M{}
	if filter.Year != nil {
		query["year"] = *filter.Year
	}
	if filter.ChecklistID != nil {
		query["checklist_id"] = *filter.ChecklistID
	}
	if filter.UnitID != nil {
		query["unit_id"] = *filter.UnitID
	}
	if filter.Status != nil {
		query["status"] = *filter.Status
	}
	if filter.AssignedBy != nil {
		query["assigned_by"] = *filter.AssignedBy
	}

	opts := options.Find().SetSort(bson.D{{Key: "assigned_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assignments []models.Assignment
	if err = cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}

	return assignments, nil
}

// FindByPair checks the (checklist, unit) uniqueness key.
func (r *assignmentRepository) FindByPair(ctx context.Context, checklistID, unitID primitive.ObjectID) (*models.Assignment, error) {
	query := bson.M{"checklist_id": checklistID, "unit_id": unitID}

	var assignment models.Assignment
	err := r.collection.FindOne(ctx, query).Decode(&assignment)
	if err != nil {
		return nil, err
	}

	return &assignment, nil
}

func (r *assignmentRepository) Update(ctx context.Context, id primitive.ObjectID, assignment *models.Assignment) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": assignment})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *assignmentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *assignmentRepository) CountByChecklist(ctx context.Context, checklistID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"checklist_id": checklistID})
}

func (r *assignmentRepository) CountByUnit(ctx context.Context, unitID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"unit_id": unitID})
}

func (r *assignmentRepository) CountByAssigner(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"assigned_by": userID})
}

func (r *assignmentRepository) ListByChecklist(ctx context.Context, checklistID primitive.ObjectID) ([]models.Assignment, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"checklist_id": checklistID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assignments []models.Assignment
	if err = cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *assignmentRepository) Count(ctx context.Context, year *int) (int64, error) {
	query := bson.M{}
	if year != nil {
		query["year"] = *year
	}
	return r.collection.CountDocuments(ctx, query)
}

func (r *assignmentRepository) GroupByStatus(ctx context.Context, year *int) ([]models.StatusCount, error) {
	match := bson.M{}
	if year != nil {
		match["year"] = *year
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.StatusCount
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	return results, nil
}

func (r *assignmentRepository) GroupByMonth(ctx context.Context, year *int) ([]models.MonthCount, error) {
	match := bson.M{}
	if year != nil {
		match["year"] = *year
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m",
				"date":   "$assigned_at",
			}},
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.MonthCount
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	return results, nil
}
