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

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByUsernameOrEmail(ctx context.Context, login string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string, excludeID *primitive.ObjectID) (*models.User, error)
	List(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, user *models.User) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{collection: db.Collection("users")}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, user)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) GetByUsernameOrEmail(ctx context.Context, login string) (*models.User, error) {
	filter := bson.M{"$or": []bson.M{
		{"username": login},
		{"email": login},
	}}

	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// FindByEmail looks up a user by email, optionally skipping one record so
// updates can re-check uniqueness against everyone else.
func (r *userRepository) FindByEmail(ctx context.Context, email string, excludeID *primitive.ObjectID) (*models.User, error) {
	filter := bson.M{"email": email}
	if excludeID != nil {
		filter["_id"] = bson.M{"$ne": *excludeID}
	}

	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	query := bson.M{}
	if filter.Role != nil {
		query["role"] = *filter.Role
	}
	if filter.Directorate != nil {
		query["directorate"] = *filter.Directorate
	}
	if filter.SubDirectorate != nil {
		query["sub_directorate"] = *filter.SubDirectorate
	}
	if filter.Search != nil {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(*filter.Search), Options: "i"}
		query["$or"] = []bson.M{
			{"name": pattern},
			{"username": pattern},
			{"email": pattern},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "role", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) Update(ctx context.Context, id primitive.ObjectID, user *models.User) error {
	user.UpdatedAt = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": user})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	update := bson.M{"$set": bson.M{
		"password":   hash,
		"updated_at": time.Now(),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *userRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
