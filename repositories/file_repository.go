package repository

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"time"

	"gcghub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FileRepository interface {
	CreateRecord(ctx context.Context, record *models.FileRecord) error
	GetRecord(ctx context.Context, id primitive.ObjectID) (*models.FileRecord, error)
	ListRecords(ctx context.Context, filter models.FileFilter) ([]models.FileRecord, error)
	DeleteRecord(ctx context.Context, id primitive.ObjectID) error
	CountByChecklist(ctx context.Context, checklistID primitive.ObjectID) (int64, error)
	CountByUploader(ctx context.Context, userID primitive.ObjectID) (int64, error)
	// Content methods (GridFS)
	UploadContent(ctx context.Context, filename string, content io.Reader, uploadedBy string, contentType string) (primitive.ObjectID, error)
	DownloadContent(ctx context.Context, fileID primitive.ObjectID) (*gridfs.DownloadStream, error)
	DeleteContent(ctx context.Context, fileID primitive.ObjectID) error
	// Stats methods
	Count(ctx context.Context, year *int) (int64, error)
	Sizes(ctx context.Context, year *int) ([]float64, error)
	GroupByType(ctx context.Context, year *int) ([]models.TypeCount, error)
	GroupByMonth(ctx context.Context, year *int) ([]models.MonthCount, error)
}

type fileRepository struct {
	collection *mongo.Collection
	bucket     *gridfs.Bucket
}

func NewFileRepository(db *mongo.Database) FileRepository {
	bucket, err := gridfs.NewBucket(db)
	if err != nil {
		panic(fmt.Sprintf("Failed to create GridFS bucket: %v", err))
	}

	return &fileRepository{
		collection: db.Collection("file_records"),
		bucket:     bucket,
	}
}

func (r *fileRepository) CreateRecord(ctx context.Context, record *models.FileRecord) error {
	record.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, record)
	return err
}

func (r *fileRepository) GetRecord(ctx context.Context, id primitive.ObjectID) (*models.FileRecord, error) {
	var record models.FileRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *fileRepository) ListRecords(ctx context.Context, filter models.FileFilter) ([]models.FileRecord, error) {
	query := bson.M{}
	if filter.Year != nil {
		query["year"] = *filter.Year
	}
	if filter.ChecklistID != nil {
		query["checklist_id"] = *filter.ChecklistID
	}
	if filter.UploadedBy != nil {
		query["uploaded_by"] = *filter.UploadedBy
	}
	if filter.Search != nil {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(*filter.Search), Options: "i"}
		query["$or"] = []bson.M{
			{"stored_name": pattern},
			{"original_name": pattern},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.FileRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *fileRepository) DeleteRecord(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *fileRepository) CountByChecklist(ctx context.Context, checklistID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"checklist_id": checklistID})
}

func (r *fileRepository) CountByUploader(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"uploaded_by": userID})
}

// Content methods
func (r *fileRepository) UploadContent(ctx context.Context, filename string, content io.Reader, uploadedBy string, contentType string) (primitive.ObjectID, error) {
	uploadOpts := options.GridFSUpload().SetMetadata(bson.M{
		"uploadedBy":  uploadedBy,
		"uploadedAt":  time.Now(),
		"contentType": contentType,
	})

	fileID, err := r.bucket.UploadFromStream(filename, content, uploadOpts)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to upload file to GridFS: %v", err)
	}

	return fileID, nil
}

func (r *fileRepository) DownloadContent(ctx context.Context, fileID primitive.ObjectID) (*gridfs.DownloadStream, error) {
	downloadStream, err := r.bucket.OpenDownloadStream(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to download file from GridFS: %v", err)
	}

	return downloadStream, nil
}

func (r *fileRepository) DeleteContent(ctx context.Context, fileID primitive.ObjectID) error {
	return r.bucket.Delete(fileID)
}

// Stats methods
func (r *fileRepository) Count(ctx context.Context, year *int) (int64, error) {
	query := bson.M{}
	if year != nil {
		query["year"] = *year
	}
	return r.collection.CountDocuments(ctx, query)
}

// Sizes returns every matching record's size for mean/median computation.
func (r *fileRepository) Sizes(ctx context.Context, year *int) ([]float64, error) {
	query := bson.M{}
	if year != nil {
		query["year"] = *year
	}

	opts := options.Find().SetProjection(bson.M{"size": 1})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sizes []float64
	for cursor.Next(ctx) {
		var doc struct {
			Size int64 `bson:"size"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		sizes = append(sizes, float64(doc.Size))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return sizes, nil
}

func (r *fileRepository) GroupByType(ctx context.Context, year *int) ([]models.TypeCount, error) {
	match := bson.M{}
	if year != nil {
		match["year"] = *year
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$mime_type",
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.TypeCount
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	return results, nil
}

func (r *fileRepository) GroupByMonth(ctx context.Context, year *int) ([]models.MonthCount, error) {
	match := bson.M{}
	if year != nil {
		match["year"] = *year
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m",
				"date":   "$uploaded_at",
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
