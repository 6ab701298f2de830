package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"gcghub/apperrors"
	"gcghub/models"
	repository "gcghub/repositories"

	"github.com/montanaflynn/stats"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.uber.org/zap"
)

// AllowedMimeTypes is the upload allow-list: documents and images only.
var AllowedMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"text/plain": true,
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

type UploadRequest struct {
	ChecklistID  primitive.ObjectID
	Year         int
	OriginalName string
	MimeType     string
	Size         int64
	Content      io.Reader
	UploadedBy   primitive.ObjectID
	UploaderName string
}

type FileService interface {
	Upload(ctx context.Context, req UploadRequest) (*models.FileRecord, error)
	GetRecord(ctx context.Context, id primitive.ObjectID) (*models.FileRecord, error)
	List(ctx context.Context, filter models.FileFilter) ([]models.FileRecord, error)
	Download(ctx context.Context, id primitive.ObjectID) (*models.FileRecord, *gridfs.DownloadStream, error)
	Delete(ctx context.Context, identity models.Identity, id primitive.ObjectID) error
	Stats(ctx context.Context, year *int) (*models.FileStats, error)
}

type fileService struct {
	files       repository.FileRepository
	checklists  repository.ChecklistRepository
	maxFileSize int64
	log         *zap.SugaredLogger
}

func NewFileService(
	files repository.FileRepository,
	checklists repository.ChecklistRepository,
	maxFileSize int64,
	log *zap.SugaredLogger,
) FileService {
	return &fileService{
		files:       files,
		checklists:  checklists,
		maxFileSize: maxFileSize,
		log:         log,
	}
}

// Upload validates type, size and the checklist reference before any byte is
// written, streams the content into GridFS, then creates the metadata record.
// If the record insert fails the stored content is removed so no orphan is
// left behind.
func (s *fileService) Upload(ctx context.Context, req UploadRequest) (*models.FileRecord, error) {
	if !AllowedMimeTypes[req.MimeType] {
		return nil, apperrors.New(apperrors.Validation, "Invalid file type. Only documents and images are allowed.")
	}
	if req.Size > s.maxFileSize {
		return nil, apperrors.Newf(apperrors.Validation, "File too large. Maximum size is %dMB", s.maxFileSize/1024/1024)
	}

	checklist, err := s.checklists.GetByID(ctx, req.ChecklistID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(apperrors.Referential, "Checklist item not found")
		}
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch checklist item", err)
	}
	if checklist.Year != req.Year {
		return nil, apperrors.New(apperrors.Validation, "Checklist item year does not match")
	}

	storedName := fmt.Sprintf("file-%d-%s", time.Now().UnixNano(), req.OriginalName)

	fileID, err := s.files.UploadContent(ctx, storedName, req.Content, req.UploaderName, req.MimeType)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to store file content", err)
	}
	s.log.Infow("file content stored", "file_id", fileID.Hex(), "name", req.OriginalName)

	record := &models.FileRecord{
		FileID:       fileID,
		StoredName:   storedName,
		OriginalName: req.OriginalName,
		Size:         req.Size,
		MimeType:     req.MimeType,
		ChecklistID:  req.ChecklistID,
		Year:         req.Year,
		UploadedBy:   req.UploadedBy,
		UploadedAt:   time.Now(),
	}

	if err := s.files.CreateRecord(ctx, record); err != nil {
		s.log.Errorw("file record insert failed, removing stored content", "file_id", fileID.Hex(), "error", err)
		if cleanupErr := s.files.DeleteContent(context.Background(), fileID); cleanupErr != nil {
			s.log.Errorw("failed to clean up stored content", "file_id", fileID.Hex(), "error", cleanupErr)
		}
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to create file record", err)
	}

	return record, nil
}

func (s *fileService) GetRecord(ctx context.Context, id primitive.ObjectID) (*models.FileRecord, error) {
	record, err := s.files.GetRecord(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(apperrors.NotFound, "File not found")
		}
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch file record", err)
	}

	return record, nil
}

func (s *fileService) List(ctx context.Context, filter models.FileFilter) ([]models.FileRecord, error) {
	records, err := s.files.ListRecords(ctx, filter)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch file records", err)
	}

	return records, nil
}

func (s *fileService) Download(ctx context.Context, id primitive.ObjectID) (*models.FileRecord, *gridfs.DownloadStream, error) {
	record, err := s.GetRecord(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.files.DownloadContent(ctx, record.FileID)
	if err != nil {
		return nil, nil, apperrors.New(apperrors.NotFound, "File content not found")
	}

	return record, stream, nil
}

// Delete removes the record and then the content. A missing content blob is
// tolerated: the record is the source of truth and must go regardless.
func (s *fileService) Delete(ctx context.Context, identity models.Identity, id primitive.ObjectID) error {
	record, err := s.GetRecord(ctx, id)
	if err != nil {
		return err
	}

	if err := CanModifyFile(identity, record.UploadedBy); err != nil {
		return err
	}

	if err := s.files.DeleteContent(ctx, record.FileID); err != nil {
		s.log.Warnw("failed to delete stored content, continuing with record delete", "file_id", record.FileID.Hex(), "error", err)
	}

	if err := s.files.DeleteRecord(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.New(apperrors.NotFound, "File not found")
		}
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to delete file record", err)
	}

	return nil
}

func (s *fileService) Stats(ctx context.Context, year *int) (*models.FileStats, error) {
	total, err := s.files.Count(ctx, year)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to count files", err)
	}

	sizes, err := s.files.Sizes(ctx, year)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch file sizes", err)
	}

	byType, err := s.files.GroupByType(ctx, year)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to group by type", err)
	}

	byMonth, err := s.files.GroupByMonth(ctx, year)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to group by month", err)
	}

	var totalSize, averageSize, medianSize int64
	if len(sizes) > 0 {
		sum, _ := stats.Sum(sizes)
		mean, _ := stats.Mean(sizes)
		median, _ := stats.Median(sizes)
		totalSize = int64(sum)
		averageSize = int64(math.Round(mean))
		medianSize = int64(math.Round(median))
	}

	return &models.FileStats{
		Total:       total,
		TotalSize:   totalSize,
		AverageSize: averageSize,
		MedianSize:  medianSize,
		ByType:      byType,
		ByMonth:     byMonth,
	}, nil
}
