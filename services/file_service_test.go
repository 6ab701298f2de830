package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"gcghub/apperrors"
	"gcghub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const testMaxFileSize = 10 * 1024 * 1024

func newFileService(files *fakeFileRepo, checklists *fakeChecklistRepo) FileService {
	return NewFileService(files, checklists, testMaxFileSize, zap.NewNop().Sugar())
}

func uploadReqFor(checklistID primitive.ObjectID) UploadRequest {
	return UploadRequest{
		ChecklistID:  checklistID,
		Year:         2024,
		OriginalName: "report.pdf",
		MimeType:     "application/pdf",
		Size:         1024,
		Content:      strings.NewReader("content"),
		UploadedBy:   primitive.NewObjectID(),
		UploaderName: "admin",
	}
}

func TestFileUpload(t *testing.T) {
	checklistID := primitive.NewObjectID()
	checklists := &fakeChecklistRepo{
		GetByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.ChecklistItem, error) {
			return &models.ChecklistItem{ID: checklistID, Aspect: "Transparency", Year: 2024}, nil
		},
	}

	t.Run("stores content and record", func(t *testing.T) {
		var stored int
		files := &fakeFileRepo{
			UploadContentFn: func(ctx context.Context, filename string, content io.Reader, uploadedBy, contentType string) (primitive.ObjectID, error) {
				stored++
				return primitive.NewObjectID(), nil
			},
		}
		svc := newFileService(files, checklists)

		record, err := svc.Upload(context.Background(), uploadReqFor(checklistID))
		require.NoError(t, err)
		assert.Equal(t, 1, stored)
		assert.Equal(t, "report.pdf", record.OriginalName)
		assert.Contains(t, record.StoredName, "report.pdf")
		assert.Equal(t, 2024, record.Year)
	})

	t.Run("disallowed mime type writes nothing", func(t *testing.T) {
		var stored int
		files := &fakeFileRepo{
			UploadContentFn: func(ctx context.Context, filename string, content io.Reader, uploadedBy, contentType string) (primitive.ObjectID, error) {
				stored++
				return primitive.NewObjectID(), nil
			},
		}
		svc := newFileService(files, checklists)

		req := uploadReqFor(checklistID)
		req.MimeType = "application/x-msdownload"
		_, err := svc.Upload(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))
		assert.Zero(t, stored)
	})

	t.Run("oversized file rejected before any write", func(t *testing.T) {
		svc := newFileService(&fakeFileRepo{}, checklists)

		req := uploadReqFor(checklistID)
		req.Size = testMaxFileSize + 1
		_, err := svc.Upload(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))
	})

	t.Run("unknown checklist item", func(t *testing.T) {
		svc := newFileService(&fakeFileRepo{}, &fakeChecklistRepo{})

		_, err := svc.Upload(context.Background(), uploadReqFor(checklistID))
		require.Error(t, err)
		assert.Equal(t, apperrors.Referential, apperrors.KindOf(err))
	})

	t.Run("year mismatch with checklist item", func(t *testing.T) {
		svc := newFileService(&fakeFileRepo{}, checklists)

		req := uploadReqFor(checklistID)
		req.Year = 2023
		_, err := svc.Upload(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))
	})

	t.Run("record insert failure removes the stored content", func(t *testing.T) {
		var deleted []primitive.ObjectID
		contentID := primitive.NewObjectID()
		files := &fakeFileRepo{
			UploadContentFn: func(ctx context.Context, filename string, content io.Reader, uploadedBy, contentType string) (primitive.ObjectID, error) {
				return contentID, nil
			},
			CreateRecordFn: func(ctx context.Context, record *models.FileRecord) error {
				return errors.New("insert failed")
			},
			DeleteContentFn: func(ctx context.Context, fileID primitive.ObjectID) error {
				deleted = append(deleted, fileID)
				return nil
			},
		}
		svc := newFileService(files, checklists)

		_, err := svc.Upload(context.Background(), uploadReqFor(checklistID))
		require.Error(t, err)
		assert.Equal(t, apperrors.StoreUnavailable, apperrors.KindOf(err))
		require.Len(t, deleted, 1)
		assert.Equal(t, contentID, deleted[0])
	})
}

func TestFileDelete(t *testing.T) {
	recordID := primitive.NewObjectID()
	ownerID := primitive.NewObjectID()

	newRepo := func() *fakeFileRepo {
		return &fakeFileRepo{
			GetRecordFn: func(ctx context.Context, id primitive.ObjectID) (*models.FileRecord, error) {
				return &models.FileRecord{ID: recordID, FileID: primitive.NewObjectID(), UploadedBy: ownerID}, nil
			},
		}
	}

	t.Run("uploader deletes own file", func(t *testing.T) {
		svc := newFileService(newRepo(), &fakeChecklistRepo{})
		identity := models.Identity{ID: ownerID, Role: models.RoleUser}
		assert.NoError(t, svc.Delete(context.Background(), identity, recordID))
	})

	t.Run("other user denied", func(t *testing.T) {
		svc := newFileService(newRepo(), &fakeChecklistRepo{})
		identity := models.Identity{ID: primitive.NewObjectID(), Role: models.RoleUser}

		err := svc.Delete(context.Background(), identity, recordID)
		require.Error(t, err)
		assert.Equal(t, apperrors.AccessDenied, apperrors.KindOf(err))
	})

	t.Run("missing content blob is tolerated", func(t *testing.T) {
		repo := newRepo()
		repo.DeleteContentFn = func(ctx context.Context, fileID primitive.ObjectID) error {
			return errors.New("content gone")
		}
		svc := newFileService(repo, &fakeChecklistRepo{})
		identity := models.Identity{ID: ownerID, Role: models.RoleUser}

		assert.NoError(t, svc.Delete(context.Background(), identity, recordID))
	})
}

func TestFileStats(t *testing.T) {
	files := &fakeFileRepo{
		CountFn: func(ctx context.Context, year *int) (int64, error) { return 3, nil },
		SizesFn: func(ctx context.Context, year *int) ([]float64, error) {
			return []float64{100, 200, 600}, nil
		},
	}
	svc := newFileService(files, &fakeChecklistRepo{})

	stats, err := svc.Stats(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(900), stats.TotalSize)
	assert.Equal(t, int64(300), stats.AverageSize)
	assert.Equal(t, int64(200), stats.MedianSize)
}

func TestFileStatsEmpty(t *testing.T) {
	svc := newFileService(&fakeFileRepo{}, &fakeChecklistRepo{})

	stats, err := svc.Stats(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Total)
	assert.Equal(t, int64(0), stats.AverageSize)
	assert.Equal(t, int64(0), stats.MedianSize)
}
