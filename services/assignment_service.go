package services

import (
	"context"
	"errors"
	"math"
	"time"

	"gcghub/apperrors"
	"gcghub/models"
	repository "gcghub/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CreateAssignmentRequest struct {
	ChecklistID primitive.ObjectID
	UnitID      primitive.ObjectID
	DueDate     *time.Time
	Notes       string
	AssignedBy  primitive.ObjectID
}

type AssignmentService interface {
	Create(ctx context.Context, req CreateAssignmentRequest) (*models.Assignment, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error)
	List(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, error)
	Update(ctx context.Context, id primitive.ObjectID, status *string, dueDate *time.Time, notes *string) (*models.Assignment, error)
	UpdateStatus(ctx context.Context, identity models.Identity, id primitive.ObjectID, status string) (*models.Assignment, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Stats(ctx context.Context, year *int) (*models.AssignmentStats, error)
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	checklists  repository.ChecklistRepository
	units       repository.OrgUnitRepository
}

func NewAssignmentService(
	assignments repository.AssignmentRepository,
	checklists repository.ChecklistRepository,
	units repository.OrgUnitRepository,
) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		checklists:  checklists,
		units:       units,
	}
}

// Create binds a checklist item to an org unit. Both sides must exist, their
// years must match, and the pair must not already be assigned.
func (s *assignmentService) Create(ctx context.Context, req CreateAssignmentRequest) (*models.Assignment, error) {
	checklist, err := s.checklists.GetByID(ctx, req.ChecklistID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(apperrors.Referential, "Checklist item not found")
		}
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch checklist item", err)
	}

	unit, err := s.units.GetByID(ctx, req.UnitID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(apperrors.Referential, "Organizational unit not found")
		}
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch org unit", err)
	}

	if checklist.Year != unit.Year {
		return nil, apperrors.New(apperrors.Validation, "Checklist item and organizational unit years do not match")
	}

	if _, err := s.assignments.FindByPair(ctx, req.ChecklistID, req.UnitID); err == nil {
		return nil, apperrors.New(apperrors.Duplicate, "Assignment already exists for this checklist item and organizational unit")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to check assignment", err)
	}

	assignment := &models.Assignment{
		ChecklistID: req.ChecklistID,
		UnitID:      req.UnitID,
		Year:        checklist.Year,
		Status:      models.StatusPending,
		DueDate:     req.DueDate,
		Notes:       req.Notes,
		AssignedBy:  req.AssignedBy,
		AssignedAt:  time.Now(),
	}

	if err := s.assignments.Create(ctx, assignment); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.New(apperrors.Duplicate, "Assignment already exists for this checklist item and organizational unit")
		}
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to create assignment", err)
	}

	return assignment, nil
}

func (s *assignmentService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(apperrors.NotFound, "Assignment not found")
		}
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch assignment", err)
	}

	return assignment, nil
}

func (s *assignmentService) List(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, error) {
	assignments, err := s.assignments.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch assignments", err)
	}

	return assignments, nil
}

func (s *assignmentService) Update(ctx context.Context, id primitive.ObjectID, status *string, dueDate *time.Time, notes *string) (*models.Assignment, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if status != nil {
		if !models.ValidStatus(*status) {
			return nil, apperrors.New(apperrors.Validation, "Invalid assignment status")
		}
		existing.Status = *status
	}
	if dueDate != nil {
		existing.DueDate = dueDate
	}
	if notes != nil {
		existing.Notes = *notes
	}

	if err := s.assignments.Update(ctx, id, existing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(apperrors.NotFound, "Assignment not found")
		}
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to update assignment", err)
	}

	return existing, nil
}

// UpdateStatus is the unit-scoped status change: non-admin callers must
// belong to the exact org unit the assignment targets.
func (s *assignmentService) UpdateStatus(ctx context.Context, identity models.Identity, id primitive.ObjectID, status string) (*models.Assignment, error) {
	if !models.ValidStatus(status) {
		return nil, apperrors.New(apperrors.Validation, "Invalid assignment status")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	unit, err := s.units.GetByID(ctx, existing.UnitID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(apperrors.Referential, "Organizational unit not found")
		}
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch org unit", err)
	}

	if err := CanUpdateAssignmentStatus(identity, *unit); err != nil {
		return nil, err
	}

	existing.Status = status

	if err := s.assignments.Update(ctx, id, existing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(apperrors.NotFound, "Assignment not found")
		}
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to update assignment", err)
	}

	return existing, nil
}

func (s *assignmentService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.assignments.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.New(apperrors.NotFound, "Assignment not found")
		}
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to delete assignment", err)
	}

	return nil
}

func (s *assignmentService) Stats(ctx context.Context, year *int) (*models.AssignmentStats, error) {
	total, err := s.assignments.Count(ctx, year)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to count assignments", err)
	}

	byStatus, err := s.assignments.GroupByStatus(ctx, year)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to group by status", err)
	}

	byMonth, err := s.assignments.GroupByMonth(ctx, year)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to group by month", err)
	}

	var completed int64
	for _, sc := range byStatus {
		if sc.Status == models.StatusCompleted {
			completed = sc.Count
			break
		}
	}

	return &models.AssignmentStats{
		Total:          total,
		ByStatus:       byStatus,
		ByMonth:        byMonth,
		CompletionRate: CompletionRate(completed, total),
	}, nil
}

// CompletionRate is round(100 * completed / total), defined as 0 for an
// empty set.
func CompletionRate(completed, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
