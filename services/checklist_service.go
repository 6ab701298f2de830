package services

import (
	"context"
	"errors"
	"time"

	"gcghub/apperrors"
	"gcghub/models"
	repository "gcghub/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ChecklistService interface {
	Create(ctx context.Context, item *models.ChecklistItem) (*models.ChecklistItem, error)
	GetByID(ctx context.Context, identity models.Identity, id primitive.ObjectID) (*models.ChecklistItem, error)
	List(ctx context.Context, filter models.ChecklistFilter) ([]models.ChecklistItem, error)
	Update(ctx context.Context, id primitive.ObjectID, aspect, description string, year int) (*models.ChecklistItem, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Status(ctx context.Context, id primitive.ObjectID) (*models.ChecklistStatus, error)
}

type checklistService struct {
	checklists  repository.ChecklistRepository
	aspects     repository.AspectRepository
	years       repository.YearRepository
	assignments repository.AssignmentRepository
	units       repository.OrgUnitRepository
	files       repository.FileRepository
}

func NewChecklistService(
	checklists repository.ChecklistRepository,
	aspects repository.AspectRepository,
	years repository.YearRepository,
	assignments repository.AssignmentRepository,
	units repository.OrgUnitRepository,
	files repository.FileRepository,
) ChecklistService {
	return &checklistService{
		checklists:  checklists,
		aspects:     aspects,
		years:       years,
		assignments: assignments,
		units:       units,
		files:       files,
	}
}

// validate checks the referenced year and that the aspect exists for that
// year. The aspect is matched by name, not by id.
func (s *checklistService) validate(ctx context.Context, aspect string, year int) error {
	if _, err := s.years.GetByYear(ctx, year); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.New(apperrors.Referential, "Year does not exist")
		}
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to check year", err)
	}

	if _, err := s.aspects.FindByNameYear(ctx, aspect, year, nil); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.New(apperrors.Referential, "Aspect does not exist for the specified year")
		}
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to check aspect", err)
	}

	return nil
}

func (s *checklistService) Create(ctx context.Context, item *models.ChecklistItem) (*models.ChecklistItem, error) {
	if err := s.validate(ctx, item.Aspect, item.Year); err != nil {
		return nil, err
	}

	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.checklists.Create(ctx, item); err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to create checklist item", err)
	}

	return item, nil
}

// GetByID loads a checklist item and enforces assignment-scoped access for
// non-admin callers.
func (s *checklistService) GetByID(ctx context.Context, identity models.Identity, id primitive.ObjectID) (*models.ChecklistItem, error) {
	item, err := s.checklists.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(apperrors.NotFound, "Checklist item not found")
		}
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch checklist item", err)
	}

	if !identity.IsAdmin() {
		assignedUnits, err := s.assignedUnits(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := CanAccessChecklist(identity, assignedUnits); err != nil {
			return nil, err
		}
	}

	return item, nil
}

// assignedUnits resolves the org units of every assignment on the item.
func (s *checklistService) assignedUnits(ctx context.Context, checklistID primitive.ObjectID) ([]models.OrgUnit, error) {
	assignments, err := s.assignments.ListByChecklist(ctx, checklistID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch assignments", err)
	}

	units := make([]models.OrgUnit, 0, len(assignments))
	for _, assignment := range assignments {
		unit, err := s.units.GetByID(ctx, assignment.UnitID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				continue
			}
			return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch org unit", err)
		}
		units = append(units, *unit)
	}

	return units, nil
}

func (s *checklistService) List(ctx context.Context, filter models.ChecklistFilter) ([]models.ChecklistItem, error) {
	items, err := s.checklists.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch checklist items", err)
	}

	return items, nil
}

func (s *checklistService) Update(ctx context.Context, id primitive.ObjectID, aspect, description string, year int) (*models.ChecklistItem, error) {
	existing, err := s.checklists.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(apperrors.NotFound, "Checklist item not found")
		}
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch checklist item", err)
	}

	if err := s.validate(ctx, aspect, year); err != nil {
		return nil, err
	}

	existing.Aspect = aspect
	existing.Description = description
	existing.Year = year

	if err := s.checklists.Update(ctx, id, existing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(apperrors.NotFound, "Checklist item not found")
		}
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to update checklist item", err)
	}

	return existing, nil
}

func (s *checklistService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.checklists.GetByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.New(apperrors.NotFound, "Checklist item not found")
		}
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch checklist item", err)
	}

	fileCount, err := s.files.CountByChecklist(ctx, id)
	if err != nil {
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to count files", err)
	}
	assignmentCount, err := s.assignments.CountByChecklist(ctx, id)
	if err != nil {
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to count assignments", err)
	}

	dependents := fileCount + assignmentCount
	if dependents > 0 {
		return apperrors.NewConflict("Cannot delete checklist item with existing files or assignments. Please delete related data first.", int(dependents))
	}

	if err := s.checklists.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.New(apperrors.NotFound, "Checklist item not found")
		}
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to delete checklist item", err)
	}

	return nil
}

// Status summarizes fulfillment: a file uploaded, any assignment present, and
// completion (some assignment reached COMPLETED).
func (s *checklistService) Status(ctx context.Context, id primitive.ObjectID) (*models.ChecklistStatus, error) {
	if _, err := s.checklists.GetByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(apperrors.NotFound, "Checklist item not found")
		}
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch checklist item", err)
	}

	fileCount, err := s.files.CountByChecklist(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to count files", err)
	}

	assignments, err := s.assignments.ListByChecklist(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch assignments", err)
	}

	completed := false
	for _, assignment := range assignments {
		if assignment.Status == models.StatusCompleted {
			completed = true
			break
		}
	}

	return &models.ChecklistStatus{
		Uploaded:         fileCount > 0,
		Assigned:         len(assignments) > 0,
		Completed:        len(assignments) > 0 && completed,
		FilesCount:       fileCount,
		AssignmentsCount: int64(len(assignments)),
	}, nil
}
