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

type AspectService interface {
	Create(ctx context.Context, aspect *models.Aspect) (*models.Aspect, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Aspect, error)
	List(ctx context.Context, filter models.AspectFilter) ([]models.Aspect, error)
	Update(ctx context.Context, id primitive.ObjectID, name string, year int) (*models.Aspect, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Checklist(ctx context.Context, id primitive.ObjectID) (*models.Aspect, []models.ChecklistItem, error)
}

type aspectService struct {
	aspects    repository.AspectRepository
	years      repository.YearRepository
	checklists repository.ChecklistRepository
}

func NewAspectService(
	aspects repository.AspectRepository,
	years repository.YearRepository,
	checklists repository.ChecklistRepository,
) AspectService {
	return &aspectService{
		aspects:    aspects,
		years:      years,
		checklists: checklists,
	}
}

// validate checks the referenced year and the (name, year) uniqueness key.
func (s *aspectService) validate(ctx context.Context, name string, year int, excludeID *primitive.ObjectID) error {
	if _, err := s.years.GetByYear(ctx, year); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.New(apperrors.Referential, "Year does not exist")
		}
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to check year", err)
	}

	if _, err := s.aspects.FindByNameYear(ctx, name, year, excludeID); err == nil {
		return apperrors.New(apperrors.Duplicate, "Aspect already exists for the specified year")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to check aspect", err)
	}

	return nil
}

func (s *aspectService) Create(ctx context.Context, aspect *models.Aspect) (*models.Aspect, error) {
	if err := s.validate(ctx, aspect.Name, aspect.Year, nil); err != nil {
		return nil, err
	}

	now := time.Now()
	aspect.CreatedAt = now
	aspect.UpdatedAt = now

	if err := s.aspects.Create(ctx, aspect); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.New(apperrors.Duplicate, "Aspect already exists for the specified year")
		}
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to create aspect", err)
	}

	return aspect, nil
}

func (s *aspectService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Aspect, error) {
	aspect, err := s.aspects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(apperrors.NotFound, "Aspect not found")
		}
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch aspect", err)
	}

	return aspect, nil
}

func (s *aspectService) List(ctx context.Context, filter models.AspectFilter) ([]models.Aspect, error) {
	aspects, err := s.aspects.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch aspects", err)
	}

	return aspects, nil
}

func (s *aspectService) Update(ctx context.Context, id primitive.ObjectID, name string, year int) (*models.Aspect, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validate(ctx, name, year, &id); err != nil {
		return nil, err
	}

	existing.Name = name
	existing.Year = year

	if err := s.aspects.Update(ctx, id, existing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(apperrors.NotFound, "Aspect not found")
		}
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to update aspect", err)
	}

	return existing, nil
}

func (s *aspectService) Delete(ctx context.Context, id primitive.ObjectID) error {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.checklists.CountByAspect(ctx, existing.Name, existing.Year)
	if err != nil {
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to count checklist items", err)
	}
	if count > 0 {
		return apperrors.NewConflict("Cannot delete aspect. It has related checklist items. Please delete or reassign checklist items first.", int(count))
	}

	if err := s.aspects.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.New(apperrors.NotFound, "Aspect not found")
		}
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to delete aspect", err)
	}

	return nil
}

// Checklist returns the aspect together with its checklist items, matched by
// aspect name within the aspect's year.
func (s *aspectService) Checklist(ctx context.Context, id primitive.ObjectID) (*models.Aspect, []models.ChecklistItem, error) {
	aspect, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	items, err := s.checklists.List(ctx, models.ChecklistFilter{
		Year:   &aspect.Year,
		Aspect: &aspect.Name,
	})
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch checklist items", err)
	}

	return aspect, items, nil
}
