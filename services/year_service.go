package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gcghub/apperrors"
	"gcghub/models"
	repository "gcghub/repositories"

	"go.mongodb.org/mongo-driver/mongo"
)

type YearService interface {
	Create(ctx context.Context, year *models.Year) (*models.Year, error)
	GetByYear(ctx context.Context, yearNumber int) (*models.Year, error)
	Detail(ctx context.Context, yearNumber int) (*models.YearDetail, error)
	List(ctx context.Context) ([]models.Year, error)
	Update(ctx context.Context, yearNumber int, name, description *string, isActive *bool) (*models.Year, error)
	Delete(ctx context.Context, yearNumber int) error
	Stats(ctx context.Context, yearNumber int) (*models.YearStats, error)
}

type yearService struct {
	years      repository.YearRepository
	aspects    repository.AspectRepository
	checklists repository.ChecklistRepository
	units      repository.OrgUnitRepository
	users      repository.UserRepository
}

func NewYearService(
	years repository.YearRepository,
	aspects repository.AspectRepository,
	checklists repository.ChecklistRepository,
	units repository.OrgUnitRepository,
	users repository.UserRepository,
) YearService {
	return &yearService{
		years:      years,
		aspects:    aspects,
		checklists: checklists,
		units:      units,
		users:      users,
	}
}

func (s *yearService) Create(ctx context.Context, year *models.Year) (*models.Year, error) {
	if year.Year < 1900 || year.Year > 2100 {
		return nil, apperrors.New(apperrors.Validation, "Invalid year format (1900-2100)")
	}

	if _, err := s.years.GetByYear(ctx, year.Year); err == nil {
		return nil, apperrors.New(apperrors.Duplicate, "Year already exists")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to check year", err)
	}

	if year.Name == "" {
		year.Name = fmt.Sprintf("Book Year %d", year.Year)
	}
	if year.Description == "" {
		year.Description = fmt.Sprintf("Compliance book year %d", year.Year)
	}

	now := time.Now()
	year.CreatedAt = now
	year.UpdatedAt = now

	if err := s.years.Create(ctx, year); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.New(apperrors.Duplicate, "Year already exists")
		}
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to create year", err)
	}

	return year, nil
}

func (s *yearService) GetByYear(ctx context.Context, yearNumber int) (*models.Year, error) {
	year, err := s.years.GetByYear(ctx, yearNumber)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(apperrors.NotFound, "Year not found")
		}
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch year", err)
	}

	return year, nil
}

// Detail loads the year together with the aspects, checklist items and org
// units registered under it.
func (s *yearService) Detail(ctx context.Context, yearNumber int) (*models.YearDetail, error) {
	year, err := s.GetByYear(ctx, yearNumber)
	if err != nil {
		return nil, err
	}

	aspects, err := s.aspects.List(ctx, models.AspectFilter{Year: &yearNumber})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch aspects", err)
	}
	checklist, err := s.checklists.List(ctx, models.ChecklistFilter{Year: &yearNumber})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch checklist items", err)
	}
	units, err := s.units.List(ctx, models.OrgUnitFilter{Year: &yearNumber})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch org units", err)
	}

	return &models.YearDetail{
		Year:      year,
		Aspects:   aspects,
		Checklist: checklist,
		Units:     units,
	}, nil
}

func (s *yearService) List(ctx context.Context) ([]models.Year, error) {
	years, err := s.years.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch years", err)
	}

	return years, nil
}

func (s *yearService) Update(ctx context.Context, yearNumber int, name, description *string, isActive *bool) (*models.Year, error) {
	existing, err := s.GetByYear(ctx, yearNumber)
	if err != nil {
		return nil, err
	}

	if name != nil {
		existing.Name = *name
	}
	if description != nil {
		existing.Description = *description
	}
	if isActive != nil {
		existing.IsActive = *isActive
	}

	if err := s.years.Update(ctx, yearNumber, existing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(apperrors.NotFound, "Year not found")
		}
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to update year", err)
	}

	return existing, nil
}

// Delete refuses to remove a year that still has aspects, checklist items or
// org units. The three counts are separate queries; a racing insert can slip
// past them, which is the documented check-then-act tradeoff.
func (s *yearService) Delete(ctx context.Context, yearNumber int) error {
	if _, err := s.GetByYear(ctx, yearNumber); err != nil {
		return err
	}

	aspectCount, err := s.aspects.CountByYear(ctx, yearNumber)
	if err != nil {
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to count aspects", err)
	}
	checklistCount, err := s.checklists.CountByYear(ctx, yearNumber)
	if err != nil {
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to count checklist items", err)
	}
	unitCount, err := s.units.CountByYear(ctx, yearNumber)
	if err != nil {
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to count org units", err)
	}

	dependents := aspectCount + checklistCount + unitCount
	if dependents > 0 {
		return apperrors.NewConflict("Cannot delete year with existing data. Please delete related data first.", int(dependents))
	}

	if err := s.years.Delete(ctx, yearNumber); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.New(apperrors.NotFound, "Year not found")
		}
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to delete year", err)
	}

	return nil
}

func (s *yearService) Stats(ctx context.Context, yearNumber int) (*models.YearStats, error) {
	aspectCount, err := s.aspects.CountByYear(ctx, yearNumber)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to count aspects", err)
	}
	checklistCount, err := s.checklists.CountByYear(ctx, yearNumber)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to count checklist items", err)
	}
	unitCount, err := s.units.CountByYear(ctx, yearNumber)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to count org units", err)
	}
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to count users", err)
	}

	return &models.YearStats{
		Year:      yearNumber,
		Aspects:   aspectCount,
		Checklist: checklistCount,
		Units:     unitCount,
		Users:     userCount,
		Progress: models.YearProgress{
			Aspects:   BinaryProgress(aspectCount),
			Checklist: BinaryProgress(checklistCount),
			Units:     BinaryProgress(unitCount),
		},
	}, nil
}

// BinaryProgress is the year dashboard's coarse indicator: 100 when the
// category has any records, 0 otherwise.
func BinaryProgress(count int64) int {
	if count > 0 {
		return 100
	}
	return 0
}
