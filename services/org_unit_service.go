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

type OrgUnitService interface {
	Create(ctx context.Context, unit *models.OrgUnit) (*models.OrgUnit, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.OrgUnit, error)
	List(ctx context.Context, filter models.OrgUnitFilter) ([]models.OrgUnit, error)
	Update(ctx context.Context, id primitive.ObjectID, unit *models.OrgUnit) (*models.OrgUnit, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Assignments(ctx context.Context, id primitive.ObjectID) (*models.OrgUnit, []models.Assignment, error)
	Stats(ctx context.Context, year *int) (*models.OrgUnitStats, error)
}

type orgUnitService struct {
	units       repository.OrgUnitRepository
	years       repository.YearRepository
	assignments repository.AssignmentRepository
}

func NewOrgUnitService(
	units repository.OrgUnitRepository,
	years repository.YearRepository,
	assignments repository.AssignmentRepository,
) OrgUnitService {
	return &orgUnitService{
		units:       units,
		years:       years,
		assignments: assignments,
	}
}

func (s *orgUnitService) validate(ctx context.Context, unit *models.OrgUnit, excludeID *primitive.ObjectID) error {
	if _, err := s.years.GetByYear(ctx, unit.Year); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.New(apperrors.Referential, "Year does not exist")
		}
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to check year", err)
	}

	if _, err := s.units.FindByTuple(ctx, unit.Year, unit.Directorate, unit.SubDirectorate, unit.Division, excludeID); err == nil {
		return apperrors.New(apperrors.Duplicate, "Organizational unit already exists for the specified year")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to check org unit", err)
	}

	return nil
}

func (s *orgUnitService) Create(ctx context.Context, unit *models.OrgUnit) (*models.OrgUnit, error) {
	if err := s.validate(ctx, unit, nil); err != nil {
		return nil, err
	}

	now := time.Now()
	unit.CreatedAt = now
	unit.UpdatedAt = now

	if err := s.units.Create(ctx, unit); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.New(apperrors.Duplicate, "Organizational unit already exists for the specified year")
		}
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to create org unit", err)
	}

	return unit, nil
}

func (s *orgUnitService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.OrgUnit, error) {
	unit, err := s.units.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(apperrors.NotFound, "Organizational unit not found")
		}
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch org unit", err)
	}

	return unit, nil
}

func (s *orgUnitService) List(ctx context.Context, filter models.OrgUnitFilter) ([]models.OrgUnit, error) {
	units, err := s.units.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch org units", err)
	}

	return units, nil
}

func (s *orgUnitService) Update(ctx context.Context, id primitive.ObjectID, unit *models.OrgUnit) (*models.OrgUnit, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validate(ctx, unit, &id); err != nil {
		return nil, err
	}

	existing.Year = unit.Year
	existing.Directorate = unit.Directorate
	existing.SubDirectorate = unit.SubDirectorate
	existing.Division = unit.Division

	if err := s.units.Update(ctx, id, existing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(apperrors.NotFound, "Organizational unit not found")
		}
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to update org unit", err)
	}

	return existing, nil
}

func (s *orgUnitService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.assignments.CountByUnit(ctx, id)
	if err != nil {
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to count assignments", err)
	}
	if count > 0 {
		return apperrors.NewConflict("Cannot delete organizational unit. It has related assignments. Please reassign or delete assignments first.", int(count))
	}

	if err := s.units.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.New(apperrors.NotFound, "Organizational unit not found")
		}
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to delete org unit", err)
	}

	return nil
}

func (s *orgUnitService) Assignments(ctx context.Context, id primitive.ObjectID) (*models.OrgUnit, []models.Assignment, error) {
	unit, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	assignments, err := s.assignments.List(ctx, models.AssignmentFilter{UnitID: &id})
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch assignments", err)
	}

	return unit, assignments, nil
}

// Stats counts units and breaks them down per organizational dimension. The
// three groupings are independent queries and need not observe a single
// snapshot.
func (s *orgUnitService) Stats(ctx context.Context, year *int) (*models.OrgUnitStats, error) {
	total, err := s.units.Count(ctx, year)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to count org units", err)
	}

	byDirectorate, err := s.units.GroupByField(ctx, "directorate", year)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to group by directorate", err)
	}
	bySubDirectorate, err := s.units.GroupByField(ctx, "sub_directorate", year)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to group by sub-directorate", err)
	}
	byDivision, err := s.units.GroupByField(ctx, "division", year)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to group by division", err)
	}

	return &models.OrgUnitStats{
		Total:          total,
		Directorate:    len(byDirectorate),
		SubDirectorate: len(bySubDirectorate),
		Division:       len(byDivision),
		Breakdown: models.OrgUnitBreakdown{
			Directorate:    byDirectorate,
			SubDirectorate: bySubDirectorate,
			Division:       byDivision,
		},
	}, nil
}
