package services

import (
	"context"
	"testing"

	"gcghub/apperrors"
	"gcghub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		completed int64
		total     int64
		want      int
	}{
		{0, 0, 0},
		{0, 10, 0},
		{1, 3, 33},
		{2, 3, 67},
		{5, 10, 50},
		{10, 10, 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CompletionRate(tt.completed, tt.total))
	}
}

func TestAssignmentCreate(t *testing.T) {
	checklistID := primitive.NewObjectID()
	unitID := primitive.NewObjectID()
	adminID := primitive.NewObjectID()

	checklist := &models.ChecklistItem{ID: checklistID, Aspect: "Transparency", Year: 2024}
	unit := &models.OrgUnit{ID: unitID, Year: 2024, Directorate: "Finance", SubDirectorate: "Accounting"}

	t.Run("creates a pending assignment with the checklist year", func(t *testing.T) {
		checklists := &fakeChecklistRepo{
			GetByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.ChecklistItem, error) {
				return checklist, nil
			},
		}
		units := &fakeOrgUnitRepo{
			GetByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.OrgUnit, error) {
				return unit, nil
			},
		}
		svc := NewAssignmentService(&fakeAssignmentRepo{}, checklists, units)

		assignment, err := svc.Create(context.Background(), CreateAssignmentRequest{
			ChecklistID: checklistID,
			UnitID:      unitID,
			AssignedBy:  adminID,
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, assignment.Status)
		assert.Equal(t, 2024, assignment.Year)
		assert.Equal(t, adminID, assignment.AssignedBy)
		assert.False(t, assignment.AssignedAt.IsZero())
	})

	t.Run("unknown checklist item", func(t *testing.T) {
		svc := NewAssignmentService(&fakeAssignmentRepo{}, &fakeChecklistRepo{}, &fakeOrgUnitRepo{})

		_, err := svc.Create(context.Background(), CreateAssignmentRequest{
			ChecklistID: checklistID,
			UnitID:      unitID,
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.Referential, apperrors.KindOf(err))
	})

	t.Run("unknown org unit", func(t *testing.T) {
		checklists := &fakeChecklistRepo{
			GetByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.ChecklistItem, error) {
				return checklist, nil
			},
		}
		svc := NewAssignmentService(&fakeAssignmentRepo{}, checklists, &fakeOrgUnitRepo{})

		_, err := svc.Create(context.Background(), CreateAssignmentRequest{
			ChecklistID: checklistID,
			UnitID:      unitID,
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.Referential, apperrors.KindOf(err))
	})

	t.Run("year mismatch between checklist and unit", func(t *testing.T) {
		checklists := &fakeChecklistRepo{
			GetByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.ChecklistItem, error) {
				return checklist, nil
			},
		}
		units := &fakeOrgUnitRepo{
			GetByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.OrgUnit, error) {
				return &models.OrgUnit{ID: unitID, Year: 2023, Directorate: "Finance", SubDirectorate: "Accounting"}, nil
			},
		}
		svc := NewAssignmentService(&fakeAssignmentRepo{}, checklists, units)

		_, err := svc.Create(context.Background(), CreateAssignmentRequest{
			ChecklistID: checklistID,
			UnitID:      unitID,
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))
	})

	t.Run("pair already assigned", func(t *testing.T) {
		checklists := &fakeChecklistRepo{
			GetByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.ChecklistItem, error) {
				return checklist, nil
			},
		}
		units := &fakeOrgUnitRepo{
			GetByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.OrgUnit, error) {
				return unit, nil
			},
		}
		assignments := &fakeAssignmentRepo{
			FindByPairFn: func(ctx context.Context, cID, uID primitive.ObjectID) (*models.Assignment, error) {
				return &models.Assignment{ChecklistID: cID, UnitID: uID}, nil
			},
		}
		svc := NewAssignmentService(assignments, checklists, units)

		_, err := svc.Create(context.Background(), CreateAssignmentRequest{
			ChecklistID: checklistID,
			UnitID:      unitID,
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.Duplicate, apperrors.KindOf(err))
	})
}

func TestAssignmentUpdateStatus(t *testing.T) {
	unitID := primitive.NewObjectID()
	assignmentID := primitive.NewObjectID()
	unit := &models.OrgUnit{ID: unitID, Year: 2024, Directorate: "Finance", SubDirectorate: "Accounting", Division: strPtr("Tax")}

	newService := func() AssignmentService {
		assignments := &fakeAssignmentRepo{
			GetByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error) {
				return &models.Assignment{ID: assignmentID, UnitID: unitID, Status: models.StatusPending, Year: 2024}, nil
			},
		}
		units := &fakeOrgUnitRepo{
			GetByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.OrgUnit, error) {
				return unit, nil
			},
		}
		return NewAssignmentService(assignments, &fakeChecklistRepo{}, units)
	}

	t.Run("unit member sets status", func(t *testing.T) {
		identity := identityWith(strPtr("Finance"), strPtr("Accounting"), strPtr("Tax"))

		updated, err := newService().UpdateStatus(context.Background(), identity, assignmentID, models.StatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, updated.Status)
	})

	t.Run("other unit denied", func(t *testing.T) {
		identity := identityWith(strPtr("Finance"), strPtr("Accounting"), strPtr("Treasury"))

		_, err := newService().UpdateStatus(context.Background(), identity, assignmentID, models.StatusCompleted)
		require.Error(t, err)
		assert.Equal(t, apperrors.AccessDenied, apperrors.KindOf(err))
	})

	t.Run("invalid status", func(t *testing.T) {
		identity := models.Identity{Role: models.RoleAdmin}

		_, err := newService().UpdateStatus(context.Background(), identity, assignmentID, "DONE")
		require.Error(t, err)
		assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))
	})
}
