package services

import (
	"testing"

	"gcghub/apperrors"
	"gcghub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func identityWith(dir, sub, div *string) models.Identity {
	return models.Identity{
		ID:             primitive.NewObjectID(),
		Role:           models.RoleUser,
		Directorate:    dir,
		SubDirectorate: sub,
		Division:       div,
	}
}

func unitWith(dir, sub string, div *string) models.OrgUnit {
	return models.OrgUnit{
		ID:             primitive.NewObjectID(),
		Year:           2024,
		Directorate:    dir,
		SubDirectorate: sub,
		Division:       div,
	}
}

func TestRequireAdmin(t *testing.T) {
	admin := models.Identity{Role: models.RoleAdmin}
	user := models.Identity{Role: models.RoleUser}

	assert.NoError(t, RequireAdmin(admin))

	err := RequireAdmin(user)
	require.Error(t, err)
	assert.Equal(t, apperrors.Forbidden, apperrors.KindOf(err))
}

func TestCanAccessChecklist(t *testing.T) {
	tests := []struct {
		name     string
		identity models.Identity
		units    []models.OrgUnit
		allowed  bool
	}{
		{
			name:     "exact tuple match",
			identity: identityWith(strPtr("Finance"), strPtr("Accounting"), strPtr("Tax")),
			units:    []models.OrgUnit{unitWith("Finance", "Accounting", strPtr("Tax"))},
			allowed:  true,
		},
		{
			name:     "unit without division covers every division",
			identity: identityWith(strPtr("Finance"), strPtr("Accounting"), strPtr("Tax")),
			units:    []models.OrgUnit{unitWith("Finance", "Accounting", nil)},
			allowed:  true,
		},
		{
			name:     "division mismatch on a unit with a division",
			identity: identityWith(strPtr("Finance"), strPtr("Accounting"), strPtr("Tax")),
			units:    []models.OrgUnit{unitWith("Finance", "Accounting", strPtr("Treasury"))},
			allowed:  false,
		},
		{
			name:     "identity without division against a division-scoped unit",
			identity: identityWith(strPtr("Finance"), strPtr("Accounting"), nil),
			units:    []models.OrgUnit{unitWith("Finance", "Accounting", strPtr("Tax"))},
			allowed:  false,
		},
		{
			name:     "directorate mismatch",
			identity: identityWith(strPtr("Legal"), strPtr("Accounting"), strPtr("Tax")),
			units:    []models.OrgUnit{unitWith("Finance", "Accounting", strPtr("Tax"))},
			allowed:  false,
		},
		{
			name:     "identity without organizational placement",
			identity: identityWith(nil, nil, nil),
			units:    []models.OrgUnit{unitWith("Finance", "Accounting", nil)},
			allowed:  false,
		},
		{
			name:     "no assignments at all",
			identity: identityWith(strPtr("Finance"), strPtr("Accounting"), strPtr("Tax")),
			units:    nil,
			allowed:  false,
		},
		{
			name:     "one covering unit among several",
			identity: identityWith(strPtr("Finance"), strPtr("Accounting"), strPtr("Tax")),
			units: []models.OrgUnit{
				unitWith("Legal", "Compliance", nil),
				unitWith("Finance", "Accounting", strPtr("Tax")),
			},
			allowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanAccessChecklist(tt.identity, tt.units)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, apperrors.AccessDenied, apperrors.KindOf(err))
			}
		})
	}
}

func TestCanAccessChecklistAdminBypass(t *testing.T) {
	admin := models.Identity{Role: models.RoleAdmin}
	assert.NoError(t, CanAccessChecklist(admin, nil))
}

func TestCanUpdateAssignmentStatus(t *testing.T) {
	tests := []struct {
		name     string
		identity models.Identity
		unit     models.OrgUnit
		allowed  bool
	}{
		{
			name:     "exact tuple including division",
			identity: identityWith(strPtr("Finance"), strPtr("Accounting"), strPtr("Tax")),
			unit:     unitWith("Finance", "Accounting", strPtr("Tax")),
			allowed:  true,
		},
		{
			name:     "both sides without division",
			identity: identityWith(strPtr("Finance"), strPtr("Accounting"), nil),
			unit:     unitWith("Finance", "Accounting", nil),
			allowed:  true,
		},
		{
			name:     "covering unit is not enough for status updates",
			identity: identityWith(strPtr("Finance"), strPtr("Accounting"), strPtr("Tax")),
			unit:     unitWith("Finance", "Accounting", nil),
			allowed:  false,
		},
		{
			name:     "division mismatch",
			identity: identityWith(strPtr("Finance"), strPtr("Accounting"), strPtr("Tax")),
			unit:     unitWith("Finance", "Accounting", strPtr("Treasury")),
			allowed:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanUpdateAssignmentStatus(tt.identity, tt.unit)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, apperrors.AccessDenied, apperrors.KindOf(err))
			}
		})
	}
}

func TestCanModifyFile(t *testing.T) {
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()

	admin := models.Identity{ID: other, Role: models.RoleAdmin}
	uploader := models.Identity{ID: owner, Role: models.RoleUser}
	stranger := models.Identity{ID: other, Role: models.RoleUser}

	assert.NoError(t, CanModifyFile(admin, owner))
	assert.NoError(t, CanModifyFile(uploader, owner))

	err := CanModifyFile(stranger, owner)
	require.Error(t, err)
	assert.Equal(t, apperrors.AccessDenied, apperrors.KindOf(err))
}

func TestCanViewOrEditUser(t *testing.T) {
	self := primitive.NewObjectID()
	other := primitive.NewObjectID()

	assert.NoError(t, CanViewOrEditUser(models.Identity{ID: self, Role: models.RoleUser}, self))
	assert.NoError(t, CanViewOrEditUser(models.Identity{ID: other, Role: models.RoleAdmin}, self))

	err := CanViewOrEditUser(models.Identity{ID: other, Role: models.RoleUser}, self)
	require.Error(t, err)
	assert.Equal(t, apperrors.AccessDenied, apperrors.KindOf(err))
}
