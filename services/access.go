package services

import (
	"gcghub/apperrors"
	"gcghub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Authorization scoping. These are pure functions over the caller's identity
// so they can be checked without touching the store.

func RequireAdmin(identity models.Identity) error {
	if !identity.IsAdmin() {
		return apperrors.New(apperrors.Forbidden, "Admin access required")
	}
	return nil
}

// unitCovers reports whether the unit is responsible for work done by the
// identity: directorate and sub-directorate must match exactly, and the
// unit's division must either match or be unset (a unit without a division
// covers every division of its sub-directorate).
func unitCovers(identity models.Identity, unit models.OrgUnit) bool {
	if identity.Directorate == nil || identity.SubDirectorate == nil {
		return false
	}
	if unit.Directorate != *identity.Directorate || unit.SubDirectorate != *identity.SubDirectorate {
		return false
	}
	if unit.Division == nil {
		return true
	}
	return identity.Division != nil && *identity.Division == *unit.Division
}

// unitMatchesExactly reports whether the identity's organizational tuple is
// the unit's tuple, division included. Used for status updates, where a
// broader "all divisions" unit is not enough.
func unitMatchesExactly(identity models.Identity, unit models.OrgUnit) bool {
	if identity.Directorate == nil || identity.SubDirectorate == nil {
		return false
	}
	if unit.Directorate != *identity.Directorate || unit.SubDirectorate != *identity.SubDirectorate {
		return false
	}
	if unit.Division == nil {
		return identity.Division == nil
	}
	return identity.Division != nil && *identity.Division == *unit.Division
}

// CanAccessChecklist decides whether the identity may read a checklist item,
// given the units of its assignments. Admins always pass.
func CanAccessChecklist(identity models.Identity, assignedUnits []models.OrgUnit) error {
	if identity.IsAdmin() {
		return nil
	}
	for _, unit := range assignedUnits {
		if unitCovers(identity, unit) {
			return nil
		}
	}
	return apperrors.New(apperrors.AccessDenied, "Access denied to this checklist item")
}

// CanUpdateAssignmentStatus decides whether the identity may change the
// status of an assignment bound to the given unit.
func CanUpdateAssignmentStatus(identity models.Identity, unit models.OrgUnit) error {
	if identity.IsAdmin() {
		return nil
	}
	if !unitMatchesExactly(identity, unit) {
		return apperrors.New(apperrors.AccessDenied, "Access denied. You can only update assignments for your organizational unit.")
	}
	return nil
}

// CanModifyFile allows admins and the original uploader.
func CanModifyFile(identity models.Identity, ownerID primitive.ObjectID) error {
	if identity.IsAdmin() || identity.ID == ownerID {
		return nil
	}
	return apperrors.New(apperrors.AccessDenied, "Access denied. You can only delete your own files.")
}

// CanViewOrEditUser allows admins and the user themselves.
func CanViewOrEditUser(identity models.Identity, targetID primitive.ObjectID) error {
	if identity.IsAdmin() || identity.ID == targetID {
		return nil
	}
	return apperrors.New(apperrors.AccessDenied, "Access denied")
}
