package services

import (
	"context"
	"errors"

	"gcghub/apperrors"
	"gcghub/models"
	repository "gcghub/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UpdateUserRequest struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Role           *string `json:"role"`
	Directorate    *string `json:"directorate"`
	SubDirectorate *string `json:"sub_directorate"`
	Division       *string `json:"division"`
}

type UserService interface {
	GetByID(ctx context.Context, identity models.Identity, id primitive.ObjectID) (*models.User, error)
	List(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	Update(ctx context.Context, identity models.Identity, id primitive.ObjectID, req UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, identity models.Identity, id primitive.ObjectID) error
}

type userService struct {
	users       repository.UserRepository
	files       repository.FileRepository
	assignments repository.AssignmentRepository
}

func NewUserService(
	users repository.UserRepository,
	files repository.FileRepository,
	assignments repository.AssignmentRepository,
) UserService {
	return &userService{
		users:       users,
		files:       files,
		assignments: assignments,
	}
}

func (s *userService) GetByID(ctx context.Context, identity models.Identity, id primitive.ObjectID) (*models.User, error) {
	if err := CanViewOrEditUser(identity, id); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(apperrors.NotFound, "User not found")
		}
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch user", err)
	}

	return user, nil
}

func (s *userService) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch users", err)
	}

	return users, nil
}

func (s *userService) Update(ctx context.Context, identity models.Identity, id primitive.ObjectID, req UpdateUserRequest) (*models.User, error) {
	if err := CanViewOrEditUser(identity, id); err != nil {
		return nil, err
	}

	// Role changes are admin-only even on one's own account.
	if req.Role != nil && !identity.IsAdmin() {
		return nil, apperrors.New(apperrors.Forbidden, "Only admins can change user roles")
	}

	existing, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(apperrors.NotFound, "User not found")
		}
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch user", err)
	}

	if req.Email != nil && *req.Email != existing.Email {
		if _, err := s.users.FindByEmail(ctx, *req.Email, &id); err == nil {
			return nil, apperrors.New(apperrors.Duplicate, "Email already exists")
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to check email", err)
		}
		existing.Email = *req.Email
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Role != nil {
		if *req.Role != models.RoleAdmin && *req.Role != models.RoleUser {
			return nil, apperrors.New(apperrors.Validation, "Invalid role")
		}
		existing.Role = *req.Role
	}
	if req.Directorate != nil {
		existing.Directorate = req.Directorate
	}
	if req.SubDirectorate != nil {
		existing.SubDirectorate = req.SubDirectorate
	}
	if req.Division != nil {
		existing.Division = req.Division
	}

	if err := s.users.Update(ctx, id, existing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(apperrors.NotFound, "User not found")
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.New(apperrors.Duplicate, "Email already exists")
		}
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to update user", err)
	}

	return existing, nil
}

// Delete removes a user unless they still own files or assignments, or are
// deleting themselves.
func (s *userService) Delete(ctx context.Context, identity models.Identity, id primitive.ObjectID) error {
	if identity.ID == id {
		return apperrors.New(apperrors.Validation, "Cannot delete your own account")
	}

	if _, err := s.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.New(apperrors.NotFound, "User not found")
		}
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to fetch user", err)
	}

	fileCount, err := s.files.CountByUploader(ctx, id)
	if err != nil {
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to count files", err)
	}
	assignmentCount, err := s.assignments.CountByAssigner(ctx, id)
	if err != nil {
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to count assignments", err)
	}

	dependents := fileCount + assignmentCount
	if dependents > 0 {
		return apperrors.NewConflict("Cannot delete user with existing data. Please reassign or delete related data first.", int(dependents))
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.New(apperrors.NotFound, "User not found")
		}
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to delete user", err)
	}

	return nil
}
