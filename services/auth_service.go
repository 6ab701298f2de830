package services

import (
	"context"
	"errors"
	"time"

	"gcghub/apperrors"
	"gcghub/models"
	repository "gcghub/repositories"
	"gcghub/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

type RegisterRequest struct {
	Username       string  `json:"username" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required"`
	Name           string  `json:"name" validate:"required"`
	Role           string  `json:"role"`
	Directorate    *string `json:"directorate"`
	SubDirectorate *string `json:"sub_directorate"`
	Division       *string `json:"division"`
}

type AuthService interface {
	Login(ctx context.Context, login, password string) (string, models.Identity, error)
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	ChangePassword(ctx context.Context, userID primitive.ObjectID, currentPassword, newPassword string) error
}

type authService struct {
	users     repository.UserRepository
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthService(users repository.UserRepository, jwtSecret string, jwtExpiry time.Duration) AuthService {
	return &authService{
		users:     users,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

// Login authenticates by username or email. Unknown user and wrong password
// produce the same error so callers cannot enumerate accounts.
func (s *authService) Login(ctx context.Context, login, password string) (string, models.Identity, error) {
	user, err := s.users.GetByUsernameOrEmail(ctx, login)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", models.Identity{}, apperrors.New(apperrors.InvalidCredentials, "Invalid credentials")
		}
		return "", models.Identity{}, apperrors.Wrap(apperrors.StoreUnavailable, "failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", models.Identity{}, apperrors.New(apperrors.InvalidCredentials, "Invalid credentials")
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return "", models.Identity{}, apperrors.Wrap(apperrors.StoreUnavailable, "failed to issue token", err)
	}

	return token, user.Identity(), nil
}

func (s *authService) issueToken(userID primitive.ObjectID) (string, error) {
	claims := Claims{
		UserID: userID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.jwtExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	if _, ok := utils.CheckPassword(req.Password); !ok {
		return nil, apperrors.New(apperrors.Validation, "Password is too weak. Include uppercase, lowercase, numbers, and special characters")
	}

	if existing, err := s.users.FindByUsername(ctx, req.Username); err == nil && existing != nil {
		return nil, apperrors.New(apperrors.Duplicate, "Username already exists")
	} else if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to check username", err)
	}

	if existing, err := s.users.FindByEmail(ctx, req.Email, nil); err == nil && existing != nil {
		return nil, apperrors.New(apperrors.Duplicate, "Email already exists")
	} else if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to check email", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to hash password", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleAdmin && role != models.RoleUser {
		return nil, apperrors.New(apperrors.Validation, "Invalid role")
	}

	now := time.Now()
	user := &models.User{
		Username:       req.Username,
		Email:          req.Email,
		Password:       string(hash),
		Name:           req.Name,
		Role:           role,
		Directorate:    req.Directorate,
		SubDirectorate: req.SubDirectorate,
		Division:       req.Division,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.New(apperrors.Duplicate, "Username or email already exists")
		}
		return nil, apperrors.Wrap(apperrors.StoreUnavailable, "failed to create user", err)
	}

	return user, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID primitive.ObjectID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.New(apperrors.NotFound, "User not found")
		}
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return apperrors.New(apperrors.Validation, "Current password is incorrect")
	}

	if _, ok := utils.CheckPassword(newPassword); !ok {
		return apperrors.New(apperrors.Validation, "Password is too weak. Include uppercase, lowercase, numbers, and special characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to hash password", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return apperrors.Wrap(apperrors.StoreUnavailable, "failed to update password", err)
	}

	return nil
}
