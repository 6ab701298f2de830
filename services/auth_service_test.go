package services

import (
	"context"
	"testing"
	"time"

	"gcghub/apperrors"
	"gcghub/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLogin(t *testing.T) {
	userID := primitive.NewObjectID()
	users := &fakeUserRepo{
		GetByUsernameOrEmailFn: func(ctx context.Context, login string) (*models.User, error) {
			if login != "alice" && login != "alice@example.com" {
				return nil, mongo.ErrNoDocuments
			}
			return &models.User{
				ID:       userID,
				Username: "alice",
				Email:    "alice@example.com",
				Password: hashFor(t, "Secret1!"),
				Role:     models.RoleUser,
			}, nil
		},
	}
	svc := NewAuthService(users, testSecret, time.Hour)

	t.Run("issues a parseable token", func(t *testing.T) {
		token, identity, err := svc.Login(context.Background(), "alice", "Secret1!")
		require.NoError(t, err)
		assert.Equal(t, userID, identity.ID)

		var claims Claims
		parsed, err := jwt.ParseWithClaims(token, &claims, func(tok *jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
		assert.Equal(t, userID.Hex(), claims.UserID)
	})

	t.Run("email login works too", func(t *testing.T) {
		_, identity, err := svc.Login(context.Background(), "alice@example.com", "Secret1!")
		require.NoError(t, err)
		assert.Equal(t, "alice", identity.Username)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		_, _, errWrong := svc.Login(context.Background(), "alice", "nope")
		_, _, errUnknown := svc.Login(context.Background(), "bob", "Secret1!")

		require.Error(t, errWrong)
		require.Error(t, errUnknown)
		assert.Equal(t, apperrors.InvalidCredentials, apperrors.KindOf(errWrong))
		assert.Equal(t, apperrors.InvalidCredentials, apperrors.KindOf(errUnknown))
		assert.Equal(t, errWrong.Error(), errUnknown.Error())
	})
}

func TestRegister(t *testing.T) {
	validReq := RegisterRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "Secret1!",
		Name:     "Bob",
	}

	t.Run("hashes the password and defaults the role", func(t *testing.T) {
		var created *models.User
		users := &fakeUserRepo{
			CreateFn: func(ctx context.Context, user *models.User) error {
				created = user
				return nil
			},
		}
		svc := NewAuthService(users, testSecret, time.Hour)

		user, err := svc.Register(context.Background(), validReq)
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, models.RoleUser, user.Role)
		assert.NotEqual(t, "Secret1!", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("Secret1!")))
	})

	t.Run("weak password rejected", func(t *testing.T) {
		svc := NewAuthService(&fakeUserRepo{}, testSecret, time.Hour)

		for _, weak := range []string{"short", "alllowercase", "123456"} {
			req := validReq
			req.Password = weak
			_, err := svc.Register(context.Background(), req)
			require.Error(t, err, "password %q", weak)
			assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		users := &fakeUserRepo{
			FindByUsernameFn: func(ctx context.Context, username string) (*models.User, error) {
				return &models.User{Username: username}, nil
			},
		}
		svc := NewAuthService(users, testSecret, time.Hour)

		_, err := svc.Register(context.Background(), validReq)
		require.Error(t, err)
		assert.Equal(t, apperrors.Duplicate, apperrors.KindOf(err))
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := &fakeUserRepo{
			FindByEmailFn: func(ctx context.Context, email string, excludeID *primitive.ObjectID) (*models.User, error) {
				return &models.User{Email: email}, nil
			},
		}
		svc := NewAuthService(users, testSecret, time.Hour)

		_, err := svc.Register(context.Background(), validReq)
		require.Error(t, err)
		assert.Equal(t, apperrors.Duplicate, apperrors.KindOf(err))
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		svc := NewAuthService(&fakeUserRepo{}, testSecret, time.Hour)

		req := validReq
		req.Role = "SUPERUSER"
		_, err := svc.Register(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))
	})
}

func TestChangePassword(t *testing.T) {
	userID := primitive.NewObjectID()
	users := func() *fakeUserRepo {
		return &fakeUserRepo{
			GetByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
				return &models.User{ID: id, Password: hashFor(t, "Secret1!")}, nil
			},
		}
	}

	t.Run("wrong current password", func(t *testing.T) {
		svc := NewAuthService(users(), testSecret, time.Hour)

		err := svc.ChangePassword(context.Background(), userID, "wrong", "NewSecret1!")
		require.Error(t, err)
		assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))
	})

	t.Run("weak new password", func(t *testing.T) {
		svc := NewAuthService(users(), testSecret, time.Hour)

		err := svc.ChangePassword(context.Background(), userID, "Secret1!", "weak")
		require.Error(t, err)
		assert.Equal(t, apperrors.Validation, apperrors.KindOf(err))
	})

	t.Run("stores a new hash", func(t *testing.T) {
		repo := users()
		var storedHash string
		repo.UpdatePasswordFn = func(ctx context.Context, id primitive.ObjectID, hash string) error {
			storedHash = hash
			return nil
		}
		svc := NewAuthService(repo, testSecret, time.Hour)

		require.NoError(t, svc.ChangePassword(context.Background(), userID, "Secret1!", "NewSecret1!"))
		require.NotEmpty(t, storedHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("NewSecret1!")))
	})
}
