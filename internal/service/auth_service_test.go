package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"rxbill/internal/config"
	"rxbill/internal/domain"
	"rxbill/internal/service"
	"rxbill/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret-at-least-32-chars-long!",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
		Issuer:             "rxbill-test",
	}
}

func testPharmacy() *domain.Pharmacy {
	return &domain.Pharmacy{
		ID:        uuid.New(),
		Name:      "Sharma Medicos",
		Slug:      "sharma-medicos",
		StateCode: "27",
		IsActive:  true,
	}
}

func testUser(t *testing.T, pharmacyID uuid.UUID, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           uuid.New(),
		PharmacyID:   pharmacyID,
		Email:        "owner@sharma.example",
		PasswordHash: string(hash),
		FullName:     "A Sharma",
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
}

func TestLoginSuccess(t *testing.T) {
	pharmacy := testPharmacy()
	user := testUser(t, pharmacy.ID, "correct-horse-battery")

	userRepo := new(mocks.MockUserRepo)
	pharmacyRepo := new(mocks.MockPharmacyRepo)

	pharmacyRepo.On("GetBySlug", mock.Anything, pharmacy.Slug).Return(pharmacy, nil)
	userRepo.On("GetByEmail", mock.Anything, pharmacy.ID, user.Email).Return(user, nil)

	svc := service.NewAuthService(userRepo, pharmacyRepo, testJWTConfig())
	pair, err := svc.Login(context.Background(), service.LoginInput{
		PharmacySlug: pharmacy.Slug,
		Email:        user.Email,
		Password:     "correct-horse-battery",
	})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, pharmacy.ID, claims.PharmacyID)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	pharmacy := testPharmacy()
	user := testUser(t, pharmacy.ID, "correct-horse-battery")

	userRepo := new(mocks.MockUserRepo)
	pharmacyRepo := new(mocks.MockPharmacyRepo)

	pharmacyRepo.On("GetBySlug", mock.Anything, pharmacy.Slug).Return(pharmacy, nil)
	userRepo.On("GetByEmail", mock.Anything, pharmacy.ID, user.Email).Return(user, nil)

	svc := service.NewAuthService(userRepo, pharmacyRepo, testJWTConfig())
	_, err := svc.Login(context.Background(), service.LoginInput{
		PharmacySlug: pharmacy.Slug,
		Email:        user.Email,
		Password:     "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUnknownPharmacy(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	pharmacyRepo := new(mocks.MockPharmacyRepo)

	pharmacyRepo.On("GetBySlug", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	svc := service.NewAuthService(userRepo, pharmacyRepo, testJWTConfig())
	_, err := svc.Login(context.Background(), service.LoginInput{
		PharmacySlug: "ghost",
		Email:        "x@example.com",
		Password:     "whatever1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginInactivePharmacy(t *testing.T) {
	pharmacy := testPharmacy()
	pharmacy.IsActive = false

	userRepo := new(mocks.MockUserRepo)
	pharmacyRepo := new(mocks.MockPharmacyRepo)

	pharmacyRepo.On("GetBySlug", mock.Anything, pharmacy.Slug).Return(pharmacy, nil)

	svc := service.NewAuthService(userRepo, pharmacyRepo, testJWTConfig())
	_, err := svc.Login(context.Background(), service.LoginInput{
		PharmacySlug: pharmacy.Slug,
		Email:        "owner@sharma.example",
		Password:     "whatever1",
	})
	assert.ErrorIs(t, err, domain.ErrPharmacyInactive)
	userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginInactiveUser(t *testing.T) {
	pharmacy := testPharmacy()
	user := testUser(t, pharmacy.ID, "correct-horse-battery")
	user.IsActive = false

	userRepo := new(mocks.MockUserRepo)
	pharmacyRepo := new(mocks.MockPharmacyRepo)

	pharmacyRepo.On("GetBySlug", mock.Anything, pharmacy.Slug).Return(pharmacy, nil)
	userRepo.On("GetByEmail", mock.Anything, pharmacy.ID, user.Email).Return(user, nil)

	svc := service.NewAuthService(userRepo, pharmacyRepo, testJWTConfig())
	_, err := svc.Login(context.Background(), service.LoginInput{
		PharmacySlug: pharmacy.Slug,
		Email:        user.Email,
		Password:     "correct-horse-battery",
	})
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestRefreshTokenRoundtrip(t *testing.T) {
	pharmacy := testPharmacy()
	user := testUser(t, pharmacy.ID, "correct-horse-battery")

	userRepo := new(mocks.MockUserRepo)
	pharmacyRepo := new(mocks.MockPharmacyRepo)

	pharmacyRepo.On("GetBySlug", mock.Anything, pharmacy.Slug).Return(pharmacy, nil)
	userRepo.On("GetByEmail", mock.Anything, pharmacy.ID, user.Email).Return(user, nil)
	userRepo.On("GetByID", mock.Anything, pharmacy.ID, user.ID).Return(user, nil)

	svc := service.NewAuthService(userRepo, pharmacyRepo, testJWTConfig())
	pair, err := svc.Login(context.Background(), service.LoginInput{
		PharmacySlug: pharmacy.Slug,
		Email:        user.Email,
		Password:     "correct-horse-battery",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	pharmacy := testPharmacy()
	user := testUser(t, pharmacy.ID, "correct-horse-battery")

	userRepo := new(mocks.MockUserRepo)
	pharmacyRepo := new(mocks.MockPharmacyRepo)

	pharmacyRepo.On("GetBySlug", mock.Anything, pharmacy.Slug).Return(pharmacy, nil)
	userRepo.On("GetByEmail", mock.Anything, pharmacy.ID, user.Email).Return(user, nil)

	svc := service.NewAuthService(userRepo, pharmacyRepo, testJWTConfig())
	pair, err := svc.Login(context.Background(), service.LoginInput{
		PharmacySlug: pharmacy.Slug,
		Email:        user.Email,
		Password:     "correct-horse-battery",
	})
	require.NoError(t, err)

	// An access token must not work as a refresh token.
	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := service.NewAuthService(new(mocks.MockUserRepo), new(mocks.MockPharmacyRepo), testJWTConfig())
	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
