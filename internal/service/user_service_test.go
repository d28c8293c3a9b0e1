package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"rxbill/internal/domain"
	"rxbill/internal/service"
	"rxbill/mocks"
)

func TestCreateUserHashesPassword(t *testing.T) {
	pharmacyID := uuid.New()

	repo := new(mocks.MockUserRepo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	svc := service.NewUserService(repo)
	user, err := svc.Create(context.Background(), pharmacyID, service.CreateUserInput{
		Email:    "counter@sharma.example",
		Password: "s3cret-enough",
		FullName: "B Sharma",
		Role:     domain.RolePharmacist,
	})
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-enough", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-enough")))
	assert.True(t, user.IsActive)
	repo.AssertExpectations(t)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	repo := new(mocks.MockUserRepo)

	svc := service.NewUserService(repo)
	_, err := svc.Create(context.Background(), uuid.New(), service.CreateUserInput{
		Email:    "counter@sharma.example",
		Password: "s3cret-enough",
		FullName: "B Sharma",
		Role:     domain.UserRole("superuser"),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateUserDeactivates(t *testing.T) {
	pharmacyID := uuid.New()
	user := &domain.User{
		ID:         uuid.New(),
		PharmacyID: pharmacyID,
		Email:      "counter@sharma.example",
		Role:       domain.RolePharmacist,
		IsActive:   true,
	}
	inactive := false

	repo := new(mocks.MockUserRepo)
	repo.On("GetByID", mock.Anything, pharmacyID, user.ID).Return(user, nil)
	repo.On("Update", mock.Anything, user).Return(nil)

	svc := service.NewUserService(repo)
	updated, err := svc.Update(context.Background(), pharmacyID, user.ID, service.UpdateUserInput{
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}
