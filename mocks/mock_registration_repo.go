package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rxbill/internal/domain"
)

// MockRegistrationRepo is a mock implementation of port.RegistrationRepository.
type MockRegistrationRepo struct {
	mock.Mock
}

func (m *MockRegistrationRepo) Create(ctx context.Context, reg *domain.GSTRegistration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *MockRegistrationRepo) GetByID(ctx context.Context, pharmacyID, regID uuid.UUID) (*domain.GSTRegistration, error) {
	args := m.Called(ctx, pharmacyID, regID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GSTRegistration), args.Error(1)
}

func (m *MockRegistrationRepo) ListByPharmacy(ctx context.Context, pharmacyID uuid.UUID) ([]domain.GSTRegistration, error) {
	args := m.Called(ctx, pharmacyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GSTRegistration), args.Error(1)
}

func (m *MockRegistrationRepo) Update(ctx context.Context, reg *domain.GSTRegistration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *MockRegistrationRepo) AllocateSequence(ctx context.Context, regID uuid.UUID) (int64, error) {
	args := m.Called(ctx, regID)
	return args.Get(0).(int64), args.Error(1)
}
