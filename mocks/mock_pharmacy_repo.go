package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rxbill/internal/domain"
)

// MockPharmacyRepo is a mock implementation of port.PharmacyRepository.
type MockPharmacyRepo struct {
	mock.Mock
}

func (m *MockPharmacyRepo) Create(ctx context.Context, pharmacy *domain.Pharmacy) error {
	args := m.Called(ctx, pharmacy)
	return args.Error(0)
}

func (m *MockPharmacyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Pharmacy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pharmacy), args.Error(1)
}

func (m *MockPharmacyRepo) GetBySlug(ctx context.Context, slug string) (*domain.Pharmacy, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pharmacy), args.Error(1)
}

func (m *MockPharmacyRepo) Update(ctx context.Context, pharmacy *domain.Pharmacy) error {
	args := m.Called(ctx, pharmacy)
	return args.Error(0)
}
