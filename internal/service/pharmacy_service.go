package service

import (
	"context"

	"github.com/google/uuid"

	"rxbill/internal/domain"
	"rxbill/internal/gst"
	"rxbill/internal/port"
)

// CreatePharmacyInput is the DTO for creating a pharmacy.
type CreatePharmacyInput struct {
	Name      string `json:"name" binding:"required"`
	Slug      string `json:"slug" binding:"required"`
	StateCode string `json:"state_code" binding:"required"`
}

// UpdatePharmacyInput is the DTO for updating a pharmacy.
type UpdatePharmacyInput struct {
	Name      *string `json:"name"`
	Slug      *string `json:"slug"`
	StateCode *string `json:"state_code"`
	IsActive  *bool   `json:"is_active"`
}

// PharmacyService defines the pharmacy management contract.
type PharmacyService interface {
	Create(ctx context.Context, input CreatePharmacyInput) (*domain.Pharmacy, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Pharmacy, error)
	Update(ctx context.Context, id uuid.UUID, input UpdatePharmacyInput) (*domain.Pharmacy, error)
}

type pharmacyService struct {
	repo port.PharmacyRepository
}

// NewPharmacyService creates a new PharmacyService implementation.
func NewPharmacyService(repo port.PharmacyRepository) PharmacyService {
	return &pharmacyService{repo: repo}
}

func (s *pharmacyService) Create(ctx context.Context, input CreatePharmacyInput) (*domain.Pharmacy, error) {
	if !gst.ValidStateCode(input.StateCode) {
		return nil, gst.ErrInvalidStateCode
	}
	pharmacy := &domain.Pharmacy{
		Name:      input.Name,
		Slug:      input.Slug,
		StateCode: input.StateCode,
		IsActive:  true,
	}
	if err := s.repo.Create(ctx, pharmacy); err != nil {
		return nil, err
	}
	return pharmacy, nil
}

func (s *pharmacyService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Pharmacy, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *pharmacyService) Update(ctx context.Context, id uuid.UUID, input UpdatePharmacyInput) (*domain.Pharmacy, error) {
	pharmacy, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		pharmacy.Name = *input.Name
	}
	if input.Slug != nil {
		pharmacy.Slug = *input.Slug
	}
	if input.StateCode != nil {
		if !gst.ValidStateCode(*input.StateCode) {
			return nil, gst.ErrInvalidStateCode
		}
		pharmacy.StateCode = *input.StateCode
	}
	if input.IsActive != nil {
		pharmacy.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, pharmacy); err != nil {
		return nil, err
	}
	return pharmacy, nil
}
