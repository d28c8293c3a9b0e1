package service

import (
	"context"

	"github.com/google/uuid"

	"rxbill/internal/domain"
	"rxbill/internal/gst"
	"rxbill/internal/port"
)

// CreateRegistrationInput is the DTO for creating a GST registration.
type CreateRegistrationInput struct {
	GSTIN         string `json:"gstin" binding:"required"`
	StateCode     string `json:"state_code" binding:"required"`
	LegalName     string `json:"legal_name" binding:"required"`
	InvoicePrefix string `json:"invoice_prefix"`
}

// UpdateRegistrationInput is the DTO for updating a GST registration.
// The invoice-number counter is deliberately absent: it moves only
// through AllocateSequence.
type UpdateRegistrationInput struct {
	LegalName     *string `json:"legal_name"`
	InvoicePrefix *string `json:"invoice_prefix"`
	IsActive      *bool   `json:"is_active"`
}

// RegistrationService defines the GST registration management contract.
type RegistrationService interface {
	Create(ctx context.Context, pharmacyID uuid.UUID, input CreateRegistrationInput) (*domain.GSTRegistration, error)
	GetByID(ctx context.Context, pharmacyID, regID uuid.UUID) (*domain.GSTRegistration, error)
	List(ctx context.Context, pharmacyID uuid.UUID) ([]domain.GSTRegistration, error)
	Update(ctx context.Context, pharmacyID, regID uuid.UUID, input UpdateRegistrationInput) (*domain.GSTRegistration, error)
}

type registrationService struct {
	repo          port.RegistrationRepository
	defaultPrefix string
}

// NewRegistrationService creates a new RegistrationService implementation.
// defaultPrefix fills in for registrations created without one.
func NewRegistrationService(repo port.RegistrationRepository, defaultPrefix string) RegistrationService {
	if defaultPrefix == "" {
		defaultPrefix = domain.DefaultInvoicePrefix
	}
	return &registrationService{repo: repo, defaultPrefix: defaultPrefix}
}

func (s *registrationService) Create(ctx context.Context, pharmacyID uuid.UUID, input CreateRegistrationInput) (*domain.GSTRegistration, error) {
	if !gst.ValidStateCode(input.StateCode) {
		return nil, gst.ErrInvalidStateCode
	}
	// A GSTIN is 15 chars and embeds the registration's state code in the
	// first two.
	if len(input.GSTIN) != 15 || input.GSTIN[:2] != input.StateCode {
		return nil, domain.ErrInvalidGSTIN
	}

	prefix := input.InvoicePrefix
	if prefix == "" {
		prefix = s.defaultPrefix
	}

	reg := &domain.GSTRegistration{
		PharmacyID:    pharmacyID,
		GSTIN:         input.GSTIN,
		StateCode:     input.StateCode,
		LegalName:     input.LegalName,
		InvoicePrefix: prefix,
		IsActive:      true,
	}
	if err := s.repo.Create(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func (s *registrationService) GetByID(ctx context.Context, pharmacyID, regID uuid.UUID) (*domain.GSTRegistration, error) {
	return s.repo.GetByID(ctx, pharmacyID, regID)
}

func (s *registrationService) List(ctx context.Context, pharmacyID uuid.UUID) ([]domain.GSTRegistration, error) {
	return s.repo.ListByPharmacy(ctx, pharmacyID)
}

func (s *registrationService) Update(ctx context.Context, pharmacyID, regID uuid.UUID, input UpdateRegistrationInput) (*domain.GSTRegistration, error) {
	reg, err := s.repo.GetByID(ctx, pharmacyID, regID)
	if err != nil {
		return nil, err
	}

	if input.LegalName != nil {
		reg.LegalName = *input.LegalName
	}
	if input.InvoicePrefix != nil && *input.InvoicePrefix != "" {
		reg.InvoicePrefix = *input.InvoicePrefix
	}
	if input.IsActive != nil {
		reg.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}
