package port

import (
	"context"

	"github.com/google/uuid"

	"rxbill/internal/domain"
)

// RegistrationRepository defines the contract for GST registration
// persistence, including the invoice-number counter.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *domain.GSTRegistration) error
	GetByID(ctx context.Context, pharmacyID, regID uuid.UUID) (*domain.GSTRegistration, error)
	ListByPharmacy(ctx context.Context, pharmacyID uuid.UUID) ([]domain.GSTRegistration, error)
	Update(ctx context.Context, reg *domain.GSTRegistration) error

	// AllocateSequence increments next_invoice_number and returns the
	// pre-increment value in a single atomic statement, so two concurrent
	// issuances can never observe the same sequence. It fails with
	// domain.ErrRegistrationInactive — without touching the counter — when
	// the registration is missing or inactive. Call it inside a TxManager
	// transaction so a failed issuance rolls the increment back.
	AllocateSequence(ctx context.Context, regID uuid.UUID) (int64, error)
}
