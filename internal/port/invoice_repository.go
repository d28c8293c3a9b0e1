package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rxbill/internal/domain"
)

// InvoiceRepository defines the contract for invoice persistence.
// Methods that participate in issuance must be called inside a TxManager
// transaction; they join it via the context.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, pharmacyID, invoiceID uuid.UUID) (*domain.Invoice, error)
	// GetForUpdate loads the invoice with its lines under a row lock,
	// serializing concurrent issuance attempts for the same invoice.
	GetForUpdate(ctx context.Context, pharmacyID, invoiceID uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, pharmacyID uuid.UUID, status *domain.InvoiceStatus, offset, limit int) ([]domain.Invoice, int, error)
	// ReplaceDraft rewrites a draft's header fields and line set. The
	// service layer guarantees the invoice is still DRAFT.
	ReplaceDraft(ctx context.Context, invoice *domain.Invoice) error
	// MarkIssued persists the issued state in one shot: status, invoice
	// number, recomputed totals, issue timestamp, and the authoritative
	// replacement line set.
	MarkIssued(ctx context.Context, invoice *domain.Invoice) error
	// MarkCancelled voids an issued invoice. The invoice number and all
	// computed values stay in place.
	MarkCancelled(ctx context.Context, invoice *domain.Invoice) error
	// IssuedLines returns the stored lines of all invoices issued under a
	// registration in [from, to), for rate-wise report aggregation.
	IssuedLines(ctx context.Context, registrationID uuid.UUID, from, to time.Time) ([]domain.InvoiceLine, error)
}
