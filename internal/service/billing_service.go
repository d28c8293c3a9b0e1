package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"rxbill/internal/domain"
	"rxbill/internal/gst"
	"rxbill/internal/port"
)

// BillingService owns the tax computation surface of an invoice: the
// side-effect-free preview and the one-shot DRAFT -> ISSUED transition.
type BillingService interface {
	// Preview recomputes a draft's taxes without writing anything.
	Preview(ctx context.Context, pharmacyID, invoiceID uuid.UUID) (*gst.Computation, error)
	// Issue atomically recomputes the draft, allocates its statutory
	// number, and persists the issued state. On any failure nothing is
	// written, the sequence counter included.
	Issue(ctx context.Context, pharmacyID, invoiceID uuid.UUID) (*domain.Invoice, error)
	// Cancel voids an issued invoice. The invoice number stays allocated
	// and the sequence counter is untouched.
	Cancel(ctx context.Context, pharmacyID, invoiceID uuid.UUID) (*domain.Invoice, error)
}

type billingService struct {
	invoiceRepo port.InvoiceRepository
	regRepo     port.RegistrationRepository
	tx          port.TxManager
}

// NewBillingService creates a new BillingService implementation.
func NewBillingService(
	invoiceRepo port.InvoiceRepository,
	regRepo port.RegistrationRepository,
	tx port.TxManager,
) BillingService {
	return &billingService{
		invoiceRepo: invoiceRepo,
		regRepo:     regRepo,
		tx:          tx,
	}
}

func (s *billingService) Preview(ctx context.Context, pharmacyID, invoiceID uuid.UUID) (*gst.Computation, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, pharmacyID, invoiceID)
	if err != nil {
		return nil, err
	}

	reg, err := s.regRepo.GetByID(ctx, pharmacyID, invoice.RegistrationID)
	if err != nil {
		return nil, err
	}

	if err := validateForCompute(invoice); err != nil {
		return nil, err
	}

	comp, err := gst.Aggregate(toGSTInputs(invoice.Lines), gst.Jurisdiction{
		SellerStateCode: reg.StateCode,
		BuyerStateCode:  invoice.PlaceOfSupply,
	})
	if err != nil {
		return nil, err
	}
	return &comp, nil
}

func (s *billingService) Issue(ctx context.Context, pharmacyID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	var issued *domain.Invoice

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		// Row lock first: concurrent Issue calls for the same invoice
		// serialize here, and the loser sees ISSUED below.
		invoice, err := s.invoiceRepo.GetForUpdate(ctx, pharmacyID, invoiceID)
		if err != nil {
			return err
		}
		if invoice.Status != domain.InvoiceStatusDraft {
			return domain.ErrInvoiceNotDraft
		}
		if err := validateForCompute(invoice); err != nil {
			return err
		}

		reg, err := s.regRepo.GetByID(ctx, pharmacyID, invoice.RegistrationID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrRegistrationInactive
			}
			return err
		}
		if !reg.IsActive {
			return domain.ErrRegistrationInactive
		}

		// Recompute from the stored inputs. Whatever advisory numbers the
		// draft carried are discarded.
		comp, err := gst.Aggregate(toGSTInputs(invoice.Lines), gst.Jurisdiction{
			SellerStateCode: reg.StateCode,
			BuyerStateCode:  invoice.PlaceOfSupply,
		})
		if err != nil {
			return err
		}

		seq, err := s.regRepo.AllocateSequence(ctx, reg.ID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		number := gst.FormatInvoiceNumber(reg.InvoicePrefix, gst.FinancialYear(now), seq)
		invoice.InvoiceNumber = &number
		invoice.IssuedAt = &now
		applyComputation(invoice, comp)

		if err := s.invoiceRepo.MarkIssued(ctx, invoice); err != nil {
			return err
		}
		issued = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return issued, nil
}

func (s *billingService) Cancel(ctx context.Context, pharmacyID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	var cancelled *domain.Invoice

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		invoice, err := s.invoiceRepo.GetForUpdate(ctx, pharmacyID, invoiceID)
		if err != nil {
			return err
		}
		if invoice.Status != domain.InvoiceStatusIssued {
			return domain.ErrInvoiceNotIssued
		}
		if err := s.invoiceRepo.MarkCancelled(ctx, invoice); err != nil {
			return err
		}
		cancelled = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// validateForCompute gates both preview and issuance: an invoice must
// have lines and a well-formed place of supply before any tax or
// numbering work happens.
func validateForCompute(invoice *domain.Invoice) error {
	if len(invoice.Lines) == 0 {
		return domain.ErrEmptyInvoice
	}
	if invoice.PlaceOfSupply == "" {
		return domain.ErrMissingPlaceOfSupply
	}
	if !gst.ValidStateCode(invoice.PlaceOfSupply) {
		return domain.ErrInvalidPlaceOfSupply
	}
	return nil
}
