package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rxbill/internal/domain"
	"rxbill/internal/gst"
	"rxbill/internal/port"
)

// BucketReport is a period's rate-wise GST summary for one registration.
type BucketReport struct {
	Registration *domain.GSTRegistration `json:"registration"`
	From         time.Time               `json:"from"`
	To           time.Time               `json:"to"`
	Buckets      []gst.TaxBucket         `json:"buckets"`
}

// ReportService produces statutory summaries over issued invoices.
type ReportService interface {
	// BucketSummary folds the stored lines of all invoices issued under a
	// registration in [from, to) into (HSN, rate) buckets. Stored values
	// are used as-is; issued invoices are never recomputed.
	BucketSummary(ctx context.Context, pharmacyID, registrationID uuid.UUID, from, to time.Time) (*BucketReport, error)
}

type reportService struct {
	invoiceRepo port.InvoiceRepository
	regRepo     port.RegistrationRepository
}

// NewReportService creates a new ReportService implementation.
func NewReportService(invoiceRepo port.InvoiceRepository, regRepo port.RegistrationRepository) ReportService {
	return &reportService{invoiceRepo: invoiceRepo, regRepo: regRepo}
}

func (s *reportService) BucketSummary(ctx context.Context, pharmacyID, registrationID uuid.UUID, from, to time.Time) (*BucketReport, error) {
	reg, err := s.regRepo.GetByID(ctx, pharmacyID, registrationID)
	if err != nil {
		return nil, err
	}

	lines, err := s.invoiceRepo.IssuedLines(ctx, registrationID, from, to)
	if err != nil {
		return nil, err
	}

	return &BucketReport{
		Registration: reg,
		From:         from,
		To:           to,
		Buckets:      gst.BucketComputed(toComputedLines(lines)),
	}, nil
}
