package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rxbill/internal/domain"
	"rxbill/internal/gst"
	"rxbill/internal/service"
	"rxbill/mocks"
)

func strPtr(s string) *string { return &s }

func activeRegistration(pharmacyID uuid.UUID) *domain.GSTRegistration {
	return &domain.GSTRegistration{
		ID:                uuid.New(),
		PharmacyID:        pharmacyID,
		GSTIN:             "27AABCU9603R1ZM",
		StateCode:         "27",
		LegalName:         "Sharma Medicos Pvt Ltd",
		InvoicePrefix:     "PP",
		NextInvoiceNumber: 7,
		IsActive:          true,
	}
}

// draftInvoice carries two lines and deliberately stale advisory totals so
// issuance tests can prove the stored numbers get overwritten.
func draftInvoice(pharmacyID, regID uuid.UUID) *domain.Invoice {
	return &domain.Invoice{
		ID:             uuid.New(),
		PharmacyID:     pharmacyID,
		RegistrationID: regID,
		Status:         domain.InvoiceStatusDraft,
		BuyerName:      "Walk-in",
		PlaceOfSupply:  "27",
		TaxablePaise:   1,
		TaxPaise:       1,
		GrandPaise:     1,
		Lines: []domain.InvoiceLine{
			{
				Description: "Paracetamol 650mg",
				HSNCode:     strPtr("3004"),
				GSTRate:     5,
				Quantity:    2,
				UnitPrice:   16075,
				Discount:    2150,
				TaxMode:     domain.TaxModeExclusive,
			},
			{
				Description: "Glucometer",
				HSNCode:     strPtr("9027"),
				GSTRate:     12,
				Quantity:    1,
				UnitPrice:   99900,
				TaxMode:     domain.TaxModeInclusive,
			},
		},
	}
}

func TestIssueHappyPath(t *testing.T) {
	pharmacyID := uuid.New()
	reg := activeRegistration(pharmacyID)
	invoice := draftInvoice(pharmacyID, reg.ID)

	invoiceRepo := new(mocks.MockInvoiceRepo)
	regRepo := new(mocks.MockRegistrationRepo)
	txm := new(mocks.MockTxManager)

	txm.On("WithinTx", mock.Anything, mock.Anything).Return(nil)
	invoiceRepo.On("GetForUpdate", mock.Anything, pharmacyID, invoice.ID).Return(invoice, nil)
	regRepo.On("GetByID", mock.Anything, pharmacyID, reg.ID).Return(reg, nil)
	regRepo.On("AllocateSequence", mock.Anything, reg.ID).Return(int64(7), nil)
	invoiceRepo.On("MarkIssued", mock.Anything, invoice).Return(nil)

	svc := service.NewBillingService(invoiceRepo, regRepo, txm)
	issued, err := svc.Issue(context.Background(), pharmacyID, invoice.ID)
	require.NoError(t, err)
	require.NotNil(t, issued)

	wantNumber := gst.FormatInvoiceNumber("PP", gst.FinancialYear(time.Now().UTC()), 7)
	require.NotNil(t, issued.InvoiceNumber)
	assert.Equal(t, wantNumber, *issued.InvoiceNumber)
	require.NotNil(t, issued.IssuedAt)

	// Exclusive line: 2*160.75 - 21.50 = 300.00 taxable, 15.00 tax.
	// Inclusive line: 999.00 gross backs out to 891.96 + 107.04.
	assert.Equal(t, gst.Paise(119196), issued.TaxablePaise)
	assert.Equal(t, gst.Paise(12204), issued.TaxPaise)
	assert.Equal(t, gst.Paise(131400), issued.GrandPaise)

	// Intra-state: tax splits into CGST/SGST, no IGST.
	assert.Equal(t, gst.Paise(750), issued.Lines[0].CGSTPaise)
	assert.Equal(t, gst.Paise(750), issued.Lines[0].SGSTPaise)
	assert.Equal(t, gst.Paise(0), issued.Lines[0].IGSTPaise)
	assert.Equal(t, gst.Paise(5352), issued.Lines[1].CGSTPaise)
	assert.Equal(t, gst.Paise(5352), issued.Lines[1].SGSTPaise)
	assert.Equal(t, gst.Paise(99900), issued.Lines[1].TotalPaise)

	invoiceRepo.AssertExpectations(t)
	regRepo.AssertExpectations(t)
	txm.AssertExpectations(t)
}

func TestIssueRecomputesEditedDraft(t *testing.T) {
	pharmacyID := uuid.New()
	reg := activeRegistration(pharmacyID)
	invoice := draftInvoice(pharmacyID, reg.ID)
	// The draft was edited after its advisory totals were stored: the
	// discount grew, but the header still carries the old numbers.
	invoice.Lines = invoice.Lines[:1]
	invoice.Lines[0].Discount = 4150
	invoice.TaxablePaise = 30000
	invoice.TaxPaise = 1500
	invoice.GrandPaise = 31500

	invoiceRepo := new(mocks.MockInvoiceRepo)
	regRepo := new(mocks.MockRegistrationRepo)
	txm := new(mocks.MockTxManager)

	txm.On("WithinTx", mock.Anything, mock.Anything).Return(nil)
	invoiceRepo.On("GetForUpdate", mock.Anything, pharmacyID, invoice.ID).Return(invoice, nil)
	regRepo.On("GetByID", mock.Anything, pharmacyID, reg.ID).Return(reg, nil)
	regRepo.On("AllocateSequence", mock.Anything, reg.ID).Return(int64(8), nil)
	invoiceRepo.On("MarkIssued", mock.Anything, invoice).Return(nil)

	svc := service.NewBillingService(invoiceRepo, regRepo, txm)
	issued, err := svc.Issue(context.Background(), pharmacyID, invoice.ID)
	require.NoError(t, err)

	// 2*160.75 - 41.50 = 280.00 taxable, 14.00 tax at 5%.
	assert.Equal(t, gst.Paise(28000), issued.TaxablePaise)
	assert.Equal(t, gst.Paise(1400), issued.TaxPaise)
	assert.Equal(t, gst.Paise(29400), issued.GrandPaise)
}

func TestIssueRejectsNonDraft(t *testing.T) {
	pharmacyID := uuid.New()
	reg := activeRegistration(pharmacyID)
	invoice := draftInvoice(pharmacyID, reg.ID)
	invoice.Status = domain.InvoiceStatusIssued

	invoiceRepo := new(mocks.MockInvoiceRepo)
	regRepo := new(mocks.MockRegistrationRepo)
	txm := new(mocks.MockTxManager)

	txm.On("WithinTx", mock.Anything, mock.Anything).Return(nil)
	invoiceRepo.On("GetForUpdate", mock.Anything, pharmacyID, invoice.ID).Return(invoice, nil)

	svc := service.NewBillingService(invoiceRepo, regRepo, txm)
	_, err := svc.Issue(context.Background(), pharmacyID, invoice.ID)
	assert.ErrorIs(t, err, domain.ErrInvoiceNotDraft)

	regRepo.AssertNotCalled(t, "AllocateSequence", mock.Anything, mock.Anything)
	invoiceRepo.AssertNotCalled(t, "MarkIssued", mock.Anything, mock.Anything)
}

func TestIssueMissingPlaceOfSupply(t *testing.T) {
	pharmacyID := uuid.New()
	reg := activeRegistration(pharmacyID)
	invoice := draftInvoice(pharmacyID, reg.ID)
	invoice.PlaceOfSupply = ""

	invoiceRepo := new(mocks.MockInvoiceRepo)
	regRepo := new(mocks.MockRegistrationRepo)
	txm := new(mocks.MockTxManager)

	txm.On("WithinTx", mock.Anything, mock.Anything).Return(nil)
	invoiceRepo.On("GetForUpdate", mock.Anything, pharmacyID, invoice.ID).Return(invoice, nil)

	svc := service.NewBillingService(invoiceRepo, regRepo, txm)
	_, err := svc.Issue(context.Background(), pharmacyID, invoice.ID)
	assert.ErrorIs(t, err, domain.ErrMissingPlaceOfSupply)

	regRepo.AssertNotCalled(t, "AllocateSequence", mock.Anything, mock.Anything)
}

func TestIssueInvalidPlaceOfSupply(t *testing.T) {
	pharmacyID := uuid.New()
	reg := activeRegistration(pharmacyID)
	invoice := draftInvoice(pharmacyID, reg.ID)
	invoice.PlaceOfSupply = "99"

	invoiceRepo := new(mocks.MockInvoiceRepo)
	regRepo := new(mocks.MockRegistrationRepo)
	txm := new(mocks.MockTxManager)

	txm.On("WithinTx", mock.Anything, mock.Anything).Return(nil)
	invoiceRepo.On("GetForUpdate", mock.Anything, pharmacyID, invoice.ID).Return(invoice, nil)

	svc := service.NewBillingService(invoiceRepo, regRepo, txm)
	_, err := svc.Issue(context.Background(), pharmacyID, invoice.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidPlaceOfSupply)

	regRepo.AssertNotCalled(t, "AllocateSequence", mock.Anything, mock.Anything)
}

func TestIssueEmptyInvoice(t *testing.T) {
	pharmacyID := uuid.New()
	reg := activeRegistration(pharmacyID)
	invoice := draftInvoice(pharmacyID, reg.ID)
	invoice.Lines = nil

	invoiceRepo := new(mocks.MockInvoiceRepo)
	regRepo := new(mocks.MockRegistrationRepo)
	txm := new(mocks.MockTxManager)

	txm.On("WithinTx", mock.Anything, mock.Anything).Return(nil)
	invoiceRepo.On("GetForUpdate", mock.Anything, pharmacyID, invoice.ID).Return(invoice, nil)

	svc := service.NewBillingService(invoiceRepo, regRepo, txm)
	_, err := svc.Issue(context.Background(), pharmacyID, invoice.ID)
	assert.ErrorIs(t, err, domain.ErrEmptyInvoice)
}

func TestIssueInactiveRegistration(t *testing.T) {
	pharmacyID := uuid.New()
	reg := activeRegistration(pharmacyID)
	reg.IsActive = false
	invoice := draftInvoice(pharmacyID, reg.ID)

	invoiceRepo := new(mocks.MockInvoiceRepo)
	regRepo := new(mocks.MockRegistrationRepo)
	txm := new(mocks.MockTxManager)

	txm.On("WithinTx", mock.Anything, mock.Anything).Return(nil)
	invoiceRepo.On("GetForUpdate", mock.Anything, pharmacyID, invoice.ID).Return(invoice, nil)
	regRepo.On("GetByID", mock.Anything, pharmacyID, reg.ID).Return(reg, nil)

	svc := service.NewBillingService(invoiceRepo, regRepo, txm)
	_, err := svc.Issue(context.Background(), pharmacyID, invoice.ID)
	assert.ErrorIs(t, err, domain.ErrRegistrationInactive)

	regRepo.AssertNotCalled(t, "AllocateSequence", mock.Anything, mock.Anything)
	invoiceRepo.AssertNotCalled(t, "MarkIssued", mock.Anything, mock.Anything)
}

func TestIssueAllocationFailureLeavesInvoiceUntouched(t *testing.T) {
	pharmacyID := uuid.New()
	reg := activeRegistration(pharmacyID)
	invoice := draftInvoice(pharmacyID, reg.ID)

	invoiceRepo := new(mocks.MockInvoiceRepo)
	regRepo := new(mocks.MockRegistrationRepo)
	txm := new(mocks.MockTxManager)

	txm.On("WithinTx", mock.Anything, mock.Anything).Return(nil)
	invoiceRepo.On("GetForUpdate", mock.Anything, pharmacyID, invoice.ID).Return(invoice, nil)
	regRepo.On("GetByID", mock.Anything, pharmacyID, reg.ID).Return(reg, nil)
	regRepo.On("AllocateSequence", mock.Anything, reg.ID).Return(int64(0), domain.ErrRegistrationInactive)

	svc := service.NewBillingService(invoiceRepo, regRepo, txm)
	_, err := svc.Issue(context.Background(), pharmacyID, invoice.ID)
	assert.ErrorIs(t, err, domain.ErrRegistrationInactive)

	invoiceRepo.AssertNotCalled(t, "MarkIssued", mock.Anything, mock.Anything)
	assert.Nil(t, invoice.InvoiceNumber)
}

func TestCancelKeepsNumberAndCounter(t *testing.T) {
	pharmacyID := uuid.New()
	reg := activeRegistration(pharmacyID)
	invoice := draftInvoice(pharmacyID, reg.ID)
	invoice.Status = domain.InvoiceStatusIssued
	number := "PP/25-26/0007"
	invoice.InvoiceNumber = &number

	invoiceRepo := new(mocks.MockInvoiceRepo)
	regRepo := new(mocks.MockRegistrationRepo)
	txm := new(mocks.MockTxManager)

	txm.On("WithinTx", mock.Anything, mock.Anything).Return(nil)
	invoiceRepo.On("GetForUpdate", mock.Anything, pharmacyID, invoice.ID).Return(invoice, nil)
	invoiceRepo.On("MarkCancelled", mock.Anything, invoice).Return(nil)

	svc := service.NewBillingService(invoiceRepo, regRepo, txm)
	cancelled, err := svc.Cancel(context.Background(), pharmacyID, invoice.ID)
	require.NoError(t, err)

	require.NotNil(t, cancelled.InvoiceNumber)
	assert.Equal(t, "PP/25-26/0007", *cancelled.InvoiceNumber)
	regRepo.AssertNotCalled(t, "AllocateSequence", mock.Anything, mock.Anything)
	regRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCancelRejectsDraft(t *testing.T) {
	pharmacyID := uuid.New()
	reg := activeRegistration(pharmacyID)
	invoice := draftInvoice(pharmacyID, reg.ID)

	invoiceRepo := new(mocks.MockInvoiceRepo)
	regRepo := new(mocks.MockRegistrationRepo)
	txm := new(mocks.MockTxManager)

	txm.On("WithinTx", mock.Anything, mock.Anything).Return(nil)
	invoiceRepo.On("GetForUpdate", mock.Anything, pharmacyID, invoice.ID).Return(invoice, nil)

	svc := service.NewBillingService(invoiceRepo, regRepo, txm)
	_, err := svc.Cancel(context.Background(), pharmacyID, invoice.ID)
	assert.ErrorIs(t, err, domain.ErrInvoiceNotIssued)

	invoiceRepo.AssertNotCalled(t, "MarkCancelled", mock.Anything, mock.Anything)
}

func TestPreviewHasNoSideEffects(t *testing.T) {
	pharmacyID := uuid.New()
	reg := activeRegistration(pharmacyID)
	invoice := draftInvoice(pharmacyID, reg.ID)
	invoice.PlaceOfSupply = "07" // inter-state

	invoiceRepo := new(mocks.MockInvoiceRepo)
	regRepo := new(mocks.MockRegistrationRepo)
	txm := new(mocks.MockTxManager)

	invoiceRepo.On("GetByID", mock.Anything, pharmacyID, invoice.ID).Return(invoice, nil)
	regRepo.On("GetByID", mock.Anything, pharmacyID, reg.ID).Return(reg, nil)

	svc := service.NewBillingService(invoiceRepo, regRepo, txm)
	comp, err := svc.Preview(context.Background(), pharmacyID, invoice.ID)
	require.NoError(t, err)

	assert.Equal(t, gst.Paise(119196), comp.Totals.Taxable)
	assert.Equal(t, gst.Paise(12204), comp.Totals.Tax)
	assert.Equal(t, gst.Paise(131400), comp.Totals.Grand)
	assert.Equal(t, gst.Paise(1500), comp.Lines[0].IGST)
	assert.Equal(t, gst.Paise(0), comp.Lines[0].CGST)

	txm.AssertNotCalled(t, "WithinTx", mock.Anything, mock.Anything)
	regRepo.AssertNotCalled(t, "AllocateSequence", mock.Anything, mock.Anything)
	invoiceRepo.AssertNotCalled(t, "MarkIssued", mock.Anything, mock.Anything)
	invoiceRepo.AssertNotCalled(t, "ReplaceDraft", mock.Anything, mock.Anything)
}

func TestPreviewValidatesPlaceOfSupply(t *testing.T) {
	pharmacyID := uuid.New()
	reg := activeRegistration(pharmacyID)
	invoice := draftInvoice(pharmacyID, reg.ID)
	invoice.PlaceOfSupply = "7" // not zero-padded

	invoiceRepo := new(mocks.MockInvoiceRepo)
	regRepo := new(mocks.MockRegistrationRepo)
	txm := new(mocks.MockTxManager)

	invoiceRepo.On("GetByID", mock.Anything, pharmacyID, invoice.ID).Return(invoice, nil)
	regRepo.On("GetByID", mock.Anything, pharmacyID, reg.ID).Return(reg, nil)

	svc := service.NewBillingService(invoiceRepo, regRepo, txm)
	_, err := svc.Preview(context.Background(), pharmacyID, invoice.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidPlaceOfSupply)
}
