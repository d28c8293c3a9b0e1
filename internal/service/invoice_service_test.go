package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rxbill/internal/domain"
	"rxbill/internal/gst"
	"rxbill/internal/service"
	"rxbill/mocks"
)

func paisePtr(p gst.Paise) *gst.Paise { return &p }
func floatPtr(f float64) *float64     { return &f }
func uuidPtr(u uuid.UUID) *uuid.UUID  { return &u }

func TestCreateDraftWithProductDefaults(t *testing.T) {
	pharmacyID := uuid.New()
	reg := activeRegistration(pharmacyID)
	product := &domain.Product{
		ID:             uuid.New(),
		PharmacyID:     pharmacyID,
		SKU:            "PCM-650",
		Name:           "Paracetamol 650mg",
		HSNCode:        strPtr("3004"),
		GSTRate:        floatPtr(5),
		UnitPricePaise: 16075,
		TaxMode:        domain.TaxModeExclusive,
		IsActive:       true,
	}

	invoiceRepo := new(mocks.MockInvoiceRepo)
	regRepo := new(mocks.MockRegistrationRepo)
	productRepo := new(mocks.MockProductRepo)

	regRepo.On("GetByID", mock.Anything, pharmacyID, reg.ID).Return(reg, nil)
	productRepo.On("GetByID", mock.Anything, pharmacyID, product.ID).Return(product, nil)
	invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)

	svc := service.NewInvoiceService(invoiceRepo, regRepo, productRepo)
	invoice, err := svc.CreateDraft(context.Background(), pharmacyID, service.CreateInvoiceInput{
		RegistrationID: reg.ID,
		BuyerName:      "Walk-in",
		PlaceOfSupply:  "27",
		Lines: []service.InvoiceLineInput{
			{ProductID: uuidPtr(product.ID), Quantity: 2},
		},
	})
	require.NoError(t, err)

	line := invoice.Lines[0]
	assert.Equal(t, "Paracetamol 650mg", line.Description)
	require.NotNil(t, line.HSNCode)
	assert.Equal(t, "3004", *line.HSNCode)
	assert.Equal(t, float64(5), line.GSTRate)
	assert.Equal(t, gst.Paise(16075), line.UnitPrice)
	assert.Equal(t, domain.TaxModeExclusive, line.TaxMode)

	// Advisory totals: 2 * 160.75 = 321.50 taxable, 16.08 tax at 5%.
	assert.Equal(t, gst.Paise(32150), invoice.TaxablePaise)
	assert.Equal(t, gst.Paise(1608), invoice.TaxPaise)
	assert.Equal(t, gst.Paise(33758), invoice.GrandPaise)

	invoiceRepo.AssertExpectations(t)
}

func TestCreateDraftExplicitValuesWinOverProduct(t *testing.T) {
	pharmacyID := uuid.New()
	reg := activeRegistration(pharmacyID)
	product := &domain.Product{
		ID:             uuid.New(),
		PharmacyID:     pharmacyID,
		Name:           "Glucometer",
		HSNCode:        strPtr("9027"),
		GSTRate:        floatPtr(18),
		UnitPricePaise: 120000,
		TaxMode:        domain.TaxModeExclusive,
	}

	invoiceRepo := new(mocks.MockInvoiceRepo)
	regRepo := new(mocks.MockRegistrationRepo)
	productRepo := new(mocks.MockProductRepo)

	regRepo.On("GetByID", mock.Anything, pharmacyID, reg.ID).Return(reg, nil)
	productRepo.On("GetByID", mock.Anything, pharmacyID, product.ID).Return(product, nil)
	invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)

	mode := string(domain.TaxModeInclusive)
	svc := service.NewInvoiceService(invoiceRepo, regRepo, productRepo)
	invoice, err := svc.CreateDraft(context.Background(), pharmacyID, service.CreateInvoiceInput{
		RegistrationID: reg.ID,
		BuyerName:      "Walk-in",
		Lines: []service.InvoiceLineInput{
			{
				ProductID:      uuidPtr(product.ID),
				Quantity:       1,
				GSTRate:        floatPtr(12),
				UnitPricePaise: paisePtr(99900),
				TaxMode:        &mode,
			},
		},
	})
	require.NoError(t, err)

	line := invoice.Lines[0]
	assert.Equal(t, float64(12), line.GSTRate)
	assert.Equal(t, gst.Paise(99900), line.UnitPrice)
	assert.Equal(t, domain.TaxModeInclusive, line.TaxMode)
	assert.Equal(t, "Glucometer", line.Description)
}

func TestCreateDraftWithoutPlaceOfSupplySkipsAdvisoryTotals(t *testing.T) {
	pharmacyID := uuid.New()
	reg := activeRegistration(pharmacyID)

	invoiceRepo := new(mocks.MockInvoiceRepo)
	regRepo := new(mocks.MockRegistrationRepo)
	productRepo := new(mocks.MockProductRepo)

	regRepo.On("GetByID", mock.Anything, pharmacyID, reg.ID).Return(reg, nil)
	invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)

	svc := service.NewInvoiceService(invoiceRepo, regRepo, productRepo)
	invoice, err := svc.CreateDraft(context.Background(), pharmacyID, service.CreateInvoiceInput{
		RegistrationID: reg.ID,
		BuyerName:      "Walk-in",
		Lines: []service.InvoiceLineInput{
			{Description: "Bandage", Quantity: 1, UnitPricePaise: paisePtr(5000), GSTRate: floatPtr(12)},
		},
	})
	require.NoError(t, err)

	// No place of supply yet, so the draft saves without cart-time tax.
	assert.Equal(t, gst.Paise(0), invoice.TaxablePaise)
	assert.Equal(t, gst.Paise(0), invoice.TaxPaise)
	assert.Equal(t, gst.Paise(0), invoice.GrandPaise)
}

func TestCreateDraftRejectsEmptyLines(t *testing.T) {
	pharmacyID := uuid.New()
	reg := activeRegistration(pharmacyID)

	invoiceRepo := new(mocks.MockInvoiceRepo)
	regRepo := new(mocks.MockRegistrationRepo)
	productRepo := new(mocks.MockProductRepo)

	regRepo.On("GetByID", mock.Anything, pharmacyID, reg.ID).Return(reg, nil)

	svc := service.NewInvoiceService(invoiceRepo, regRepo, productRepo)
	_, err := svc.CreateDraft(context.Background(), pharmacyID, service.CreateInvoiceInput{
		RegistrationID: reg.ID,
		BuyerName:      "Walk-in",
	})
	assert.ErrorIs(t, err, domain.ErrEmptyInvoice)

	invoiceRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateDraftRejectsNonPositiveQuantity(t *testing.T) {
	pharmacyID := uuid.New()
	reg := activeRegistration(pharmacyID)

	invoiceRepo := new(mocks.MockInvoiceRepo)
	regRepo := new(mocks.MockRegistrationRepo)
	productRepo := new(mocks.MockProductRepo)

	regRepo.On("GetByID", mock.Anything, pharmacyID, reg.ID).Return(reg, nil)

	svc := service.NewInvoiceService(invoiceRepo, regRepo, productRepo)
	_, err := svc.CreateDraft(context.Background(), pharmacyID, service.CreateInvoiceInput{
		RegistrationID: reg.ID,
		BuyerName:      "Walk-in",
		Lines: []service.InvoiceLineInput{
			{Description: "Bandage", Quantity: 0, UnitPricePaise: paisePtr(5000)},
		},
	})
	assert.ErrorIs(t, err, gst.ErrInvalidQuantity)
}

func TestCreateDraftRejectsBadTaxMode(t *testing.T) {
	pharmacyID := uuid.New()
	reg := activeRegistration(pharmacyID)

	invoiceRepo := new(mocks.MockInvoiceRepo)
	regRepo := new(mocks.MockRegistrationRepo)
	productRepo := new(mocks.MockProductRepo)

	regRepo.On("GetByID", mock.Anything, pharmacyID, reg.ID).Return(reg, nil)

	mode := "GROSS"
	svc := service.NewInvoiceService(invoiceRepo, regRepo, productRepo)
	_, err := svc.CreateDraft(context.Background(), pharmacyID, service.CreateInvoiceInput{
		RegistrationID: reg.ID,
		BuyerName:      "Walk-in",
		Lines: []service.InvoiceLineInput{
			{Description: "Bandage", Quantity: 1, UnitPricePaise: paisePtr(5000), TaxMode: &mode},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTaxMode)
}

func TestUpdateDraftRejectsIssuedInvoice(t *testing.T) {
	pharmacyID := uuid.New()
	reg := activeRegistration(pharmacyID)
	invoice := draftInvoice(pharmacyID, reg.ID)
	invoice.Status = domain.InvoiceStatusIssued

	invoiceRepo := new(mocks.MockInvoiceRepo)
	regRepo := new(mocks.MockRegistrationRepo)
	productRepo := new(mocks.MockProductRepo)

	invoiceRepo.On("GetByID", mock.Anything, pharmacyID, invoice.ID).Return(invoice, nil)

	svc := service.NewInvoiceService(invoiceRepo, regRepo, productRepo)
	_, err := svc.UpdateDraft(context.Background(), pharmacyID, invoice.ID, service.UpdateInvoiceInput{
		BuyerName: strPtr("Someone Else"),
	})
	assert.ErrorIs(t, err, domain.ErrInvoiceNotDraft)

	invoiceRepo.AssertNotCalled(t, "ReplaceDraft", mock.Anything, mock.Anything)
}

func TestUpdateDraftReplacesLinesAndRecomputesAdvisory(t *testing.T) {
	pharmacyID := uuid.New()
	reg := activeRegistration(pharmacyID)
	invoice := draftInvoice(pharmacyID, reg.ID)

	invoiceRepo := new(mocks.MockInvoiceRepo)
	regRepo := new(mocks.MockRegistrationRepo)
	productRepo := new(mocks.MockProductRepo)

	invoiceRepo.On("GetByID", mock.Anything, pharmacyID, invoice.ID).Return(invoice, nil)
	regRepo.On("GetByID", mock.Anything, pharmacyID, reg.ID).Return(reg, nil)
	invoiceRepo.On("ReplaceDraft", mock.Anything, invoice).Return(nil)

	svc := service.NewInvoiceService(invoiceRepo, regRepo, productRepo)
	lines := []service.InvoiceLineInput{
		{Description: "ORS Sachet", HSNCode: strPtr("3004"), Quantity: 4, UnitPricePaise: paisePtr(2500), GSTRate: floatPtr(5)},
	}
	updated, err := svc.UpdateDraft(context.Background(), pharmacyID, invoice.ID, service.UpdateInvoiceInput{
		Lines: &lines,
	})
	require.NoError(t, err)

	require.Len(t, updated.Lines, 1)
	assert.Equal(t, "ORS Sachet", updated.Lines[0].Description)
	// 4 * 25.00 = 100.00 taxable, 5.00 tax.
	assert.Equal(t, gst.Paise(10000), updated.TaxablePaise)
	assert.Equal(t, gst.Paise(500), updated.TaxPaise)
	assert.Equal(t, gst.Paise(10500), updated.GrandPaise)

	invoiceRepo.AssertExpectations(t)
}
