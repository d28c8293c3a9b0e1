package service

import (
	"context"

	"github.com/google/uuid"

	"rxbill/internal/domain"
	"rxbill/internal/gst"
	"rxbill/internal/port"
)

// InvoiceLineInput is the DTO for one draft line. When ProductID is set,
// description, HSN code, rate, unit price, and tax mode default from the
// catalogue entry; explicit values in the request win.
type InvoiceLineInput struct {
	ProductID      *uuid.UUID `json:"product_id"`
	Description    string     `json:"description"`
	HSNCode        *string    `json:"hsn_code"`
	GSTRate        *float64   `json:"gst_rate"`
	Quantity       int64      `json:"quantity" binding:"required"`
	UnitPricePaise *gst.Paise `json:"unit_price_paise"`
	DiscountPaise  gst.Paise  `json:"discount_paise"`
	TaxMode        *string    `json:"tax_mode"`
}

// CreateInvoiceInput is the DTO for creating a draft invoice.
type CreateInvoiceInput struct {
	RegistrationID uuid.UUID          `json:"registration_id" binding:"required"`
	BuyerName      string             `json:"buyer_name" binding:"required"`
	BuyerGSTIN     *string            `json:"buyer_gstin"`
	PlaceOfSupply  string             `json:"place_of_supply"`
	Lines          []InvoiceLineInput `json:"lines" binding:"required"`
}

// UpdateInvoiceInput is the DTO for updating a draft invoice. A non-nil
// Lines replaces the whole line set.
type UpdateInvoiceInput struct {
	BuyerName     *string             `json:"buyer_name"`
	BuyerGSTIN    *string             `json:"buyer_gstin"`
	PlaceOfSupply *string             `json:"place_of_supply"`
	Lines         *[]InvoiceLineInput `json:"lines"`
}

// InvoiceService manages draft invoices. Issued invoices are read-only
// here; only BillingService moves an invoice out of DRAFT.
type InvoiceService interface {
	CreateDraft(ctx context.Context, pharmacyID uuid.UUID, input CreateInvoiceInput) (*domain.Invoice, error)
	GetByID(ctx context.Context, pharmacyID, invoiceID uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, pharmacyID uuid.UUID, status *domain.InvoiceStatus, offset, limit int) ([]domain.Invoice, int, error)
	UpdateDraft(ctx context.Context, pharmacyID, invoiceID uuid.UUID, input UpdateInvoiceInput) (*domain.Invoice, error)
}

type invoiceService struct {
	invoiceRepo port.InvoiceRepository
	regRepo     port.RegistrationRepository
	productRepo port.ProductRepository
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	invoiceRepo port.InvoiceRepository,
	regRepo port.RegistrationRepository,
	productRepo port.ProductRepository,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		regRepo:     regRepo,
		productRepo: productRepo,
	}
}

func (s *invoiceService) CreateDraft(ctx context.Context, pharmacyID uuid.UUID, input CreateInvoiceInput) (*domain.Invoice, error) {
	reg, err := s.regRepo.GetByID(ctx, pharmacyID, input.RegistrationID)
	if err != nil {
		return nil, err
	}

	lines, err := s.resolveLines(ctx, pharmacyID, input.Lines)
	if err != nil {
		return nil, err
	}

	invoice := &domain.Invoice{
		PharmacyID:     pharmacyID,
		RegistrationID: reg.ID,
		BuyerName:      input.BuyerName,
		BuyerGSTIN:     input.BuyerGSTIN,
		PlaceOfSupply:  input.PlaceOfSupply,
		Lines:          lines,
	}
	s.adviseTotals(invoice, reg.StateCode)

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) GetByID(ctx context.Context, pharmacyID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, pharmacyID, invoiceID)
}

func (s *invoiceService) List(ctx context.Context, pharmacyID uuid.UUID, status *domain.InvoiceStatus, offset, limit int) ([]domain.Invoice, int, error) {
	return s.invoiceRepo.List(ctx, pharmacyID, status, offset, limit)
}

func (s *invoiceService) UpdateDraft(ctx context.Context, pharmacyID, invoiceID uuid.UUID, input UpdateInvoiceInput) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, pharmacyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.InvoiceStatusDraft {
		return nil, domain.ErrInvoiceNotDraft
	}

	if input.BuyerName != nil {
		invoice.BuyerName = *input.BuyerName
	}
	if input.BuyerGSTIN != nil {
		invoice.BuyerGSTIN = input.BuyerGSTIN
	}
	if input.PlaceOfSupply != nil {
		invoice.PlaceOfSupply = *input.PlaceOfSupply
	}
	if input.Lines != nil {
		lines, err := s.resolveLines(ctx, pharmacyID, *input.Lines)
		if err != nil {
			return nil, err
		}
		invoice.Lines = lines
	}

	reg, err := s.regRepo.GetByID(ctx, pharmacyID, invoice.RegistrationID)
	if err != nil {
		return nil, err
	}
	s.adviseTotals(invoice, reg.StateCode)

	if err := s.invoiceRepo.ReplaceDraft(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// resolveLines turns line DTOs into domain lines, pulling catalogue
// defaults for product-referenced lines.
func (s *invoiceService) resolveLines(ctx context.Context, pharmacyID uuid.UUID, inputs []InvoiceLineInput) ([]domain.InvoiceLine, error) {
	if len(inputs) == 0 {
		return nil, domain.ErrEmptyInvoice
	}

	lines := make([]domain.InvoiceLine, len(inputs))
	for i, in := range inputs {
		if in.Quantity <= 0 {
			return nil, gst.ErrInvalidQuantity
		}
		line := domain.InvoiceLine{
			Description: in.Description,
			HSNCode:     in.HSNCode,
			Quantity:    in.Quantity,
			Discount:    in.DiscountPaise,
			TaxMode:     domain.TaxModeExclusive,
		}
		if in.GSTRate != nil {
			line.GSTRate = *in.GSTRate
		}
		if in.UnitPricePaise != nil {
			line.UnitPrice = *in.UnitPricePaise
		}
		if in.TaxMode != nil {
			mode := domain.TaxMode(*in.TaxMode)
			if !domain.ValidTaxMode(mode) {
				return nil, domain.ErrInvalidTaxMode
			}
			line.TaxMode = mode
		}

		if in.ProductID != nil {
			product, err := s.productRepo.GetByID(ctx, pharmacyID, *in.ProductID)
			if err != nil {
				return nil, err
			}
			if line.Description == "" {
				line.Description = product.Name
			}
			if line.HSNCode == nil {
				line.HSNCode = product.HSNCode
			}
			if in.GSTRate == nil && product.GSTRate != nil {
				line.GSTRate = *product.GSTRate
			}
			if in.UnitPricePaise == nil {
				line.UnitPrice = product.UnitPricePaise
			}
			if in.TaxMode == nil {
				line.TaxMode = product.TaxMode
			}
		}

		lines[i] = line
	}
	return lines, nil
}

// adviseTotals fills cart-time numbers on a draft when the place of supply
// is already usable. They are display hints only; issuance recomputes and
// overwrites them.
func (s *invoiceService) adviseTotals(invoice *domain.Invoice, sellerState string) {
	if !gst.ValidStateCode(invoice.PlaceOfSupply) {
		return
	}
	comp, err := gst.Aggregate(toGSTInputs(invoice.Lines), gst.Jurisdiction{
		SellerStateCode: sellerState,
		BuyerStateCode:  invoice.PlaceOfSupply,
	})
	if err != nil {
		return
	}
	applyComputation(invoice, comp)
}
