package service

import (
	"context"

	"github.com/google/uuid"

	"rxbill/internal/domain"
	"rxbill/internal/gst"
	"rxbill/internal/port"
)

// CreateProductInput is the DTO for creating a catalogue product.
type CreateProductInput struct {
	SKU            string    `json:"sku" binding:"required"`
	Name           string    `json:"name" binding:"required"`
	HSNCode        *string   `json:"hsn_code"`
	GSTRate        *float64  `json:"gst_rate"`
	UnitPricePaise gst.Paise `json:"unit_price_paise" binding:"required"`
	TaxMode        string    `json:"tax_mode" binding:"required"`
}

// UpdateProductInput is the DTO for updating a catalogue product.
type UpdateProductInput struct {
	SKU            *string    `json:"sku"`
	Name           *string    `json:"name"`
	HSNCode        *string    `json:"hsn_code"`
	GSTRate        *float64   `json:"gst_rate"`
	UnitPricePaise *gst.Paise `json:"unit_price_paise"`
	TaxMode        *string    `json:"tax_mode"`
	IsActive       *bool      `json:"is_active"`
}

// ProductService defines the catalogue management contract. It also fronts
// the HSN master for back-office code lookups.
type ProductService interface {
	Create(ctx context.Context, pharmacyID uuid.UUID, input CreateProductInput) (*domain.Product, error)
	GetByID(ctx context.Context, pharmacyID, productID uuid.UUID) (*domain.Product, error)
	// GetBySKU serves the barcode-scan path at the counter.
	GetBySKU(ctx context.Context, pharmacyID uuid.UUID, sku string) (*domain.Product, error)
	List(ctx context.Context, pharmacyID uuid.UUID, offset, limit int) ([]domain.Product, int, error)
	Update(ctx context.Context, pharmacyID, productID uuid.UUID, input UpdateProductInput) (*domain.Product, error)
	SearchHSN(ctx context.Context, prefix string, limit int) ([]port.HSNEntry, error)
}

type productService struct {
	repo    port.ProductRepository
	hsnRepo port.HSNRepository
}

// NewProductService creates a new ProductService implementation.
func NewProductService(repo port.ProductRepository, hsnRepo port.HSNRepository) ProductService {
	return &productService{repo: repo, hsnRepo: hsnRepo}
}

func (s *productService) Create(ctx context.Context, pharmacyID uuid.UUID, input CreateProductInput) (*domain.Product, error) {
	mode := domain.TaxMode(input.TaxMode)
	if !domain.ValidTaxMode(mode) {
		return nil, domain.ErrInvalidTaxMode
	}

	product := &domain.Product{
		PharmacyID:     pharmacyID,
		SKU:            input.SKU,
		Name:           input.Name,
		HSNCode:        input.HSNCode,
		GSTRate:        input.GSTRate,
		UnitPricePaise: input.UnitPricePaise,
		TaxMode:        mode,
		IsActive:       true,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) GetByID(ctx context.Context, pharmacyID, productID uuid.UUID) (*domain.Product, error) {
	return s.repo.GetByID(ctx, pharmacyID, productID)
}

func (s *productService) GetBySKU(ctx context.Context, pharmacyID uuid.UUID, sku string) (*domain.Product, error) {
	return s.repo.GetBySKU(ctx, pharmacyID, sku)
}

func (s *productService) List(ctx context.Context, pharmacyID uuid.UUID, offset, limit int) ([]domain.Product, int, error) {
	return s.repo.ListByPharmacy(ctx, pharmacyID, offset, limit)
}

func (s *productService) Update(ctx context.Context, pharmacyID, productID uuid.UUID, input UpdateProductInput) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, pharmacyID, productID)
	if err != nil {
		return nil, err
	}

	if input.SKU != nil {
		product.SKU = *input.SKU
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.HSNCode != nil {
		product.HSNCode = input.HSNCode
	}
	if input.GSTRate != nil {
		product.GSTRate = input.GSTRate
	}
	if input.UnitPricePaise != nil {
		product.UnitPricePaise = *input.UnitPricePaise
	}
	if input.TaxMode != nil {
		mode := domain.TaxMode(*input.TaxMode)
		if !domain.ValidTaxMode(mode) {
			return nil, domain.ErrInvalidTaxMode
		}
		product.TaxMode = mode
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) SearchHSN(ctx context.Context, prefix string, limit int) ([]port.HSNEntry, error) {
	return s.hsnRepo.Search(ctx, prefix, limit)
}
