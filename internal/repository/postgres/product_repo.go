package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rxbill/internal/domain"
	"rxbill/internal/port"
)

type productRepo struct {
	db *sqlx.DB
}

// NewProductRepo creates a new PostgreSQL-backed ProductRepository.
func NewProductRepo(db *sqlx.DB) port.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *domain.Product) error {
	product.ID = uuid.New()
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	query := `INSERT INTO products
		(id, pharmacy_id, sku, name, hsn_code, gst_rate, unit_price_paise, tax_mode, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := q(ctx, r.db).ExecContext(ctx, query,
		product.ID, product.PharmacyID, product.SKU, product.Name,
		product.HSNCode, product.GSTRate, product.UnitPricePaise,
		product.TaxMode, product.IsActive, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateSKU
		}
		return fmt.Errorf("productRepo.Create: %w", err)
	}
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, pharmacyID, productID uuid.UUID) (*domain.Product, error) {
	var product domain.Product
	err := q(ctx, r.db).GetContext(ctx, &product,
		"SELECT * FROM products WHERE id = $1 AND pharmacy_id = $2", productID, pharmacyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("productRepo.GetByID: %w", err)
	}
	return &product, nil
}

func (r *productRepo) GetBySKU(ctx context.Context, pharmacyID uuid.UUID, sku string) (*domain.Product, error) {
	var product domain.Product
	err := q(ctx, r.db).GetContext(ctx, &product,
		"SELECT * FROM products WHERE pharmacy_id = $1 AND sku = $2", pharmacyID, sku)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("productRepo.GetBySKU: %w", err)
	}
	return &product, nil
}

func (r *productRepo) ListByPharmacy(ctx context.Context, pharmacyID uuid.UUID, offset, limit int) ([]domain.Product, int, error) {
	var total int
	err := q(ctx, r.db).GetContext(ctx, &total,
		"SELECT COUNT(*) FROM products WHERE pharmacy_id = $1", pharmacyID)
	if err != nil {
		return nil, 0, fmt.Errorf("productRepo.ListByPharmacy count: %w", err)
	}

	var products []domain.Product
	err = q(ctx, r.db).SelectContext(ctx, &products,
		"SELECT * FROM products WHERE pharmacy_id = $1 ORDER BY name LIMIT $2 OFFSET $3",
		pharmacyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("productRepo.ListByPharmacy: %w", err)
	}
	return products, total, nil
}

func (r *productRepo) Update(ctx context.Context, product *domain.Product) error {
	product.UpdatedAt = time.Now().UTC()
	query := `UPDATE products
		SET sku = $1, name = $2, hsn_code = $3, gst_rate = $4,
		    unit_price_paise = $5, tax_mode = $6, is_active = $7, updated_at = $8
		WHERE id = $9 AND pharmacy_id = $10`
	result, err := q(ctx, r.db).ExecContext(ctx, query,
		product.SKU, product.Name, product.HSNCode, product.GSTRate,
		product.UnitPricePaise, product.TaxMode, product.IsActive,
		product.UpdatedAt, product.ID, product.PharmacyID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateSKU
		}
		return fmt.Errorf("productRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
