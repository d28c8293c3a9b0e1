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

type pharmacyRepo struct {
	db *sqlx.DB
}

// NewPharmacyRepo creates a new PostgreSQL-backed PharmacyRepository.
func NewPharmacyRepo(db *sqlx.DB) port.PharmacyRepository {
	return &pharmacyRepo{db: db}
}

func (r *pharmacyRepo) Create(ctx context.Context, pharmacy *domain.Pharmacy) error {
	pharmacy.ID = uuid.New()
	now := time.Now().UTC()
	pharmacy.CreatedAt = now
	pharmacy.UpdatedAt = now

	query := `INSERT INTO pharmacies (id, name, slug, state_code, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := q(ctx, r.db).ExecContext(ctx, query,
		pharmacy.ID, pharmacy.Name, pharmacy.Slug, pharmacy.StateCode,
		pharmacy.IsActive, pharmacy.CreatedAt, pharmacy.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "slug") {
			return domain.ErrDuplicateSlug
		}
		return fmt.Errorf("pharmacyRepo.Create: %w", err)
	}
	return nil
}

func (r *pharmacyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Pharmacy, error) {
	var pharmacy domain.Pharmacy
	err := q(ctx, r.db).GetContext(ctx, &pharmacy, "SELECT * FROM pharmacies WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("pharmacyRepo.GetByID: %w", err)
	}
	return &pharmacy, nil
}

func (r *pharmacyRepo) GetBySlug(ctx context.Context, slug string) (*domain.Pharmacy, error) {
	var pharmacy domain.Pharmacy
	err := q(ctx, r.db).GetContext(ctx, &pharmacy, "SELECT * FROM pharmacies WHERE slug = $1", slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("pharmacyRepo.GetBySlug: %w", err)
	}
	return &pharmacy, nil
}

func (r *pharmacyRepo) Update(ctx context.Context, pharmacy *domain.Pharmacy) error {
	pharmacy.UpdatedAt = time.Now().UTC()
	query := `UPDATE pharmacies SET name = $1, slug = $2, state_code = $3, is_active = $4, updated_at = $5
		WHERE id = $6`
	result, err := q(ctx, r.db).ExecContext(ctx, query,
		pharmacy.Name, pharmacy.Slug, pharmacy.StateCode, pharmacy.IsActive,
		pharmacy.UpdatedAt, pharmacy.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "slug") {
			return domain.ErrDuplicateSlug
		}
		return fmt.Errorf("pharmacyRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
