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

type registrationRepo struct {
	db *sqlx.DB
}

// NewRegistrationRepo creates a new PostgreSQL-backed RegistrationRepository.
func NewRegistrationRepo(db *sqlx.DB) port.RegistrationRepository {
	return &registrationRepo{db: db}
}

func (r *registrationRepo) Create(ctx context.Context, reg *domain.GSTRegistration) error {
	reg.ID = uuid.New()
	now := time.Now().UTC()
	reg.CreatedAt = now
	reg.UpdatedAt = now
	if reg.InvoicePrefix == "" {
		reg.InvoicePrefix = domain.DefaultInvoicePrefix
	}
	if reg.NextInvoiceNumber == 0 {
		reg.NextInvoiceNumber = 1
	}

	query := `INSERT INTO gst_registrations
		(id, pharmacy_id, gstin, state_code, legal_name, invoice_prefix,
		 next_invoice_number, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := q(ctx, r.db).ExecContext(ctx, query,
		reg.ID, reg.PharmacyID, reg.GSTIN, reg.StateCode, reg.LegalName,
		reg.InvoicePrefix, reg.NextInvoiceNumber, reg.IsActive,
		reg.CreatedAt, reg.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateGSTIN
		}
		return fmt.Errorf("registrationRepo.Create: %w", err)
	}
	return nil
}

func (r *registrationRepo) GetByID(ctx context.Context, pharmacyID, regID uuid.UUID) (*domain.GSTRegistration, error) {
	var reg domain.GSTRegistration
	err := q(ctx, r.db).GetContext(ctx, &reg,
		"SELECT * FROM gst_registrations WHERE id = $1 AND pharmacy_id = $2", regID, pharmacyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("registrationRepo.GetByID: %w", err)
	}
	return &reg, nil
}

func (r *registrationRepo) ListByPharmacy(ctx context.Context, pharmacyID uuid.UUID) ([]domain.GSTRegistration, error) {
	var regs []domain.GSTRegistration
	err := q(ctx, r.db).SelectContext(ctx, &regs,
		"SELECT * FROM gst_registrations WHERE pharmacy_id = $1 ORDER BY created_at", pharmacyID)
	if err != nil {
		return nil, fmt.Errorf("registrationRepo.ListByPharmacy: %w", err)
	}
	return regs, nil
}

func (r *registrationRepo) Update(ctx context.Context, reg *domain.GSTRegistration) error {
	reg.UpdatedAt = time.Now().UTC()
	query := `UPDATE gst_registrations
		SET gstin = $1, state_code = $2, legal_name = $3, invoice_prefix = $4,
		    is_active = $5, updated_at = $6
		WHERE id = $7 AND pharmacy_id = $8`
	result, err := q(ctx, r.db).ExecContext(ctx, query,
		reg.GSTIN, reg.StateCode, reg.LegalName, reg.InvoicePrefix,
		reg.IsActive, reg.UpdatedAt, reg.ID, reg.PharmacyID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateGSTIN
		}
		return fmt.Errorf("registrationRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AllocateSequence is the single mutation point of the invoice-number
// counter. The increment and the read happen in one statement, so two
// concurrent issuances against the same registration serialize on the row
// and can never both observe the same value. The WHERE clause makes an
// inactive or missing registration fail without touching the counter.
func (r *registrationRepo) AllocateSequence(ctx context.Context, regID uuid.UUID) (int64, error) {
	var next int64
	err := q(ctx, r.db).GetContext(ctx, &next,
		`UPDATE gst_registrations
		 SET next_invoice_number = next_invoice_number + 1,
		     updated_at = NOW()
		 WHERE id = $1 AND is_active
		 RETURNING next_invoice_number - 1`,
		regID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrRegistrationInactive
		}
		return 0, fmt.Errorf("registrationRepo.AllocateSequence: %w", err)
	}
	return next, nil
}
