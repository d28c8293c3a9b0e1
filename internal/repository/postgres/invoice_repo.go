package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rxbill/internal/domain"
	"rxbill/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

const invoiceColumns = `id, pharmacy_id, registration_id, status, invoice_number,
	buyer_name, buyer_gstin, place_of_supply, taxable_paise, tax_paise,
	grand_paise, issued_at, created_at, updated_at`

func (r *invoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	invoice.ID = uuid.New()
	now := time.Now().UTC()
	invoice.CreatedAt = now
	invoice.UpdatedAt = now
	invoice.Status = domain.InvoiceStatusDraft

	query := `INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := q(ctx, r.db).ExecContext(ctx, query,
		invoice.ID, invoice.PharmacyID, invoice.RegistrationID, invoice.Status,
		invoice.InvoiceNumber, invoice.BuyerName, invoice.BuyerGSTIN,
		invoice.PlaceOfSupply, invoice.TaxablePaise, invoice.TaxPaise,
		invoice.GrandPaise, invoice.IssuedAt, invoice.CreatedAt, invoice.UpdatedAt)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	if err := r.insertLines(ctx, invoice); err != nil {
		return fmt.Errorf("invoiceRepo.Create lines: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, pharmacyID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	return r.get(ctx, pharmacyID, invoiceID, false)
}

func (r *invoiceRepo) GetForUpdate(ctx context.Context, pharmacyID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	return r.get(ctx, pharmacyID, invoiceID, true)
}

func (r *invoiceRepo) get(ctx context.Context, pharmacyID, invoiceID uuid.UUID, forUpdate bool) (*domain.Invoice, error) {
	query := "SELECT * FROM invoices WHERE id = $1 AND pharmacy_id = $2"
	if forUpdate {
		query += " FOR UPDATE"
	}

	var invoice domain.Invoice
	err := q(ctx, r.db).GetContext(ctx, &invoice, query, invoiceID, pharmacyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.get: %w", err)
	}

	err = q(ctx, r.db).SelectContext(ctx, &invoice.Lines,
		"SELECT * FROM invoice_lines WHERE invoice_id = $1 ORDER BY position", invoiceID)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.get lines: %w", err)
	}
	return &invoice, nil
}

func (r *invoiceRepo) List(ctx context.Context, pharmacyID uuid.UUID, status *domain.InvoiceStatus, offset, limit int) ([]domain.Invoice, int, error) {
	where := "WHERE pharmacy_id = $1"
	args := []interface{}{pharmacyID}
	if status != nil {
		where += " AND status = $2"
		args = append(args, *status)
	}

	var total int
	err := q(ctx, r.db).GetContext(ctx, &total,
		"SELECT COUNT(*) FROM invoices "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	argN := len(args)
	var invoices []domain.Invoice
	err = q(ctx, r.db).SelectContext(ctx, &invoices,
		fmt.Sprintf("SELECT * FROM invoices %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
			where, argN+1, argN+2),
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) ReplaceDraft(ctx context.Context, invoice *domain.Invoice) error {
	invoice.UpdatedAt = time.Now().UTC()
	result, err := q(ctx, r.db).ExecContext(ctx,
		`UPDATE invoices
		 SET registration_id = $1, buyer_name = $2, buyer_gstin = $3,
		     place_of_supply = $4, taxable_paise = $5, tax_paise = $6,
		     grand_paise = $7, updated_at = $8
		 WHERE id = $9 AND pharmacy_id = $10 AND status = $11`,
		invoice.RegistrationID, invoice.BuyerName, invoice.BuyerGSTIN,
		invoice.PlaceOfSupply, invoice.TaxablePaise, invoice.TaxPaise,
		invoice.GrandPaise, invoice.UpdatedAt,
		invoice.ID, invoice.PharmacyID, domain.InvoiceStatusDraft)
	if err != nil {
		return fmt.Errorf("invoiceRepo.ReplaceDraft: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return r.replaceLines(ctx, invoice)
}

func (r *invoiceRepo) MarkIssued(ctx context.Context, invoice *domain.Invoice) error {
	invoice.UpdatedAt = time.Now().UTC()
	result, err := q(ctx, r.db).ExecContext(ctx,
		`UPDATE invoices
		 SET status = $1, invoice_number = $2, taxable_paise = $3,
		     tax_paise = $4, grand_paise = $5, issued_at = $6, updated_at = $7
		 WHERE id = $8 AND pharmacy_id = $9 AND status = $10`,
		domain.InvoiceStatusIssued, invoice.InvoiceNumber,
		invoice.TaxablePaise, invoice.TaxPaise, invoice.GrandPaise,
		invoice.IssuedAt, invoice.UpdatedAt,
		invoice.ID, invoice.PharmacyID, domain.InvoiceStatusDraft)
	if err != nil {
		return fmt.Errorf("invoiceRepo.MarkIssued: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		// Lost the race: someone issued or cancelled it since the caller
		// checked. The surrounding transaction rolls everything back.
		return domain.ErrInvoiceNotDraft
	}
	invoice.Status = domain.InvoiceStatusIssued
	return r.replaceLines(ctx, invoice)
}

func (r *invoiceRepo) MarkCancelled(ctx context.Context, invoice *domain.Invoice) error {
	invoice.UpdatedAt = time.Now().UTC()
	result, err := q(ctx, r.db).ExecContext(ctx,
		`UPDATE invoices SET status = $1, updated_at = $2
		 WHERE id = $3 AND pharmacy_id = $4 AND status = $5`,
		domain.InvoiceStatusCancelled, invoice.UpdatedAt,
		invoice.ID, invoice.PharmacyID, domain.InvoiceStatusIssued)
	if err != nil {
		return fmt.Errorf("invoiceRepo.MarkCancelled: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotIssued
	}
	invoice.Status = domain.InvoiceStatusCancelled
	return nil
}

func (r *invoiceRepo) IssuedLines(ctx context.Context, registrationID uuid.UUID, from, to time.Time) ([]domain.InvoiceLine, error) {
	var lines []domain.InvoiceLine
	err := q(ctx, r.db).SelectContext(ctx, &lines,
		`SELECT l.* FROM invoice_lines l
		 JOIN invoices i ON i.id = l.invoice_id
		 WHERE i.registration_id = $1
		   AND i.status = $2
		   AND i.issued_at >= $3 AND i.issued_at < $4
		 ORDER BY i.issued_at, l.invoice_id, l.position`,
		registrationID, domain.InvoiceStatusIssued, from, to)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.IssuedLines: %w", err)
	}
	return lines, nil
}

func (r *invoiceRepo) replaceLines(ctx context.Context, invoice *domain.Invoice) error {
	_, err := q(ctx, r.db).ExecContext(ctx,
		"DELETE FROM invoice_lines WHERE invoice_id = $1", invoice.ID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.replaceLines delete: %w", err)
	}
	return r.insertLines(ctx, invoice)
}

func (r *invoiceRepo) insertLines(ctx context.Context, invoice *domain.Invoice) error {
	for i := range invoice.Lines {
		line := &invoice.Lines[i]
		line.ID = uuid.New()
		line.InvoiceID = invoice.ID
		line.Position = i

		_, err := q(ctx, r.db).ExecContext(ctx,
			`INSERT INTO invoice_lines
			 (id, invoice_id, position, description, hsn_code, gst_rate,
			  quantity, unit_price_paise, discount_paise, tax_mode,
			  taxable_paise, tax_paise, cgst_paise, sgst_paise, igst_paise, total_paise)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
			line.ID, line.InvoiceID, line.Position, line.Description,
			line.HSNCode, line.GSTRate, line.Quantity, line.UnitPrice,
			line.Discount, line.TaxMode, line.TaxablePaise, line.TaxPaise,
			line.CGSTPaise, line.SGSTPaise, line.IGSTPaise, line.TotalPaise)
		if err != nil {
			return fmt.Errorf("invoiceRepo.insertLines: %w", err)
		}
	}
	return nil
}
