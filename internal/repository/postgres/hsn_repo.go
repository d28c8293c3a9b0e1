package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"rxbill/internal/port"
)

type hsnRepo struct {
	db *sqlx.DB
}

// NewHSNRepo creates a new PostgreSQL-backed HSNRepository.
func NewHSNRepo(db *sqlx.DB) port.HSNRepository {
	return &hsnRepo{db: db}
}

func (r *hsnRepo) Search(ctx context.Context, prefix string, limit int) ([]port.HSNEntry, error) {
	var entries []port.HSNEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT code, description, gst_rate
		 FROM hsn_codes
		 WHERE code LIKE $1 || '%'
		 ORDER BY code, gst_rate
		 LIMIT $2`,
		prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("hsnRepo.Search: %w", err)
	}
	return entries, nil
}
