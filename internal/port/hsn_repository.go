package port

import "context"

// HSNEntry represents a single HSN code entry with its GST rate.
type HSNEntry struct {
	Code        string  `db:"code"`
	Description string  `db:"description"`
	GSTRate     float64 `db:"gst_rate"`
}

// HSNRepository defines the contract for HSN master data access. The
// master is a lookup aid for the back office; it never drives the tax
// arithmetic on a line.
type HSNRepository interface {
	Search(ctx context.Context, prefix string, limit int) ([]HSNEntry, error)
}
