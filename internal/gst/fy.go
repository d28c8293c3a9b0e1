package gst

import (
	"fmt"
	"time"
)

// FinancialYear renders India's April-March financial year containing t
// as a "YY-YY" token, e.g. 2024-07-15 -> "24-25", 2025-02-01 -> "24-25".
func FinancialYear(t time.Time) string {
	start := t.Year()
	if t.Month() < time.April {
		start--
	}
	return fmt.Sprintf("%02d-%02d", start%100, (start+1)%100)
}

// FormatInvoiceNumber renders the statutory invoice number
// PREFIX/YY-YY/NNNN, e.g. "PP/24-25/0007". The sequence is zero-padded to
// a minimum of four digits and widens naturally beyond 9999. The exact
// separator and padding are a stable contract relied on by printed
// receipts and GSTR filings.
func FormatInvoiceNumber(prefix, fy string, seq int64) string {
	return fmt.Sprintf("%s/%s/%04d", prefix, fy, seq)
}
