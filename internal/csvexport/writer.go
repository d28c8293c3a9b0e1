package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"rxbill/internal/gst"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row for the rate-wise GST summary.
var columns = []string{
	"HSN Code",
	"GST Rate (%)",
	"Taxable Value",
	"CGST",
	"SGST",
	"IGST",
	"Total Tax",
}

// Writer wraps csv.Writer for exporting GST report buckets as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteBuckets writes one row per (HSN code, GST rate) bucket, in the
// order given. Callers pass buckets already sorted by rate then HSN so
// repeated exports of the same period are byte-identical.
func (w *Writer) WriteBuckets(buckets []gst.TaxBucket) error {
	for i := range buckets {
		if err := w.csv.Write(bucketToRow(&buckets[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func bucketToRow(b *gst.TaxBucket) []string {
	hsn := b.HSNCode
	if hsn == "" {
		hsn = "UNCLASSIFIED"
	}
	return []string{
		hsn,
		strconv.FormatFloat(b.GSTRate, 'f', -1, 64),
		b.Taxable.String(),
		b.CGST.String(),
		b.SGST.String(),
		b.IGST.String(),
		(b.CGST + b.SGST + b.IGST).String(),
	}
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a registration's legal name for use in
// Content-Disposition. Replaces non-alphanumeric chars (except - _) with _,
// collapses consecutive underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: gst_summary_{sanitized_name}_{YYYY-MM-DD}.csv
func BuildFilename(legalName string) string {
	sanitized := SanitizeFilename(legalName)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("gst_summary_%s_%s.csv", sanitized, date)
}
