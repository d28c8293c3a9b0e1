package csvexport_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rxbill/internal/csvexport"
	"rxbill/internal/gst"
)

func TestWriteBuckets(t *testing.T) {
	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)
	require.NoError(t, w.WriteHeader())

	buckets := []gst.TaxBucket{
		{HSNCode: "3004", GSTRate: 5, Taxable: 150000, CGST: 3750, SGST: 3750},
		{HSNCode: "3004", GSTRate: 12, Taxable: 20000, CGST: 1200, SGST: 1200},
		{HSNCode: "", GSTRate: 18, Taxable: 5000, IGST: 900},
	}
	require.NoError(t, w.WriteBuckets(buckets))
	w.Flush()
	require.NoError(t, w.Error())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "HSN Code,GST Rate (%),Taxable Value,CGST,SGST,IGST,Total Tax", lines[0])
	assert.Equal(t, "3004,5,1500.00,37.50,37.50,0.00,75.00", lines[1])
	assert.Equal(t, "3004,12,200.00,12.00,12.00,0.00,24.00", lines[2])
	assert.Equal(t, "UNCLASSIFIED,18,50.00,0.00,0.00,9.00,9.00", lines[3])
}

func TestWriteBucketsEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteBuckets(nil))
	w.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "PillPoint Pharmacy", "PillPoint_Pharmacy"},
		{"special chars", "Raj & Sons (Medical)!", "Raj_Sons_Medical"},
		{"already clean", "store-01", "store-01"},
		{"collapses underscores", "a  __  b", "a_b"},
		{"truncates", strings.Repeat("x", 150), strings.Repeat("x", 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, csvexport.SanitizeFilename(tt.in))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	got := csvexport.BuildFilename("Raj & Sons")
	assert.True(t, strings.HasPrefix(got, "gst_summary_Raj_Sons_"))
	assert.True(t, strings.HasSuffix(got, ".csv"))
}
