package gst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rxbill/internal/gst"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name   string
		rupees float64
		want   gst.Paise
	}{
		{"exact", 224.00, 22400},
		{"half_rounds_up", 0.005, 1},
		{"binary_half_boundary", 1.005, 101}, // stored as 1.00499...; epsilon bias rescues it
		{"another_half_boundary", 2.675, 268},
		{"rounds_down", 12.004, 1200},
		{"rounds_up", 12.006, 1201},
		{"zero", 0, 0},
		{"negative_half_away_from_zero", -1.005, -101},
		{"negative_rounds_down", -0.004, 0},
		{"large", 99999.99, 9999999},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gst.Round2(tt.rupees))
		})
	}
}

func TestPaise_Rupees(t *testing.T) {
	assert.InDelta(t, 224.0, gst.Paise(22400).Rupees(), 1e-9)
	assert.InDelta(t, -0.01, gst.Paise(-1).Rupees(), 1e-9)
}

func TestPaise_String(t *testing.T) {
	assert.Equal(t, "224.00", gst.Paise(22400).String())
	assert.Equal(t, "0.05", gst.Paise(5).String())
	assert.Equal(t, "-12.34", gst.Paise(-1234).String())
}

func TestFromRupees(t *testing.T) {
	assert.Equal(t, gst.Paise(11200), gst.FromRupees(112.00))
	assert.Equal(t, gst.Paise(101), gst.FromRupees(1.005))
}
