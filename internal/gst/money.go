package gst

import (
	"fmt"
	"math"
)

// Paise is an integer count of minor currency units (1 rupee = 100 paise).
// All stored monetary values in the system are Paise; float64 appears only
// transiently inside Round2 and the tax math that feeds it.
type Paise int64

// epsilon biases rounding so that values sitting exactly on a half-paisa
// boundary after binary-float truncation (e.g. 1.005 stored as 1.00499...)
// still round up.
const epsilon = 1e-9

// Round2 rounds a rupee amount to two decimal places, half away from zero,
// and returns it as integer paise. This is the only rounding point in the
// tax engine: every monetary intermediate passes through it before being
// stored or summed.
func Round2(rupees float64) Paise {
	if rupees < 0 {
		return -Round2(-rupees)
	}
	return Paise(math.Round((rupees + epsilon) * 100))
}

// FromRupees converts a rupee amount to paise using the canonical rounding.
func FromRupees(rupees float64) Paise {
	return Round2(rupees)
}

// Rupees returns the amount as a float64 rupee value. Use only at display
// or computation boundaries, never for storage or comparison.
func (p Paise) Rupees() float64 {
	return float64(p) / 100
}

// String formats the amount as a plain decimal rupee string, e.g. "224.00".
func (p Paise) String() string {
	sign := ""
	v := int64(p)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
