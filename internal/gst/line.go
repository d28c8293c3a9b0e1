package gst

import (
	"strconv"
)

// TaxMode states whether a line's unit price already contains GST.
type TaxMode string

const (
	// TaxExclusive adds tax on top of the discounted price.
	TaxExclusive TaxMode = "EXCLUSIVE"
	// TaxInclusive means the unit price already contains tax.
	TaxInclusive TaxMode = "INCLUSIVE"
)

// Jurisdiction is the (seller, buyer) state code pair for a supply.
type Jurisdiction struct {
	SellerStateCode string
	BuyerStateCode  string
}

// InterState reports whether the supply crosses state lines. This single
// boolean decides CGST+SGST vs IGST for every line on the invoice.
func (j Jurisdiction) InterState() bool {
	return j.SellerStateCode != j.BuyerStateCode
}

// ValidStateCode reports whether s is a 2-digit GST state code (01-38).
func ValidStateCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	code, err := strconv.Atoi(s)
	return err == nil && code >= 1 && code <= 38
}

// LineInput is one sale line as supplied by the caller.
type LineInput struct {
	Description string
	HSNCode     string // empty when unclassified; carried through for bucketing only
	Quantity    int64
	UnitPrice   Paise
	Discount    Paise // absolute, per line
	GSTRate     float64
	Mode        TaxMode
}

// LineComputed is the derived tax breakdown for one line, immutable once
// produced. Exactly one of {CGST+SGST} or IGST is non-zero for a line with
// a positive rate; all three are zero when the rate is zero.
type LineComputed struct {
	Description string
	HSNCode     string
	Quantity    int64
	UnitPrice   Paise
	Discount    Paise
	GSTRate     float64
	Mode        TaxMode

	Taxable Paise
	Tax     Paise
	CGST    Paise
	SGST    Paise
	IGST    Paise
	Total   Paise
}

// ComputeLine derives the taxable value, tax value, CGST/SGST/IGST split
// and line total for one sale line.
func ComputeLine(line LineInput, j Jurisdiction) (LineComputed, error) {
	if line.Quantity <= 0 {
		return LineComputed{}, ErrInvalidQuantity
	}

	gross := Paise(line.Quantity)*line.UnitPrice - line.Discount
	if gross < 0 {
		return LineComputed{}, ErrDiscountExceedsLine
	}

	out := LineComputed{
		Description: line.Description,
		HSNCode:     line.HSNCode,
		Quantity:    line.Quantity,
		UnitPrice:   line.UnitPrice,
		Discount:    line.Discount,
		GSTRate:     line.GSTRate,
		Mode:        line.Mode,
	}

	// A zero or absent rate short-circuits the inclusive/exclusive split:
	// the whole gross is taxable and nothing is charged on top.
	if line.GSTRate <= 0 {
		out.Taxable = gross
		out.Total = gross
		return out, nil
	}

	r := line.GSTRate / 100
	g := gross.Rupees()

	var taxableF, taxF float64
	switch line.Mode {
	case TaxInclusive:
		// Tax is carved out of the gross; derive it from the unrounded
		// taxable so taxable+tax reconstructs gross before rounding.
		taxableF = g / (1 + r)
		taxF = g - taxableF
	default:
		taxableF = g
		taxF = g * r
	}

	out.Taxable = Round2(taxableF)
	out.Tax = Round2(taxF)

	if j.InterState() {
		out.IGST = out.Tax
	} else {
		// SGST takes the remainder so CGST+SGST == Tax to the paisa.
		out.CGST = Round2(out.Tax.Rupees() / 2)
		out.SGST = out.Tax - out.CGST
	}

	if line.Mode == TaxInclusive {
		// The customer pays the tendered gross, not taxable+tax, which can
		// drift by a paisa after independent rounding.
		out.Total = gross
	} else {
		out.Total = out.Taxable + out.Tax
	}
	return out, nil
}
