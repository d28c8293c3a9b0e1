package service

import (
	"rxbill/internal/domain"
	"rxbill/internal/gst"
)

// toGSTInputs maps stored invoice lines to the tax engine's input shape.
// Stored computed columns are ignored: the engine's output is always
// authoritative over whatever the row carried.
func toGSTInputs(lines []domain.InvoiceLine) []gst.LineInput {
	inputs := make([]gst.LineInput, len(lines))
	for i, l := range lines {
		hsn := ""
		if l.HSNCode != nil {
			hsn = *l.HSNCode
		}
		inputs[i] = gst.LineInput{
			Description: l.Description,
			HSNCode:     hsn,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Discount:    l.Discount,
			GSTRate:     l.GSTRate,
			Mode:        gst.TaxMode(l.TaxMode),
		}
	}
	return inputs
}

// applyComputation overwrites an invoice's line breakdowns and header
// totals with a fresh engine result. Line count and order are preserved;
// only the derived columns change.
func applyComputation(inv *domain.Invoice, comp gst.Computation) {
	for i := range inv.Lines {
		c := comp.Lines[i]
		inv.Lines[i].TaxablePaise = c.Taxable
		inv.Lines[i].TaxPaise = c.Tax
		inv.Lines[i].CGSTPaise = c.CGST
		inv.Lines[i].SGSTPaise = c.SGST
		inv.Lines[i].IGSTPaise = c.IGST
		inv.Lines[i].TotalPaise = c.Total
	}
	inv.TaxablePaise = comp.Totals.Taxable
	inv.TaxPaise = comp.Totals.Tax
	inv.GrandPaise = comp.Totals.Grand
}

// toComputedLines rebuilds engine-shaped lines from stored columns, for
// report bucketing over already-issued invoices.
func toComputedLines(lines []domain.InvoiceLine) []gst.LineComputed {
	out := make([]gst.LineComputed, len(lines))
	for i, l := range lines {
		hsn := ""
		if l.HSNCode != nil {
			hsn = *l.HSNCode
		}
		out[i] = gst.LineComputed{
			Description: l.Description,
			HSNCode:     hsn,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Discount:    l.Discount,
			GSTRate:     l.GSTRate,
			Mode:        gst.TaxMode(l.TaxMode),
			Taxable:     l.TaxablePaise,
			Tax:         l.TaxPaise,
			CGST:        l.CGSTPaise,
			SGST:        l.SGSTPaise,
			IGST:        l.IGSTPaise,
			Total:       l.TotalPaise,
		}
	}
	return out
}
