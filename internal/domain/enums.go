package domain

import "rxbill/internal/gst"

// InvoiceStatus is the lifecycle state of an invoice. DRAFT -> ISSUED ->
// CANCELLED, each transition one-way. A cancelled invoice keeps its
// number; the sequence counter never rewinds.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusIssued    InvoiceStatus = "ISSUED"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// TaxMode mirrors gst.TaxMode at the persistence boundary.
type TaxMode string

const (
	TaxModeExclusive TaxMode = TaxMode(gst.TaxExclusive)
	TaxModeInclusive TaxMode = TaxMode(gst.TaxInclusive)
)

// ValidTaxMode reports whether m is a known tax inclusion mode.
func ValidTaxMode(m TaxMode) bool {
	return m == TaxModeExclusive || m == TaxModeInclusive
}

// UserRole defines the role hierarchy within a pharmacy.
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RolePharmacist UserRole = "pharmacist"
)

// DefaultInvoicePrefix is used when a registration does not configure one.
const DefaultInvoicePrefix = "PP"
