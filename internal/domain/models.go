package domain

import (
	"time"

	"github.com/google/uuid"

	"rxbill/internal/gst"
)

// Pharmacy is an isolated tenant: one shop (or chain HQ) with its own
// users, products, and GST registrations.
type Pharmacy struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	StateCode string    `db:"state_code" json:"state_code"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// GSTRegistration is a seller tax registration (GSTIN). It owns the
// invoice-number prefix and the next_invoice_number counter, and is the
// unit of allocation concurrency: sequences of different registrations
// never interact.
type GSTRegistration struct {
	ID                uuid.UUID `db:"id" json:"id"`
	PharmacyID        uuid.UUID `db:"pharmacy_id" json:"pharmacy_id"`
	GSTIN             string    `db:"gstin" json:"gstin"`
	StateCode         string    `db:"state_code" json:"state_code"`
	LegalName         string    `db:"legal_name" json:"legal_name"`
	InvoicePrefix     string    `db:"invoice_prefix" json:"invoice_prefix"`
	NextInvoiceNumber int64     `db:"next_invoice_number" json:"next_invoice_number"`
	IsActive          bool      `db:"is_active" json:"is_active"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// Product is a catalogue entry. HSN code and GST rate are nullable:
// unclassified items sell untaxed until the back office fills them in.
type Product struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PharmacyID     uuid.UUID `db:"pharmacy_id" json:"pharmacy_id"`
	SKU            string    `db:"sku" json:"sku"`
	Name           string    `db:"name" json:"name"`
	HSNCode        *string   `db:"hsn_code" json:"hsn_code"`
	GSTRate        *float64  `db:"gst_rate" json:"gst_rate"`
	UnitPricePaise gst.Paise `db:"unit_price_paise" json:"unit_price_paise"`
	TaxMode        TaxMode   `db:"tax_mode" json:"tax_mode"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Invoice is a sale document. Tax fields on a DRAFT invoice are advisory
// cart-time numbers; issuance recomputes them authoritatively and they are
// immutable from then on.
type Invoice struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	PharmacyID     uuid.UUID     `db:"pharmacy_id" json:"pharmacy_id"`
	RegistrationID uuid.UUID     `db:"registration_id" json:"registration_id"`
	Status         InvoiceStatus `db:"status" json:"status"`
	InvoiceNumber  *string       `db:"invoice_number" json:"invoice_number"`
	BuyerName      string        `db:"buyer_name" json:"buyer_name"`
	BuyerGSTIN     *string       `db:"buyer_gstin" json:"buyer_gstin"`
	PlaceOfSupply  string        `db:"place_of_supply" json:"place_of_supply"`
	TaxablePaise   gst.Paise     `db:"taxable_paise" json:"taxable_paise"`
	TaxPaise       gst.Paise     `db:"tax_paise" json:"tax_paise"`
	GrandPaise     gst.Paise     `db:"grand_paise" json:"grand_paise"`
	IssuedAt       *time.Time    `db:"issued_at" json:"issued_at"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at" json:"updated_at"`

	Lines []InvoiceLine `db:"-" json:"lines,omitempty"`
}

// InvoiceLine is one sale line with its computed tax breakdown.
type InvoiceLine struct {
	ID          uuid.UUID `db:"id" json:"id"`
	InvoiceID   uuid.UUID `db:"invoice_id" json:"invoice_id"`
	Position    int       `db:"position" json:"position"`
	Description string    `db:"description" json:"description"`
	HSNCode     *string   `db:"hsn_code" json:"hsn_code"`
	GSTRate     float64   `db:"gst_rate" json:"gst_rate"`
	Quantity    int64     `db:"quantity" json:"quantity"`
	UnitPrice   gst.Paise `db:"unit_price_paise" json:"unit_price_paise"`
	Discount    gst.Paise `db:"discount_paise" json:"discount_paise"`
	TaxMode     TaxMode   `db:"tax_mode" json:"tax_mode"`

	TaxablePaise gst.Paise `db:"taxable_paise" json:"taxable_paise"`
	TaxPaise     gst.Paise `db:"tax_paise" json:"tax_paise"`
	CGSTPaise    gst.Paise `db:"cgst_paise" json:"cgst_paise"`
	SGSTPaise    gst.Paise `db:"sgst_paise" json:"sgst_paise"`
	IGSTPaise    gst.Paise `db:"igst_paise" json:"igst_paise"`
	TotalPaise   gst.Paise `db:"total_paise" json:"total_paise"`
}

// User is a back-office user belonging to a pharmacy.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	PharmacyID   uuid.UUID `db:"pharmacy_id" json:"pharmacy_id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
