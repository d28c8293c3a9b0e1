package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPharmacyInactive   = errors.New("pharmacy is inactive")
	ErrUserInactive       = errors.New("user is inactive")
	ErrDuplicateEmail     = errors.New("email already exists for this pharmacy")
	ErrDuplicateSlug      = errors.New("pharmacy slug already exists")
	ErrDuplicateSKU       = errors.New("sku already exists for this pharmacy")
	ErrDuplicateGSTIN     = errors.New("gstin already registered")
	ErrInvalidGSTIN       = errors.New("gstin is malformed")

	// State errors: terminal for the caller, never retryable as-is.
	ErrInvoiceNotDraft      = errors.New("invoice is not in draft status")
	ErrInvoiceNotIssued     = errors.New("invoice is not issued")
	ErrRegistrationInactive = errors.New("gst registration is missing or inactive")

	// Validation errors on the issuance path, rejected before any
	// numbering or tax work.
	ErrInvalidTaxMode       = errors.New("tax mode must be EXCLUSIVE or INCLUSIVE")
	ErrMissingPlaceOfSupply = errors.New("invoice has no place of supply")
	ErrInvalidPlaceOfSupply = errors.New("place of supply is not a valid state code")
	ErrEmptyInvoice         = errors.New("invoice has no line items")
)
