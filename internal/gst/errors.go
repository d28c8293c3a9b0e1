package gst

import "errors"

var (
	// ErrInvalidQuantity is returned for a zero or negative line quantity.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	// ErrDiscountExceedsLine is returned when a line discount exceeds the
	// line value. Callers must fix the input; the engine never clamps.
	ErrDiscountExceedsLine = errors.New("discount exceeds line value")
	// ErrInvalidStateCode is returned for a malformed jurisdiction state code.
	ErrInvalidStateCode = errors.New("state code must be a 2-digit GST code (01-38)")
)
