package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rxbill/internal/domain"
	"rxbill/internal/gst"
	"rxbill/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrPharmacyInactive):
		return http.StatusForbidden, "PHARMACY_INACTIVE", "pharmacy is inactive"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "USER_INACTIVE", "user is inactive"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "DUPLICATE_EMAIL", "email already exists for this pharmacy"
	case errors.Is(err, domain.ErrDuplicateSlug):
		return http.StatusConflict, "DUPLICATE_SLUG", "pharmacy slug already exists"
	case errors.Is(err, domain.ErrDuplicateSKU):
		return http.StatusConflict, "DUPLICATE_SKU", "sku already exists for this pharmacy"
	case errors.Is(err, domain.ErrDuplicateGSTIN):
		return http.StatusConflict, "DUPLICATE_GSTIN", "gstin already registered"
	case errors.Is(err, domain.ErrInvalidGSTIN):
		return http.StatusBadRequest, "INVALID_GSTIN", "gstin is malformed"
	case errors.Is(err, domain.ErrInvalidTaxMode):
		return http.StatusBadRequest, "INVALID_TAX_MODE", "tax mode must be EXCLUSIVE or INCLUSIVE"
	case errors.Is(err, domain.ErrInvoiceNotDraft):
		return http.StatusConflict, "INVOICE_NOT_DRAFT", "invoice is not in draft status"
	case errors.Is(err, domain.ErrInvoiceNotIssued):
		return http.StatusConflict, "INVOICE_NOT_ISSUED", "invoice is not issued"
	case errors.Is(err, domain.ErrRegistrationInactive):
		return http.StatusConflict, "REGISTRATION_INACTIVE", "gst registration is missing or inactive"
	case errors.Is(err, domain.ErrMissingPlaceOfSupply):
		return http.StatusUnprocessableEntity, "MISSING_PLACE_OF_SUPPLY", "invoice has no place of supply"
	case errors.Is(err, domain.ErrInvalidPlaceOfSupply):
		return http.StatusUnprocessableEntity, "INVALID_PLACE_OF_SUPPLY", "place of supply is not a valid state code"
	case errors.Is(err, domain.ErrEmptyInvoice):
		return http.StatusUnprocessableEntity, "EMPTY_INVOICE", "invoice has no line items"
	case errors.Is(err, gst.ErrInvalidQuantity):
		return http.StatusUnprocessableEntity, "INVALID_QUANTITY", "line quantity must be positive"
	case errors.Is(err, gst.ErrDiscountExceedsLine):
		return http.StatusUnprocessableEntity, "DISCOUNT_EXCEEDS_LINE", "discount exceeds line value"
	case errors.Is(err, gst.ErrInvalidStateCode):
		return http.StatusUnprocessableEntity, "INVALID_STATE_CODE", "state code must be a 2-digit GST code"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// extractAuthContext extracts pharmacy ID, user ID, and role from the request context.
// Returns false if auth context is missing (error response already written).
func extractAuthContext(c *gin.Context) (pharmacyID, userID uuid.UUID, role domain.UserRole, ok bool) {
	var err error
	pharmacyID, err = middleware.GetPharmacyID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing pharmacy context")
		return uuid.Nil, uuid.Nil, "", false
	}
	userID, err = middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return uuid.Nil, uuid.Nil, "", false
	}
	role = domain.UserRole(middleware.GetRole(c))
	return pharmacyID, userID, role, true
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}

// parsePagination reads offset/limit query params with sane bounds.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset = 0
	limit = 20
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	return offset, limit
}
