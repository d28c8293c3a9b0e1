package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"rxbill/internal/domain"
	"rxbill/internal/gst"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{domain.ErrDuplicateGSTIN, http.StatusConflict, "DUPLICATE_GSTIN"},
		{domain.ErrInvalidGSTIN, http.StatusBadRequest, "INVALID_GSTIN"},
		{domain.ErrInvoiceNotDraft, http.StatusConflict, "INVOICE_NOT_DRAFT"},
		{domain.ErrRegistrationInactive, http.StatusConflict, "REGISTRATION_INACTIVE"},
		{domain.ErrMissingPlaceOfSupply, http.StatusUnprocessableEntity, "MISSING_PLACE_OF_SUPPLY"},
		{domain.ErrInvalidPlaceOfSupply, http.StatusUnprocessableEntity, "INVALID_PLACE_OF_SUPPLY"},
		{domain.ErrEmptyInvoice, http.StatusUnprocessableEntity, "EMPTY_INVOICE"},
		{gst.ErrInvalidQuantity, http.StatusUnprocessableEntity, "INVALID_QUANTITY"},
		{gst.ErrDiscountExceedsLine, http.StatusUnprocessableEntity, "DISCOUNT_EXCEEDS_LINE"},
		{gst.ErrInvalidStateCode, http.StatusUnprocessableEntity, "INVALID_STATE_CODE"},
		{fmt.Errorf("driver broke"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, code, _ := MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestMapDomainErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("invoiceRepo.GetByID: %w", domain.ErrNotFound)
	status, code, _ := MapDomainError(wrapped)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", code)
}

func testContext(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantOffset int
		wantLimit  int
	}{
		{"defaults", "", 0, 20},
		{"explicit", "offset=40&limit=50", 40, 50},
		{"limit capped", "limit=500", 0, 20},
		{"negative offset ignored", "offset=-5", 0, 20},
		{"garbage ignored", "offset=abc&limit=xyz", 0, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := parsePagination(testContext(tt.query))
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}
