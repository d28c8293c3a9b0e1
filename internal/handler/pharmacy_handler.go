package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rxbill/internal/service"
)

// PharmacyHandler exposes the caller's own pharmacy record.
type PharmacyHandler struct {
	pharmacyService service.PharmacyService
}

// NewPharmacyHandler creates a new PharmacyHandler.
func NewPharmacyHandler(pharmacyService service.PharmacyService) *PharmacyHandler {
	return &PharmacyHandler{pharmacyService: pharmacyService}
}

// Get handles GET /api/v1/pharmacy
func (h *PharmacyHandler) Get(c *gin.Context) {
	pharmacyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	pharmacy, err := h.pharmacyService.GetByID(c.Request.Context(), pharmacyID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, pharmacy)
}

// Update handles PUT /api/v1/pharmacy
func (h *PharmacyHandler) Update(c *gin.Context) {
	pharmacyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.UpdatePharmacyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	pharmacy, err := h.pharmacyService.Update(c.Request.Context(), pharmacyID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, pharmacy)
}
