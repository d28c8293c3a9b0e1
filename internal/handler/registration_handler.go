package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rxbill/internal/service"
)

// RegistrationHandler handles GST registration endpoints.
type RegistrationHandler struct {
	registrationService service.RegistrationService
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(registrationService service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// Create handles POST /api/v1/registrations
func (h *RegistrationHandler) Create(c *gin.Context) {
	pharmacyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateRegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	reg, err := h.registrationService.Create(c.Request.Context(), pharmacyID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, reg)
}

// Get handles GET /api/v1/registrations/:id
func (h *RegistrationHandler) Get(c *gin.Context) {
	pharmacyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	regID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid registration id")
		return
	}

	reg, err := h.registrationService.GetByID(c.Request.Context(), pharmacyID, regID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, reg)
}

// List handles GET /api/v1/registrations
func (h *RegistrationHandler) List(c *gin.Context) {
	pharmacyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	regs, err := h.registrationService.List(c.Request.Context(), pharmacyID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, regs)
}

// Update handles PUT /api/v1/registrations/:id
func (h *RegistrationHandler) Update(c *gin.Context) {
	pharmacyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	regID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid registration id")
		return
	}

	var input service.UpdateRegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	reg, err := h.registrationService.Update(c.Request.Context(), pharmacyID, regID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, reg)
}
