package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rxbill/internal/domain"
	"rxbill/internal/service"
)

// InvoiceHandler handles draft lifecycle and billing endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
	billingService service.BillingService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService, billingService service.BillingService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, billingService: billingService}
}

// Create handles POST /api/v1/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	pharmacyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	invoice, err := h.invoiceService.CreateDraft(c.Request.Context(), pharmacyID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, invoice)
}

// Get handles GET /api/v1/invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	pharmacyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid invoice id")
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), pharmacyID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, invoice)
}

// List handles GET /api/v1/invoices?status=DRAFT&offset=0&limit=20
func (h *InvoiceHandler) List(c *gin.Context) {
	pharmacyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	var status *domain.InvoiceStatus
	if s := c.Query("status"); s != "" {
		st := domain.InvoiceStatus(s)
		if st != domain.InvoiceStatusDraft && st != domain.InvoiceStatusIssued && st != domain.InvoiceStatusCancelled {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid status filter")
			return
		}
		status = &st
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), pharmacyID, status, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Update handles PUT /api/v1/invoices/:id
func (h *InvoiceHandler) Update(c *gin.Context) {
	pharmacyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid invoice id")
		return
	}

	var input service.UpdateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	invoice, err := h.invoiceService.UpdateDraft(c.Request.Context(), pharmacyID, invoiceID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, invoice)
}

// Preview handles GET /api/v1/invoices/:id/preview
func (h *InvoiceHandler) Preview(c *gin.Context) {
	pharmacyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid invoice id")
		return
	}

	comp, err := h.billingService.Preview(c.Request.Context(), pharmacyID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, comp)
}

// Issue handles POST /api/v1/invoices/:id/issue
func (h *InvoiceHandler) Issue(c *gin.Context) {
	pharmacyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid invoice id")
		return
	}

	invoice, err := h.billingService.Issue(c.Request.Context(), pharmacyID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, invoice)
}

// Cancel handles POST /api/v1/invoices/:id/cancel
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	pharmacyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid invoice id")
		return
	}

	invoice, err := h.billingService.Cancel(c.Request.Context(), pharmacyID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, invoice)
}
