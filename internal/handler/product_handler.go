package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rxbill/internal/service"
)

// ProductHandler handles catalogue endpoints.
type ProductHandler struct {
	productService service.ProductService
	hsnSearchLimit int
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService service.ProductService, hsnSearchLimit int) *ProductHandler {
	return &ProductHandler{productService: productService, hsnSearchLimit: hsnSearchLimit}
}

// Create handles POST /api/v1/products
func (h *ProductHandler) Create(c *gin.Context) {
	pharmacyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), pharmacyID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, product)
}

// Get handles GET /api/v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	pharmacyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid product id")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), pharmacyID, productID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, product)
}

// GetBySKU handles GET /api/v1/products/sku/:sku
func (h *ProductHandler) GetBySKU(c *gin.Context) {
	pharmacyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	sku := c.Param("sku")
	if sku == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "sku is required")
		return
	}

	product, err := h.productService.GetBySKU(c.Request.Context(), pharmacyID, sku)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, product)
}

// List handles GET /api/v1/products
func (h *ProductHandler) List(c *gin.Context) {
	pharmacyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	products, total, err := h.productService.List(c.Request.Context(), pharmacyID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, products, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Update handles PUT /api/v1/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	pharmacyID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid product id")
		return
	}

	var input service.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), pharmacyID, productID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, product)
}

// SearchHSN handles GET /api/v1/hsn?q=3004&limit=20
func (h *ProductHandler) SearchHSN(c *gin.Context) {
	prefix := c.Query("q")
	if prefix == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "q query parameter is required")
		return
	}

	limit := h.hsnSearchLimit
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	entries, err := h.productService.SearchHSN(c.Request.Context(), prefix, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, entries)
}
