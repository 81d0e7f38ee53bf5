package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akrgroup/backoffice/internal/api/service"
	"github.com/akrgroup/backoffice/internal/domain/catalog"
)

// ProductHandler manages product catalog requests
type ProductHandler struct {
	logger         *slog.Logger
	catalogService service.CatalogService
}

// NewProductHandler creates a new product handler
func NewProductHandler(logger *slog.Logger, catalogService service.CatalogService) *ProductHandler {
	return &ProductHandler{
		logger:         logger,
		catalogService: catalogService,
	}
}

// Create handles POST /api/v1/products requests
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	p, err := h.catalogService.CreateProduct(c.Request.Context(), req.Name, req.Description, req.ImageURL, req.Category, req.Price)
	if err != nil {
		if errors.Is(err, catalog.ErrEmptyName) {
			RespondBadRequest(c, err.Error())
			return
		}
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapProductToResponse(p))
}

// GetByID handles GET /api/v1/products/:id requests
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	p, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		var notFound catalog.ErrProductNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Product not found")
			return
		}
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapProductToResponse(p))
}

// List handles GET /api/v1/products requests
func (h *ProductHandler) List(c *gin.Context) {
	page, perPage := parsePagination(c)
	category := c.Query("category")

	products, total, err := h.catalogService.ListProducts(c.Request.Context(), category, page, perPage)
	if err != nil {
		RespondInternalError(c)
		return
	}

	responses := make([]*ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, mapProductToResponse(p))
	}

	RespondWithPaginatedData(c, http.StatusOK, responses, page, perPage, int(total))
}

// Update handles PUT /api/v1/products/:id requests
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	p, err := h.catalogService.UpdateProduct(c.Request.Context(), id, req.Name, req.Description, req.ImageURL, req.Category, req.Price)
	if err != nil {
		var notFound catalog.ErrProductNotFound
		switch {
		case errors.As(err, &notFound):
			RespondNotFound(c, "Product not found")
		case errors.Is(err, catalog.ErrEmptyName):
			RespondBadRequest(c, err.Error())
		default:
			RespondInternalError(c)
		}
		return
	}

	RespondOK(c, mapProductToResponse(p))
}

// Delete handles DELETE /api/v1/products/:id requests
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		var notFound catalog.ErrProductNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Product not found")
			return
		}
		RespondInternalError(c)
		return
	}

	RespondNoContent(c)
}
