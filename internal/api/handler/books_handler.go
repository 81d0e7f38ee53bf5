package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akrgroup/backoffice/internal/api/middleware"
	"github.com/akrgroup/backoffice/internal/api/service"
	"github.com/akrgroup/backoffice/internal/domain/books"
)

// BooksHandler manages manual bookkeeping requests. The revenue and cost
// ledgers share one handler, selected by the route's kind.
type BooksHandler struct {
	logger       *slog.Logger
	booksService service.BooksService
	kind         books.Kind
}

// NewBooksHandler creates a bookkeeping handler bound to one ledger kind
func NewBooksHandler(logger *slog.Logger, booksService service.BooksService, kind books.Kind) *BooksHandler {
	return &BooksHandler{
		logger:       logger,
		booksService: booksService,
		kind:         kind,
	}
}

// Create handles POST requests for the bound ledger
func (h *BooksHandler) Create(c *gin.Context) {
	var req BookEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	e, err := h.booksService.CreateEntry(c.Request.Context(), h.kind, req.Category, req.Amount, req.Description, req.Date, middleware.GetAdminEmail(c))
	if err != nil {
		if errors.Is(err, books.ErrNegativeAmount) || errors.Is(err, books.ErrEmptyCategory) {
			RespondBadRequest(c, err.Error())
			return
		}
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapBookEntryToResponse(e))
}

// GetByID handles GET .../:id requests for the bound ledger
func (h *BooksHandler) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	e, err := h.booksService.GetEntry(c.Request.Context(), h.kind, id)
	if err != nil {
		var notFound books.ErrEntryNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Entry not found")
			return
		}
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapBookEntryToResponse(e))
}

// List handles GET requests for the bound ledger
func (h *BooksHandler) List(c *gin.Context) {
	page, perPage := parsePagination(c)
	filter := books.ListFilter{Category: c.Query("category")}

	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			RespondBadRequest(c, "Invalid from date")
			return
		}
		filter.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			RespondBadRequest(c, "Invalid to date")
			return
		}
		filter.To = t
	}

	entries, total, err := h.booksService.ListEntries(c.Request.Context(), h.kind, filter, page, perPage)
	if err != nil {
		RespondInternalError(c)
		return
	}

	responses := make([]*BookEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, mapBookEntryToResponse(e))
	}

	RespondWithPaginatedData(c, http.StatusOK, responses, page, perPage, int(total))
}

// Update handles PUT .../:id requests for the bound ledger
func (h *BooksHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req BookEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	e, err := h.booksService.UpdateEntry(c.Request.Context(), h.kind, id, req.Category, req.Amount, req.Description, req.Date)
	if err != nil {
		var notFound books.ErrEntryNotFound
		switch {
		case errors.As(err, &notFound):
			RespondNotFound(c, "Entry not found")
		case errors.Is(err, books.ErrNegativeAmount), errors.Is(err, books.ErrEmptyCategory):
			RespondBadRequest(c, err.Error())
		default:
			RespondInternalError(c)
		}
		return
	}

	RespondOK(c, mapBookEntryToResponse(e))
}

// Delete handles DELETE .../:id requests for the bound ledger
func (h *BooksHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.booksService.DeleteEntry(c.Request.Context(), h.kind, id); err != nil {
		var notFound books.ErrEntryNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Entry not found")
			return
		}
		RespondInternalError(c)
		return
	}

	RespondNoContent(c)
}
