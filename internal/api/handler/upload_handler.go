package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/akrgroup/backoffice/internal/platform/storage"
)

// UploadHandler manages image uploads for the product catalog
type UploadHandler struct {
	logger        *slog.Logger
	store         storage.ImageStore
	maxUploadSize int64
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(logger *slog.Logger, store storage.ImageStore, maxUploadSize int64) *UploadHandler {
	return &UploadHandler{
		logger:        logger,
		store:         store,
		maxUploadSize: maxUploadSize,
	}
}

// Upload handles POST /api/v1/uploads requests with an "image" form file
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		RespondBadRequest(c, "Missing image file")
		return
	}

	if fileHeader.Size > h.maxUploadSize {
		RespondBadRequest(c, "Image exceeds maximum upload size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file", "filename", fileHeader.Filename, "error", err)
		RespondInternalError(c)
		return
	}
	defer file.Close()

	url, err := h.store.Save(c.Request.Context(), fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		var unsupported storage.ErrUnsupportedContentType
		if errors.As(err, &unsupported) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to store image", "filename", fileHeader.Filename, "error", err)
		RespondInternalError(c)
		return
	}

	h.logger.Info("Image uploaded", "filename", fileHeader.Filename, "url", url, "size", fileHeader.Size)
	RespondCreated(c, &UploadResponse{URL: url})
}
