package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/simmerhq/cookbook-backend/internal/errs"
	"github.com/simmerhq/cookbook-backend/internal/service"
	"github.com/simmerhq/cookbook-backend/internal/types"
)

// UploadHandler serves multipart image uploads.
type UploadHandler struct {
	uploadService *service.UploadService
	logger        zerolog.Logger
}

func NewUploadHandler(uploadService *service.UploadService, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		logger:        logger,
	}
}

func (h *UploadHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/upload", h.Upload)
}

func (h *UploadHandler) Upload(c *gin.Context) {
	if !h.uploadService.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Blob storage not configured"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	src, err := file.Open()
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to open uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}
	defer func() { _ = src.Close() }()

	url, err := h.uploadService.Upload(c.Request.Context(), file.Size, src)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrStorageUnconfigured):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Blob storage not configured"})
		case errors.Is(err, errs.ErrFileTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
		case errors.Is(err, errs.ErrUnsupportedFileType):
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "Unsupported file type"})
		default:
			h.logger.Error().Err(err).Msg("upload failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		}
		return
	}

	c.JSON(http.StatusOK, types.UploadResponse{URL: url})
}
