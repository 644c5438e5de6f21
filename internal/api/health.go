package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/simmerhq/cookbook-backend/internal/database"
	"github.com/simmerhq/cookbook-backend/internal/types"
)

// HealthHandler reports readiness of the database and upload storage.
type HealthHandler struct {
	db             *gorm.DB // nil when unconfigured
	blobConfigured bool
}

func NewHealthHandler(db *gorm.DB, blobConfigured bool) *HealthHandler {
	return &HealthHandler{db: db, blobConfigured: blobConfigured}
}

func (h *HealthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", h.Health)
}

func (h *HealthHandler) Health(c *gin.Context) {
	resp := types.HealthResponse{
		Database: types.DatabaseHealth{Configured: h.db != nil},
		Blob:     types.BlobHealth{Configured: h.blobConfigured},
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := database.HealthCheck(ctx, h.db); err != nil {
			resp.Database.Error = err.Error()
		} else {
			resp.Database.OK = true
		}
	}

	c.JSON(http.StatusOK, resp)
}
