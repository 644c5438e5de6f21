package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/simmerhq/cookbook-backend/config"
	"github.com/simmerhq/cookbook-backend/internal/errs"
	"github.com/simmerhq/cookbook-backend/internal/service"
)

// SetupAPI wires services and handlers onto the router. db may be nil when
// no database is configured; recipe routes then serve the read-only preview
// behavior (empty lists, 503 on writes).
func SetupAPI(router *gin.Engine, db *gorm.DB, storage *config.StorageConfig, cfg *config.Config, logger zerolog.Logger) {
	v1 := router.Group("/api/v1")

	var recipeService *service.RecipeService
	if db != nil {
		recipeService = service.NewRecipeService(db, logger)
	}
	uploadService := service.NewUploadService(storage, cfg.MaxUploadBytes, logger)

	recipeHandler := NewRecipeHandler(recipeService, logger)
	uploadHandler := NewUploadHandler(uploadService, logger)
	healthHandler := NewHealthHandler(db, storage != nil)

	recipeHandler.RegisterRoutes(v1)
	uploadHandler.RegisterRoutes(v1)
	healthHandler.RegisterRoutes(v1)

	// Locally stored uploads are served straight off disk.
	if storage != nil && storage.Backend == "local" {
		router.Static("/uploads", storage.LocalDir)
	}
}

// respondServiceError maps service errors to responses. Not-found is
// expected and answered directly; anything else is logged server-side and
// answered with a generic 500.
func respondServiceError(c *gin.Context, logger zerolog.Logger, err error) {
	if errs.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
