package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/simmerhq/cookbook-backend/config"
	"github.com/simmerhq/cookbook-backend/internal/api"
	"github.com/simmerhq/cookbook-backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(db *gorm.DB, storage *config.StorageConfig, cfg *config.Config, logger zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupAPI(router, db, storage, cfg, logger)

	return router
}
