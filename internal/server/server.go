package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/simmerhq/cookbook-backend/config"
	"github.com/simmerhq/cookbook-backend/internal/router"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	logger zerolog.Logger
}

// New creates a new server instance. db and storage may be nil; the API then
// serves its degraded read-only behavior.
func New(cfg *config.Config, db *gorm.DB, storage *config.StorageConfig, logger zerolog.Logger) *Server {
	engine := router.SetupRouter(db, storage, cfg, logger)

	return &Server{
		router: engine,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
		logger: logger,
	}
}

// Start runs the server until it fails or is shut down.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.http.Addr).Msg("starting server")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
