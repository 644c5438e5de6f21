package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/simmerhq/cookbook-backend/config"
	"github.com/simmerhq/cookbook-backend/internal/database"
	"github.com/simmerhq/cookbook-backend/internal/server"
)

func main() {
	logger := newLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// The database is optional: without one the API serves the read-only
	// preview behavior instead of refusing to start.
	var db *gorm.DB
	if cfg.DatabaseConfigured {
		db, err = database.New(cfg, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		if err := database.RunMigrations(db, "migrations", logger); err != nil {
			logger.Fatal().Err(err).Msg("failed to run migrations")
		}
	} else {
		logger.Warn().Msg("no database configured, running in read-only mode")
	}

	storage, err := config.NewStorageConfig(context.Background(), cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize upload storage")
	}
	if storage == nil {
		logger.Warn().Msg("no upload storage configured, uploads disabled")
	}

	srv := server.New(cfg, db, storage, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal().Err(err).Msg("server error")
		}
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown error")
	}
	if db != nil {
		if err := database.Close(db); err != nil {
			logger.Error().Err(err).Msg("database close error")
		}
	}
	logger.Info().Msg("server stopped")
}

func newLogger() zerolog.Logger {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if config.IsDevelopment() {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}
	return logger
}
