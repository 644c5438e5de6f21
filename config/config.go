package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultMaxUploadBytes caps uploaded images at 10 MiB unless overridden.
const DefaultMaxUploadBytes = 10 << 20

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration. DatabaseURL wins over the discrete fields.
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	// DatabaseConfigured is true only when the operator supplied DATABASE_URL
	// or DB_HOST explicitly. With neither set the API runs in read-only
	// preview mode instead of refusing to start.
	DatabaseConfigured bool

	// Upload storage configuration
	StorageBackend string // "s3", "local", or "" (uploads disabled)
	S3Bucket       string
	AWSRegion      string
	UploadDir      string
	MaxUploadBytes int64

	// CORS
	AllowedOrigins []string
}

// LoadConfig creates a new Config instance from environment variables,
// falling back to development defaults.
func LoadConfig() (*Config, error) {
	// A missing .env file is fine; real deployments use the environment.
	_ = godotenv.Load()

	cfg := &Config{
		ServerHost:         getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", "postgres"),
		DBName:             getEnv("DB_NAME", "cookbook"),
		DBSSLMode:          getEnv("DB_SSL_MODE", "disable"),
		DatabaseConfigured: os.Getenv("DATABASE_URL") != "" || os.Getenv("DB_HOST") != "",
		StorageBackend:     os.Getenv("STORAGE_BACKEND"),
		S3Bucket:           getEnv("S3_BUCKET_NAME", "cookbook-recipe-images"),
		AWSRegion:          os.Getenv("AWS_REGION"),
		UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadBytes:     DefaultMaxUploadBytes,
		AllowedOrigins:     splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
	}

	if raw := os.Getenv("MAX_UPLOAD_BYTES"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES %q", raw)
		}
		cfg.MaxUploadBytes = n
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// DSN returns the Postgres connection string.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// ValidateConfig checks invariants that would otherwise surface as confusing
// runtime failures.
func ValidateConfig(cfg *Config) error {
	var errs []string

	if cfg.ServerPort == "" {
		errs = append(errs, "server port must not be empty")
	}
	switch cfg.StorageBackend {
	case "", "local":
	case "s3":
		if cfg.S3Bucket == "" {
			errs = append(errs, "S3_BUCKET_NAME is required when STORAGE_BACKEND=s3")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown STORAGE_BACKEND %q (want s3 or local)", cfg.StorageBackend))
	}
	if GetEnvironment() == Production && !cfg.DatabaseConfigured {
		errs = append(errs, "DATABASE_URL or DB_HOST is required in production")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "\n"))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
