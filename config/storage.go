package config

import (
	"context"
	"fmt"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// StorageConfig holds the upload backend: either an S3 client and bucket, or
// a local directory. A nil *StorageConfig means uploads are disabled.
type StorageConfig struct {
	Backend    string
	Client     *s3.Client
	BucketName string
	LocalDir   string
}

// NewStorageConfig initializes the configured upload backend. Returns
// (nil, nil) when no backend is configured; callers degrade uploads to 503.
func NewStorageConfig(ctx context.Context, cfg *Config) (*StorageConfig, error) {
	switch cfg.StorageBackend {
	case "s3":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.AWSRegion),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return &StorageConfig{
			Backend:    "s3",
			Client:     s3.NewFromConfig(awsCfg),
			BucketName: cfg.S3Bucket,
		}, nil
	case "local":
		if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload dir %s: %w", cfg.UploadDir, err)
		}
		return &StorageConfig{
			Backend:  "local",
			LocalDir: cfg.UploadDir,
		}, nil
	default:
		return nil, nil
	}
}
