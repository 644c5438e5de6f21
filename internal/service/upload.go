package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/simmerhq/cookbook-backend/config"
	"github.com/simmerhq/cookbook-backend/internal/errs"
)

// allowedImageTypes maps accepted sniffed content types to file extensions.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadService stores recipe images on S3 or local disk. Filenames combine
// a millisecond timestamp with a random suffix, so concurrent uploads never
// collide and retrying a failed upload is harmless.
type UploadService struct {
	storage  *config.StorageConfig
	maxBytes int64
	logger   zerolog.Logger
}

// NewUploadService creates a new UploadService instance. A nil storage
// config leaves uploads disabled.
func NewUploadService(storage *config.StorageConfig, maxBytes int64, logger zerolog.Logger) *UploadService {
	return &UploadService{
		storage:  storage,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// Configured reports whether an upload backend is available.
func (s *UploadService) Configured() bool {
	return s.storage != nil
}

// Upload validates and stores one image, returning its public URL. Guards:
// backend configured, size within the byte limit, sniffed content type is an
// accepted image type. Nothing is written when a guard rejects the file.
func (s *UploadService) Upload(ctx context.Context, size int64, r io.Reader) (string, error) {
	if s.storage == nil {
		return "", errs.ErrStorageUnconfigured
	}
	if size > s.maxBytes {
		return "", fmt.Errorf("%w: %d bytes (max %d)", errs.ErrFileTooLarge, size, s.maxBytes)
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("%w: body exceeds %d bytes", errs.ErrFileTooLarge, s.maxBytes)
	}

	contentType := http.DetectContentType(data)
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", errs.ErrUnsupportedFileType, contentType)
	}

	key := fmt.Sprintf("recipes/%d-%s%s", time.Now().UnixMilli(), uuid.New().String()[:8], ext)

	var url string
	switch s.storage.Backend {
	case "s3":
		url, err = s.uploadToS3(ctx, data, key, contentType)
	default:
		url, err = s.uploadToDisk(data, key)
	}
	if err != nil {
		return "", err
	}

	s.logger.Info().
		Str("key", key).
		Str("content_type", contentType).
		Int("bytes", len(data)).
		Msg("stored upload")
	return url, nil
}

// uploadToS3 puts the object and returns the public bucket URL.
func (s *UploadService) uploadToS3(ctx context.Context, data []byte, key, contentType string) (string, error) {
	_, err := s.storage.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.storage.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.storage.BucketName, key), nil
}

// uploadToDisk writes the file under the upload dir, served at /uploads/.
func (s *UploadService) uploadToDisk(data []byte, key string) (string, error) {
	name := strings.TrimPrefix(key, "recipes/")
	if err := os.WriteFile(filepath.Join(s.storage.LocalDir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return "/uploads/" + name, nil
}
