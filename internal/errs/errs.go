// Package errs holds the sentinel errors shared between services and the API
// layer. Services wrap them with %w; handlers match with errors.Is and map
// them to status codes.
package errs

import "errors"

var (
	// ErrNotFound covers both missing and soft-deleted records.
	ErrNotFound = errors.New("not found")

	// ErrStorageUnconfigured is returned when no upload backend is set up.
	ErrStorageUnconfigured = errors.New("storage not configured")

	// ErrFileTooLarge is returned when an upload exceeds the byte limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrUnsupportedFileType is returned for non-image upload content.
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
