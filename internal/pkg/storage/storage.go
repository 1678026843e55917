package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var ErrInvalidPath = errors.New("storage path escapes the base directory")

// FileStorage is where raw punch-log uploads are archived.
type FileStorage interface {
	// Upload stores a file and returns its storage key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// GetURL returns a URL an operator can fetch the file from
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}
