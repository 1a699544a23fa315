package storage

import (
	"errors"
	"fmt"
	"io"

	"github.com/stashbin/stashbin/internal/config"
)

// ErrBlobNotFound is returned by Open when no blob exists at the path.
var ErrBlobNotFound = errors.New("blob not found")

// Storage defines the interface for blob storage operations
type Storage interface {
	// Save stores a blob at the given path
	Save(path string, file io.Reader) error

	// Open returns a reader for the blob at the given path.
	// Returns ErrBlobNotFound when the blob is absent.
	Open(path string) (io.ReadCloser, error)

	// Delete removes the blob at the given path
	Delete(path string) error
}

// New creates a storage backend from app config.
// "local" keeps blobs in a flat directory on disk (the default);
// "s3" works with AWS S3 and S3-compatible services (MinIO, R2, Spaces).
func New(c *config.Config) (Storage, error) {
	switch c.StorageDriver {
	case "local", "":
		return NewLocalStorage(c.UploadDir)
	case "s3":
		return NewS3Storage(S3Config{
			Region:    c.S3Region,
			Bucket:    c.S3Bucket,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
			Endpoint:  c.S3Endpoint,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
}
