// Package storage stores uploaded item images on a local directory or an
// S3-compatible bucket.
//
// Drivers:
//   - "local"  local filesystem served by the app under /storage (default)
//   - "s3"     AWS S3, MinIO, R2, Spaces
//
// Quick start:
//
//	// boot once (internal/server):
//	_ = storage.Connect(ctx)
//
//	disk := storage.Default()
//	_ = disk.Put(ctx, "items/pizza.jpg", file, "image/jpeg")
//	url := disk.URL("items/pizza.jpg")
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Get for a missing file.
var ErrNotFound = errors.New("storage: file not found")

// Disk is the filesystem driver interface. Every driver must implement this.
type Disk interface {
	// Put writes r to path, creating parent directories as needed.
	Put(ctx context.Context, path string, r io.Reader, contentType string) error

	// Get returns the full content of the file at path.
	Get(ctx context.Context, path string) ([]byte, error)

	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) bool

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for path.
	URL(path string) string
}
