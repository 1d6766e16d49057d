// Package storage provides artifact storage with filesystem and
// Azure Blob Storage implementations selected by configuration.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/conclave-hq/conclave/pkg/lifecycle"
)

// System manages artifact storage operations and lifecycle coordination.
type System interface {
	// Start registers a startup hook that initializes the storage container.
	Start(lc *lifecycle.Coordinator) error
	// Upload writes data to an artifact at the given key with the specified
	// content type, creating any needed containing structure and overwriting
	// on repeat keys.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error
	// Download returns a stream for the artifact at the given key. The caller
	// must close the reader. Returns ErrNotFound if the artifact does not exist.
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the artifact at the given key. Returns ErrNotFound if the
	// artifact does not exist.
	Delete(ctx context.Context, key string) error
	// Exists reports whether an artifact exists at the given key.
	Exists(ctx context.Context, key string) (bool, error)
}

// New creates a storage system for the configured driver.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	switch cfg.Driver {
	case DriverFilesystem:
		return newFilesystem(cfg, logger)
	case DriverAzure:
		return newAzure(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
