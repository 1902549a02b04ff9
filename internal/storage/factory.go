package storage

import (
	"context"
	"fmt"

	"github.com/rowestoli/QuackLog/internal"
	"github.com/rowestoli/QuackLog/internal/config"
)

// NewSubmissionRepository builds the repository selected by
// cfg.StorageBackend. The postgres backend migrates its schema first.
func NewSubmissionRepository(ctx context.Context, cfg *config.Config, logger internal.Logger) (SubmissionRepository, error) {
	switch cfg.StorageBackend {
	case "postgres":
		if err := RunMigrations(cfg.PostgresDSN, logger); err != nil {
			return nil, err
		}
		return NewPostgresStorage(ctx, cfg.PostgresDSN, logger)
	case "file":
		return NewFileStorage(cfg.LogsFile, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
