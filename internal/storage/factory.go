// internal/storage/factory.go
package storage

import (
	"fmt"
	"log/slog"

	"github.com/rs/zerolog"

	"github.com/wingmate/wingmate/internal/config"
	"github.com/wingmate/wingmate/internal/storage/memory"
	sqlitestorage "github.com/wingmate/wingmate/internal/storage/sqlite"
)

// NewBackend creates a storage backend based on configuration
func NewBackend(cfg config.StorageConfig, logger *slog.Logger, zlog zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case "memory", "":
		return memory.New(cfg.Memory, logger), nil
	case "sqlite":
		return sqlitestorage.New(cfg.SQLite, zlog), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
