// internal/storage/memory/memory.go
package memory

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/wingmate/wingmate/internal/aggregate"
	"github.com/wingmate/wingmate/internal/config"
	"github.com/wingmate/wingmate/internal/logging"
	"github.com/wingmate/wingmate/internal/model"
)

// Backend exports each snapshot to a JSON file in the output directory.
// The files themselves are the history, so it survives across runs.
type Backend struct {
	cfg    config.MemoryConfig
	logger *slog.Logger

	lastExportPath string
	mu             sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig, logger *slog.Logger) *Backend {
	return &Backend{
		cfg:    cfg,
		logger: logging.OrDiscard(logger).With("component", "storage.memory"),
	}
}

// Init ensures the output directory exists
func (b *Backend) Init() error {
	if b.cfg.OutputDir == "" {
		return fmt.Errorf("memory storage: output directory not configured")
	}
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// SaveSnapshot writes s to the output directory
func (b *Backend) SaveSnapshot(meta model.SnapshotMeta, s aggregate.Snapshot) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	path, err := b.exportJSON(meta, s)
	if err != nil {
		logging.Event(b.logger, slog.LevelError, logging.EventSyncFailed,
			"campaign", meta.Campaign, "error", err)
		return err
	}

	b.lastExportPath = path
	logging.Event(b.logger, slog.LevelInfo, logging.EventExportSaved,
		"campaign", meta.Campaign, "path", path)
	return nil
}

// GetExportedFilePath returns the path of the last written export
func (b *Backend) GetExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}
