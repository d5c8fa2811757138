// internal/storage/storage.go
package storage

import (
	"github.com/wingmate/wingmate/internal/aggregate"
	"github.com/wingmate/wingmate/internal/model"
)

// Backend is the interface all snapshot storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// SaveSnapshot persists one aggregated campaign snapshot
	SaveSnapshot(meta model.SnapshotMeta, s aggregate.Snapshot) error
}

// Historian is an optional interface for backends that can list the
// snapshots saved for a campaign, oldest first.
type Historian interface {
	History(campaign string) ([]model.SnapshotMeta, error)
}

// Exported is an optional interface for backends that write each snapshot
// to a standalone file.
type Exported interface {
	GetExportedFilePath() string
}
