// Package sqlitestorage implements the storage.Backend interface with a
// SQLite snapshot archive. Every saved snapshot becomes one row whose JSON
// payload can be decoded back into an aggregate.Snapshot.
package sqlitestorage

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/wingmate/wingmate/internal/aggregate"
	"github.com/wingmate/wingmate/internal/config"
	"github.com/wingmate/wingmate/internal/database"
	"github.com/wingmate/wingmate/internal/model"
	"github.com/wingmate/wingmate/internal/model/convert"
)

// ErrNotFound is returned when a snapshot id is not in the archive.
var ErrNotFound = errors.New("snapshot not found")

// Backend archives snapshots in SQLite.
type Backend struct {
	cfg config.SQLiteConfig
	db  *database.Manager
	log zerolog.Logger
}

// New creates a new SQLite storage backend. Init opens the database.
func New(cfg config.SQLiteConfig, log zerolog.Logger) *Backend {
	return &Backend{
		cfg: cfg,
		db:  database.NewManager(log),
		log: log,
	}
}

// Init opens the database and migrates the schema.
func (b *Backend) Init() error {
	if err := b.db.Connect(b.cfg.Path); err != nil {
		return err
	}
	return b.db.Setup()
}

// Close closes the database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// SaveSnapshot inserts s as a new row. A zero meta.ID is replaced by a fresh
// UUID.
func (b *Backend) SaveSnapshot(meta model.SnapshotMeta, s aggregate.Snapshot) error {
	if !b.db.IsValid {
		return fmt.Errorf("sqlite storage not initialized")
	}
	if meta.ID == uuid.Nil {
		meta.ID = uuid.New()
	}

	rec, err := convert.SnapshotToRecord(meta, s)
	if err != nil {
		return err
	}
	if err := b.db.DB.Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	b.log.Info().
		Str("id", rec.ID.String()).
		Str("campaign", rec.Campaign).
		Int("missions", rec.MissionCount).
		Msg("Snapshot archived")
	return nil
}

// History lists the archived snapshots of campaign, oldest first.
func (b *Backend) History(campaign string) ([]model.SnapshotMeta, error) {
	if !b.db.IsValid {
		return nil, fmt.Errorf("sqlite storage not initialized")
	}

	var recs []model.SnapshotRecord
	err := b.db.DB.
		Omit("payload").
		Where("campaign = ?", campaign).
		Order("created_at ASC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	out := make([]model.SnapshotMeta, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].Meta())
	}
	return out, nil
}

// Load decodes an archived snapshot.
func (b *Backend) Load(id uuid.UUID) (aggregate.Snapshot, error) {
	if !b.db.IsValid {
		return aggregate.Snapshot{}, fmt.Errorf("sqlite storage not initialized")
	}

	var rec model.SnapshotRecord
	err := b.db.DB.First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return aggregate.Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return aggregate.Snapshot{}, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return convert.RecordToSnapshot(rec)
}
