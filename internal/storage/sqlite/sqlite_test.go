package sqlitestorage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wingmate/wingmate/internal/aggregate"
	"github.com/wingmate/wingmate/internal/config"
	"github.com/wingmate/wingmate/internal/model"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	b := New(config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "wingmate.db")}, zerolog.Nop())
	require.NoError(t, b.Init())
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func sampleSnapshot() aggregate.Snapshot {
	return aggregate.Snapshot{
		Campaign: "Jasta 11",
		Pilot:    aggregate.PilotProfile{Name: "Hans Schmidt", Squadron: "Jasta 11", TotalMissions: 2, SquadronID: 401011},
		Missions: []aggregate.MissionSummary{
			{Date: "31/12/1917", Pilots: []string{}},
			{Date: "01/01/1918", Pilots: []string{"Hans Schmidt"}, Weather: "Weather Report\nClear"},
		},
		Squadron: []aggregate.SquadronMember{{Name: "Karl Bolle", Victories: 7, MissionsFlown: 10, Status: aggregate.StatusKIA}},
		Aces:     []aggregate.AceEntry{{Name: "Voss", Victories: 3, MissionsFlown: "n/a"}},
	}
}

func TestSaveAndLoad(t *testing.T) {
	b := newTestBackend(t)
	meta := model.SnapshotMeta{
		ID:        uuid.New(),
		Campaign:  "Jasta 11",
		CreatedAt: time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC),
	}

	require.NoError(t, b.SaveSnapshot(meta, sampleSnapshot()))

	got, err := b.Load(meta.ID)
	require.NoError(t, err)
	assert.Equal(t, sampleSnapshot().Pilot, got.Pilot)
	assert.Equal(t, sampleSnapshot().Missions, got.Missions)
	assert.Equal(t, sampleSnapshot().Squadron, got.Squadron)
	assert.Equal(t, "n/a", got.Aces[0].MissionsFlown)
}

func TestLoad_NotFound(t *testing.T) {
	b := newTestBackend(t)
	_, err := b.Load(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHistory_OrderedAndFiltered(t *testing.T) {
	b := newTestBackend(t)
	base := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)

	later := model.SnapshotMeta{ID: uuid.New(), Campaign: "A", CreatedAt: base.Add(time.Hour)}
	earlier := model.SnapshotMeta{ID: uuid.New(), Campaign: "A", CreatedAt: base}
	require.NoError(t, b.SaveSnapshot(later, sampleSnapshot()))
	require.NoError(t, b.SaveSnapshot(earlier, sampleSnapshot()))
	require.NoError(t, b.SaveSnapshot(model.SnapshotMeta{Campaign: "B", CreatedAt: base}, sampleSnapshot()))

	history, err := b.History("A")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, earlier.ID, history[0].ID)
	assert.Equal(t, later.ID, history[1].ID)
	assert.True(t, history[0].CreatedAt.Equal(base))

	history, err = b.History("B")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.NotEqual(t, uuid.Nil, history[0].ID, "a missing id is generated")
}

func TestUninitialized(t *testing.T) {
	b := New(config.SQLiteConfig{}, zerolog.Nop())

	assert.Error(t, b.SaveSnapshot(model.SnapshotMeta{}, aggregate.Snapshot{}))
	_, err := b.History("A")
	assert.Error(t, err)
	assert.NoError(t, b.Close())
}

func TestInMemoryDatabase(t *testing.T) {
	b := New(config.SQLiteConfig{}, zerolog.Nop())
	require.NoError(t, b.Init())
	defer b.Close()

	require.NoError(t, b.SaveSnapshot(model.SnapshotMeta{Campaign: "M", CreatedAt: time.Now()}, sampleSnapshot()))
	history, err := b.History("M")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
