package memory

import (
	"compress/gzip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wingmate/wingmate/internal/aggregate"
	"github.com/wingmate/wingmate/internal/config"
	"github.com/wingmate/wingmate/internal/model"
	v1 "github.com/wingmate/wingmate/internal/storage/memory/export/v1"
)

func testMeta(campaign string) model.SnapshotMeta {
	return model.SnapshotMeta{
		ID:        uuid.New(),
		Campaign:  campaign,
		CreatedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}
}

func testSnapshot() aggregate.Snapshot {
	return aggregate.Snapshot{
		Campaign: "Jasta 11",
		Pilot:    aggregate.PilotProfile{Name: "Hans Schmidt", Squadron: "Jasta 11", TotalMissions: 1},
		Missions: []aggregate.MissionSummary{{Date: "01/01/1918", Pilots: []string{"Hans Schmidt"}}},
	}
}

func TestInit_RequiresOutputDir(t *testing.T) {
	assert.Error(t, New(config.MemoryConfig{}, nil).Init())
}

func TestInit_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "snapshots")
	b := New(config.MemoryConfig{OutputDir: dir}, nil)

	require.NoError(t, b.Init())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.NoError(t, b.Close())
}

func TestSaveSnapshot_WritesJSON(t *testing.T) {
	dir := t.TempDir()
	b := New(config.MemoryConfig{OutputDir: dir}, nil)
	require.NoError(t, b.Init())

	require.NoError(t, b.SaveSnapshot(testMeta("Jasta 11"), testSnapshot()))

	path := b.GetExportedFilePath()
	assert.Equal(t, filepath.Join(dir, "Jasta_11_20240115_103000.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var export v1.Export
	require.NoError(t, json.Unmarshal(data, &export))
	assert.Equal(t, "Jasta 11", export.Campaign)
	assert.Equal(t, "Hans Schmidt", export.Pilot.Name)
	assert.Equal(t, 1, export.Totals.Missions)
}

func TestSaveSnapshot_WritesGzip(t *testing.T) {
	dir := t.TempDir()
	b := New(config.MemoryConfig{OutputDir: dir, CompressOutput: true}, nil)
	require.NoError(t, b.Init())

	require.NoError(t, b.SaveSnapshot(testMeta("Esc 3"), testSnapshot()))

	path := b.GetExportedFilePath()
	assert.Equal(t, ".gz", filepath.Ext(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer gz.Close()

	var export v1.Export
	require.NoError(t, json.NewDecoder(gz).Decode(&export))
	assert.Equal(t, "Esc 3", export.Campaign)
	assert.Equal(t, []string{"Hans Schmidt"}, export.Missions[0].Pilots)
}

func TestHistory(t *testing.T) {
	b := New(config.MemoryConfig{OutputDir: t.TempDir()}, nil)
	require.NoError(t, b.Init())

	first := testMeta("A")
	second := testMeta("A")
	second.CreatedAt = second.CreatedAt.Add(time.Minute)
	require.NoError(t, b.SaveSnapshot(second, testSnapshot()))
	require.NoError(t, b.SaveSnapshot(testMeta("B"), testSnapshot()))
	require.NoError(t, b.SaveSnapshot(first, testSnapshot()))

	history, err := b.History("A")
	require.NoError(t, err)
	assert.Equal(t, []model.SnapshotMeta{first, second}, history)

	history, err = b.History("none")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestHistory_SurvivesNewBackend(t *testing.T) {
	dir := t.TempDir()
	meta := testMeta("Jasta 11")
	meta.Root = "/campaigns"

	earlier := New(config.MemoryConfig{OutputDir: dir, CompressOutput: true}, nil)
	require.NoError(t, earlier.Init())
	require.NoError(t, earlier.SaveSnapshot(meta, testSnapshot()))

	later := New(config.MemoryConfig{OutputDir: dir}, nil)
	require.NoError(t, later.Init())
	history, err := later.History("Jasta 11")
	require.NoError(t, err)
	assert.Equal(t, []model.SnapshotMeta{meta}, history)
}

func TestHistory_SkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	b := New(config.MemoryConfig{OutputDir: dir}, nil)
	require.NoError(t, b.Init())

	meta := testMeta("A")
	require.NoError(t, b.SaveSnapshot(meta, testSnapshot()))
	// "A/B" and "A_B" share the file name prefix of "A"
	require.NoError(t, b.SaveSnapshot(testMeta("A/B"), testSnapshot()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A_broken.json"), []byte("{"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A_old.json"), []byte(`{"formatVersion": 0}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A_notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "A_dir.json"), 0755))

	history, err := b.History("A")
	require.NoError(t, err)
	assert.Equal(t, []model.SnapshotMeta{meta}, history)
}

func TestHistory_MissingOutputDir(t *testing.T) {
	b := New(config.MemoryConfig{OutputDir: filepath.Join(t.TempDir(), "missing")}, nil)

	history, err := b.History("A")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestSaveSnapshot_UnwritableDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	b := New(config.MemoryConfig{OutputDir: filepath.Join(blocker, "out")}, nil)
	assert.Error(t, b.SaveSnapshot(testMeta("A"), testSnapshot()))
	assert.Empty(t, b.GetExportedFilePath())
}
