package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFilePath(t *testing.T) {
	start := time.Date(2026, 2, 12, 21, 38, 36, 0, time.UTC)

	assert.Equal(t,
		filepath.Join("wingmatelogs", "wingmate.20260212_213836.log"),
		LogFilePath("wingmatelogs", "wingmate", start))
	assert.Equal(t,
		filepath.Join("/var", "log", "wingmate", "bench.20260212_213836.log"),
		LogFilePath(filepath.Join("/var", "log", "wingmate"), "bench", start))
}

func TestOpenSessionLog_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	start := time.Date(2026, 2, 12, 21, 38, 36, 0, time.UTC)

	f, path, err := OpenSessionLog(dir, "wingmate", start)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, LogFilePath(dir, "wingmate", start), path)
	_, err = f.WriteString("hello\n")
	require.NoError(t, err)
}

func TestOpenSessionLog_RotatesExisting(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2026, 2, 12, 21, 38, 36, 0, time.UTC)
	path := LogFilePath(dir, "wingmate", start)
	require.NoError(t, os.WriteFile(path, []byte("previous run\n"), 0644))

	f, _, err := OpenSessionLog(dir, "wingmate", start)
	require.NoError(t, err)
	f.Close()

	old, err := os.ReadFile(path + ".old")
	require.NoError(t, err)
	assert.Equal(t, "previous run\n", string(old))

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, current)
}
