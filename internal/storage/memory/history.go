package memory

import (
	"cmp"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wingmate/wingmate/internal/model"
	v1 "github.com/wingmate/wingmate/internal/storage/memory/export/v1"
	"github.com/wingmate/wingmate/internal/util"
)

type exportEntry struct {
	meta model.SnapshotMeta
	file string
}

// History lists the exports of campaign found in the output directory,
// oldest first. Files that cannot be read as a v1 export are skipped.
func (b *Backend) History(campaign string) ([]model.SnapshotMeta, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	dirEntries, err := os.ReadDir(b.cfg.OutputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.SnapshotMeta{}, nil
		}
		return nil, fmt.Errorf("failed to list output directory: %w", err)
	}

	prefix := util.SafeFileName(campaign) + "_"
	found := []exportEntry{}
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		if !strings.HasSuffix(name, ".json") && !strings.HasSuffix(name, ".json.gz") {
			continue
		}

		meta, err := readExportMeta(filepath.Join(b.cfg.OutputDir, name))
		if err != nil {
			b.logger.Warn("Skipping unreadable export", "file", name, "error", err)
			continue
		}
		// SafeFileName is lossy, so the prefix alone can match another campaign
		if meta.Campaign != campaign {
			continue
		}
		found = append(found, exportEntry{meta: meta, file: name})
	}

	slices.SortStableFunc(found, func(a, b exportEntry) int {
		if c := a.meta.CreatedAt.Compare(b.meta.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.file, b.file)
	})

	out := make([]model.SnapshotMeta, 0, len(found))
	for _, e := range found {
		out = append(out, e.meta)
	}
	return out, nil
}

func readExportMeta(path string) (model.SnapshotMeta, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.SnapshotMeta{}, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return model.SnapshotMeta{}, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	var h v1.Header
	if err := json.NewDecoder(r).Decode(&h); err != nil {
		return model.SnapshotMeta{}, fmt.Errorf("failed to decode export header: %w", err)
	}
	if h.FormatVersion != v1.FormatVersion {
		return model.SnapshotMeta{}, fmt.Errorf("unsupported export format %d", h.FormatVersion)
	}

	meta := model.SnapshotMeta{Campaign: h.Campaign, Root: h.Root}
	if h.ID != "" {
		if meta.ID, err = uuid.Parse(h.ID); err != nil {
			return model.SnapshotMeta{}, fmt.Errorf("invalid export id: %w", err)
		}
	}
	if meta.CreatedAt, err = time.Parse(time.RFC3339, h.ExportedAt); err != nil {
		return model.SnapshotMeta{}, fmt.Errorf("invalid export time: %w", err)
	}
	return meta, nil
}
