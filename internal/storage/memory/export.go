// internal/storage/memory/export.go
package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wingmate/wingmate/internal/aggregate"
	"github.com/wingmate/wingmate/internal/model"
	v1 "github.com/wingmate/wingmate/internal/storage/memory/export/v1"
	"github.com/wingmate/wingmate/internal/util"
)

// exportFileName builds <campaign>_<timestamp>.json[.gz]
func (b *Backend) exportFileName(meta model.SnapshotMeta) string {
	name := util.SafeFileName(meta.Campaign)
	timestamp := meta.CreatedAt.UTC().Format("20060102_150405")
	if b.cfg.CompressOutput {
		return fmt.Sprintf("%s_%s.json.gz", name, timestamp)
	}
	return fmt.Sprintf("%s_%s.json", name, timestamp)
}

// exportJSON writes the snapshot to a JSON file, gzipped when configured
func (b *Backend) exportJSON(meta model.SnapshotMeta, s aggregate.Snapshot) (string, error) {
	export := v1.Build(meta, s)
	outputPath := filepath.Join(b.cfg.OutputDir, b.exportFileName(meta))

	// Ensure output directory exists
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	var err error
	if b.cfg.CompressOutput {
		err = writeGzipJSON(outputPath, export)
	} else {
		err = writeJSON(outputPath, export)
	}
	if err != nil {
		return "", err
	}
	return outputPath, nil
}

func writeJSON(path string, data v1.Export) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}

func writeGzipJSON(path string, data v1.Export) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	gzWriter := gzip.NewWriter(f)
	encoder := json.NewEncoder(gzWriter)
	if err := encoder.Encode(data); err != nil {
		gzWriter.Close()
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return gzWriter.Close()
}
