package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/wingmate/wingmate/internal/config"
	"github.com/wingmate/wingmate/internal/model"
	"github.com/wingmate/wingmate/internal/storage"
)

var exportCmd = &cobra.Command{
	Use:   "export <campaign>",
	Short: "Aggregate a campaign and save the snapshot to the storage backend",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var historyCmd = &cobra.Command{
	Use:   "history <campaign>",
	Short: "List the snapshots saved for a campaign",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func openBackend() (storage.Backend, error) {
	storageCfg := config.GetStorageConfig()
	backend, err := storage.NewBackend(storageCfg, Logger, ZLogger)
	if err != nil {
		return nil, err
	}
	if err := backend.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize %s storage: %w", storageCfg.Type, err)
	}
	Logger.Debug("Storage backend initialized", "type", storageCfg.Type)
	return backend, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	name := args[0]
	s, ok := newAggregator(newLoader()).Aggregate(name)
	if !ok {
		return fmt.Errorf("campaign %q not found under %s", name, rootDir())
	}

	backend, err := openBackend()
	if err != nil {
		return err
	}
	defer backend.Close()

	meta := model.SnapshotMeta{
		ID:        uuid.New(),
		Campaign:  name,
		Root:      rootDir(),
		CreatedAt: time.Now().UTC(),
	}
	if err := backend.SaveSnapshot(meta, s); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Saved snapshot %s\n", meta.ID)
	if exported, ok := backend.(storage.Exported); ok {
		fmt.Fprintf(out, "Written to %s\n", exported.GetExportedFilePath())
	}
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	backend, err := openBackend()
	if err != nil {
		return err
	}
	defer backend.Close()

	historian, ok := backend.(storage.Historian)
	if !ok {
		return fmt.Errorf("storage backend %q does not keep history", config.GetStorageConfig().Type)
	}
	history, err := historian.History(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(history) == 0 {
		fmt.Fprintf(out, "No snapshots saved for %s\n", args[0])
		return nil
	}
	for _, m := range history {
		fmt.Fprintf(out, "%s  %s\n", m.CreatedAt.Format(time.RFC3339), m.ID)
	}
	return nil
}
