package v1

import (
	"time"

	"github.com/google/uuid"

	"github.com/wingmate/wingmate/internal/aggregate"
	"github.com/wingmate/wingmate/internal/model"
)

// Build converts a snapshot to the v1 export format
func Build(meta model.SnapshotMeta, s aggregate.Snapshot) Export {
	export := Export{
		FormatVersion: FormatVersion,
		Campaign:      meta.Campaign,
		Root:          meta.Root,
		ExportedAt:    meta.CreatedAt.UTC().Format(time.RFC3339),
		Pilot:         s.Pilot,
		Missions:      nonNil(s.Missions),
		Squadron:      nonNil(s.Squadron),
		Aces:          nonNil(s.Aces),
	}
	if meta.ID != uuid.Nil {
		export.ID = meta.ID.String()
	}
	if export.Campaign == "" {
		export.Campaign = s.Campaign
	}

	export.Totals = Totals{
		Missions:       len(export.Missions),
		SquadronMember: len(export.Squadron),
		Aces:           len(export.Aces),
	}
	for _, m := range export.Squadron {
		export.Totals.Victories += m.Victories
	}

	return export
}

// nonNil keeps empty lists as [] rather than null in the JSON output.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
