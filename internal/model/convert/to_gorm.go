// Package convert provides functions to convert between aggregated snapshots and GORM models
package convert

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/wingmate/wingmate/internal/aggregate"
	"github.com/wingmate/wingmate/internal/model"
)

// SnapshotToRecord converts a snapshot into its database row.
func SnapshotToRecord(meta model.SnapshotMeta, s aggregate.Snapshot) (model.SnapshotRecord, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return model.SnapshotRecord{}, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return model.SnapshotRecord{
		ID:            meta.ID,
		Campaign:      meta.Campaign,
		Root:          meta.Root,
		PilotName:     s.Pilot.Name,
		SquadronName:  s.Pilot.Squadron,
		MissionCount:  len(s.Missions),
		SquadronCount: len(s.Squadron),
		AceCount:      len(s.Aces),
		CreatedAt:     meta.CreatedAt,
		Payload:       datatypes.JSON(payload),
	}, nil
}

// RecordToSnapshot decodes the payload of a database row.
func RecordToSnapshot(r model.SnapshotRecord) (aggregate.Snapshot, error) {
	var s aggregate.Snapshot
	if len(r.Payload) == 0 {
		return s, fmt.Errorf("snapshot %s has no payload", r.ID)
	}
	if err := json.Unmarshal(r.Payload, &s); err != nil {
		return s, fmt.Errorf("failed to decode snapshot %s: %w", r.ID, err)
	}
	return s, nil
}
