package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SnapshotMeta describes one saved snapshot.
type SnapshotMeta struct {
	ID        uuid.UUID `json:"id"`
	Campaign  string    `json:"campaign"`
	Root      string    `json:"root,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&SnapshotRecord{},
}

// SnapshotRecord is an aggregated campaign snapshot archived in the database.
// The counters duplicate the payload so history can be listed without
// decoding it.
type SnapshotRecord struct {
	ID            uuid.UUID      `json:"id" gorm:"type:text;primaryKey"`
	Campaign      string         `json:"campaign" gorm:"size:256;index"`
	Root          string         `json:"root"`
	PilotName     string         `json:"pilotName" gorm:"size:256"`
	SquadronName  string         `json:"squadronName" gorm:"size:256"`
	MissionCount  int            `json:"missionCount"`
	SquadronCount int            `json:"squadronCount"`
	AceCount      int            `json:"aceCount"`
	CreatedAt     time.Time      `json:"createdAt" gorm:"index"`
	Payload       datatypes.JSON `json:"payload"`
}

func (*SnapshotRecord) TableName() string {
	return "snapshots"
}

// Meta returns the descriptive part of the record.
func (r *SnapshotRecord) Meta() SnapshotMeta {
	return SnapshotMeta{ID: r.ID, Campaign: r.Campaign, Root: r.Root, CreatedAt: r.CreatedAt}
}
