// Package v1 contains the v1 file format for exported campaign snapshots.
package v1

import "github.com/wingmate/wingmate/internal/aggregate"

// FormatVersion is written into every v1 export.
const FormatVersion = 1

// Export is the root JSON structure for v1 format
type Export struct {
	FormatVersion int                        `json:"formatVersion"`
	ID            string                     `json:"id"`
	Campaign      string                     `json:"campaign"`
	Root          string                     `json:"root,omitempty"`
	ExportedAt    string                     `json:"exportedAt"`
	Pilot         aggregate.PilotProfile     `json:"pilot"`
	Totals        Totals                     `json:"totals"`
	Missions      []aggregate.MissionSummary `json:"missions"`
	Squadron      []aggregate.SquadronMember `json:"squadron"`
	Aces          []aggregate.AceEntry       `json:"aces"`
}

// Totals summarizes the list sizes of an export
type Totals struct {
	Missions       int `json:"missions"`
	SquadronMember int `json:"squadronMembers"`
	Aces           int `json:"aces"`
	Victories      int `json:"squadronVictories"`
}

// Header is the identifying part of an export, enough to list it without
// keeping the payload.
type Header struct {
	FormatVersion int    `json:"formatVersion"`
	ID            string `json:"id"`
	Campaign      string `json:"campaign"`
	Root          string `json:"root,omitempty"`
	ExportedAt    string `json:"exportedAt"`
}
