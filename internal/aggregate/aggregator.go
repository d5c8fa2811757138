// Package aggregate composes the raw campaign files into one denormalized
// snapshot: pilot profile, ordered missions, squadron roster and aces.
package aggregate

import (
	"cmp"
	"log/slog"
	"regexp"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/wingmate/wingmate/internal/campaign"
	"github.com/wingmate/wingmate/internal/logging"
	"github.com/wingmate/wingmate/internal/mission"
	"github.com/wingmate/wingmate/internal/parser"
)

// Display values used when a source field is missing.
const (
	NotAvailable       = "NA"
	WeatherUnavailable = "Não disponível"
	NoDescription      = "Descrição da missão não encontrada."

	// undatedSortKey places reports without a usable date last.
	undatedSortKey = "99999999"
)

var weatherReport = regexp.MustCompile(`(?is)(Weather Report.*)$`)

// PilotProfile identifies the tracked player pilot.
type PilotProfile struct {
	Name          string `json:"name"`
	Squadron      string `json:"squadron"`
	TotalMissions int    `json:"totalMissions"`
	SquadronID    int    `json:"squadronId,omitempty"`
}

// MissionSummary is one combat report joined with its mission data.
type MissionSummary struct {
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Aircraft    string   `json:"aircraft"`
	Duty        string   `json:"duty"`
	Locality    string   `json:"locality"`
	Airfield    string   `json:"airfield"`
	Pilots      []string `json:"pilots"`
	Weather     string   `json:"weather"`
	Description string   `json:"description"`
	HAReport    string   `json:"haReport"`
}

// SquadronMember is one entry of the player squadron roster.
type SquadronMember struct {
	Name          string      `json:"name"`
	Rank          string      `json:"rank"`
	Victories     int         `json:"victories"`
	MissionsFlown int         `json:"missionsFlown"`
	Status        PilotStatus `json:"status"`
}

// AceEntry is one entry of the campaign ace leaderboard. MissionsFlown is
// passed through as found in the file.
type AceEntry struct {
	Name          string `json:"name"`
	Rank          string `json:"rank"`
	Country       string `json:"country"`
	Victories     int    `json:"victories"`
	MissionsFlown any    `json:"missionsFlown"`
}

// Snapshot is the aggregated view of one campaign.
type Snapshot struct {
	Campaign string           `json:"campaign"`
	Pilot    PilotProfile     `json:"pilot"`
	Missions []MissionSummary `json:"missions"`
	Squadron []SquadronMember `json:"squadron"`
	Aces     []AceEntry       `json:"aces"`
}

// Aggregator builds snapshots from one campaign root.
type Aggregator struct {
	reader   *campaign.Reader
	resolver *mission.Resolver
	logger   *slog.Logger
}

// New creates an Aggregator.
func New(reader *campaign.Reader, resolver *mission.Resolver, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		reader:   reader,
		resolver: resolver,
		logger:   logging.OrDiscard(logger).With("component", "aggregate"),
	}
}

// Aggregate builds the snapshot of the named campaign. It reports false when
// the campaign descriptor cannot be loaded.
func (a *Aggregator) Aggregate(name string) (Snapshot, bool) {
	logging.Event(a.logger, slog.LevelInfo, logging.EventSyncStarted, "campaign", name)

	desc, ok := a.reader.Descriptor(name)
	if !ok {
		logging.Event(a.logger, slog.LevelWarn, logging.EventSyncFailed,
			"campaign", name, "reason", "descriptor not found")
		return Snapshot{}, false
	}

	reports := a.reader.CombatReports(name, desc.PlayerSerial)
	missions, squadronID := a.missions(name, reports, desc.PlayerSerial)

	pilot := Pilot(desc.Raw, reports)
	pilot.SquadronID = squadronID

	squadron := []SquadronMember{}
	if squadronID != 0 {
		squadron = Squadron(a.reader.Personnel(name, squadronID))
	}

	s := Snapshot{
		Campaign: name,
		Pilot:    pilot,
		Missions: missions,
		Squadron: squadron,
		Aces:     Aces(a.reader.Aces(name)),
	}

	logging.Event(a.logger, slog.LevelInfo, logging.EventSyncSucceeded,
		"campaign", name,
		"missions", len(s.Missions),
		"squadron", len(s.Squadron),
		"aces", len(s.Aces))
	return s, true
}

type keyedMission struct {
	key     string
	summary MissionSummary
}

// missions builds the ordered mission list and discovers the player's
// squadron id from the first mission data that lists the player serial.
func (a *Aggregator) missions(name string, reports []parser.Object, serial string) ([]MissionSummary, int) {
	campaignDir := a.reader.CampaignDir(name)
	keyed := make([]keyedMission, 0, len(reports))
	squadronID := 0

	for _, report := range reports {
		details, found := a.resolver.Resolve(campaignDir, report)
		if found && len(details) == 0 {
			found = false
		}

		if squadronID == 0 && found {
			squadronID = SquadronIDFor(details, serial)
		}

		raw := report.String("date")
		key := raw
		if !parser.IsCompactDate(raw) {
			key = undatedSortKey
		}
		keyed = append(keyed, keyedMission{key: key, summary: Summarize(report, details, found)})
	}

	slices.SortStableFunc(keyed, func(x, y keyedMission) int {
		return cmp.Compare(x.key, y.key)
	})

	out := make([]MissionSummary, len(keyed))
	for i, k := range keyed {
		out[i] = k.summary
	}
	return out, squadronID
}

// Summarize builds the summary of one report. details is the resolved
// mission data; found is false when none was resolved.
func Summarize(report, details parser.Object, found bool) MissionSummary {
	raw := report.String("date")
	date := report.StringOr("date", NotAvailable)
	if raw != "" {
		date = FormatDate(raw)
	}

	description := NoDescription
	weather := WeatherUnavailable
	airfield := NotAvailable
	if found {
		description = details.StringOr("missionDescription", NoDescription)
		weather = Weather(description)
		airfield = details.Object("missionHeader").StringOr("airfield", NotAvailable)
	}

	ha := report.String("haReport")
	return MissionSummary{
		Date:        date,
		Time:        report.StringOr("time", NotAvailable),
		Aircraft:    report.StringOr("type", NotAvailable),
		Duty:        report.StringOr("duty", NotAvailable),
		Locality:    report.StringOr("locality", NotAvailable),
		Airfield:    airfield,
		Pilots:      Participants(ha),
		Weather:     weather,
		Description: description,
		HAReport:    ha,
	}
}

// Weather extracts the "Weather Report" section of a mission description.
func Weather(description string) string {
	m := weatherReport.FindStringSubmatch(description)
	if m == nil {
		return WeatherUnavailable
	}
	return strings.TrimSpace(m[1])
}

// Participants lists the non-empty lines of a haReport, minus the
// "this mission"/"the mission" boilerplate lines.
func Participants(haReport string) []string {
	out := []string{}
	for _, line := range strings.Split(haReport, "\n") {
		clean := strings.TrimSpace(line)
		if clean == "" {
			continue
		}
		lower := strings.ToLower(clean)
		if strings.HasPrefix(lower, "this mission") || strings.HasPrefix(lower, "the mission") {
			continue
		}
		out = append(out, clean)
	}
	return out
}

// SquadronIDFor returns the squadronId of the missionPlanes entry keyed by
// the player serial, or 0.
func SquadronIDFor(details parser.Object, serial string) int {
	if serial == "" {
		return 0
	}
	plane := details.Object("missionPlanes").Object(serial)
	if plane == nil {
		return 0
	}
	return parser.Int(plane["squadronId"], 0)
}

// Pilot resolves the player profile from the campaign descriptor, falling
// back to the combat reports for the squadron name.
func Pilot(desc parser.Object, reports []parser.Object) PilotProfile {
	name := desc.FirstString("referencePlayerName", "playerName", "name")
	if name == "" {
		name = NotAvailable
	}

	squadron := desc.FirstString("referencePlayerSquadronName", "playerSquadron")
	if squadron == "" {
		for _, r := range reports {
			if s := r.String("squadron"); s != "" {
				squadron = s
				break
			}
		}
	}
	if squadron == "" {
		squadron = NotAvailable
	}

	return PilotProfile{
		Name:          name,
		Squadron:      squadron,
		TotalMissions: len(reports),
	}
}

// Squadron builds the roster from a personnel file, most missions first and
// then most victories. Members are read in serial order so ties are stable.
func Squadron(personnel parser.Object) []SquadronMember {
	out := []SquadronMember{}
	coll := personnel.Object("squadronMemberCollection")
	if len(coll) == 0 {
		return out
	}

	keys := make([]string, 0, len(coll))
	for k := range coll {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		p, ok := parser.AsObject(coll[k])
		if !ok {
			continue
		}
		out = append(out, SquadronMember{
			Name:          p.StringOr("name", NotAvailable),
			Rank:          p.StringOr("rank", NotAvailable),
			Victories:     parser.Count(p["victories"]),
			MissionsFlown: parser.Count(p["missionFlown"]),
			Status:        StatusFromCode(ParseStatusCode(p["pilotActiveStatus"])),
		})
	}

	slices.SortStableFunc(out, func(x, y SquadronMember) int {
		if c := cmp.Compare(y.MissionsFlown, x.MissionsFlown); c != 0 {
			return c
		}
		return cmp.Compare(y.Victories, x.Victories)
	})
	return out
}

// Aces normalizes the ace roster, most victories first.
func Aces(raw []parser.Object) []AceEntry {
	out := make([]AceEntry, 0, len(raw))
	for _, ace := range raw {
		var flown any = 0
		if v, ok := ace["missionFlown"]; ok {
			flown = v
		}
		out = append(out, AceEntry{
			Name:          ace.StringOr("name", NotAvailable),
			Rank:          ace.StringOr("rank", NotAvailable),
			Country:       ace.String("country"),
			Victories:     parser.Count(ace["victories"]),
			MissionsFlown: flown,
		})
	}

	slices.SortStableFunc(out, func(x, y AceEntry) int {
		return cmp.Compare(y.Victories, x.Victories)
	})
	return out
}

// FormatDate renders YYYYMMDD as DD/MM/YYYY. Anything else is returned
// unchanged.
func FormatDate(yyyymmdd string) string {
	if !parser.IsCompactDate(yyyymmdd) {
		return yyyymmdd
	}
	t, err := time.Parse("20060102", yyyymmdd)
	if err != nil {
		return yyyymmdd
	}
	return t.Format("02/01/2006")
}
