// Package mission correlates a combat report with its mission data file.
//
// The generator writes no join key between the two, so the match is made on
// file names: the candidates of a campaign's MissionData directory are run
// through an ordered list of tiers, strictest first, and the first tier that
// selects anything wins.
package mission

import (
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/wingmate/wingmate/internal/campaign"
	"github.com/wingmate/wingmate/internal/logging"
	"github.com/wingmate/wingmate/internal/parser"
)

// Candidate globs in priority order. A file matching more than one counts once.
var candidatePatterns = []string{"*MissionData.json", "*.MissionData.json", "*.json"}

var (
	rankPrefix   = regexp.MustCompile(`(?i)^(?:Lieutenant|Ltn|Fw|Obltn|Cne|S/Lt|Sergt|Lt|Capt|Major|Maj)\b\.?\s*`)
	whitespace   = regexp.MustCompile(`\s+`)
	embeddedDate = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
)

// Query is what a tier matches file names against. All fields are lower case.
type Query struct {
	Pilot   string // pilot name without rank
	Date    string // YYYY-MM-DD
	Compact string // YYYYMMDD
}

// Tier is one level of the matching heuristic.
type Tier struct {
	Name    string
	Enabled func(q Query) bool
	Match   func(q Query, filename string) bool
}

func always(Query) bool { return true }

func hasDate(q Query, name string) bool {
	return strings.Contains(name, q.Date) || (q.Compact != "" && strings.Contains(name, q.Compact))
}

// Tiers returns the matching tiers, strictest first.
//
// The date+pilot tier accepts a date-only match when the pilot name is empty,
// while the pilot-only tier is skipped in that case.
func Tiers() []Tier {
	return []Tier{
		{
			Name:    "date+pilot",
			Enabled: always,
			Match: func(q Query, name string) bool {
				return hasDate(q, name) && (q.Pilot == "" || strings.Contains(name, q.Pilot))
			},
		},
		{
			Name:    "pilot",
			Enabled: func(q Query) bool { return q.Pilot != "" },
			Match: func(q Query, name string) bool {
				return strings.Contains(name, q.Pilot)
			},
		},
		{
			Name:    "date",
			Enabled: always,
			Match:   hasDate,
		},
		{
			Name:    "embedded date",
			Enabled: always,
			Match: func(q Query, name string) bool {
				return embeddedDate.FindString(name) == q.Date
			},
		},
	}
}

// CleanPilotName strips a leading rank abbreviation and collapses whitespace.
func CleanPilotName(name string) string {
	cleaned := strings.TrimSpace(rankPrefix.ReplaceAllString(name, ""))
	return strings.TrimSpace(whitespace.ReplaceAllString(cleaned, " "))
}

// DashedDate converts a YYYYMMDD date to YYYY-MM-DD. It reports false for
// anything that is not exactly eight digits forming a real calendar date.
func DashedDate(compact string) (string, bool) {
	if !parser.IsCompactDate(compact) {
		return "", false
	}
	t, err := time.Parse("20060102", compact)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// Select applies the tiers to candidate paths and returns the matches of the
// first tier that selects anything, with that tier's name.
func Select(q Query, candidates []string) ([]string, string) {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = strings.ToLower(filepath.Base(c))
	}

	for _, tier := range Tiers() {
		if !tier.Enabled(q) {
			continue
		}
		var matched []string
		for i, name := range names {
			if tier.Match(q, name) {
				matched = append(matched, candidates[i])
			}
		}
		if len(matched) > 0 {
			return matched, tier.Name
		}
	}
	return nil, ""
}

// Resolver finds the mission data file belonging to a combat report.
type Resolver struct {
	loader campaign.Loader
	logger *slog.Logger
}

// NewResolver creates a Resolver that loads candidates through loader.
func NewResolver(loader campaign.Loader, logger *slog.Logger) *Resolver {
	return &Resolver{
		loader: loader,
		logger: logging.OrDiscard(logger).With("component", "mission"),
	}
}

// NewQuery builds the match query for a combat report. The bool is false
// when the report has no usable date.
func NewQuery(report parser.Object) (Query, bool) {
	compact := report.String("date")
	dashed, ok := DashedDate(compact)
	if !ok {
		return Query{}, false
	}
	pilot := report.FirstString("reportPilotName", "pilotName")
	return Query{
		Pilot:   strings.ToLower(CleanPilotName(pilot)),
		Date:    dashed,
		Compact: compact,
	}, true
}

// Resolve returns the mission data object for report, looked up in the
// MissionData directory of campaignDir. A report without a match yields
// false; that is a normal outcome, not an error.
func (r *Resolver) Resolve(campaignDir string, report parser.Object) (parser.Object, bool) {
	dir := filepath.Join(campaignDir, campaign.MissionDataDir)
	if !isDir(dir) {
		r.logger.Warn("MissionData directory not found", "path", dir)
		return nil, false
	}

	q, ok := NewQuery(report)
	if !ok {
		r.logger.Warn("Missing or invalid mission date in report", "date", report.String("date"))
		return nil, false
	}

	candidates := r.candidates(dir)
	if len(candidates) == 0 {
		r.logger.Warn("No mission files found", "path", dir)
		return nil, false
	}

	matches, tier := Select(q, candidates)
	if len(matches) == 0 {
		r.logger.Warn("No matching mission file", "pilot", q.Pilot, "date", q.Date)
		return nil, false
	}
	r.logger.Debug("Mission file candidates", "tier", tier, "count", len(matches))

	for _, path := range campaign.NewestFirst(matches) {
		if obj, ok := parser.AsObject(r.loader.Load(path)); ok {
			r.logger.Info("Mission file found", "file", filepath.Base(path), "tier", tier)
			return obj, true
		}
		r.logger.Debug("Skipping invalid mission file", "file", filepath.Base(path))
	}

	r.logger.Warn("No valid mission file", "pilot", q.Pilot, "date", q.Date)
	return nil, false
}

// candidates collects the files of dir matching candidatePatterns, in
// pattern order, deduplicated by canonical path.
func (r *Resolver) candidates(dir string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, pattern := range candidatePatterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			r.logger.Warn("Failed to list mission files", "pattern", pattern, "error", err)
			continue
		}
		for _, m := range matches {
			key := m
			if resolved, err := filepath.EvalSymlinks(m); err == nil {
				if abs, err := filepath.Abs(resolved); err == nil {
					key = abs
				}
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, m)
		}
	}
	r.logger.Debug("Collected mission file candidates", "count", len(out))
	return out
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
