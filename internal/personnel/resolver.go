// Package personnel resolves a pilot's nationality and earned decorations
// from the squadron rosters of a campaign.
package personnel

import (
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/wingmate/wingmate/internal/batch"
	"github.com/wingmate/wingmate/internal/campaign"
	"github.com/wingmate/wingmate/internal/logging"
	"github.com/wingmate/wingmate/internal/parser"
)

// Result is the resolved nationality and decorations of one pilot.
type Result struct {
	CountryCode    string              `json:"countryCode"`
	DisplayName    string              `json:"displayName"`
	EarnedMedalIDs map[string]struct{} `json:"-"`
}

// Default is the result used when no pilot can be matched.
func Default() Result {
	return Result{CountryCode: Germany, DisplayName: "Germany", EarnedMedalIDs: map[string]struct{}{}}
}

// HasMedal reports whether id was earned.
func (r Result) HasMedal(id string) bool {
	_, ok := r.EarnedMedalIDs[id]
	return ok
}

// MedalIDs returns the earned medal ids, sorted.
func (r Result) MedalIDs() []string {
	ids := make([]string, 0, len(r.EarnedMedalIDs))
	for id := range r.EarnedMedalIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ReaderProvider returns a fresh campaign reader for one resolution.
type ReaderProvider func() *campaign.Reader

// Resolver scans personnel files for a named pilot.
type Resolver struct {
	readers ReaderProvider
	logger  *slog.Logger
}

// NewResolver creates a Resolver. Every Resolve call asks provider for a
// reader, so resolutions do not share a payload cache unless the provider
// hands out the same reader.
func NewResolver(provider ReaderProvider, logger *slog.Logger) *Resolver {
	return &Resolver{
		readers: provider,
		logger:  logging.OrDiscard(logger).With("component", "personnel"),
	}
}

type member struct {
	country string
	medals  []any
}

// Resolve returns the nationality and medals of pilotName in the named
// campaign. Names compare case-folded after trimming and the first
// matching member across the sorted personnel files wins. Blank input or a
// missing Personnel directory yields Default.
func (r *Resolver) Resolve(campaignName, pilotName string) Result {
	wanted := foldName(pilotName)
	campaignName = strings.TrimSpace(campaignName)
	if wanted == "" || campaignName == "" {
		return Default()
	}

	reader := r.readers()
	files, ok := reader.PersonnelFiles(campaignName)
	if !ok {
		r.logger.Warn("Personnel directory not found", "path", reader.PersonnelDir(campaignName))
		return Default()
	}

	repo := batch.New(reader.Loader())
	payloads, stats := repo.LoadMany(files)
	r.logger.Info("Batch personnel read", "requested", stats.Requested, "loaded", stats.Loaded)

	matches := batch.ResolveMany(payloads, func(_ string, payload any) (member, bool) {
		return findMember(payload, wanted)
	})
	if len(matches) == 0 {
		return Default()
	}

	m := matches[0]
	code, label := CanonicalCountry(m.country)
	earned := make(map[string]struct{})
	for _, raw := range m.medals {
		medal, ok := parser.AsObject(raw)
		if !ok {
			continue
		}
		if id, ok := MedalID(medal); ok {
			earned[id] = struct{}{}
		}
	}

	r.logger.Info("Resolved pilot", "country", code, "medals", len(earned))
	return Result{CountryCode: code, DisplayName: label, EarnedMedalIDs: earned}
}

// findMember looks for a member named wanted in one roster payload. Members
// are checked in key order.
func findMember(payload any, wanted string) (member, bool) {
	obj, ok := parser.AsObject(payload)
	if !ok {
		return member{}, false
	}
	coll := obj.Object("squadronMemberCollection")
	keys := make([]string, 0, len(coll))
	for k := range coll {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		m, ok := parser.AsObject(coll[k])
		if !ok {
			continue
		}
		if foldName(m.String("name")) != wanted {
			continue
		}
		return member{country: m.String("country"), medals: m.Array("medals")}, true
	}
	return member{}, false
}

// foldName trims s and applies Unicode case folding, so "STRASSE" and
// "Straße" compare equal.
func foldName(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// MedalID derives the id of a medal entry: the image file stem when an
// image is set, otherwise the lower-cased name with spaces as underscores.
func MedalID(medal parser.Object) (string, bool) {
	if img := strings.TrimSpace(medal.String("medalImage")); img != "" {
		if strings.HasSuffix(strings.ToLower(img), ".png") {
			img = img[:len(img)-len(".png")]
		}
		return img, true
	}
	if name := strings.TrimSpace(medal.String("medalName")); name != "" {
		return strings.ReplaceAll(strings.ToLower(name), " ", "_"), true
	}
	return "", false
}
