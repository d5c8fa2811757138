// Package campaign reads the on-disk layout written by the PWCG campaign
// generator under <root>/User/Campaigns.
package campaign

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"time"

	"github.com/wingmate/wingmate/internal/logging"
	"github.com/wingmate/wingmate/internal/parser"
)

// File and directory names inside a campaign directory.
const (
	DescriptorFile   = "Campaign.json"
	AcesFile         = "CampaignAces.json"
	PersonnelDir     = "Personnel"
	CombatReportsDir = "CombatReports"
	MissionDataDir   = "MissionData"
)

// Loader resolves a path to a parsed JSON value, nil when unavailable.
type Loader interface {
	Load(path string) any
}

// Descriptor is the typed view of Campaign.json.
type Descriptor struct {
	Name          string
	PlayerSerial  string
	SquadronName  string
	ReferenceDate string
	Raw           parser.Object
}

// Reader gives read-only access to the campaigns under one root.
type Reader struct {
	root         string
	campaignsDir string
	loader       Loader
	logger       *slog.Logger
}

// NewReader creates a Reader rooted at root. An empty root means the
// current working directory.
func NewReader(root string, loader Loader, logger *slog.Logger) *Reader {
	if root == "" {
		root = "."
	}
	logger = logging.OrDiscard(logger).With("component", "campaign")
	r := &Reader{
		root:         root,
		campaignsDir: filepath.Join(root, "User", "Campaigns"),
		loader:       loader,
		logger:       logger,
	}
	logger.Debug("Reader initialized", "root", root)
	return r
}

// Root returns the PWCG installation root.
func (r *Reader) Root() string {
	return r.root
}

// Loader returns the loader the reader reads through.
func (r *Reader) Loader() Loader {
	return r.loader
}

// CampaignsDir returns <root>/User/Campaigns.
func (r *Reader) CampaignsDir() string {
	return r.campaignsDir
}

// CampaignDir returns the directory of the named campaign.
func (r *Reader) CampaignDir(name string) string {
	return filepath.Join(r.campaignsDir, name)
}

// MissionDataDir returns the MissionData directory of the named campaign.
func (r *Reader) MissionDataDir(name string) string {
	return filepath.Join(r.CampaignDir(name), MissionDataDir)
}

// PersonnelDir returns the Personnel directory of the named campaign.
func (r *Reader) PersonnelDir(name string) string {
	return filepath.Join(r.CampaignDir(name), PersonnelDir)
}

// ListCampaigns returns the campaign directory names, sorted. A missing
// campaigns directory yields an empty list.
func (r *Reader) ListCampaigns() []string {
	entries, err := os.ReadDir(r.campaignsDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Warn("Campaigns directory not found", "path", r.campaignsDir)
		} else {
			r.logger.Error("Failed to list campaigns", "path", r.campaignsDir, "error", err)
		}
		return []string{}
	}

	campaigns := []string{}
	for _, e := range entries {
		if isDir(r.campaignsDir, e) {
			campaigns = append(campaigns, e.Name())
		}
	}
	sort.Strings(campaigns)
	r.logger.Info("Found campaigns", "count", len(campaigns))
	return campaigns
}

// RawDescriptor returns the Campaign.json object, or an empty object when
// the file is absent or not an object.
func (r *Reader) RawDescriptor(name string) parser.Object {
	obj, ok := parser.AsObject(r.loader.Load(filepath.Join(r.CampaignDir(name), DescriptorFile)))
	if !ok || len(obj) == 0 {
		return parser.Object{}
	}
	r.logger.Debug("Loaded campaign descriptor", "campaign", name)
	return obj
}

// Descriptor returns the typed descriptor. The bool is false when
// Campaign.json is absent or empty.
func (r *Reader) Descriptor(name string) (Descriptor, bool) {
	raw := r.RawDescriptor(name)
	if len(raw) == 0 {
		return Descriptor{}, false
	}
	return Descriptor{
		Name:          name,
		PlayerSerial:  raw.String("referencePlayerSerialNumber"),
		SquadronName:  raw.StringOr("referencePlayerSquadronName", "N/A"),
		ReferenceDate: raw.String("campaignDate"),
		Raw:           raw,
	}, true
}

// Aces returns the campaign ace roster. CampaignAces.json has been written
// as a bare array, as {"aces": [...]} and as {"acesInCampaign": {...}}; the
// map form yields its values ordered by key.
func (r *Reader) Aces(name string) []parser.Object {
	data := r.loader.Load(filepath.Join(r.CampaignDir(name), AcesFile))
	if isEmpty(data) {
		r.logger.Debug("No aces found", "campaign", name)
		return []parser.Object{}
	}

	switch t := data.(type) {
	case []any:
		r.logger.Debug("Loaded aces", "campaign", name, "count", len(t), "format", "list")
		return objects(t)
	case map[string]any:
		obj := parser.Object(t)
		if arr, ok := obj["aces"].([]any); ok {
			r.logger.Debug("Loaded aces", "campaign", name, "count", len(arr), "format", "aces")
			return objects(arr)
		}
		if m := obj.Object("acesInCampaign"); m != nil {
			keys := make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			values := make([]any, 0, len(keys))
			for _, k := range keys {
				values = append(values, m[k])
			}
			r.logger.Debug("Loaded aces", "campaign", name, "count", len(values), "format", "acesInCampaign")
			return objects(values)
		}
	}

	r.logger.Warn("Unrecognized aces format", "campaign", name)
	return []parser.Object{}
}

// Personnel returns the roster file of one squadron, or an empty object.
func (r *Reader) Personnel(name string, squadronID int) parser.Object {
	path := filepath.Join(r.PersonnelDir(name), strconv.Itoa(squadronID)+".json")
	obj, ok := parser.AsObject(r.loader.Load(path))
	if !ok || len(obj) == 0 {
		return parser.Object{}
	}
	r.logger.Debug("Loaded squadron personnel", "campaign", name, "squadron", squadronID)
	return obj
}

// PersonnelFiles lists Personnel/*.json sorted by name. The bool is false
// when the Personnel directory does not exist.
func (r *Reader) PersonnelFiles(name string) ([]string, bool) {
	dir := r.PersonnelDir(name)
	if _, err := os.Stat(dir); err != nil {
		return nil, false
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		r.logger.Error("Failed to list personnel files", "path", dir, "error", err)
		return []string{}, true
	}
	sort.Strings(files)
	return files, true
}

// CombatReports returns the combat reports of one pilot, most recently
// modified first. Reports carry no sequence field, so file mtime is the only
// ordering available.
func (r *Reader) CombatReports(name, serial string) []parser.Object {
	dir := filepath.Join(r.CampaignDir(name), CombatReportsDir, serial)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		r.logger.Debug("Combat reports directory not found", "serial", serial, "path", dir)
		return []parser.Object{}
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		r.logger.Error("Failed to list combat reports", "path", dir, "error", err)
		return []parser.Object{}
	}

	reports := make([]parser.Object, 0, len(matches))
	for _, p := range newestFirst(matches, r.logger) {
		obj, ok := parser.AsObject(r.loader.Load(p))
		if !ok {
			r.logger.Warn("Invalid combat report", "file", filepath.Base(p))
			continue
		}
		reports = append(reports, obj)
	}

	r.logger.Info("Loaded combat reports", "serial", serial, "count", len(reports))
	return reports
}

// NewestFirst orders paths by modification time, newest first, keeping the
// input order among equal times. A file that cannot be stat'ed sorts as
// oldest instead of aborting the listing.
func NewestFirst(paths []string) []string {
	return newestFirst(paths, nil)
}

func newestFirst(paths []string, logger *slog.Logger) []string {
	type stamped struct {
		path string
		mod  time.Time
	}
	s := make([]stamped, len(paths))
	for i, p := range paths {
		s[i].path = p
		info, err := os.Stat(p)
		if err != nil {
			if logger != nil {
				logger.Warn("Could not stat file", "file", filepath.Base(p), "error", err)
			}
			continue
		}
		s[i].mod = info.ModTime()
	}
	slices.SortStableFunc(s, func(a, b stamped) int {
		return b.mod.Compare(a.mod)
	})

	out := make([]string, len(s))
	for i := range s {
		out[i] = s[i].path
	}
	return out
}

func isDir(parent string, e fs.DirEntry) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(parent, e.Name()))
	return err == nil && info.IsDir()
}

// isEmpty reports whether a loaded payload carries nothing to read.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

// objects keeps the object elements of arr.
func objects(arr []any) []parser.Object {
	out := make([]parser.Object, 0, len(arr))
	for _, v := range arr {
		if obj, ok := parser.AsObject(v); ok {
			out = append(out, obj)
		}
	}
	return out
}
