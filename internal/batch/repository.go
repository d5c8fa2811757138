// Package batch loads sets of JSON files in one call and filters the
// loaded payloads through a resolver.
package batch

import "github.com/wingmate/wingmate/internal/campaign"

// Stats counts one LoadMany call.
type Stats struct {
	Requested int `json:"requested"`
	Loaded    int `json:"loaded"`
}

// Entry is one loaded path. Payload is nil when the file could not be loaded.
type Entry struct {
	Path    string
	Payload any
}

// Payloads holds LoadMany results in request order.
type Payloads []Entry

// Get returns the payload loaded for path.
func (p Payloads) Get(path string) (any, bool) {
	for _, e := range p {
		if e.Path == path {
			return e.Payload, true
		}
	}
	return nil, false
}

// Repository loads files through a shared loader.
type Repository struct {
	loader campaign.Loader
}

// New creates a Repository on top of loader.
func New(loader campaign.Loader) *Repository {
	return &Repository{loader: loader}
}

// LoadMany loads every path. A path requested twice appears once, at its
// first position.
func (r *Repository) LoadMany(paths []string) (Payloads, Stats) {
	out := make(Payloads, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))
	stats := Stats{Requested: len(paths)}

	for _, p := range paths {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		v := r.loader.Load(p)
		out = append(out, Entry{Path: p, Payload: v})
	}
	for _, e := range out {
		if e.Payload != nil {
			stats.Loaded++
		}
	}
	return out, stats
}

// ResolveMany applies fn to every loaded payload, in order, and keeps the
// results fn accepts.
func ResolveMany[T any](p Payloads, fn func(path string, payload any) (T, bool)) []T {
	var out []T
	for _, e := range p {
		if e.Payload == nil {
			continue
		}
		if v, ok := fn(e.Path, e.Payload); ok {
			out = append(out, v)
		}
	}
	return out
}
