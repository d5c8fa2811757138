// Package jsonfile loads JSON documents from disk for the campaign pipeline.
//
// Loads never fail loudly: a missing, unreadable or malformed file yields a
// nil payload and a log record. Payloads are memoized in a bounded LRU keyed
// by the canonical (absolute, symlink-free) path, and legacy files are decoded
// through a UTF-8 → Latin-1 → lossy UTF-8 fallback chain.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"golang.org/x/text/encoding/charmap"

	"github.com/wingmate/wingmate/internal/cache"
	"github.com/wingmate/wingmate/internal/logging"
)

// InstrumentationName names the meter the loader instruments belong to.
const InstrumentationName = "github.com/wingmate/wingmate/internal/jsonfile"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var errTrailingData = errors.New("invalid character after top-level value")

// Options configures a Loader. Zero values select the defaults.
type Options struct {
	Capacity int
	Logger   *slog.Logger
	Meter    metric.Meter
}

// Stats is a point-in-time view of the loader counters.
type Stats struct {
	Hits      int
	Misses    int
	DiskReads int
	Fallbacks int
	Failures  int
	Uncached  int
}

// Loader resolves paths to parsed JSON values.
type Loader struct {
	logger *slog.Logger
	cache  *cache.LRU[string, any]

	hits      cache.SafeCounter
	misses    cache.SafeCounter
	diskReads cache.SafeCounter
	fallbacks cache.SafeCounter
	failures  cache.SafeCounter
	uncached  cache.SafeCounter

	hitCounter      metric.Int64Counter
	missCounter     metric.Int64Counter
	fallbackCounter metric.Int64Counter
}

// New creates a Loader with its own payload cache.
func New(opts Options) *Loader {
	l := &Loader{
		logger: logging.OrDiscard(opts.Logger).With("component", "jsonfile"),
		cache:  cache.NewLRU[string, any](opts.Capacity),
	}

	m := opts.Meter
	if m == nil {
		m = noop.Meter{}
	}
	var err error
	if l.hitCounter, err = m.Int64Counter("wingmate.loader.cache_hits",
		metric.WithDescription("JSON payloads served from cache")); err != nil {
		l.hitCounter = noop.Int64Counter{}
	}
	if l.missCounter, err = m.Int64Counter("wingmate.loader.cache_misses",
		metric.WithDescription("JSON payloads read from disk")); err != nil {
		l.missCounter = noop.Int64Counter{}
	}
	if l.fallbackCounter, err = m.Int64Counter("wingmate.loader.encoding_fallbacks",
		metric.WithDescription("Files decoded with a non-UTF-8 fallback")); err != nil {
		l.fallbackCounter = noop.Int64Counter{}
	}

	return l
}

// Load returns the parsed JSON value at path, or nil when the file is absent
// or cannot be decoded.
func (l *Loader) Load(path string) any {
	if path == "" {
		return nil
	}

	canonical, err := canonicalize(path)
	if err != nil {
		l.logger.Warn("Could not resolve path, loading uncached", "path", path, "error", err)
		l.uncached.Inc()
		return l.readFile(path)
	}

	if v, ok := l.cache.Get(canonical); ok {
		l.hits.Inc()
		l.hitCounter.Add(context.Background(), 1)
		return v
	}

	l.misses.Inc()
	l.missCounter.Add(context.Background(), 1)
	v := l.readFile(canonical)
	l.cache.Put(canonical, v)
	return v
}

// LoadMany applies Load to every path.
func (l *Loader) LoadMany(paths []string) map[string]any {
	out := make(map[string]any, len(paths))
	for _, p := range paths {
		out[p] = l.Load(p)
	}
	return out
}

// Stats returns the loader counters.
func (l *Loader) Stats() Stats {
	return Stats{
		Hits:      l.hits.Value(),
		Misses:    l.misses.Value(),
		DiskReads: l.diskReads.Value(),
		Fallbacks: l.fallbacks.Value(),
		Failures:  l.failures.Value(),
		Uncached:  l.uncached.Value(),
	}
}

// Cached reports how many payloads are memoized.
func (l *Loader) Cached() int {
	return l.cache.Len()
}

// Clear drops every memoized payload.
func (l *Loader) Clear() {
	l.cache.Reset()
}

// canonicalize returns the absolute, symlink-free form of path. A path that
// does not exist at all is returned absolute and cleaned so that its absence
// can be memoized; a dangling symlink or unreadable component is an error.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err == nil {
		return resolved, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		if _, lerr := os.Lstat(abs); errors.Is(lerr, fs.ErrNotExist) {
			return abs, nil
		}
	}
	return "", err
}

func (l *Loader) readFile(path string) any {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Debug("File not found", "path", path)
		} else {
			l.logger.Error("Failed to open file", "path", path, "error", err)
			l.failures.Inc()
		}
		return nil
	}
	l.diskReads.Inc()

	v, err := l.decode(path, data)
	if err != nil {
		l.logger.Error("Failed to decode JSON", "path", path, "error", err)
		l.failures.Inc()
		return nil
	}
	return v
}

// decode tries each text encoding in turn; the first one that parses wins.
func (l *Loader) decode(path string, data []byte) (any, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	name := filepath.Base(path)

	if utf8.Valid(data) {
		v, err := decodeJSON(data)
		if err == nil {
			l.logger.Debug("Loaded JSON as UTF-8", "file", name)
			return v, nil
		}
		l.logger.Debug("UTF-8 decode failed, trying Latin-1", "file", name, "error", err)
	} else {
		l.logger.Debug("File is not valid UTF-8, trying Latin-1", "file", name)
	}

	if text, err := charmap.ISO8859_1.NewDecoder().Bytes(data); err == nil {
		if v, err := decodeJSON(text); err == nil {
			l.logger.Info("Loaded JSON as Latin-1", "file", name)
			l.recordFallback("latin1")
			return v, nil
		}
		l.logger.Debug("Latin-1 decode failed, trying lossy UTF-8", "file", name)
	}

	v, err := decodeJSON([]byte(strings.ToValidUTF8(string(data), "\uFFFD")))
	if err != nil {
		return nil, fmt.Errorf("all encodings failed: %w", err)
	}
	l.logger.Warn("Loaded JSON with replaced characters", "file", name)
	l.recordFallback("utf8-replace")
	return v, nil
}

func (l *Loader) recordFallback(encoding string) {
	l.fallbacks.Inc()
	l.fallbackCounter.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("encoding", encoding)))
}

// decodeJSON parses exactly one JSON value, keeping numbers as json.Number.
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}
	return v, nil
}
