package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wingmate/wingmate/internal/jsonfile"
	"github.com/wingmate/wingmate/internal/parser"
)

// countingLoader records every path it is asked for.
type countingLoader struct {
	data  map[string]any
	calls []string
}

func (l *countingLoader) Load(path string) any {
	l.calls = append(l.calls, path)
	return l.data[path]
}

func TestLoadMany_Stats(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	require.NoError(t, os.WriteFile(a, []byte(`{"id":1}`), 0644))
	require.NoError(t, os.WriteFile(b, []byte(`{"id":2}`), 0644))
	missing := filepath.Join(dir, "missing.json")

	repo := New(jsonfile.New(jsonfile.Options{}))
	payloads, stats := repo.LoadMany([]string{a, b, missing})

	assert.Equal(t, Stats{Requested: 3, Loaded: 2}, stats)
	require.Len(t, payloads, 3)

	v, ok := payloads.Get(missing)
	assert.True(t, ok)
	assert.Nil(t, v)

	_, ok = payloads.Get(filepath.Join(dir, "never-requested.json"))
	assert.False(t, ok)
}

func TestLoadMany_PreservesOrderAndDedupes(t *testing.T) {
	l := &countingLoader{data: map[string]any{"x": 1, "y": 2, "z": 3}}
	payloads, stats := New(l).LoadMany([]string{"z", "x", "z", "y"})

	var paths []string
	for _, e := range payloads {
		paths = append(paths, e.Path)
	}
	if diff := cmp.Diff([]string{"z", "x", "y"}, paths); diff != "" {
		t.Errorf("payload order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"z", "x", "y"}, l.calls)
	assert.Equal(t, Stats{Requested: 4, Loaded: 3}, stats)
}

func TestLoadMany_Empty(t *testing.T) {
	payloads, stats := New(&countingLoader{}).LoadMany(nil)
	assert.Empty(t, payloads)
	assert.Equal(t, Stats{}, stats)
}

func TestResolveMany(t *testing.T) {
	payloads := Payloads{
		{Path: "1.json", Payload: map[string]any{"name": "Voss"}},
		{Path: "2.json", Payload: nil},
		{Path: "3.json", Payload: []any{"not an object"}},
		{Path: "4.json", Payload: map[string]any{"name": "Udet"}},
	}

	var visited []string
	names := ResolveMany(payloads, func(path string, payload any) (string, bool) {
		visited = append(visited, path)
		obj, ok := parser.AsObject(payload)
		if !ok {
			return "", false
		}
		return obj.String("name"), true
	})

	assert.Equal(t, []string{"Voss", "Udet"}, names)
	assert.Equal(t, []string{"1.json", "3.json", "4.json"}, visited, "nil payloads never reach the resolver")
}

func TestResolveMany_NoMatches(t *testing.T) {
	got := ResolveMany(Payloads{{Path: "a", Payload: 1}}, func(string, any) (int, bool) {
		return 0, false
	})
	assert.Empty(t, got)
}
