package batch

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wingmate/wingmate/internal/campaign"
	"github.com/wingmate/wingmate/internal/jsonfile"
)

func TestBenchmark_ReportsMetrics(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for i := range 30 {
		p := filepath.Join(dir, strconv.Itoa(i)+".json")
		require.NoError(t, os.WriteFile(p, []byte(`{"squadronMemberCollection":{"p1":{"name":"Pilot"}}}`), 0644))
		files = append(files, p)
	}

	loaders := 0
	res := Benchmark(files, 2, func() campaign.Loader {
		loaders++
		return jsonfile.New(jsonfile.Options{})
	})

	assert.Equal(t, 30, res.Files)
	assert.Equal(t, 2, res.Runs)
	assert.Equal(t, 2*30+2, loaders)
	assert.GreaterOrEqual(t, res.Naive.Nanoseconds(), int64(0))
	assert.GreaterOrEqual(t, res.Batch.Nanoseconds(), int64(0))
	assert.LessOrEqual(t, res.GainPct, 100.0)
}

func TestBenchmark_NoFiles(t *testing.T) {
	res := Benchmark(nil, 0, func() campaign.Loader {
		t.Fatal("no loader expected")
		return nil
	})
	assert.Equal(t, BenchResult{Runs: 1}, res)
}
