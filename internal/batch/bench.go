package batch

import (
	"time"

	"github.com/wingmate/wingmate/internal/campaign"
)

// BenchResult compares reading a file set one loader per file against one
// batched read per run.
type BenchResult struct {
	Files   int
	Runs    int
	Naive   time.Duration
	Batch   time.Duration
	GainPct float64
}

// Benchmark times both read strategies over files. newLoader must return a
// fresh loader each call so neither side is served from a warm cache.
func Benchmark(files []string, runs int, newLoader func() campaign.Loader) BenchResult {
	res := BenchResult{Files: len(files), Runs: max(runs, 1)}
	if len(files) == 0 {
		return res
	}

	start := time.Now()
	for range res.Runs {
		for _, p := range files {
			newLoader().Load(p)
		}
	}
	res.Naive = time.Since(start)

	start = time.Now()
	for range res.Runs {
		New(newLoader()).LoadMany(files)
	}
	res.Batch = time.Since(start)

	if res.Naive > 0 {
		res.GainPct = float64(res.Naive-res.Batch) / float64(res.Naive) * 100
	}
	return res
}
