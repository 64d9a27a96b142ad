package experiment

import (
	"time"

	"github.com/packlab/binpack/internal/search"
	"github.com/packlab/binpack/pkg/utils"
)

// Stats aggregates all repeats of one algorithm.
type Stats struct {
	Algorithm    search.Algorithm `json:"algorithm"`
	Runs         int              `json:"runs"`
	BestBins     int              `json:"best_bins"`
	BestScore    float64          `json:"best_score"`
	MeanScore    float64          `json:"mean_score"`
	StdScore     float64          `json:"std_score"`
	MeanDuration time.Duration    `json:"mean_duration_ns"`
}

// Summarize groups runs by algorithm and computes per-algorithm
// aggregates, preserving the order algorithms first appear in.
func Summarize(runs []Run) []Stats {
	var order []search.Algorithm
	grouped := make(map[search.Algorithm][]Run)
	for _, run := range runs {
		if _, ok := grouped[run.Algorithm]; !ok {
			order = append(order, run.Algorithm)
		}
		grouped[run.Algorithm] = append(grouped[run.Algorithm], run)
	}

	out := make([]Stats, 0, len(order))
	for _, alg := range order {
		group := grouped[alg]
		scores := make([]float64, len(group))
		var totalDuration time.Duration
		best := group[0]
		for i, run := range group {
			scores[i] = run.Result.Score
			totalDuration += run.Result.Duration
			if run.Result.Score < best.Result.Score {
				best = run
			}
		}
		out = append(out, Stats{
			Algorithm:    alg,
			Runs:         len(group),
			BestBins:     best.Result.BinsUsed,
			BestScore:    best.Result.Score,
			MeanScore:    utils.Mean(scores),
			StdScore:     utils.StdDev(scores),
			MeanDuration: totalDuration / time.Duration(len(group)),
		})
	}
	return out
}
