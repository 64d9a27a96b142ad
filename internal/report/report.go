// Package report renders packings and experiment summaries as plain text
// for the CLI.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/packlab/binpack/internal/experiment"
	"github.com/packlab/binpack/internal/packing"
	"github.com/packlab/binpack/pkg/utils"
)

// barWidth is the character width of a fully loaded bin.
const barWidth = 20

// RenderState writes one bar per bin, proportionally filled, with the
// item ids and the load percentage.
func RenderState(w io.Writer, st *packing.State) error {
	p := st.Problem()
	if st.BinsUsed() == 0 {
		_, err := fmt.Fprintln(w, "no items, no bins")
		return err
	}

	for b := 0; b < st.BinsUsed(); b++ {
		load := st.Load(b)
		fill := load / p.Capacity
		filled := int(fill*barWidth + 0.5)
		if filled > barWidth {
			filled = barWidth
		}
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

		ids := make([]string, 0, len(st.Items(b)))
		for _, item := range st.Items(b) {
			ids = append(ids, p.Items[item].ID)
		}

		_, err := fmt.Fprintf(w, "bin %2d [%s] %5.1f%%  (%g/%g)  %s\n",
			b+1, bar, fill*100, load, p.Capacity, strings.Join(ids, ", "))
		if err != nil {
			return err
		}
	}
	return nil
}

// RenderSummary writes the per-algorithm comparison table.
func RenderSummary(w io.Writer, stats []experiment.Stats) error {
	if len(stats) == 0 {
		_, err := fmt.Fprintln(w, "no runs")
		return err
	}

	_, err := fmt.Fprintf(w, "%-12s %5s %6s %12s %12s %12s %12s\n",
		"algorithm", "runs", "bins", "best", "mean", "std", "mean time")
	if err != nil {
		return err
	}
	for _, s := range stats {
		_, err := fmt.Fprintf(w, "%-12s %5d %6d %12.2f %12.2f %12.2f %12s\n",
			s.Algorithm, s.Runs, s.BestBins, s.BestScore, s.MeanScore,
			s.StdScore, utils.FormatDuration(s.MeanDuration))
		if err != nil {
			return err
		}
	}
	return nil
}
