package experiment

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/packlab/binpack/internal/problem"
	"github.com/packlab/binpack/internal/search"
)

// RunRecord is the export shape of one run: the full per-iteration
// history is dropped, the assignment is kept so a packing can be
// reconstructed from the file alone.
type RunRecord struct {
	Algorithm   string                   `json:"algorithm"`
	Repeat      int                      `json:"repeat"`
	Seed        int64                    `json:"seed"`
	Bins        int                      `json:"bins"`
	Score       float64                  `json:"score"`
	Iterations  int                      `json:"iterations"`
	Evaluations int                      `json:"evaluations"`
	DurationMS  float64                  `json:"duration_ms"`
	Termination search.TerminationReason `json:"termination"`
	Assignment  map[string]int           `json:"assignment"`
}

// Report is the full JSON export of one experiment.
type Report struct {
	GeneratedAt time.Time   `json:"generated_at"`
	Capacity    float64     `json:"capacity"`
	Items       int         `json:"items"`
	LowerBound  int         `json:"lower_bound"`
	Runs        []RunRecord `json:"runs"`
	Summary     []Stats     `json:"summary"`
}

// NewReport assembles the export view of an experiment.
func NewReport(p *problem.Problem, runs []Run) Report {
	records := make([]RunRecord, len(runs))
	for i, run := range runs {
		records[i] = RunRecord{
			Algorithm:   string(run.Algorithm),
			Repeat:      run.Repeat,
			Seed:        run.Seed,
			Bins:        run.Result.BinsUsed,
			Score:       run.Result.Score,
			Iterations:  run.Result.Iterations,
			Evaluations: run.Result.Evaluations,
			DurationMS:  float64(run.Result.Duration) / float64(time.Millisecond),
			Termination: run.Result.Termination,
			Assignment:  run.Result.Assignment,
		}
	}
	return Report{
		GeneratedAt: time.Now().UTC(),
		Capacity:    p.Capacity,
		Items:       p.Size(),
		LowerBound:  p.LowerBound(),
		Runs:        records,
		Summary:     Summarize(runs),
	}
}

// WriteJSON writes the report as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// WriteCSV writes one row per run.
func (r Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := []string{"algorithm", "repeat", "seed", "bins", "score",
		"iterations", "evaluations", "duration_ms", "termination"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, rec := range r.Runs {
		row := []string{
			rec.Algorithm,
			strconv.Itoa(rec.Repeat),
			strconv.FormatInt(rec.Seed, 10),
			strconv.Itoa(rec.Bins),
			strconv.FormatFloat(rec.Score, 'f', 4, 64),
			strconv.Itoa(rec.Iterations),
			strconv.Itoa(rec.Evaluations),
			strconv.FormatFloat(rec.DurationMS, 'f', 3, 64),
			string(rec.Termination),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
