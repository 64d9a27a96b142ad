package objective

import (
	"math"
	"testing"

	"github.com/packlab/binpack/internal/packing"
	"github.com/packlab/binpack/internal/problem"
)

func newProblem(t *testing.T, capacity float64, weights ...float64) *problem.Problem {
	t.Helper()
	items := make([]problem.Item, len(weights))
	for i, w := range weights {
		items[i] = problem.Item{ID: string(rune('A' + i)), Weight: w}
	}
	p, err := problem.New(capacity, items)
	if err != nil {
		t.Fatalf("failed to build problem: %v", err)
	}
	return p
}

func TestEvaluateEmptyState(t *testing.T) {
	p := newProblem(t, 100)
	st := packing.FirstFit(p, false)
	if got := NewDefault().Evaluate(st); got != 0 {
		t.Fatalf("expected 0 for empty state, got %g", got)
	}
}

func TestEvaluateSingleBin(t *testing.T) {
	p := newProblem(t, 100, 60, 30)
	st := packing.FirstFit(p, false)
	// One bin at load 90: 100*1 - 10*(0.9)^2 = 100 - 8.1.
	want := 100 - 10*0.81
	got := NewDefault().Evaluate(st)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %g, got %g", want, got)
	}
}

func TestFewerBinsScoreLower(t *testing.T) {
	p := newProblem(t, 100, 40, 30, 20)
	eval := NewDefault()
	oneBin := packing.FirstFit(p, false)
	twoBins, ok := oneBin.MoveItem(2, 1)
	if !ok {
		t.Fatalf("expected feasible split")
	}
	if eval.Evaluate(oneBin) >= eval.Evaluate(twoBins) {
		t.Fatalf("one bin should score lower than two: %g vs %g",
			eval.Evaluate(oneBin), eval.Evaluate(twoBins))
	}
}

func TestDensityBreaksTies(t *testing.T) {
	p := newProblem(t, 100, 60, 30, 50, 20)
	eval := NewDefault()

	uneven := packing.Decode(p, []int{0, 1, 2, 3}) // [60 30] [50 20]
	even, ok := uneven.SwapItems(1, 3)             // [60 20] [50 30]
	if !ok {
		t.Fatalf("expected feasible swap")
	}
	if uneven.BinsUsed() != even.BinsUsed() {
		t.Fatalf("bin counts should match")
	}
	// Fills 0.9/0.7 give squared density 1.30; fills 0.8/0.8 give 1.28.
	// Same bin count, so the denser (more uneven) packing scores lower.
	if eval.Evaluate(uneven) >= eval.Evaluate(even) {
		t.Fatalf("denser fill should score lower: %g vs %g",
			eval.Evaluate(uneven), eval.Evaluate(even))
	}
}

func TestWeightsOrdering(t *testing.T) {
	w := DefaultWeights()
	if w.Overload <= w.BinCount || w.BinCount <= w.Density {
		t.Fatalf("weights must keep overload > bin count > density: %+v", w)
	}
}
