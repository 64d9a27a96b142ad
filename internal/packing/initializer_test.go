package packing

import (
	"testing"

	"github.com/packlab/binpack/pkg/utils"
)

func TestFirstFit(t *testing.T) {
	p := newProblem(t, 100, 60, 50, 40)
	st := FirstFit(p, false)
	if err := st.Validate(); err != nil {
		t.Fatalf("invalid state: %v", err)
	}
	// A opens bin 0, B does not fit there, C joins A.
	if st.BinsUsed() != 2 {
		t.Fatalf("expected 2 bins, got %d", st.BinsUsed())
	}
	if st.Load(0) != 100 || st.Load(1) != 50 {
		t.Fatalf("unexpected loads: %g, %g", st.Load(0), st.Load(1))
	}
}

func TestFirstFitDecreasing(t *testing.T) {
	p := newProblem(t, 100, 30, 70, 60, 40)
	st := FirstFit(p, true)
	if err := st.Validate(); err != nil {
		t.Fatalf("invalid state: %v", err)
	}
	// Sorted order 70 60 40 30: [70 30] [60 40].
	if st.BinsUsed() != 2 {
		t.Fatalf("expected 2 bins, got %d", st.BinsUsed())
	}
	if st.Load(0) != 100 || st.Load(1) != 100 {
		t.Fatalf("unexpected loads: %g, %g", st.Load(0), st.Load(1))
	}
}

func TestBestFit(t *testing.T) {
	p := newProblem(t, 100, 70, 40, 25)
	st := BestFit(p, false)
	if err := st.Validate(); err != nil {
		t.Fatalf("invalid state: %v", err)
	}
	// 70 opens bin 0, 40 opens bin 1, 25 prefers the fuller bin 0.
	if st.BinsUsed() != 2 {
		t.Fatalf("expected 2 bins, got %d", st.BinsUsed())
	}
	if st.Load(0) != 95 || st.Load(1) != 40 {
		t.Fatalf("unexpected loads: %g, %g", st.Load(0), st.Load(1))
	}
}

func TestWorstFit(t *testing.T) {
	p := newProblem(t, 100, 70, 40, 25)
	st := WorstFit(p, false)
	if err := st.Validate(); err != nil {
		t.Fatalf("invalid state: %v", err)
	}
	// 25 goes to the emptier bin 1 instead.
	if st.Load(0) != 70 || st.Load(1) != 65 {
		t.Fatalf("unexpected loads: %g, %g", st.Load(0), st.Load(1))
	}
}

func TestNextFit(t *testing.T) {
	p := newProblem(t, 100, 60, 50, 30)
	st := NextFit(p, false)
	if err := st.Validate(); err != nil {
		t.Fatalf("invalid state: %v", err)
	}
	// 60 opens bin 0, 50 does not fit and opens bin 1, 30 joins 50.
	// Next fit never revisits bin 0, unlike first fit.
	if st.BinsUsed() != 2 {
		t.Fatalf("expected 2 bins, got %d", st.BinsUsed())
	}
	if st.Load(0) != 60 || st.Load(1) != 80 {
		t.Fatalf("unexpected loads: %g, %g", st.Load(0), st.Load(1))
	}
}

func TestRandomFit(t *testing.T) {
	p := newProblem(t, 100, 40, 30, 20, 50, 10, 60)
	st := RandomFit(p, utils.NewRandSource(42))
	if err := st.Validate(); err != nil {
		t.Fatalf("invalid state: %v", err)
	}
}

func TestRandomFitReproducible(t *testing.T) {
	p := newProblem(t, 100, 40, 30, 20, 50, 10, 60)
	a := RandomFit(p, utils.NewRandSource(7))
	b := RandomFit(p, utils.NewRandSource(7))
	gotA, gotB := a.Assignment(), b.Assignment()
	for id, bin := range gotA {
		if gotB[id] != bin {
			t.Fatalf("assignments differ across equal seeds: %v vs %v", gotA, gotB)
		}
	}
}

func TestDecode(t *testing.T) {
	p := newProblem(t, 100, 60, 50, 40)
	st := Decode(p, []int{1, 0, 2})
	if err := st.Validate(); err != nil {
		t.Fatalf("invalid state: %v", err)
	}
	// Order B A C: B opens bin 0, A opens bin 1, C joins B.
	if st.BinsUsed() != 2 {
		t.Fatalf("expected 2 bins, got %d", st.BinsUsed())
	}
	if st.Load(0) != 90 || st.Load(1) != 60 {
		t.Fatalf("unexpected loads: %g, %g", st.Load(0), st.Load(1))
	}
}

func TestInitializersOnUniformItems(t *testing.T) {
	weights := make([]float64, 10)
	for i := range weights {
		weights[i] = 10
	}
	p := newProblem(t, 100, weights...)

	states := map[string]*State{
		"first": FirstFit(p, false),
		"best":  BestFit(p, true),
		"worst": WorstFit(p, false),
	}
	for name, st := range states {
		if err := st.Validate(); err != nil {
			t.Fatalf("%s: invalid state: %v", name, err)
		}
		if st.BinsUsed() != 1 {
			t.Fatalf("%s: expected 1 bin, got %d", name, st.BinsUsed())
		}
	}
}
