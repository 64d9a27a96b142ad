package anneal

import (
	"context"
	"errors"
	"testing"

	"github.com/packlab/binpack/internal/objective"
	"github.com/packlab/binpack/internal/problem"
	"github.com/packlab/binpack/internal/search"
	"github.com/packlab/binpack/pkg/utils"
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

func newSolver(t *testing.T, cfg Config, seed int64) *Solver {
	t.Helper()
	s, err := New(cfg, objective.NewDefault(), utils.NewRandSource(seed))
	if err != nil {
		t.Fatalf("failed to build solver: %v", err)
	}
	return s
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero initial temp", func(c *Config) { c.InitialTemp = 0 }},
		{"cooling rate one", func(c *Config) { c.CoolingRate = 1 }},
		{"cooling rate zero", func(c *Config) { c.CoolingRate = 0 }},
		{"zero min temp", func(c *Config) { c.MinTemp = 0 }},
		{"min above initial", func(c *Config) { c.MinTemp = 2000 }},
		{"zero iterations per temp", func(c *Config) { c.IterationsPerTemp = 0 }},
		{"zero max iterations", func(c *Config) { c.MaxIterations = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, search.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestSolveFindsSingleBin(t *testing.T) {
	weights := make([]float64, 10)
	for i := range weights {
		weights[i] = 10
	}
	p := newProblem(t, 100, weights...)

	cfg := DefaultConfig()
	cfg.MaxIterations = 20000
	res, err := newSolver(t, cfg, 42).Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.BinsUsed != 1 {
		t.Fatalf("expected 1 bin, got %d", res.BinsUsed)
	}
	if err := res.Best.Validate(); err != nil {
		t.Fatalf("best state invalid: %v", err)
	}
}

func TestBestNeverWorseThanVisited(t *testing.T) {
	p := newProblem(t, 100, 48, 30, 19, 36, 36, 27, 42, 42, 36, 24, 30)
	cfg := DefaultConfig()
	cfg.MaxIterations = 2000
	res, err := newSolver(t, cfg, 7).Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, score := range res.History {
		if score < res.Score-1e-9 {
			t.Fatalf("history entry %d scored %g, better than reported best %g", i, score, res.Score)
		}
	}
}

func TestReproducible(t *testing.T) {
	p := newProblem(t, 100, 48, 30, 19, 36, 36, 27, 42, 42, 36, 24)
	cfg := DefaultConfig()
	cfg.MaxIterations = 2000
	a, err := newSolver(t, cfg, 11).Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := newSolver(t, cfg, 11).Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Score != b.Score || a.BinsUsed != b.BinsUsed || a.Iterations != b.Iterations {
		t.Fatalf("equal seeds should reproduce the run: %+v vs %+v", a, b)
	}
}

func TestTermination(t *testing.T) {
	p := newProblem(t, 100, 40, 30, 20)

	cfg := DefaultConfig()
	cfg.MaxIterations = 10
	res, err := newSolver(t, cfg, 1).Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Termination != search.TerminationMaxIterations {
		t.Fatalf("expected max_iterations, got %s", res.Termination)
	}
	if res.Iterations != 10 {
		t.Fatalf("expected 10 iterations, got %d", res.Iterations)
	}

	cfg = DefaultConfig()
	cfg.MaxIterations = 1000000
	cfg.IterationsPerTemp = 1
	cfg.CoolingRate = 0.5
	cfg.MinTemp = 100
	cfg.InitialTemp = 200
	res, err = newSolver(t, cfg, 1).Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Termination != search.TerminationMinTemperature {
		t.Fatalf("expected min_temperature, got %s", res.Termination)
	}
}

func TestEmptyProblem(t *testing.T) {
	p := newProblem(t, 100)
	res, err := newSolver(t, DefaultConfig(), 1).Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Termination != search.TerminationEmptyProblem || res.BinsUsed != 0 {
		t.Fatalf("expected trivial result, got %+v", res)
	}
}
