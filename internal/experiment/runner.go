// Package experiment runs batches of solver runs across algorithms and
// repeats, aggregates per-algorithm statistics, and exports the results.
package experiment

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/packlab/binpack/internal/anneal"
	"github.com/packlab/binpack/internal/genetic"
	"github.com/packlab/binpack/internal/hillclimb"
	"github.com/packlab/binpack/internal/objective"
	"github.com/packlab/binpack/internal/problem"
	"github.com/packlab/binpack/internal/search"
	"github.com/packlab/binpack/pkg/logger"
	"github.com/packlab/binpack/pkg/utils"
)

// Spec describes one experiment: which algorithms to run, how many
// repeats of each, the base seed, and how many runs may execute at once.
// Run i (in algorithm-major order) gets seed Seed+i, so a whole
// experiment is reproducible from a single number.
type Spec struct {
	Algorithms  []search.Algorithm
	Repeats     int
	Seed        int64
	Parallelism int

	HillClimb hillclimb.Config
	Annealing anneal.Config
	Genetic   genetic.Config
}

// DefaultSpec runs every algorithm once with default settings.
func DefaultSpec() Spec {
	return Spec{
		Algorithms:  search.All(),
		Repeats:     1,
		Seed:        1,
		Parallelism: runtime.NumCPU(),
		HillClimb:   hillclimb.DefaultConfig(search.Steepest),
		Annealing:   anneal.DefaultConfig(),
		Genetic:     genetic.DefaultConfig(),
	}
}

// Validate checks the spec, including the config of every requested
// algorithm.
func (s Spec) Validate() error {
	if len(s.Algorithms) == 0 {
		return fmt.Errorf("%w: no algorithms selected", search.ErrInvalidConfig)
	}
	if s.Repeats <= 0 {
		return fmt.Errorf("%w: repeats must be positive, got %d", search.ErrInvalidConfig, s.Repeats)
	}
	if s.Parallelism <= 0 {
		return fmt.Errorf("%w: parallelism must be positive, got %d", search.ErrInvalidConfig, s.Parallelism)
	}
	for _, a := range s.Algorithms {
		switch a {
		case search.Steepest, search.Stochastic, search.Sideways, search.Restart:
			cfg := s.HillClimb
			cfg.Variant = a
			if err := cfg.Validate(); err != nil {
				return err
			}
		case search.Annealing:
			if err := s.Annealing.Validate(); err != nil {
				return err
			}
		case search.Genetic:
			if err := s.Genetic.Validate(); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: unknown algorithm %q", search.ErrInvalidConfig, a)
		}
	}
	return nil
}

// Run is the outcome of one (algorithm, repeat) pair.
type Run struct {
	Algorithm search.Algorithm
	Repeat    int
	Seed      int64
	Result    search.Result
}

// Runner executes a Spec against one instance.
type Runner struct {
	spec Spec
	eval *objective.Evaluator
}

// NewRunner builds a Runner after validating spec.
func NewRunner(spec Spec) (*Runner, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &Runner{spec: spec, eval: objective.NewDefault()}, nil
}

// Run executes every (algorithm, repeat) pair. Runs are independent: each
// gets its own solver and random source and shares only the immutable
// Problem, so they execute concurrently up to Parallelism. Results come
// back in algorithm-major order regardless of completion order.
func (r *Runner) Run(ctx context.Context, p *problem.Problem) ([]Run, error) {
	total := len(r.spec.Algorithms) * r.spec.Repeats
	runs := make([]Run, total)
	errs := make([]error, total)

	workers := pool.New().WithMaxGoroutines(r.spec.Parallelism)
	for ai, alg := range r.spec.Algorithms {
		for rep := 0; rep < r.spec.Repeats; rep++ {
			alg, rep := alg, rep
			i := ai*r.spec.Repeats + rep
			seed := r.spec.Seed + int64(i)

			workers.Go(func() {
				solver, err := r.newSolver(alg, seed)
				if err != nil {
					errs[i] = err
					return
				}
				result, err := solver.Solve(ctx, p)
				if err != nil {
					errs[i] = err
					return
				}
				runs[i] = Run{Algorithm: alg, Repeat: rep, Seed: seed, Result: result}
				logger.Info("run finished",
					zap.String("algorithm", string(alg)),
					zap.Int("repeat", rep),
					zap.Int64("seed", seed),
					zap.Int("bins", result.BinsUsed),
					zap.Float64("score", result.Score),
					zap.String("termination", string(result.Termination)),
					zap.Duration("duration", result.Duration))
			})
		}
	}
	workers.Wait()

	for _, err := range errs {
		if err != nil {
			return runs, err
		}
	}
	return runs, nil
}

// newSolver builds a fresh solver for one run; each run owns its random
// source.
func (r *Runner) newSolver(alg search.Algorithm, seed int64) (search.Solver, error) {
	rng := utils.NewRandSource(seed)
	switch alg {
	case search.Steepest, search.Stochastic, search.Sideways, search.Restart:
		cfg := r.spec.HillClimb
		cfg.Variant = alg
		return hillclimb.New(cfg, r.eval, rng)
	case search.Annealing:
		return anneal.New(r.spec.Annealing, r.eval, rng)
	case search.Genetic:
		return genetic.New(r.spec.Genetic, r.eval, rng)
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %q", search.ErrInvalidConfig, alg)
	}
}

// BestRun returns the run with the lowest score, breaking ties toward the
// earlier run. It returns false for an empty slice.
func BestRun(runs []Run) (Run, bool) {
	if len(runs) == 0 {
		return Run{}, false
	}
	best := runs[0]
	for _, run := range runs[1:] {
		if run.Result.Score < best.Result.Score {
			best = run
		}
	}
	return best, true
}
