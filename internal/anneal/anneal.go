// Package anneal implements simulated annealing with Metropolis
// acceptance and a geometric cooling schedule.
package anneal

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/packlab/binpack/internal/objective"
	"github.com/packlab/binpack/internal/packing"
	"github.com/packlab/binpack/internal/problem"
	"github.com/packlab/binpack/internal/search"
	"github.com/packlab/binpack/pkg/logger"
	"github.com/packlab/binpack/pkg/utils"
)

// Config holds the annealing schedule. Cooling is geometric: after
// IterationsPerTemp steps the temperature is multiplied by CoolingRate
// until it falls below MinTemp or MaxIterations total steps are spent.
type Config struct {
	InitialTemp       float64
	CoolingRate       float64
	MinTemp           float64
	IterationsPerTemp int
	MaxIterations     int
}

// DefaultConfig returns a schedule suited to instances of a few hundred
// items.
func DefaultConfig() Config {
	return Config{
		InitialTemp:       1000,
		CoolingRate:       0.95,
		MinTemp:           0.01,
		IterationsPerTemp: 50,
		MaxIterations:     100000,
	}
}

// Validate checks the schedule before any search starts.
func (c Config) Validate() error {
	if c.InitialTemp <= 0 {
		return fmt.Errorf("%w: initial temperature must be positive, got %g", search.ErrInvalidConfig, c.InitialTemp)
	}
	if c.CoolingRate <= 0 || c.CoolingRate >= 1 {
		return fmt.Errorf("%w: cooling rate must be in (0, 1), got %g", search.ErrInvalidConfig, c.CoolingRate)
	}
	if c.MinTemp <= 0 {
		return fmt.Errorf("%w: minimum temperature must be positive, got %g", search.ErrInvalidConfig, c.MinTemp)
	}
	if c.MinTemp >= c.InitialTemp {
		return fmt.Errorf("%w: minimum temperature %g must be below initial %g", search.ErrInvalidConfig, c.MinTemp, c.InitialTemp)
	}
	if c.IterationsPerTemp <= 0 {
		return fmt.Errorf("%w: iterations per temperature must be positive, got %d", search.ErrInvalidConfig, c.IterationsPerTemp)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: max iterations must be positive, got %d", search.ErrInvalidConfig, c.MaxIterations)
	}
	return nil
}

// Solver runs one annealing schedule. Not safe for concurrent use;
// construct one per run.
type Solver struct {
	cfg  Config
	eval *objective.Evaluator
	rng  *utils.RandSource
}

// New builds a Solver after validating cfg.
func New(cfg Config, eval *objective.Evaluator, rng *utils.RandSource) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Solver{cfg: cfg, eval: eval, rng: rng}, nil
}

func (s *Solver) Name() string {
	return string(search.Annealing)
}

// Solve anneals from a random initial packing, tracking the best state
// ever visited rather than the final one: late high-temperature noise
// must not erase an earlier optimum.
func (s *Solver) Solve(ctx context.Context, p *problem.Problem) (search.Result, error) {
	if p.Size() == 0 {
		return search.EmptyResult(s.Name()), nil
	}

	start := time.Now()
	res := search.Result{Algorithm: s.Name()}

	cur := packing.RandomFit(p, s.rng)
	curScore := s.eval.Evaluate(cur)
	res.Evaluations++

	best, bestScore := cur, curScore
	temp := s.cfg.InitialTemp
	acceptedWorse := 0

	for temp >= s.cfg.MinTemp && res.Iterations < s.cfg.MaxIterations {
		for k := 0; k < s.cfg.IterationsPerTemp && res.Iterations < s.cfg.MaxIterations; k++ {
			if err := search.Cancelled(ctx, s.Name()); err != nil {
				return res, err
			}
			res.Iterations++

			next := packing.RandomNeighbor(cur, s.rng)
			if next == nil {
				continue
			}
			nextScore := s.eval.Evaluate(next)
			res.Evaluations++

			delta := nextScore - curScore
			if delta < 0 {
				cur, curScore = next, nextScore
			} else if s.rng.Float64() < math.Exp(-delta/temp) {
				cur, curScore = next, nextScore
				acceptedWorse++
			}

			if curScore < bestScore {
				best, bestScore = cur, curScore
			}
		}
		res.History = append(res.History, curScore)
		temp *= s.cfg.CoolingRate
	}

	if temp < s.cfg.MinTemp {
		res.Termination = search.TerminationMinTemperature
	} else {
		res.Termination = search.TerminationMaxIterations
	}
	search.Finish(&res, best, bestScore, start)

	logger.Debug("annealing finished",
		zap.String("algorithm", s.Name()),
		zap.Float64("final_temperature", temp),
		zap.Int("accepted_worse", acceptedWorse),
		zap.Int("iterations", res.Iterations),
		zap.Float64("best_score", bestScore))
	return res, nil
}
