// Package hillclimb implements four local search variants over the shared
// move neighborhood: steepest ascent, stochastic first-improvement,
// steepest with a sideways-move allowance, and random-restart.
package hillclimb

import (
	"context"
	"time"

	"github.com/packlab/binpack/internal/objective"
	"github.com/packlab/binpack/internal/packing"
	"github.com/packlab/binpack/internal/problem"
	"github.com/packlab/binpack/internal/search"
	"github.com/packlab/binpack/pkg/utils"
)

// scoreEps bounds float comparison when deciding whether a neighbor
// improves, equals, or worsens the current score.
const scoreEps = 1e-9

// Solver is a single-run hill climber. The stochastic and restart
// variants draw from rng; steepest and sideways never touch it, so their
// runs are fully deterministic.
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
	return string(s.cfg.Variant)
}

// Solve runs the configured variant to termination.
func (s *Solver) Solve(ctx context.Context, p *problem.Problem) (search.Result, error) {
	if p.Size() == 0 {
		return search.EmptyResult(s.Name()), nil
	}
	if s.cfg.Variant == search.Restart {
		return s.solveRestart(ctx, p)
	}

	start := time.Now()
	res := search.Result{Algorithm: s.Name()}
	st := packing.FirstFit(p, false)

	best, score, reason, err := s.climb(ctx, st, &res)
	if err != nil {
		return res, err
	}
	res.Termination = reason
	search.Finish(&res, best, score, start)
	return res, nil
}

// solveRestart repeats steepest climbs from random starting packings and
// keeps the best outcome across all restarts.
func (s *Solver) solveRestart(ctx context.Context, p *problem.Problem) (search.Result, error) {
	start := time.Now()
	res := search.Result{Algorithm: s.Name()}

	var best *packing.State
	bestScore := 0.0
	for r := 0; r < s.cfg.Restarts; r++ {
		st := packing.RandomFit(p, s.rng)
		cand, score, _, err := s.climb(ctx, st, &res)
		if err != nil {
			return res, err
		}
		if best == nil || score < bestScore-scoreEps {
			best, bestScore = cand, score
		}
	}

	res.Termination = search.TerminationRestartBudget
	search.Finish(&res, best, bestScore, start)
	return res, nil
}

// climb runs one local search from st, accumulating iteration and
// evaluation counts plus the score history into res. It returns the final
// state, its score, and the reason the climb stopped.
func (s *Solver) climb(ctx context.Context, st *packing.State, res *search.Result) (*packing.State, float64, search.TerminationReason, error) {
	cur := st
	curScore := s.eval.Evaluate(cur)
	res.Evaluations++
	res.History = append(res.History, curScore)

	sideways := 0
	for iter := 0; iter < s.cfg.MaxIterations; iter++ {
		if err := search.Cancelled(ctx, s.Name()); err != nil {
			return cur, curScore, search.TerminationMaxIterations, err
		}

		neighbors := packing.Neighbors(cur)
		if len(neighbors) == 0 {
			return cur, curScore, search.TerminationLocalOptimum, nil
		}

		var next *packing.State
		var nextScore float64
		switch s.cfg.Variant {
		case search.Stochastic:
			next, nextScore = s.firstImprovement(neighbors, curScore, res)
		default:
			next, nextScore = s.bestNeighbor(neighbors, res)
		}

		if next == nil {
			// only the stochastic scan reports exhaustion this way
			return cur, curScore, search.TerminationConverged, nil
		}

		switch {
		case nextScore < curScore-scoreEps:
			sideways = 0
		case s.cfg.Variant == search.Sideways && nextScore <= curScore+scoreEps:
			if sideways >= s.cfg.MaxSideways {
				return cur, curScore, search.TerminationMaxSideways, nil
			}
			sideways++
		default:
			return cur, curScore, search.TerminationLocalOptimum, nil
		}

		cur, curScore = next, nextScore
		res.Iterations++
		res.History = append(res.History, curScore)
	}
	return cur, curScore, search.TerminationMaxIterations, nil
}

// bestNeighbor evaluates every neighbor and returns the lowest-scoring
// one, first in enumeration order on ties.
func (s *Solver) bestNeighbor(neighbors []*packing.State, res *search.Result) (*packing.State, float64) {
	best := neighbors[0]
	bestScore := s.eval.Evaluate(best)
	res.Evaluations++
	for _, n := range neighbors[1:] {
		score := s.eval.Evaluate(n)
		res.Evaluations++
		if score < bestScore-scoreEps {
			best, bestScore = n, score
		}
	}
	return best, bestScore
}

// firstImprovement scans neighbors in a random order and returns the
// first one that strictly improves on curScore, or nil when none does.
func (s *Solver) firstImprovement(neighbors []*packing.State, curScore float64, res *search.Result) (*packing.State, float64) {
	for _, i := range s.rng.Perm(len(neighbors)) {
		score := s.eval.Evaluate(neighbors[i])
		res.Evaluations++
		if score < curScore-scoreEps {
			return neighbors[i], score
		}
	}
	return nil, 0
}
