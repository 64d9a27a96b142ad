// Package search defines the contract shared by every solver: the closed
// set of algorithm names, the Solver interface, the Result shape, and the
// reasons a run can terminate.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/packlab/binpack/internal/packing"
	"github.com/packlab/binpack/internal/problem"
)

// ErrInvalidConfig is wrapped by every solver Config.Validate failure, so
// callers can tell a bad configuration from a failed run with errors.Is.
var ErrInvalidConfig = errors.New("invalid config")

// Algorithm identifies one of the supported solvers.
type Algorithm string

const (
	Steepest   Algorithm = "steepest"
	Stochastic Algorithm = "stochastic"
	Sideways   Algorithm = "sideways"
	Restart    Algorithm = "restart"
	Annealing  Algorithm = "sa"
	Genetic    Algorithm = "ga"
)

// All returns every supported algorithm in presentation order.
func All() []Algorithm {
	return []Algorithm{Steepest, Stochastic, Sideways, Restart, Annealing, Genetic}
}

// ParseAlgorithm maps a user-supplied name to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	for _, a := range All() {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown algorithm %q (supported: %v)", s, All())
}

// TerminationReason records why a run stopped. Hitting a budget is a
// normal outcome, not an error.
type TerminationReason string

const (
	// TerminationConverged: the run reached a state it could not improve
	// within its own acceptance rule before any budget ran out.
	TerminationConverged TerminationReason = "converged"
	// TerminationLocalOptimum: no neighbor improves the current state.
	TerminationLocalOptimum TerminationReason = "local_optimum"
	// TerminationMaxSideways: the sideways-move allowance was exhausted
	// on a plateau.
	TerminationMaxSideways TerminationReason = "max_sideways"
	// TerminationRestartBudget: all restarts were consumed.
	TerminationRestartBudget TerminationReason = "restart_budget"
	// TerminationMinTemperature: annealing cooled below its floor.
	TerminationMinTemperature TerminationReason = "min_temperature"
	// TerminationMaxIterations: the hard iteration cap was hit.
	TerminationMaxIterations TerminationReason = "max_iterations"
	// TerminationStagnation: no best-of-run improvement for the
	// configured number of generations.
	TerminationStagnation TerminationReason = "stagnation"
	// TerminationEmptyProblem: the instance has no items, nothing to do.
	TerminationEmptyProblem TerminationReason = "empty_problem"
)

// Result is the outcome of one solver run.
type Result struct {
	Algorithm   string
	Best        *packing.State
	Score       float64
	BinsUsed    int
	Iterations  int
	Evaluations int
	Duration    time.Duration
	Termination TerminationReason
	Assignment  map[string]int
	History     []float64
}

// Solver runs one algorithm against one instance. Implementations are
// single-use safe for one goroutine; construct a fresh Solver per run.
type Solver interface {
	Solve(ctx context.Context, p *problem.Problem) (Result, error)
	Name() string
}

// EmptyResult is the shared trivial outcome for a zero-item instance:
// zero bins, zero score, no iterations performed.
func EmptyResult(algorithm string) Result {
	return Result{
		Algorithm:   algorithm,
		Score:       0,
		BinsUsed:    0,
		Termination: TerminationEmptyProblem,
		Assignment:  map[string]int{},
	}
}

// Finish fills the state-derived fields of a Result and stamps the
// duration since start.
func Finish(r *Result, best *packing.State, score float64, start time.Time) {
	r.Best = best
	r.Score = score
	r.BinsUsed = best.BinsUsed()
	r.Assignment = best.Assignment()
	r.Duration = time.Since(start)
}

// Cancelled reports the context error, if any, wrapped with the solver
// name so experiment logs identify the interrupted run.
func Cancelled(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: run cancelled: %w", name, err)
	}
	return nil
}
