// Package objective scores packed states. Lower is better: the score is a
// weighted sum dominated by capacity violations, then by the number of
// bins, with a density reward breaking ties between equal bin counts in
// favor of tightly filled bins.
package objective

import (
	"github.com/packlab/binpack/internal/packing"
)

// Weights are the score component multipliers. The defaults keep the
// components on separate orders of magnitude so that no density reward can
// ever outweigh saving a bin, and no bin saving can excuse an overload.
type Weights struct {
	Overload float64
	BinCount float64
	Density  float64
}

// DefaultWeights returns the standard component multipliers.
func DefaultWeights() Weights {
	return Weights{Overload: 10000, BinCount: 100, Density: 10}
}

// Evaluator computes the minimization score of a State. It is stateless
// and safe for concurrent use.
type Evaluator struct {
	weights Weights
}

// New returns an Evaluator with the given weights.
func New(weights Weights) *Evaluator {
	return &Evaluator{weights: weights}
}

// NewDefault returns an Evaluator with DefaultWeights.
func NewDefault() *Evaluator {
	return New(DefaultWeights())
}

// Evaluate scores st. The empty state scores zero. States produced by the
// packing moves are always capacity-feasible, so the overload term is a
// guard that only fires on hand-built states.
func (e *Evaluator) Evaluate(st *packing.State) float64 {
	bins := st.BinsUsed()
	if bins == 0 {
		return 0
	}

	capacity := st.Problem().Capacity
	overload := 0.0
	density := 0.0
	for b := 0; b < bins; b++ {
		load := st.Load(b)
		if excess := load - capacity; excess > 0 {
			overload += excess * excess
		}
		fill := load / capacity
		density += fill * fill
	}

	return e.weights.Overload*overload + e.weights.BinCount*float64(bins) - e.weights.Density*density
}
