package packing

import (
	"github.com/packlab/binpack/pkg/utils"
)

// randomNeighborAttempts bounds the rejection sampling in RandomNeighbor
// before giving up on a tightly packed state.
const randomNeighborAttempts = 50

// moveProbability splits RandomNeighbor between relocations and swaps.
const moveProbability = 0.8

// Neighbors enumerates every feasible neighbor of st in deterministic
// order: all single-item relocations (including into a fresh bin) followed
// by all cross-bin swaps. Infeasible and no-op candidates are filtered out
// before any state is materialized.
func Neighbors(st *State) []*State {
	n := st.problem.Size()
	var out []*State
	for item := 0; item < n; item++ {
		for to := 0; to <= st.BinsUsed(); to++ {
			if next, ok := st.MoveItem(item, to); ok {
				out = append(out, next)
			}
		}
	}
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			if next, ok := st.SwapItems(a, b); ok {
				out = append(out, next)
			}
		}
	}
	return out
}

// RandomNeighbor draws a single random neighbor: a relocation of a random
// item to a random bin with probability moveProbability, otherwise a swap
// of two random items. Returns nil when no feasible candidate is found
// within the attempt budget, which only happens for degenerate states.
func RandomNeighbor(st *State, rng *utils.RandSource) *State {
	n := st.problem.Size()
	if n < 2 {
		return nil
	}
	for attempt := 0; attempt < randomNeighborAttempts; attempt++ {
		if rng.Float64() < moveProbability {
			item := rng.Intn(n)
			to := rng.Intn(st.BinsUsed() + 1)
			if next, ok := st.MoveItem(item, to); ok {
				return next
			}
		} else {
			a := rng.Intn(n)
			b := rng.Intn(n)
			if next, ok := st.SwapItems(a, b); ok {
				return next
			}
		}
	}
	return nil
}
