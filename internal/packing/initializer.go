package packing

import (
	"sort"

	"github.com/packlab/binpack/internal/problem"
	"github.com/packlab/binpack/pkg/utils"
)

// Constructive heuristics producing an initial State. Every heuristic is
// total for a validated Problem: each item fits in an empty bin, so a new
// bin is always a legal fallback.

// itemOrder returns item indices in input order, or sorted by decreasing
// weight (ties by index, so the order stays deterministic).
func itemOrder(p *problem.Problem, decreasing bool) []int {
	order := make([]int, p.Size())
	for i := range order {
		order[i] = i
	}
	if decreasing {
		sort.SliceStable(order, func(a, b int) bool {
			return p.Items[order[a]].Weight > p.Items[order[b]].Weight
		})
	}
	return order
}

// FirstFit places each item into the lowest-indexed bin with room,
// opening a new bin when none fits.
func FirstFit(p *problem.Problem, decreasing bool) *State {
	return Decode(p, itemOrder(p, decreasing))
}

// BestFit places each item into the bin it fills tightest, leaving the
// least remaining capacity.
func BestFit(p *problem.Problem, decreasing bool) *State {
	st := newEmpty(p)
	for _, item := range itemOrder(p, decreasing) {
		w := p.Items[item].Weight
		best := -1
		for b := range st.bins {
			if st.loads[b]+w > p.Capacity {
				continue
			}
			if best == -1 || st.loads[b] > st.loads[best] {
				best = b
			}
		}
		if best == -1 {
			best = len(st.bins)
		}
		st.place(item, best)
	}
	return st
}

// WorstFit places each item into the emptiest bin that has room.
func WorstFit(p *problem.Problem, decreasing bool) *State {
	st := newEmpty(p)
	for _, item := range itemOrder(p, decreasing) {
		w := p.Items[item].Weight
		best := -1
		for b := range st.bins {
			if st.loads[b]+w > p.Capacity {
				continue
			}
			if best == -1 || st.loads[b] < st.loads[best] {
				best = b
			}
		}
		if best == -1 {
			best = len(st.bins)
		}
		st.place(item, best)
	}
	return st
}

// NextFit keeps a single open bin: each item goes into the current bin if
// it fits, otherwise the bin is closed and a new one opened.
func NextFit(p *problem.Problem, decreasing bool) *State {
	st := newEmpty(p)
	for _, item := range itemOrder(p, decreasing) {
		w := p.Items[item].Weight
		b := len(st.bins)
		if b > 0 && st.loads[b-1]+w <= p.Capacity {
			b--
		}
		st.place(item, b)
	}
	return st
}

// RandomFit visits items in a random order and places each into a bin
// chosen uniformly among the open bins with room plus a fresh bin. Used
// for diverse restart and population seeding.
func RandomFit(p *problem.Problem, rng *utils.RandSource) *State {
	st := newEmpty(p)
	candidates := make([]int, 0, p.Size())
	for _, item := range rng.Perm(p.Size()) {
		w := p.Items[item].Weight
		candidates = candidates[:0]
		for b := range st.bins {
			if st.loads[b]+w <= p.Capacity {
				candidates = append(candidates, b)
			}
		}
		choice := rng.Intn(len(candidates) + 1)
		if choice == len(candidates) {
			st.place(item, len(st.bins))
		} else {
			st.place(item, candidates[choice])
		}
	}
	return st
}

// Decode builds a State by first-fit over an explicit item permutation.
// It is the constructive decoder for permutation chromosomes and always
// yields a capacity-feasible state.
func Decode(p *problem.Problem, perm []int) *State {
	st := newEmpty(p)
	for _, item := range perm {
		w := p.Items[item].Weight
		b := len(st.bins)
		for cand := range st.bins {
			if st.loads[cand]+w <= p.Capacity {
				b = cand
				break
			}
		}
		st.place(item, b)
	}
	return st
}
