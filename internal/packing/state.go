package packing

import (
	"fmt"

	"github.com/packlab/binpack/internal/problem"
)

// State is one complete assignment of every item to a bin. Bins hold item
// indices into the problem's item list; per-bin loads are cached alongside.
// A State is never mutated in place: MoveItem and SwapItems return fresh
// copies, so solvers can hold references to earlier states safely.
//
// Invariants maintained by every constructor and move:
//   - each item index appears in exactly one bin
//   - every bin load is within the problem capacity
//   - bin indices are contiguous, no bin is empty
type State struct {
	problem *problem.Problem
	bins    [][]int
	loads   []float64
	binOf   []int
}

// newEmpty returns a State with no bins, ready for items to be placed.
func newEmpty(p *problem.Problem) *State {
	return &State{
		problem: p,
		bins:    nil,
		loads:   nil,
		binOf:   make([]int, p.Size()),
	}
}

// place appends item to bin b, opening a new bin when b equals the current
// bin count. Construction-time helper; callers guarantee feasibility.
func (s *State) place(item, b int) {
	if b == len(s.bins) {
		s.bins = append(s.bins, nil)
		s.loads = append(s.loads, 0)
	}
	s.bins[b] = append(s.bins[b], item)
	s.loads[b] += s.problem.Items[item].Weight
	s.binOf[item] = b
}

// Problem returns the instance this state packs.
func (s *State) Problem() *problem.Problem {
	return s.problem
}

// BinsUsed returns the number of open bins.
func (s *State) BinsUsed() int {
	return len(s.bins)
}

// Load returns the total weight in bin b.
func (s *State) Load(b int) float64 {
	return s.loads[b]
}

// Remaining returns the free capacity of bin b.
func (s *State) Remaining(b int) float64 {
	return s.problem.Capacity - s.loads[b]
}

// BinOf returns the bin index holding item.
func (s *State) BinOf(item int) int {
	return s.binOf[item]
}

// Items returns a copy of the item indices in bin b.
func (s *State) Items(b int) []int {
	out := make([]int, len(s.bins[b]))
	copy(out, s.bins[b])
	return out
}

// Assignment maps each item ID to its bin index.
func (s *State) Assignment() map[string]int {
	out := make(map[string]int, s.problem.Size())
	for i, item := range s.problem.Items {
		out[item.ID] = s.binOf[i]
	}
	return out
}

// Clone returns a deep copy sharing only the immutable Problem.
func (s *State) Clone() *State {
	c := &State{
		problem: s.problem,
		bins:    make([][]int, len(s.bins)),
		loads:   make([]float64, len(s.loads)),
		binOf:   make([]int, len(s.binOf)),
	}
	for i, bin := range s.bins {
		c.bins[i] = make([]int, len(bin))
		copy(c.bins[i], bin)
	}
	copy(c.loads, s.loads)
	copy(c.binOf, s.binOf)
	return c
}

// MoveItem relocates item into bin to, where to == BinsUsed() opens a new
// bin. It returns the resulting state and true, or nil and false when the
// move is infeasible or a no-op (same bin, or a lone item moved to a new
// bin, which would reproduce the same partition after compaction).
func (s *State) MoveItem(item, to int) (*State, bool) {
	if item < 0 || item >= s.problem.Size() || to < 0 || to > len(s.bins) {
		return nil, false
	}
	from := s.binOf[item]
	if to == from {
		return nil, false
	}
	w := s.problem.Items[item].Weight
	if to == len(s.bins) {
		if len(s.bins[from]) == 1 {
			return nil, false
		}
	} else if s.loads[to]+w > s.problem.Capacity {
		return nil, false
	}

	c := s.Clone()
	c.removeFromBin(item, from)
	if to > from && len(c.bins) < len(s.bins) {
		// removing the last item of bin from shifted later bins down
		to--
	}
	c.place(item, to)
	return c, true
}

// SwapItems exchanges the bins of two items. It returns nil and false when
// the items share a bin or either bin would overflow.
func (s *State) SwapItems(a, b int) (*State, bool) {
	if a < 0 || a >= s.problem.Size() || b < 0 || b >= s.problem.Size() {
		return nil, false
	}
	binA, binB := s.binOf[a], s.binOf[b]
	if binA == binB {
		return nil, false
	}
	wA := s.problem.Items[a].Weight
	wB := s.problem.Items[b].Weight
	if s.loads[binA]-wA+wB > s.problem.Capacity {
		return nil, false
	}
	if s.loads[binB]-wB+wA > s.problem.Capacity {
		return nil, false
	}

	c := s.Clone()
	c.replaceInBin(binA, a, b)
	c.replaceInBin(binB, b, a)
	c.loads[binA] += wB - wA
	c.loads[binB] += wA - wB
	c.binOf[a], c.binOf[b] = binB, binA
	return c, true
}

// removeFromBin deletes item from bin b, compacting away the bin if it
// becomes empty so that bin indices stay contiguous.
func (s *State) removeFromBin(item, b int) {
	bin := s.bins[b]
	for i, it := range bin {
		if it == item {
			s.bins[b] = append(bin[:i], bin[i+1:]...)
			break
		}
	}
	s.loads[b] -= s.problem.Items[item].Weight

	if len(s.bins[b]) == 0 {
		s.bins = append(s.bins[:b], s.bins[b+1:]...)
		s.loads = append(s.loads[:b], s.loads[b+1:]...)
		for i, owner := range s.binOf {
			if owner > b {
				s.binOf[i] = owner - 1
			}
		}
	}
}

func (s *State) replaceInBin(b, old, repl int) {
	for i, it := range s.bins[b] {
		if it == old {
			s.bins[b][i] = repl
			return
		}
	}
}

// Validate checks the state invariants against its problem. Solvers call it
// in tests, not on the hot path.
func (s *State) Validate() error {
	seen := make([]bool, s.problem.Size())
	for b, bin := range s.bins {
		if len(bin) == 0 {
			return fmt.Errorf("bin %d is empty", b)
		}
		load := 0.0
		for _, item := range bin {
			if item < 0 || item >= s.problem.Size() {
				return fmt.Errorf("bin %d: item index %d out of range", b, item)
			}
			if seen[item] {
				return fmt.Errorf("item %d assigned more than once", item)
			}
			seen[item] = true
			if s.binOf[item] != b {
				return fmt.Errorf("item %d: bin index cache says %d, found in %d", item, s.binOf[item], b)
			}
			load += s.problem.Items[item].Weight
		}
		if load > s.problem.Capacity {
			return fmt.Errorf("bin %d: load %g exceeds capacity %g", b, load, s.problem.Capacity)
		}
		if diff := load - s.loads[b]; diff > 1e-9 || diff < -1e-9 {
			return fmt.Errorf("bin %d: cached load %g, actual %g", b, s.loads[b], load)
		}
	}
	for item, ok := range seen {
		if !ok {
			return fmt.Errorf("item %d is unassigned", item)
		}
	}
	return nil
}
