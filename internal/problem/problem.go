package problem

import (
	"fmt"
	"math"

	"github.com/packlab/binpack/pkg/utils"
)

// Item is a single weighted item to be packed.
type Item struct {
	ID     string
	Weight float64
}

// Problem is an immutable bin packing instance: a bin capacity and an
// ordered list of items. A Problem is validated once at construction and
// never mutated afterwards, so concurrent solver runs can share it.
type Problem struct {
	Capacity float64
	Items    []Item
}

// InfeasibleItemError indicates an item that can never be packed because
// its weight exceeds the bin capacity.
type InfeasibleItemError struct {
	ID       string
	Weight   float64
	Capacity float64
}

func (e *InfeasibleItemError) Error() string {
	return fmt.Sprintf("item %s: weight %g exceeds capacity %g", e.ID, e.Weight, e.Capacity)
}

// New constructs a validated Problem. Zero items is a valid degenerate
// instance; an item heavier than the capacity is an *InfeasibleItemError.
func New(capacity float64, items []Item) (*Problem, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("capacity must be positive, got %g", capacity)
	}

	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if item.ID == "" {
			return nil, fmt.Errorf("item id cannot be empty")
		}
		if seen[item.ID] {
			return nil, fmt.Errorf("duplicate item id: %s", item.ID)
		}
		seen[item.ID] = true

		if item.Weight <= 0 {
			return nil, fmt.Errorf("item %s: weight must be positive, got %g", item.ID, item.Weight)
		}
		if item.Weight > capacity {
			return nil, &InfeasibleItemError{ID: item.ID, Weight: item.Weight, Capacity: capacity}
		}
	}

	copied := make([]Item, len(items))
	copy(copied, items)

	return &Problem{Capacity: capacity, Items: copied}, nil
}

// Size returns the number of items.
func (p *Problem) Size() int {
	return len(p.Items)
}

// TotalWeight returns the sum of all item weights.
func (p *Problem) TotalWeight() float64 {
	total := 0.0
	for _, item := range p.Items {
		total += item.Weight
	}
	return total
}

// LowerBound returns the theoretical minimum number of bins,
// ceil(total weight / capacity).
func (p *Problem) LowerBound() int {
	if len(p.Items) == 0 {
		return 0
	}
	return int(math.Ceil(p.TotalWeight() / p.Capacity))
}

// Random generates a demo Problem with n items of integer weights drawn
// uniformly from [minWeight, maxWeight].
func Random(n int, capacity float64, minWeight, maxWeight int, rng *utils.RandSource) (*Problem, error) {
	if n < 0 {
		return nil, fmt.Errorf("item count cannot be negative, got %d", n)
	}
	if minWeight <= 0 || maxWeight < minWeight {
		return nil, fmt.Errorf("invalid weight bounds [%d, %d]", minWeight, maxWeight)
	}
	if float64(maxWeight) > capacity {
		return nil, fmt.Errorf("max weight %d exceeds capacity %g", maxWeight, capacity)
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}

	items := make([]Item, n)
	for i := range items {
		items[i] = Item{
			ID:     fmt.Sprintf("ITEM-%03d", i+1),
			Weight: float64(rng.IntRange(minWeight, maxWeight)),
		}
	}
	return New(capacity, items)
}
