package problem

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// inputFile is the wire format of a problem description:
// {"capacity": <positive number>, "items": {"<id>": <positive number>, ...}}
type inputFile struct {
	Capacity float64            `json:"capacity"`
	Items    map[string]float64 `json:"items"`
}

// Parse decodes a Problem from JSON bytes and validates it. Item order is
// normalized by sorting IDs, since JSON object keys carry no order.
func Parse(data []byte) (*Problem, error) {
	var in inputFile
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse problem json: %w", err)
	}

	ids := make([]string, 0, len(in.Items))
	for id := range in.Items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	items := make([]Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, Item{ID: id, Weight: in.Items[id]})
	}

	p, err := New(in.Capacity, items)
	if err != nil {
		return nil, fmt.Errorf("invalid problem: %w", err)
	}
	return p, nil
}

// Load reads and parses a problem file.
func Load(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read problem file %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse problem file %s: %w", path, err)
	}
	return p, nil
}
