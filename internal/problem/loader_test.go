package problem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	data := []byte(`{"capacity": 100, "items": {"B": 55, "A": 40}}`)
	p, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Capacity != 100 {
		t.Fatalf("expected capacity 100, got %g", p.Capacity)
	}
	if p.Size() != 2 {
		t.Fatalf("expected 2 items, got %d", p.Size())
	}
	// Item order is normalized by sorting IDs.
	if p.Items[0].ID != "A" || p.Items[1].ID != "B" {
		t.Fatalf("expected sorted ids [A B], got [%s %s]", p.Items[0].ID, p.Items[1].ID)
	}
	if p.Items[0].Weight != 40 || p.Items[1].Weight != 55 {
		t.Fatalf("unexpected weights: %+v", p.Items)
	}
}

func TestParseEmptyItems(t *testing.T) {
	p, err := Parse([]byte(`{"capacity": 10, "items": {}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Size() != 0 {
		t.Fatalf("expected empty problem, got %d items", p.Size())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed json", `{"capacity": 100,`},
		{"missing capacity", `{"items": {"A": 10}}`},
		{"infeasible item", `{"capacity": 50, "items": {"A": 60}}`},
		{"non-positive weight", `{"capacity": 100, "items": {"A": 0}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problem.json")
	content := `{"capacity": 100, "items": {"A": 40, "B": 55, "C": 30}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Size() != 3 {
		t.Fatalf("expected 3 items, got %d", p.Size())
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.json")
	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("error should name the file: %v", err)
	}
}
