package utils

import (
	"math"
	"testing"
)

func TestMinMax(t *testing.T) {
	if Min(1, 2) != 1 || Min(2, 1) != 1 {
		t.Fatalf("Min failed")
	}
	if Max(1, 2) != 2 || Max(2, 1) != 2 {
		t.Fatalf("Max failed")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		value, min, max, want int
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := Clamp(tt.value, tt.min, tt.max); got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.value, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestMean(t *testing.T) {
	if got := Mean([]float64{1, 2, 3, 4}); got != 2.5 {
		t.Fatalf("expected mean 2.5, got %f", got)
	}
	if got := Mean(nil); got != 0 {
		t.Fatalf("mean of empty slice should be 0, got %f", got)
	}
}

func TestVarianceAndStdDev(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	// Sample variance of this set is 32/7.
	want := 32.0 / 7.0
	if got := Variance(values); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected variance %f, got %f", want, got)
	}
	if got := StdDev(values); math.Abs(got-math.Sqrt(want)) > 1e-9 {
		t.Fatalf("expected stddev %f, got %f", math.Sqrt(want), got)
	}
	if got := Variance([]float64{3}); got != 0 {
		t.Fatalf("variance of single value should be 0, got %f", got)
	}
}

func TestMinFloat64(t *testing.T) {
	if got := MinFloat64([]float64{3, 1, 2}); got != 1 {
		t.Fatalf("expected 1, got %f", got)
	}
}

func TestRound(t *testing.T) {
	if got := Round(3.14159, 2); got != 3.14 {
		t.Fatalf("expected 3.14, got %f", got)
	}
	if got := Round(2.675, 0); got != 3 {
		t.Fatalf("expected 3, got %f", got)
	}
}
