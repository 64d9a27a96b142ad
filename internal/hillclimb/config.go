package hillclimb

import (
	"fmt"

	"github.com/packlab/binpack/internal/search"
)

// Config drives all four hill-climbing variants. MaxSideways only applies
// to the sideways variant and Restarts only to the restart variant; both
// are ignored elsewhere.
type Config struct {
	Variant       search.Algorithm
	MaxIterations int
	MaxSideways   int
	Restarts      int
}

// DefaultConfig returns the standard settings for a variant.
func DefaultConfig(variant search.Algorithm) Config {
	return Config{
		Variant:       variant,
		MaxIterations: 1000,
		MaxSideways:   10,
		Restarts:      5,
	}
}

// Validate checks the configuration before any search starts.
func (c Config) Validate() error {
	switch c.Variant {
	case search.Steepest, search.Stochastic, search.Sideways, search.Restart:
	default:
		return fmt.Errorf("%w: %q is not a hill-climbing variant", search.ErrInvalidConfig, c.Variant)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: max iterations must be positive, got %d", search.ErrInvalidConfig, c.MaxIterations)
	}
	if c.Variant == search.Sideways && c.MaxSideways <= 0 {
		return fmt.Errorf("%w: max sideways must be positive, got %d", search.ErrInvalidConfig, c.MaxSideways)
	}
	if c.Variant == search.Restart && c.Restarts <= 0 {
		return fmt.Errorf("%w: restarts must be positive, got %d", search.ErrInvalidConfig, c.Restarts)
	}
	return nil
}
