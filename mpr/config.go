package mpr

import (
	"errors"
	"fmt"
)

const (
	// DefaultContainEpsilon is how far the origin may lie outside the portal
	// and still be reported as contained.
	DefaultContainEpsilon = 0.005

	// DefaultSurfaceEpsilon is the distance between a new support point and the
	// portal under which the portal is considered to lie on the CSO surface.
	DefaultSurfaceEpsilon = 0.0001

	// DefaultIterations caps the discovery and the refinement loops.
	// Hitting the cap is reported as a miss.
	DefaultIterations = 25
)

// ErrInvalidConfig is wrapped by Config.Validate
var ErrInvalidConfig = errors.New("mpr: invalid config")

// Config holds the tolerances of the engine
type Config struct {
	ContainEpsilon     float64 `toml:"contain_epsilon"`
	SurfaceEpsilon     float64 `toml:"surface_epsilon"`
	DiscoverIterations int     `toml:"discover_iterations"`
	RefineIterations   int     `toml:"refine_iterations"`
}

// DefaultConfig returns the tolerances used by pooled engines
func DefaultConfig() Config {
	return Config{
		ContainEpsilon:     DefaultContainEpsilon,
		SurfaceEpsilon:     DefaultSurfaceEpsilon,
		DiscoverIterations: DefaultIterations,
		RefineIterations:   DefaultIterations,
	}
}

// Validate rejects negative tolerances and empty iteration budgets
func (c Config) Validate() error {
	switch {
	case c.ContainEpsilon < 0:
		return fmt.Errorf("%w: contain_epsilon %v is negative", ErrInvalidConfig, c.ContainEpsilon)
	case c.SurfaceEpsilon < 0:
		return fmt.Errorf("%w: surface_epsilon %v is negative", ErrInvalidConfig, c.SurfaceEpsilon)
	case c.DiscoverIterations <= 0:
		return fmt.Errorf("%w: discover_iterations must be positive, got %d", ErrInvalidConfig, c.DiscoverIterations)
	case c.RefineIterations <= 0:
		return fmt.Errorf("%w: refine_iterations must be positive, got %d", ErrInvalidConfig, c.RefineIterations)
	}
	return nil
}
