// Package config loads the tunable tolerances of the kernel from TOML.
//
// Every section is optional and keys that are left out keep their default:
//
//	[mpr]
//	contain_epsilon = 0.005
//	discover_iterations = 25
//
//	[sat]
//	fudge_factor = 1.05
//
//	[ray]
//	triangle_epsilon = 0.0001
//
// Unknown keys are rejected.
package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/akmonengine/quill/intersection"
	"github.com/akmonengine/quill/mpr"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is wrapped by the errors of Validate
var ErrInvalid = errors.New("config: invalid value")

// Config groups the tolerances of every algorithm
type Config struct {
	MPR mpr.Config             `toml:"mpr"`
	SAT intersection.SatConfig `toml:"sat"`
	Ray intersection.RayConfig `toml:"ray"`
}

// Default returns the tolerances the packages use on their own
func Default() Config {
	return Config{
		MPR: mpr.DefaultConfig(),
		SAT: intersection.DefaultSatConfig(),
		Ray: intersection.DefaultRayConfig(),
	}
}

// Load reads and validates the TOML file at path
func Load(path string) (Config, error) {
	fp, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer fp.Close()

	config, err := Read(bufio.NewReader(fp))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// Parse decodes and validates a TOML document held in memory
func Parse(data []byte) (Config, error) {
	return Read(bytes.NewReader(data))
}

// Read decodes a TOML document over the defaults and validates the result
func Read(reader io.Reader) (Config, error) {
	config := Default()

	decoder := toml.NewDecoder(reader).DisallowUnknownFields()
	if err := decoder.Decode(&config); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("config: %s", strict.String())
		}
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks every section
func (c Config) Validate() error {
	if err := c.MPR.Validate(); err != nil {
		return fmt.Errorf("[mpr]: %w", err)
	}

	switch {
	case c.SAT.Zero < 0:
		return fmt.Errorf("%w: [sat] zero %v is negative", ErrInvalid, c.SAT.Zero)
	case c.SAT.FudgeFactor < 1:
		return fmt.Errorf("%w: [sat] fudge_factor %v is below 1", ErrInvalid, c.SAT.FudgeFactor)
	case c.SAT.ParallelCutoff <= 0 || c.SAT.ParallelCutoff > 1:
		return fmt.Errorf("%w: [sat] parallel_cutoff %v is outside (0, 1]", ErrInvalid, c.SAT.ParallelCutoff)
	case c.SAT.AbsEpsilon < 0:
		return fmt.Errorf("%w: [sat] abs_epsilon %v is negative", ErrInvalid, c.SAT.AbsEpsilon)
	case c.SAT.LengthEpsilon < 0:
		return fmt.Errorf("%w: [sat] length_epsilon %v is negative", ErrInvalid, c.SAT.LengthEpsilon)
	case c.Ray.ParallelEpsilon < 0:
		return fmt.Errorf("%w: [ray] parallel_epsilon %v is negative", ErrInvalid, c.Ray.ParallelEpsilon)
	}
	return nil
}
