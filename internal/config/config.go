// Package config loads runtime settings from an optional YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"optiroute/internal/graph"
	"optiroute/internal/search"
)

// Config holds the tunables shared by the routing engines, the matrix
// builder, and the benchmark binary.
type Config struct {
	// Algorithm is the default shortest-path engine ("dijkstra" or
	// "a_star").
	Algorithm string `yaml:"algorithm"`
	// WeightPolicy selects how weightless edges are costed:
	// "geographic" skips them, "uniform" defaults them to 1.0.
	WeightPolicy string `yaml:"weight_policy"`

	Matrix MatrixConfig `yaml:"matrix"`
	Bench  BenchConfig  `yaml:"bench"`
}

// MatrixConfig controls cost-matrix construction.
type MatrixConfig struct {
	Symmetric bool `yaml:"symmetric"`
	WithPaths bool `yaml:"with_paths"`
}

// BenchConfig controls the benchmark binary.
type BenchConfig struct {
	// GridSizes are the square grid side lengths to generate.
	GridSizes []int `yaml:"grid_sizes"`
	// Samples is the number of random start/end pairs per grid.
	Samples int `yaml:"samples"`
	// SpacingMeters is the edge length between adjacent grid nodes.
	SpacingMeters float64 `yaml:"spacing_meters"`
	Seed          int64   `yaml:"seed"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Algorithm:    string(search.AStar),
		WeightPolicy: "geographic",
		Matrix:       MatrixConfig{Symmetric: false, WithPaths: false},
		Bench: BenchConfig{
			GridSizes:     []int{10, 20, 40},
			Samples:       25,
			SpacingMeters: 100,
			Seed:          1,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path
// (skipped when path is empty or the file does not exist), then
// OPTIROUTE_* environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("OPTIROUTE_ALGORITHM"); v != "" {
		cfg.Algorithm = v
	}
	if v := os.Getenv("OPTIROUTE_WEIGHT_POLICY"); v != "" {
		cfg.WeightPolicy = v
	}
	if v := os.Getenv("OPTIROUTE_MATRIX_SYMMETRIC"); v != "" {
		cfg.Matrix.Symmetric = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("OPTIROUTE_MATRIX_WITH_PATHS"); v != "" {
		cfg.Matrix.WithPaths = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("OPTIROUTE_BENCH_SAMPLES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Bench.Samples = n
		}
	}
	if v := os.Getenv("OPTIROUTE_BENCH_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Bench.Seed = n
		}
	}
	if v := os.Getenv("OPTIROUTE_BENCH_GRID_SIZES"); v != "" {
		var sizes []int
		for _, part := range strings.Split(v, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || n <= 0 {
				sizes = nil
				break
			}
			sizes = append(sizes, n)
		}
		if len(sizes) > 0 {
			cfg.Bench.GridSizes = sizes
		}
	}
}

// Validate rejects values the rest of the module cannot act on.
func (c Config) Validate() error {
	switch search.Algorithm(c.Algorithm) {
	case search.Dijkstra, search.AStar:
	default:
		return fmt.Errorf("config: unknown algorithm %q", c.Algorithm)
	}
	switch c.WeightPolicy {
	case "geographic", "uniform":
	default:
		return fmt.Errorf("config: unknown weight policy %q", c.WeightPolicy)
	}
	if c.Bench.Samples <= 0 {
		return fmt.Errorf("config: bench samples must be positive, got %d", c.Bench.Samples)
	}
	if len(c.Bench.GridSizes) == 0 {
		return fmt.Errorf("config: at least one bench grid size required")
	}
	for _, s := range c.Bench.GridSizes {
		if s < 2 {
			return fmt.Errorf("config: grid size must be at least 2, got %d", s)
		}
	}
	return nil
}

// SearchAlgorithm returns the configured engine as a typed value.
func (c Config) SearchAlgorithm() search.Algorithm {
	return search.Algorithm(c.Algorithm)
}

// GraphPolicy returns the configured weight policy as a typed value.
func (c Config) GraphPolicy() graph.WeightPolicy {
	if c.WeightPolicy == "uniform" {
		return graph.WeightUniform
	}
	return graph.WeightGeographic
}
