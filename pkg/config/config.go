// Package config holds the tunable settings of an optimization run and their
// YAML file representation.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/XiaoConstantine/springopt-go/pkg/core"
)

// OptimizerConfig contains configuration options for the GA optimizer.
type OptimizerConfig struct {
	// Evolutionary parameters
	PopulationSize int     `json:"population_size" yaml:"population_size" validate:"gte=2,lte=10000"`
	Generations    int     `json:"generations" yaml:"generations" validate:"gte=1,lte=100000"`
	EliteCount     int     `json:"elite_count" yaml:"elite_count" validate:"gte=0"`
	MutationRate   float64 `json:"mutation_rate" yaml:"mutation_rate" validate:"gte=0,lte=1"`

	// Selection parameters
	TournamentSize int `json:"tournament_size" yaml:"tournament_size" validate:"gte=1"`

	// Crossover parameters
	CrossoverBlendRate float64 `json:"crossover_blend_rate" yaml:"crossover_blend_rate" validate:"gte=0,lte=1"`

	// Performance parameters
	ConcurrencyLevel int `json:"concurrency_level" yaml:"concurrency_level" validate:"gte=1"`

	// Seed for the run's random source. Zero seeds from the clock; any other
	// value makes the run reproducible bit for bit.
	Seed int64 `json:"seed" yaml:"seed"`

	// AcceptanceFitness is the threshold the best-ever fitness must clear,
	// together with feasibility, for a run to report success.
	AcceptanceFitness float64 `json:"acceptance_fitness" yaml:"acceptance_fitness"`
}

// DefaultOptimizerConfig returns the default GA settings.
func DefaultOptimizerConfig() *OptimizerConfig {
	return &OptimizerConfig{
		PopulationSize:     50,
		Generations:        50,
		EliteCount:         5,
		MutationRate:       0.15,
		TournamentSize:     3,
		CrossoverBlendRate: 0.3,
		ConcurrencyLevel:   4,
		AcceptanceFitness:  -100.0,
	}
}

// ApplyDefaults fills zero-valued fields from the defaults.
func (c *OptimizerConfig) ApplyDefaults() {
	defaults := DefaultOptimizerConfig()
	if c.PopulationSize <= 0 {
		c.PopulationSize = defaults.PopulationSize
	}
	if c.Generations <= 0 {
		c.Generations = defaults.Generations
	}
	if c.EliteCount <= 0 {
		c.EliteCount = defaults.EliteCount
	}
	if c.MutationRate <= 0 {
		c.MutationRate = defaults.MutationRate
	}
	if c.TournamentSize <= 0 {
		c.TournamentSize = defaults.TournamentSize
	}
	if c.CrossoverBlendRate <= 0 {
		c.CrossoverBlendRate = defaults.CrossoverBlendRate
	}
	if c.ConcurrencyLevel <= 0 {
		c.ConcurrencyLevel = defaults.ConcurrencyLevel
	}
	if c.AcceptanceFitness == 0 {
		c.AcceptanceFitness = defaults.AcceptanceFitness
	}
	if c.EliteCount >= c.PopulationSize {
		c.EliteCount = c.PopulationSize / 2
	}
}

// RunConfig is the file representation of a full optimization run: optimizer
// settings plus optional overrides of the search space, targets, weights and
// working conditions.
type RunConfig struct {
	Optimizer   OptimizerConfig         `yaml:"optimizer"`
	Constraints *core.DesignConstraints `yaml:"constraints,omitempty"`
	Targets     *core.DesignTargets     `yaml:"targets,omitempty"`
	Weights     *core.ObjectiveWeights  `yaml:"weights,omitempty"`
	Conditions  *core.WorkingConditions `yaml:"conditions,omitempty"`
}

// LoadFromFile reads a RunConfig from a YAML file, applies defaults and
// validates the result.
func LoadFromFile(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML from %s: %w", path, err)
	}

	cfg.Optimizer.ApplyDefaults()

	validator, err := NewValidator()
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateRunConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
