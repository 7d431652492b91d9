// Package config loads and validates experiment configuration files.
package config

import (
	"os"
	"strings"

	"github.com/XiaoConstantine/sco-go/pkg/benchmarks"
	scoerrors "github.com/XiaoConstantine/sco-go/pkg/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ExperimentConfig describes one benchmark experiment batch.
type ExperimentConfig struct {
	// Problem selects a registered benchmark.
	Problem string `yaml:"problem" validate:"required"`

	PopulationSize int `yaml:"population_size" validate:"min=2"`
	Iterations     int `yaml:"iterations" validate:"min=1"`
	Runs           int `yaml:"runs" validate:"min=1"`

	BaseSeed    int64 `yaml:"base_seed"`
	RandomSeeds bool  `yaml:"random_seeds"`
	MaxParallel int   `yaml:"max_parallel" validate:"min=0"`

	// Optional overrides of the benchmark's default bounds.
	LowerBounds []float64 `yaml:"lower_bounds,omitempty"`
	UpperBounds []float64 `yaml:"upper_bounds,omitempty"`

	// Optional output surfaces.
	CSVPath   string `yaml:"csv_path,omitempty"`
	StorePath string `yaml:"store_path,omitempty"`

	LogLevel string `yaml:"log_level,omitempty" validate:"omitempty,oneof=DEBUG INFO WARN ERROR"`
}

// Default returns the configuration the reference experiments use.
func Default() ExperimentConfig {
	return ExperimentConfig{
		Problem:        "two_variable",
		PopulationSize: 100,
		Iterations:     200,
		Runs:           10,
		BaseSeed:       10,
		MaxParallel:    4,
		LogLevel:       "INFO",
	}
}

// Load reads a YAML experiment configuration, applies defaults for omitted
// fields, and validates it.
func Load(path string) (ExperimentConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, scoerrors.WithFields(
			scoerrors.Wrap(err, scoerrors.InvalidInput, "failed to read config file"),
			scoerrors.Fields{"path": path},
		)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, scoerrors.WithFields(
			scoerrors.Wrap(err, scoerrors.InvalidInput, "failed to parse config file"),
			scoerrors.Fields{"path": path},
		)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field constraints and the cross-field bound rules.
func (c *ExperimentConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var invalid validator.ValidationErrors
		if ok := asValidationErrors(err, &invalid); ok {
			var msgs []string
			for _, fe := range invalid {
				msgs = append(msgs, fe.Field()+" failed rule "+fe.Tag())
			}
			return scoerrors.New(scoerrors.ValidationFailed, "invalid experiment config: "+strings.Join(msgs, "; "))
		}
		return scoerrors.Wrap(err, scoerrors.ValidationFailed, "invalid experiment config")
	}

	if _, err := benchmarks.Get(c.Problem); err != nil {
		return scoerrors.Wrap(err, scoerrors.ValidationFailed, "invalid experiment config")
	}

	if len(c.LowerBounds) != len(c.UpperBounds) {
		return scoerrors.WithFields(
			scoerrors.New(scoerrors.ValidationFailed, "bound overrides must have equal length"),
			scoerrors.Fields{"lower_len": len(c.LowerBounds), "upper_len": len(c.UpperBounds)},
		)
	}
	for j := range c.LowerBounds {
		if c.LowerBounds[j] >= c.UpperBounds[j] {
			return scoerrors.WithFields(
				scoerrors.New(scoerrors.ValidationFailed, "bound overrides must satisfy lower < upper"),
				scoerrors.Fields{"variable": j, "lower": c.LowerBounds[j], "upper": c.UpperBounds[j]},
			)
		}
	}
	return nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	if errs, ok := err.(validator.ValidationErrors); ok {
		*target = errs
		return true
	}
	return false
}
