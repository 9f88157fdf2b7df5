// Package config holds the run configuration for the pipeline panel.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sarchlab/blinkcpu/timing/pipeline"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the tunable parameters of a run.
type Config struct {
	// FrequencyHz is the tick rate. Default: 2 ticks per second.
	FrequencyHz float64 `json:"frequency_hz"`

	// Slot2Probability is the chance that EXECUTE fills ALU slot 2.
	// Default: 0.66.
	Slot2Probability float64 `json:"slot2_probability"`

	// Slot3Probability is the chance that EXECUTE fills ALU slot 3.
	// Default: 0.33.
	Slot3Probability float64 `json:"slot3_probability"`

	// Seed seeds the shared random source. Zero means seed from the clock.
	Seed uint64 `json:"seed"`

	// MaxTicks stops the run after this many ticks. Zero runs until stopped.
	MaxTicks uint64 `json:"max_ticks"`

	// Realtime paces frames against the wall clock at FrequencyHz.
	Realtime bool `json:"realtime"`

	// Color draws the panel with ANSI colors.
	Color bool `json:"color"`

	// Summary prints a statistics summary when the run ends.
	Summary bool `json:"summary"`
}

// DefaultConfig returns a Config with the panel's default values.
func DefaultConfig() *Config {
	return &Config{
		FrequencyHz:      2,
		Slot2Probability: pipeline.DefaultSlot2Probability,
		Slot3Probability: pipeline.DefaultSlot3Probability,
		Realtime:         true,
		Color:            true,
	}
}

// LoadConfig loads a Config from a JSON or Starlark (.star) file. Fields the
// file does not mention keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()

	if strings.EqualFold(filepath.Ext(path), ".star") {
		if err := config.applyStarlark(path, data); err != nil {
			return nil, fmt.Errorf("failed to evaluate config: %w", err)
		}
		return config, nil
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if math.IsNaN(c.FrequencyHz) || math.IsInf(c.FrequencyHz, 0) || c.FrequencyHz <= 0 {
		return fmt.Errorf("%w: frequency_hz must be a finite number > 0", ErrInvalidConfig)
	}
	if c.Period() < 1 {
		return fmt.Errorf("%w: frequency_hz %g is too high for a wall-clock timer",
			ErrInvalidConfig, c.FrequencyHz)
	}
	if !validProbability(c.Slot2Probability) {
		return fmt.Errorf("%w: slot2_probability must be in [0, 1]", ErrInvalidConfig)
	}
	if !validProbability(c.Slot3Probability) {
		return fmt.Errorf("%w: slot3_probability must be in [0, 1]", ErrInvalidConfig)
	}
	return nil
}

// Period returns the wall-clock time between ticks.
func (c *Config) Period() time.Duration {
	return time.Duration(float64(time.Second) / c.FrequencyHz)
}

func validProbability(p float64) bool {
	return !math.IsNaN(p) && p >= 0 && p <= 1
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
