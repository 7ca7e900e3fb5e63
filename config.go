package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"qsimcirq/statevec"
)

// defaultConfigName is looked up in the working directory when --config is not given.
const defaultConfigName = "qsimcirq.yaml"

var errBadConfig = errors.New("invalid config")

// Config holds the settings shared by every command.
type Config struct {
	LogLevel   string          `yaml:"log_level"`
	Precision  int             `yaml:"precision"`
	Example    string          `yaml:"example"`
	Initial    int             `yaml:"initial"`
	Tolerances ToleranceConfig `yaml:"tolerances"`
}

// ToleranceConfig mirrors statevec.Tolerances for the config file.
type ToleranceConfig struct {
	Identity    float64 `yaml:"identity"`
	Determinant float64 `yaml:"determinant"`
}

// DefaultConfig returns the settings used when no file overrides them.
func DefaultConfig() Config {
	return Config{
		LogLevel:  "info",
		Precision: 5,
		Example:   "bell",
		Initial:   0,
		Tolerances: ToleranceConfig{
			Identity:    statevec.DefaultTolerances.Identity,
			Determinant: statevec.DefaultTolerances.Determinant,
		},
	}
}

// LoadConfig reads path over the defaults. An empty path falls back to
// qsimcirq.yaml in the working directory and silently uses the defaults when
// that file does not exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		path = defaultConfigName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read the config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks ranges that the simulator relies on.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level %q: %w", c.LogLevel, errBadConfig)
	}
	if c.Precision < 0 || c.Precision > 15 {
		return fmt.Errorf("precision %d outside [0, 15]: %w", c.Precision, errBadConfig)
	}
	if c.Initial < 0 {
		return fmt.Errorf("initial %d: %w", c.Initial, errBadConfig)
	}
	if c.Tolerances.Identity <= 0 || c.Tolerances.Determinant < 0 {
		return fmt.Errorf("tolerances %+v: %w", c.Tolerances, errBadConfig)
	}
	if c.Example != "" {
		if _, ok := lookupExample(c.Example); !ok {
			return fmt.Errorf("example %q: %w", c.Example, errBadConfig)
		}
	}
	return nil
}

// StatevecTolerances converts the file settings for the simulator.
func (c Config) StatevecTolerances() statevec.Tolerances {
	return statevec.Tolerances{
		Identity:    c.Tolerances.Identity,
		Determinant: c.Tolerances.Determinant,
	}
}

// writeDefaultConfig writes the default settings to path, creating its directory.
func writeDefaultConfig(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create the config directory: %w", err)
		}
	}
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
