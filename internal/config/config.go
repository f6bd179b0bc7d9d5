// Package config loads analyzer configuration from .scss-impact.json (JSONC,
// comments and trailing commas allowed) or .scss-impact.yaml files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/scssimpact/internal/impact"
)

// Config tunes the analyzer. Unset fields fall back to defaults at
// normalization time, so a partial file only overrides what it names;
// an explicit zero is kept.
type Config struct {
	// LowRiskMax and MediumRiskMax bound the risk classification totals.
	LowRiskMax    *int `json:"lowRiskMax" yaml:"lowRiskMax"`
	MediumRiskMax *int `json:"mediumRiskMax" yaml:"mediumRiskMax"`

	// ComponentFileMax bounds the component impact scope.
	ComponentFileMax *int `json:"componentFileMax" yaml:"componentFileMax"`

	// ImportPatterns are doublestar globs a resolved import must match.
	ImportPatterns []string `json:"importPatterns" yaml:"importPatterns"`

	// ScanUsages controls whether analysis records property usages.
	// Defaults to true.
	ScanUsages *bool `json:"scanUsages" yaml:"scanUsages"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"logLevel" yaml:"logLevel"`
}

// Default returns the standard configuration.
func Default() *Config {
	scan := true
	t := impact.DefaultThresholds()
	return &Config{
		LowRiskMax:       &t.LowRiskMax,
		MediumRiskMax:    &t.MediumRiskMax,
		ComponentFileMax: &t.ComponentFileMax,
		ImportPatterns:   []string{"**/*.scss"},
		ScanUsages:       &scan,
		LogLevel:         "info",
	}
}

// Load reads a configuration file, dispatching on extension: .json/.jsonc
// through the JSONC translator, .yaml/.yml through the YAML parser.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	switch ext := filepath.Ext(path); ext {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config extension %q", ext)
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Thresholds maps the configuration onto impact analyzer thresholds.
func (c *Config) Thresholds() impact.Thresholds {
	return impact.Thresholds{
		LowRiskMax:       *c.LowRiskMax,
		MediumRiskMax:    *c.MediumRiskMax,
		ComponentFileMax: *c.ComponentFileMax,
	}
}

// UsageScanEnabled reports the effective ScanUsages setting.
func (c *Config) UsageScanEnabled() bool {
	return c.ScanUsages == nil || *c.ScanUsages
}

func (c *Config) normalize() {
	def := Default()
	if c.LowRiskMax == nil {
		c.LowRiskMax = def.LowRiskMax
	}
	if c.MediumRiskMax == nil {
		c.MediumRiskMax = def.MediumRiskMax
	}
	if c.ComponentFileMax == nil {
		c.ComponentFileMax = def.ComponentFileMax
	}
	if len(c.ImportPatterns) == 0 {
		c.ImportPatterns = def.ImportPatterns
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

func (c *Config) validate() error {
	if *c.LowRiskMax < 0 || *c.MediumRiskMax < 0 || *c.ComponentFileMax < 0 {
		return fmt.Errorf("thresholds must be non-negative")
	}
	if *c.MediumRiskMax < *c.LowRiskMax {
		return fmt.Errorf("mediumRiskMax (%d) must be >= lowRiskMax (%d)", *c.MediumRiskMax, *c.LowRiskMax)
	}
	return nil
}
