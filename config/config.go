// Package config loads the CLI configuration: target position, grids,
// observation definitions and ambient settings.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/sreekanth370/gammapy/core/coords"
	"github.com/sreekanth370/gammapy/core/metrics"
	"github.com/sreekanth370/gammapy/core/units"
)

type Config struct {
	Target       PositionConfig      `json:"target"`
	Energy       EnergyGridConfig    `json:"energy"`
	Rad          RadGridConfig       `json:"rad"`
	ETrue        EnergyGridConfig    `json:"e_true"`
	EReco        EnergyGridConfig    `json:"e_reco"`
	Thresholds   ThresholdConfig     `json:"thresholds"`
	Observations []ObservationConfig `json:"observations"`
	Output       string              `json:"output"`
	Metrics      metrics.Config      `json:"metrics"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("GAMMAPY_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "gammapy_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Metrics.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the cross-cutting fields; observation definitions are
// validated when they are built.
func (c *Config) Validate() error {
	if len(c.Observations) == 0 {
		return fmt.Errorf("at least one observation is required")
	}
	if err := c.Energy.Validate(); err != nil {
		return fmt.Errorf("energy: %w", err)
	}
	if err := c.ETrue.Validate(); err != nil {
		return fmt.Errorf("e_true: %w", err)
	}
	if err := c.EReco.Validate(); err != nil {
		return fmt.Errorf("e_reco: %w", err)
	}
	if err := c.Rad.Validate(); err != nil {
		return fmt.Errorf("rad: %w", err)
	}
	return nil
}

// PositionConfig is an equatorial position in degrees.
type PositionConfig struct {
	RADeg  float64 `json:"ra_deg"`
	DecDeg float64 `json:"dec_deg"`
}

// Position returns the configured sky coordinate.
func (p PositionConfig) Position() coords.SkyCoord {
	return coords.New(p.RADeg, p.DecDeg)
}

// EnergyGridConfig describes a log-spaced energy grid. A zero Bins leaves the
// grid unset, which makes the reductions fall back to native grids.
type EnergyGridConfig struct {
	MinTeV float64 `json:"min_tev"`
	MaxTeV float64 `json:"max_tev"`
	Bins   int     `json:"bins"`
}

// Validate checks the range when the grid is set.
func (g EnergyGridConfig) Validate() error {
	if g.Bins == 0 {
		return nil
	}
	if g.Bins < 1 {
		return fmt.Errorf("bins must be positive, got %d", g.Bins)
	}
	if g.MinTeV <= 0 || g.MaxTeV <= g.MinTeV {
		return fmt.Errorf("invalid energy range [%g, %g] TeV", g.MinTeV, g.MaxTeV)
	}
	return nil
}

// Grid returns the grid nodes, or nil when unset.
func (g EnergyGridConfig) Grid() ([]units.Energy, error) {
	if g.Bins == 0 {
		return nil, nil
	}
	return units.LogEnergyGrid(units.TeV(g.MinTeV), units.TeV(g.MaxTeV), g.Bins+1)
}

// Bounds returns the grid as bin edges, or nil when unset.
func (g EnergyGridConfig) Bounds() ([]units.Energy, error) {
	if g.Bins == 0 {
		return nil, nil
	}
	return units.LogEnergyBounds(units.TeV(g.MinTeV), units.TeV(g.MaxTeV), g.Bins)
}

// RadGridConfig describes a linear radial-offset grid starting at zero. A
// zero Bins leaves the grid unset.
type RadGridConfig struct {
	MaxDeg float64 `json:"max_deg"`
	Bins   int     `json:"bins"`
}

// Validate checks the range when the grid is set.
func (g RadGridConfig) Validate() error {
	if g.Bins == 0 {
		return nil
	}
	if g.Bins < 1 {
		return fmt.Errorf("bins must be positive, got %d", g.Bins)
	}
	if g.MaxDeg <= 0 {
		return fmt.Errorf("max_deg must be positive, got %g", g.MaxDeg)
	}
	return nil
}

// Grid returns the grid nodes, or nil when unset.
func (g RadGridConfig) Grid() ([]units.Angle, error) {
	if g.Bins == 0 {
		return nil, nil
	}
	return units.LinearAngleGrid(0, units.Deg(g.MaxDeg), g.Bins+1)
}

// ThresholdConfig holds the reconstructed-energy thresholds in TeV. Zero
// values fall back to the reduction defaults.
type ThresholdConfig struct {
	LowTeV  float64 `json:"low_tev"`
	HighTeV float64 `json:"high_tev"`
}
