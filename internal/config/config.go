package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/san-kum/wavesim/internal/scenario"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSlitDistance = 8 * math.Pi
	DefaultWallDistance = 40.0
	DefaultBreadth      = 100.0
	DefaultResolution   = 0.05
	DefaultSteps        = 50
	DefaultQuality      = 1
	DefaultWidth        = 1000
	DefaultHeight       = 500
	DefaultElevation    = 90.0
	DefaultHeightScale  = 0.1
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	SlitDistance float64      `yaml:"slit_distance"`
	WallDistance float64      `yaml:"wall_distance"`
	Breadth      float64      `yaml:"breadth"`
	Resolution   float64      `yaml:"resolution"`
	Steps        int          `yaml:"steps"`
	Quality      int          `yaml:"quality"`
	Workers      int          `yaml:"workers"`
	OutputDir    string       `yaml:"output_dir"`
	DataDir      string       `yaml:"data_dir,omitempty"`
	Scenarios    []string     `yaml:"scenarios"`
	Render       RenderConfig `yaml:"render"`
}

type RenderConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Elevation   float64 `yaml:"elevation"`
	Azimuth     float64 `yaml:"azimuth"`
	Spin        float64 `yaml:"spin"`
	HeightScale float64 `yaml:"height_scale"`
	SkipSurface bool    `yaml:"skip_surface"`
}

func DefaultConfig() *Config {
	names := make([]string, 0, 4)
	for _, id := range scenario.All() {
		names = append(names, string(id))
	}
	return &Config{
		SlitDistance: DefaultSlitDistance,
		WallDistance: DefaultWallDistance,
		Breadth:      DefaultBreadth,
		Resolution:   DefaultResolution,
		Steps:        DefaultSteps,
		Quality:      DefaultQuality,
		OutputDir:    ".",
		Scenarios:    names,
		Render: RenderConfig{
			Width:       DefaultWidth,
			Height:      DefaultHeight,
			Elevation:   DefaultElevation,
			HeightScale: DefaultHeightScale,
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays the fields present in the file at path onto cfg.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy so presets are never mutated by callers.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Scenarios = append([]string(nil), c.Scenarios...)
	return &cp
}

// Validate checks the scalar parameters and the scenario list.
func (c *Config) Validate() error {
	switch {
	case c.Steps <= 0:
		return fmt.Errorf("%w: steps must be positive, got %d", ErrInvalidConfig, c.Steps)
	case c.Quality <= 0:
		return fmt.Errorf("%w: quality must be positive, got %d", ErrInvalidConfig, c.Quality)
	case !(c.Resolution > 0):
		return fmt.Errorf("%w: resolution must be positive, got %v", ErrInvalidConfig, c.Resolution)
	case !(c.WallDistance > 0):
		return fmt.Errorf("%w: wall_distance must be positive, got %v", ErrInvalidConfig, c.WallDistance)
	case !(c.Breadth > 0):
		return fmt.Errorf("%w: breadth must be positive, got %v", ErrInvalidConfig, c.Breadth)
	case c.SlitDistance < 0 || math.IsNaN(c.SlitDistance):
		return fmt.Errorf("%w: slit_distance must not be negative, got %v", ErrInvalidConfig, c.SlitDistance)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	case c.Render.Width <= 0 || c.Render.Height <= 0:
		return fmt.Errorf("%w: render size must be positive, got %dx%d", ErrInvalidConfig, c.Render.Width, c.Render.Height)
	case len(c.Scenarios) == 0:
		return fmt.Errorf("%w: no scenarios selected", ErrInvalidConfig)
	}
	if _, err := scenario.ParseAll(c.Scenarios); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ScenarioIDs returns the validated scenario list.
func (c *Config) ScenarioIDs() ([]scenario.ID, error) {
	return scenario.ParseAll(c.Scenarios)
}

// RecordDir is where run records are written.
func (c *Config) RecordDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return filepath.Join(c.OutputDir, ".wavesim")
}
