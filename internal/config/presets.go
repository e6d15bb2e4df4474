package config

import "sort"

// Presets trade rendering time for fidelity. Fields left zero fall back to
// DefaultConfig when applied.
var Presets = map[string]*Config{
	"preview": {
		Steps: 10, Quality: 20, Resolution: 0.2,
		Render: RenderConfig{Width: 600, Height: 300},
	},
	"standard": {
		Steps: DefaultSteps, Quality: DefaultQuality, Resolution: DefaultResolution,
	},
	"hires": {
		Steps: 100, Quality: 1, Resolution: 0.025,
		Render: RenderConfig{Width: 1600, Height: 800},
	},
	"double_slit_study": {
		Steps: 50, Quality: 2, Resolution: 0.05, Breadth: 60, WallDistance: 80,
		Scenarios: []string{"double_slit_no_diffraction", "double_slit_diffraction"},
	},
}

func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply overlays the non-zero fields of a preset onto c.
func (c *Config) Apply(p *Config) {
	if p == nil {
		return
	}
	if p.SlitDistance != 0 {
		c.SlitDistance = p.SlitDistance
	}
	if p.WallDistance != 0 {
		c.WallDistance = p.WallDistance
	}
	if p.Breadth != 0 {
		c.Breadth = p.Breadth
	}
	if p.Resolution != 0 {
		c.Resolution = p.Resolution
	}
	if p.Steps != 0 {
		c.Steps = p.Steps
	}
	if p.Quality != 0 {
		c.Quality = p.Quality
	}
	if p.Workers != 0 {
		c.Workers = p.Workers
	}
	if p.OutputDir != "" {
		c.OutputDir = p.OutputDir
	}
	if len(p.Scenarios) > 0 {
		c.Scenarios = append([]string(nil), p.Scenarios...)
	}
	if p.Render.Width != 0 {
		c.Render.Width = p.Render.Width
	}
	if p.Render.Height != 0 {
		c.Render.Height = p.Render.Height
	}
}
