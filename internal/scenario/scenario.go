// Package scenario places wave sources for each supported experiment.
package scenario

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/san-kum/wavesim/internal/wave"
)

// ID names a source layout.
type ID string

const (
	SingleWave              ID = "single_wave"
	SingleSlitDiffraction   ID = "single_slit_diffraction"
	DoubleSlitDiffraction   ID = "double_slit_diffraction"
	DoubleSlitNoDiffraction ID = "double_slit_no_diffraction"
)

// ErrUnknownScenario is returned for identifiers outside the supported set.
var ErrUnknownScenario = errors.New("scenario: unknown scenario")

// slitOffsets are the emitter positions across one slit, in multiples of π.
var slitOffsets = [...]float64{-1.5, -0.5, 0.5, 1.5}

// directions places the two slits either side of the axis.
var directions = [...]float64{-1, 1}

type entry struct {
	description string
	build       func(slitDistance float64) []wave.Source
}

var registry = map[ID]entry{
	SingleWave: {
		description: "one point source at the origin",
		build: func(float64) []wave.Source {
			return []wave.Source{{X: 0, Y: 0}}
		},
	},
	SingleSlitDiffraction: {
		description: "four sources spanning a single slit of width 3π",
		build: func(float64) []wave.Source {
			sources := make([]wave.Source, 0, len(slitOffsets))
			for _, o := range slitOffsets {
				sources = append(sources, wave.Source{X: 0, Y: o * math.Pi})
			}
			return sources
		},
	},
	DoubleSlitDiffraction: {
		description: "two diffracting slits, four sources each",
		build: func(slit float64) []wave.Source {
			sources := make([]wave.Source, 0, len(slitOffsets)*len(directions))
			for _, o := range slitOffsets {
				for _, d := range directions {
					sources = append(sources, wave.Source{X: 0, Y: o*math.Pi + d*slit/2})
				}
			}
			return sources
		},
	},
	DoubleSlitNoDiffraction: {
		description: "two point-like slits",
		build: func(slit float64) []wave.Source {
			sources := make([]wave.Source, 0, len(directions))
			for _, d := range directions {
				sources = append(sources, wave.Source{X: 0, Y: d * slit / 2})
			}
			return sources
		},
	},
}

// order is the batch order used when no scenario list is given.
var order = []ID{SingleWave, SingleSlitDiffraction, DoubleSlitNoDiffraction, DoubleSlitDiffraction}

// All returns every scenario in default batch order.
func All() []ID {
	out := make([]ID, len(order))
	copy(out, order)
	return out
}

// Names returns every scenario identifier, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for id := range registry {
		names = append(names, string(id))
	}
	sort.Strings(names)
	return names
}

// Parse validates a scenario identifier.
func Parse(s string) (ID, error) {
	id := ID(strings.TrimSpace(s))
	if _, ok := registry[id]; !ok {
		return "", fmt.Errorf("%w: %q (available: %s)", ErrUnknownScenario, s, strings.Join(Names(), ", "))
	}
	return id, nil
}

// ParseAll validates a list of identifiers, preserving order.
func ParseAll(names []string) ([]ID, error) {
	ids := make([]ID, 0, len(names))
	for _, n := range names {
		id, err := Parse(n)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Describe returns a one-line description of the layout.
func Describe(id ID) string {
	return registry[id].description
}

// Sources returns the ordered emitters for a scenario. Every call returns a
// fresh slice.
func Sources(id ID, slitDistance float64) ([]wave.Source, error) {
	e, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, id)
	}
	return e.build(slitDistance), nil
}
