package experiment

import (
	"strings"

	"github.com/san-kum/wavesim/internal/scenario"
)

const (
	SurfaceSuffix = "animated_3d.gif"
	WallSuffix    = "animated_wall.gif"
	ResultSuffix  = "wall_result.png"
)

// OutputName is the file name of one rendering, e.g.
// "double_slit_diffraction_-_animated_wall.gif".
func OutputName(id scenario.ID, suffix string) string {
	return string(id) + "_-_" + suffix
}

// Label turns a scenario id into a plot title: "double slit diffraction".
func Label(id scenario.ID) string {
	return strings.ReplaceAll(string(id), "_", " ")
}
