// Package render turns an evolved interference field into image files.
//
// Three renderers consume the same [wave.Tensor]:
//
//   - [Surface]: animated GIF of the height-mapped field seen through a [Camera]
//   - [WallAnimation]: animated GIF of the detector profile and its running average
//   - [WallResult]: static PNG of the converged detector profile
//
// Charts are drawn with go-chart and quantised into GIF frames; surface
// frames are painted directly into a paletted image using the winter
// colormap. [WriteSVG] exports a detector curve as vector graphics.
package render
