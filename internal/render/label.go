package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// drawLabel writes text with its top-left corner at (x, y) over a filled box.
func drawLabel(img draw.Image, x, y int, label string, fg, bg color.Color) {
	face := basicfont.Face7x13
	textWidth := font.MeasureString(face, label).Ceil()
	textHeight := face.Metrics().Height.Ceil()

	box := image.Rect(x-3, y-3, x+textWidth+3, y+textHeight+3)
	draw.Draw(img, box, image.NewUniform(bg), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + face.Metrics().Ascent},
	}
	d.DrawString(label)
}
