package render

import "math"

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Camera projects world points onto the image plane. Elevation 90 looks
// straight down the Z axis; Azimuth spins the scene around Z. Both are in
// degrees.
type Camera struct {
	Elevation, Azimuth float64
	Distance           float64
	Zoom               float64
	// Scale is the number of pixels per world unit at zero height.
	Scale float64

	sinAz, cosAz     float64
	sinTilt, cosTilt float64
}

func NewCamera(elevation, azimuth float64) *Camera {
	c := &Camera{Elevation: elevation, Distance: 50, Zoom: 1, Scale: 1}
	c.SetAzimuth(azimuth)
	return c
}

// SetAzimuth updates the spin angle and the cached rotation terms.
func (c *Camera) SetAzimuth(deg float64) {
	c.Azimuth = deg
	c.sinAz, c.cosAz = math.Sincos(deg * math.Pi / 180)
	tilt := (90 - c.Elevation) * math.Pi / 180
	c.sinTilt, c.cosTilt = math.Sincos(tilt)
}

// RotatePoint applies the azimuth spin followed by the elevation tilt.
func (c *Camera) RotatePoint(p Vec3) Vec3 {
	p.X, p.Y = p.X*c.cosAz-p.Y*c.sinAz, p.X*c.sinAz+p.Y*c.cosAz
	p.Y, p.Z = p.Y*c.cosTilt-p.Z*c.sinTilt, p.Y*c.sinTilt+p.Z*c.cosTilt
	return p
}

// Project converts a world point to pixel coordinates.
// Returns x, y, depth (larger is closer), and visibility.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	dist := c.Distance
	if rot.Z >= dist {
		return 0, 0, 0, false
	}
	persp := dist / (dist - rot.Z)
	sx := int(math.Round(rot.X*persp*c.Scale)) + sw/2
	sy := int(math.Round(-rot.Y*persp*c.Scale)) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}
