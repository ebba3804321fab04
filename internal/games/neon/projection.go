package neon

import (
	"github.com/vovakirdan/neon-runner/internal/config"
)

// Camera maps ground-plane positions to screen coordinates with a single
// vanishing point. Scale at depth z is FocalDepth/(z+FocalDepth).
type Camera struct {
	CenterX      float64
	HorizonY     float64
	GroundY      float64
	FocalDepth   float64
	LateralScale float64
	Near         float64
	Far          float64
}

// Projected is the screen placement of a ground-plane point.
type Projected struct {
	X       float64
	Y       float64
	Scale   float64
	Visible bool
}

// NewCamera builds the reference camera from config.
func NewCamera(c config.NeonCamera) Camera {
	return Camera{
		CenterX:      c.Width / 2,
		HorizonY:     c.HorizonY,
		GroundY:      c.GroundY,
		FocalDepth:   c.FocalDepth,
		LateralScale: c.LateralScale,
		Near:         c.Near,
		Far:          c.Far,
	}
}

// TerminalCamera fits the configured camera onto a grid of cols x rows cells.
// Rows 0-1 are left for the HUD and the player sits three rows above the bottom.
func TerminalCamera(cfg config.NeonConfig, cols, rows int) Camera {
	c := NewCamera(cfg.Camera)
	c.CenterX = float64(cols) / 2
	c.HorizonY = 2
	c.GroundY = float64(rows - 3)
	if c.GroundY <= c.HorizonY {
		c.GroundY = c.HorizonY + 1
	}
	half := cfg.HalfSpan()
	if half > 0 {
		c.LateralScale = float64(cols) * 0.42 / half
	}
	return c
}

// Visible reports whether depth z lies inside the view window.
func (c Camera) Visible(z float64) bool {
	return z >= c.Near && z <= c.Far && z+c.FocalDepth > 0
}

// Scale returns the perspective factor at depth z.
func (c Camera) Scale(z float64) float64 {
	d := z + c.FocalDepth
	if d <= 0 {
		return 0
	}
	return c.FocalDepth / d
}

// Project maps a ground-plane point to the screen.
func (c Camera) Project(p Vec2) Projected {
	if !c.Visible(p.Z) {
		return Projected{}
	}
	k := c.Scale(p.Z)
	return Projected{
		X:       c.CenterX + p.X*k*c.LateralScale,
		Y:       c.HorizonY + k*(c.GroundY-c.HorizonY),
		Scale:   k,
		Visible: true,
	}
}

// Unproject returns the lateral world position shown at screenX for depth z.
// It fails outside the view window.
func (c Camera) Unproject(screenX, z float64) (float64, bool) {
	if !c.Visible(z) {
		return 0, false
	}
	k := c.Scale(z) * c.LateralScale
	if k == 0 {
		return 0, false
	}
	return (screenX - c.CenterX) / k, true
}

// DepthAtRow inverts the vertical mapping: the depth drawn at screen row y.
// It fails at or above the horizon.
func (c Camera) DepthAtRow(y float64) (float64, bool) {
	span := c.GroundY - c.HorizonY
	if span <= 0 || y <= c.HorizonY {
		return 0, false
	}
	k := (y - c.HorizonY) / span
	return c.FocalDepth/k - c.FocalDepth, true
}
