package neon

import (
	"math"
	"time"
)

// Clock turns host frame timestamps into fixed simulation steps.
type Clock struct {
	step     float64
	maxFrame float64
	acc      float64
	last     time.Time
	anchored bool
	fps      int
}

// NewClock creates a clock running tickRate steps per second that never
// accepts more than maxFrame seconds from a single frame.
func NewClock(tickRate int, maxFrame float64) *Clock {
	if tickRate <= 0 {
		tickRate = 60
	}
	if maxFrame <= 0 {
		maxFrame = 0.25
	}
	return &Clock{step: 1 / float64(tickRate), maxFrame: maxFrame}
}

// Step is the fixed timestep in seconds.
func (c *Clock) Step() float64 { return c.step }

// Anchor sets the wall-clock reference without producing elapsed time.
func (c *Clock) Anchor(now time.Time) {
	c.last = now
	c.anchored = true
}

// Unanchor makes the next Advance re-anchor instead of measuring a gap.
func (c *Clock) Unanchor() { c.anchored = false }

// Clear drops accumulated time and the anchor.
func (c *Clock) Clear() {
	c.acc = 0
	c.anchored = false
}

// Advance measures the time since the previous frame, clamped to maxFrame.
// The first call after Unanchor only anchors and returns 0.
func (c *Clock) Advance(now time.Time) float64 {
	if !c.anchored {
		c.Anchor(now)
		return 0
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	if dt <= 0 {
		return 0
	}
	c.fps = int(math.Round(1 / dt))
	if dt > c.maxFrame {
		dt = c.maxFrame
	}
	return dt
}

// Accumulate adds elapsed seconds to the pending budget.
func (c *Clock) Accumulate(dt float64) { c.acc += dt }

// Drain consumes one fixed step from the budget if enough time is banked.
func (c *Clock) Drain() bool {
	if c.acc+1e-9 < c.step {
		return false
	}
	c.acc -= c.step
	if c.acc < 0 {
		c.acc = 0
	}
	return true
}

// Pending returns the banked time not yet drained.
func (c *Clock) Pending() float64 { return c.acc }

// FPS is the frame rate estimated from the last measured frame.
func (c *Clock) FPS() int { return c.fps }
