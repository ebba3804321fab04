package neon

// SetDragTarget sets a continuous lateral target in world units. While
// engaged it takes precedence over the left/right keys.
func (e *Engine) SetDragTarget(x float64, engaged bool) {
	e.input.dragX = x
	e.input.dragEngaged = engaged
}

// SetDragScreen resolves a screen x on the reference camera to a world
// target at the player's depth. It returns false, leaving input unchanged,
// when the player's depth is outside the view window.
func (e *Engine) SetDragScreen(screenX float64, engaged bool) bool {
	x, ok := e.camera.Unproject(screenX, e.store.Player().Pos.Z)
	if !ok {
		return false
	}
	e.SetDragTarget(x, engaged)
	return true
}

// ReleaseDrag disengages the drag target.
func (e *Engine) ReleaseDrag() { e.input.dragEngaged = false }

// SetKeys sets the held state of the discrete left/right intents.
func (e *Engine) SetKeys(left, right bool) {
	e.input.left = left
	e.input.right = right
}
