package core

import "fmt"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Render frames per second; fixed-step games keep their own rate
	Seed     int64 // RNG seed; 0 means the platform picks one
}

// DefaultConfig returns a RuntimeConfig sized for a classic terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// Validate rejects configurations no game can run with.
func (c RuntimeConfig) Validate() error {
	if c.ScreenW <= 0 || c.ScreenH <= 0 {
		return fmt.Errorf("core: invalid screen size %dx%d", c.ScreenW, c.ScreenH)
	}
	if c.TickRate <= 0 || c.TickRate > 240 {
		return fmt.Errorf("core: tick rate %d out of range 1..240", c.TickRate)
	}
	return nil
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Wave     int  // Current wave, 0 for games without waves
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused or showing an overlay
}

// StepResult is returned by Game.Step() and Framed.Frame().
type StepResult struct {
	State GameState
	Ticks int // Fixed simulation ticks run for this call
}
