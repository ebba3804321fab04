// Package registry lets game packages announce themselves from init(), so
// the hosts can list and create games by ID without importing them directly.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/vovakirdan/neon-runner/internal/core"
)

// Game is the contract between a game and the hosts that run it.
// Games hold pure logic; the host maps input, keeps time and draws.
type Game interface {
	// ID is the stable identifier used by the CLI and score storage.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a new run sized and seeded by cfg.
	// Called before the first run and again for every restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances exactly one fixed tick with the given input.
	Step(in core.InputFrame) core.StepResult

	// Render draws into dst. It must not change game state.
	Render(dst *core.Screen)

	// State reports score and lifecycle flags.
	State() core.GameState
}

// Framed is implemented by games that keep their own fixed-step clock.
// The host hands them wall-clock frame times instead of calling Step
// once per tick, so simulation speed is independent of the render rate.
type Framed interface {
	Frame(now time.Time, in core.InputFrame) core.StepResult
}

// Describer is implemented by games with a one-line rules summary.
type Describer interface {
	Description() string
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a fresh game instance.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game factory. It panics on an empty or duplicate ID,
// which can only be a programming error in an init function.
func Register(id string, f Factory) {
	if strings.TrimSpace(id) == "" {
		panic("registry: empty game id")
	}

	// Probe outside the lock; factories may be arbitrarily slow.
	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{info: info, factory: f}
}

// List returns every registered game sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}
	slices.SortFunc(result, func(a, b GameInfo) int { return strings.Compare(a.ID, b.ID) })
	return result
}

// Lookup returns the metadata of a registered game.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := entries[id]
	return e.info, ok
}

// Create instantiates a game by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
