// Package neon implements Neon Runner, a lane-based survival shooter.
// The Engine is a self-contained fixed-step simulation; Game adapts it to
// the game registry and draws it into a terminal cell grid.
package neon

import (
	"sync"
	"time"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/registry"
)

var (
	optsMu          sync.Mutex
	configPath      string
	defaultSettings = config.DefaultSettings()
)

// SetConfigPath sets the custom tuning path used by new games.
func SetConfigPath(path string) {
	optsMu.Lock()
	defer optsMu.Unlock()
	configPath = path
}

// SetDefaultSettings sets the settings new games start with.
func SetDefaultSettings(s config.Settings) {
	optsMu.Lock()
	defer optsMu.Unlock()
	defaultSettings = s
}

func options() (string, config.Settings) {
	optsMu.Lock()
	defer optsMu.Unlock()
	return configPath, defaultSettings
}

func init() {
	registry.Register("neon", func() registry.Game { return NewGame(config.StuckRuleProximity) })
	registry.Register("neon_classic", func() registry.Game { return NewGame(config.StuckRuleWeapons) })
}

// Settings overlay rows.
const (
	settingDifficulty = iota
	settingSound
	settingHaptics
	settingReduced
	settingWeather
	settingCount
)

// Game adapts the Engine to the registry's Game and Framed interfaces.
type Game struct {
	rule    string
	cfg     config.NeonConfig
	engine  *Engine
	camera  Camera
	runtime core.RuntimeConfig
	now     time.Time
	cursor  int

	sinks      []Sink
	onSettings func(config.Settings)
	settings   *config.Settings
}

// NewGame creates a game using the given stuck rule.
func NewGame(stuckRule string) *Game {
	return &Game{rule: stuckRule}
}

// ID returns the registry identifier.
func (g *Game) ID() string {
	if g.rule == config.StuckRuleWeapons {
		return "neon_classic"
	}
	return "neon"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.rule == config.StuckRuleWeapons {
		return "Neon Runner (Classic)"
	}
	return "Neon Runner"
}

// Description summarizes how enemies that reach the squad hurt it.
func (g *Game) Description() string {
	if g.rule == config.StuckRuleWeapons {
		return "latched enemies drain the squad until shot down"
	}
	return "latched enemies drain the squad and wither while close"
}

// AddSink attaches an output consumer to the engine, now or when it is created.
func (g *Game) AddSink(s Sink) {
	g.sinks = append(g.sinks, s)
	if g.engine != nil {
		g.engine.AddSink(s)
	}
}

// OnSettingsChange registers a callback fired whenever the in-game
// settings overlay changes a value.
func (g *Game) OnSettingsChange(fn func(config.Settings)) {
	g.onSettings = fn
}

// UseSettings overrides the package defaults for this game only.
func (g *Game) UseSettings(s config.Settings) {
	g.settings = &s
	if g.engine != nil {
		g.engine.SetSettings(s)
	}
}

// Settings returns the settings the current or next run plays with.
func (g *Game) Settings() config.Settings {
	switch {
	case g.engine != nil:
		return g.engine.Settings()
	case g.settings != nil:
		return *g.settings
	}
	_, s := options()
	return s
}

// Engine exposes the underlying simulation, nil before the first Reset.
func (g *Game) Engine() *Engine { return g.engine }

// Reset starts a new run sized for the runtime screen.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.runtime = rc
	if g.engine == nil {
		path, settings := options()
		if g.settings != nil {
			settings = *g.settings
		}
		cfg, err := config.LoadNeon(path)
		if err != nil {
			cfg = config.DefaultNeonConfig()
		}
		cfg.Enemies.StuckRule = g.rule
		g.engine = New(cfg, settings, rc.Seed)
		for _, s := range g.sinks {
			g.engine.AddSink(s)
		}
	} else {
		g.engine.SetSeed(rc.Seed)
	}
	g.cfg = g.engine.Config()
	g.camera = TerminalCamera(g.cfg, rc.ScreenW, rc.ScreenH)
	g.cursor = 0
	g.engine.Reset()
	g.engine.SetPhase(PhasePlaying)
}

// Resize adapts the camera to a new terminal size without restarting the run.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	if g.engine != nil {
		g.camera = TerminalCamera(g.cfg, w, h)
	}
}

// Step advances exactly one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.now = g.now.Add(time.Duration(g.engine.clock.Step() * float64(time.Second)))
	g.applyInput(in)
	before := g.engine.Tick()
	g.engine.Step()
	return core.StepResult{State: g.State(), Ticks: int(g.engine.Tick() - before)} //#nosec G115 -- per-call tick delta is small
}

// Frame advances the engine to wall-clock time now.
func (g *Game) Frame(now time.Time, in core.InputFrame) core.StepResult {
	g.now = now
	g.applyInput(in)
	before := g.engine.Tick()
	g.engine.Frame(now)
	return core.StepResult{State: g.State(), Ticks: int(g.engine.Tick() - before)} //#nosec G115 -- per-call tick delta is small
}

func (g *Game) applyInput(in core.InputFrame) {
	e := g.engine
	switch e.Phase() {
	case PhaseSettings:
		g.settingsInput(in)
		return
	case PhaseGameOver:
		return
	}

	if in.Has(core.ActionPause) {
		if e.Phase() == PhasePaused {
			e.Resume(g.now)
		} else {
			e.Pause()
		}
	}
	if in.Has(core.ActionSettings) {
		e.Pause()
		e.SetPhase(PhaseSettings)
		g.cursor = 0
		return
	}

	e.SetKeys(in.Has(core.ActionLeft), in.Has(core.ActionRight))
	if in.Pointer.Set {
		x, ok := g.camera.Unproject(float64(in.Pointer.X)+0.5, g.cfg.World.PlayerZ)
		if ok {
			e.SetDragTarget(x, in.Pointer.Engaged)
		} else {
			e.ReleaseDrag()
		}
	}
}

func (g *Game) settingsInput(in core.InputFrame) {
	e := g.engine
	switch {
	case in.Has(core.ActionSettings), in.Has(core.ActionBack):
		e.SetPhase(PhasePaused)
		return
	case in.Has(core.ActionUp):
		g.cursor = (g.cursor + settingCount - 1) % settingCount
		return
	case in.Has(core.ActionDown):
		g.cursor = (g.cursor + 1) % settingCount
		return
	case !in.Has(core.ActionConfirm) && !in.Has(core.ActionLeft) && !in.Has(core.ActionRight):
		return
	}

	s := e.Settings()
	switch g.cursor {
	case settingDifficulty:
		s.Difficulty = s.Difficulty.Next()
	case settingSound:
		s.Sound = !s.Sound
	case settingHaptics:
		s.Haptics = !s.Haptics
	case settingReduced:
		s.ReducedEffects = !s.ReducedEffects
	case settingWeather:
		s.Weather = !s.Weather
	}
	e.SetSettings(s)
	if g.onSettings != nil {
		g.onSettings(s)
	}
}

// State reports score and lifecycle for the platform.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	st := g.engine.Stats()
	ph := g.engine.Phase()
	return core.GameState{
		Score:    st.Score,
		Wave:     st.Wave,
		GameOver: ph == PhaseGameOver,
		Paused:   ph == PhasePaused || ph == PhaseSettings,
	}
}
