package neon

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/core"
)

// Haptic pulse lengths attached to events.
const (
	hapticKill       = 10 * time.Millisecond
	hapticGate       = 20 * time.Millisecond
	hapticDetonation = 50 * time.Millisecond
	hapticHit        = 100 * time.Millisecond
)

// Flake is one weather particle in normalised screen space (0..1).
type Flake struct {
	X     float64
	Y     float64
	Speed float64
}

type inputState struct {
	dragX       float64
	dragEngaged bool
	left        bool
	right       bool
}

// Engine is a single simulation instance. It is driven by the host calling
// Frame once per rendered frame; it never schedules itself. All methods
// must be called from one goroutine.
type Engine struct {
	cfg      config.NeonConfig
	settings config.Settings
	seed     int64

	rng *rand.Rand // gameplay
	fx  *rand.Rand // cosmetics only

	camera   Camera
	clock    *Clock
	store    *Store
	director *Director

	phase Phase
	stats PlayerStats
	run   RunState
	input inputState
	lane  int

	fireTimer  float64
	invuln     float64
	shake      float64
	gridOffset float64
	flakes     []Flake
	tickCount  uint64

	events    []Event
	sinks     []Sink
	last      Stats
	inFrame   bool
	destroyed bool
}

// New creates an engine in the Menu phase with a fresh run.
func New(cfg config.NeonConfig, settings config.Settings, seed int64) *Engine {
	e := &Engine{
		cfg:      cfg,
		settings: settings,
		seed:     seed,
		camera:   NewCamera(cfg.Camera),
		clock:    NewClock(cfg.World.TickRate, cfg.World.MaxFrame),
		store:    NewStore(cfg.Effects.MaxParticles),
		phase:    PhaseMenu,
	}
	e.director = newDirector(&e.cfg)
	e.Reset()
	return e
}

// Reset reinitialises the run: player, entities, score and director.
// The gameplay RNG is reseeded so a run is reproducible from its seed.
func (e *Engine) Reset() {
	e.rng = rand.New(rand.NewSource(e.seed))    //#nosec G404 -- game randomness, not crypto
	e.fx = rand.New(rand.NewSource(e.seed + 1)) //#nosec G404 -- game randomness, not crypto

	e.store.Reset(Entity{
		Kind:   KindPlayer,
		Pos:    Vec2{X: 0, Z: e.cfg.World.PlayerZ},
		Radius: e.cfg.Player.Radius,
		HP:     1,
		MaxHP:  1,
		Color:  core.ColorNeonCyan,
	})
	e.stats = PlayerStats{
		Damage:          e.cfg.Player.Damage,
		FireRate:        e.cfg.Player.FireRate,
		ProjectileCount: e.cfg.Player.ProjectileCount,
		MoveSpeed:       e.cfg.Player.MoveSpeed,
	}
	e.run = RunState{Wave: 1}
	e.input = inputState{}
	e.lane = e.laneAt(0)
	e.fireTimer = 0
	e.invuln = 0
	e.shake = 0
	e.tickCount = 0
	e.director.reset()
	e.clock.Clear()
	e.last = e.buildStats()
}

// SetSeed changes the seed used by the next Reset.
func (e *Engine) SetSeed(seed int64) { e.seed = seed }

// AddSink registers an output consumer.
func (e *Engine) AddSink(s Sink) {
	if e.destroyed || s == nil {
		return
	}
	e.sinks = append(e.sinks, s)
}

// SetSettings replaces the player settings. Safe at any time.
func (e *Engine) SetSettings(s config.Settings) {
	if _, ok := config.ParseTier(string(s.Difficulty)); !ok {
		s.Difficulty = config.TierNormal
	}
	e.settings = s
	if !s.Weather {
		e.flakes = nil
	}
}

// Settings returns the active settings.
func (e *Engine) Settings() config.Settings { return e.settings }

// Start resets the run and begins playing, anchoring the clock at now.
func (e *Engine) Start(now time.Time) {
	e.Reset()
	e.SetPhase(PhasePlaying)
	e.clock.Clear()
	e.clock.Anchor(now)
}

// Stop returns to the menu. Calling it again has no effect.
func (e *Engine) Stop() {
	e.SetPhase(PhaseMenu)
}

// Pause freezes a run in progress. It is a no-op outside Playing.
func (e *Engine) Pause() {
	if e.phase != PhasePlaying {
		return
	}
	e.SetPhase(PhasePaused)
}

// Resume continues a paused run, re-anchoring the clock at now so the
// paused interval is not replayed. It is a no-op unless paused.
func (e *Engine) Resume(now time.Time) {
	if e.phase != PhasePaused {
		return
	}
	e.SetPhase(PhasePlaying)
	e.clock.Anchor(now)
}

// SetPhase moves the lifecycle to p and emits a phase event.
// Banked time is dropped on every transition.
func (e *Engine) SetPhase(p Phase) {
	if e.destroyed || p == e.phase {
		return
	}
	e.phase = p
	e.clock.Clear()
	e.emit(EventPhase, e.store.Player().Pos, 0, 0, p.String())
}

// Phase returns the current lifecycle phase.
func (e *Engine) Phase() Phase { return e.phase }

// Destroy detaches all sinks. Later calls to Frame and Step do nothing.
func (e *Engine) Destroy() {
	e.destroyed = true
	e.sinks = nil
	e.events = nil
}

// Frame drives the simulation up to now and hands results to the sinks.
// While Playing it drains whole fixed steps; in the Menu only cosmetic
// state moves. Frame cannot be re-entered from a sink.
func (e *Engine) Frame(now time.Time) Stats {
	if e.destroyed || e.inFrame {
		return e.last
	}
	e.inFrame = true
	defer func() { e.inFrame = false }()

	wasPlaying := e.phase == PhasePlaying
	switch e.phase {
	case PhasePlaying:
		e.clock.Accumulate(e.clock.Advance(now))
		for e.phase == PhasePlaying && e.clock.Drain() {
			e.tick(e.clock.Step())
		}
	case PhaseMenu:
		e.cosmetic(e.clock.Advance(now))
	}

	e.last = e.buildStats()
	e.flush(wasPlaying)
	return e.last
}

// Step runs exactly one fixed tick if a run is in progress.
func (e *Engine) Step() Stats {
	if e.destroyed || e.inFrame {
		return e.last
	}
	e.inFrame = true
	defer func() { e.inFrame = false }()

	wasPlaying := e.phase == PhasePlaying
	if wasPlaying {
		e.tick(e.clock.Step())
	}
	e.last = e.buildStats()
	e.flush(wasPlaying)
	return e.last
}

// flush hands the frame's stats, then its queued events, to the sinks.
func (e *Engine) flush(withStats bool) {
	if withStats {
		for _, s := range e.sinks {
			s.Stats(e.last)
		}
	}
	events := e.events
	e.events = nil
	for _, ev := range events {
		for _, s := range e.sinks {
			s.Event(ev)
		}
	}
}

// tick is one fixed step: movement, collision, spawning, pruning.
func (e *Engine) tick(dt float64) {
	e.tickCount++
	if e.stats.ProjectileCount < 1 {
		e.gameOver()
		return
	}

	e.store.Index()
	e.advanceRun(dt)

	e.movePlayer(dt)
	e.fire(dt)
	e.moveBullets(dt)
	e.moveEnemies(dt)
	e.moveBoss(dt)
	e.moveProps(dt)
	e.moveParticles(dt)
	e.cull()

	e.collide()
	e.resolveStuck(dt)

	e.director.Update(e, dt)
	e.store.Prune()
}

func (e *Engine) advanceRun(dt float64) {
	w := e.cfg.World
	speed := w.BaseScrollSpeed + float64(e.run.Wave)*w.ScrollPerWave
	e.run.Distance += speed * dt
	e.run.Wave = 1 + int(e.run.Distance/w.WaveLength)
	e.run.Score += w.ScorePerSecond * dt

	e.gridOffset += speed * dt
	e.shake = math.Max(0, e.shake-dt)
	e.invuln = math.Max(0, e.invuln-dt)
	e.updateFlakes(dt)
}

// cosmetic runs in the Menu: background scroll and weather only.
func (e *Engine) cosmetic(dt float64) {
	e.gridOffset += e.cfg.Effects.GridSpeed * dt
	e.updateFlakes(dt)
}

func (e *Engine) updateFlakes(dt float64) {
	if !e.settings.Weather {
		return
	}
	if e.flakes == nil {
		e.flakes = make([]Flake, e.cfg.Effects.WeatherFlakes)
		for i := range e.flakes {
			e.flakes[i] = Flake{X: e.fx.Float64(), Y: e.fx.Float64(), Speed: 0.05 + e.fx.Float64()*0.15}
		}
	}
	for i := range e.flakes {
		f := &e.flakes[i]
		f.Y += f.Speed * dt
		f.X += math.Sin(f.Y*6+float64(i)) * 0.02 * dt
		if f.Y > 1 {
			f.Y -= 1
			f.X = e.fx.Float64()
		}
	}
}

func (e *Engine) gameOver() {
	if e.phase == PhaseGameOver {
		return
	}
	e.SetPhase(PhaseGameOver)
	e.emit(EventGameOver, e.store.Player().Pos, math.Floor(e.run.Score), 0, "")
}

func (e *Engine) emit(kind EventKind, pos Vec2, value float64, haptic time.Duration, detail string) {
	if e.destroyed {
		return
	}
	ev := Event{
		Kind:   kind,
		Tick:   e.tickCount,
		Pos:    pos,
		Value:  value,
		Phase:  e.phase,
		Detail: detail,
		Sound:  e.settings.Sound,
	}
	if e.settings.Haptics {
		ev.Haptic = haptic
	}
	e.events = append(e.events, ev)
}

func (e *Engine) buildStats() Stats {
	s := Stats{
		Score:           int(e.run.Score),
		Distance:        e.run.Distance,
		Wave:            e.run.Wave,
		Phase:           e.phase,
		FPS:             e.clock.FPS(),
		ActiveEntities:  e.store.Len(),
		DPS:             e.DPS(),
		ProjectileCount: e.stats.ProjectileCount,
	}
	if b := e.store.FindBoss(); b != nil && b.MaxHP > 0 {
		r := core.Clamp(b.HP/b.MaxHP, 0, 1)
		s.BossHealth = &r
	}
	return s
}

// DPS is the player's potential damage per second, capped for the director.
func (e *Engine) DPS() float64 {
	return math.Min(e.stats.DPS(), e.cfg.Combat.DPSCap)
}

// Stats returns the snapshot from the last frame.
func (e *Engine) Stats() Stats { return e.last }

// PlayerStats returns the current loadout.
func (e *Engine) PlayerStats() PlayerStats { return e.stats }

// Run returns the current run progress.
func (e *Engine) Run() RunState { return e.run }

// Player returns a copy of the player entity.
func (e *Engine) Player() Entity { return *e.store.Player() }

// Lane returns the lane the player occupies.
func (e *Engine) Lane() int { return e.lane }

// Entities returns copies of all active non-particle entities.
func (e *Engine) Entities() []Entity { return e.store.Entities() }

// Particles returns copies of all active particles.
func (e *Engine) Particles() []Entity { return e.store.Particles() }

// Camera returns the reference projection.
func (e *Engine) Camera() Camera { return e.camera }

// Config returns the tuning in use.
func (e *Engine) Config() config.NeonConfig { return e.cfg }

// Shake returns the remaining camera shake in seconds.
func (e *Engine) Shake() float64 { return e.shake }

// GridOffset returns how far the ground grid has scrolled.
func (e *Engine) GridOffset() float64 { return e.gridOffset }

// Flakes returns the weather particles, empty when weather is off.
func (e *Engine) Flakes() []Flake { return e.flakes }

// Tick returns the number of fixed steps taken this run.
func (e *Engine) Tick() uint64 { return e.tickCount }

// BossActive reports whether a boss fight is in progress.
func (e *Engine) BossActive() bool { return e.director.bossActive }

// HalfSpan is the lateral half-width of the track.
func (e *Engine) HalfSpan() float64 { return e.cfg.HalfSpan() }

func (e *Engine) laneAt(x float64) int {
	w := e.cfg.World
	if w.LaneWidth <= 0 || w.LaneCount <= 0 {
		return 0
	}
	return core.Clamp(int(math.Floor((x+e.cfg.HalfSpan())/w.LaneWidth)), 0, w.LaneCount-1)
}

// LaneCenter returns the lateral centre of lane l.
func (e *Engine) LaneCenter(l int) float64 {
	return -e.cfg.HalfSpan() + (float64(l)+0.5)*e.cfg.World.LaneWidth
}
