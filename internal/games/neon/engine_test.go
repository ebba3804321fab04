package neon

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/neon-runner/internal/config"
)

var t0 = time.Unix(1_700_000_000, 0)

type recordingSink struct {
	stats  []Stats
	events []Event
}

func (r *recordingSink) Stats(s Stats)  { r.stats = append(r.stats, s) }
func (r *recordingSink) Event(ev Event) { r.events = append(r.events, ev) }

func (r *recordingSink) count(kind EventKind) int {
	n := 0
	for _, ev := range r.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func newTestEngine(t *testing.T, cfg config.NeonConfig) (*Engine, *recordingSink) {
	t.Helper()
	e := New(cfg, config.DefaultSettings(), 42)
	sink := &recordingSink{}
	e.AddSink(sink)
	e.Start(t0)
	return e, sink
}

// place admits entities immediately and rebuilds the views.
func place(e *Engine, ents ...Entity) {
	for _, en := range ents {
		e.store.Add(en)
	}
	e.store.Prune()
	e.store.Index()
}

func countKind(ents []Entity, kinds ...Kind) int {
	n := 0
	for _, en := range ents {
		for _, k := range kinds {
			if en.Kind == k {
				n++
			}
		}
	}
	return n
}

func TestGateMultiplyScenario(t *testing.T) {
	e, sink := newTestEngine(t, config.DefaultNeonConfig())
	e.stats.ProjectileCount = 5
	place(e, Entity{
		Kind: KindGate,
		Lane: 1,
		Pos:  Vec2{X: e.LaneCenter(1), Z: 0},
		Gate: GateEffect{Op: GateMultiply, Value: 2},
	})

	e.Step()

	if e.Lane() != 1 {
		t.Fatalf("player should be in lane 1, got %d", e.Lane())
	}
	if got := e.PlayerStats().ProjectileCount; got != 10 {
		t.Errorf("ProjectileCount = %d, expected 10", got)
	}
	if n := countKind(e.Entities(), KindGate); n != 0 {
		t.Errorf("gate should be consumed, %d remain", n)
	}
	if sink.count(EventGate) != 1 {
		t.Errorf("expected one gate event, got %d", sink.count(EventGate))
	}
}

func TestGateInOtherLaneIgnored(t *testing.T) {
	e, _ := newTestEngine(t, config.DefaultNeonConfig())
	e.stats.ProjectileCount = 5
	place(e, Entity{
		Kind: KindGate,
		Lane: 0,
		Pos:  Vec2{X: e.LaneCenter(0), Z: 0},
		Gate: GateEffect{Op: GateMultiply, Value: 2},
	})
	e.Step()
	if got := e.PlayerStats().ProjectileCount; got != 5 {
		t.Errorf("ProjectileCount = %d, gate in another lane should not apply", got)
	}
}

func TestGateEffectApply(t *testing.T) {
	tests := []struct {
		name     string
		effect   GateEffect
		count    int
		expected int
	}{
		{"add", GateEffect{GateAdd, 3}, 5, 8},
		{"add floors", GateEffect{GateAdd, 2.7}, 1, 3},
		{"subtract clamps", GateEffect{GateAdd, -10}, 5, 0},
		{"double", GateEffect{GateMultiply, 2}, 5, 10},
		{"halve floors", GateEffect{GateMultiply, 0.5}, 5, 2},
		{"fractional multiply floors", GateEffect{GateMultiply, 1.5}, 3, 4},
		{"negative multiply clamps", GateEffect{GateMultiply, -1}, 3, 0},
		{"divide large", GateEffect{GateMultiply, 0.25}, 3, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.effect.Apply(tc.count); got != tc.expected {
				t.Errorf("Apply(%d) = %d, expected %d", tc.count, got, tc.expected)
			}
		})
	}
}

func TestGateEffectLabel(t *testing.T) {
	tests := []struct {
		effect   GateEffect
		expected string
	}{
		{GateEffect{GateAdd, 5}, "+5"},
		{GateEffect{GateAdd, -3}, "-3"},
		{GateEffect{GateMultiply, 2}, "x2"},
		{GateEffect{GateMultiply, 0.25}, "/4"},
	}
	for _, tc := range tests {
		if got := tc.effect.Label(); got != tc.expected {
			t.Errorf("Label() = %q, expected %q", got, tc.expected)
		}
	}
}

func TestStuckDrainEndsRun(t *testing.T) {
	for _, rule := range []string{config.StuckRuleProximity, config.StuckRuleWeapons} {
		t.Run(rule, func(t *testing.T) {
			cfg := config.DefaultNeonConfig()
			cfg.Enemies.StuckRule = rule
			e, sink := newTestEngine(t, cfg)
			e.stats.ProjectileCount = 1
			place(e, Entity{
				Kind:   KindGrunt,
				Pos:    Vec2{Z: 10},
				Radius: 18,
				HP:     1e6,
				MaxHP:  1e6,
				Stuck:  Stuck{Active: true, Offset: Vec2{Z: 10}, Cooldown: 0.001},
			})

			e.Step()
			if got := e.PlayerStats().ProjectileCount; got != 0 {
				t.Fatalf("ProjectileCount = %d, expected 0 after one drain", got)
			}
			if e.Phase() != PhasePlaying {
				t.Fatalf("run should end on the next tick, phase is %v", e.Phase())
			}

			e.Step()
			if e.Phase() != PhaseGameOver {
				t.Fatalf("Phase = %v, expected gameover", e.Phase())
			}

			e.Step()
			e.Step()
			if n := sink.count(EventGameOver); n != 1 {
				t.Errorf("expected exactly one game over event, got %d", n)
			}
			if e.PlayerStats().ProjectileCount < 0 {
				t.Error("projectile count went negative")
			}
		})
	}
}

func TestStuckRulePassiveDamage(t *testing.T) {
	tests := []struct {
		rule    string
		damaged bool
	}{
		{config.StuckRuleProximity, true},
		{config.StuckRuleWeapons, false},
	}
	for _, tc := range tests {
		t.Run(tc.rule, func(t *testing.T) {
			cfg := config.DefaultNeonConfig()
			cfg.Enemies.StuckRule = tc.rule
			e, _ := newTestEngine(t, cfg)
			// Offset laterally so the squad's own bullets miss it.
			place(e, Entity{
				Kind:   KindGrunt,
				Pos:    Vec2{X: 100},
				Radius: 18,
				HP:     1000,
				MaxHP:  1000,
				Stuck:  Stuck{Active: true, Offset: Vec2{X: 100}, Cooldown: 100},
			})
			for range 30 {
				e.Step()
			}
			var hp float64
			for _, en := range e.Entities() {
				if en.Kind == KindGrunt && en.Stuck.Active {
					hp = en.HP
				}
			}
			if tc.damaged && hp >= 1000 {
				t.Errorf("proximity rule should wear stuck enemies down, hp = %v", hp)
			}
			if !tc.damaged && hp != 1000 {
				t.Errorf("weapons rule should leave stuck enemies alone, hp = %v", hp)
			}
		})
	}
}

func TestLatchAndOverflow(t *testing.T) {
	cfg := config.DefaultNeonConfig()
	cfg.Enemies.MaxStuck = 1
	e, sink := newTestEngine(t, cfg)
	e.stats.ProjectileCount = 5
	place(e,
		Entity{Kind: KindGrunt, Pos: Vec2{Z: 5}, Radius: 18, HP: 100, MaxHP: 100, Score: 10},
		Entity{Kind: KindGrunt, Pos: Vec2{Z: 5}, Radius: 18, HP: 100, MaxHP: 100, Score: 10},
	)
	score := e.Run().Score

	e.Step()

	stuck := 0
	for _, en := range e.Entities() {
		if en.Stuck.Active {
			stuck++
		}
	}
	if stuck != 1 {
		t.Errorf("expected one latched enemy, got %d", stuck)
	}
	if got := e.PlayerStats().ProjectileCount; got != 4 {
		t.Errorf("overflow contact should cost one unit, count = %d", got)
	}
	if sink.count(EventLatch) != 1 || sink.count(EventPlayerHit) != 1 {
		t.Errorf("latch=%d hit=%d, expected 1 each", sink.count(EventLatch), sink.count(EventPlayerHit))
	}
	if e.Run().Score-score >= 10 {
		t.Error("an enemy traded for a unit should not award score")
	}
}

func TestGraceWindowDoesNotBlockGates(t *testing.T) {
	e, _ := newTestEngine(t, config.DefaultNeonConfig())
	e.stats.ProjectileCount = 3
	e.invuln = 10
	place(e, Entity{
		Kind: KindGate,
		Lane: 1,
		Pos:  Vec2{X: 0, Z: 0},
		Gate: GateEffect{Op: GateAdd, Value: 4},
	})
	e.Step()
	if got := e.PlayerStats().ProjectileCount; got != 7 {
		t.Errorf("gate should apply during grace, count = %d", got)
	}
	if e.loseUnit(Vec2{}) {
		t.Error("loseUnit should be blocked during grace")
	}
}

func TestMediumBombScenario(t *testing.T) {
	e, sink := newTestEngine(t, config.DefaultNeonConfig())
	origin := Vec2{X: 0, Z: 1000}
	place(e,
		Entity{Kind: KindPickup, Pos: origin, Radius: 30, Pickup: PickupMedium},
		Entity{Kind: KindGrunt, Pos: Vec2{X: 100, Z: 1000}, Radius: 18, HP: 10, MaxHP: 10, Score: 10},
		Entity{Kind: KindSprinter, Pos: Vec2{X: 0, Z: 1400}, Radius: 22, HP: 10, MaxHP: 10, Score: 30},
		Entity{Kind: KindTank, Pos: Vec2{X: -300, Z: 1300}, Radius: 40, HP: 10, MaxHP: 10, Score: 50},
		Entity{Kind: KindGrunt, Pos: Vec2{X: 0, Z: 1700}, Radius: 18, HP: 10, MaxHP: 10, Score: 10},
	)
	before := e.Run().Score

	e.detonate(e.store.pickups[0])

	if got := e.Run().Score - before; got != 90 {
		t.Errorf("score gained = %v, expected 90", got)
	}
	for _, en := range e.store.enemies {
		inside := en.Pos.Dist(origin) <= e.BlastRadius(PickupMedium)
		if inside == en.Active {
			t.Errorf("enemy at %+v: active=%v inside=%v", en.Pos, en.Active, inside)
		}
	}
	if e.store.pickups[0].Active {
		t.Error("pickup should be consumed")
	}
	if e.Shake() <= 0 {
		t.Error("detonation should shake the camera")
	}

	e.Step()
	if sink.count(EventDetonation) != 1 || sink.count(EventKill) != 3 {
		t.Errorf("detonation=%d kill=%d, expected 1 and 3", sink.count(EventDetonation), sink.count(EventKill))
	}
}

func TestClusterIsForwardCone(t *testing.T) {
	e, _ := newTestEngine(t, config.DefaultNeonConfig())
	origin := Vec2{Z: 500}
	tests := []struct {
		name string
		pos  Vec2
		hit  bool
	}{
		{"ahead", Vec2{X: 0, Z: 1200}, true},
		{"ahead wide", Vec2{X: 350, Z: 1600}, true},
		{"behind", Vec2{X: 0, Z: 200}, false},
		{"near but wide", Vec2{X: 300, Z: 550}, false},
		{"too far", Vec2{X: 0, Z: 1800}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := e.inBlast(PickupCluster, origin, tc.pos); got != tc.hit {
				t.Errorf("inBlast(%+v) = %v, expected %v", tc.pos, got, tc.hit)
			}
		})
	}
}

func TestBombDamagesBoss(t *testing.T) {
	e, _ := newTestEngine(t, config.DefaultNeonConfig())
	place(e,
		Entity{Kind: KindPickup, Pos: Vec2{Z: 1000}, Pickup: PickupLarge},
		Entity{Kind: KindBoss, Pos: Vec2{Z: 1500}, Radius: 80, HP: 5000, MaxHP: 5000},
	)
	e.detonate(e.store.pickups[0])
	if hp := e.store.Boss().HP; hp != 5000-e.cfg.Pickups.BossBombDamage {
		t.Errorf("boss hp = %v, expected a fixed bomb hit", hp)
	}
}

func TestKillIsIdempotent(t *testing.T) {
	e, _ := newTestEngine(t, config.DefaultNeonConfig())
	place(e, Entity{Kind: KindGrunt, Pos: Vec2{Z: 800}, Radius: 18, HP: 15, MaxHP: 15, Score: 10})
	en := e.store.enemies[0]
	parts := len(e.Particles())
	score := e.Run().Score

	if !e.kill(en) {
		t.Fatal("first kill should succeed")
	}
	afterParts := len(e.Particles())
	if afterParts-parts != killBurst(15) {
		t.Errorf("burst added %d particles, expected %d", afterParts-parts, killBurst(15))
	}
	if e.Run().Score-score != 10 {
		t.Errorf("score gained %v, expected 10", e.Run().Score-score)
	}

	if e.kill(en) {
		t.Error("second kill should be a no-op")
	}
	e.damage(en, 100)
	if len(e.Particles()) != afterParts || e.Run().Score-score != 10 {
		t.Error("re-processing an inactive enemy must have no effect")
	}
}

func TestBurstLimits(t *testing.T) {
	e, _ := newTestEngine(t, config.DefaultNeonConfig())
	e.burst(Vec2{}, 100, 0)
	if n := len(e.Particles()); n != e.cfg.Effects.BurstCap {
		t.Errorf("burst should cap at %d, got %d", e.cfg.Effects.BurstCap, n)
	}
	for range 20 {
		e.burst(Vec2{}, 15, 0)
	}
	if n := len(e.Particles()); n > e.cfg.Effects.MaxParticles {
		t.Errorf("particles = %d, cap is %d", n, e.cfg.Effects.MaxParticles)
	}

	s := config.DefaultSettings()
	s.ReducedEffects = true
	reduced := New(config.DefaultNeonConfig(), s, 1)
	reduced.burst(Vec2{}, 15, 0)
	if n := len(reduced.Particles()); n != 8 {
		t.Errorf("reduced effects should halve 15 to 8, got %d", n)
	}
}

func TestBulletRangeCutoff(t *testing.T) {
	e, _ := newTestEngine(t, config.DefaultNeonConfig())
	speed := e.cfg.Combat.BulletSpeed
	place(e,
		Entity{
			Kind:   KindBullet,
			Pos:    Vec2{Z: 2990},
			Vel:    Vec2{Z: speed},
			Radius: 10,
			Damage: 10,
			Bullet: BulletState{OriginZ: 0, BaseDamage: 10, BaseRadius: 10},
		},
		Entity{Kind: KindGrunt, Pos: Vec2{Z: 3015}, Radius: 18, HP: 100, MaxHP: 100},
	)
	bulletID := e.store.bullets[0].ID

	e.Step()

	for _, en := range e.Entities() {
		if en.ID == bulletID {
			t.Error("bullet past range should be removed")
		}
		if en.Kind == KindGrunt && en.HP != 100 {
			t.Errorf("no hits past range, grunt hp = %v", en.HP)
		}
	}
}

func TestBulletFadeWindow(t *testing.T) {
	e, _ := newTestEngine(t, config.DefaultNeonConfig())
	c := e.cfg.Combat
	step := c.BulletSpeed / float64(e.cfg.World.TickRate)
	start := c.BulletRange - c.BulletFade/2 - step
	place(e, Entity{
		Kind:   KindBullet,
		Pos:    Vec2{Z: start},
		Vel:    Vec2{Z: c.BulletSpeed},
		Radius: 10,
		Damage: 10,
		Bullet: BulletState{OriginZ: 0, BaseDamage: 10, BaseRadius: 10},
	})
	b := e.store.bullets[0]
	e.moveBullets(1 / float64(e.cfg.World.TickRate))
	if math.Abs(b.Damage-5) > 1e-6 || math.Abs(b.Radius-5) > 1e-6 {
		t.Errorf("halfway through the fade: damage=%v radius=%v, expected 5", b.Damage, b.Radius)
	}
}

func TestAutoFireVolley(t *testing.T) {
	e, sink := newTestEngine(t, config.DefaultNeonConfig())
	e.stats.ProjectileCount = 30

	e.Step()

	var bullets []Entity
	for _, en := range e.Entities() {
		if en.Kind == KindBullet {
			bullets = append(bullets, en)
		}
	}
	if len(bullets) != e.cfg.Combat.MaxShots {
		t.Fatalf("expected %d bullets, got %d", e.cfg.Combat.MaxShots, len(bullets))
	}
	for _, b := range bullets {
		if math.Abs(b.Damage-25) > 1e-9 {
			t.Errorf("per-bullet damage = %v, expected 25", b.Damage)
		}
	}
	if sink.count(EventShot) != 1 {
		t.Errorf("expected one volley, got %d", sink.count(EventShot))
	}

	// The next volley waits 1/fireRate seconds.
	e.Step()
	if sink.count(EventShot) != 1 {
		t.Error("fire rate should gate the next volley")
	}
}

func TestAutoAimLeadsToTarget(t *testing.T) {
	e, _ := newTestEngine(t, config.DefaultNeonConfig())
	place(e, Entity{Kind: KindGrunt, Pos: Vec2{X: 50, Z: 1500}, Radius: 18, HP: 100, MaxHP: 100})
	if a := e.aimAngle(); a <= 0 || a > e.cfg.Combat.AimCone*math.Pi/180 {
		t.Errorf("aimAngle() = %v, expected a small positive angle", a)
	}

	place(e, Entity{Kind: KindGrunt, Pos: Vec2{X: -250, Z: 400}, Radius: 18, HP: 100, MaxHP: 100})
	if a := e.aimAngle(); a <= 0 {
		t.Errorf("targets outside the cone are ignored, got %v", a)
	}
}

func TestNonNegativeProjectileCount(t *testing.T) {
	e, _ := newTestEngine(t, config.DefaultNeonConfig())
	e.stats.ProjectileCount = 1
	for range 5 {
		e.invuln = 0
		e.loseUnit(Vec2{})
	}
	if got := e.PlayerStats().ProjectileCount; got != 0 {
		t.Errorf("ProjectileCount = %d, expected 0", got)
	}
}

func TestBossTriggerScenario(t *testing.T) {
	e, sink := newTestEngine(t, config.DefaultNeonConfig())
	e.stats.ProjectileCount = 5
	e.run.Distance = e.cfg.Boss.Interval + 1

	e.Step()

	if !e.BossActive() {
		t.Fatal("boss should be active")
	}
	if n := countKind(e.Entities(), KindBoss); n != 1 {
		t.Fatalf("expected exactly one boss, got %d", n)
	}
	if sink.count(EventBossSpawn) != 1 {
		t.Errorf("expected one boss spawn event, got %d", sink.count(EventBossSpawn))
	}
	timer := e.director.EnemyTimer()

	for range 240 {
		e.Step()
	}

	if n := countKind(e.Entities(), KindBoss); n != 1 {
		t.Errorf("still expected exactly one boss, got %d", n)
	}
	if e.director.EnemyTimer() != timer {
		t.Errorf("enemy timer moved during the fight: %v -> %v", timer, e.director.EnemyTimer())
	}
	if n := countKind(e.Entities(), KindGrunt, KindTank, KindSprinter); n != 0 {
		t.Errorf("regular spawns should be suspended, found %d enemies", n)
	}
	if e.Stats().BossHealth == nil {
		t.Error("stats should report boss health")
	}

	// Defeat the boss.
	e.store.Index()
	boss := e.store.Boss()
	e.kill(boss)
	if e.BossActive() {
		t.Fatal("boss kill should clear the fight")
	}
	if expected := e.Run().Distance + e.cfg.Boss.Interval; e.director.NextBossAt() != expected {
		t.Errorf("NextBossAt = %v, expected %v", e.director.NextBossAt(), expected)
	}

	// The recovery window keeps the spawner quiet for a moment.
	e.Step()
	if e.director.EnemyTimer() != timer {
		t.Error("enemy timer should not run during recovery")
	}
	if e.Stats().BossHealth != nil {
		t.Error("boss health should be absent after the fight")
	}
}

func TestBossHoverFiresAimedShots(t *testing.T) {
	e, _ := newTestEngine(t, config.DefaultNeonConfig())
	e.spawnBoss()
	e.director.bossActive = true
	e.store.Prune()
	e.store.Index()
	b := e.store.Boss()
	b.Pos.Z = e.cfg.Boss.HoverZ
	b.Boss.Hovering = true
	b.Boss.FireTimer = 0.001

	e.Step()

	found := false
	for _, en := range e.Entities() {
		if en.Kind == KindSprinter && en.Aimed {
			found = true
			if en.Vel.Z >= 0 {
				t.Errorf("shot should travel toward the player, vel = %+v", en.Vel)
			}
		}
	}
	if !found {
		t.Error("hovering boss should fire an aimed sprinter")
	}
}

func TestFrameDeltaClamp(t *testing.T) {
	e, _ := newTestEngine(t, config.DefaultNeonConfig())
	e.Frame(t0.Add(10 * time.Second))
	if e.Tick() != 15 {
		t.Errorf("a 10s stall should run 15 ticks (0.25s), ran %d", e.Tick())
	}
}

func TestPauseFreezesAndResumeReanchors(t *testing.T) {
	e, _ := newTestEngine(t, config.DefaultNeonConfig())
	e.Frame(t0.Add(100 * time.Millisecond))
	ticks := e.Tick()
	if ticks == 0 {
		t.Fatal("expected ticks while playing")
	}

	e.Pause()
	e.Frame(t0.Add(5 * time.Second))
	if e.Tick() != ticks {
		t.Errorf("paused frames should not tick: %d -> %d", ticks, e.Tick())
	}

	resume := t0.Add(5 * time.Second)
	e.Resume(resume)
	e.Frame(resume.Add(50 * time.Millisecond))
	if d := e.Tick() - ticks; d < 2 || d > 3 {
		t.Errorf("resume should not replay the pause, ran %d ticks", d)
	}
}

func TestLifecycleMisuseIsNoop(t *testing.T) {
	e := New(config.DefaultNeonConfig(), config.DefaultSettings(), 1)

	e.Resume(t0)
	if e.Phase() != PhaseMenu {
		t.Errorf("resume from menu should be a no-op, phase %v", e.Phase())
	}
	e.Pause()
	if e.Phase() != PhaseMenu {
		t.Errorf("pause from menu should be a no-op, phase %v", e.Phase())
	}

	e.Start(t0)
	e.Resume(t0)
	if e.Phase() != PhasePlaying {
		t.Errorf("resume while playing should be a no-op, phase %v", e.Phase())
	}

	e.events = nil
	e.Stop()
	e.Stop()
	phases := 0
	for _, ev := range e.events {
		if ev.Kind == EventPhase {
			phases++
		}
	}
	if e.Phase() != PhaseMenu || phases != 1 {
		t.Errorf("stop should be idempotent: phase %v, %d phase events", e.Phase(), phases)
	}
}

func TestStatsOnlyWhilePlaying(t *testing.T) {
	e := New(config.DefaultNeonConfig(), config.DefaultSettings(), 1)
	sink := &recordingSink{}
	e.AddSink(sink)

	e.Frame(t0)
	e.Frame(t0.Add(time.Second))
	if len(sink.stats) != 0 {
		t.Errorf("no stats expected in the menu, got %d", len(sink.stats))
	}
	if e.Tick() != 0 {
		t.Error("menu frames must not run gameplay ticks")
	}
	if e.GridOffset() <= 0 {
		t.Error("menu frames should scroll the background")
	}

	e.Start(t0.Add(time.Second))
	e.Frame(t0.Add(time.Second + 50*time.Millisecond))
	if len(sink.stats) != 1 || sink.stats[0].Phase != PhasePlaying {
		t.Errorf("expected one playing snapshot, got %+v", sink.stats)
	}
	if sink.stats[0].FPS != 20 {
		t.Errorf("FPS = %d, expected 20", sink.stats[0].FPS)
	}
}

type reentrantSink struct {
	e      *Engine
	before uint64
	after  uint64
	calls  int
}

func (r *reentrantSink) Stats(Stats) {
	r.calls++
	r.before = r.e.Tick()
	r.e.Frame(t0.Add(time.Minute))
	r.e.Step()
	r.after = r.e.Tick()
}

func (r *reentrantSink) Event(Event) {}

func TestFrameIsNotReentrant(t *testing.T) {
	e := New(config.DefaultNeonConfig(), config.DefaultSettings(), 1)
	sink := &reentrantSink{e: e}
	e.AddSink(sink)
	e.Start(t0)

	e.Frame(t0.Add(50 * time.Millisecond))
	if sink.calls != 1 {
		t.Fatalf("expected one stats call, got %d", sink.calls)
	}
	if sink.before != sink.after {
		t.Errorf("nested Frame/Step ran ticks: %d -> %d", sink.before, sink.after)
	}
}

func TestDestroyDetaches(t *testing.T) {
	e, sink := newTestEngine(t, config.DefaultNeonConfig())
	e.Destroy()
	e.Frame(t0.Add(time.Second))
	e.Step()
	if e.Tick() != 0 || len(sink.stats) != 0 || len(sink.events) != 0 {
		t.Errorf("destroyed engine should do nothing: ticks=%d stats=%d events=%d",
			e.Tick(), len(sink.stats), len(sink.events))
	}
}

func TestHapticsFollowSettings(t *testing.T) {
	e, sink := newTestEngine(t, config.DefaultNeonConfig())
	e.stats.ProjectileCount = 3
	e.loseUnit(Vec2{})
	e.Step()

	s := e.Settings()
	s.Haptics = false
	e.SetSettings(s)
	e.invuln = 0
	e.loseUnit(Vec2{})
	e.Step()

	var pulses []time.Duration
	for _, ev := range sink.events {
		if ev.Kind == EventPlayerHit {
			pulses = append(pulses, ev.Haptic)
		}
	}
	if len(pulses) != 2 || pulses[0] != hapticHit || pulses[1] != 0 {
		t.Errorf("haptic pulses = %v, expected [%v 0]", pulses, hapticHit)
	}
}

func TestUnknownTierFallsBack(t *testing.T) {
	e, _ := newTestEngine(t, config.DefaultNeonConfig())
	s := e.Settings()
	s.Difficulty = config.Tier("nightmare")
	e.SetSettings(s)
	if e.Settings().Difficulty != config.TierNormal {
		t.Errorf("unknown tier should fall back to normal, got %q", e.Settings().Difficulty)
	}

	// Even if an unknown tier slips through, spawning uses multiplier 1.
	e.settings.Difficulty = config.Tier("bogus")
	if hp := e.director.baseHP(e); hp != 15 {
		t.Errorf("baseHP = %v, expected 15", hp)
	}
}

func TestDragTakesPrecedence(t *testing.T) {
	e, _ := newTestEngine(t, config.DefaultNeonConfig())
	e.SetKeys(true, false)
	e.SetDragTarget(200, true)
	e.Step()
	x := e.Player().Pos.X
	if x <= 0 {
		t.Fatalf("drag should win over the left key, x = %v", x)
	}

	e.ReleaseDrag()
	e.Step()
	if e.Player().Pos.X >= x {
		t.Errorf("left key should move once drag is released: %v -> %v", x, e.Player().Pos.X)
	}

	e.SetDragTarget(10000, true)
	for range 120 {
		e.Step()
	}
	limit := e.HalfSpan() - e.cfg.Player.EdgeMargin
	if got := e.Player().Pos.X; got != limit {
		t.Errorf("player should clamp at %v, got %v", limit, got)
	}
	if e.Lane() != e.cfg.World.LaneCount-1 {
		t.Errorf("Lane() = %d, expected rightmost", e.Lane())
	}
}

func TestSetDragScreenInvertsProjection(t *testing.T) {
	e, _ := newTestEngine(t, config.DefaultNeonConfig())
	sx := e.Camera().Project(Vec2{X: 120, Z: 0}).X
	if !e.SetDragScreen(sx, true) {
		t.Fatal("SetDragScreen failed at the player's depth")
	}
	if math.Abs(e.input.dragX-120) > 1e-9 || !e.input.dragEngaged {
		t.Errorf("drag target = %v engaged=%v, expected 120", e.input.dragX, e.input.dragEngaged)
	}
}

func TestEngineDeterminism(t *testing.T) {
	run := func() Snapshot {
		e := New(config.DefaultNeonConfig(), config.DefaultSettings(), 7)
		e.Start(t0)
		for i := range 1800 {
			e.SetKeys(i%90 < 30, i%90 >= 60)
			e.Step()
		}
		return e.Snapshot()
	}
	a, b := run(), run()
	if a.Hash() != b.Hash() {
		t.Errorf("same seed and inputs should match: %d vs %d", a.Hash(), b.Hash())
	}
	if a.Tick == 0 || a.Distance == 0 {
		t.Errorf("run did not progress: %+v", a)
	}
}
