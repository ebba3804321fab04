package neon

import (
	"math"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/core"
)

// Director decides what to spawn and when: gate rows by distance, enemy
// patterns by timer, and the boss by a running distance threshold.
type Director struct {
	cfg *config.NeonConfig

	enemyTimer float64
	lastGateAt float64
	nextBossAt float64
	recovery   float64
	bossActive bool
}

func newDirector(cfg *config.NeonConfig) *Director {
	d := &Director{cfg: cfg}
	d.reset()
	return d
}

func (d *Director) reset() {
	d.enemyTimer = d.cfg.Spawn.InitialDelay
	d.lastGateAt = 0
	d.nextBossAt = d.cfg.Boss.Interval
	d.recovery = 0
	d.bossActive = false
}

// EnemyTimer returns the seconds until the next enemy pattern.
func (d *Director) EnemyTimer() float64 { return d.enemyTimer }

// NextBossAt returns the distance at which the next boss appears.
func (d *Director) NextBossAt() float64 { return d.nextBossAt }

// Update runs once per tick after collision.
func (d *Director) Update(e *Engine, dt float64) {
	if !d.bossActive && e.run.Distance > d.nextBossAt {
		d.bossActive = true
		e.spawnBoss()
	}

	if e.run.Distance-d.lastGateAt > d.gateInterval(e.run.Wave) {
		d.lastGateAt = e.run.Distance
		d.spawnGateRow(e)
	}

	if d.bossActive {
		return
	}
	if d.recovery > 0 {
		d.recovery -= dt
		return
	}
	d.enemyTimer -= dt
	if d.enemyTimer > 0 {
		return
	}
	d.spawnPattern(e)
	d.enemyTimer = d.enemyInterval(e)
}

func (d *Director) gateInterval(wave int) float64 {
	g := d.cfg.Gates
	return math.Max(g.MinInterval, g.Interval-g.IntervalPerWave*float64(wave-1))
}

// dpsRatio compares potential DPS with what this wave expects.
func (d *Director) dpsRatio(e *Engine) float64 {
	dps := e.DPS()
	if dps <= 0 {
		dps = d.cfg.Gates.BaselineDPS
	}
	expected := d.cfg.Gates.ExpectedDPSPerWave * float64(max(1, e.run.Wave))
	if expected <= 0 {
		return 1
	}
	return dps / expected
}

// NegativeBias is the probability that a gate is harmful.
func (d *Director) NegativeBias(ratio float64, wave int, tier config.Tier) float64 {
	g := d.cfg.Gates
	var b float64
	switch {
	case wave <= 1:
		b = g.EarlyBias
	case ratio >= g.ExtremeRatio:
		b = g.ExtremeBias
	case ratio > g.OverRatio:
		b = g.OverBias
	case ratio < g.UnderRatio:
		b = g.UnderBias
	default:
		b = g.BaseBias
	}
	if wave > g.LateWave && b < g.LateFloor {
		b = g.LateFloor
	}
	return core.Clamp(b+d.cfg.TierGateBias(tier), 0, 1)
}

func (d *Director) spawnGateRow(e *Engine) {
	g := d.cfg.Gates
	n := d.cfg.World.LaneCount
	ratio := d.dpsRatio(e)
	bias := d.NegativeBias(ratio, e.run.Wave, e.settings.Difficulty)
	extreme := ratio >= g.ExtremeRatio

	good := -1
	if ratio < g.GuaranteeRatio {
		good = e.rng.Intn(n)
	}
	open := -1
	if e.rng.Float64() < g.OpenLaneChance {
		open = e.rng.Intn(n)
		if open == good {
			open = -1
		}
	}

	for lane := range n {
		if lane == open {
			continue
		}
		bad := lane != good && e.rng.Float64() < bias
		effect := d.gateEffect(e, bad, extreme)
		color := core.ColorBrightGreen
		if !effect.Good() {
			color = core.ColorBrightRed
		}
		e.store.Add(Entity{
			Kind:   KindGate,
			Pos:    Vec2{X: e.LaneCenter(lane), Z: d.cfg.World.SpawnZ},
			Lane:   lane,
			Radius: d.cfg.World.LaneWidth / 2,
			Width:  d.cfg.World.LaneWidth * 0.9,
			Height: g.Height,
			Gate:   effect,
			Color:  color,
		})
	}
}

func (d *Director) gateEffect(e *Engine, bad, extreme bool) GateEffect {
	g := d.cfg.Gates
	mult := e.rng.Float64() < g.MultiplyChance
	switch {
	case !bad && mult:
		return GateEffect{Op: GateMultiply, Value: g.GoodMultiply}
	case !bad:
		return GateEffect{Op: GateAdd, Value: float64(randRange(e, g.GoodAddMin, g.GoodAddMax))}
	case extreme && mult:
		return GateEffect{Op: GateMultiply, Value: 1 / g.ExtremeDivisor}
	case extreme:
		cut := math.Ceil(float64(e.stats.ProjectileCount) * g.ExtremeSubtractFraction)
		return GateEffect{Op: GateAdd, Value: -math.Max(cut, float64(g.BadAddMin))}
	case mult:
		return GateEffect{Op: GateMultiply, Value: g.BadMultiply}
	default:
		return GateEffect{Op: GateAdd, Value: -float64(randRange(e, g.BadAddMin, g.BadAddMax))}
	}
}

func randRange(e *Engine, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + e.rng.Intn(hi-lo+1)
}

// EliteWeight maps DPS onto 0..1 between the elite thresholds.
func (d *Director) EliteWeight(dps float64) float64 {
	s := d.cfg.Spawn
	if s.EliteDPSFull <= s.EliteDPSStart {
		if dps >= s.EliteDPSFull {
			return 1
		}
		return 0
	}
	return core.Clamp((dps-s.EliteDPSStart)/(s.EliteDPSFull-s.EliteDPSStart), 0, 1)
}

func (d *Director) enemyInterval(e *Engine) float64 {
	s := d.cfg.Spawn
	w := d.EliteWeight(e.DPS())
	iv := s.BaseInterval - float64(e.run.Wave)*s.IntervalPerWave - w*s.EliteCut
	return core.Clamp(iv, s.MinInterval, s.MaxInterval)
}

// baseHP is the hit points of a plain grunt this wave, tier scaled.
func (d *Director) baseHP(e *Engine) float64 {
	s := d.cfg.Spawn
	return (s.BaseHP + float64(e.run.Wave)*s.HPPerWave) * d.cfg.TierMultiplier(e.settings.Difficulty)
}

func (d *Director) spawnPattern(e *Engine) {
	s := d.cfg.Spawn
	w := d.EliteWeight(e.DPS())
	r := e.rng.Float64()
	army := s.ArmyChance - s.EliteShift*w
	switch {
	case r < army:
		d.spawnArmy(e)
	case r < army+s.EliteChance:
		d.spawnElite(e, w)
	default:
		d.spawnGap(e)
	}
}

func (d *Director) enemy(e *Engine, kind Kind, pos Vec2, hp float64, score int) {
	var radius float64
	color := core.ColorBrightRed
	switch kind {
	case KindSprinter:
		radius = d.cfg.Enemies.Sprinter.Radius
		color = core.ColorBrightYellow
	case KindTank:
		radius = d.cfg.Enemies.Tank.Radius
		color = core.ColorMagenta
	default:
		radius = d.cfg.Enemies.Grunt.Radius
	}
	spread := d.cfg.Enemies.FormationSpread
	e.store.Add(Entity{
		Kind:      kind,
		Pos:       pos,
		Radius:    radius,
		HP:        hp,
		MaxHP:     hp,
		Score:     score,
		Color:     color,
		Formation: (e.rng.Float64()*2 - 1) * spread,
	})
}

func (d *Director) jitter(e *Engine) float64 {
	return (e.rng.Float64()*2 - 1) * d.cfg.Spawn.GridJitter
}

// spawnArmy fills a lane with a grunt grid whose depth tracks DPS.
func (d *Director) spawnArmy(e *Engine) {
	s := d.cfg.Spawn
	n := d.cfg.World.LaneCount
	lane := e.rng.Intn(n)
	cx := e.LaneCenter(lane)
	z0 := d.cfg.World.SpawnZ

	depth := s.GridBaseDepth + int(e.DPS()/math.Max(1, s.GridDPSDivisor)) + e.rng.Intn(s.GridDepthJitter+1)
	hp := d.baseHP(e)
	if s.MaxGridDepth > 0 && depth > s.MaxGridDepth {
		hp *= float64(depth) / float64(s.MaxGridDepth)
		depth = s.MaxGridDepth
	}

	mid := float64(s.GridColumns-1) / 2
	for row := range depth {
		for col := range s.GridColumns {
			pos := Vec2{
				X: cx + (float64(col)-mid)*s.GridSpacingX + d.jitter(e),
				Z: z0 + float64(row)*s.GridSpacingZ + d.jitter(e),
			}
			d.enemy(e, KindGrunt, pos, hp, d.cfg.Enemies.Grunt.Score)
		}
	}

	if e.rng.Float64() < s.LeaderChance {
		d.enemy(e, KindTank, Vec2{X: cx, Z: z0 - s.GridSpacingZ}, hp*s.LeaderHP, s.LeaderScore)
	}
	if e.rng.Float64() < s.LeaderChance {
		d.enemy(e, KindTank, Vec2{X: cx, Z: z0 + float64(depth)*s.GridSpacingZ}, hp*s.LeaderHP, s.LeaderScore)
	}

	if e.rng.Float64() < s.PickupChance {
		d.spawnPickup(e, (lane+1)%n)
	}
}

func (d *Director) spawnPickup(e *Engine, lane int) {
	var kind PickupKind
	switch r := e.rng.Float64(); {
	case r < 0.4:
		kind = PickupSmall
	case r < 0.7:
		kind = PickupMedium
	case r < 0.85:
		kind = PickupLarge
	default:
		kind = PickupCluster
	}
	e.store.Add(Entity{
		Kind:   KindPickup,
		Pos:    Vec2{X: e.LaneCenter(lane), Z: d.cfg.World.SpawnZ},
		Radius: d.cfg.Pickups.Radius,
		Pickup: kind,
		Color:  core.ColorOrange,
	})
}

// spawnElite puts a sprinter or tank in some lanes, staggered outward.
func (d *Director) spawnElite(e *Engine, w float64) {
	s := d.cfg.Spawn
	n := d.cfg.World.LaneCount
	hp := d.baseHP(e)
	mid := float64(n-1) / 2
	spawn := func(lane int) {
		kind, mult, score := KindSprinter, s.SprinterHP, d.cfg.Enemies.Sprinter.Score
		if e.rng.Float64() < s.TankChance+s.TankEliteBonus*w {
			kind, mult, score = KindTank, s.TankHP, d.cfg.Enemies.Tank.Score
		}
		z := d.cfg.World.SpawnZ + math.Abs(float64(lane)-mid)*s.EliteRowOffset
		d.enemy(e, kind, Vec2{X: e.LaneCenter(lane), Z: z}, hp*mult, score)
	}

	spawned := 0
	for lane := range n {
		if e.rng.Float64() < s.EliteLaneChance {
			spawn(lane)
			spawned++
		}
	}
	// Never an empty wave.
	if spawned == 0 {
		spawn(e.rng.Intn(n))
	}
}

// spawnGap fills every lane but one; one filled lane may hold an obstacle.
func (d *Director) spawnGap(e *Engine) {
	s := d.cfg.Spawn
	n := d.cfg.World.LaneCount
	gap := e.rng.Intn(n)
	obstacle := -1
	if n > 1 && e.rng.Float64() < s.ObstacleChance {
		obstacle = (gap + 1 + e.rng.Intn(n-1)) % n
	}
	hp := d.baseHP(e)
	z0 := d.cfg.World.SpawnZ
	for lane := range n {
		if lane == gap {
			continue
		}
		cx := e.LaneCenter(lane)
		if lane == obstacle {
			e.store.Add(Entity{
				Kind:   KindObstacle,
				Pos:    Vec2{X: cx, Z: z0},
				Radius: s.ObstacleWidth / 2,
				Width:  s.ObstacleWidth,
				Height: s.ObstacleWidth / 2,
				Color:  core.ColorGray,
			})
			continue
		}
		for i := range s.GapGroup {
			x := cx - s.GapSpread
			if i%2 == 1 {
				x = cx + s.GapSpread
			}
			d.enemy(e, KindGrunt, Vec2{X: x, Z: z0 + float64(i/2)*s.GapRowOffset}, hp, d.cfg.Enemies.Grunt.Score)
		}
	}
}
