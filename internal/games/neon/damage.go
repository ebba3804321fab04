package neon

import (
	"math"

	"github.com/vovakirdan/neon-runner/internal/core"
)

var particleShapes = [...]rune{'*', '+', '.', 'x', 'o'}

// damage subtracts hp and kills the target when it reaches zero.
func (e *Engine) damage(target *Entity, amount float64) {
	if !target.Active || amount <= 0 {
		return
	}
	target.HP -= amount
	if target.HP <= 0 {
		e.kill(target)
	}
}

// kill deactivates a hostile, bursts, and awards its score. It reports
// false, doing nothing, for an entity that is already inactive.
func (e *Engine) kill(target *Entity) bool {
	if !target.Active {
		return false
	}
	target.Active = false
	e.run.Score += float64(target.Score)
	e.burst(target.Pos, killBurst(target.MaxHP), target.Color)
	e.emit(EventKill, target.Pos, float64(target.Score), hapticKill, target.Kind.String())
	if target.Kind == KindBoss {
		e.bossDefeated(target)
	}
	return true
}

// killBurst scales the particle count with the toughness of the target.
func killBurst(maxHP float64) int {
	return 8 + int(math.Log2(math.Max(1, maxHP/10)))
}

// loseUnit costs the squad one unit unless the grace window is running.
func (e *Engine) loseUnit(at Vec2) bool {
	if e.invuln > 0 {
		return false
	}
	e.stats.ProjectileCount = max(0, e.stats.ProjectileCount-1)
	e.invuln = e.cfg.Player.GraceTime
	e.shake = math.Max(e.shake, e.cfg.Effects.HitShake)
	p := e.store.Player()
	e.burst(p.Pos, 15, core.ColorBrightRed)
	e.emit(EventPlayerHit, at, float64(e.stats.ProjectileCount), hapticHit, "")
	return true
}

// applyGate applies a gate to the projectile count once and consumes it.
func (e *Engine) applyGate(g *Entity) {
	if !g.Active {
		return
	}
	g.Active = false
	e.stats.ProjectileCount = g.Gate.Apply(e.stats.ProjectileCount)
	color := core.ColorNeonLime
	if !g.Gate.Good() {
		color = core.ColorBrightRed
	}
	e.burst(g.Pos, 10, color)
	e.emit(EventGate, g.Pos, float64(e.stats.ProjectileCount), hapticGate, g.Gate.Label())
}

// BlastRadius returns the radius of a bomb pickup, 0 for the cluster.
func (e *Engine) BlastRadius(k PickupKind) float64 {
	p := e.cfg.Pickups
	switch k {
	case PickupSmall:
		return p.SmallRadius
	case PickupMedium:
		return p.MediumRadius
	case PickupLarge:
		return p.LargeRadius
	}
	return 0
}

// inBlast reports whether pos is caught by a pickup detonating at origin.
// Bombs are circles; the cluster is a cone opening forward.
func (e *Engine) inBlast(k PickupKind, origin, pos Vec2) bool {
	if k != PickupCluster {
		return pos.Dist(origin) <= e.BlastRadius(k)
	}
	p := e.cfg.Pickups
	dz := pos.Z - origin.Z
	if dz < -e.cfg.Combat.ContactDepth || dz > p.ClusterDepth || p.ClusterDepth <= 0 {
		return false
	}
	open := core.Clamp(dz/p.ClusterDepth, 0.25, 1)
	return math.Abs(pos.X-origin.X) <= p.ClusterHalfWidth*open
}

// detonate consumes a pickup and applies its area effect at its position.
func (e *Engine) detonate(pk *Entity) {
	if !pk.Active {
		return
	}
	pk.Active = false
	origin := pk.Pos
	killed := 0
	for _, en := range e.store.enemies {
		if en.Active && e.inBlast(pk.Pickup, origin, en.Pos) && e.kill(en) {
			killed++
		}
	}
	if boss := e.store.Boss(); boss != nil && boss.Active && e.inBlast(pk.Pickup, origin, boss.Pos) {
		e.damage(boss, e.cfg.Pickups.BossBombDamage)
	}
	e.burst(origin, 30, core.ColorNeonAmber)
	e.shake = math.Max(e.shake, e.cfg.Effects.BombShake)
	e.emit(EventDetonation, origin, float64(killed), hapticDetonation, pk.Pickup.String())
}

// burst scatters up to BurstCap particles, halved when effects are reduced.
func (e *Engine) burst(at Vec2, n int, color core.Color) {
	fx := e.cfg.Effects
	if e.settings.ReducedEffects {
		n = (n + 1) / 2
	}
	n = min(n, fx.BurstCap)
	for range n {
		life := fx.ParticleLife * (0.5 + e.fx.Float64()*0.5)
		r := 2 + e.fx.Float64()*4
		e.store.AddParticle(Entity{
			Pos: at,
			Vel: Vec2{
				X: (e.fx.Float64()*2 - 1) * fx.ParticleSpeed,
				Z: (e.fx.Float64()*2 - 1) * fx.ParticleSpeed,
			},
			Radius: r,
			Color:  color,
			Particle: ParticleState{
				Shape:      particleShapes[e.fx.Intn(len(particleShapes))],
				Spin:       (e.fx.Float64()*2 - 1) * 6,
				Life:       life,
				MaxLife:    life,
				BaseRadius: r,
			},
		})
	}
}
