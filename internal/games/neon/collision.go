package neon

import (
	"math"

	"github.com/vovakirdan/neon-runner/internal/config"
)

// overlaps is the windowed circle test: depths within window and lateral
// distance below the radius sum.
func overlaps(a, b *Entity, window float64) bool {
	return math.Abs(a.Pos.Z-b.Pos.Z) <= window &&
		math.Abs(a.Pos.X-b.Pos.X) < a.Radius+b.Radius
}

func (e *Engine) collide() {
	e.collideBullets()
	e.collidePlayer()
}

// collideBullets resolves each bullet against, in order, pickups, stuck
// enemies, then free enemies and the boss. A bullet stops at its first hit.
func (e *Engine) collideBullets() {
	window := e.cfg.Combat.BulletDepth
	for _, b := range e.store.bullets {
		if !b.Active {
			continue
		}
		if pk := e.firstHit(b, e.store.pickups, window, nil); pk != nil {
			b.Active = false
			e.detonate(pk)
			continue
		}
		if en := e.firstHit(b, e.store.enemies, window, isStuck); en != nil {
			e.bulletHit(b, en)
			continue
		}
		if en := e.firstHit(b, e.store.enemies, window, isFree); en != nil {
			e.bulletHit(b, en)
			continue
		}
		if boss := e.store.Boss(); boss != nil && boss.Active && overlaps(b, boss, window) {
			e.bulletHit(b, boss)
		}
	}
}

func isStuck(x *Entity) bool { return x.Stuck.Active }
func isFree(x *Entity) bool  { return !x.Stuck.Active }

func (e *Engine) firstHit(b *Entity, targets []*Entity, window float64, keep func(*Entity) bool) *Entity {
	for _, t := range targets {
		if !t.Active || (keep != nil && !keep(t)) {
			continue
		}
		if overlaps(b, t, window) {
			return t
		}
	}
	return nil
}

func (e *Engine) bulletHit(b, target *Entity) {
	b.Active = false
	e.burst(b.Pos, 2, b.Color)
	e.damage(target, b.Damage)
}

// collidePlayer handles gates, pickups, obstacles and enemy contact.
func (e *Engine) collidePlayer() {
	p := e.store.Player()
	c := e.cfg.Combat

	for _, g := range e.store.gates {
		if g.Active && g.Lane == e.lane && math.Abs(g.Pos.Z-p.Pos.Z) <= c.GateDepth {
			e.applyGate(g)
		}
	}

	for _, pk := range e.store.pickups {
		if pk.Active && overlaps(p, pk, c.ContactDepth) {
			e.detonate(pk)
		}
	}

	for _, ob := range e.store.obstacles {
		if !ob.Active {
			continue
		}
		if math.Abs(ob.Pos.Z-p.Pos.Z) <= c.ContactDepth && math.Abs(ob.Pos.X-p.Pos.X) < p.Radius+ob.Width/2 {
			ob.Active = false
			e.loseUnit(ob.Pos)
		}
	}

	stuck := e.store.StuckCount()
	for _, en := range e.store.enemies {
		if !en.Active || en.Stuck.Active || !overlaps(p, en, c.ContactDepth) {
			continue
		}
		if stuck < e.cfg.Enemies.MaxStuck {
			e.latch(en)
			stuck++
			continue
		}
		// No room to latch: the enemy trades itself for one unit.
		en.Active = false
		e.loseUnit(en.Pos)
	}
}

// latch attaches an enemy to the player at its current relative offset.
func (e *Engine) latch(en *Entity) {
	p := e.store.Player()
	off := en.Pos.Sub(p.Pos)
	reach := p.Radius + en.Radius
	off.X = math.Max(-reach, math.Min(reach, off.X))
	off.Z = math.Max(-reach, math.Min(reach, off.Z))
	en.Stuck = Stuck{Active: true, Offset: off, Cooldown: e.cfg.Enemies.StuckDrainInterval}
	en.Aimed = false
	en.Vel = Vec2{}
	en.Pos = p.Pos.Add(off)
	e.emit(EventLatch, en.Pos, 0, hapticKill, en.Kind.String())
}

// resolveStuck drains the squad for every latched enemy and, under the
// proximity rule, wears them down.
func (e *Engine) resolveStuck(dt float64) {
	cfg := e.cfg.Enemies
	proximity := cfg.StuckRule != config.StuckRuleWeapons
	passive := cfg.PassiveRatio * e.stats.Damage * e.stats.FireRate * dt
	for _, en := range e.store.enemies {
		if !en.Active || !en.Stuck.Active {
			continue
		}
		en.Stuck.Cooldown -= dt
		if en.Stuck.Cooldown <= 0 {
			en.Stuck.Cooldown += cfg.StuckDrainInterval
			e.loseUnit(en.Pos)
		}
		if proximity {
			e.damage(en, passive)
		}
	}
}
