package neon

import (
	"math"

	"github.com/vovakirdan/neon-runner/internal/core"
)

// Bullet colours by damage tier, weakest first.
var bulletColors = [...]core.Color{
	core.ColorBrightWhite,
	core.ColorBrightYellow,
	core.ColorOrange,
	core.ColorBrightRed,
	core.ColorBrightMagenta,
	core.ColorBrightCyan,
}

func (e *Engine) movePlayer(dt float64) {
	p := e.store.Player()
	if e.input.dragEngaged {
		f := math.Min(1, e.cfg.Player.DragFollow*dt)
		p.Pos.X += (e.input.dragX - p.Pos.X) * f
	} else {
		dir := 0.0
		if e.input.left {
			dir--
		}
		if e.input.right {
			dir++
		}
		p.Pos.X += dir * e.stats.MoveSpeed * dt
	}
	limit := e.cfg.HalfSpan() - e.cfg.Player.EdgeMargin
	p.Pos.X = core.Clamp(p.Pos.X, -limit, limit)
	e.lane = e.laneAt(p.Pos.X)
}

// SquadOffsets lays out n units in a diamond behind the leader:
// row L holds L+1 units spaced 1.5*spacing apart, L*spacing back.
func SquadOffsets(n int, spacing float64) []Vec2 {
	out := make([]Vec2, 0, n)
	for layer := 0; len(out) < n; layer++ {
		for j := 0; j <= layer && len(out) < n; j++ {
			out = append(out, Vec2{
				X: (float64(j) - float64(layer)/2) * spacing * 1.5,
				Z: -float64(layer) * spacing,
			})
		}
	}
	return out
}

// fire releases a volley every 1/fireRate seconds.
func (e *Engine) fire(dt float64) {
	if e.stats.FireRate <= 0 {
		return
	}
	e.fireTimer -= dt
	if e.fireTimer > 0 {
		return
	}
	e.fireTimer = 1 / e.stats.FireRate

	c := e.cfg.Combat
	raw := max(1, e.stats.ProjectileCount)
	shots := min(raw, c.MaxShots)
	dmg := e.stats.Damage * float64(raw) / float64(shots)
	tier := min(len(bulletColors)-1, int(dmg/20))
	radius := c.BulletRadius + float64(tier)

	aim := e.aimAngle()
	spread := math.Min(c.MaxSpread, float64(shots)*c.SpreadPerShot) * math.Pi / 180
	p := e.store.Player()
	offsets := SquadOffsets(shots, e.cfg.Player.SquadSpacing)

	for i := 0; i < shots; i++ {
		angle := aim
		if shots > 1 {
			angle += -spread/2 + spread*float64(i)/float64(shots-1)
		}
		origin := p.Pos.Add(offsets[i])
		e.store.Add(Entity{
			Kind:   KindBullet,
			Pos:    origin,
			Vel:    Heading(angle).Scale(c.BulletSpeed),
			Radius: radius,
			Damage: dmg,
			Color:  bulletColors[tier],
			Bullet: BulletState{OriginZ: origin.Z, BaseDamage: dmg, BaseRadius: radius},
		})
	}
	e.emit(EventShot, p.Pos, float64(shots), 0, "")
}

// aimAngle returns the heading toward the nearest hostile ahead of the
// player inside the aim cone, or 0 for straight ahead.
func (e *Engine) aimAngle() float64 {
	p := e.store.Player()
	cone := e.cfg.Combat.AimCone * math.Pi / 180
	best := math.Inf(1)
	angle := 0.0
	consider := func(en *Entity) {
		if !en.Active || en.Stuck.Active {
			return
		}
		dz := en.Pos.Z - p.Pos.Z
		if dz <= 0 || dz >= best {
			return
		}
		a := math.Atan2(en.Pos.X-p.Pos.X, dz)
		if math.Abs(a) > cone {
			return
		}
		best = dz
		angle = a
	}
	for _, en := range e.store.enemies {
		consider(en)
	}
	if b := e.store.Boss(); b != nil {
		consider(b)
	}
	return angle
}

// moveBullets integrates bullets and applies the range fade.
// Bullets past range are deactivated before collision runs.
func (e *Engine) moveBullets(dt float64) {
	c := e.cfg.Combat
	limit := e.cfg.HalfSpan() * 2
	for _, b := range e.store.bullets {
		if !b.Active {
			continue
		}
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
		travelled := b.Pos.Z - b.Bullet.OriginZ
		if travelled > c.BulletRange || math.Abs(b.Pos.X) > limit {
			b.Active = false
			continue
		}
		if remain := c.BulletRange - travelled; c.BulletFade > 0 && remain < c.BulletFade {
			f := remain / c.BulletFade
			b.Damage = b.Bullet.BaseDamage * f
			b.Radius = b.Bullet.BaseRadius * f
		}
	}
}

func (e *Engine) moveEnemies(dt float64) {
	p := e.store.Player()
	en := e.cfg.Enemies
	speed := e.cfg.World.EntitySpeed
	for _, x := range e.store.enemies {
		if !x.Active {
			continue
		}
		if x.Stuck.Active {
			x.Pos = p.Pos.Add(x.Stuck.Offset)
			continue
		}
		if x.Aimed {
			x.Pos = x.Pos.Add(x.Vel.Scale(dt))
			continue
		}
		x.Pos.Z -= speed * dt

		dz := x.Pos.Z - p.Pos.Z
		if dz >= en.ConvergenceZ || dz <= 0 || en.ConvergenceZ <= 0 {
			continue
		}
		if math.Abs(x.Pos.X-p.Pos.X) > en.ConvergeRange {
			continue
		}
		depth := 1 - dz/en.ConvergenceZ
		strength := en.SteerMin + (1-en.SteerMin)*depth
		target := p.Pos.X + x.Formation
		x.Pos.X += (target - x.Pos.X) * math.Min(1, en.SteerRate*strength*dt)
	}
}

// moveProps scrolls gates, pickups and obstacles toward the player.
func (e *Engine) moveProps(dt float64) {
	step := e.cfg.World.EntitySpeed * dt
	for _, list := range [][]*Entity{e.store.gates, e.store.pickups, e.store.obstacles} {
		for _, x := range list {
			if x.Active {
				x.Pos.Z -= step
			}
		}
	}
}

func (e *Engine) moveParticles(dt float64) {
	drift := e.cfg.World.EntitySpeed / 2 * dt
	e.store.EachParticle(func(p *Entity) {
		ps := &p.Particle
		ps.Life -= dt
		if ps.Life <= 0 {
			p.Active = false
			return
		}
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
		p.Pos.Z -= drift
		ps.Rotation += ps.Spin * dt
		if ps.MaxLife > 0 {
			p.Radius = ps.BaseRadius * ps.Life / ps.MaxLife
		}
	})
}

// cull deactivates everything outside the world's depth bounds.
func (e *Engine) cull() {
	w := e.cfg.World
	e.store.Each(func(x *Entity) {
		if x.Stuck.Active {
			return
		}
		if x.Pos.Z < w.DespawnBehind || x.Pos.Z > w.DespawnBeyond {
			x.Active = false
		}
	})
}
