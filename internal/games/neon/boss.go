package neon

import (
	"math"

	"github.com/vovakirdan/neon-runner/internal/core"
)

// spawnBoss queues a boss at the entry depth.
func (e *Engine) spawnBoss() {
	b := e.cfg.Boss
	hp := (b.BaseHP + b.HPPerWave*float64(e.run.Wave)) * e.cfg.TierMultiplier(e.settings.Difficulty)
	pos := Vec2{X: 0, Z: b.EntryZ}
	e.store.Add(Entity{
		Kind:   KindBoss,
		Pos:    pos,
		Radius: b.Radius,
		HP:     hp,
		MaxHP:  hp,
		Score:  b.Score,
		Color:  core.ColorBrightMagenta,
		Boss: BossState{
			Dir:          1,
			ReverseTimer: b.ReverseInterval,
			FireTimer:    b.FireInterval,
		},
	})
	e.emit(EventBossSpawn, pos, hp, hapticHit, "")
}

// moveBoss approaches to the hover depth, then bobs, strafes and fires.
func (e *Engine) moveBoss(dt float64) {
	boss := e.store.Boss()
	if boss == nil || !boss.Active {
		return
	}
	cfg := e.cfg.Boss
	bs := &boss.Boss

	if !bs.Hovering {
		boss.Pos.Z -= cfg.ApproachSpeed * dt
		if boss.Pos.Z <= cfg.HoverZ {
			boss.Pos.Z = cfg.HoverZ
			bs.Hovering = true
		}
		return
	}

	bs.Clock += dt
	boss.Pos.Z = cfg.HoverZ + math.Sin(2*math.Pi*cfg.BobFrequency*bs.Clock)*cfg.BobAmplitude
	boss.Pos.X += bs.Dir * cfg.StrafeSpeed * dt

	limit := math.Max(0, e.cfg.HalfSpan()-boss.Radius)
	bs.ReverseTimer -= dt
	switch {
	case boss.Pos.X > limit:
		boss.Pos.X = limit
		bs.Dir = -1
		bs.ReverseTimer = cfg.ReverseInterval
	case boss.Pos.X < -limit:
		boss.Pos.X = -limit
		bs.Dir = 1
		bs.ReverseTimer = cfg.ReverseInterval
	case bs.ReverseTimer <= 0:
		bs.Dir = -bs.Dir
		bs.ReverseTimer = cfg.ReverseInterval
	}

	bs.FireTimer -= dt
	if bs.FireTimer <= 0 {
		bs.FireTimer = cfg.FireInterval
		e.bossShot(boss)
	}
}

// bossShot launches a sprinter at the player's current position.
func (e *Engine) bossShot(boss *Entity) {
	target := e.store.Player().Pos
	dir := target.Sub(boss.Pos)
	l := dir.Len()
	if l == 0 {
		return
	}
	hp := e.director.baseHP(e) * e.cfg.Spawn.SprinterHP
	e.store.Add(Entity{
		Kind:      KindSprinter,
		Pos:       boss.Pos,
		Vel:       dir.Scale(e.cfg.Boss.ShotSpeed / l),
		Radius:    e.cfg.Enemies.Sprinter.Radius,
		HP:        hp,
		MaxHP:     hp,
		Score:     e.cfg.Enemies.Sprinter.Score,
		Color:     core.ColorBrightYellow,
		Aimed:     true,
		Formation: 0,
	})
}

// bossDefeated ends the fight and schedules the next one.
func (e *Engine) bossDefeated(boss *Entity) {
	e.director.bossActive = false
	e.director.nextBossAt = e.run.Distance + e.cfg.Boss.Interval
	e.director.recovery = e.cfg.Boss.RecoveryTime
	e.shake = math.Max(e.shake, e.cfg.Effects.BombShake)
	e.emit(EventBossDefeat, boss.Pos, float64(boss.Score), hapticDetonation, "")
}
