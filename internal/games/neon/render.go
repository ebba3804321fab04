package neon

import (
	"fmt"
	"math"
	"sort"

	"github.com/vovakirdan/neon-runner/internal/core"
)

// Glyphs
const (
	LeaderChar   = '▲'
	SquadChar    = '^'
	GruntChar    = 'v'
	SprinterChar = 'x'
	TankChar     = 'M'
	BulletChar   = '\''
	GateChar     = '='
	ObstacleChar = '#'
	EdgeChar     = '|'
	DividerChar  = ':'
	GridChar     = '-'
	FlakeChar    = '·'
)

const (
	minScreenW = 30
	minScreenH = 12

	gridSpacing  = 200
	maxDrawSquad = 30
)

var bossSprite = "<{###}>"

var pickupGlyphs = map[PickupKind]rune{
	PickupSmall:   'o',
	PickupMedium:  'O',
	PickupLarge:   '@',
	PickupCluster: '%',
}

// Render draws the track, entities, HUD and overlays.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.engine == nil {
		return
	}
	w, h := dst.Width(), dst.Height()
	if w < minScreenW || h < minScreenH {
		dst.DrawTextCentered(h/2, "Screen too small")
		return
	}
	cam := g.camera
	if g.runtime.ScreenW != w || g.runtime.ScreenH != h {
		cam = TerminalCamera(g.cfg, w, h)
	}
	shake := 0
	if g.engine.Shake() > 0 {
		shake = 1 - 2*int(g.engine.Tick()%2)
	}

	g.drawGrid(dst, cam, shake)
	g.drawTrack(dst, cam, shake)
	g.drawWeather(dst)
	g.drawEntities(dst, cam, shake)
	g.drawSquad(dst, cam, shake)
	g.drawHUD(dst)

	switch g.engine.Phase() {
	case PhasePaused:
		g.drawCenteredMessage(dst, "PAUSED", "P resume  |  O settings  |  Q quit")
	case PhaseSettings:
		g.drawSettings(dst)
	case PhaseGameOver:
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.engine.Stats().Score))
	}
}

func (g *Game) drawTrack(dst *core.Screen, cam Camera, shake int) {
	half := g.cfg.HalfSpan()
	lanes := g.cfg.World.LaneCount
	for y := int(cam.HorizonY) + 1; y < dst.Height(); y++ {
		z, ok := cam.DepthAtRow(float64(y) + 0.5)
		if !ok || !cam.Visible(z) {
			continue
		}
		for l := 0; l <= lanes; l++ {
			x := -half + float64(l)*g.cfg.World.LaneWidth
			p := cam.Project(Vec2{X: x, Z: z})
			if l == 0 || l == lanes {
				dst.SetColored(int(p.X)+shake, y, EdgeChar, core.ColorNeonPink)
			} else {
				dst.SetColored(int(p.X)+shake, y, DividerChar, core.ColorGray)
			}
		}
	}
}

func (g *Game) drawGrid(dst *core.Screen, cam Camera, shake int) {
	half := g.cfg.HalfSpan()
	phase := math.Mod(g.engine.GridOffset(), gridSpacing)
	for z := gridSpacing - phase; z < cam.Far; z += gridSpacing {
		l := cam.Project(Vec2{X: -half, Z: z})
		r := cam.Project(Vec2{X: half, Z: z})
		if !l.Visible {
			continue
		}
		dst.HLine(int(l.X)+1+shake, int(l.Y), int(r.X)-int(l.X)-1, GridChar, core.ColorNeonViolet)
	}
}

func (g *Game) drawWeather(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	for _, f := range g.engine.Flakes() {
		x, y := int(f.X*float64(w)), 2+int(f.Y*float64(h-2))
		dst.SetIfBlank(x, y, FlakeChar, core.ColorWhite)
	}
}

func (g *Game) drawEntities(dst *core.Screen, cam Camera, shake int) {
	all := g.engine.Entities()
	all = append(all, g.engine.Particles()...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Pos.Z > all[j].Pos.Z })

	for i := range all {
		en := &all[i]
		p := cam.Project(en.Pos)
		if !p.Visible {
			continue
		}
		x, y := int(p.X)+shake, int(p.Y)
		switch en.Kind {
		case KindGate:
			width := max(3, int(en.Width*p.Scale*cam.LateralScale))
			dst.HLine(int(p.X)-width/2+shake, y, width, GateChar, en.Color)
			label := en.Gate.Label()
			dst.DrawTextColored(int(p.X)-len(label)/2+shake, y, label, core.ColorBrightWhite)
		case KindObstacle:
			width := max(2, int(en.Width*p.Scale*cam.LateralScale))
			dst.HLine(int(p.X)-width/2+shake, y, width, ObstacleChar, en.Color)
		case KindBoss:
			dst.DrawTextColored(x-len(bossSprite)/2, y, bossSprite, en.Color)
		case KindGrunt:
			dst.SetColored(x, y, GruntChar, en.Color)
		case KindSprinter:
			dst.SetColored(x, y, SprinterChar, en.Color)
		case KindTank:
			dst.SetColored(x, y, TankChar, en.Color)
		case KindBullet:
			dst.SetColored(x, y, BulletChar, en.Color)
		case KindPickup:
			dst.SetColored(x, y, pickupGlyphs[en.Pickup], en.Color)
		case KindParticle:
			dst.SetColored(x, y, en.Particle.Shape, en.Color)
		}
	}
}

func (g *Game) drawSquad(dst *core.Screen, cam Camera, shake int) {
	p := g.engine.Player()
	n := min(g.engine.PlayerStats().ProjectileCount, maxDrawSquad)
	offsets := SquadOffsets(n, g.cfg.Player.SquadSpacing)
	for i := len(offsets) - 1; i >= 0; i-- {
		pr := cam.Project(p.Pos.Add(offsets[i]))
		if !pr.Visible {
			continue
		}
		ch := SquadChar
		if i == 0 {
			ch = LeaderChar
		}
		dst.SetColored(int(pr.X)+shake, int(pr.Y), ch, p.Color)
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	st := g.engine.Stats()
	tier := g.engine.Settings().Difficulty.Label()
	line := fmt.Sprintf(" SCORE %d  %.0fm  WAVE %d  SQUAD %d  DPS %.0f  %s ",
		st.Score, st.Distance/10, st.Wave, st.ProjectileCount, st.DPS, tier)
	dst.DrawTextColored(0, 0, line, core.ColorNeonCyan)

	if st.BossHealth == nil {
		return
	}
	barW := dst.Width() - 10
	filled := int(math.Round(*st.BossHealth * float64(barW)))
	dst.DrawTextColored(1, 1, "BOSS", core.ColorBrightMagenta)
	dst.HLine(6, 1, barW, '░', core.ColorBrightMagenta)
	dst.HLine(6, 1, filled, '█', core.ColorBrightMagenta)
}

func (g *Game) drawSettings(dst *core.Screen) {
	s := g.engine.Settings()
	onOff := func(b bool) string {
		if b {
			return "ON"
		}
		return "OFF"
	}
	rows := [settingCount]string{
		settingDifficulty: "Difficulty      " + s.Difficulty.Label(),
		settingSound:      "Sound           " + onOff(s.Sound),
		settingHaptics:    "Haptics         " + onOff(s.Haptics),
		settingReduced:    "Reduced effects " + onOff(s.ReducedEffects),
		settingWeather:    "Weather         " + onOff(s.Weather),
	}

	box := core.CenteredRect(34, settingCount+5, dst.Width(), dst.Height())
	dst.FillRect(box, ' ')
	dst.DrawBox(box, core.ColorNeonViolet)
	dst.DrawTextColored(box.CenterText(8), box.Y+1, "SETTINGS", core.ColorNeonPink)
	inner := box.Inset(2)
	for i, row := range rows {
		prefix := "  "
		color := core.ColorWhite
		if i == g.cursor {
			prefix = "> "
			color = core.ColorBrightYellow
		}
		dst.DrawTextColored(inner.X, box.Y+3+i, prefix+row, color)
	}
	dst.DrawText(inner.X, box.Bottom()-1, " Enter toggle  O close ")
}

// drawCenteredMessage draws a boxed message in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	box := core.CenteredRect(max(len(title), len(subtitle))+4, 5, dst.Width(), dst.Height())
	dst.FillRect(box, ' ')
	dst.DrawBox(box, core.ColorNeonViolet)

	dst.DrawTextColored(box.CenterText(len(title)), box.Y+1, title, core.ColorNeonPink)
	dst.DrawText(box.CenterText(len(subtitle)), box.Y+3, subtitle)
}
