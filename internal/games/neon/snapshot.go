package neon

import "math"

// Snapshot is a compact integer view of the simulation for determinism
// checks and headless summaries. Positions are fixed-point hundredths.
type Snapshot struct {
	Tick            uint64
	Phase           Phase
	Score           int
	Distance        int
	Wave            int
	ProjectileCount int
	PlayerX         int
	Lane            int
	BossActive      bool
	EntityCount     int

	// Each entity is 4 ints: Kind, X, Z, HP
	EntityData []int
}

func fixed(v float64) int { return int(math.Round(v * 100)) }

// Snapshot captures the current engine state.
func (e *Engine) Snapshot() Snapshot {
	ents := e.store.Entities()
	data := make([]int, 0, len(ents)*4)
	for _, en := range ents {
		data = append(data, int(en.Kind), fixed(en.Pos.X), fixed(en.Pos.Z), fixed(en.HP))
	}
	return Snapshot{
		Tick:            e.tickCount,
		Phase:           e.phase,
		Score:           int(e.run.Score),
		Distance:        fixed(e.run.Distance),
		Wave:            e.run.Wave,
		ProjectileCount: e.stats.ProjectileCount,
		PlayerX:         fixed(e.store.Player().Pos.X),
		Lane:            e.lane,
		BossActive:      e.director.bossActive,
		EntityCount:     len(ents),
		EntityData:      data,
	}
}

// Snapshot captures the state of the underlying engine.
func (g *Game) Snapshot() Snapshot {
	return g.engine.Snapshot()
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Phase)
	h = h*31 + uint64(snap.Score)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Distance)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Wave)            //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ProjectileCount) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerX)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lane)            //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.EntityCount)     //#nosec G115 -- hash computation
	if snap.BossActive {
		h = h*31 + 1
	}

	for _, v := range snap.EntityData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	return h
}
