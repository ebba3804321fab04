package neon

import "fmt"

// Phase is the lifecycle state of a run.
type Phase uint8

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
	PhaseSettings
)

var phaseNames = [...]string{
	PhaseMenu:     "menu",
	PhasePlaying:  "playing",
	PhasePaused:   "paused",
	PhaseGameOver: "gameover",
	PhaseSettings: "settings",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name.
func (p *Phase) UnmarshalText(b []byte) error {
	for i, name := range phaseNames {
		if name == string(b) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("neon: unknown phase %q", b)
}

// PlayerStats is the player's loadout. ProjectileCount doubles as the
// squad size and the run's health pool.
type PlayerStats struct {
	Damage          float64 `json:"damage"`
	FireRate        float64 `json:"fire_rate"`
	ProjectileCount int     `json:"projectile_count"`
	MoveSpeed       float64 `json:"move_speed"`
}

// DPS is damage x projectile count x fire rate.
func (p PlayerStats) DPS() float64 {
	return p.Damage * float64(p.ProjectileCount) * p.FireRate
}

// RunState is the progress of the current run.
type RunState struct {
	Score    float64
	Distance float64
	Wave     int
}

// Stats is the snapshot handed to the presentation layer after each frame.
type Stats struct {
	Score           int      `json:"score"`
	Distance        float64  `json:"distance"`
	Wave            int      `json:"wave"`
	Phase           Phase    `json:"phase"`
	FPS             int      `json:"fps"`
	ActiveEntities  int      `json:"active_entities"`
	DPS             float64  `json:"dps"`
	ProjectileCount int      `json:"projectile_count"`
	BossHealth      *float64 `json:"boss_health,omitempty"`
}
