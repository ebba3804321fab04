package neon

import (
	"math"
	"strconv"

	"github.com/vovakirdan/neon-runner/internal/core"
)

// Kind tags an entity variant.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindGrunt
	KindSprinter
	KindTank
	KindBoss
	KindBullet
	KindParticle
	KindPickup
	KindGate
	KindObstacle
)

var kindNames = [...]string{
	KindPlayer:   "player",
	KindGrunt:    "grunt",
	KindSprinter: "sprinter",
	KindTank:     "tank",
	KindBoss:     "boss",
	KindBullet:   "bullet",
	KindParticle: "particle",
	KindPickup:   "pickup",
	KindGate:     "gate",
	KindObstacle: "obstacle",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsEnemy reports whether the kind is hostile and damageable by bullets.
func (k Kind) IsEnemy() bool {
	switch k {
	case KindGrunt, KindSprinter, KindTank, KindBoss:
		return true
	}
	return false
}

// PickupKind selects the area effect of a bomb pickup.
type PickupKind uint8

const (
	PickupSmall PickupKind = iota
	PickupMedium
	PickupLarge
	PickupCluster
)

func (p PickupKind) String() string {
	switch p {
	case PickupSmall:
		return "bomb_small"
	case PickupMedium:
		return "bomb_medium"
	case PickupLarge:
		return "bomb_large"
	case PickupCluster:
		return "cluster"
	}
	return "unknown"
}

// GateOp is the arithmetic a gate applies to the projectile count.
type GateOp uint8

const (
	GateAdd GateOp = iota
	GateMultiply
)

// GateEffect is an operation plus a signed value.
type GateEffect struct {
	Op    GateOp
	Value float64
}

// Apply returns the new projectile count. The result is floored and never negative.
func (g GateEffect) Apply(count int) int {
	var v float64
	switch g.Op {
	case GateMultiply:
		v = float64(count) * g.Value
	default:
		v = float64(count) + g.Value
	}
	n := int(math.Floor(v))
	if n < 0 {
		return 0
	}
	return n
}

// Good reports whether the gate raises the count.
func (g GateEffect) Good() bool {
	if g.Op == GateMultiply {
		return g.Value >= 1
	}
	return g.Value >= 0
}

// Label is the short text drawn on the gate.
func (g GateEffect) Label() string {
	if g.Op == GateMultiply {
		if g.Value >= 1 {
			return "x" + formatNum(g.Value)
		}
		if g.Value > 0 {
			return "/" + formatNum(1/g.Value)
		}
		return "x0"
	}
	if g.Value >= 0 {
		return "+" + formatNum(g.Value)
	}
	return formatNum(g.Value)
}

// Stuck holds latch state for an enemy carried by the player.
type Stuck struct {
	Active   bool
	Offset   Vec2
	Cooldown float64
}

// BulletState tracks the range fade of a projectile.
type BulletState struct {
	OriginZ    float64
	BaseDamage float64
	BaseRadius float64
}

// ParticleState is cosmetic debris.
type ParticleState struct {
	Shape      rune
	Rotation   float64
	Spin       float64
	Life       float64
	MaxLife    float64
	BaseRadius float64
}

// BossState drives the boss hover pattern and firing.
type BossState struct {
	Hovering     bool
	Clock        float64
	Dir          float64
	ReverseTimer float64
	FireTimer    float64
}

// Entity is one simulation object. Kind selects which of the
// kind-specific fields are meaningful.
type Entity struct {
	ID      uint64
	Kind    Kind
	Pos     Vec2
	Vel     Vec2
	Radius  float64
	Active  bool
	Hostile bool
	HP      float64
	MaxHP   float64
	Color   core.Color
	Lane    int
	Score   int
	Damage  float64
	Width   float64
	Height  float64

	// Enemies
	Formation float64
	Stuck     Stuck
	Aimed     bool

	Gate     GateEffect
	Pickup   PickupKind
	Bullet   BulletState
	Particle ParticleState
	Boss     BossState
}

func formatNum(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}
