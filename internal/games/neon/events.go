package neon

import (
	"fmt"
	"time"
)

// EventKind names a discrete state transition.
type EventKind uint8

const (
	EventPhase EventKind = iota
	EventShot
	EventGate
	EventDetonation
	EventKill
	EventLatch
	EventPlayerHit
	EventBossSpawn
	EventBossDefeat
	EventGameOver
)

var eventNames = [...]string{
	EventPhase:      "phase",
	EventShot:       "shot",
	EventGate:       "gate",
	EventDetonation: "detonation",
	EventKill:       "kill",
	EventLatch:      "latch",
	EventPlayerHit:  "player_hit",
	EventBossSpawn:  "boss_spawn",
	EventBossDefeat: "boss_defeat",
	EventGameOver:   "game_over",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// MarshalText encodes the kind by name.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *EventKind) UnmarshalText(b []byte) error {
	for i, name := range eventNames {
		if name == string(b) {
			*k = EventKind(i)
			return nil
		}
	}
	return fmt.Errorf("neon: unknown event %q", b)
}

// Event is emitted for every discrete transition. Haptic is zero unless
// haptics are enabled; Sound is set only when sound is enabled.
type Event struct {
	Kind   EventKind     `json:"kind"`
	Tick   uint64        `json:"tick"`
	Pos    Vec2          `json:"pos"`
	Value  float64       `json:"value,omitempty"`
	Phase  Phase         `json:"phase"`
	Detail string        `json:"detail,omitempty"`
	Haptic time.Duration `json:"haptic,omitempty"`
	Sound  bool          `json:"sound,omitempty"`
}

// Sink receives the engine's output after each frame.
// Sinks run on the caller's goroutine and must not call back into the engine.
type Sink interface {
	Stats(s Stats)
	Event(ev Event)
}
