// Package eventlog logs engine events with charmbracelet/log.
package eventlog

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-runner/internal/games/neon"
)

// Sink writes events at debug level, and phase changes and run ends at
// info level. Stats are logged only when the wave changes.
type Sink struct {
	log  *log.Logger
	wave int
}

// New creates a sink writing to logger.
func New(logger *log.Logger) *Sink {
	return &Sink{log: logger}
}

// Stats logs wave transitions.
func (s *Sink) Stats(st neon.Stats) {
	if st.Wave == s.wave {
		return
	}
	s.wave = st.Wave
	s.log.Debug("Wave", "wave", st.Wave, "score", st.Score, "distance", int(st.Distance), "dps", st.DPS)
}

// Event logs one event.
func (s *Sink) Event(ev neon.Event) {
	switch ev.Kind {
	case neon.EventShot:
		return
	case neon.EventPhase:
		s.log.Info("Phase", "phase", ev.Detail, "tick", ev.Tick)
	case neon.EventGameOver:
		s.log.Info("Run over", "score", int(ev.Value), "tick", ev.Tick)
	case neon.EventBossSpawn, neon.EventBossDefeat:
		s.log.Info(ev.Kind.String(), "tick", ev.Tick, "value", ev.Value)
	default:
		s.log.Debug(ev.Kind.String(), "tick", ev.Tick, "value", ev.Value,
			"detail", ev.Detail, "x", int(ev.Pos.X), "z", int(ev.Pos.Z))
	}
}
