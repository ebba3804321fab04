package sfx

import (
	"strings"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/neon-runner/internal/games/neon"
)

// Cue builds the sound for an event at the given sample rate, or nil if
// the event is silent.
func Cue(ev neon.Event, rate beep.SampleRate) beep.Streamer {
	ms := time.Millisecond
	switch ev.Kind {
	case neon.EventShot:
		return gain(Shape(Tone(880, 30*ms, WaveSquare, rate), 30*ms, 2*ms, 20*ms, rate), 0.15)

	case neon.EventKill:
		return gain(Shape(Sweep(660, 990, 60*ms, WaveSine, rate), 60*ms, 3*ms, 40*ms, rate), 0.3)

	case neon.EventGate:
		if gateGood(ev.Detail) {
			// Two-note chime, B5 then E6.
			n1 := Shape(Tone(987.77, 80*ms, WaveSquare, rate), 80*ms, 2*ms, 30*ms, rate)
			n2 := Shape(Tone(1318.51, 160*ms, WaveSquare, rate), 160*ms, 2*ms, 120*ms, rate)
			return gain(beep.Seq(n1, n2), 0.3)
		}
		return gain(Shape(Sweep(300, 150, 150*ms, WaveSaw, rate), 150*ms, 5*ms, 100*ms, rate), 0.35)

	case neon.EventDetonation:
		noise := Shape(Tone(0, 400*ms, WaveNoise, rate), 400*ms, 5*ms, 350*ms, rate)
		thump := Shape(Sweep(90, 40, 300*ms, WaveSine, rate), 300*ms, 2*ms, 250*ms, rate)
		return gain(beep.Mix(gain(noise, 0.5), gain(thump, 0.8)), 0.6)

	case neon.EventLatch:
		return gain(Shape(Tone(180, 80*ms, WaveSaw, rate), 80*ms, 2*ms, 50*ms, rate), 0.3)

	case neon.EventPlayerHit:
		return gain(Shape(Tone(100, 150*ms, WaveSaw, rate), 150*ms, 5*ms, 50*ms, rate), 0.5)

	case neon.EventBossSpawn:
		return gain(Shape(Sweep(80, 160, 600*ms, WaveSaw, rate), 600*ms, 50*ms, 200*ms, rate), 0.5)

	case neon.EventBossDefeat:
		fund := Shape(Tone(880, 700*ms, WaveSine, rate), 700*ms, 5*ms, 600*ms, rate)
		over := Shape(Tone(1760, 700*ms, WaveSine, rate), 700*ms, 5*ms, 300*ms, rate)
		return gain(beep.Mix(gain(fund, 0.7), gain(over, 0.3)), 0.5)

	case neon.EventGameOver:
		notes := make([]beep.Streamer, 0, 3)
		for _, f := range []float64{440, 330, 220} {
			notes = append(notes, Shape(Tone(f, 180*ms, WaveSquare, rate), 180*ms, 5*ms, 120*ms, rate))
		}
		return gain(beep.Seq(notes...), 0.45)
	}
	return nil
}

// gateGood reports whether a gate label raised the squad.
func gateGood(label string) bool {
	if strings.HasPrefix(label, "+") {
		return true
	}
	return strings.HasPrefix(label, "x") && label != "x0"
}
