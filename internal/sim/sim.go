// Package sim runs the engine headless, for balance checks and determinism
// verification from the command line.
package sim

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/games/neon"
)

// Steering policies.
const (
	SteerNone   = "none"
	SteerSweep  = "sweep"
	SteerRandom = "random"
)

// sweepPeriod is the number of ticks the sweep policy holds each direction.
const sweepPeriod = 90

// Options configures a headless run.
type Options struct {
	Config   config.NeonConfig
	Settings config.Settings
	Seed     int64
	MaxTicks uint64 // 0 runs until game over
	Steer    string
	Sinks    []neon.Sink
}

// Result summarizes a finished run.
type Result struct {
	Final    neon.Stats
	Ticks    uint64
	Hash     uint64
	GameOver bool
	Events   map[neon.EventKind]int
}

type counter map[neon.EventKind]int

func (c counter) Stats(neon.Stats)     {}
func (c counter) Event(ev neon.Event) { c[ev.Kind]++ }

// Run plays one run at fixed steps until game over, MaxTicks, or ctx ends.
// The same options always produce the same Result.
func Run(ctx context.Context, opts Options) (Result, error) {
	steer, err := policy(opts.Steer, opts.Seed)
	if err != nil {
		return Result{}, err
	}

	e := neon.New(opts.Config, opts.Settings, opts.Seed)
	defer e.Destroy()
	events := counter{}
	e.AddSink(events)
	for _, s := range opts.Sinks {
		e.AddSink(s)
	}
	e.SetPhase(neon.PhasePlaying)

	for opts.MaxTicks == 0 || e.Tick() < opts.MaxTicks {
		if e.Tick()%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, fmt.Errorf("sim: interrupted at tick %d: %w", e.Tick(), err)
			}
		}
		e.SetKeys(steer(e.Tick()))
		e.Step()
		if e.Phase() == neon.PhaseGameOver {
			break
		}
	}

	snap := e.Snapshot()
	return Result{
		Final:    e.Stats(),
		Ticks:    e.Tick(),
		Hash:     snap.Hash(),
		GameOver: e.Phase() == neon.PhaseGameOver,
		Events:   events,
	}, nil
}

// policy returns a key-state function for the named steering policy.
func policy(name string, seed int64) (func(tick uint64) (left, right bool), error) {
	switch name {
	case "", SteerNone:
		return func(uint64) (bool, bool) { return false, false }, nil
	case SteerSweep:
		return func(tick uint64) (bool, bool) {
			left := (tick/sweepPeriod)%2 == 0
			return left, !left
		}, nil
	case SteerRandom:
		rng := rand.New(rand.NewSource(seed)) //#nosec G404 -- deterministic steering, not security
		var left, right bool
		return func(tick uint64) (bool, bool) {
			if tick%30 == 0 {
				switch rng.Intn(3) {
				case 0:
					left, right = true, false
				case 1:
					left, right = false, true
				default:
					left, right = false, false
				}
			}
			return left, right
		}, nil
	}
	return nil, fmt.Errorf("sim: unknown steering policy %q", name)
}
