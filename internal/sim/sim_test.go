package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/games/neon"
)

func baseOptions() Options {
	return Options{
		Config:   config.DefaultNeonConfig(),
		Settings: config.DefaultSettings(),
		Seed:     7,
		MaxTicks: 600,
	}
}

func TestRunIsDeterministic(t *testing.T) {
	for _, steer := range []string{SteerNone, SteerSweep, SteerRandom} {
		t.Run(steer, func(t *testing.T) {
			opts := baseOptions()
			opts.Steer = steer

			a, err := Run(context.Background(), opts)
			if err != nil {
				t.Fatalf("Run() failed: %v", err)
			}
			b, err := Run(context.Background(), opts)
			if err != nil {
				t.Fatalf("Run() failed: %v", err)
			}
			if a.Hash != b.Hash || a.Ticks != b.Ticks {
				t.Errorf("runs diverged: %d@%d vs %d@%d", a.Hash, a.Ticks, b.Hash, b.Ticks)
			}
		})
	}
}

func TestRunStopsAtMaxTicks(t *testing.T) {
	res, err := Run(context.Background(), baseOptions())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !res.GameOver && res.Ticks != 600 {
		t.Errorf("Ticks = %d, expected 600", res.Ticks)
	}
	if res.Ticks > 600 {
		t.Errorf("ran past MaxTicks: %d", res.Ticks)
	}
	if res.Final.Distance <= 0 {
		t.Error("the run should have covered distance")
	}
	if res.Events[neon.EventShot] == 0 {
		t.Error("the squad should have fired")
	}
	if res.Events[neon.EventPhase] == 0 {
		t.Error("the start of the run should be counted")
	}
}

func TestRunFeedsSinks(t *testing.T) {
	var frames int
	opts := baseOptions()
	opts.MaxTicks = 50
	opts.Sinks = []neon.Sink{statsFunc(func(neon.Stats) { frames++ })}

	if _, err := Run(context.Background(), opts); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if frames != 50 {
		t.Errorf("sink saw %d frames, expected 50", frames)
	}
}

type statsFunc func(neon.Stats)

func (f statsFunc) Stats(s neon.Stats) { f(s) }
func (statsFunc) Event(neon.Event)     {}

func TestRunRejectsUnknownPolicy(t *testing.T) {
	opts := baseOptions()
	opts.Steer = "zigzag"
	if _, err := Run(context.Background(), opts); err == nil {
		t.Error("unknown policy should be rejected")
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts := baseOptions()
	opts.MaxTicks = 0

	_, err := Run(ctx, opts)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, expected context.Canceled", err)
	}
}
