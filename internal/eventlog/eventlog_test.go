package eventlog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-runner/internal/games/neon"
)

func newTestSink(level log.Level) (*Sink, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: level})
	return New(logger), &buf
}

func TestEventLevels(t *testing.T) {
	tests := []struct {
		name  string
		ev    neon.Event
		level log.Level
		want  string
	}{
		{"phase at info", neon.Event{Kind: neon.EventPhase, Detail: "playing"}, log.InfoLevel, "phase=playing"},
		{"game over at info", neon.Event{Kind: neon.EventGameOver, Value: 321}, log.InfoLevel, "score=321"},
		{"boss at info", neon.Event{Kind: neon.EventBossSpawn, Tick: 7}, log.InfoLevel, "boss_spawn"},
		{"kill at debug", neon.Event{Kind: neon.EventKill, Detail: "tank"}, log.DebugLevel, "detail=tank"},
		{"kill hidden at info", neon.Event{Kind: neon.EventKill}, log.InfoLevel, ""},
		{"shots never", neon.Event{Kind: neon.EventShot}, log.DebugLevel, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, buf := newTestSink(tc.level)
			s.Event(tc.ev)
			out := buf.String()
			if tc.want == "" {
				if out != "" {
					t.Errorf("expected no output, got %q", out)
				}
				return
			}
			if !strings.Contains(out, tc.want) {
				t.Errorf("output %q should contain %q", out, tc.want)
			}
		})
	}
}

func TestStatsLogsWaveChanges(t *testing.T) {
	s, buf := newTestSink(log.DebugLevel)
	s.Stats(neon.Stats{Wave: 1})
	s.Stats(neon.Stats{Wave: 1})
	s.Stats(neon.Stats{Wave: 2})
	if got := strings.Count(buf.String(), "Wave"); got != 2 {
		t.Errorf("logged %d wave lines, expected 2:\n%s", got, buf.String())
	}
}
