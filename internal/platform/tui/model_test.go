package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/games/neon"
	"github.com/vovakirdan/neon-runner/internal/recorder"
	"github.com/vovakirdan/neon-runner/internal/storage"
)

func newTestModel(t *testing.T, opts Options) (Model, *neon.Game) {
	t.Helper()
	game := neon.NewGame(config.StuckRuleProximity)
	cfg := core.DefaultConfig()
	cfg.ScreenW, cfg.ScreenH = 80, 24
	cfg.Seed = 42
	m := NewModel(game, opts.Store, cfg, opts)
	m.Init()
	return m, game
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() }) //nolint:errcheck // test cleanup
	return store
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestModelHeldKeySteers(t *testing.T) {
	m, game := newTestModel(t, Options{})
	startX := game.Engine().Player().Pos.X

	m, _ = step(t, m, runeKey('a'))
	base := time.Now()
	for i := range 15 {
		m, _ = step(t, m, FrameMsg(base.Add(time.Duration(i)*16*time.Millisecond)))
	}

	if x := game.Engine().Player().Pos.X; x >= startX {
		t.Errorf("player x = %v after holding left, expected less than %v", x, startX)
	}
	if m.State().GameOver {
		t.Error("run should still be going")
	}
}

func TestModelPauseFreezesTicks(t *testing.T) {
	m, game := newTestModel(t, Options{})
	base := time.Now()
	m, _ = step(t, m, FrameMsg(base))
	m, _ = step(t, m, FrameMsg(base.Add(100*time.Millisecond)))

	m, _ = step(t, m, runeKey('p'))
	m, _ = step(t, m, FrameMsg(base.Add(116*time.Millisecond)))
	paused := game.Engine().Tick()

	_, _ = step(t, m, FrameMsg(base.Add(time.Second)))
	if got := game.Engine().Tick(); got != paused {
		t.Errorf("tick advanced while paused: %d -> %d", paused, got)
	}
	if game.Engine().Phase() != neon.PhasePaused {
		t.Errorf("phase = %v, expected paused", game.Engine().Phase())
	}
}

func TestModelQuitClosesRecording(t *testing.T) {
	dir := t.TempDir()
	m, _ := newTestModel(t, Options{RecordDir: dir})

	base := time.Now()
	for i := range 10 {
		m, _ = step(t, m, FrameMsg(base.Add(time.Duration(i)*16*time.Millisecond)))
	}

	m, cmd := step(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if !m.IsQuitting() {
		t.Error("model should report quitting")
	}

	files, err := filepath.Glob(filepath.Join(dir, "*"))
	if err != nil || len(files) != 1 {
		t.Fatalf("expected one recording, got %v (%v)", files, err)
	}
	rec, err := recorder.ReadFile(files[0])
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if rec.Header.GameID != "neon" || rec.Header.Seed != 42 {
		t.Errorf("header = %+v", rec.Header)
	}
	if len(rec.Stats) == 0 {
		t.Error("recording has no frames")
	}
}

func TestModelSettingsOverlaySaves(t *testing.T) {
	store := openTestStore(t)
	settings := config.DefaultSettings()
	m, game := newTestModel(t, Options{Store: store, Settings: &settings})

	base := time.Now()
	m, _ = step(t, m, FrameMsg(base))
	m, _ = step(t, m, runeKey('o'))
	m, _ = step(t, m, FrameMsg(base.Add(16*time.Millisecond)))
	if game.Engine().Phase() != neon.PhaseSettings {
		t.Fatalf("phase = %v, expected settings", game.Engine().Phase())
	}

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	_, _ = step(t, m, FrameMsg(base.Add(32*time.Millisecond)))

	want := settings.Difficulty.Next()
	if got := game.Settings().Difficulty; got != want {
		t.Errorf("difficulty = %v, expected %v", got, want)
	}
	stored, ok, err := store.LoadSettings(storage.DefaultProfile)
	if err != nil || !ok {
		t.Fatalf("LoadSettings = %v, %v", ok, err)
	}
	if stored.Difficulty != want {
		t.Errorf("stored difficulty = %v, expected %v", stored.Difficulty, want)
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	m, game := newTestModel(t, Options{})
	base := time.Now()
	m, _ = step(t, m, FrameMsg(base))
	m, _ = step(t, m, FrameMsg(base.Add(200*time.Millisecond)))
	before := game.Engine().Tick()

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if got := game.Engine().Tick(); got != before {
		t.Errorf("resize restarted the run: tick %d -> %d", before, got)
	}
	if m.View() == "" {
		t.Error("view should render after resize")
	}
}

func TestHooksSkipForeignGames(t *testing.T) {
	h := attach(stubGame{}, Options{}.withDefaults())
	if h.saves() {
		t.Error("a game without run history should not own score saves")
	}
	h.begin(1)
	h.end()
	h.end()
}

type stubGame struct{}

func (stubGame) ID() string { return "stub" }
func (stubGame) Title() string { return "Stub" }
func (stubGame) Reset(core.RuntimeConfig) {}
func (stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (stubGame) Render(*core.Screen) {}
func (stubGame) State() core.GameState { return core.GameState{} }
