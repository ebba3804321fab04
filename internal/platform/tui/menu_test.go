package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/storage"
)

func menuStep(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm
}

func testConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.ScreenW, cfg.ScreenH = 80, 24
	return cfg
}

func TestMenuDifficultyPersists(t *testing.T) {
	store := openTestStore(t)
	settings := config.DefaultSettings()
	m := NewMenuModel(store, testConfig(), settings, "")

	m = menuStep(t, m, tea.KeyMsg{Type: tea.KeyRight})
	want := settings.Difficulty.Next()
	if m.Settings().Difficulty != want {
		t.Errorf("difficulty = %v, expected %v", m.Settings().Difficulty, want)
	}
	stored, ok, err := store.LoadSettings(storage.DefaultProfile)
	if err != nil || !ok || stored.Difficulty != want {
		t.Errorf("stored = %+v, %v, %v", stored, ok, err)
	}

	m = menuStep(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Settings().Difficulty != settings.Difficulty {
		t.Errorf("left should step back to %v, got %v", settings.Difficulty, m.Settings().Difficulty)
	}
	if !strings.Contains(m.View(), settings.Difficulty.Label()) {
		t.Error("view should show the tier label")
	}
}

func TestMenuSelection(t *testing.T) {
	m := NewMenuModel(nil, testConfig(), config.DefaultSettings(), "")
	m = menuStep(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuStep(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuStep(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	sel := m.Selected()
	if sel == nil || sel.GameID != "neon_classic" {
		t.Fatalf("Selected() = %+v, expected neon_classic (cursor stops at the end)", sel)
	}
	if sel.Description == "" {
		t.Error("menu items should carry the rules summary")
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := NewMenuModel(nil, testConfig(), config.DefaultSettings(), "")
	if sb := menuStep(t, m, tea.KeyMsg{Type: tea.KeyTab}); !sb.WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}
	if q := menuStep(t, m, runeKey('q')); !q.IsQuitting() || q.View() != "" {
		t.Error("q should quit with an empty view")
	}
}

func TestMenuResizeUpdatesConfig(t *testing.T) {
	m := NewMenuModel(nil, testConfig(), config.DefaultSettings(), "")
	m = menuStep(t, m, tea.WindowSizeMsg{Width: 132, Height: 40})
	if cfg := m.Config(); cfg.ScreenW != 132 || cfg.ScreenH != 40 {
		t.Errorf("config = %dx%d", cfg.ScreenW, cfg.ScreenH)
	}
}

func TestMenuResult(t *testing.T) {
	m := NewMenuModel(nil, testConfig(), config.DefaultSettings(), "")
	if r := m.result(); !r.Quit {
		t.Errorf("a menu left without a choice should quit: %+v", r)
	}

	picked := menuStep(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if r := picked.result(); r.Quit || r.GameID != "neon" {
		t.Errorf("result = %+v, expected neon", r)
	}

	board := menuStep(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if r := board.result(); !r.WantsScoreboard || r.GameID != "" {
		t.Errorf("result = %+v, expected the scoreboard", r)
	}
}
