package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-runner/internal/storage"
)

func seedRuns(t *testing.T, store *storage.Store, gameID string, scores ...int) {
	t.Helper()
	for i, sc := range scores {
		if _, err := store.SaveRun(storage.RunRecord{
			GameID: gameID, Score: sc, Wave: i + 1, Distance: float64(sc), Difficulty: "normal",
		}); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}
}

func boardStep(t *testing.T, m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm
}

func scores(rows []scoreRow) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Score
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestScoreboardModes(t *testing.T) {
	store := openTestStore(t)
	seedRuns(t, store, "neon", 200, 500, 100)

	m := NewScoreboardModel(store, 100, 30)
	if g, _ := m.currentGame(); g.ID != "neon" {
		t.Fatalf("first game = %q, expected neon", g.ID)
	}
	if got := scores(m.rows); !equalInts(got, []int{500, 200, 100}) {
		t.Errorf("best rows = %v", got)
	}
	if m.stats == nil || m.stats.GamesCount != 3 {
		t.Errorf("stats = %+v", m.stats)
	}

	m = boardStep(t, m, runeKey('r'))
	if got := scores(m.rows); !equalInts(got, []int{100, 500, 200}) {
		t.Errorf("recent rows = %v", got)
	}
	if !strings.Contains(m.View(), "RECENT RUNS") {
		t.Error("view should name the recent mode")
	}

	m = boardStep(t, m, runeKey('r'))
	if m.mode != modeBest {
		t.Error("r should toggle back to best runs")
	}
}

func TestScoreboardCyclesGames(t *testing.T) {
	store := openTestStore(t)
	seedRuns(t, store, "neon", 300)

	m := NewScoreboardModel(store, 60, 24)
	m = boardStep(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if g, _ := m.currentGame(); g.ID != "neon_classic" {
		t.Fatalf("after tab game = %q", g.ID)
	}
	if len(m.rows) != 0 || m.stats != nil {
		t.Errorf("neon_classic should be empty, got %v", scores(m.rows))
	}
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("empty game should show the placeholder")
	}

	m = boardStep(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if g, _ := m.currentGame(); g.ID != "neon" || len(m.rows) != 1 {
		t.Errorf("after shift+tab game = %q rows = %d", g.ID, len(m.rows))
	}
}

func TestScoreboardLegacyScores(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveScore("neon", 42); err != nil {
		t.Fatalf("SaveScore failed: %v", err)
	}

	m := NewScoreboardModel(store, 100, 30)
	if got := scores(m.rows); !equalInts(got, []int{42}) {
		t.Errorf("best rows = %v", got)
	}
	m = boardStep(t, m, runeKey('r'))
	if len(m.rows) != 0 {
		t.Error("plain scores have no run history to list")
	}
}

func TestScoreboardExit(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	back := boardStep(t, m, runeKey('b'))
	if !back.IsGoingBack() || back.IsQuitting() {
		t.Error("b should go back")
	}
	if back.View() != "" {
		t.Error("view should be empty after leaving")
	}

	quit := boardStep(t, m, runeKey('q'))
	if !quit.IsQuitting() {
		t.Error("q should quit")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Neon Runner", 20, "Neon Runner"},
		{"Neon Runner (Classic)", 10, "Neon Runn…"},
		{"abc", 1, "abc"},
	}
	for _, tc := range tests {
		if got := truncate(tc.in, tc.n); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, expected %q", tc.in, tc.n, got, tc.want)
		}
	}
}
