package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/registry"
	"github.com/vovakirdan/neon-runner/internal/storage"
)

// Terminals report key presses but never releases. A steering key counts
// as held for holdFirst after the first press, long enough to bridge the
// keyboard's repeat delay, and for holdRepeat after each repeat.
const (
	holdFirst  = 400 * time.Millisecond
	holdRepeat = 120 * time.Millisecond
)

// resizer is implemented by games that can follow terminal resizes mid-run.
type resizer interface {
	Resize(w, h int)
}

// Model is the Bubble Tea model for running a single game.
type Model struct {
	game       registry.Game
	framed     registry.Framed
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       Options
	hooks      *runHooks
	keys       *KeyMapper
	input      core.InputFrame
	held       map[core.Action]time.Time
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	scoreSaved bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	opts = opts.withDefaults()
	if opts.Store == nil {
		opts.Store = store
	}
	framed, _ := game.(registry.Framed)

	return Model{
		game:   game,
		framed: framed,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		config: cfg,
		opts:   opts,
		hooks:  attach(game, opts),
		keys:   NewKeyMapper(),
		input:  core.NewInputFrame(),
		held:   make(map[core.Action]time.Time),
	}
}

// Init starts the first run and the frame loop.
func (m Model) Init() tea.Cmd {
	m.hooks.begin(m.config.Seed)
	m.game.Reset(m.config)
	return frameCmd(m.opts.FPS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.MouseMsg:
		m.keys.MapMouse(msg, &m.input)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		return m.handleFrame(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, quit := m.keys.MapKey(msg)
	if quit {
		m.hooks.end()
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
	case core.ActionLeft, core.ActionRight:
		m.hold(action, now)
	case core.ActionBack:
		if m.gameState.GameOver {
			m.hooks.end()
			m.backToMenu = true
			return m, tea.Quit
		}
		m.input.Set(action)
	default:
		m.input.Set(action)
	}
	return m, nil
}

// hold extends a steering key's held window and releases the opposite one.
func (m Model) hold(a core.Action, now time.Time) {
	opposite := core.ActionLeft
	if a == core.ActionLeft {
		opposite = core.ActionRight
	}
	delete(m.held, opposite)

	window := holdFirst
	if until, ok := m.held[a]; ok && now.Before(until) {
		window = holdRepeat
	}
	m.held[a] = now.Add(window)
}

// handleResize follows the terminal size without restarting the run.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleFrame advances the game to the frame time.
func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	if m.input.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.hooks.begin(m.config.Seed)
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.input.Clear()
		clear(m.held)
		return m, frameCmd(m.opts.FPS)
	}

	for a, until := range m.held {
		if now.Before(until) {
			m.input.Set(a)
		} else {
			delete(m.held, a)
		}
	}

	var result core.StepResult
	if m.framed != nil {
		result = m.framed.Frame(now, m.input)
	} else {
		result = m.game.Step(m.input)
	}
	m.gameState = result.State

	// Run history saves the score itself when it is wired.
	if m.gameState.GameOver && !m.scoreSaved {
		if !m.hooks.saves() && m.store != nil && m.gameState.Score > 0 {
			//nolint:errcheck // Best-effort save, game continues regardless
			m.store.SaveScore(m.game.ID(), m.gameState.Score)
		}
		m.hooks.end()
		m.scoreSaved = true
	}

	m.input.Clear()
	return m, frameCmd(m.opts.FPS)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".neonrunner", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last reported game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if the user asked to leave entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for one game and blocks until it ends.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	model.hooks.end()
	return err
}
