package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/games/neon"
	"github.com/vovakirdan/neon-runner/internal/registry"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenScores
	screenGame
)

// SessionModel is the root model of an SSH connection. It moves between
// the menu, the scoreboard and a running game inside one program, carrying
// the profile's settings across screens.
type SessionModel struct {
	config   core.RuntimeConfig
	opts     Options
	settings config.Settings
	screen   sessionScreen

	menu       MenuModel
	scoreboard *ScoreboardModel
	gameModel  *Model
	quitting   bool
}

// NewSessionModel creates a session whose settings come from the
// profile named in opts.
func NewSessionModel(cfg core.RuntimeConfig, opts Options) SessionModel {
	opts = opts.withDefaults()
	settings := config.DefaultSettings()
	if opts.Store != nil {
		if stored, ok, err := opts.Store.LoadSettings(opts.Profile); err == nil && ok {
			settings = stored
		}
	}

	m := SessionModel{config: cfg, opts: opts, settings: settings}
	m.menu = m.freshMenu()
	return m
}

func (m SessionModel) freshMenu() MenuModel {
	return NewMenuModel(m.opts.Store, m.config, m.settings, m.opts.Profile)
}

func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = ws.Width, ws.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

// toMenu drops whatever screen is open and shows a new menu.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.scoreboard, m.gameModel = nil, nil
	m.menu = m.freshMenu()
	return m, m.menu.Init()
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// The menu quits its own program once a choice is made; the session
// swaps screens instead and drops that command.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}
	m.settings = m.menu.Settings()

	switch {
	case m.menu.IsQuitting():
		return m.quit()
	case m.menu.WantsScoreboard():
		sb := NewScoreboardModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.scoreboard = &sb
		m.screen = screenScores
		return m, sb.Init()
	}

	sel := m.menu.Selected()
	if sel == nil {
		return m, cmd
	}
	return m.startGame(sel.GameID)
}

func (m SessionModel) startGame(id string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id)
	if err != nil {
		m.opts.Logger.Warn("cannot start game", "game", id, "error", err)
		return m.toMenu()
	}
	if ng, ok := game.(*neon.Game); ok {
		ng.UseSettings(m.settings)
	}

	m.config = m.menu.Config()
	m.config.Seed = time.Now().UnixNano()
	gm := NewModel(game, m.opts.Store, m.config, m.opts)
	m.gameModel = &gm
	m.screen = screenGame
	return m, gm.Init()
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	switch {
	case m.scoreboard.IsGoingBack():
		return m.toMenu()
	case m.scoreboard.IsQuitting():
		return m.quit()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.gameModel.Update(msg)
	if gm, ok := next.(Model); ok {
		m.gameModel = &gm
	}

	switch {
	case m.gameModel.BackToMenu():
		if ng, ok := m.gameModel.game.(*neon.Game); ok {
			m.settings = ng.Settings()
		}
		return m.toMenu()
	case m.gameModel.IsQuitting():
		return m.quit()
	}
	return m, cmd
}

func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenScores:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}
