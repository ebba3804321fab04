package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/registry"
	"github.com/vovakirdan/neon-runner/internal/storage"
)

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(core.ColorNeonPink.Code()))
	menuPickStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(core.ColorNeonCyan.Code()))
	menuTierStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(core.ColorNeonAmber.Code()))
	menuHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
	HighScore   int
}

// MenuModel is the Bubble Tea model for the game picker menu.
// Left and right cycle the difficulty tier, which is saved to the profile.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	store          *storage.Store
	profile        string
	settings       config.Settings
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, settings config.Settings, profile string) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title, Description: g.Description}
		if store != nil {
			if hs, err := store.HighScore(g.ID); err == nil {
				item.HighScore = hs
			}
		}
		items = append(items, item)
	}
	if profile == "" {
		profile = storage.DefaultProfile
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		profile:   profile,
		settings:  settings,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.setDifficulty(m.settings.Difficulty.Prev())

	case MenuActionRight:
		m.setDifficulty(m.settings.Difficulty.Next())

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *MenuModel) setDifficulty(t config.Tier) {
	m.settings.Difficulty = t
	if m.store != nil {
		//nolint:errcheck // Best-effort save, the menu keeps the new tier regardless
		m.store.SaveSettings(m.profile, m.settings)
	}
}

type menuHelpKeys struct{}

var (
	menuNavKey   = key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "game"))
	menuTierKey  = key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "difficulty"))
	menuPlayKey  = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play"))
	menuScoreKey = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "scores"))
	menuQuitKey  = key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))
)

func (menuHelpKeys) ShortHelp() []key.Binding {
	return []key.Binding{menuNavKey, menuTierKey, menuPlayKey, menuScoreKey, menuQuitKey}
}

func (k menuHelpKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	rows := []string{
		"",
		menuTitleStyle.Render("N E O N   R U N N E R"),
		"",
		"Select a game",
		"",
	}
	for i, item := range m.items {
		line := fmt.Sprintf("  %-24s", item.Title)
		if item.HighScore > 0 {
			line += fmt.Sprintf(" best %d", item.HighScore)
		}
		if i == m.cursor {
			line = menuPickStyle.Render(">" + line[1:])
		}
		rows = append(rows, line)
	}
	if m.cursor < len(m.items) && m.items[m.cursor].Description != "" {
		rows = append(rows, "", menuHelpStyle.Render(m.items[m.cursor].Description))
	}

	tier := menuTierStyle.Render(fmt.Sprintf("< %s >", m.settings.Difficulty.Label()))
	rows = append(rows, "", "Difficulty "+tier, "", help.New().View(menuHelpKeys{}))

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(centerText(r, m.width))
		b.WriteString("\n")
	}
	return b.String()
}

// result summarizes how the menu program ended.
func (m MenuModel) result() MenuResult {
	r := MenuResult{Config: m.config, Settings: m.settings}
	switch {
	case m.openScoreboard:
		r.WantsScoreboard = true
	case m.selected != nil:
		r.GameID = m.selected.GameID
	default:
		r.Quit = true
	}
	return r
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// Settings returns the settings with the chosen difficulty.
func (m MenuModel) Settings() config.Settings {
	return m.settings
}

// centerText centers text within the given width, measuring styled text
// by its printed cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Settings        config.Settings
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, settings config.Settings, profile string) (MenuResult, error) {
	model := NewMenuModel(store, cfg, settings, profile)

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg, Settings: settings}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Settings: settings, Quit: true}, nil
	}
	return m.result(), nil
}
