package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/registry"
	"github.com/vovakirdan/neon-runner/internal/storage"
)

const (
	minWidthForSidebar = 80
	sidebarWidth       = 24
	maxScores          = 100
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(core.ColorNeonPink.Code()))
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardPickStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(core.ColorNeonCyan.Code()))
	boardPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(core.ColorNeonViolet.Code())).
			Padding(0, 1)
)

// boardMode picks which runs the table lists.
type boardMode int

const (
	modeBest boardMode = iota
	modeRecent
)

func (m boardMode) String() string {
	if m == modeRecent {
		return "RECENT RUNS"
	}
	return "HIGH SCORES"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Mode     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.Mode, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Mode, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		NextGame: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next game")),
		PrevGame: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev game")),
		Mode:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "best/recent")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// scoreRow is one scoreboard line. Scores saved without run history
// leave the run columns empty.
type scoreRow struct {
	Score     int
	Wave      int
	Distance  float64
	Tier      string
	CreatedAt time.Time
}

// ScoreboardModel lists the best or latest runs of each registered game.
type ScoreboardModel struct {
	games      []registry.GameInfo
	gameCursor int
	mode       boardMode
	store      *storage.Store
	rows       []scoreRow
	stats      *storage.GameStats
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewScoreboardModel creates a scoreboard showing the first game's best runs.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForSidebar
}

// newTable sizes the columns to the terminal; the date column absorbs
// the spare width and shrinks first.
func (m ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 8},
		{Title: "Wave", Width: 5},
		{Title: "Dist", Width: 7},
		{Title: "Tier", Width: 11},
		{Title: "Date", Width: 12},
	}

	avail := m.width - 4
	if m.wide() {
		avail -= sidebarWidth + 4
	}
	fixed := 0
	for _, c := range columns[:len(columns)-1] {
		fixed += c.Width + 2
	}
	columns[len(columns)-1].Width = core.Clamp(avail-fixed-2, 6, 18)

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color(core.ColorNeonViolet.Code())).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m ScoreboardModel) currentGame() (registry.GameInfo, bool) {
	if len(m.games) == 0 {
		return registry.GameInfo{}, false
	}
	return m.games[m.gameCursor], true
}

// reload fetches rows for the current game and mode.
func (m *ScoreboardModel) reload() {
	m.rows, m.stats = nil, nil
	g, ok := m.currentGame()
	if ok && m.store != nil {
		m.rows = m.fetch(g.ID)
		if stats, err := m.store.GetGameStats(g.ID); err == nil && stats.GamesCount > 0 {
			m.stats = stats
		}
	}
	m.fillTable()
}

func (m *ScoreboardModel) fetch(gameID string) []scoreRow {
	var (
		runs []storage.RunRecord
		err  error
	)
	if m.mode == modeRecent {
		runs, err = m.store.RecentRuns(gameID, maxScores)
	} else {
		runs, err = m.store.TopRuns(gameID, maxScores)
	}

	var rows []scoreRow
	if err == nil && len(runs) > 0 {
		for _, r := range runs {
			rows = append(rows, scoreRow{
				Score: r.Score, Wave: r.Wave, Distance: r.Distance,
				Tier: r.Difficulty, CreatedAt: r.CreatedAt,
			})
		}
		return rows
	}

	// Scores saved before run history existed only rank by score.
	if m.mode == modeBest {
		if scores, err := m.store.TopScores(gameID, maxScores); err == nil {
			for _, sc := range scores {
				rows = append(rows, scoreRow{Score: sc.Score, CreatedAt: sc.CreatedAt})
			}
		}
	}
	return rows
}

func (m *ScoreboardModel) fillTable() {
	rows := make([]table.Row, len(m.rows))
	for i, r := range m.rows {
		wave, dist, tier := "-", "-", "-"
		if r.Wave > 0 {
			wave = strconv.Itoa(r.Wave)
			dist = fmt.Sprintf("%.0fm", r.Distance/10)
		}
		if r.Tier != "" {
			tier = r.Tier
		}
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Score),
			wave,
			dist,
			tier,
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) cycleGame(delta int) {
	if n := len(m.games); n > 0 {
		m.gameCursor = (m.gameCursor + delta + n) % n
		m.reload()
	}
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextGame):
			m.cycleGame(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevGame):
			m.cycleGame(-1)
			return m, nil
		case key.Matches(msg, m.keys.Mode):
			m.mode = 1 - m.mode
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = m.newTable()
		m.fillTable()
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := m.mode.String()
	if g, ok := m.currentGame(); ok {
		title += " · " + g.Title
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(boardTitleStyle.Render(title), m.width))
	b.WriteString("\n")
	if m.stats != nil {
		line := fmt.Sprintf("%d runs  |  avg %.0f  |  best wave %d  |  longest %.0fm",
			m.stats.GamesCount, m.stats.AvgScore, m.stats.BestWave, m.stats.MaxDistance/10)
		b.WriteString(centerText(boardDimStyle.Render(line), m.width))
	}
	b.WriteString("\n\n")

	body := boardPanelStyle.Render(m.tableView())
	if m.wide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", body)
	} else {
		b.WriteString(centerText(m.switcher(), m.width))
		b.WriteString("\n\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body))
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// sidebar lists the games for wide terminals.
func (m ScoreboardModel) sidebar() string {
	var b strings.Builder
	b.WriteString("Games\n")
	for i, g := range m.games {
		name := truncate(g.Title, sidebarWidth-6)
		if i == m.gameCursor {
			b.WriteString(boardPickStyle.Render("> " + name))
		} else {
			b.WriteString("  " + name)
		}
		b.WriteString("\n")
	}
	return boardPanelStyle.Width(sidebarWidth).Render(b.String())
}

// switcher shows the current game between arrows on narrow terminals.
func (m ScoreboardModel) switcher() string {
	g, ok := m.currentGame()
	if !ok {
		return ""
	}
	return boardPickStyle.Render(fmt.Sprintf("< %s >", truncate(g.Title, m.width-8)))
}

func (m ScoreboardModel) tableView() string {
	if len(m.rows) == 0 {
		return boardDimStyle.Italic(true).Padding(2, 4).
			Render("No runs recorded yet.\nPlay a run to set a high score!")
	}
	return m.table.View()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n < 2 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
