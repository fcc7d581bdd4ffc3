package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/termtris/internal/games/tetris"
	"github.com/vovakirdan/termtris/internal/registry"
	"github.com/vovakirdan/termtris/internal/storage"
)

// boardRows is how many runs a board loads.
const boardRows = 100

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	boardTabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTabStyle = boardTabStyle.Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))
	boardEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
)

// boardKeys are the scoreboard bindings.
type boardKeys struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newBoardKeys() boardKeys {
	return boardKeys{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next mode")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("←", "prev mode")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the saved runs of one mode at a time. Score modes
// list the best scores; timed modes list completed runs, fastest first.
type ScoreboardModel struct {
	modes     []registry.GameInfo
	current   int
	store     *storage.Store
	runs      []storage.ScoreEntry
	stats     *storage.GameStats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      boardKeys
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard opened on the first mode.
// store may be nil.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		help:   help.New(),
		keys:   newBoardKeys(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.load()
	return m
}

func (m ScoreboardModel) mode() registry.GameInfo {
	if len(m.modes) == 0 {
		return registry.GameInfo{}
	}
	return m.modes[m.current]
}

// load reads the current mode's runs and rebuilds the table.
func (m *ScoreboardModel) load() {
	m.runs, m.stats, m.loadErr = nil, nil, nil
	if mode := m.mode(); m.store != nil && mode.ID != "" {
		if mode.Timed {
			m.runs, m.loadErr = m.store.FastestTimes(mode.ID, boardRows)
		} else {
			m.runs, m.loadErr = m.store.TopScores(mode.ID, boardRows)
		}
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.GetGameStats(mode.ID)
		}
	}
	m.table = m.buildTable()
}

// columns depend on the ranking: timed boards lead with the time.
func (m ScoreboardModel) columns() []table.Column {
	player := max(10, min(m.width-60, 20))
	if m.mode().Timed {
		return []table.Column{
			{Title: "#", Width: 4},
			{Title: "Time", Width: 9},
			{Title: "Score", Width: 8},
			{Title: "Player", Width: player},
			{Title: "Date", Width: 12},
		}
	}
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 8},
		{Title: "Lines", Width: 6},
		{Title: "Level", Width: 5},
		{Title: "Player", Width: player},
		{Title: "Date", Width: 12},
	}
}

func (m ScoreboardModel) row(rank int, r storage.ScoreEntry) table.Row {
	player := r.Player
	if player == "" {
		player = "-"
	}
	date := r.CreatedAt.Format("Jan 02 15:04")
	if m.mode().Timed {
		return table.Row{strconv.Itoa(rank), tetris.FormatDuration(r.Duration), strconv.Itoa(r.Score), player, date}
	}
	return table.Row{strconv.Itoa(rank), strconv.Itoa(r.Score), strconv.Itoa(r.Lines), strconv.Itoa(r.Level), player, date}
}

func (m ScoreboardModel) buildTable() table.Model {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = m.row(i+1, r)
	}

	t := table.New(
		table.WithColumns(m.columns()),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
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
		case key.Matches(msg, m.keys.Next):
			m.switchMode(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.switchMode(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.buildTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) switchMode(delta int) {
	if n := len(m.modes); n > 0 {
		m.current = ((m.current+delta)%n + n) % n
		m.load()
	}
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	heading := "HIGH SCORES"
	if m.mode().Timed {
		heading = "FASTEST RUNS"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardTitleStyle.Render(heading)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.tabs()))
	b.WriteString("\n\n")
	b.WriteString(boardFrameStyle.Render(m.body()))
	b.WriteString("\n")
	if s := m.summary(); s != "" {
		b.WriteString(helpStyle.Render(s))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) tabs() string {
	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.current {
			tabs[i] = boardActiveTabStyle.Render(g.Title)
		} else {
			tabs[i] = boardTabStyle.Render(g.Title)
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(line) > m.width {
		return "< " + m.mode().Title + " >"
	}
	return line
}

func (m ScoreboardModel) body() string {
	switch {
	case m.loadErr != nil:
		return boardEmptyStyle.Render("Could not read scores: " + m.loadErr.Error())
	case len(m.runs) > 0:
		return m.table.View()
	case m.mode().Timed:
		return boardEmptyStyle.Render("No completed runs yet.\nClear the goal to set a time!")
	default:
		return boardEmptyStyle.Render("No scores recorded yet.\nFinish a game to set a high score!")
	}
}

// summary is the one-line totals under the table.
func (m ScoreboardModel) summary() string {
	st := m.stats
	if st == nil || st.GamesCount == 0 {
		return ""
	}
	line := fmt.Sprintf("%d games  best %d  most lines %d", st.GamesCount, st.HighScore, st.MostLines)
	if m.mode().Timed {
		line += fmt.Sprintf("  completed %d", st.Completed)
		if st.BestTime > 0 {
			line += "  record " + tetris.FormatDuration(st.BestTime)
		}
	}
	return line
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

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
