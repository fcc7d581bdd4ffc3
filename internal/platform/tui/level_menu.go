package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/termtris/internal/config"
	"github.com/vovakirdan/termtris/internal/core"
)

// MaxSelectableLevel is the highest start level offered by the level picker.
const MaxSelectableLevel = 9

// LevelModel lets users choose the starting level before a game.
type LevelModel struct {
	cursor     int
	width      int
	height     int
	keyMapper  *KeyMapper
	difficulty *config.DifficultyManager
	level      int
	choosing   bool
	quitting   bool
	back       bool
}

// NewLevelModel creates a level picker with the cursor on initial.
// A nil difficulty falls back to the default gravity curve.
func NewLevelModel(width, height, initial int, difficulty *config.DifficultyManager) LevelModel {
	if difficulty == nil {
		difficulty = config.NewDifficultyManager(config.DefaultTetrisConfig().Difficulty)
	}

	return LevelModel{
		cursor:     core.Clamp(initial, 0, MaxSelectableLevel),
		width:      width,
		height:     height,
		keyMapper:  NewKeyMapper(),
		difficulty: difficulty,
		choosing:   true,
	}
}

// Init initializes the model.
func (m LevelModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m LevelModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < MaxSelectableLevel {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.level = m.cursor
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the level list with the fall speed of each level.
func (m LevelModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	for lvl := 0; lvl <= MaxSelectableLevel; lvl++ {
		cursor := "  "
		if lvl == m.cursor {
			cursor = "> "
		}

		interval := m.difficulty.Interval(lvl)
		line := fmt.Sprintf("%sLevel %d  (%4d ms/row)", cursor, lvl, interval.Milliseconds())
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen level, or -1 while still choosing.
func (m LevelModel) Selected() int {
	if m.choosing {
		return -1
	}
	return m.level
}

// IsQuitting returns true if user wants to quit.
func (m LevelModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelModel) WantsBack() bool {
	return m.back
}

// RunLevelSelector runs the level picker.
// Returns the chosen level, or -1 if the user went back or quit.
func RunLevelSelector(cfg core.RuntimeConfig, initial int, difficulty *config.DifficultyManager) (int, error) {
	p := tea.NewProgram(
		NewLevelModel(cfg.ScreenW, cfg.ScreenH, initial, difficulty),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return -1, err
	}

	m, ok := finalModel.(LevelModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return -1, nil
	}

	return m.Selected(), nil
}
