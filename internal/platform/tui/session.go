package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/termtris/internal/core"
	"github.com/vovakirdan/termtris/internal/games/tetris"
	"github.com/vovakirdan/termtris/internal/registry"
	"github.com/vovakirdan/termtris/internal/storage"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenLevel
	screenGame
	screenScores
)

// SessionModel manages the full session flow inside one Bubble Tea program:
// menu -> level -> game -> menu, with the scoreboard reachable from the menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	store    *storage.Store
	logger   *log.Logger
	config   core.RuntimeConfig
	username string
	screen   sessionScreen
	pending  string // Game ID waiting on a level choice
	menu     MenuModel
	level    LevelModel
	scores   ScoreboardModel
	game     *GameModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string, logger *log.Logger) SessionModel {
	return SessionModel{
		store:    store,
		logger:   logger,
		config:   cfg,
		username: username,
		menu:     NewMenuModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenLevel:
		return m.updateLevel(msg)
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// Sub-models return tea.Quit when they finish; the session swallows it and
// switches screens instead.

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, nil

	case m.menu.Selected() != nil:
		m.pending = m.menu.Selected().GameID
		m.level = NewLevelModel(m.config.ScreenW, m.config.ScreenH, 0, tetris.Difficulty())
		m.screen = screenLevel
		return m, nil
	}

	return m, cmd
}

func (m SessionModel) updateLevel(msg tea.Msg) (tea.Model, tea.Cmd) {
	newLevel, cmd := m.level.Update(msg)
	if levelModel, ok := newLevel.(LevelModel); ok {
		m.level = levelModel
	}

	switch {
	case m.level.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.level.WantsBack():
		return m.toMenu()

	case m.level.Selected() >= 0:
		return m.startGame(m.pending, m.level.Selected())
	}

	return m, cmd
}

func (m SessionModel) startGame(id string, level int) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id)
	if err != nil {
		// Menu only lists registered games
		return m.toMenu()
	}
	if ls, ok := game.(registry.LevelSelectable); ok {
		ls.SetStartLevel(level)
	}

	gameModel := NewGameModel(game, m.store, m.config, m.username, m.logger)
	m.game = &gameModel
	m.screen = screenGame

	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.game = nil
		return m.toMenu()
	}

	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newScores, cmd := m.scores.Update(msg)
	if scoresModel, ok := newScores.(ScoreboardModel); ok {
		m.scores = scoresModel
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scores.IsGoingBack() {
		return m.toMenu()
	}

	return m, cmd
}

// toMenu rebuilds the menu so high scores are fresh.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.store, m.config)
	m.screen = screenMenu
	m.pending = ""
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenLevel:
		return m.level.View()
	case screenGame:
		if m.game != nil {
			return m.game.View()
		}
	case screenScores:
		return m.scores.View()
	}

	return m.menu.View()
}
