package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenScoreboard
)

// SessionModel runs the whole flow in one program: stage select, game,
// progress board and back. Used for local play and SSH sessions.
type SessionModel struct {
	env        Env
	user       string
	screen     screen
	menu       MenuModel
	game       GameModel
	scoreboard ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a session starting at stage select.
func NewSessionModel(env Env, user string) SessionModel {
	return SessionModel{
		env:  env,
		user: user,
		menu: NewMenuModel(env),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(m.menu.Init(), waitForLevelChange(m.env.Reload))
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.env.Runtime.ScreenW = wsm.Width
		m.env.Runtime.ScreenH = wsm.Height
	}

	if changed, ok := msg.(levelChangedMsg); ok {
		next := waitForLevelChange(m.env.Reload)
		if m.screen != screenGame {
			return m, next
		}
		model, cmd := m.updateGame(changed)
		return model, tea.Batch(cmd, next)
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menu, ok := newMenu.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsProgress():
		m.scoreboard = NewScoreboardModel(m.env)
		m.screen = screenScoreboard
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		sel := m.menu.Selected()
		game, err := NewGameModel(m.env, sel.Level, m.menu.Character())
		if err != nil {
			m.env.logger().Warn("cannot start level", "level", sel.Level.ID, "user", m.user, "error", err)
			m.menu = NewMenuModel(m.env)
			m.menu.note = err.Error()
			return m, nil
		}
		m.env.logger().Info("level started", "level", sel.Level.ID, "character", m.menu.Character(), "user", m.user)
		m.game = game
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newGame, cmd := m.game.Update(msg)
	if game, ok := newGame.(GameModel); ok {
		m.game = game
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.scoreboard.Update(msg)
	if board, ok := newBoard.(ScoreboardModel); ok {
		m.scoreboard = board
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

// toMenu rebuilds stage select so fresh progress shows up.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	cursor := m.menu.cursor
	m.menu = NewMenuModel(m.env)
	if cursor < len(m.menu.items) {
		m.menu.cursor = cursor
	}
	m.game = GameModel{}
	m.screen = screenMenu
	return m, m.menu.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScoreboard:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the full flow in the local terminal.
func RunSession(env Env) error {
	p := tea.NewProgram(NewSessionModel(env, "local"), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
