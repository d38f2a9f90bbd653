package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/starhop/internal/core"
	"github.com/vovakirdan/starhop/internal/i18n"
	"github.com/vovakirdan/starhop/internal/level"
	"github.com/vovakirdan/starhop/internal/sim"
	"github.com/vovakirdan/starhop/internal/storage"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	clearedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lockedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// MenuItem is one stage in the stage select list.
type MenuItem struct {
	Level    level.Descriptor
	Progress storage.Progress
}

// MenuModel is the Bubble Tea model for stage select.
type MenuModel struct {
	env          Env
	items        []MenuItem
	cursor       int
	character    core.Character
	unlocked     bool
	debug        bool
	tr           i18n.Translator
	keyMapper    *KeyMapper
	note         string
	width        int
	height       int
	quitting     bool
	selected     *MenuItem
	wantProgress bool
}

// NewMenuModel loads the stage list and the saved selections.
func NewMenuModel(env Env) MenuModel {
	m := MenuModel{
		env:       env,
		keyMapper: NewKeyMapper(),
		width:     env.Runtime.ScreenW,
		height:    env.Runtime.ScreenH,
	}
	m.refresh()
	return m
}

// refresh rereads progress and settings from the store.
func (m *MenuModel) refresh() {
	logger := m.env.logger()
	m.tr = m.env.translator()

	levels := m.env.Levels.All()
	m.items = make([]MenuItem, 0, len(levels))
	for _, d := range levels {
		p, err := m.env.Store.LevelProgress(d.ID)
		if err != nil {
			logger.Warn("cannot read progress", "level", d.ID, "error", err)
		}
		m.items = append(m.items, MenuItem{Level: d, Progress: p})
	}
	if m.cursor >= len(m.items) {
		m.cursor = max(len(m.items)-1, 0)
	}

	c, err := m.env.Store.Character()
	if err != nil {
		logger.Warn("cannot read character", "error", err)
	}
	m.character = c

	m.unlocked, err = sim.CharacterUnlocked(m.env.Store, m.env.Tuning, core.CharacterAgile)
	if err != nil {
		logger.Warn("cannot check unlock", "error", err)
	}

	m.debug, err = m.env.Store.DebugMode()
	if err != nil {
		logger.Warn("cannot read debug mode", "error", err)
	}
}

// Init initializes the menu model.
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
		m.env.Runtime.ScreenW = msg.Width
		m.env.Runtime.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.note = ""

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

	case MenuActionCharacter:
		// Any character can be chosen; a locked one is refused at start.
		next := core.CharacterAgile
		if m.character == core.CharacterAgile {
			next = core.CharacterStandard
		}
		if err := m.env.Store.SetCharacter(next); err != nil {
			m.note = err.Error()
			break
		}
		m.character = next

	case MenuActionToggleCleared:
		if !m.debug || len(m.items) == 0 {
			break
		}
		it := m.items[m.cursor]
		if err := m.env.Store.SetCleared(it.Level.ID, !it.Progress.Cleared); err != nil {
			m.note = err.Error()
			break
		}
		m.refresh()

	case MenuActionProgress:
		m.wantProgress = true
		return m, tea.Quit

	case MenuActionSelect:
		if len(m.items) == 0 {
			break
		}
		if m.character == core.CharacterAgile && !m.unlocked {
			m.note = m.tr.T(i18n.Locked) + ": " + m.tr.T(i18n.UnlockHint)
			break
		}
		selected := m.items[m.cursor]
		m.selected = &selected
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(m.tr.T(i18n.Title)), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tr.T(i18n.SelectStage), m.width))
	b.WriteString("\n\n")

	for i, it := range m.items {
		cursor := "  "
		name := fmt.Sprintf("%-24s", fmt.Sprintf("%d. %s", it.Level.ID, it.Level.Name))
		if i == m.cursor {
			cursor = "> "
			name = selectedStyle.Render(name)
		}

		status := m.tr.T(i18n.NotCleared)
		if it.Progress.Cleared {
			status = clearedStyle.Render(m.tr.T(i18n.Cleared))
		}
		line := fmt.Sprintf("%s%s %s  %s: %d", cursor, name, status, m.tr.T(i18n.HighScore), it.Progress.HighScore)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.characterLine(), m.width))
	b.WriteString("\n")
	if m.note != "" {
		b.WriteString(centerText(lockedStyle.Render(m.note), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := m.tr.T(i18n.MenuHelp)
	if m.debug {
		help += "  C: cleared"
	}
	b.WriteString(centerText(helpStyle.Render(help), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) characterLine() string {
	name, desc := m.tr.T(i18n.StandardName), m.tr.T(i18n.StandardDesc)
	if m.character == core.CharacterAgile {
		name, desc = m.tr.T(i18n.AgileName), m.tr.T(i18n.AgileDesc)
	}
	line := fmt.Sprintf("%s: %s (%s)  [%s]", m.tr.T(i18n.Character), name, desc, m.tr.T(i18n.Change))
	if m.character == core.CharacterAgile && !m.unlocked {
		line += "  " + lockedStyle.Render(m.tr.T(i18n.UnlockHint))
	}
	return line
}

// Selected returns the selected stage, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Character returns the chosen character.
func (m MenuModel) Character() core.Character {
	return m.character
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsProgress returns true if user asked for the progress board.
func (m MenuModel) WantsProgress() bool {
	return m.wantProgress
}

// Env returns the environment, with the size updated by resizes.
func (m MenuModel) Env() Env {
	return m.env
}
