package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starhop/internal/config"
	"github.com/vovakirdan/starhop/internal/core"
	"github.com/vovakirdan/starhop/internal/i18n"
	"github.com/vovakirdan/starhop/internal/level"
	"github.com/vovakirdan/starhop/internal/sim"
	"github.com/vovakirdan/starhop/internal/storage"
)

// Env is what every screen needs.
type Env struct {
	Levels  level.Source
	Store   storage.Store
	Tuning  config.Tuning
	Runtime core.RuntimeConfig
	Logger  *log.Logger
	Sink    sim.Sink      // optional, receives every simulation event
	Reload  <-chan string // optional, changed level files
}

func (e Env) logger() *log.Logger {
	if e.Logger == nil {
		return log.New(io.Discard)
	}
	return e.Logger
}

func (e Env) translator() i18n.Translator {
	lang, err := e.Store.Language()
	if err != nil {
		e.logger().Warn("cannot read language", "error", err)
	}
	return i18n.New(lang)
}

// Terminals report key presses and repeats but never releases, so a
// movement key counts as held for a while after each press. The first
// press covers the typical auto-repeat delay; repeats keep it alive.
const (
	firstHoldTicks  = 18
	repeatHoldTicks = 6
)

// heldKeys turns key press events into per-tick input frames.
type heldKeys struct {
	until   map[core.Action]int
	pressed []core.Action
}

func newHeldKeys() *heldKeys {
	return &heldKeys{until: make(map[core.Action]int)}
}

func (h *heldKeys) press(a core.Action, now int) {
	switch a {
	case core.ActionLeft, core.ActionRight:
		other := core.ActionRight
		if a == core.ActionRight {
			other = core.ActionLeft
		}
		delete(h.until, other)

		hold := firstHoldTicks
		if h.until[a] > now {
			hold = repeatHoldTicks
		}
		h.until[a] = now + hold
	default:
		h.pressed = append(h.pressed, a)
	}
}

// frame builds the input for tick now and forgets consumed presses.
func (h *heldKeys) frame(now int) core.InputFrame {
	f := core.NewInputFrame()
	for a, until := range h.until {
		if until > now {
			f.Set(a)
		} else {
			delete(h.until, a)
		}
	}
	for _, a := range h.pressed {
		f.Set(a)
		f.Press(a)
	}
	h.pressed = h.pressed[:0]
	return f
}

func (h *heldKeys) reset() {
	clear(h.until)
	h.pressed = h.pressed[:0]
}

// levelChangedMsg reports a level file that changed on disk.
type levelChangedMsg string

func waitForLevelChange(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return levelChangedMsg(p)
	}
}

// GameModel is the Bubble Tea model for one attempt at a level.
type GameModel struct {
	env        Env
	run        *sim.Run
	canvas     *Canvas
	keyMapper  *KeyMapper
	tr         i18n.Translator
	held       *heldKeys
	gen        uint64
	ticks      int
	note       string
	exitOnBack bool // standalone: leaving the level ends the program
	ownsReload bool // standalone: wait on env.Reload itself
	quitting   bool
	backToMenu bool
}

// NewGameModel starts a run of d with character c.
func NewGameModel(env Env, d level.Descriptor, c core.Character) (GameModel, error) {
	run, err := newRun(env, d, c)
	if err != nil {
		return GameModel{}, err
	}
	return GameModel{
		env:       env,
		run:       run,
		canvas:    NewCanvas(env.Runtime.ScreenW, env.Runtime.ScreenH-2),
		keyMapper: NewKeyMapper(),
		tr:        env.translator(),
		held:      newHeldKeys(),
		gen:       nextTickGen(),
	}, nil
}

func newRun(env Env, d level.Descriptor, c core.Character) (*sim.Run, error) {
	opts := []sim.Option{sim.WithTuning(env.Tuning), sim.WithLogger(env.Logger)}
	if env.Sink != nil {
		opts = append(opts, sim.WithSink(env.Sink))
	}
	return sim.NewRun(d, c, env.Store, opts...)
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	if m.ownsReload {
		return tea.Batch(tickCmd(m.env.Runtime.TickRate, m.gen), waitForLevelChange(m.env.Reload))
	}
	return tickCmd(m.env.Runtime.TickRate, m.gen)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	case levelChangedMsg:
		return m.handleLevelChange(string(msg))
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	phase := m.run.Phase()
	switch action {
	case core.ActionMenu:
		return m.leave()
	case core.ActionConfirm:
		if phase == sim.PhaseCleared {
			return m.leave()
		}
	case core.ActionRestart:
		if phase == sim.PhaseFailed {
			if err := m.run.Restart(); err != nil {
				m.note = err.Error()
			}
			m.held.reset()
		}
	case core.ActionLeft, core.ActionRight, core.ActionJump, core.ActionPause:
		m.held.press(action, m.ticks)
	}
	return m, nil
}

func (m GameModel) leave() (tea.Model, tea.Cmd) {
	m.backToMenu = true
	if m.exitOnBack {
		return m, tea.Quit
	}
	return m, nil
}

func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.env.Runtime.ScreenW = msg.Width
	m.env.Runtime.ScreenH = msg.Height
	m.canvas.Resize(msg.Width, msg.Height-2)
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	m.ticks++
	res := m.run.Step(m.held.frame(m.ticks))
	if res.Err != nil {
		m.note = fmt.Sprintf("progress not saved: %v", res.Err)
	}
	return m, tickCmd(m.env.Runtime.TickRate, m.gen)
}

// handleLevelChange rebuilds the run when the file of the level being
// played changes. Other levels are ignored.
func (m GameModel) handleLevelChange(path string) (tea.Model, tea.Cmd) {
	var next tea.Cmd
	if m.ownsReload {
		next = waitForLevelChange(m.env.Reload)
	}

	d, err := level.LoadFile(path)
	if err != nil {
		m.env.logger().Warn("level reload failed", "path", path, "error", err)
		m.note = err.Error()
		return m, next
	}
	if d.ID != m.run.Level().ID {
		return m, next
	}

	run, err := newRun(m.env, d, m.run.Character())
	if err != nil {
		m.env.logger().Warn("level reload failed", "path", path, "error", err)
		m.note = err.Error()
		return m, next
	}
	m.run = run
	m.held.reset()
	m.note = fmt.Sprintf("reloaded %s", d.Name)
	m.env.logger().Info("level reloaded", "level", d.ID, "path", path)
	return m, next
}

// View renders the HUD, the world and the status line.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	s := m.run.Snapshot()
	DrawWorld(m.canvas, s)
	return hudLine(m.tr, s) + "\n" + RenderCanvas(m.canvas) + "\n" + statusLine(m.tr, s, m.note)
}

// Run returns the underlying simulation run.
func (m GameModel) Run() *sim.Run {
	return m.run
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to stage select.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// RunGame plays one level in its own program until the player quits or
// leaves the level.
func RunGame(env Env, d level.Descriptor, c core.Character) error {
	model, err := NewGameModel(env, d, c)
	if err != nil {
		return err
	}
	model.exitOnBack = true
	model.ownsReload = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
