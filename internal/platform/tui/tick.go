// Package tui is the Bubble Tea front-end: stage select, the game screen
// driving a simulation run, the progress board and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/starhop/internal/core"
)

// TickMsg is sent to trigger a simulation tick. Gen identifies the tick
// loop, so a late tick from a finished game cannot drive the next one.
type TickMsg struct {
	At  time.Time
	Gen uint64
}

var tickGen atomic.Uint64

// nextTickGen returns a fresh tick loop id.
func nextTickGen() uint64 {
	return tickGen.Add(1)
}

// tickCmd returns a command that sends one TickMsg after a tick interval.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	return tea.Tick(core.TickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg{At: t, Gen: gen}
	})
}
