package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the simulation to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - walk left (held)
	ActionRight          // D, Right arrow - walk right (held)
	ActionJump           // Space, W, Up - jump (edge triggered)
	ActionPause          // P - pause/unpause
	ActionMenu           // Esc, B - back to stage select
	ActionRestart        // R - restart after a failed attempt
	ActionConfirm        // Enter - confirm selection in menu
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionPause:
		return "Pause"
	case ActionMenu:
		return "Menu"
	case ActionRestart:
		return "Restart"
	case ActionConfirm:
		return "Confirm"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// ParseAction converts a lower-case action name (as used in replay scripts)
// to an Action. Unknown names yield ActionNone.
func ParseAction(s string) Action {
	switch s {
	case "left":
		return ActionLeft
	case "right":
		return ActionRight
	case "jump":
		return ActionJump
	case "pause":
		return ActionPause
	case "menu":
		return ActionMenu
	case "restart":
		return ActionRestart
	case "confirm":
		return ActionConfirm
	case "quit":
		return ActionQuit
	default:
		return ActionNone
	}
}

// InputFrame is the input state sampled once per simulation tick.
// Actions holds the actions currently held; pressed holds the actions that
// became held on this tick (edges), filled in by an InputSampler or Press.
type InputFrame struct {
	Actions map[Action]bool
	pressed map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// HeldFrame builds a frame with the given actions held.
func HeldFrame(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Press records an edge for an action without requiring a held->released
// history. Used by event-only sources such as terminal key presses.
func (f *InputFrame) Press(a Action) {
	if f.pressed == nil {
		f.pressed = make(map[Action]bool)
	}
	f.pressed[a] = true
}

// Has returns true if the given action is held this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Pressed returns true if the action became pressed on this frame.
func (f InputFrame) Pressed(a Action) bool {
	if f.pressed == nil {
		return false
	}
	return f.pressed[a]
}

// Horizontal returns -1, 0 or 1 for the held left/right direction.
// Holding both cancels out.
func (f InputFrame) Horizontal() float64 {
	dir := 0.0
	if f.Has(ActionLeft) {
		dir--
	}
	if f.Has(ActionRight) {
		dir++
	}
	return dir
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	for k := range f.pressed {
		delete(f.pressed, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	for k, v := range f.pressed {
		if v {
			clone.Press(k)
		}
	}
	return clone
}

// InputSampler derives per-tick edges by comparing the held actions of the
// current sample with the previous one.
type InputSampler struct {
	prev map[Action]bool
}

// NewInputSampler creates a sampler with nothing held.
func NewInputSampler() *InputSampler {
	return &InputSampler{prev: make(map[Action]bool)}
}

// Sample returns a copy of held with edges filled in for every action that is
// held now but was not held on the previous sample. Edges already recorded
// with Press are kept.
func (s *InputSampler) Sample(held InputFrame) InputFrame {
	out := held.Clone()
	for a, on := range held.Actions {
		if on && !s.prev[a] {
			out.Press(a)
		}
	}
	for k := range s.prev {
		delete(s.prev, k)
	}
	for a, on := range held.Actions {
		if on {
			s.prev[a] = true
		}
	}
	return out
}

// Reset forgets the previous sample, so anything held next counts as pressed.
func (s *InputSampler) Reset() {
	for k := range s.prev {
		delete(s.prev, k)
	}
}
