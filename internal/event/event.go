// Package event defines the notifications an editing surface emits and a
// synchronous typed dispatcher that delivers them on the bubbletea update
// goroutine. Handlers return a tea.Cmd so scheduled follow-up work flows back
// into the program loop.
package event

// Cause describes what triggered a selection change.
type Cause int

const (
	CauseOther Cause = iota
	CauseTap
	CauseLongPress
	CauseSearch
	CauseDeadKeys
)

func (c Cause) String() string {
	switch c {
	case CauseTap:
		return "tap"
	case CauseLongPress:
		return "long-press"
	case CauseSearch:
		return "search"
	case CauseDeadKeys:
		return "dead-keys"
	default:
		return "other"
	}
}

// HandleKind identifies a drag handle.
type HandleKind int

const (
	HandleInsert HandleKind = iota
	HandleLeft
	HandleRight
)

func (k HandleKind) String() string {
	switch k {
	case HandleLeft:
		return "left"
	case HandleRight:
		return "right"
	default:
		return "insert"
	}
}

// Position is a location in the text buffer.
type Position struct {
	Index  int // rune offset from the start of the buffer
	Line   int
	Column int
}

// SelectionChanged is published after every caret or selection mutation.
type SelectionChanged struct {
	Selected bool
	Left     Position
	Right    Position
	Cause    Cause
}

// Scroll is published for every viewport movement, including each step of
// an animated scroll.
type Scroll struct {
	StartY int
	EndY   int
}

// HandleStateChanged is published when a handle is grabbed or released.
type HandleStateChanged struct {
	Kind HandleKind
	Held bool
}

// LongPress is published before the surface acts on a long press. A
// subscriber may call Intercept to stop the surface's default behaviour.
type LongPress struct {
	Index  int
	Line   int
	Column int

	intercepted bool
}

// Intercept stops the surface from running its default long-press action.
func (e *LongPress) Intercept() { e.intercepted = true }

// Intercepted reports whether a subscriber intercepted the event.
func (e *LongPress) Intercepted() bool { return e.intercepted }

// FocusChanged is published when the surface gains or loses input focus.
type FocusChanged struct {
	Gained bool
}

// EditorReleased is published once when the surface is torn down.
type EditorReleased struct{}

// ColorSchemeUpdated is published after the active theme changes.
type ColorSchemeUpdated struct {
	Theme string
}

// DragSelectStopped is published when a drag-selection gesture ends.
type DragSelectStopped struct{}
