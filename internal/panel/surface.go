package panel

import (
	"github.com/marcus/actionbar/internal/event"
	"github.com/marcus/actionbar/internal/mouse"
)

// Selection is the surface's caret or selection at the time of the query.
type Selection struct {
	Selected bool
	Left     event.Position
	Right    event.Position
}

// Handle describes one of the surface's drag handles in surface-local cells.
type Handle struct {
	Kind    event.HandleKind
	Rect    mouse.Rect
	Held    bool
	Visible bool
}

// SurfaceState is the read side of the editing surface.
type SurfaceState interface {
	Selection() Selection
	HandleDescriptor(kind event.HandleKind) Handle
	AnyHandleHeld() bool
	DragSelecting() bool
	InsertHandleDrawn() bool

	RowHeight() int
	Size() (width, height int)
	// Offset returns the horizontal cell offset of line/column within the surface.
	Offset(line, column int) int

	Editable() bool
	HasClip() bool
	Focused() bool
	InSnippet() bool
	PointerMode() bool
	ScrollSettled() bool
	InBatchEdit() bool
	TextLen() int
}

// Commander is the command side of the editing surface.
type Commander interface {
	SelectAll()
	Cut() error
	Copy() error
	Paste() error
	BeginExtendSelection()
	SetSelection(line, column int)
}

// Surface is everything the controller needs from the editing surface.
type Surface interface {
	SurfaceState
	Commander
}
