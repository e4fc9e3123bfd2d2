package panel

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/actionbar/internal/config"
	"github.com/marcus/actionbar/internal/event"
	"github.com/marcus/actionbar/internal/mouse"
)

type fakeSurface struct {
	sel     Selection
	handles map[event.HandleKind]Handle

	held        bool
	dragging    bool
	insertDrawn bool

	rowHeight     int
	width, height int

	editable bool
	clip     bool
	focused  bool
	snippet  bool
	pointer  bool
	settled  bool
	batch    bool
	textLen  int

	cmdErr error
	calls  []string
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		handles: map[event.HandleKind]Handle{
			event.HandleInsert: {Kind: event.HandleInsert, Rect: mouse.Rect{X: 10, Y: 10, W: 1, H: 1}, Visible: true},
			event.HandleLeft:   {Kind: event.HandleLeft, Rect: mouse.Rect{X: 5, Y: 10, W: 1, H: 1}, Visible: true},
			event.HandleRight:  {Kind: event.HandleRight, Rect: mouse.Rect{X: 20, Y: 10, W: 1, H: 1}, Visible: true},
		},
		rowHeight: 1,
		width:     80,
		height:    24,
		editable:  true,
		clip:      true,
		focused:   true,
		settled:   true,
		textLen:   100,
	}
}

// selectRange makes the surface report a selection on line 10.
func (s *fakeSurface) selectRange(left, right int) {
	s.sel = Selection{
		Selected: true,
		Left:     event.Position{Index: left, Line: 10, Column: left},
		Right:    event.Position{Index: right, Line: 10, Column: right},
	}
}

func (s *fakeSurface) Selection() Selection { return s.sel }
func (s *fakeSurface) HandleDescriptor(kind event.HandleKind) Handle {
	return s.handles[kind]
}
func (s *fakeSurface) AnyHandleHeld() bool         { return s.held }
func (s *fakeSurface) DragSelecting() bool         { return s.dragging }
func (s *fakeSurface) InsertHandleDrawn() bool     { return s.insertDrawn }
func (s *fakeSurface) RowHeight() int              { return s.rowHeight }
func (s *fakeSurface) Size() (int, int)            { return s.width, s.height }
func (s *fakeSurface) Offset(line, column int) int { return column }
func (s *fakeSurface) Editable() bool              { return s.editable }
func (s *fakeSurface) HasClip() bool               { return s.clip }
func (s *fakeSurface) Focused() bool               { return s.focused }
func (s *fakeSurface) InSnippet() bool             { return s.snippet }
func (s *fakeSurface) PointerMode() bool           { return s.pointer }
func (s *fakeSurface) ScrollSettled() bool         { return s.settled }
func (s *fakeSurface) InBatchEdit() bool           { return s.batch }
func (s *fakeSurface) TextLen() int                { return s.textLen }
func (s *fakeSurface) SelectAll()                  { s.calls = append(s.calls, "select-all") }
func (s *fakeSurface) Cut() error                  { s.calls = append(s.calls, "cut"); return s.cmdErr }
func (s *fakeSurface) Copy() error                 { s.calls = append(s.calls, "copy"); return s.cmdErr }
func (s *fakeSurface) Paste() error                { s.calls = append(s.calls, "paste"); return s.cmdErr }
func (s *fakeSurface) BeginExtendSelection()       { s.calls = append(s.calls, "extend-selection") }
func (s *fakeSurface) SetSelection(line, column int) {
	s.calls = append(s.calls, "set-selection")
	pos := event.Position{Index: column, Line: line, Column: column}
	s.sel = Selection{Left: pos, Right: pos}
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type scheduled struct {
	due time.Time
	msg tea.Msg
}

// fakeScheduler queues messages instead of running timers. Tests deliver
// them with harness.runNext.
type fakeScheduler struct {
	clock *fakeClock
	queue []scheduled
}

func (s *fakeScheduler) Post(msg tea.Msg) tea.Cmd {
	return s.PostDelayed(0, msg)
}

func (s *fakeScheduler) PostDelayed(d time.Duration, msg tea.Msg) tea.Cmd {
	s.queue = append(s.queue, scheduled{due: s.clock.now.Add(d), msg: msg})
	return func() tea.Msg { return msg }
}

type harness struct {
	t       *testing.T
	surface *fakeSurface
	events  *event.Dispatcher
	clock   *fakeClock
	sched   *fakeScheduler
	ctl     *Controller
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithConfig(t, config.Default().Panel)
}

func newHarnessWithConfig(t *testing.T, cfg config.PanelConfig) *harness {
	t.Helper()
	h := &harness{
		t:       t,
		surface: newFakeSurface(),
		events:  event.New(),
		clock:   &fakeClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
	}
	h.sched = &fakeScheduler{clock: h.clock}
	h.ctl = New(h.surface, h.events,
		WithClock(h.clock),
		WithScheduler(h.sched),
		WithConfig(cfg),
	)
	return h
}

func (h *harness) publish(ev any) {
	h.events.Publish(ev)
}

// runNext delivers the oldest queued message, moving the clock to its due
// time. It reports whether anything was queued.
func (h *harness) runNext() bool {
	if len(h.sched.queue) == 0 {
		return false
	}
	next := h.sched.queue[0]
	h.sched.queue = h.sched.queue[1:]
	if next.due.After(h.clock.now) {
		h.clock.now = next.due
	}
	h.ctl.Update(next.msg)
	return true
}

// drain delivers queued messages until none remain, up to limit.
func (h *harness) drain(limit int) {
	for i := 0; i < limit && h.runNext(); i++ {
	}
}

// showWithSelection selects a range and lets the posted show run.
func (h *harness) showWithSelection() {
	h.t.Helper()
	h.surface.selectRange(5, 20)
	h.publish(event.SelectionChanged{
		Selected: true,
		Left:     h.surface.sel.Left,
		Right:    h.surface.sel.Right,
		Cause:    event.CauseOther,
	})
	h.drain(10)
	if !h.ctl.IsShowing() {
		h.t.Fatal("panel should be showing after a selection")
	}
}

func (h *harness) buttonByTitle(title string) ButtonView {
	h.t.Helper()
	for _, b := range h.ctl.GetView().Buttons {
		if b.Title == title {
			return b
		}
	}
	h.t.Fatalf("no button titled %q", title)
	return ButtonView{}
}
