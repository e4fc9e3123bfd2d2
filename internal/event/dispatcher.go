package event

import (
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// Source is the subscription side of the dispatcher. Consumers depend on
// this rather than on *Dispatcher.
type Source interface {
	OnSelectionChanged(fn func(SelectionChanged) tea.Cmd)
	OnScroll(fn func(Scroll) tea.Cmd)
	OnHandleStateChanged(fn func(HandleStateChanged) tea.Cmd)
	OnLongPress(fn func(*LongPress) tea.Cmd)
	OnFocusChanged(fn func(FocusChanged) tea.Cmd)
	OnEditorReleased(fn func(EditorReleased) tea.Cmd)
	OnColorSchemeUpdated(fn func(ColorSchemeUpdated) tea.Cmd)
	OnDragSelectStopped(fn func(DragSelectStopped) tea.Cmd)
}

// topic holds the handlers for one event type.
type topic[T any] struct {
	handlers []func(T) tea.Cmd
}

func (t *topic[T]) add(fn func(T) tea.Cmd) {
	if fn != nil {
		t.handlers = append(t.handlers, fn)
	}
}

// Dispatcher delivers events synchronously, in subscription order. It is not
// safe for concurrent use; publish only from the update goroutine.
type Dispatcher struct {
	logger  *slog.Logger
	closed  bool
	enabled bool

	selection topic[SelectionChanged]
	scroll    topic[Scroll]
	handle    topic[HandleStateChanged]
	longPress topic[*LongPress]
	focus     topic[FocusChanged]
	released  topic[EditorReleased]
	scheme    topic[ColorSchemeUpdated]
	dragStop  topic[DragSelectStopped]
}

// New creates a dispatcher that discards its logs.
func New() *Dispatcher {
	return NewWithLogger(nil)
}

// NewWithLogger creates a dispatcher that reports handler panics to logger.
func NewWithLogger(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{logger: logger, enabled: true}
}

// SetEnabled pauses or resumes delivery. Events published while disabled
// are dropped.
func (d *Dispatcher) SetEnabled(enabled bool) { d.enabled = enabled }

// Enabled reports whether events are delivered.
func (d *Dispatcher) Enabled() bool { return d.enabled && !d.closed }

// Close drops every subscription. Publishing after Close is a no-op.
func (d *Dispatcher) Close() {
	d.closed = true
	d.selection = topic[SelectionChanged]{}
	d.scroll = topic[Scroll]{}
	d.handle = topic[HandleStateChanged]{}
	d.longPress = topic[*LongPress]{}
	d.focus = topic[FocusChanged]{}
	d.released = topic[EditorReleased]{}
	d.scheme = topic[ColorSchemeUpdated]{}
	d.dragStop = topic[DragSelectStopped]{}
}

// OnSelectionChanged subscribes to selection changes.
func (d *Dispatcher) OnSelectionChanged(fn func(SelectionChanged) tea.Cmd) {
	d.selection.add(fn)
}

// OnScroll subscribes to scroll notifications.
func (d *Dispatcher) OnScroll(fn func(Scroll) tea.Cmd) {
	d.scroll.add(fn)
}

// OnHandleStateChanged subscribes to handle grab and release.
func (d *Dispatcher) OnHandleStateChanged(fn func(HandleStateChanged) tea.Cmd) {
	d.handle.add(fn)
}

// OnLongPress subscribes to long presses. Handlers may intercept.
func (d *Dispatcher) OnLongPress(fn func(*LongPress) tea.Cmd) {
	d.longPress.add(fn)
}

// OnFocusChanged subscribes to focus changes.
func (d *Dispatcher) OnFocusChanged(fn func(FocusChanged) tea.Cmd) {
	d.focus.add(fn)
}

// OnEditorReleased subscribes to surface teardown.
func (d *Dispatcher) OnEditorReleased(fn func(EditorReleased) tea.Cmd) {
	d.released.add(fn)
}

// OnColorSchemeUpdated subscribes to theme changes.
func (d *Dispatcher) OnColorSchemeUpdated(fn func(ColorSchemeUpdated) tea.Cmd) {
	d.scheme.add(fn)
}

// OnDragSelectStopped subscribes to the end of drag selection.
func (d *Dispatcher) OnDragSelectStopped(fn func(DragSelectStopped) tea.Cmd) {
	d.dragStop.add(fn)
}

// Publish delivers ev to the matching subscribers and batches the commands
// they return. Unknown event types are logged and ignored.
func (d *Dispatcher) Publish(ev any) tea.Cmd {
	if !d.Enabled() {
		return nil
	}
	switch e := ev.(type) {
	case SelectionChanged:
		return deliver(d, &d.selection, e)
	case Scroll:
		return deliver(d, &d.scroll, e)
	case HandleStateChanged:
		return deliver(d, &d.handle, e)
	case *LongPress:
		return deliver(d, &d.longPress, e)
	case FocusChanged:
		return deliver(d, &d.focus, e)
	case EditorReleased:
		return deliver(d, &d.released, e)
	case ColorSchemeUpdated:
		return deliver(d, &d.scheme, e)
	case DragSelectStopped:
		return deliver(d, &d.dragStop, e)
	default:
		d.logger.Warn("unknown event type", "type", fmt.Sprintf("%T", ev))
		return nil
	}
}

func deliver[T any](d *Dispatcher, t *topic[T], ev T) tea.Cmd {
	var cmds []tea.Cmd
	for _, fn := range t.handlers {
		if cmd := safeCall(d.logger, fn, ev); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}

// safeCall runs one handler, keeping a panicking subscriber from taking down
// the update loop.
func safeCall[T any](logger *slog.Logger, fn func(T) tea.Cmd, ev T) (cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("event handler panicked", "event", fmt.Sprintf("%T", ev), "panic", r)
			cmd = nil
		}
	}()
	return fn(ev)
}
