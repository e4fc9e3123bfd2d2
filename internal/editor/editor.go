// Package editor is the terminal text editing surface the action panel is
// attached to. It owns the buffer, caret and selection, drag handles,
// scrolling, search and snippet sessions, and publishes every change on an
// event.Dispatcher.
package editor

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/actionbar/internal/config"
	"github.com/marcus/actionbar/internal/event"
	"github.com/marcus/actionbar/internal/mouse"
	"github.com/marcus/actionbar/internal/panel"
)

// ErrReadOnly is returned by editing commands on a read-only surface.
var ErrReadOnly = errors.New("editor is read-only")

var _ panel.Surface = (*Editor)(nil)

type handleExpiredMsg struct {
	owner *Editor
	gen   uint64
}

// Editor is a single-buffer editing surface. All methods must be called from
// the bubbletea update loop.
type Editor struct {
	events   *event.Dispatcher
	logger   *slog.Logger
	cfg      config.EditorConfig
	clip     Clipboard
	now      func() time.Time
	filename string

	buf *Buffer
	hl  *highlighter

	caret  int
	anchor int
	extend bool

	width, height int
	scroll        scroller

	focused  bool
	released bool
	dirty    bool

	insertUntil time.Time
	insertGen   uint64

	pressed    bool
	pressIdx   int
	dragging   bool
	holding    bool
	held       event.HandleKind
	holdAnchor int

	search  *search
	snippet *snippetSession

	outbox []tea.Cmd
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger. Nil discards.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClipboard replaces the system clipboard.
func WithClipboard(c Clipboard) Option {
	return func(e *Editor) { e.clip = c }
}

// WithClock replaces time.Now for the insert handle timeout.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) { e.now = now }
}

// WithFilename names the file being edited. It picks the syntax lexer and
// is where Save writes.
func WithFilename(name string) Option {
	return func(e *Editor) { e.filename = name }
}

// New creates an editor holding text that publishes on events.
func New(events *event.Dispatcher, text string, cfg config.EditorConfig, opts ...Option) *Editor {
	e := &Editor{
		events:  events,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		cfg:     cfg,
		now:     time.Now,
		buf:     NewBuffer(text),
		focused: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.clip == nil {
		e.clip = NewSystemClipboard(e.logger)
	}
	if cfg.Syntax {
		e.hl = newHighlighter(e.filename)
	}
	return e
}

// Open reads path into a new editor. A missing file starts empty.
func Open(events *event.Dispatcher, path string, cfg config.EditorConfig, opts ...Option) (*Editor, error) {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	opts = append([]Option{WithFilename(path)}, opts...)
	return New(events, string(data), cfg, opts...), nil
}

// Save writes the buffer back to its file.
func (e *Editor) Save() error {
	if e.filename == "" {
		return errors.New("no file name")
	}
	if err := os.WriteFile(e.filename, []byte(e.buf.String()), 0644); err != nil {
		return err
	}
	e.dirty = false
	return nil
}

// Text returns the buffer contents.
func (e *Editor) Text() string { return e.buf.String() }

// Filename returns the file being edited, if any.
func (e *Editor) Filename() string { return e.filename }

// Dirty reports unsaved edits.
func (e *Editor) Dirty() bool { return e.dirty }

// SetSize sets the viewport in cells.
func (e *Editor) SetSize(width, height int) {
	e.width, e.height = width, height
	e.scroll.top = clamp(e.scroll.top, 0, e.maxTop())
	e.scroll.target = e.scroll.top
}

// queue holds a command until the host collects it with TakeCmds.
func (e *Editor) queue(cmd tea.Cmd) {
	if cmd != nil {
		e.outbox = append(e.outbox, cmd)
	}
}

// TakeCmds returns the commands produced since the last call, including
// those returned by event subscribers.
func (e *Editor) TakeCmds() tea.Cmd {
	if len(e.outbox) == 0 {
		return nil
	}
	cmds := e.outbox
	e.outbox = nil
	return tea.Batch(cmds...)
}

func (e *Editor) publish(ev any) {
	e.queue(e.events.Publish(ev))
}

func (e *Editor) publishScroll(from, to int) {
	e.publish(event.Scroll{StartY: from, EndY: to})
}

func (e *Editor) publishSelection(cause event.Cause) {
	sel := e.Selection()
	e.publish(event.SelectionChanged{
		Selected: sel.Selected,
		Left:     sel.Left,
		Right:    sel.Right,
		Cause:    cause,
	})
}

// setSelection moves the anchor and caret and publishes the change.
func (e *Editor) setSelection(anchor, caret int, cause event.Cause) {
	n := e.buf.Len()
	e.anchor, e.caret = clamp(anchor, 0, n), clamp(caret, 0, n)
	e.ensureCaretVisible()
	e.publishSelection(cause)
}

func (e *Editor) position(idx int) event.Position {
	line, col := e.buf.Position(idx)
	return event.Position{Index: idx, Line: line, Column: col}
}

// replace swaps [start, end) for text, leaves the caret after it and
// publishes the new caret.
func (e *Editor) replace(start, end int, text string, cause event.Cause) {
	if start > end {
		start, end = end, start
	}
	e.buf.BeginBatch()
	next := e.buf.Replace(start, end, text)
	if e.snippet != nil {
		e.snippet.shift(start, end-start, next-start)
	}
	e.buf.EndBatch()
	e.dirty = true
	e.setSelection(next, next, cause)
}

func (e *Editor) selectionRange() (int, int) {
	return min(e.anchor, e.caret), max(e.anchor, e.caret)
}

// Update handles the editor's own messages, focus changes and unbound keys.
func (e *Editor) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case scrollTickMsg:
		e.stepScroll(msg)
	case handleExpiredMsg:
		// Nothing to do; the redraw drops the handle.
	case tea.FocusMsg:
		e.SetFocused(true)
	case tea.BlurMsg:
		e.SetFocused(false)
	case tea.KeyMsg:
		if e.search != nil {
			e.queue(e.updateSearch(msg))
		} else {
			e.handleKey(msg)
		}
	}
	return e.TakeCmds()
}

// SetFocused records a focus change and publishes it.
func (e *Editor) SetFocused(focused bool) {
	if e.focused == focused {
		return
	}
	e.focused = focused
	e.publish(event.FocusChanged{Gained: focused})
}

// Release tears the surface down. It publishes EditorReleased once.
func (e *Editor) Release() {
	if e.released {
		return
	}
	e.released = true
	e.publish(event.EditorReleased{})
}

// Selection returns the caret or selection in document order.
func (e *Editor) Selection() panel.Selection {
	start, end := e.selectionRange()
	return panel.Selection{
		Selected: start != end,
		Left:     e.position(start),
		Right:    e.position(end),
	}
}

// HandleDescriptor returns the geometry of a handle. The rect is empty when
// the handle's position is scrolled out of view.
func (e *Editor) HandleDescriptor(kind event.HandleKind) panel.Handle {
	h := panel.Handle{Kind: kind, Held: e.holding && e.held == kind}
	sel := e.Selection()

	var pos event.Position
	switch kind {
	case event.HandleInsert:
		if sel.Selected {
			return h
		}
		pos = e.position(e.caret)
		h.Visible = e.InsertHandleDrawn()
	case event.HandleLeft:
		if !sel.Selected {
			return h
		}
		pos = sel.Left
		h.Visible = true
	case event.HandleRight:
		if !sel.Selected {
			return h
		}
		pos = sel.Right
		h.Visible = true
	}
	h.Rect = e.cellRect(pos)
	if h.Rect.Empty() {
		h.Visible = false
	}
	return h
}

func (e *Editor) cellRect(pos event.Position) mouse.Rect {
	row := pos.Line - e.scroll.top
	if row < 0 || row >= e.height || e.width <= 0 {
		return mouse.Rect{}
	}
	x := min(e.Offset(pos.Line, pos.Column), e.width-1)
	return mouse.Rect{X: x, Y: row, W: 1, H: 1}
}

func (e *Editor) AnyHandleHeld() bool { return e.holding }

func (e *Editor) DragSelecting() bool { return e.dragging }

// InsertHandleDrawn reports whether the caret handle is on screen. It shows
// for a while after a tap and while it is held.
func (e *Editor) InsertHandleDrawn() bool {
	if e.caret != e.anchor || !e.focused {
		return false
	}
	if e.holding && e.held == event.HandleInsert {
		return true
	}
	return e.now().Before(e.insertUntil)
}

func (e *Editor) showInsertHandle() {
	e.insertUntil = e.now().Add(e.cfg.InsertHandleTimeout)
	e.insertGen++
	gen := e.insertGen
	e.queue(tea.Tick(e.cfg.InsertHandleTimeout, func(time.Time) tea.Msg {
		return handleExpiredMsg{owner: e, gen: gen}
	}))
}

// RowHeight is one cell.
func (e *Editor) RowHeight() int { return 1 }

func (e *Editor) Size() (int, int) { return e.width, e.height }

// Offset returns the cell column of line/column including the gutter.
func (e *Editor) Offset(line, column int) int {
	l := e.buf.Line(line)
	column = clamp(column, 0, len(l))
	return e.gutterWidth() + displayWidth(l[:column], e.cfg.TabWidth)
}

func (e *Editor) Editable() bool { return !e.cfg.ReadOnly }

func (e *Editor) HasClip() bool {
	text, err := e.clip.ReadAll()
	return err == nil && text != ""
}

func (e *Editor) Focused() bool { return e.focused }

func (e *Editor) InSnippet() bool { return e.snippet != nil }

func (e *Editor) PointerMode() bool { return e.cfg.PointerMode }

// SetPointerMode switches pointer (non-touch) mode.
func (e *Editor) SetPointerMode(on bool) { e.cfg.PointerMode = on }

func (e *Editor) ScrollSettled() bool { return e.scroll.settled() }

func (e *Editor) InBatchEdit() bool { return e.buf.InBatch() }

func (e *Editor) TextLen() int { return e.buf.Len() }

// SelectAll selects the whole buffer.
func (e *Editor) SelectAll() {
	e.extend = false
	e.setSelection(0, e.buf.Len(), event.CauseOther)
}

// Cut copies the selection and deletes it.
func (e *Editor) Cut() error {
	if e.cfg.ReadOnly {
		return ErrReadOnly
	}
	start, end := e.selectionRange()
	if start == end {
		return nil
	}
	if err := e.clip.WriteAll(e.buf.Text(start, end)); err != nil {
		return err
	}
	e.replace(start, end, "", event.CauseOther)
	return nil
}

// Copy puts the selection on the clipboard.
func (e *Editor) Copy() error {
	start, end := e.selectionRange()
	if start == end {
		return nil
	}
	return e.clip.WriteAll(e.buf.Text(start, end))
}

// Paste replaces the selection with the clipboard.
func (e *Editor) Paste() error {
	if e.cfg.ReadOnly {
		return ErrReadOnly
	}
	text, err := e.clip.ReadAll()
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	start, end := e.selectionRange()
	e.replace(start, end, text, event.CauseOther)
	return nil
}

// BeginExtendSelection makes the next caret move extend the selection.
func (e *Editor) BeginExtendSelection() {
	e.extend = true
	e.logger.Debug("extend selection mode")
}

// SetSelection collapses the selection to a caret at line/column.
func (e *Editor) SetSelection(line, column int) {
	idx := e.buf.Index(line, column)
	e.setSelection(idx, idx, event.CauseOther)
}

// ClearSelection collapses the selection onto the caret and leaves extend
// mode.
func (e *Editor) ClearSelection() {
	e.extend = false
	if e.anchor == e.caret {
		return
	}
	e.setSelection(e.caret, e.caret, event.CauseOther)
}

// SelectedText returns the selected text.
func (e *Editor) SelectedText() string {
	start, end := e.selectionRange()
	return e.buf.Text(start, end)
}

// ReplaceSelection swaps the selection for text and keeps it selected.
func (e *Editor) ReplaceSelection(text string) error {
	if e.cfg.ReadOnly {
		return ErrReadOnly
	}
	start, end := e.selectionRange()
	e.buf.BeginBatch()
	next := e.buf.Replace(start, end, text)
	if e.snippet != nil {
		e.snippet.shift(start, end-start, next-start)
	}
	e.buf.EndBatch()
	e.dirty = true
	e.setSelection(start, next, event.CauseOther)
	return nil
}
