package editor

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/marcus/actionbar/internal/event"
	"github.com/marcus/actionbar/internal/mouse"
)

// RegionID is the hit region covering the text area.
const RegionID = "editor"

const (
	dragSelect = "editor-select"
	dragHandle = "editor-handle"
)

// handleKey runs keys that no binding claimed: typing and caret movement.
func (e *Editor) handleKey(msg tea.KeyMsg) {
	line, col := e.buf.Position(e.caret)

	switch msg.String() {
	case "left":
		e.moveTo(e.caret-1, false)
	case "right":
		e.moveTo(e.caret+1, false)
	case "up":
		e.moveTo(e.buf.Index(line-1, col), false)
	case "down":
		e.moveTo(e.buf.Index(line+1, col), false)
	case "home":
		e.moveTo(e.buf.Index(line, 0), false)
	case "end":
		e.moveTo(e.buf.Index(line, len(e.buf.Line(line))), false)
	case "pgup":
		e.moveTo(e.buf.Index(line-max(e.height, 1), col), false)
	case "pgdown":
		e.moveTo(e.buf.Index(line+max(e.height, 1), col), false)
	case "shift+left":
		e.moveTo(e.caret-1, true)
	case "shift+right":
		e.moveTo(e.caret+1, true)
	case "shift+up":
		e.moveTo(e.buf.Index(line-1, col), true)
	case "shift+down":
		e.moveTo(e.buf.Index(line+1, col), true)
	case "shift+home":
		e.moveTo(e.buf.Index(line, 0), true)
	case "shift+end":
		e.moveTo(e.buf.Index(line, len(e.buf.Line(line))), true)

	case "backspace":
		e.deleteBack()
	case "delete":
		e.deleteForward()
	case "enter":
		e.typeText("\n", event.CauseOther)
	case "tab":
		e.typeText("\t", event.CauseOther)
	case " ":
		e.typeText(" ", event.CauseOther)

	default:
		if msg.Type != tea.KeyRunes {
			return
		}
		// Alt-composed characters arrive the way dead-key input does.
		cause := event.CauseOther
		if msg.Alt {
			cause = event.CauseDeadKeys
		}
		e.typeText(string(msg.Runes), cause)
	}
}

// moveTo places the caret at idx. The anchor stays put when extending.
func (e *Editor) moveTo(idx int, extend bool) {
	idx = clamp(idx, 0, e.buf.Len())
	anchor := idx
	if extend || e.extend {
		anchor = e.anchor
	}
	e.setSelection(anchor, idx, event.CauseOther)
}

func (e *Editor) typeText(text string, cause event.Cause) {
	if e.cfg.ReadOnly {
		return
	}
	e.extend = false
	start, end := e.selectionRange()
	e.replace(start, end, text, cause)
}

func (e *Editor) deleteBack() {
	if e.cfg.ReadOnly {
		return
	}
	start, end := e.selectionRange()
	if start == end {
		if start == 0 {
			return
		}
		start--
	}
	e.replace(start, end, "", event.CauseOther)
}

func (e *Editor) deleteForward() {
	if e.cfg.ReadOnly {
		return
	}
	start, end := e.selectionRange()
	if start == end {
		if end == e.buf.Len() {
			return
		}
		end++
	}
	e.replace(start, end, "", event.CauseOther)
}

// AddHitRegions registers the text area.
func (e *Editor) AddHitRegions(hm *mouse.HitMap) {
	hm.AddRect(RegionID, 0, 0, e.width, e.height, nil)
}

// HandleMouse runs a classified mouse action on the text area. Coordinates
// are relative to the editor's top-left cell.
func (e *Editor) HandleMouse(a mouse.MouseAction, h *mouse.Handler) tea.Cmd {
	switch a.Type {
	case mouse.ActionClick:
		e.press(a.X, a.Y, h)
	case mouse.ActionDoubleClick:
		e.SetFocused(true)
		e.longPress(e.indexAt(a.X, a.Y))
	case mouse.ActionDrag:
		e.drag(a.X, a.Y)
	case mouse.ActionDragEnd:
		e.release()
	case mouse.ActionScrollUp, mouse.ActionScrollDown:
		e.scrollBy(a.Delta)
	}
	return e.TakeCmds()
}

func (e *Editor) press(x, y int, h *mouse.Handler) {
	e.SetFocused(true)

	if e.caret != e.anchor {
		for _, kind := range []event.HandleKind{event.HandleLeft, event.HandleRight} {
			if e.HandleDescriptor(kind).Rect.Contains(x, y) {
				e.hold(kind, x, y, h)
				return
			}
		}
	} else if e.InsertHandleDrawn() && e.HandleDescriptor(event.HandleInsert).Rect.Contains(x, y) {
		e.hold(event.HandleInsert, x, y, h)
		return
	}

	idx := e.indexAt(x, y)
	e.pressed = true
	e.pressIdx = idx
	h.StartDrag(x, y, dragSelect, idx)
	e.tap(idx)
}

// tap places the caret, or extends the selection in extend mode.
func (e *Editor) tap(idx int) {
	anchor := idx
	if e.extend {
		anchor = e.anchor
		e.extend = false
	}
	e.showInsertHandle()
	e.setSelection(anchor, idx, event.CauseTap)
}

func (e *Editor) longPress(idx int) {
	line, col := e.buf.Position(idx)
	lp := &event.LongPress{Index: idx, Line: line, Column: col}
	e.publish(lp)
	if lp.Intercepted() {
		return
	}
	start, end := e.buf.WordAt(idx)
	e.extend = false
	e.setSelection(start, end, event.CauseLongPress)
}

func (e *Editor) hold(kind event.HandleKind, x, y int, h *mouse.Handler) {
	start, end := e.selectionRange()
	switch kind {
	case event.HandleLeft:
		e.holdAnchor = end
	case event.HandleRight:
		e.holdAnchor = start
	}
	e.holding = true
	e.held = kind
	h.StartDrag(x, y, dragHandle, int(kind))
	e.publish(event.HandleStateChanged{Kind: kind, Held: true})
}

func (e *Editor) drag(x, y int) {
	idx := e.indexAt(x, y)
	switch {
	case e.holding && e.held == event.HandleInsert:
		e.setSelection(idx, idx, event.CauseOther)
	case e.holding:
		e.setSelection(e.holdAnchor, idx, event.CauseOther)
	case e.pressed:
		if !e.dragging && idx == e.pressIdx {
			return
		}
		e.dragging = true
		e.setSelection(e.pressIdx, idx, event.CauseOther)
	}
}

func (e *Editor) release() {
	e.pressed = false
	switch {
	case e.holding:
		kind := e.held
		e.holding = false
		if kind == event.HandleInsert {
			e.showInsertHandle()
		}
		e.publish(event.HandleStateChanged{Kind: kind, Held: false})
	case e.dragging:
		e.dragging = false
		e.publish(event.DragSelectStopped{})
	}
}

// indexAt maps an editor cell to the nearest rune index.
func (e *Editor) indexAt(x, y int) int {
	line := clamp(e.scroll.top+y, 0, e.buf.LineCount()-1)
	target := x - e.gutterWidth()
	l := e.buf.Line(line)

	w := 0
	for col, r := range l {
		rw := runeCells(r, w, e.cfg.TabWidth)
		if target < w+rw {
			// Closer to the right edge of a wide cell picks the next column.
			if target-w >= (rw+1)/2 && rw > 1 {
				return e.buf.Index(line, col+1)
			}
			return e.buf.Index(line, col)
		}
		w += rw
	}
	return e.buf.Index(line, len(l))
}

func (e *Editor) gutterWidth() int {
	if !e.cfg.LineNumbers {
		return 0
	}
	return max(3, len(strconv.Itoa(e.buf.LineCount()))) + 1
}

// runeCells is the display width of r drawn at cell column w.
func runeCells(r rune, w, tabWidth int) int {
	if r == '\t' {
		if tabWidth <= 0 {
			tabWidth = 4
		}
		return tabWidth - w%tabWidth
	}
	return max(runewidth.RuneWidth(r), 1)
}

func displayWidth(runes []rune, tabWidth int) int {
	w := 0
	for _, r := range runes {
		w += runeCells(r, w, tabWidth)
	}
	return w
}
