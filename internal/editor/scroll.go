package editor

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// scrollFrame is the delay between animated scroll steps.
const scrollFrame = 16 * time.Millisecond

type scrollTickMsg struct {
	owner *Editor
	gen   uint64
}

// scroller animates the first visible line toward a target one row per
// frame.
type scroller struct {
	top    int
	target int
	gen    uint64
}

func (s *scroller) settled() bool { return s.top == s.target }

// scrollBy moves the target and starts the animation when it is idle.
func (e *Editor) scrollBy(delta int) {
	wasSettled := e.scroll.settled()
	e.scroll.target = clamp(e.scroll.target+delta, 0, e.maxTop())
	if wasSettled && !e.scroll.settled() {
		e.scroll.gen++
		gen := e.scroll.gen
		e.queue(tea.Tick(scrollFrame, func(time.Time) tea.Msg {
			return scrollTickMsg{owner: e, gen: gen}
		}))
	}
}

// jumpTo moves the viewport without animation.
func (e *Editor) jumpTo(top int) {
	top = clamp(top, 0, e.maxTop())
	e.scroll.gen++
	e.scroll.target = top
	if top == e.scroll.top {
		return
	}
	old := e.scroll.top
	e.scroll.top = top
	e.publishScroll(old, top)
}

func (e *Editor) stepScroll(msg scrollTickMsg) {
	if msg.owner != e || msg.gen != e.scroll.gen || e.scroll.settled() {
		return
	}
	old := e.scroll.top
	if e.scroll.top < e.scroll.target {
		e.scroll.top++
	} else {
		e.scroll.top--
	}
	e.publishScroll(old, e.scroll.top)
	if !e.scroll.settled() {
		gen := e.scroll.gen
		e.queue(tea.Tick(scrollFrame, func(time.Time) tea.Msg {
			return scrollTickMsg{owner: e, gen: gen}
		}))
	}
}

func (e *Editor) maxTop() int {
	return max(0, e.buf.LineCount()-e.height)
}

// ensureCaretVisible scrolls just enough to keep the caret row on screen.
func (e *Editor) ensureCaretVisible() {
	line, _ := e.buf.Position(e.caret)
	top := e.scroll.target
	switch {
	case line < top:
		e.jumpTo(line)
	case e.height > 0 && line >= top+e.height:
		e.jumpTo(line - e.height + 1)
	}
}
