package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/actionbar/internal/styles"
)

type cellKind int

const (
	cellText cellKind = iota
	cellSelected
	cellSnippet
	cellCaret
	cellHandle
)

// View renders the visible rows, each padded to the editor width.
func (e *Editor) View() string {
	if e.width <= 0 || e.height <= 0 {
		return ""
	}
	rows := make([]string, 0, e.height)
	for r := 0; r < e.height; r++ {
		line := e.scroll.top + r
		if line >= e.buf.LineCount() {
			rows = append(rows, e.renderGutter(-1)+strings.Repeat(" ", max(0, e.width-e.gutterWidth())))
			continue
		}
		rows = append(rows, e.renderLine(line))
	}
	return strings.Join(rows, "\n")
}

func (e *Editor) renderGutter(line int) string {
	gw := e.gutterWidth()
	if gw == 0 {
		return ""
	}
	if line < 0 {
		return strings.Repeat(" ", gw)
	}
	return styles.LineNumber.Render(fmt.Sprintf("%*d ", gw-1, line+1))
}

func (e *Editor) cellKindAt(idx int) cellKind {
	start, end := e.selectionRange()
	selected := start != end

	if e.focused {
		switch {
		case !selected && idx == e.caret && e.InsertHandleDrawn():
			return cellHandle
		case !selected && idx == e.caret:
			return cellCaret
		case selected && (idx == start || idx == end):
			return cellHandle
		}
	}
	if selected && idx >= start && idx < end {
		return cellSelected
	}
	if e.snippet != nil {
		for _, p := range e.snippet.stops {
			if idx >= p.start && idx < p.end {
				return cellSnippet
			}
		}
	}
	return cellText
}

func styleFor(kind cellKind, base lipgloss.Style) lipgloss.Style {
	switch kind {
	case cellSelected:
		return base.Background(styles.SelectionBg)
	case cellSnippet:
		return base.Background(styles.SnippetBg)
	case cellCaret:
		return styles.Caret
	case cellHandle:
		return styles.Caret.Underline(true)
	}
	return base
}

// renderLine draws one buffer line. Runs of cells with the same token and
// decoration are rendered together.
func (e *Editor) renderLine(line int) string {
	var b strings.Builder
	b.WriteString(e.renderGutter(line))

	textW := e.width - e.gutterWidth()
	runes := e.buf.Line(line)
	spans := e.hl.spans(e.buf, line)
	lineStart := e.buf.Index(line, 0)

	var (
		run      strings.Builder
		runStyle lipgloss.Style
		runKey   [2]int
		used     int
	)
	flush := func() {
		if run.Len() > 0 {
			b.WriteString(runStyle.Render(run.String()))
			run.Reset()
		}
	}

	for col := 0; col <= len(runes) && used < textW; col++ {
		idx := lineStart + col
		kind := e.cellKindAt(idx)

		text := " "
		cells := 1
		span := -1
		if col < len(runes) {
			r := runes[col]
			cells = runeCells(r, used, e.cfg.TabWidth)
			if r == '\t' {
				text = strings.Repeat(" ", cells)
			} else {
				text = string(r)
			}
			span = spanIndex(spans, col)
		} else if kind != cellCaret && kind != cellHandle {
			break
		}
		if used+cells > textW {
			break
		}

		key := [2]int{span, int(kind)}
		if run.Len() == 0 || key != runKey {
			flush()
			runKey = key
			base := styles.Text
			if span >= 0 {
				base = spans[span].style
			}
			runStyle = styleFor(kind, base)
		}
		run.WriteString(text)
		used += cells
	}
	flush()

	if used < textW {
		b.WriteString(strings.Repeat(" ", textW-used))
	}
	return b.String()
}

func spanIndex(spans []span, col int) int {
	for i, sp := range spans {
		if col >= sp.start && col < sp.end {
			return i
		}
	}
	return -1
}
