package editor

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/actionbar/internal/event"
	"github.com/marcus/actionbar/internal/styles"
)

type search struct {
	input  textinput.Model
	missed bool
}

// OpenSearch shows the search prompt.
func (e *Editor) OpenSearch() tea.Cmd {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search"
	ti.PromptStyle = styles.Muted
	ti.CharLimit = 256
	if e.width > 4 {
		ti.Width = e.width - 4
	}
	cmd := ti.Focus()
	e.search = &search{input: ti}
	return cmd
}

// Searching reports whether the search prompt is open.
func (e *Editor) Searching() bool { return e.search != nil }

// CloseSearch hides the prompt. The last match stays selected.
func (e *Editor) CloseSearch() {
	e.search = nil
}

// SearchNext selects the next match after the caret, wrapping around. It
// reports whether anything matched.
func (e *Editor) SearchNext() bool {
	if e.search == nil {
		return false
	}
	query := e.search.input.Value()
	_, end := e.selectionRange()
	idx := e.buf.Find(query, end)
	if idx < 0 {
		e.search.missed = true
		return false
	}
	e.search.missed = false
	e.setSelection(idx, idx+len([]rune(query)), event.CauseSearch)
	return true
}

func (e *Editor) updateSearch(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	e.search.input, cmd = e.search.input.Update(msg)
	e.search.missed = false
	return cmd
}

// SearchView renders the prompt line, or "" when closed.
func (e *Editor) SearchView() string {
	if e.search == nil {
		return ""
	}
	v := e.search.input.View()
	if e.search.missed {
		v += styles.ErrorText.Render("  no match")
	}
	return v
}
