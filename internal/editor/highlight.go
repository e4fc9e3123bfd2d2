package editor

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/actionbar/internal/styles"
)

// span is a run of runes on one line sharing a token style.
type span struct {
	start, end int // rune columns
	style      lipgloss.Style
}

// highlighter tokenizes the buffer with chroma and caches the spans per
// line until the text or syntax theme changes.
type highlighter struct {
	lexer chroma.Lexer

	version uint64
	theme   string
	lines   [][]span
}

func newHighlighter(filename string) *highlighter {
	var lexer chroma.Lexer
	if filename != "" {
		lexer = lexers.Match(filename)
	}
	if lexer == nil {
		return &highlighter{}
	}
	return &highlighter{lexer: chroma.Coalesce(lexer)}
}

// spans returns the styled runs for line, or nil when highlighting is off.
func (h *highlighter) spans(b *Buffer, line int) []span {
	if h == nil || h.lexer == nil {
		return nil
	}
	theme := styles.CurrentSyntaxTheme
	if h.lines == nil || h.version != b.Version() || h.theme != theme {
		h.retokenize(b, theme)
	}
	if line < 0 || line >= len(h.lines) {
		return nil
	}
	return h.lines[line]
}

func (h *highlighter) retokenize(b *Buffer, theme string) {
	h.version = b.Version()
	h.theme = theme
	h.lines = make([][]span, b.LineCount())

	it, err := h.lexer.Tokenise(nil, b.String())
	if err != nil {
		return
	}
	style := chromastyles.Get(theme)
	if style == nil {
		style = chromastyles.Fallback
	}

	line, col := 0, 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		ls := tokenStyle(style.Get(tok.Type))
		parts := strings.Split(tok.Value, "\n")
		for i, p := range parts {
			if i > 0 {
				line++
				col = 0
			}
			n := len([]rune(p))
			if n > 0 && line < len(h.lines) {
				h.lines[line] = append(h.lines[line], span{start: col, end: col + n, style: ls})
			}
			col += n
		}
	}
}

func tokenStyle(e chroma.StyleEntry) lipgloss.Style {
	s := lipgloss.NewStyle()
	if e.Colour.IsSet() {
		s = s.Foreground(lipgloss.Color(e.Colour.String()))
	} else {
		s = s.Foreground(styles.TextPrimary)
	}
	if e.Bold == chroma.Yes {
		s = s.Bold(true)
	}
	if e.Italic == chroma.Yes {
		s = s.Italic(true)
	}
	if e.Underline == chroma.Yes {
		s = s.Underline(true)
	}
	return s
}
