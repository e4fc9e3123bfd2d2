package editor

import (
	"strings"
	"unicode"
)

// Buffer is the editable text, stored as lines of runes. Positions are rune
// indexes into the text with a newline counted between lines.
type Buffer struct {
	lines   [][]rune
	batch   int
	version uint64
}

// NewBuffer creates a buffer holding text.
func NewBuffer(text string) *Buffer {
	b := &Buffer{}
	b.SetText(text)
	return b
}

// SetText replaces the whole buffer.
func (b *Buffer) SetText(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	b.lines = make([][]rune, len(parts))
	for i, p := range parts {
		b.lines[i] = []rune(p)
	}
	b.version++
}

// String returns the buffer contents.
func (b *Buffer) String() string {
	var sb strings.Builder
	for i, l := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(l))
	}
	return sb.String()
}

// Len returns the number of runes, newlines included.
func (b *Buffer) Len() int {
	n := len(b.lines) - 1
	for _, l := range b.lines {
		n += len(l)
	}
	return n
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns line i. The slice must not be modified.
func (b *Buffer) Line(i int) []rune {
	if i < 0 || i >= len(b.lines) {
		return nil
	}
	return b.lines[i]
}

// Version changes on every mutation.
func (b *Buffer) Version() uint64 { return b.version }

// Index converts line/column to a rune index, clamping both.
func (b *Buffer) Index(line, col int) int {
	line = clamp(line, 0, len(b.lines)-1)
	col = clamp(col, 0, len(b.lines[line]))
	idx := 0
	for i := 0; i < line; i++ {
		idx += len(b.lines[i]) + 1
	}
	return idx + col
}

// Position converts a rune index to line/column, clamping to the buffer.
func (b *Buffer) Position(idx int) (line, col int) {
	idx = clamp(idx, 0, b.Len())
	for i, l := range b.lines {
		if idx <= len(l) {
			return i, idx
		}
		idx -= len(l) + 1
	}
	last := len(b.lines) - 1
	return last, len(b.lines[last])
}

// Text returns the runes in [start, end).
func (b *Buffer) Text(start, end int) string {
	start, end = b.order(start, end)
	if start == end {
		return ""
	}
	sl, sc := b.Position(start)
	el, ec := b.Position(end)
	if sl == el {
		return string(b.lines[sl][sc:ec])
	}
	var sb strings.Builder
	sb.WriteString(string(b.lines[sl][sc:]))
	for i := sl + 1; i < el; i++ {
		sb.WriteByte('\n')
		sb.WriteString(string(b.lines[i]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(b.lines[el][:ec]))
	return sb.String()
}

// Replace swaps [start, end) for text and returns the index just past the
// inserted text.
func (b *Buffer) Replace(start, end int, text string) int {
	start, end = b.order(start, end)
	sl, sc := b.Position(start)
	el, ec := b.Position(end)

	head := string(b.lines[sl][:sc])
	tail := string(b.lines[el][ec:])
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(head+text+tail, "\n")

	repl := make([][]rune, len(parts))
	for i, p := range parts {
		repl[i] = []rune(p)
	}
	lines := make([][]rune, 0, len(b.lines)-(el-sl)+len(repl))
	lines = append(lines, b.lines[:sl]...)
	lines = append(lines, repl...)
	lines = append(lines, b.lines[el+1:]...)
	b.lines = lines
	b.version++
	return start + len([]rune(text))
}

// Insert adds text at idx.
func (b *Buffer) Insert(idx int, text string) int {
	return b.Replace(idx, idx, text)
}

// Delete removes [start, end).
func (b *Buffer) Delete(start, end int) {
	b.Replace(start, end, "")
}

// BeginBatch starts a batch edit. Batches nest.
func (b *Buffer) BeginBatch() { b.batch++ }

// EndBatch closes the innermost batch edit.
func (b *Buffer) EndBatch() {
	if b.batch > 0 {
		b.batch--
	}
}

// InBatch reports whether a batch edit is open.
func (b *Buffer) InBatch() bool { return b.batch > 0 }

// WordAt returns the bounds of the word around idx. Outside a word it
// returns an empty range at idx.
func (b *Buffer) WordAt(idx int) (start, end int) {
	line, col := b.Position(idx)
	l := b.lines[line]
	lineStart := idx - col

	s, e := col, col
	for s > 0 && isWordRune(l[s-1]) {
		s--
	}
	for e < len(l) && isWordRune(l[e]) {
		e++
	}
	return lineStart + s, lineStart + e
}

// Find returns the index of the first match of query at or after from,
// wrapping to the start of the buffer. It returns -1 when there is none.
func (b *Buffer) Find(query string, from int) int {
	if query == "" {
		return -1
	}
	text := []rune(b.String())
	q := []rune(query)
	from = clamp(from, 0, len(text))
	if i := indexRunes(text[from:], q); i >= 0 {
		return from + i
	}
	return indexRunes(text, q)
}

func indexRunes(s, q []rune) int {
	for i := 0; i+len(q) <= len(s); i++ {
		match := true
		for j := range q {
			if unicode.ToLower(s[i+j]) != unicode.ToLower(q[j]) {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func (b *Buffer) order(start, end int) (int, int) {
	n := b.Len()
	start, end = clamp(start, 0, n), clamp(end, 0, n)
	if start > end {
		return end, start
	}
	return start, end
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
