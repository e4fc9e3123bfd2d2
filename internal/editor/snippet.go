package editor

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/marcus/actionbar/internal/event"
)

// DefaultSnippet is inserted by the insert-snippet command.
const DefaultSnippet = "${1:name}(${2:args}) {\n\t$0\n}"

var placeholderRe = regexp.MustCompile(`\$\{(\d+)(?::([^}]*))?\}|\$(\d+)`)

type placeholder struct {
	num        int
	start, end int // rune offsets, absolute once inserted
}

// snippetSession tracks the tab stops of an inserted snippet. Offsets are
// shifted as the user edits so later stops stay on their text.
type snippetSession struct {
	stops   []placeholder
	current int
}

// parseSnippet expands a template into plain text and its tab stops,
// relative to the start of the text. Stop 0 sorts last.
func parseSnippet(tmpl string) (string, []placeholder) {
	var (
		out   []rune
		stops []placeholder
		last  int
	)
	for _, m := range placeholderRe.FindAllStringSubmatchIndex(tmpl, -1) {
		out = append(out, []rune(tmpl[last:m[0]])...)
		last = m[1]

		numStr, def := "", ""
		if m[2] >= 0 {
			numStr = tmpl[m[2]:m[3]]
			if m[4] >= 0 {
				def = tmpl[m[4]:m[5]]
			}
		} else {
			numStr = tmpl[m[6]:m[7]]
		}
		num, _ := strconv.Atoi(numStr)
		start := len(out)
		out = append(out, []rune(def)...)
		stops = append(stops, placeholder{num: num, start: start, end: len(out)})
	}
	out = append(out, []rune(tmpl[last:])...)

	sort.SliceStable(stops, func(i, j int) bool {
		a, b := stops[i].num, stops[j].num
		if a == 0 || b == 0 {
			return b == 0 && a != 0
		}
		return a < b
	})
	return string(out), stops
}

// shift moves stops after an edit that replaced text at [at, at+removed)
// with inserted runes.
func (s *snippetSession) shift(at, removed, inserted int) {
	delta := inserted - removed
	for i := range s.stops {
		p := &s.stops[i]
		switch {
		case p.start >= at+removed:
			p.start += delta
			p.end += delta
		case p.end >= at:
			// The edit is inside this stop.
			p.end = max(p.start, p.end+delta)
		}
	}
}

func (s *snippetSession) stop() placeholder { return s.stops[s.current] }

// next advances to the following stop and reports whether one remains.
func (s *snippetSession) next() bool {
	if s.current+1 >= len(s.stops) {
		return false
	}
	s.current++
	return true
}

// InsertSnippet replaces the selection with the expanded template and
// selects its first tab stop.
func (e *Editor) InsertSnippet(tmpl string) error {
	if e.cfg.ReadOnly {
		return ErrReadOnly
	}
	text, stops := parseSnippet(tmpl)
	start, end := e.selectionRange()

	e.buf.BeginBatch()
	e.buf.Replace(start, end, text)
	e.buf.EndBatch()
	e.dirty = true

	if len(stops) == 0 {
		next := start + len([]rune(text))
		e.setSelection(next, next, event.CauseOther)
		return nil
	}
	for i := range stops {
		stops[i].start += start
		stops[i].end += start
	}
	e.snippet = &snippetSession{stops: stops}
	e.selectStop()
	return nil
}

// NextPlaceholder moves to the next tab stop. Past the last one the session
// ends.
func (e *Editor) NextPlaceholder() {
	if e.snippet == nil {
		return
	}
	if !e.snippet.next() {
		e.EndSnippet()
		return
	}
	e.selectStop()
}

// EndSnippet leaves the snippet session and republishes the selection so
// the panel can react to it.
func (e *Editor) EndSnippet() {
	if e.snippet == nil {
		return
	}
	e.snippet = nil
	e.publishSelection(event.CauseOther)
}

func (e *Editor) selectStop() {
	p := e.snippet.stop()
	e.setSelection(p.start, p.end, event.CauseOther)
}
