// Package ui composites floating layers (the action panel, the help sheet)
// over the rendered editor.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DimStyle greys out the editor behind the help sheet. Existing ANSI codes
// are stripped first because SGR 2 (faint) doesn't combine reliably with
// colored text.
var DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

func maxLineWidth(lines []string) int {
	maxWidth := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

func dimLine(s string) string {
	return DimStyle.Render(ansi.Strip(s))
}

// spliceRow replaces the cells [x, x+w) of bgLine with layer. The
// background keeps its styling on both sides when dim is false.
func spliceRow(bgLine, layer string, x, w int, dim bool) string {
	if dim {
		bgLine = ansi.Strip(bgLine)
	}
	bgWidth := ansi.StringWidth(bgLine)

	var b strings.Builder
	if x > 0 {
		left := ansi.Truncate(bgLine, x, "")
		if dim {
			b.WriteString(DimStyle.Render(left))
		} else {
			b.WriteString(left)
			if !strings.HasSuffix(left, "\x1b[0m") && strings.Contains(left, "\x1b[") {
				b.WriteString("\x1b[0m")
			}
		}
		if lw := ansi.StringWidth(left); lw < x {
			b.WriteString(strings.Repeat(" ", x-lw))
		}
	}

	b.WriteString(layer)

	if end := x + w; bgWidth > end {
		right := ansi.Cut(bgLine, end, bgWidth)
		if dim {
			right = DimStyle.Render(right)
		}
		b.WriteString(right)
	}
	return b.String()
}

// OverlayAt draws layer with its top-left corner at (x, y) over background,
// which is width by height cells. Rows and columns that fall outside the
// background are clipped. The background is not dimmed.
func OverlayAt(background, layer string, x, y, width, height int) string {
	bgLines := strings.Split(background, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}
	if layer == "" || x >= width || y >= height {
		return strings.Join(bgLines[:height], "\n")
	}

	layerLines := strings.Split(layer, "\n")
	if x < 0 {
		for i, l := range layerLines {
			layerLines[i] = ansi.Cut(l, -x, ansi.StringWidth(l))
		}
		x = 0
	}
	layerWidth := maxLineWidth(layerLines)
	if x+layerWidth > width {
		layerWidth = width - x
		for i, l := range layerLines {
			layerLines[i] = ansi.Truncate(l, layerWidth, "")
		}
	}

	out := make([]string, 0, height)
	for row := 0; row < height; row++ {
		i := row - y
		if i < 0 || i >= len(layerLines) {
			out = append(out, bgLines[row])
			continue
		}
		out = append(out, spliceRow(bgLines[row], layerLines[i], x, layerWidth, false))
	}
	return strings.Join(out, "\n")
}

// OverlayModal centers modal over a dimmed background.
func OverlayModal(background, modal string, width, height int) string {
	bgLines := strings.Split(background, "\n")
	modalLines := strings.Split(modal, "\n")

	modalWidth := maxLineWidth(modalLines)
	startX := max((width-modalWidth)/2, 0)
	startY := max((height-len(modalLines))/2, 0)

	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	out := make([]string, 0, height)
	for row := 0; row < height; row++ {
		i := row - startY
		if i >= 0 && i < len(modalLines) {
			out = append(out, spliceRow(bgLines[row], modalLines[i], startX, modalWidth, true))
		} else {
			out = append(out, dimLine(bgLines[row]))
		}
	}
	return strings.Join(out, "\n")
}
