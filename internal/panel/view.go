package panel

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/actionbar/internal/mouse"
	"github.com/marcus/actionbar/internal/styles"
)

// HitRegionID identifies panel buttons in a mouse.HitMap. The region's Data
// is the button ID.
const HitRegionID = "panel-button"

// ButtonView is a read-only snapshot of one button.
type ButtonView struct {
	ID      string
	Icon    string
	Title   string
	Visible bool
	Enabled bool
	Tint    string
	// Rect is in surface-local cells; zero for hidden buttons.
	Rect mouse.Rect
}

// View is a read-only snapshot of the panel.
type View struct {
	Shown   bool
	X, Y    int
	Width   int
	Height  int
	Buttons []ButtonView
}

// layout is the measured button grid. Buttons wrap after MaxButtons per row.
type layout struct {
	width, height int
	rows          [][]*Button
	rects         map[string]mouse.Rect // panel-local
}

func (c *Controller) buttonStyle(b *Button) lipgloss.Style {
	switch {
	case !b.Enabled:
		return styles.PanelButtonDisabled
	case b.ID == c.hover:
		return styles.PanelButtonHover.Foreground(lipgloss.Color(b.Tint))
	default:
		return styles.PanelButton.Foreground(lipgloss.Color(b.Tint))
	}
}

// layoutButtons measures visible buttons into rows inside the frame.
func (c *Controller) layoutButtons() {
	l := layout{rects: make(map[string]mouse.Rect)}
	perRow := max(1, c.cfg.MaxButtons)

	var row []*Button
	for _, b := range c.buttons() {
		if !b.Visible {
			continue
		}
		if len(row) == perRow {
			l.rows = append(l.rows, row)
			row = nil
		}
		row = append(row, b)
	}
	if len(row) > 0 {
		l.rows = append(l.rows, row)
	}

	inner := 0
	for y, r := range l.rows {
		x := 0
		for _, b := range r {
			w := lipgloss.Width(c.buttonStyle(b).Render(b.Icon))
			l.rects[b.ID] = mouse.Rect{X: 1 + x, Y: 1 + y, W: w, H: 1}
			x += w
		}
		inner = max(inner, x)
	}
	l.width = inner + 2
	l.height = len(l.rows) + 2
	c.layout = l
}

// applyColorScheme tints every button with the current theme's icon color.
func (c *Controller) applyColorScheme() {
	tint := string(styles.PanelIcon)
	for _, b := range c.buttons() {
		b.Tint = tint
	}
}

// SetHover highlights the button with the given ID; empty clears it.
func (c *Controller) SetHover(id string) {
	c.hover = id
}

// View renders the panel, or "" while hidden.
func (c *Controller) View() string {
	if c.state != Shown || len(c.layout.rows) == 0 {
		return ""
	}
	key := c.renderHash()
	if key == c.renderKey && c.rendered != "" {
		return c.rendered
	}

	rows := make([]string, len(c.layout.rows))
	for i, r := range c.layout.rows {
		cells := make([]string, len(r))
		for j, b := range r {
			cells[j] = c.buttonStyle(b).Render(b.Icon)
		}
		rows[i] = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}
	c.rendered = styles.PanelFrame.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	c.renderKey = key
	return c.rendered
}

// renderHash keys the render cache on everything that changes the output.
func (c *Controller) renderHash() uint64 {
	h := xxhash.New()
	h.WriteString(styles.GetCurrentThemeName())
	h.WriteString(string(styles.PanelBg))
	h.WriteString(string(styles.PanelBorder))
	h.WriteString(string(styles.PanelIconDisabled))
	h.WriteString(c.hover)
	for i, r := range c.layout.rows {
		h.WriteString("\n" + strconv.Itoa(i))
		for _, b := range r {
			h.WriteString(strings.Join([]string{b.ID, b.Icon, b.Tint, strconv.FormatBool(b.Enabled)}, "\x00"))
		}
	}
	return h.Sum64()
}

// GetView returns a snapshot of the panel for hosts and tests.
func (c *Controller) GetView() *View {
	v := &View{
		Shown:  c.state == Shown,
		X:      c.x,
		Y:      c.y,
		Width:  c.layout.width,
		Height: c.layout.height,
	}
	for _, b := range c.buttons() {
		bv := ButtonView{
			ID:      b.ID,
			Icon:    b.Icon,
			Title:   b.Title,
			Visible: b.Visible,
			Enabled: b.Enabled,
			Tint:    b.Tint,
		}
		if r, ok := c.layout.rects[b.ID]; ok && b.Visible {
			bv.Rect = mouse.Rect{X: c.x + r.X, Y: c.y + r.Y, W: r.W, H: r.H}
		}
		v.Buttons = append(v.Buttons, bv)
	}
	return v
}

// AddHitRegions registers the visible buttons in hm, offset by the
// surface's screen origin.
func (c *Controller) AddHitRegions(hm *mouse.HitMap, originX, originY int) {
	if c.state != Shown {
		return
	}
	for _, b := range c.GetView().Buttons {
		if b.Rect.Empty() {
			continue
		}
		r := b.Rect
		r.X += originX
		r.Y += originY
		hm.Add(HitRegionID, r, b.ID)
	}
}
