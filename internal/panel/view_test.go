package panel

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/actionbar/internal/config"
	"github.com/marcus/actionbar/internal/event"
	"github.com/marcus/actionbar/internal/mouse"
	"github.com/marcus/actionbar/internal/styles"
)

func TestView_HiddenIsEmpty(t *testing.T) {
	h := newHarness(t)
	if got := h.ctl.View(); got != "" {
		t.Errorf("hidden panel rendered %q", got)
	}
}

func TestView_RendersVisibleButtons(t *testing.T) {
	h := newHarness(t)
	h.showWithSelection()

	out := h.ctl.View()
	for _, label := range []string{"All", "Cut", "Copy", "Paste"} {
		if !strings.Contains(out, label) {
			t.Errorf("rendered panel missing %q", label)
		}
	}
	if strings.Contains(out, "Select") {
		t.Error("extend-selection should be hidden with a selection")
	}

	v := h.ctl.GetView()
	if w := lipgloss.Width(out); w != v.Width {
		t.Errorf("rendered width %d, measured %d", w, v.Width)
	}
	if ht := lipgloss.Height(out); ht != v.Height {
		t.Errorf("rendered height %d, measured %d", ht, v.Height)
	}
	if again := h.ctl.View(); again != out {
		t.Error("second render differs from the first")
	}
}

func TestView_WrapsAfterMaxButtons(t *testing.T) {
	cfg := config.Default().Panel
	cfg.MaxButtons = 2
	h := newHarnessWithConfig(t, cfg)
	h.showWithSelection()

	v := h.ctl.GetView()
	// Four visible buttons, two per row.
	if v.Height != 4 {
		t.Errorf("height = %d, want 4", v.Height)
	}
	copyBtn := h.buttonByTitle("Copy")
	if copyBtn.Rect.Y != v.Y+2 {
		t.Errorf("copy on row %d, want second row %d", copyBtn.Rect.Y, v.Y+2)
	}
}

func TestView_ButtonRectsInsideFrame(t *testing.T) {
	h := newHarness(t)
	h.showWithSelection()
	v := h.ctl.GetView()

	frame := mouse.Rect{X: v.X, Y: v.Y, W: v.Width, H: v.Height}
	for _, b := range v.Buttons {
		if !b.Visible {
			if !b.Rect.Empty() {
				t.Errorf("hidden button %q has rect %+v", b.ID, b.Rect)
			}
			continue
		}
		if !frame.Contains(b.Rect.X, b.Rect.Y) || b.Rect.Right() > frame.Right() {
			t.Errorf("button %q rect %+v outside frame %+v", b.ID, b.Rect, frame)
		}
	}
}

func TestAddHitRegions(t *testing.T) {
	h := newHarness(t)
	hm := mouse.NewHitMap()

	h.ctl.AddHitRegions(hm, 0, 0)
	if len(hm.Regions()) != 0 {
		t.Fatal("hidden panel should not add hit regions")
	}

	h.showWithSelection()
	h.ctl.AddHitRegions(hm, 3, 1)

	copyBtn := h.buttonByTitle("Copy")
	r := hm.Test(copyBtn.Rect.X+3, copyBtn.Rect.Y+1)
	if r == nil || r.ID != HitRegionID {
		t.Fatalf("no panel region at copy button: %+v", r)
	}
	if r.Data != ButtonCopy {
		t.Errorf("region data = %v, want %q", r.Data, ButtonCopy)
	}
}

func TestColorSchemeUpdated_Retints(t *testing.T) {
	defer styles.ApplyTheme("default")

	h := newHarness(t)
	h.showWithSelection()
	h.ctl.View()
	before := h.ctl.renderKey

	styles.ApplyTheme("dracula")
	h.publish(event.ColorSchemeUpdated{Theme: "dracula"})

	if !h.ctl.IsShowing() {
		t.Error("theme change should not change visibility")
	}
	for _, b := range h.ctl.GetView().Buttons {
		if b.Tint != string(styles.PanelIcon) {
			t.Errorf("button %q tint = %q, want %q", b.ID, b.Tint, styles.PanelIcon)
		}
	}
	h.ctl.View()
	if h.ctl.renderKey == before {
		t.Error("render cache should miss after a theme change")
	}
}

func TestSetHover(t *testing.T) {
	h := newHarness(t)
	h.showWithSelection()
	h.ctl.SetHover(ButtonCopy)
	if h.ctl.hover != ButtonCopy {
		t.Fatal("hover not recorded")
	}
	h.ctl.Dismiss()
	if h.ctl.hover != "" {
		t.Error("dismiss should clear hover")
	}
}
