// Package panel decides when the floating text action panel is shown, where
// it is placed, and which buttons it offers.
package panel

import (
	"errors"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/actionbar/internal/config"
	"github.com/marcus/actionbar/internal/event"
)

// State is the panel's visibility.
type State int

const (
	Hidden State = iota
	Shown
)

func (s State) String() string {
	if s == Shown {
		return "shown"
	}
	return "hidden"
}

// Controller owns the panel for one editing surface. All methods must be
// called from the bubbletea update loop.
type Controller struct {
	surface Surface
	logger  *slog.Logger
	clock   Clock
	sched   Scheduler
	cfg     config.PanelConfig

	enabled  bool
	released bool
	state    State
	x, y     int

	lastScroll   time.Time
	lastCause    event.Cause
	lastPosition int

	// Generations for scheduled work. Bumping one drops every message
	// scheduled under an older value.
	showGen     uint64
	repollGen   uint64
	watchdogGen uint64

	builtins []*Button
	actions  []*Action
	layout   layout
	hover    string

	renderKey uint64
	rendered  string
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. Nil discards.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock replaces the wall clock used for scroll debouncing.
func WithClock(clk Clock) Option {
	return func(c *Controller) { c.clock = clk }
}

// WithScheduler replaces the tea.Tick based scheduler.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

// WithConfig sets timings, margins and the initial enabled flag.
func WithConfig(cfg config.PanelConfig) Option {
	return func(c *Controller) { c.cfg = cfg }
}

// New creates a controller for surface and subscribes it to events.
func New(surface Surface, events event.Source, opts ...Option) *Controller {
	c := &Controller{
		surface:      surface,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:        systemClock{},
		sched:        teaScheduler{},
		cfg:          config.Default().Panel,
		lastPosition: -1,
		builtins:     builtinButtons(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.enabled = c.cfg.Enabled

	events.OnSelectionChanged(gated(c, c.onSelectionChanged))
	events.OnScroll(gated(c, c.onScroll))
	events.OnHandleStateChanged(gated(c, c.onHandleStateChanged))
	events.OnLongPress(gated(c, c.onLongPress))
	events.OnFocusChanged(gated(c, c.onFocusChanged))
	events.OnEditorReleased(c.onEditorReleased)
	events.OnColorSchemeUpdated(gated(c, c.onColorSchemeUpdated))
	events.OnDragSelectStopped(gated(c, c.onDragSelectStopped))

	c.applyColorScheme()
	return c
}

// gated drops events while the controller is disabled.
func gated[T any](c *Controller, fn func(T) tea.Cmd) func(T) tea.Cmd {
	return func(ev T) tea.Cmd {
		if !c.enabled {
			return nil
		}
		return fn(ev)
	}
}

// SetEnabled enables or disables the controller. Disabling hides the panel
// at once and turns every pending scheduled task into a no-op. A released
// controller cannot be re-enabled.
func (c *Controller) SetEnabled(enabled bool) {
	if enabled && c.released {
		c.logger.Debug("ignoring enable after surface release")
		return
	}
	c.enabled = enabled
	if !enabled {
		c.showGen++
		c.repollGen++
		c.watchdogGen++
		c.Dismiss()
	}
}

// IsEnabled reports whether the controller may show the panel.
func (c *Controller) IsEnabled() bool { return c.enabled }

// State returns the current visibility.
func (c *Controller) State() State { return c.state }

// IsShowing reports whether the panel is visible.
func (c *Controller) IsShowing() bool { return c.state == Shown }

// Dismiss hides the panel.
func (c *Controller) Dismiss() {
	if c.state == Shown {
		c.logger.Debug("panel dismissed")
	}
	c.state = Hidden
	c.hover = ""
}

// DisplayWindow places the panel against the current selection or caret
// and shows it. Calling it while shown repositions.
func (c *Controller) DisplayWindow() {
	c.applyColorScheme()
	c.updateButtons()

	x, y, err := Place(c.placementInput())
	if err != nil {
		if errors.Is(err, ErrNoGeometry) {
			c.logger.Debug("panel not shown", "err", err)
		} else {
			c.logger.Warn("panel placement failed", "err", err)
		}
		c.Dismiss()
		return
	}
	c.x, c.y = x, y
	c.show()
}

func (c *Controller) placementInput() PlacementInput {
	sel := c.surface.Selection()
	var handles []Handle
	if sel.Selected {
		handles = []Handle{
			c.surface.HandleDescriptor(event.HandleLeft),
			c.surface.HandleDescriptor(event.HandleRight),
		}
	} else {
		handles = []Handle{c.surface.HandleDescriptor(event.HandleInsert)}
	}

	in := PlacementInput{
		RowHeight:       c.surface.RowHeight(),
		PanelWidth:      c.layout.width,
		PanelHeight:     c.layout.height,
		LeftX:           c.surface.Offset(sel.Left.Line, sel.Left.Column),
		RightX:          c.surface.Offset(sel.Right.Line, sel.Right.Column),
		BottomMargin:    c.cfg.BottomMargin,
		ClampHorizontal: c.cfg.ClampHorizontal,
	}
	in.SurfaceWidth, in.SurfaceHeight = c.surface.Size()
	for _, h := range handles {
		in.Handles = append(in.Handles, h.Rect)
	}
	return in
}

// show is the single entry point that makes the panel visible.
func (c *Controller) show() {
	switch {
	case !c.enabled:
		return
	case c.surface.InSnippet():
		return
	case !c.surface.Focused():
		return
	case c.surface.PointerMode():
		return
	}
	if c.state != Shown {
		c.logger.Debug("panel shown", "x", c.x, "y", c.y)
	}
	c.state = Shown
}

// postShow schedules a show on the next turn of the update loop,
// superseding any show already pending.
func (c *Controller) postShow() tea.Cmd {
	c.showGen++
	return c.sched.Post(showMsg{owner: c, gen: c.showGen})
}

// postDisplay hides a visible panel and re-polls until the surface settles.
func (c *Controller) postDisplay() tea.Cmd {
	if c.state != Shown {
		return nil
	}
	c.Dismiss()
	if !c.surface.Selection().Selected {
		return nil
	}
	c.repollGen++
	return c.sched.PostDelayed(c.cfg.Debounce, repollMsg{owner: c, gen: c.repollGen})
}

// Update handles the controller's scheduled messages. Other messages are
// ignored.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case showMsg:
		if msg.owner != c || msg.gen != c.showGen {
			return nil
		}
		c.DisplayWindow()

	case repollMsg:
		if msg.owner != c || msg.gen != c.repollGen {
			return nil
		}
		return c.repoll()

	case watchdogMsg:
		if msg.owner != c || msg.gen != c.watchdogGen {
			return nil
		}
		return c.watchdog()
	}
	return nil
}

// repoll shows the panel once scrolling and handle drags have settled, and
// retries at RepollInterval until then.
func (c *Controller) repoll() tea.Cmd {
	if !c.enabled || !c.surface.Selection().Selected {
		return nil
	}
	quiet := c.clock.Now().Sub(c.lastScroll) >= c.cfg.Debounce
	if quiet && !c.surface.AnyHandleHeld() && !c.surface.InSnippet() && c.surface.ScrollSettled() {
		c.DisplayWindow()
		return nil
	}
	return c.sched.PostDelayed(c.cfg.RepollInterval, repollMsg{owner: c, gen: c.repollGen})
}

// watchdog dismisses a caret panel once the insert handle disappears.
func (c *Controller) watchdog() tea.Cmd {
	if c.surface.Selection().Selected {
		return nil
	}
	if !c.surface.InsertHandleDrawn() {
		c.Dismiss()
		return nil
	}
	return c.sched.PostDelayed(c.cfg.WatchdogInterval, watchdogMsg{owner: c, gen: c.watchdogGen})
}

func (c *Controller) onSelectionChanged(ev event.SelectionChanged) tea.Cmd {
	if c.surface.AnyHandleHeld() || ev.Cause == event.CauseDeadKeys {
		return nil
	}
	if c.surface.DragSelecting() {
		c.Dismiss()
		return nil
	}
	c.lastCause = ev.Cause

	if ev.Selected || (ev.Cause == event.CauseLongPress && c.surface.TextLen() == 0) {
		c.lastPosition = -1
		if ev.Cause == event.CauseSearch {
			c.Dismiss()
			return nil
		}
		return c.postShow()
	}

	var cmd tea.Cmd
	if ev.Cause == event.CauseTap && ev.Left.Index == c.lastPosition && c.state != Shown &&
		!c.surface.InBatchEdit() && c.surface.Editable() {
		cmd = c.postShow()
	} else {
		c.Dismiss()
	}
	if ev.Cause == event.CauseTap && cmd == nil {
		c.lastPosition = ev.Left.Index
	} else {
		c.lastPosition = -1
	}
	return cmd
}

func (c *Controller) onScroll(event.Scroll) tea.Cmd {
	last := c.lastScroll
	c.lastScroll = c.clock.Now()
	// The first scroll has nothing to burst with.
	burst := !last.IsZero() && c.lastScroll.Sub(last) < c.cfg.Debounce
	if burst && c.lastCause != event.CauseSearch {
		return c.postDisplay()
	}
	return nil
}

func (c *Controller) onHandleStateChanged(ev event.HandleStateChanged) tea.Cmd {
	var cmds []tea.Cmd
	if ev.Held {
		cmds = append(cmds, c.postDisplay())
	}
	if !ev.Held && ev.Kind == event.HandleInsert && !c.surface.Selection().Selected {
		c.DisplayWindow()
		c.watchdogGen++
		cmds = append(cmds, c.sched.PostDelayed(c.cfg.WatchdogInterval, watchdogMsg{owner: c, gen: c.watchdogGen}))
	}
	return tea.Batch(cmds...)
}

func (c *Controller) onLongPress(ev *event.LongPress) tea.Cmd {
	sel := c.surface.Selection()
	if !sel.Selected || c.lastCause != event.CauseSearch {
		return nil
	}
	if ev.Index >= sel.Left.Index && ev.Index <= sel.Right.Index {
		c.lastCause = event.CauseOther
		c.DisplayWindow()
	}
	ev.Intercept()
	return nil
}

func (c *Controller) onFocusChanged(ev event.FocusChanged) tea.Cmd {
	if !ev.Gained {
		c.Dismiss()
	}
	return nil
}

func (c *Controller) onEditorReleased(event.EditorReleased) tea.Cmd {
	c.SetEnabled(false)
	c.released = true
	return nil
}

func (c *Controller) onColorSchemeUpdated(event.ColorSchemeUpdated) tea.Cmd {
	c.applyColorScheme()
	c.layoutButtons()
	return nil
}

func (c *Controller) onDragSelectStopped(event.DragSelectStopped) tea.Cmd {
	c.DisplayWindow()
	return nil
}
