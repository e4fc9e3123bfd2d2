package panel

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Built-in button IDs, in display order.
const (
	ButtonSelectAll       = "select-all"
	ButtonCut             = "cut"
	ButtonCopy            = "copy"
	ButtonPaste           = "paste"
	ButtonExtendSelection = "extend-selection"
)

// Action is a host-registered panel button. Identity is the pointer.
type Action struct {
	// ID names the action in logs. Left empty, a UUID is assigned on
	// registration.
	ID    string
	Icon  string
	Title string
	// ShouldShow decides visibility each time the panel is shown. Nil means
	// always visible.
	ShouldShow func(SurfaceState) bool
	OnInvoke   func(Surface) error

	button *Button
}

// Bound reports whether the action currently has a button in a panel.
func (a *Action) Bound() bool { return a.button != nil }

// Button is one entry in the panel's button row.
type Button struct {
	ID      string
	Icon    string
	Title   string
	Visible bool
	Enabled bool
	Tint    string

	action *Action // nil for built-ins
}

// ActionError wraps a failure raised by an action's OnInvoke, including a
// recovered panic.
type ActionError struct {
	ActionID string
	Err      error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action %q: %v", e.ActionID, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

func builtinButtons() []*Button {
	return []*Button{
		{ID: ButtonSelectAll, Icon: "All", Title: "Select all", Enabled: true},
		{ID: ButtonCut, Icon: "Cut", Title: "Cut", Enabled: true},
		{ID: ButtonCopy, Icon: "Copy", Title: "Copy", Enabled: true},
		{ID: ButtonPaste, Icon: "Paste", Title: "Paste", Enabled: true},
		{ID: ButtonExtendSelection, Icon: "Select", Title: "Extend selection", Enabled: true},
	}
}

// RegisterAction appends a button for a to the panel. Registering the same
// action twice is a no-op.
func (c *Controller) RegisterAction(a *Action) {
	if a == nil || slices.Contains(c.actions, a) {
		return
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.button = &Button{
		ID:      "action:" + uuid.NewString(),
		Icon:    a.Icon,
		Title:   a.Title,
		Enabled: true,
		action:  a,
	}
	c.actions = append(c.actions, a)
	c.logger.Debug("action registered", "action", a.ID)

	c.applyColorScheme()
	c.updateButtons()
}

// UnregisterAction removes a's button. Unknown actions are ignored.
func (c *Controller) UnregisterAction(a *Action) {
	i := slices.Index(c.actions, a)
	if i < 0 {
		return
	}
	c.actions = slices.Delete(c.actions, i, i+1)
	a.button = nil
	c.logger.Debug("action unregistered", "action", a.ID)

	c.updateButtons()
}

// Actions returns the registered actions in registration order.
func (c *Controller) Actions() []*Action {
	return slices.Clone(c.actions)
}

// buttons returns every button in display order: built-ins first, then
// registered actions.
func (c *Controller) buttons() []*Button {
	out := make([]*Button, 0, len(c.builtins)+len(c.actions))
	out = append(out, c.builtins...)
	for _, a := range c.actions {
		out = append(out, a.button)
	}
	return out
}

func (c *Controller) button(id string) *Button {
	for _, b := range c.buttons() {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// updateButtons re-evaluates visibility of every button against the
// surface and re-measures the panel.
func (c *Controller) updateButtons() {
	sel := c.surface.Selection().Selected
	editable := c.surface.Editable()

	for _, b := range c.builtins {
		switch b.ID {
		case ButtonSelectAll:
			b.Visible = true
		case ButtonCut:
			b.Visible = sel && editable
		case ButtonCopy:
			b.Visible = sel
		case ButtonPaste:
			b.Visible = editable
			b.Enabled = c.surface.HasClip()
		case ButtonExtendSelection:
			b.Visible = !sel && editable
		}
	}
	for _, a := range c.actions {
		a.button.Visible = c.shouldShow(a)
	}

	c.layoutButtons()
}

// shouldShow evaluates a's predicate, hiding the button if it panics.
func (c *Controller) shouldShow(a *Action) (visible bool) {
	if a.ShouldShow == nil {
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("action visibility check panicked", "action", a.ID, "panic", r)
			visible = false
		}
	}()
	return a.ShouldShow(c.surface)
}

// HandleClick runs the button with the given ID. Hidden or disabled buttons
// are ignored. It reports whether a button ran.
func (c *Controller) HandleClick(id string) bool {
	b := c.button(id)
	if b == nil || !b.Visible || !b.Enabled {
		return false
	}

	if b.action != nil {
		if err := c.invoke(b.action); err != nil {
			c.logger.Warn("action failed", "action", b.action.ID, "err", err)
		}
		c.Dismiss()
		return true
	}

	switch b.ID {
	case ButtonSelectAll:
		// The resulting selection change re-shows the panel.
		c.surface.SelectAll()
		return true
	case ButtonCut:
		if c.surface.Selection().Selected {
			c.logCommandErr(b.ID, c.surface.Cut())
		}
	case ButtonPaste:
		c.logCommandErr(b.ID, c.surface.Paste())
		c.collapseToRight()
	case ButtonCopy:
		c.logCommandErr(b.ID, c.surface.Copy())
		c.collapseToRight()
	case ButtonExtendSelection:
		c.surface.BeginExtendSelection()
	}
	c.Dismiss()
	return true
}

func (c *Controller) collapseToRight() {
	right := c.surface.Selection().Right
	c.surface.SetSelection(right.Line, right.Column)
}

func (c *Controller) logCommandErr(id string, err error) {
	if err != nil {
		c.logger.Warn("panel command failed", "button", id, "err", err)
	}
}

// invoke runs a's behaviour, converting errors and panics to *ActionError.
func (c *Controller) invoke(a *Action) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ActionError{ActionID: a.ID, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	if a.OnInvoke == nil {
		return nil
	}
	if err := a.OnInvoke(c.surface); err != nil {
		return &ActionError{ActionID: a.ID, Err: err}
	}
	return nil
}
