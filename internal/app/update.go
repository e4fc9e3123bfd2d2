package app

import (
	"fmt"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/actionbar/internal/config"
	"github.com/marcus/actionbar/internal/editor"
	"github.com/marcus/actionbar/internal/event"
	"github.com/marcus/actionbar/internal/keymap"
	"github.com/marcus/actionbar/internal/mouse"
	"github.com/marcus/actionbar/internal/panel"
	"github.com/marcus/actionbar/internal/styles"
	"github.com/marcus/actionbar/internal/theme"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.editor.SetSize(m.width, m.editorHeight())
		if m.showHelp {
			m.helpView = m.renderHelp()
		}
		return m, m.editor.TakeCmds()

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case ToastMsg:
		d := msg.Duration
		if d <= 0 {
			d = toastDuration
		}
		return m, m.showToast(msg.Message, msg.IsError, d)

	case ErrorMsg:
		m.logger.Warn("error", "err", msg.Err)
		return m, m.showToast(msg.Err.Error(), true, toastDuration)

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
			m.toastErr = false
		}
		return m, nil

	case tea.FocusMsg:
		// The help overlay keeps focus until it closes.
		if m.showHelp {
			return m, nil
		}

	case configReloadedMsg:
		cmd := m.applyReload(config.Reload(msg))
		return m, tea.Batch(cmd, waitForReload(m.reloads))
	}

	// Scheduled panel work, editor ticks and focus reports.
	return m, tea.Batch(m.panel.Update(msg), m.editor.Update(msg))
}

// editorHeight is the terminal height minus the status bar.
func (m Model) editorHeight() int {
	if m.cfg.UI.ShowStatus {
		return max(0, m.height-1)
	}
	return m.height
}

// activeContext picks the keymap context from the innermost open mode.
func (m Model) activeContext() string {
	switch {
	case m.showHelp:
		return keymap.ContextHelp
	case m.editor.Searching():
		return keymap.ContextSearch
	case m.editor.InSnippet():
		return keymap.ContextSnippet
	}
	return keymap.ContextEditor
}

// lookup resolves a key in the active context. Snippet sessions fall back to
// editor bindings so clipboard keys keep working.
func (m Model) lookup(msg tea.KeyMsg) (string, bool) {
	ctx := m.activeContext()
	if cmd, ok := m.keymap.LookupKey(msg, ctx); ok {
		return cmd, true
	}
	if ctx == keymap.ContextSnippet {
		return m.keymap.LookupKey(msg, keymap.ContextEditor)
	}
	return "", false
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := m.lookup(msg); ok {
		return m.runCommand(cmd)
	}
	if m.showHelp {
		return m, nil
	}
	return m, m.editor.Update(msg)
}

// runCommand executes a keymap command. Events raised by the editor while
// the command runs are collected from its outbox.
func (m Model) runCommand(name string) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	report := func(err error) {
		if err != nil {
			cmds = append(cmds, m.showToast(err.Error(), true, toastDuration))
		}
	}

	switch name {
	case "quit":
		m.editor.Release()
		m.editor.TakeCmds()
		return m, tea.Quit

	case "toggle-help", "close-help":
		m.showHelp = name == "toggle-help" && !m.showHelp
		if m.showHelp {
			m.helpView = m.renderHelp()
		}
		// The overlay takes focus from the editor, which hides the panel.
		m.editor.SetFocused(!m.showHelp)

	case "toggle-panel":
		m.panel.SetEnabled(!m.panel.IsEnabled())
		state := "off"
		if m.panel.IsEnabled() {
			state = "on"
		}
		cmds = append(cmds, m.showToast("Action panel "+state, false, toastDuration))

	case "toggle-pointer":
		on := !m.editor.PointerMode()
		m.editor.SetPointerMode(on)
		if on {
			m.panel.Dismiss()
		}
		mode := "touch"
		if on {
			mode = "pointer"
		}
		cmds = append(cmds, m.showToast("Input mode: "+mode, false, toastDuration))

	case "cycle-theme":
		cmds = append(cmds, m.cycleTheme())

	case "select-all":
		m.editor.SelectAll()
	case "cut":
		report(m.editor.Cut())
	case "copy":
		report(m.editor.Copy())
	case "paste":
		report(m.editor.Paste())
	case "extend-selection":
		m.editor.BeginExtendSelection()
	case "clear-selection":
		m.editor.ClearSelection()
	case "show-panel":
		m.panel.DisplayWindow()

	case "search":
		cmds = append(cmds, m.editor.OpenSearch())
	case "next-match":
		m.editor.SearchNext()
	case "close-search":
		m.editor.CloseSearch()

	case "insert-snippet":
		report(m.editor.InsertSnippet(editor.DefaultSnippet))
	case "next-placeholder":
		m.editor.NextPlaceholder()
	case "end-snippet":
		m.editor.EndSnippet()

	case "save":
		if err := m.editor.Save(); err != nil {
			report(err)
		} else {
			cmds = append(cmds, m.showToast("Saved "+m.editor.Filename(), false, toastDuration))
		}

	default:
		m.logger.Debug("unknown command", "command", name)
	}

	cmds = append(cmds, m.editor.TakeCmds())
	return m, tea.Batch(cmds...)
}

// cycleTheme applies the next built-in theme and tells the panel to re-tint.
func (m *Model) cycleTheme() tea.Cmd {
	names := styles.ListThemes()
	if len(names) == 0 {
		return nil
	}
	i := slices.Index(names, styles.GetCurrentThemeName())
	next := names[(i+1)%len(names)]

	theme.ApplyResolved(theme.ResolvedTheme{BaseName: next})
	m.themeFlag = ""
	cmds := []tea.Cmd{
		m.events.Publish(event.ColorSchemeUpdated{Theme: next}),
		m.showToast("Theme: "+next, false, toastDuration),
	}
	if m.persistTheme {
		if err := config.SaveTheme(next); err != nil {
			m.logger.Warn("failed to save theme", "theme", next, "err", err)
		}
	}
	if m.showHelp {
		m.helpView = m.renderHelp()
	}
	return tea.Batch(cmds...)
}

// applyReload adopts a config edited on disk.
func (m *Model) applyReload(r config.Reload) tea.Cmd {
	if r.Err != nil {
		m.logger.Warn("config reload failed", "err", r.Err)
		return m.showToast(fmt.Sprintf("Config error: %v", r.Err), true, toastDuration)
	}
	if r.Config == nil {
		return nil
	}
	prev := m.cfg
	m.cfg = r.Config

	for key, cmd := range m.cfg.Keymap.Overrides {
		m.keymap.SetUserOverride(key, cmd)
	}
	if m.cfg.Panel.Enabled != prev.Panel.Enabled {
		m.panel.SetEnabled(m.cfg.Panel.Enabled)
	}
	if m.cfg.UI.ShowStatus != prev.UI.ShowStatus && m.ready {
		m.editor.SetSize(m.width, m.editorHeight())
	}

	resolved := theme.ResolveTheme(m.cfg, m.themeFlag)
	theme.ApplyResolved(resolved)
	m.logger.Info("config reloaded", "theme", resolved.BaseName)

	return tea.Batch(
		m.events.Publish(event.ColorSchemeUpdated{Theme: resolved.BaseName}),
		m.editor.TakeCmds(),
		m.showToast("Config reloaded", false, toastDuration),
	)
}

func (m *Model) showToast(text string, isErr bool, d time.Duration) tea.Cmd {
	m.toastSeq++
	m.toast = text
	m.toastErr = isErr
	seq := m.toastSeq
	return tea.Tick(d, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })
}

// rebuildHitMap registers the editor and, above it, the panel buttons. The
// editor sits at the screen origin.
func (m Model) rebuildHitMap() {
	m.mouse.Clear()
	m.editor.AddHitRegions(m.mouse.HitMap)
	m.panel.AddHitRegions(m.mouse.HitMap, 0, 0)
}

func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		return m, nil
	}
	m.rebuildHitMap()
	action := m.mouse.HandleMouse(msg)

	switch action.Type {
	case mouse.ActionNone:
		return m, nil
	case mouse.ActionHover:
		hover := ""
		if action.Region != nil && action.Region.ID == panel.HitRegionID {
			hover, _ = action.Region.Data.(string)
		}
		m.panel.SetHover(hover)
		return m, nil
	case mouse.ActionDrag, mouse.ActionDragEnd:
		// Drags stay with the editor even when they pass over the panel.
		return m, m.editor.HandleMouse(action, m.mouse)
	}

	if action.Region == nil {
		return m, nil
	}
	switch action.Region.ID {
	case panel.HitRegionID:
		if action.Type == mouse.ActionClick || action.Type == mouse.ActionDoubleClick {
			id, _ := action.Region.Data.(string)
			m.panel.HandleClick(id)
			return m, m.editor.TakeCmds()
		}
		return m, nil
	case editor.RegionID:
		return m, m.editor.HandleMouse(action, m.mouse)
	}
	return m, nil
}
