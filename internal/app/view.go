package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/actionbar/internal/keymap"
	"github.com/marcus/actionbar/internal/styles"
	"github.com/marcus/actionbar/internal/ui"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	edH := m.editorHeight()
	content := m.editor.View()
	if panelView := m.panel.View(); panelView != "" {
		v := m.panel.GetView()
		content = ui.OverlayAt(content, panelView, v.X, v.Y, m.width, edH)
	}

	if m.cfg.UI.ShowStatus {
		content += "\n" + m.renderStatusBar()
	} else if m.editor.Searching() {
		content = ui.OverlayAt(content, m.editor.SearchView(), 0, edH-1, m.width, edH)
	}

	if m.showHelp {
		return ui.OverlayModal(content, m.helpView, m.width, m.height)
	}
	return content
}

// renderStatusBar shows the search prompt while searching, otherwise the
// file, caret and panel state with any toast on the right.
func (m Model) renderStatusBar() string {
	bar := styles.StatusBar.Width(m.width).MaxHeight(1)
	if m.editor.Searching() {
		return bar.Render(m.editor.SearchView())
	}

	name := m.editor.Filename()
	if name == "" {
		name = "[scratch]"
	}
	if m.editor.Dirty() {
		name += " *"
	}
	sel := m.editor.Selection()
	left := fmt.Sprintf("%s  Ln %d, Col %d", name, sel.Right.Line+1, sel.Right.Column+1)
	if !m.editor.Editable() {
		left += "  [read-only]"
	}

	var flags []string
	if !m.panel.IsEnabled() {
		flags = append(flags, "panel off")
	}
	if m.editor.PointerMode() {
		flags = append(flags, "pointer")
	}
	if m.editor.InSnippet() {
		flags = append(flags, "snippet")
	}
	right := strings.Join(flags, " | ")
	if m.toast != "" {
		style := styles.Muted
		if m.toastErr {
			style = styles.ErrorText
		}
		right = style.Render(m.toast)
	}

	gap := m.width - bar.GetHorizontalPadding() - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return bar.Render(left)
	}
	return bar.Render(left + strings.Repeat(" ", gap) + right)
}

// renderHelp renders the keymap as markdown in a modal box.
func (m Model) renderHelp() string {
	width := min(72, max(20, m.width-8))
	md := m.helpMarkdown()

	out, err := renderMarkdown(md, width)
	if err != nil {
		m.logger.Debug("help render failed", "err", err)
		out = md
	}

	title := styles.ModalTitle.Render("Keyboard shortcuts")
	footer := styles.Muted.Render("esc to close")
	return styles.ModalBox.Render(lipgloss.JoinVertical(lipgloss.Left, title, out, footer))
}

func renderMarkdown(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(markdownStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(md)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

func markdownStyle() string {
	if styles.CurrentMarkdownTheme == "" {
		return "dark"
	}
	return styles.CurrentMarkdownTheme
}

var helpSections = []struct {
	context string
	title   string
}{
	{keymap.ContextGlobal, "Global"},
	{keymap.ContextEditor, "Editor"},
	{keymap.ContextSearch, "Search"},
	{keymap.ContextSnippet, "Snippet"},
}

// helpMarkdown lists bindings per context, one row per command.
func (m Model) helpMarkdown() string {
	var b strings.Builder
	for _, sec := range helpSections {
		bindings := m.keymap.BindingsForContext(sec.context)
		if len(bindings) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n| Key | Command |\n| --- | --- |\n", sec.title)

		keys := make(map[string][]string)
		var order []string
		for _, bd := range bindings {
			if _, ok := keys[bd.Command]; !ok {
				order = append(order, bd.Command)
			}
			keys[bd.Command] = append(keys[bd.Command], bd.Key)
		}
		for _, cmd := range order {
			ks := keys[cmd]
			sort.Strings(ks)
			fmt.Fprintf(&b, "| %s | %s |\n", formatBindingKeys(ks), formatCommandName(cmd))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatBindingKeys(keys []string) string {
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = "`" + k + "`"
	}
	return strings.Join(quoted, ", ")
}

// formatCommandName turns "select-all" into "Select all".
func formatCommandName(cmd string) string {
	s := strings.ReplaceAll(cmd, "-", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
