package styles

import "github.com/charmbracelet/lipgloss"

// Color palette - default dark theme
var (
	Primary = lipgloss.Color("#7C3AED") // Purple
	Accent  = lipgloss.Color("#F59E0B") // Amber
	Error   = lipgloss.Color("#EF4444") // Red

	TextPrimary = lipgloss.Color("#F9FAFB")
	TextMuted   = lipgloss.Color("#6B7280")

	// Editor surface colors
	EditorBg        = lipgloss.Color("#111827")
	LineNumberColor = lipgloss.Color("#4B5563")
	SelectionBg     = lipgloss.Color("#3B3F8C")
	SearchMatchBg   = lipgloss.Color("#92400E")
	CaretColor      = lipgloss.Color("#F59E0B")
	SnippetBg       = lipgloss.Color("#1E3A29")
	StatusBg        = lipgloss.Color("#1F2937")

	// Text action panel colors
	PanelBg           = lipgloss.Color("#1F2937")
	PanelBorder       = lipgloss.Color("#7C3AED")
	PanelIcon         = lipgloss.Color("#E5E7EB") // icon tint for every button
	PanelIconDisabled = lipgloss.Color("#4B5563")
	ButtonHoverColor  = lipgloss.Color("#9D174D")

	// Third-party theme names (updated by ApplyTheme)
	CurrentSyntaxTheme   = "monokai"
	CurrentMarkdownTheme = "dark"
)

// Editor styles
var (
	Text = lipgloss.NewStyle().
		Foreground(TextPrimary)

	LineNumber = lipgloss.NewStyle().
			Foreground(LineNumberColor)

	Selection = lipgloss.NewStyle().
			Background(SelectionBg)

	SearchMatch = lipgloss.NewStyle().
			Background(SearchMatchBg)

	Caret = lipgloss.NewStyle().
		Reverse(true).
		Foreground(CaretColor)

	Snippet = lipgloss.NewStyle().
		Background(SnippetBg)

	StatusBar = lipgloss.NewStyle().
			Foreground(TextPrimary).
			Background(StatusBg).
			Padding(0, 1)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error)
)

// Text action panel styles
var (
	// PanelFrame wraps the button row in a rounded box.
	PanelFrame = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PanelBorder).
			BorderBackground(PanelBg).
			Background(PanelBg)

	PanelButton = lipgloss.NewStyle().
			Foreground(PanelIcon).
			Background(PanelBg).
			Padding(0, 1)

	PanelButtonDisabled = lipgloss.NewStyle().
				Foreground(PanelIconDisabled).
				Background(PanelBg).
				Padding(0, 1)

	PanelButtonHover = lipgloss.NewStyle().
				Foreground(PanelIcon).
				Background(ButtonHoverColor).
				Padding(0, 1)
)

// Modal styles for the help overlay
var (
	ModalBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	ModalTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)
)

// rebuildStyles recreates all lipgloss styles with current colors
func rebuildStyles() {
	Text = lipgloss.NewStyle().
		Foreground(TextPrimary)

	LineNumber = lipgloss.NewStyle().
		Foreground(LineNumberColor)

	Selection = lipgloss.NewStyle().
		Background(SelectionBg)

	SearchMatch = lipgloss.NewStyle().
		Background(SearchMatchBg)

	Caret = lipgloss.NewStyle().
		Reverse(true).
		Foreground(CaretColor)

	Snippet = lipgloss.NewStyle().
		Background(SnippetBg)

	StatusBar = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(StatusBg).
		Padding(0, 1)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	ErrorText = lipgloss.NewStyle().
		Foreground(Error)

	PanelFrame = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PanelBorder).
		BorderBackground(PanelBg).
		Background(PanelBg)

	PanelButton = lipgloss.NewStyle().
		Foreground(PanelIcon).
		Background(PanelBg).
		Padding(0, 1)

	PanelButtonDisabled = lipgloss.NewStyle().
		Foreground(PanelIconDisabled).
		Background(PanelBg).
		Padding(0, 1)

	PanelButtonHover = lipgloss.NewStyle().
		Foreground(PanelIcon).
		Background(ButtonHoverColor).
		Padding(0, 1)

	ModalBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(0, 1)

	ModalTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)
}
