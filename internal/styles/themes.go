package styles

import (
	"regexp"
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// themeMu protects access to themeRegistry and currentTheme for thread safety
var themeMu sync.RWMutex

// hexColorRegex validates hex color codes (#RRGGBB or #RRGGBBAA with alpha)
var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}([0-9A-Fa-f]{2})?$`)

// ColorPalette holds all theme colors
type ColorPalette struct {
	// Brand colors
	Primary string `json:"primary"`
	Accent  string `json:"accent"`
	Error   string `json:"error"`

	// Text colors
	TextPrimary string `json:"textPrimary"`
	TextMuted   string `json:"textMuted"`

	// Editor surface
	EditorBg      string `json:"editorBg"`
	LineNumber    string `json:"lineNumber"`
	SelectionBg   string `json:"selectionBg"`
	SearchMatchBg string `json:"searchMatchBg"`
	Caret         string `json:"caret"`
	SnippetBg     string `json:"snippetBg"`
	StatusBg      string `json:"statusBg"`

	// Text action panel
	PanelBg           string `json:"panelBg"`
	PanelBorder       string `json:"panelBorder"`
	PanelIcon         string `json:"panelIcon"`
	PanelIconDisabled string `json:"panelIconDisabled"`
	ButtonHover       string `json:"buttonHover"`

	// Third-party theme names
	SyntaxTheme   string `json:"syntaxTheme"`   // Chroma theme name
	MarkdownTheme string `json:"markdownTheme"` // Glamour theme name
}

// Theme represents a complete theme configuration
type Theme struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"displayName"`
	Colors      ColorPalette `json:"colors"`
}

// Built-in themes
var (
	// DefaultTheme is the dark theme used when nothing is configured
	DefaultTheme = Theme{
		Name:        "default",
		DisplayName: "Default Dark",
		Colors: ColorPalette{
			Primary: "#7C3AED", // Purple
			Accent:  "#F59E0B", // Amber
			Error:   "#EF4444", // Red

			TextPrimary: "#F9FAFB",
			TextMuted:   "#6B7280",

			EditorBg:      "#111827",
			LineNumber:    "#4B5563",
			SelectionBg:   "#3B3F8C",
			SearchMatchBg: "#92400E",
			Caret:         "#F59E0B",
			SnippetBg:     "#1E3A29",
			StatusBg:      "#1F2937",

			PanelBg:           "#1F2937",
			PanelBorder:       "#7C3AED",
			PanelIcon:         "#E5E7EB",
			PanelIconDisabled: "#4B5563",
			ButtonHover:       "#9D174D",

			SyntaxTheme:   "monokai",
			MarkdownTheme: "dark",
		},
	}

	// DraculaTheme is a Dracula-inspired dark theme with vibrant colors
	DraculaTheme = Theme{
		Name:        "dracula",
		DisplayName: "Dracula",
		Colors: ColorPalette{
			Primary: "#BD93F9", // Purple
			Accent:  "#FFB86C", // Orange
			Error:   "#FF5555", // Red

			TextPrimary: "#F8F8F2", // Foreground
			TextMuted:   "#6272A4", // Comment

			EditorBg:      "#282A36", // Background
			LineNumber:    "#6272A4",
			SelectionBg:   "#44475A", // Current Line
			SearchMatchBg: "#6B4F2A",
			Caret:         "#F8F8F2",
			SnippetBg:     "#1E3A29",
			StatusBg:      "#343746",

			PanelBg:           "#343746",
			PanelBorder:       "#BD93F9",
			PanelIcon:         "#8BE9FD", // Cyan
			PanelIconDisabled: "#44475A",
			ButtonHover:       "#FF79C6", // Pink

			SyntaxTheme:   "dracula",
			MarkdownTheme: "dracula",
		},
	}

	// LightTheme is a high-contrast light theme
	LightTheme = Theme{
		Name:        "light",
		DisplayName: "Light",
		Colors: ColorPalette{
			Primary: "#6D28D9",
			Accent:  "#B45309",
			Error:   "#B91C1C",

			TextPrimary: "#111827",
			TextMuted:   "#6B7280",

			EditorBg:      "#FFFFFF",
			LineNumber:    "#9CA3AF",
			SelectionBg:   "#BFDBFE",
			SearchMatchBg: "#FDE68A",
			Caret:         "#111827",
			SnippetBg:     "#D1FAE5",
			StatusBg:      "#E5E7EB",

			PanelBg:           "#F3F4F6",
			PanelBorder:       "#6D28D9",
			PanelIcon:         "#1F2937",
			PanelIconDisabled: "#D1D5DB",
			ButtonHover:       "#DDD6FE",

			SyntaxTheme:   "github",
			MarkdownTheme: "light",
		},
	}
)

// themeRegistry holds all available themes
var themeRegistry = map[string]Theme{
	"default": DefaultTheme,
	"dracula": DraculaTheme,
	"light":   LightTheme,
}

// currentTheme tracks the active theme name
var currentTheme = "default"

// IsValidHexColor checks if a string is a valid hex color code (#RRGGBB or #RRGGBBAA)
func IsValidHexColor(hex string) bool {
	return hexColorRegex.MatchString(hex)
}

// IsValidTheme checks if a theme name exists in the registry
func IsValidTheme(name string) bool {
	themeMu.RLock()
	defer themeMu.RUnlock()
	_, ok := themeRegistry[name]
	return ok
}

// GetTheme returns a theme by name, or the default theme if not found
func GetTheme(name string) Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	if theme, ok := themeRegistry[name]; ok {
		return theme
	}
	return DefaultTheme
}

// GetCurrentTheme returns the currently active theme
func GetCurrentTheme() Theme {
	themeMu.RLock()
	name := currentTheme
	themeMu.RUnlock()
	return GetTheme(name)
}

// GetCurrentThemeName returns the name of the currently active theme
func GetCurrentThemeName() string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// ListThemes returns the names of all available themes in sorted order
func ListThemes() []string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	names := make([]string, 0, len(themeRegistry))
	for name := range themeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterTheme adds a custom theme to the registry
func RegisterTheme(theme Theme) {
	themeMu.Lock()
	defer themeMu.Unlock()
	themeRegistry[theme.Name] = theme
}

// ApplyTheme applies a theme by name, updating all style variables
func ApplyTheme(name string) {
	ApplyThemeWithOverrides(name, nil)
}

// ApplyThemeWithOverrides applies a theme with overrides from config.
// Values are hex colors except syntaxTheme and markdownTheme, which are names.
func ApplyThemeWithOverrides(name string, overrides map[string]string) {
	theme := GetTheme(name)
	for key, value := range overrides {
		applySingleOverride(&theme.Colors, key, value)
	}

	ApplyThemeColors(theme)
	themeMu.Lock()
	currentTheme = theme.Name
	themeMu.Unlock()
}

// applySingleOverride applies a single string override.
// Color values must be valid hex colors. Invalid colors are silently ignored.
func applySingleOverride(palette *ColorPalette, key, value string) {
	isThemeName := key == "syntaxTheme" || key == "markdownTheme"
	if !isThemeName && !IsValidHexColor(value) {
		return
	}

	switch key {
	case "primary":
		palette.Primary = value
	case "accent":
		palette.Accent = value
	case "error":
		palette.Error = value
	case "textPrimary":
		palette.TextPrimary = value
	case "textMuted":
		palette.TextMuted = value
	case "editorBg":
		palette.EditorBg = value
	case "lineNumber":
		palette.LineNumber = value
	case "selectionBg":
		palette.SelectionBg = value
	case "searchMatchBg":
		palette.SearchMatchBg = value
	case "caret":
		palette.Caret = value
	case "snippetBg":
		palette.SnippetBg = value
	case "statusBg":
		palette.StatusBg = value
	case "panelBg":
		palette.PanelBg = value
	case "panelBorder":
		palette.PanelBorder = value
	case "panelIcon":
		palette.PanelIcon = value
	case "panelIconDisabled":
		palette.PanelIconDisabled = value
	case "buttonHover":
		palette.ButtonHover = value
	case "syntaxTheme":
		palette.SyntaxTheme = value
	case "markdownTheme":
		palette.MarkdownTheme = value
	}
}

// ApplyThemeColors updates all style package variables from a theme.
//
// Must only be called from the bubbletea update goroutine or before the
// program starts.
func ApplyThemeColors(theme Theme) {
	c := theme.Colors

	Primary = lipgloss.Color(c.Primary)
	Accent = lipgloss.Color(c.Accent)
	Error = lipgloss.Color(c.Error)

	TextPrimary = lipgloss.Color(c.TextPrimary)
	TextMuted = lipgloss.Color(c.TextMuted)

	EditorBg = lipgloss.Color(c.EditorBg)
	LineNumberColor = lipgloss.Color(c.LineNumber)
	SelectionBg = lipgloss.Color(c.SelectionBg)
	SearchMatchBg = lipgloss.Color(c.SearchMatchBg)
	CaretColor = lipgloss.Color(c.Caret)
	SnippetBg = lipgloss.Color(c.SnippetBg)
	StatusBg = lipgloss.Color(c.StatusBg)

	PanelBg = lipgloss.Color(c.PanelBg)
	PanelBorder = lipgloss.Color(c.PanelBorder)
	PanelIcon = lipgloss.Color(ReadableOn(c.PanelIcon, c.PanelBg, c.TextPrimary))
	PanelIconDisabled = lipgloss.Color(c.PanelIconDisabled)
	ButtonHoverColor = lipgloss.Color(c.ButtonHover)

	CurrentSyntaxTheme = c.SyntaxTheme
	CurrentMarkdownTheme = c.MarkdownTheme

	rebuildStyles()
}
