package theme

import (
	"log/slog"

	"github.com/marcus/actionbar/internal/config"
	"github.com/marcus/actionbar/internal/styles"
)

// ResolvedTheme represents a fully-determined theme configuration.
type ResolvedTheme struct {
	BaseName  string
	Overrides map[string]string
}

// ResolveTheme determines the effective theme.
// Priority: command-line name > config UI.Theme > "default".
// Overrides from config apply only when the config theme wins.
func ResolveTheme(cfg *config.Config, flagName string) ResolvedTheme {
	resolved := ResolvedTheme{
		BaseName:  cfg.UI.Theme.Name,
		Overrides: cfg.UI.Theme.Overrides,
	}

	if flagName != "" && flagName != resolved.BaseName {
		resolved.BaseName = flagName
		resolved.Overrides = nil
	}

	if resolved.BaseName == "" {
		resolved.BaseName = "default"
	}

	return resolved
}

// ApplyResolved applies a resolved theme to the styles system.
// Unknown names fall back to the default palette.
func ApplyResolved(r ResolvedTheme) {
	if !styles.IsValidTheme(r.BaseName) {
		slog.Warn("unknown theme, using default", "theme", r.BaseName)
	}

	if len(r.Overrides) > 0 {
		styles.ApplyThemeWithOverrides(r.BaseName, r.Overrides)
	} else {
		styles.ApplyTheme(r.BaseName)
	}
}
