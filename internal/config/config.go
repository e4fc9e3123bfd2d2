package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Panel  PanelConfig  `json:"panel"`
	Editor EditorConfig `json:"editor"`
	Keymap KeymapConfig `json:"keymap"`
	UI     UIConfig     `json:"ui"`
}

// PanelConfig configures the floating text action panel.
type PanelConfig struct {
	Enabled bool `json:"enabled"`
	// Debounce is the quiet window after a scroll or handle grab before the
	// panel may reappear. Default: 200ms.
	Debounce time.Duration `json:"debounce"`
	// RepollInterval is how often the settle check retries once the quiet
	// window has passed but the surface is still moving. Default: 100ms.
	RepollInterval time.Duration `json:"repollInterval"`
	// WatchdogInterval is how often the panel checks whether the insert
	// handle has disappeared. Default: 100ms.
	WatchdogInterval time.Duration `json:"watchdogInterval"`
	// BottomMargin is kept free below the panel, in rows. Default: 5.
	BottomMargin int `json:"bottomMargin"`
	// ClampHorizontal keeps the panel inside the surface width. Default: true.
	ClampHorizontal bool `json:"clampHorizontal"`
	// MaxButtons caps how many buttons the panel measures before it stops
	// growing. Default: 7.
	MaxButtons int `json:"maxButtons"`
}

// EditorConfig configures the editing surface.
type EditorConfig struct {
	ReadOnly bool `json:"readOnly"`
	// PointerMode suppresses the text action panel, as if a desktop pointer
	// were driving the editor.
	PointerMode bool `json:"pointerMode"`
	// InsertHandleTimeout is how long the insert handle stays drawn after a
	// tap. Default: 3s.
	InsertHandleTimeout time.Duration `json:"insertHandleTimeout"`
	TabWidth            int           `json:"tabWidth"`
	LineNumbers         bool          `json:"lineNumbers"`
	Syntax              bool          `json:"syntax"`
}

// KeymapConfig holds key binding overrides.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

// UIConfig configures UI appearance.
type UIConfig struct {
	ShowStatus bool        `json:"showStatus"`
	Theme      ThemeConfig `json:"theme"`
}

// ThemeConfig configures the color theme.
type ThemeConfig struct {
	Name      string            `json:"name"`
	Overrides map[string]string `json:"overrides,omitempty"` // user customizations on top
}

const (
	defaultDebounce            = 200 * time.Millisecond
	defaultRepollInterval      = 100 * time.Millisecond
	defaultWatchdogInterval    = 100 * time.Millisecond
	defaultBottomMargin        = 5
	defaultMaxButtons          = 7
	defaultInsertHandleTimeout = 3 * time.Second
	defaultTabWidth            = 4
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Panel: PanelConfig{
			Enabled:          true,
			Debounce:         defaultDebounce,
			RepollInterval:   defaultRepollInterval,
			WatchdogInterval: defaultWatchdogInterval,
			BottomMargin:     defaultBottomMargin,
			ClampHorizontal:  true,
			MaxButtons:       defaultMaxButtons,
		},
		Editor: EditorConfig{
			InsertHandleTimeout: defaultInsertHandleTimeout,
			TabWidth:            defaultTabWidth,
			LineNumbers:         true,
			Syntax:              true,
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
		UI: UIConfig{
			ShowStatus: true,
			Theme: ThemeConfig{
				Name:      "default",
				Overrides: make(map[string]string),
			},
		},
	}
}

// Validate checks the configuration for errors, correcting out-of-range
// values to their defaults.
func (c *Config) Validate() error {
	if c.Panel.Debounce <= 0 {
		c.Panel.Debounce = defaultDebounce
	}
	if c.Panel.RepollInterval <= 0 {
		c.Panel.RepollInterval = defaultRepollInterval
	}
	if c.Panel.WatchdogInterval <= 0 {
		c.Panel.WatchdogInterval = defaultWatchdogInterval
	}
	if c.Panel.BottomMargin < 0 {
		c.Panel.BottomMargin = defaultBottomMargin
	}
	if c.Panel.MaxButtons <= 0 {
		c.Panel.MaxButtons = defaultMaxButtons
	}
	if c.Editor.InsertHandleTimeout <= 0 {
		c.Editor.InsertHandleTimeout = defaultInsertHandleTimeout
	}
	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaultTabWidth
	}
	if c.UI.Theme.Name == "" {
		c.UI.Theme.Name = "default"
	}
	return nil
}
