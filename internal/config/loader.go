package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	configDir  = ".config/actionbar"
	configFile = "config.json"
)

// testConfigPath overrides ConfigPath in tests.
var testConfigPath string

// rawConfig is the JSON-unmarshaling intermediary.
type rawConfig struct {
	Panel  rawPanelConfig  `json:"panel"`
	Editor rawEditorConfig `json:"editor"`
	Keymap KeymapConfig    `json:"keymap"`
	UI     rawUIConfig     `json:"ui"`
}

type rawPanelConfig struct {
	Enabled          *bool  `json:"enabled"`
	Debounce         string `json:"debounce"`
	RepollInterval   string `json:"repollInterval"`
	WatchdogInterval string `json:"watchdogInterval"`
	BottomMargin     *int   `json:"bottomMargin"`
	ClampHorizontal  *bool  `json:"clampHorizontal"`
	MaxButtons       *int   `json:"maxButtons"`
}

type rawEditorConfig struct {
	ReadOnly            *bool  `json:"readOnly"`
	PointerMode         *bool  `json:"pointerMode"`
	InsertHandleTimeout string `json:"insertHandleTimeout"`
	TabWidth            *int   `json:"tabWidth"`
	LineNumbers         *bool  `json:"lineNumbers"`
	Syntax              *bool  `json:"syntax"`
}

type rawUIConfig struct {
	ShowStatus *bool       `json:"showStatus"`
	Theme      ThemeConfig `json:"theme"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/actionbar/config.json
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = ConfigPath()
		if path == "" {
			return cfg, nil // Return defaults on error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	mergeConfig(cfg, &raw)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	// Panel
	if raw.Panel.Enabled != nil {
		cfg.Panel.Enabled = *raw.Panel.Enabled
	}
	mergeDuration(&cfg.Panel.Debounce, raw.Panel.Debounce, "panel.debounce")
	mergeDuration(&cfg.Panel.RepollInterval, raw.Panel.RepollInterval, "panel.repollInterval")
	mergeDuration(&cfg.Panel.WatchdogInterval, raw.Panel.WatchdogInterval, "panel.watchdogInterval")
	if raw.Panel.BottomMargin != nil {
		cfg.Panel.BottomMargin = *raw.Panel.BottomMargin
	}
	if raw.Panel.ClampHorizontal != nil {
		cfg.Panel.ClampHorizontal = *raw.Panel.ClampHorizontal
	}
	if raw.Panel.MaxButtons != nil {
		cfg.Panel.MaxButtons = *raw.Panel.MaxButtons
	}

	// Editor
	if raw.Editor.ReadOnly != nil {
		cfg.Editor.ReadOnly = *raw.Editor.ReadOnly
	}
	if raw.Editor.PointerMode != nil {
		cfg.Editor.PointerMode = *raw.Editor.PointerMode
	}
	mergeDuration(&cfg.Editor.InsertHandleTimeout, raw.Editor.InsertHandleTimeout, "editor.insertHandleTimeout")
	if raw.Editor.TabWidth != nil {
		cfg.Editor.TabWidth = *raw.Editor.TabWidth
	}
	if raw.Editor.LineNumbers != nil {
		cfg.Editor.LineNumbers = *raw.Editor.LineNumbers
	}
	if raw.Editor.Syntax != nil {
		cfg.Editor.Syntax = *raw.Editor.Syntax
	}

	// Keymap
	for k, v := range raw.Keymap.Overrides {
		cfg.Keymap.Overrides[k] = v
	}

	// UI
	if raw.UI.ShowStatus != nil {
		cfg.UI.ShowStatus = *raw.UI.ShowStatus
	}
	if raw.UI.Theme.Name != "" {
		cfg.UI.Theme.Name = raw.UI.Theme.Name
	}
	for k, v := range raw.UI.Theme.Overrides {
		cfg.UI.Theme.Overrides[k] = v
	}
}

// mergeDuration parses s into dst, keeping dst when s is empty or invalid.
func mergeDuration(dst *time.Duration, s, key string) {
	if s == "" {
		return
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		slog.Warn("invalid duration in config", "key", key, "value", s, "err", err)
		return
	}
	*dst = d
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	if testConfigPath != "" {
		return testConfigPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}

// SetTestConfigPath points ConfigPath at path. For tests only.
func SetTestConfigPath(path string) { testConfigPath = path }

// ResetTestConfigPath restores the default ConfigPath.
func ResetTestConfigPath() { testConfigPath = "" }
