package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// saveConfig is the JSON-marshaling intermediary that uses string durations.
type saveConfig struct {
	Panel  savePanelConfig  `json:"panel"`
	Editor saveEditorConfig `json:"editor"`
	Keymap KeymapConfig     `json:"keymap"`
	UI     UIConfig         `json:"ui"`
}

type savePanelConfig struct {
	Enabled          bool   `json:"enabled"`
	Debounce         string `json:"debounce,omitempty"`
	RepollInterval   string `json:"repollInterval,omitempty"`
	WatchdogInterval string `json:"watchdogInterval,omitempty"`
	BottomMargin     int    `json:"bottomMargin"`
	ClampHorizontal  bool   `json:"clampHorizontal"`
	MaxButtons       int    `json:"maxButtons,omitempty"`
}

type saveEditorConfig struct {
	ReadOnly            bool   `json:"readOnly"`
	PointerMode         bool   `json:"pointerMode"`
	InsertHandleTimeout string `json:"insertHandleTimeout,omitempty"`
	TabWidth            int    `json:"tabWidth,omitempty"`
	LineNumbers         bool   `json:"lineNumbers"`
	Syntax              bool   `json:"syntax"`
}

// toSaveConfig converts Config to the JSON-serializable format.
func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		Panel: savePanelConfig{
			Enabled:          cfg.Panel.Enabled,
			Debounce:         cfg.Panel.Debounce.String(),
			RepollInterval:   cfg.Panel.RepollInterval.String(),
			WatchdogInterval: cfg.Panel.WatchdogInterval.String(),
			BottomMargin:     cfg.Panel.BottomMargin,
			ClampHorizontal:  cfg.Panel.ClampHorizontal,
			MaxButtons:       cfg.Panel.MaxButtons,
		},
		Editor: saveEditorConfig{
			ReadOnly:            cfg.Editor.ReadOnly,
			PointerMode:         cfg.Editor.PointerMode,
			InsertHandleTimeout: cfg.Editor.InsertHandleTimeout.String(),
			TabWidth:            cfg.Editor.TabWidth,
			LineNumbers:         cfg.Editor.LineNumbers,
			Syntax:              cfg.Editor.Syntax,
		},
		Keymap: cfg.Keymap,
		UI:     cfg.UI,
	}
}

// Save writes the config to ~/.config/actionbar/config.json. Top-level keys
// this package does not manage are carried over from the existing file.
func Save(cfg *Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("config: cannot resolve config path")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	merged := make(map[string]json.RawMessage)
	if existing, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(existing, &merged); err != nil {
			return fmt.Errorf("config: existing file is not valid JSON: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	managed, err := json.Marshal(toSaveConfig(cfg))
	if err != nil {
		return err
	}
	var managedKeys map[string]json.RawMessage
	if err := json.Unmarshal(managed, &managedKeys); err != nil {
		return err
	}
	for k, v := range managedKeys {
		merged[k] = v
	}

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SaveTheme updates only the theme name in config and saves.
func SaveTheme(themeName string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	cfg.UI.Theme.Name = themeName
	cfg.UI.Theme.Overrides = nil
	return Save(cfg)
}
