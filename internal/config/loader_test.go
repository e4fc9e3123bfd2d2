package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.Panel.Enabled {
		t.Error("panel should be enabled by default")
	}
	if cfg.Panel.Debounce != 200*time.Millisecond {
		t.Errorf("got debounce %v, want 200ms", cfg.Panel.Debounce)
	}
	if cfg.Panel.RepollInterval != 100*time.Millisecond {
		t.Errorf("got repoll %v, want 100ms", cfg.Panel.RepollInterval)
	}
	if cfg.Panel.BottomMargin != 5 {
		t.Errorf("got bottom margin %d, want 5", cfg.Panel.BottomMargin)
	}
	if !cfg.Panel.ClampHorizontal {
		t.Error("horizontal clamp should be on by default")
	}
	if cfg.UI.Theme.Name != "default" {
		t.Errorf("got theme %q, want 'default'", cfg.UI.Theme.Name)
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.json")
	if err != nil {
		t.Errorf("should not error on missing file: %v", err)
	}
	if cfg == nil {
		t.Error("should return default config")
	}
}

func TestLoadFrom_ValidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	content := []byte(`{
		"panel": {
			"enabled": false,
			"debounce": "350ms",
			"clampHorizontal": false
		},
		"editor": {
			"readOnly": true
		},
		"keymap": {
			"overrides": {"ctrl+e": "toggle-panel"}
		},
		"ui": {
			"showStatus": false,
			"theme": {"name": "dracula"}
		}
	}`)

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Panel.Enabled {
		t.Error("panel should be disabled")
	}
	if cfg.Panel.Debounce != 350*time.Millisecond {
		t.Errorf("got debounce %v, want 350ms", cfg.Panel.Debounce)
	}
	if cfg.Panel.ClampHorizontal {
		t.Error("clampHorizontal should be false")
	}
	if !cfg.Editor.ReadOnly {
		t.Error("readOnly should be true")
	}
	if cfg.Keymap.Overrides["ctrl+e"] != "toggle-panel" {
		t.Errorf("got override %q, want toggle-panel", cfg.Keymap.Overrides["ctrl+e"])
	}
	if cfg.UI.ShowStatus {
		t.Error("showStatus should be false")
	}
	if cfg.UI.Theme.Name != "dracula" {
		t.Errorf("got theme %q, want dracula", cfg.UI.Theme.Name)
	}
	// Default values should still be present
	if cfg.Panel.RepollInterval != 100*time.Millisecond {
		t.Errorf("repoll should keep its default, got %v", cfg.Panel.RepollInterval)
	}
	if cfg.Editor.TabWidth != 4 {
		t.Errorf("tab width should keep its default, got %d", cfg.Editor.TabWidth)
	}
}

func TestLoadFrom_InvalidDurationKeepsDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte(`{"panel": {"debounce": "soon"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Panel.Debounce != 200*time.Millisecond {
		t.Errorf("got debounce %v, want 200ms", cfg.Panel.Debounce)
	}
}

func TestLoadFrom_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte(`{invalid`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Error("should error on invalid JSON")
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input  string
		expect string
	}{
		{"~/notes.txt", filepath.Join(home, "notes.txt")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tc := range tests {
		got := ExpandPath(tc.input)
		if got != tc.expect {
			t.Errorf("ExpandPath(%q) = %q, want %q", tc.input, got, tc.expect)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Panel.Debounce = -1
	cfg.Panel.RepollInterval = 0
	cfg.Panel.BottomMargin = -3
	cfg.Editor.TabWidth = 0
	cfg.UI.Theme.Name = ""

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}

	// Out-of-range values should be corrected
	if cfg.Panel.Debounce != 200*time.Millisecond {
		t.Errorf("got %v, want 200ms after validation", cfg.Panel.Debounce)
	}
	if cfg.Panel.RepollInterval != 100*time.Millisecond {
		t.Errorf("got %v, want 100ms after validation", cfg.Panel.RepollInterval)
	}
	if cfg.Panel.BottomMargin != 5 {
		t.Errorf("got %d, want 5 after validation", cfg.Panel.BottomMargin)
	}
	if cfg.Editor.TabWidth != 4 {
		t.Errorf("got %d, want 4 after validation", cfg.Editor.TabWidth)
	}
	if cfg.UI.Theme.Name != "default" {
		t.Errorf("got %q, want default after validation", cfg.UI.Theme.Name)
	}
}

func TestConfigPath_TestOverride(t *testing.T) {
	SetTestConfigPath("/tmp/actionbar-test.json")
	if got := ConfigPath(); got != "/tmp/actionbar-test.json" {
		t.Errorf("ConfigPath() = %q, want override", got)
	}
	ResetTestConfigPath()
	if got := ConfigPath(); got == "/tmp/actionbar-test.json" {
		t.Error("ConfigPath() still returns override after reset")
	}
}
