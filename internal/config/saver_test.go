package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSave_PreservesUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	// Write a config file that includes a "snippets" key (not managed by Save)
	initial := []byte(`{
  "snippets": [
    {"name": "todo", "body": "// TODO(${1:owner}): ${2}"}
  ],
  "customKey": "should survive"
}`)
	if err := os.WriteFile(path, initial, 0644); err != nil {
		t.Fatal(err)
	}

	SetTestConfigPath(path)
	defer ResetTestConfigPath()

	cfg := Default()
	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal saved config: %v", err)
	}

	if _, ok := raw["snippets"]; !ok {
		t.Error("Save() deleted 'snippets' key from config.json")
	}
	if _, ok := raw["customKey"]; !ok {
		t.Error("Save() deleted 'customKey' from config.json")
	}

	var snippets []map[string]interface{}
	if err := json.Unmarshal(raw["snippets"], &snippets); err != nil {
		t.Fatalf("unmarshal snippets: %v", err)
	}
	if len(snippets) != 1 {
		t.Errorf("got %d snippets, want 1", len(snippets))
	}

	for _, key := range []string{"panel", "editor", "keymap", "ui"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("Save() did not write %q key", key)
		}
	}
}

func TestSave_WorksWithNoExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	SetTestConfigPath(path)
	defer ResetTestConfigPath()

	if err := Save(Default()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}
}

func TestSave_RoundTripsDurations(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	SetTestConfigPath(path)
	defer ResetTestConfigPath()

	cfg := Default()
	cfg.Panel.Debounce = 450 * time.Millisecond
	cfg.Panel.ClampHorizontal = false
	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Panel.Debounce != 450*time.Millisecond {
		t.Errorf("got debounce %v, want 450ms", loaded.Panel.Debounce)
	}
	if loaded.Panel.ClampHorizontal {
		t.Error("clampHorizontal should round-trip as false")
	}
}

func TestSaveTheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	SetTestConfigPath(path)
	defer ResetTestConfigPath()

	if err := SaveTheme("light"); err != nil {
		t.Fatalf("SaveTheme failed: %v", err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.UI.Theme.Name != "light" {
		t.Errorf("got theme %q, want light", cfg.UI.Theme.Name)
	}
}

func TestWatch_DeliversReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloads, err := Watch(ctx, path)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	if err := os.WriteFile(path, []byte(`{"ui": {"theme": {"name": "dracula"}}}`), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-reloads:
		if r.Err != nil {
			t.Fatalf("reload error: %v", r.Err)
		}
		if r.Config.UI.Theme.Name != "dracula" {
			t.Errorf("got theme %q, want dracula", r.Config.UI.Theme.Name)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload delivered")
	}
}
