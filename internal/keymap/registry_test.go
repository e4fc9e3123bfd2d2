package keymap

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

func TestLookup_Defaults(t *testing.T) {
	r := newDefaultRegistry()

	tests := []struct {
		key     string
		context string
		want    string
		found   bool
	}{
		{"ctrl+a", ContextEditor, "select-all", true},
		{"ctrl+q", ContextEditor, "quit", true},       // global fallback
		{"esc", ContextSearch, "close-search", true},  // context wins over editor
		{"esc", ContextEditor, "clear-selection", true},
		{"tab", ContextSnippet, "next-placeholder", true},
		{"tab", ContextEditor, "", false},
		{"q", ContextHelp, "close-help", true},
	}

	for _, tc := range tests {
		t.Run(tc.key+"/"+tc.context, func(t *testing.T) {
			got, ok := r.Lookup(tc.key, tc.context)
			if ok != tc.found {
				t.Fatalf("Lookup found = %v, want %v", ok, tc.found)
			}
			if got != tc.want {
				t.Errorf("Lookup = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLookupKey(t *testing.T) {
	r := newDefaultRegistry()
	cmd, ok := r.LookupKey(tea.KeyMsg{Type: tea.KeyCtrlF}, ContextEditor)
	if !ok || cmd != "search" {
		t.Errorf("LookupKey(ctrl+f) = %q, %v; want search, true", cmd, ok)
	}
}

func TestSetUserOverride(t *testing.T) {
	r := newDefaultRegistry()
	r.SetUserOverride("ctrl+k", "cut")

	if cmd, ok := r.Lookup("ctrl+k", ContextEditor); !ok || cmd != "cut" {
		t.Errorf("override in editor = %q, %v; want cut, true", cmd, ok)
	}
	// cut is only bound in the editor context
	if _, ok := r.Lookup("ctrl+k", ContextHelp); ok {
		t.Error("override should not apply in help context")
	}
	// default binding still works
	if cmd, _ := r.Lookup("ctrl+x", ContextEditor); cmd != "cut" {
		t.Errorf("default ctrl+x = %q, want cut", cmd)
	}
}

func TestSetUserOverride_ReplacesDefault(t *testing.T) {
	r := newDefaultRegistry()
	r.SetUserOverride("ctrl+a", "extend-selection")

	if cmd, _ := r.Lookup("ctrl+a", ContextEditor); cmd != "extend-selection" {
		t.Errorf("ctrl+a = %q, want extend-selection", cmd)
	}

	var seen int
	for _, b := range r.BindingsForContext(ContextEditor) {
		if b.Key == "ctrl+a" {
			seen++
			if b.Command != "extend-selection" {
				t.Errorf("binding for ctrl+a = %q, want extend-selection", b.Command)
			}
		}
	}
	if seen != 1 {
		t.Errorf("ctrl+a listed %d times, want 1", seen)
	}
}

func TestSetUserOverride_UnknownCommandIsGlobal(t *testing.T) {
	r := newDefaultRegistry()
	r.SetUserOverride("ctrl+u", "upper-case")

	if cmd, ok := r.Lookup("ctrl+u", ContextEditor); !ok || cmd != "upper-case" {
		t.Errorf("Lookup = %q, %v; want upper-case, true", cmd, ok)
	}
}

func TestRegisterBinding_ReplacesSameKey(t *testing.T) {
	r := NewRegistry()
	r.RegisterBinding(Binding{Key: "x", Command: "a", Context: ContextEditor})
	r.RegisterBinding(Binding{Key: "x", Command: "b", Context: ContextEditor})

	if got := len(r.BindingsForContext(ContextEditor)); got != 1 {
		t.Fatalf("got %d bindings, want 1", got)
	}
	if cmd, _ := r.Lookup("x", ContextEditor); cmd != "b" {
		t.Errorf("Lookup = %q, want b", cmd)
	}
}

func TestContexts(t *testing.T) {
	r := newDefaultRegistry()
	got := r.Contexts()
	want := []string{ContextEditor, ContextGlobal, ContextHelp, ContextSearch, ContextSnippet}
	if len(got) != len(want) {
		t.Fatalf("Contexts() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Contexts()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
