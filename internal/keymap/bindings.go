package keymap

// Binding contexts.
const (
	ContextGlobal  = "global"
	ContextEditor  = "editor"
	ContextSearch  = "search"
	ContextSnippet = "snippet"
	ContextHelp    = "help"
)

// DefaultBindings returns the default key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		// Global bindings
		{Key: "ctrl+q", Command: "quit", Context: ContextGlobal},
		{Key: "f1", Command: "toggle-help", Context: ContextGlobal},
		{Key: "ctrl+e", Command: "toggle-panel", Context: ContextGlobal},
		{Key: "ctrl+t", Command: "cycle-theme", Context: ContextGlobal},
		{Key: "ctrl+p", Command: "toggle-pointer", Context: ContextGlobal},

		// Editor context
		{Key: "ctrl+a", Command: "select-all", Context: ContextEditor},
		{Key: "ctrl+x", Command: "cut", Context: ContextEditor},
		{Key: "ctrl+c", Command: "copy", Context: ContextEditor},
		{Key: "ctrl+v", Command: "paste", Context: ContextEditor},
		{Key: "ctrl+l", Command: "extend-selection", Context: ContextEditor},
		{Key: "ctrl+f", Command: "search", Context: ContextEditor},
		{Key: "ctrl+j", Command: "insert-snippet", Context: ContextEditor},
		{Key: "ctrl+@", Command: "show-panel", Context: ContextEditor},
		{Key: "ctrl+s", Command: "save", Context: ContextEditor},
		{Key: "esc", Command: "clear-selection", Context: ContextEditor},

		// Search prompt context
		{Key: "enter", Command: "next-match", Context: ContextSearch},
		{Key: "ctrl+n", Command: "next-match", Context: ContextSearch},
		{Key: "esc", Command: "close-search", Context: ContextSearch},

		// Snippet session context
		{Key: "tab", Command: "next-placeholder", Context: ContextSnippet},
		{Key: "esc", Command: "end-snippet", Context: ContextSnippet},

		// Help overlay context
		{Key: "esc", Command: "close-help", Context: ContextHelp},
		{Key: "f1", Command: "close-help", Context: ContextHelp},
		{Key: "q", Command: "close-help", Context: ContextHelp},
	}
}

// RegisterDefaults registers all default bindings with the registry.
func RegisterDefaults(r *Registry) {
	for _, b := range DefaultBindings() {
		r.RegisterBinding(b)
	}
}
