package keymap

import (
	"sort"

	tea "github.com/charmbracelet/bubbletea"
)

// Binding maps a key to a command within a context.
type Binding struct {
	Key     string
	Command string
	Context string
}

// Registry resolves keys to command IDs. Context bindings take precedence
// over global ones, and user overrides take precedence over defaults.
type Registry struct {
	bindings      map[string][]Binding // context -> bindings, in registration order
	userOverrides map[string]string    // key -> command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings:      make(map[string][]Binding),
		userOverrides: make(map[string]string),
	}
}

// RegisterBinding adds a binding. A later binding for the same key and
// context replaces the earlier one.
func (r *Registry) RegisterBinding(b Binding) {
	list := r.bindings[b.Context]
	for i := range list {
		if list[i].Key == b.Key {
			list[i] = b
			return
		}
	}
	r.bindings[b.Context] = append(list, b)
}

// SetUserOverride binds key to command in every context the command is
// bound in by default, or globally if it has no default binding.
func (r *Registry) SetUserOverride(key, command string) {
	r.userOverrides[key] = command
}

// contextsFor returns the contexts that bind command.
func (r *Registry) contextsFor(command string) map[string]bool {
	out := make(map[string]bool)
	for ctx, list := range r.bindings {
		for _, b := range list {
			if b.Command == command {
				out[ctx] = true
			}
		}
	}
	return out
}

// Lookup returns the command bound to key in context, falling back to global.
func (r *Registry) Lookup(key, context string) (string, bool) {
	if cmd, ok := r.userOverrides[key]; ok {
		ctxs := r.contextsFor(cmd)
		if len(ctxs) == 0 || ctxs[context] || ctxs[ContextGlobal] {
			return cmd, true
		}
	}
	for _, ctx := range []string{context, ContextGlobal} {
		for _, b := range r.bindings[ctx] {
			if b.Key == key {
				return b.Command, true
			}
		}
	}
	return "", false
}

// LookupKey is Lookup for a key message.
func (r *Registry) LookupKey(msg tea.KeyMsg, context string) (string, bool) {
	return r.Lookup(msg.String(), context)
}

// BindingsForContext returns the effective bindings for a context,
// including user overrides that apply there.
func (r *Registry) BindingsForContext(context string) []Binding {
	list := make([]Binding, 0, len(r.bindings[context]))
	overridden := make(map[string]bool)

	keys := make([]string, 0, len(r.userOverrides))
	for k := range r.userOverrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cmd := r.userOverrides[k]
		ctxs := r.contextsFor(cmd)
		if ctxs[context] || (len(ctxs) == 0 && context == ContextGlobal) {
			list = append(list, Binding{Key: k, Command: cmd, Context: context})
			overridden[k] = true
		}
	}
	for _, b := range r.bindings[context] {
		if !overridden[b.Key] {
			list = append(list, b)
		}
	}
	return list
}

// Contexts returns all contexts with at least one binding, sorted.
func (r *Registry) Contexts() []string {
	out := make([]string, 0, len(r.bindings))
	for ctx := range r.bindings {
		out = append(out, ctx)
	}
	sort.Strings(out)
	return out
}
