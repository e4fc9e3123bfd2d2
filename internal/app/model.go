// Package app is the root bubbletea model: it routes keys and mouse input
// between the editor and the action panel and draws the status bar and
// help overlay.
package app

import (
	"io"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/actionbar/internal/config"
	"github.com/marcus/actionbar/internal/editor"
	"github.com/marcus/actionbar/internal/event"
	"github.com/marcus/actionbar/internal/keymap"
	"github.com/marcus/actionbar/internal/mouse"
	"github.com/marcus/actionbar/internal/panel"
)

// Model is the root Bubble Tea model.
type Model struct {
	cfg    *config.Config
	logger *slog.Logger

	events *event.Dispatcher
	editor *editor.Editor
	panel  *panel.Controller
	keymap *keymap.Registry
	mouse  *mouse.Handler

	// themeFlag is the command-line theme; it keeps priority across reloads.
	themeFlag    string
	persistTheme bool
	reloads      <-chan config.Reload

	width, height int
	ready         bool

	showHelp bool
	helpView string

	toast    string
	toastErr bool
	toastSeq int
}

// Option configures a Model.
type Option func(*options)

type options struct {
	logger       *slog.Logger
	panelOpts    []panel.Option
	themeFlag    string
	persistTheme bool
	reloads      <-chan config.Reload
}

// WithLogger sets the logger shared with the panel controller.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithPanelOptions passes extra options to the panel controller.
func WithPanelOptions(opts ...panel.Option) Option {
	return func(o *options) { o.panelOpts = append(o.panelOpts, opts...) }
}

// WithThemeFlag records a theme chosen on the command line.
func WithThemeFlag(name string) Option {
	return func(o *options) { o.themeFlag = name }
}

// WithPersistTheme saves the theme to the config file when it is cycled.
func WithPersistTheme(on bool) Option {
	return func(o *options) { o.persistTheme = on }
}

// WithReloads feeds config reloads from a watcher into the model.
func WithReloads(ch <-chan config.Reload) Option {
	return func(o *options) { o.reloads = ch }
}

// New creates the root model around an editor. The editor must publish on
// events.
func New(cfg *config.Config, events *event.Dispatcher, ed *editor.Editor, km *keymap.Registry, opts ...Option) Model {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	panelOpts := append([]panel.Option{
		panel.WithLogger(o.logger),
		panel.WithConfig(cfg.Panel),
	}, o.panelOpts...)
	ctl := panel.New(ed, events, panelOpts...)
	for _, a := range hostActions(ed) {
		ctl.RegisterAction(a)
	}

	return Model{
		cfg:          cfg,
		logger:       o.logger,
		events:       events,
		editor:       ed,
		panel:        ctl,
		keymap:       km,
		mouse:        mouse.NewHandler(),
		themeFlag:    o.themeFlag,
		persistTheme: o.persistTheme,
		reloads:      o.reloads,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(m.title()),
		waitForReload(m.reloads),
	)
}

func (m Model) title() string {
	name := m.editor.Filename()
	if name == "" {
		name = "[scratch]"
	}
	return "actionbar - " + name
}

// Panel returns the action panel controller.
func (m Model) Panel() *panel.Controller { return m.panel }

// Editor returns the editing surface.
func (m Model) Editor() *editor.Editor { return m.editor }

// hostActions are the panel entries the application adds on top of the
// built-in clipboard buttons.
func hostActions(ed *editor.Editor) []*panel.Action {
	hasEditableSelection := func(s panel.SurfaceState) bool {
		return s.Selection().Selected && s.Editable()
	}
	transform := func(fn func(string) string) func(panel.Surface) error {
		return func(panel.Surface) error {
			return ed.ReplaceSelection(fn(ed.SelectedText()))
		}
	}
	return []*panel.Action{
		{
			ID:         "upper-case",
			Icon:       "AB",
			Title:      "Upper case",
			ShouldShow: hasEditableSelection,
			OnInvoke:   transform(strings.ToUpper),
		},
		{
			ID:         "lower-case",
			Icon:       "ab",
			Title:      "Lower case",
			ShouldShow: hasEditableSelection,
			OnInvoke:   transform(strings.ToLower),
		},
	}
}
