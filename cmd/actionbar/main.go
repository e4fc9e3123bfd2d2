package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/actionbar/internal/app"
	"github.com/marcus/actionbar/internal/config"
	"github.com/marcus/actionbar/internal/editor"
	"github.com/marcus/actionbar/internal/event"
	"github.com/marcus/actionbar/internal/keymap"
	"github.com/marcus/actionbar/internal/theme"
)

// Version is set at build time via ldflags
var Version = ""

var (
	configPath   = flag.String("config", "", "path to config file")
	debugFlag    = flag.Bool("debug", false, "enable debug logging")
	logPath      = flag.String("log", "", "write logs to this file")
	readOnly     = flag.Bool("readonly", false, "open the file read-only")
	themeName    = flag.String("theme", "", "color theme (overrides config)")
	versionFlag  = flag.Bool("version", false, "print version and exit")
	shortVersion = flag.Bool("v", false, "print version and exit (short)")
)

func main() {
	flag.Parse()

	if *versionFlag || *shortVersion {
		fmt.Printf("actionbar version %s\n", effectiveVersion(Version))
		os.Exit(0)
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere.
	logger, closeLog, err := setupLogging(*logPath, *debugFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *readOnly {
		cfg.Editor.ReadOnly = true
	}
	theme.ApplyResolved(theme.ResolveTheme(cfg, *themeName))

	dispatcher := event.NewWithLogger(logger)
	defer dispatcher.Close()

	var ed *editor.Editor
	if path := flag.Arg(0); path != "" {
		ed, err = editor.Open(dispatcher, path, cfg.Editor, editor.WithLogger(logger))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open %s: %v\n", path, err)
			os.Exit(1)
		}
	} else {
		ed = editor.New(dispatcher, "", cfg.Editor, editor.WithLogger(logger))
	}

	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	for key, cmdID := range cfg.Keymap.Overrides {
		km.SetUserOverride(key, cmdID)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := []app.Option{
		app.WithLogger(logger),
		app.WithThemeFlag(*themeName),
		app.WithPersistTheme(*configPath == ""),
	}
	reloads, err := config.Watch(ctx, *configPath)
	if err != nil {
		logger.Warn("config watch disabled", "err", err)
	} else {
		opts = append(opts, app.WithReloads(reloads))
	}

	model := app.New(cfg, dispatcher, ed, km, opts...)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(path string, debugOn bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if debugOn {
		level = slog.LevelDebug
	}
	if path == "" {
		if !debugOn {
			return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
		}
		path = "actionbar-debug.log"
	}
	f, err := tea.LogToFile(path, "actionbar")
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { f.Close() }, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// effectiveVersion returns the version string, with fallback to build info.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}

	if revision != "" {
		ver := "devel+" + revision
		if len(ver) > 20 {
			ver = ver[:20]
		}
		if dirty {
			ver += "+dirty"
		}
		return ver
	}

	return "devel"
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: actionbar [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "A terminal text editor with a floating text action panel.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
}
