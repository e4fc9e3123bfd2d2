package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the burst of events editors emit on save.
const reloadDebounce = 200 * time.Millisecond

// Reload is delivered when the config file changes on disk.
type Reload struct {
	Config *Config
	Err    error
}

// Watch watches path for changes and delivers the reloaded config.
// The parent directory is watched so atomic-rename saves are seen.
// The channel closes when ctx is done.
func Watch(ctx context.Context, path string) (<-chan Reload, error) {
	if path == "" {
		path = ConfigPath()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	reloads := make(chan Reload, 4)
	base := filepath.Base(path)

	go func() {
		defer watcher.Close()

		var debounceTimer *time.Timer
		var closed bool
		var mu sync.Mutex

		defer func() {
			mu.Lock()
			closed = true
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			mu.Unlock()
			close(reloads)
		}()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != base {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}

				mu.Lock()
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(reloadDebounce, func() {
					cfg, err := LoadFrom(path)

					mu.Lock()
					defer mu.Unlock()
					if closed {
						return
					}
					select {
					case reloads <- Reload{Config: cfg, Err: err}:
					default:
					}
				})
				mu.Unlock()

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return reloads, nil
}
