package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/actionbar/internal/config"
)

const toastDuration = 3 * time.Second

// Message types for tea.Cmd
type (
	// ToastMsg displays a temporary message in the status bar.
	ToastMsg struct {
		Message  string
		Duration time.Duration
		IsError  bool // true for error toasts (red)
	}

	// ErrorMsg represents an error condition.
	ErrorMsg struct {
		Err error
	}

	// toastExpiredMsg clears the toast shown under seq.
	toastExpiredMsg struct {
		seq int
	}

	// configReloadedMsg carries a reload from the config watcher.
	configReloadedMsg config.Reload
)

// ShowToast returns a command to show a toast message.
func ShowToast(msg string, duration time.Duration) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{
			Message:  msg,
			Duration: duration,
		}
	}
}

// ReportError returns a command to report an error.
func ReportError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}

// waitForReload blocks on the watcher channel and delivers the next reload.
// A closed channel ends the loop.
func waitForReload(ch <-chan config.Reload) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return configReloadedMsg(r)
	}
}
