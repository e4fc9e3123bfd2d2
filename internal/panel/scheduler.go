package panel

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Scheduler turns deferred work into commands that deliver msg back to the
// update loop. Delivered messages are passed to Controller.Update.
type Scheduler interface {
	// Post delivers msg on the next turn of the update loop.
	Post(msg tea.Msg) tea.Cmd
	// PostDelayed delivers msg after d.
	PostDelayed(d time.Duration, msg tea.Msg) tea.Cmd
}

// Clock supplies the time used for scroll debounce arithmetic.
type Clock interface {
	Now() time.Time
}

type teaScheduler struct{}

func (teaScheduler) Post(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (teaScheduler) PostDelayed(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Scheduled messages. Each carries the generation it was scheduled under;
// a message whose generation is stale is dropped when it arrives.
type (
	showMsg struct {
		owner *Controller
		gen   uint64
	}
	repollMsg struct {
		owner *Controller
		gen   uint64
	}
	watchdogMsg struct {
		owner *Controller
		gen   uint64
	}
)
