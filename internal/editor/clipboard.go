package editor

import (
	"log/slog"

	"github.com/atotto/clipboard"
)

// Clipboard is where cut and copy put text and paste takes it from.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// MemoryClipboard keeps text in process.
type MemoryClipboard struct {
	text string
}

func (m *MemoryClipboard) ReadAll() (string, error) { return m.text, nil }

func (m *MemoryClipboard) WriteAll(text string) error {
	m.text = text
	return nil
}

// SystemClipboard uses the OS clipboard and falls back to an in-process one
// when no clipboard utility is available.
type SystemClipboard struct {
	logger   *slog.Logger
	fallback MemoryClipboard
	broken   bool
}

// NewSystemClipboard returns a clipboard backed by the OS.
func NewSystemClipboard(logger *slog.Logger) *SystemClipboard {
	return &SystemClipboard{logger: logger, broken: clipboard.Unsupported}
}

func (s *SystemClipboard) ReadAll() (string, error) {
	if s.broken {
		return s.fallback.ReadAll()
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		s.degrade(err)
		return s.fallback.ReadAll()
	}
	return text, nil
}

func (s *SystemClipboard) WriteAll(text string) error {
	// Keep the fallback current so a later failure still pastes.
	s.fallback.text = text
	if s.broken {
		return nil
	}
	if err := clipboard.WriteAll(text); err != nil {
		s.degrade(err)
	}
	return nil
}

func (s *SystemClipboard) degrade(err error) {
	s.broken = true
	if s.logger != nil {
		s.logger.Warn("system clipboard unavailable, using in-process clipboard", "err", err)
	}
}
