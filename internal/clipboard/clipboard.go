// Package clipboard copies generated content to the system clipboard.
package clipboard

import (
	"errors"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available
// (e.g. no xclip, xsel or wl-copy on Linux).
var ErrUnsupported = errors.New("clipboard unavailable")

// Writer writes text to a clipboard.
type Writer interface {
	WriteAll(text string) error
}

// System is the host clipboard.
type System struct{}

func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// Memory is an in-process clipboard, used when the host has none and in tests.
type Memory struct {
	mu   sync.Mutex
	text string
}

func (m *Memory) WriteAll(text string) error {
	m.mu.Lock()
	m.text = text
	m.mu.Unlock()
	return nil
}

// Text returns the last written text.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// Default returns the system clipboard, or an in-memory one when the host
// has no clipboard support.
func Default() Writer {
	if clipboard.Unsupported {
		return &Memory{}
	}
	return System{}
}
