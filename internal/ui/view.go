package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"dalil/internal/domain"
	"dalil/internal/signal"
)

// View is the unit of composition; implements Bubble Tea's Init/Update/View.
// Each View represents a screen or major UI region with its own model, update, and view.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}

// Mounter is implemented by views that subscribe to the bus. Mount is called
// when the view becomes active and Unmount when it is replaced or popped, so
// no handler runs against a detached view.
type Mounter interface {
	Mount(bus *signal.Bus)
	Unmount()
}

// Capturer is implemented by views that can own raw key input (a text field
// being edited). While Capturing is true the leader key and single-key
// bindings are not applied.
type Capturer interface {
	Capturing() bool
}

// subscriptions collects unsubscribe funcs for Unmount.
type subscriptions []func()

func (s *subscriptions) add(unsub func()) {
	*s = append(*s, unsub)
}

func (s *subscriptions) release() {
	for _, u := range *s {
		u()
	}
	*s = nil
}

func capturing(v View) bool {
	c, ok := v.(Capturer)
	return ok && c.Capturing()
}

func asDomainError(err error) *domain.Error {
	var de *domain.Error
	if errors.As(err, &de) {
		return de
	}
	return nil
}
