// Package signal is the in-process notification bus views use to ask for
// actions owned by other views (navigate, open a modal, apply generated content).
//
// Delivery is synchronous and fire-and-forget. Every subscriber of a kind is
// invoked in registration order; a panicking handler is recovered and logged
// and the remaining handlers still run. Signals with no subscriber are dropped.
package signal

import "fmt"

// Kind is the closed set of signal kinds.
type Kind int

const (
	KindNavigate Kind = iota
	KindOpenModal
	KindContentGenerated
	KindOpenLibraryForm
)

func (k Kind) String() string {
	switch k {
	case KindNavigate:
		return "navigate-to-section"
	case KindOpenModal:
		return "open-modal"
	case KindContentGenerated:
		return "content-generated"
	case KindOpenLibraryForm:
		return "open-library-form"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Signal is a payload with a fixed kind. Only the payload types in this
// package implement it.
type Signal interface {
	Kind() Kind
	isSignal()
}
