// Package ui is the Bubble Tea console: one view per section, modals on an
// overlay stack, and a spacemacs-style SPC leader for commands.
//
// Core abstractions:
//   - View: a screen or modal with its own model, update and view (Elm-style)
//   - Mounter: a view that listens on the signal bus while it is active
//   - OverlayStack: modals; the topmost one receives input first
//   - ViewStack: section history for "back" navigation
//   - FocusManager: tracks and rotates focus across form fields
//
// Views never call each other. They return EmitSignalMsg commands and the
// root model emits the signal on the bus from inside Update, so every
// subscriber runs on the program goroutine.
package ui
