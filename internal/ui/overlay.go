package ui

import tea "github.com/charmbracelet/bubbletea"

// Overlay is a modal on the stack.
type Overlay struct {
	View    View
	Dismiss string // Key that dismisses (e.g. "esc"); empty means the modal handles it
}

// IsDismissKey returns true if the given key string should dismiss this overlay.
func (o *Overlay) IsDismissKey(key string) bool {
	return o.Dismiss != "" && key == o.Dismiss
}

// OverlayStack manages a stack of overlays (topmost receives input first).
type OverlayStack struct {
	Stack []Overlay
}

// Push adds an overlay to the top of the stack.
func (s *OverlayStack) Push(o Overlay) {
	s.Stack = append(s.Stack, o)
}

// Pop removes and returns the top overlay.
func (s *OverlayStack) Pop() (Overlay, bool) {
	if len(s.Stack) == 0 {
		return Overlay{}, false
	}
	top := s.Stack[len(s.Stack)-1]
	s.Stack = s.Stack[:len(s.Stack)-1]
	return top, true
}

// Peek returns the top overlay without removing it.
func (s *OverlayStack) Peek() (Overlay, bool) {
	if len(s.Stack) == 0 {
		return Overlay{}, false
	}
	return s.Stack[len(s.Stack)-1], true
}

// Len returns the number of overlays in the stack.
func (s *OverlayStack) Len() int {
	return len(s.Stack)
}

// Find returns the topmost overlay whose view satisfies match.
func (s *OverlayStack) Find(match func(View) bool) (int, bool) {
	for i := len(s.Stack) - 1; i >= 0; i-- {
		if match(s.Stack[i].View) {
			return i, true
		}
	}
	return -1, false
}

// UpdateAt passes msg to the overlay at index i and stores the returned view.
func (s *OverlayStack) UpdateAt(i int, msg tea.Msg) tea.Cmd {
	if i < 0 || i >= len(s.Stack) {
		return nil
	}
	v, cmd := s.Stack[i].View.Update(msg)
	s.Stack[i].View = v
	return cmd
}

// UpdateTop passes msg to the top overlay's Update and replaces its View with the result.
// Returns the cmd from the overlay's Update. Caller must run the cmd.
func (s *OverlayStack) UpdateTop(msg tea.Msg) (tea.Cmd, bool) {
	if len(s.Stack) == 0 {
		return nil, false
	}
	return s.UpdateAt(len(s.Stack)-1, msg), true
}
