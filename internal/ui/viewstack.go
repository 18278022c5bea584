package ui

// ViewStack is the section history used by "back" (SPC b).
// Consecutive duplicates are collapsed.
type ViewStack struct {
	Stack []AppMode
	Max   int // 0 = unbounded
}

// Push records a visited section.
func (s *ViewStack) Push(m AppMode) {
	if n := len(s.Stack); n > 0 && s.Stack[n-1] == m {
		return
	}
	s.Stack = append(s.Stack, m)
	if s.Max > 0 && len(s.Stack) > s.Max {
		s.Stack = s.Stack[len(s.Stack)-s.Max:]
	}
}

// Pop removes and returns the most recent section.
func (s *ViewStack) Pop() (AppMode, bool) {
	if len(s.Stack) == 0 {
		return ModeDashboard, false
	}
	top := s.Stack[len(s.Stack)-1]
	s.Stack = s.Stack[:len(s.Stack)-1]
	return top, true
}

// Peek returns the most recent section without removing it.
func (s *ViewStack) Peek() (AppMode, bool) {
	if len(s.Stack) == 0 {
		return ModeDashboard, false
	}
	return s.Stack[len(s.Stack)-1], true
}

// Len returns the number of entries in the history.
func (s *ViewStack) Len() int {
	return len(s.Stack)
}
