package ui

// FocusManager tracks and rotates focus across form fields.
type FocusManager struct {
	Current  string   // ID of the focused field
	Order    []string // Tab order for focus rotation
	OnChange func(from, to string)
}

// NewFocusManager focuses the first id of order.
func NewFocusManager(order ...string) *FocusManager {
	f := &FocusManager{Order: order}
	if len(order) > 0 {
		f.Current = order[0]
	}
	return f
}

// Index returns the position of the focused id in Order, or -1.
func (f *FocusManager) Index() int {
	for i, id := range f.Order {
		if id == f.Current {
			return i
		}
	}
	return -1
}

// Next advances focus to the next field, wrapping around.
// Returns the new current focus ID.
func (f *FocusManager) Next() string {
	return f.move(1)
}

// Prev moves focus to the previous field, wrapping around.
func (f *FocusManager) Prev() string {
	return f.move(-1)
}

func (f *FocusManager) move(delta int) string {
	if len(f.Order) == 0 {
		return ""
	}
	idx := f.Index()
	n := len(f.Order)
	next := ((idx+delta)%n + n) % n
	if idx < 0 && delta < 0 {
		next = n - 1
	}
	f.set(f.Order[next])
	return f.Current
}

// SetFocus sets focus to the given field ID.
// Returns true if the ID exists in order.
func (f *FocusManager) SetFocus(id string) bool {
	for _, o := range f.Order {
		if o == id {
			f.set(id)
			return true
		}
	}
	return false
}

func (f *FocusManager) set(id string) {
	from := f.Current
	f.Current = id
	if f.OnChange != nil && from != id {
		f.OnChange(from, id)
	}
}
