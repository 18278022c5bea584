package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldChoice
	fieldArea
)

// option is a choice value with its display label.
type option struct {
	Value string
	Label string
}

// formField is one labelled input of a fieldSet.
type formField struct {
	id      string
	label   string
	kind    fieldKind
	input   textinput.Model
	area    textarea.Model
	options []option
	choice  int
}

func textField(id, label, placeholder string) *formField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 512
	ti.Width = 48
	return &formField{id: id, label: label, kind: fieldText, input: ti}
}

func areaField(id, label, placeholder string) *formField {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(60)
	ta.SetHeight(6)
	return &formField{id: id, label: label, kind: fieldArea, area: ta}
}

func choiceField(id, label string, options ...option) *formField {
	return &formField{id: id, label: label, kind: fieldChoice, options: options}
}

func (f *formField) value() string {
	switch f.kind {
	case fieldChoice:
		if f.choice >= 0 && f.choice < len(f.options) {
			return f.options[f.choice].Value
		}
		return ""
	case fieldArea:
		return f.area.Value()
	default:
		return f.input.Value()
	}
}

// setValue writes v. A choice field keeps v as an extra option when it is
// not one of the known values, so imported data is never dropped.
func (f *formField) setValue(v string) {
	switch f.kind {
	case fieldChoice:
		for i, o := range f.options {
			if strings.EqualFold(o.Value, v) || strings.EqualFold(o.Label, v) {
				f.choice = i
				return
			}
		}
		if v == "" {
			f.choice = 0
			return
		}
		f.options = append(f.options, option{Value: v, Label: v})
		f.choice = len(f.options) - 1
	case fieldArea:
		f.area.SetValue(v)
	default:
		f.input.SetValue(v)
	}
}

func (f *formField) cycle(delta int) {
	if n := len(f.options); n > 0 {
		f.choice = ((f.choice+delta)%n + n) % n
	}
}

func (f *formField) focus() tea.Cmd {
	switch f.kind {
	case fieldArea:
		return f.area.Focus()
	case fieldText:
		return f.input.Focus()
	}
	return nil
}

func (f *formField) blur() {
	f.input.Blur()
	f.area.Blur()
}

// fieldSet is a group of form fields with focus rotation. Outside a modal
// it has a navigation mode and an editing mode (enter or i to edit, esc to
// leave); inside a modal the focused text field always takes input.
type fieldSet struct {
	fields  []*formField
	focus   *FocusManager
	editing bool
	modal   bool
	errs    map[string]string
}

func newFieldSet(modal bool, fields ...*formField) *fieldSet {
	ids := make([]string, len(fields))
	for i, f := range fields {
		ids[i] = f.id
	}
	s := &fieldSet{fields: fields, focus: NewFocusManager(ids...), modal: modal, errs: map[string]string{}}
	s.focus.OnChange = func(from, to string) {
		if f := s.field(from); f != nil {
			f.blur()
		}
	}
	if modal {
		s.syncFocus()
	}
	return s
}

func (s *fieldSet) field(id string) *formField {
	for _, f := range s.fields {
		if f.id == id {
			return f
		}
	}
	return nil
}

func (s *fieldSet) current() *formField {
	return s.field(s.focus.Current)
}

// Value returns the value of field id.
func (s *fieldSet) Value(id string) string {
	if f := s.field(id); f != nil {
		return f.value()
	}
	return ""
}

// SetValue writes the value of field id.
func (s *fieldSet) SetValue(id, v string) {
	if f := s.field(id); f != nil {
		f.setValue(v)
	}
}

// SetError attaches a validation message to a field and focuses it.
func (s *fieldSet) SetError(id, msg string) {
	s.errs = map[string]string{id: msg}
	s.focus.SetFocus(id)
	s.syncFocus()
}

func (s *fieldSet) ClearErrors() { s.errs = map[string]string{} }

// Reset empties every field and focuses the first one.
func (s *fieldSet) Reset() {
	for _, f := range s.fields {
		f.setValue("")
		f.blur()
	}
	s.editing = false
	s.ClearErrors()
	if len(s.focus.Order) > 0 {
		s.focus.SetFocus(s.focus.Order[0])
	}
	s.syncFocus()
}

// Capturing reports whether keys go straight to a text input.
func (s *fieldSet) Capturing() bool {
	if s.modal {
		f := s.current()
		return f != nil && f.kind != fieldChoice
	}
	return s.editing
}

func (s *fieldSet) syncFocus() tea.Cmd {
	f := s.current()
	if f == nil {
		return nil
	}
	if s.modal || s.editing {
		return f.focus()
	}
	f.blur()
	return nil
}

func (s *fieldSet) move(delta int) tea.Cmd {
	if delta > 0 {
		s.focus.Next()
	} else {
		s.focus.Prev()
	}
	if !s.modal {
		s.editing = false
	}
	return s.syncFocus()
}

// Update handles a message for the focused field. handled is false for
// keys the owner should interpret (esc in a modal, unbound keys while navigating).
func (s *fieldSet) Update(msg tea.Msg) (handled bool, cmd tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, s.updateFocused(msg)
	}
	f := s.current()
	if f == nil {
		return false, nil
	}
	k := km.String()

	switch k {
	case "tab":
		return true, s.move(1)
	case "shift+tab":
		return true, s.move(-1)
	}

	if s.Capturing() {
		switch {
		case k == "esc" && !s.modal:
			s.editing = false
			f.blur()
			return true, nil
		case k == "esc":
			return false, nil
		case k == "enter" && f.kind == fieldText:
			return true, s.move(1)
		case (k == "up" || k == "down") && f.kind == fieldText:
			if k == "up" {
				return true, s.move(-1)
			}
			return true, s.move(1)
		}
		delete(s.errs, f.id)
		return true, s.updateFocused(msg)
	}

	switch k {
	case "down", "j":
		return true, s.move(1)
	case "up", "k":
		return true, s.move(-1)
	case "left", "h":
		if f.kind == fieldChoice {
			f.cycle(-1)
			return true, nil
		}
	case "right", "l":
		if f.kind == fieldChoice {
			f.cycle(1)
			return true, nil
		}
	case "enter", "i":
		if f.kind == fieldChoice {
			if k == "enter" {
				f.cycle(1)
				return true, nil
			}
			return false, nil
		}
		if !s.modal {
			s.editing = true
			return true, f.focus()
		}
	}
	return false, nil
}

func (s *fieldSet) updateFocused(msg tea.Msg) tea.Cmd {
	f := s.current()
	if f == nil {
		return nil
	}
	var cmd tea.Cmd
	switch f.kind {
	case fieldText:
		f.input, cmd = f.input.Update(msg)
	case fieldArea:
		f.area, cmd = f.area.Update(msg)
	}
	return cmd
}

// SetWidth resizes text inputs and the text area.
func (s *fieldSet) SetWidth(w int) {
	w -= Styles.Label.GetWidth() + 4
	if w < 20 {
		w = 20
	}
	for _, f := range s.fields {
		f.input.Width = w
		f.area.SetWidth(w)
	}
}

// View renders one row per field with the focused label highlighted.
func (s *fieldSet) View() string {
	var b strings.Builder
	for i, f := range s.fields {
		focused := f.id == s.focus.Current
		label := Styles.Label.Render(f.label)
		marker := "  "
		if focused {
			label = Styles.Label.Foreground(lipgloss.Color(ColorHighlight)).Bold(true).Render(f.label)
			marker = Styles.Selected.Render("▸ ")
		}
		var val string
		switch f.kind {
		case fieldChoice:
			lbl := ""
			if f.choice < len(f.options) {
				lbl = f.options[f.choice].Label
			}
			if focused {
				val = Styles.Selected.Render("‹ " + lbl + " ›")
			} else {
				val = Styles.Value.Render(lbl)
			}
		case fieldArea:
			val = "\n" + f.area.View()
		default:
			if !focused && f.input.Value() == "" {
				val = Styles.Empty.Render(f.input.Placeholder)
			} else {
				val = f.input.View()
			}
		}
		b.WriteString(marker + label + val)
		if msg, ok := s.errs[f.id]; ok {
			b.WriteString("\n  " + Styles.Error.Render(msg))
		}
		if i < len(s.fields)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
