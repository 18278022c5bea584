package ui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// pickerItem is a choice in a PickerModal.
type pickerItem struct {
	label, hint string
	msg         tea.Msg
}

func (p pickerItem) FilterValue() string { return p.label }
func (p pickerItem) Title() string       { return p.label }
func (p pickerItem) Description() string { return p.hint }

// PickerModal lets the user pick one entry from a filterable list.
// Enter sends the chosen entry's message; Esc cancels.
type PickerModal struct {
	list list.Model
}

var (
	_ View     = (*PickerModal)(nil)
	_ Capturer = (*PickerModal)(nil)
)

func newPickerModal(title string, items []pickerItem) *PickerModal {
	li := make([]list.Item, len(items))
	for i, it := range items {
		li[i] = it
	}
	l := list.New(li, NewCompactListDelegate(), 40, 12)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccent))
	return &PickerModal{list: l}
}

// NewSectionSwitcherModal lists the console sections.
func NewSectionSwitcherModal(current AppMode) *PickerModal {
	items := make([]pickerItem, 0, len(Modes))
	for _, m := range Modes {
		hint := ""
		if m == current {
			hint = "actuel"
		}
		items = append(items, pickerItem{label: m.String(), hint: hint, msg: EmitSignalMsg{Signal: navigate(m)}})
	}
	p := newPickerModal("Aller à la section", items)
	p.list.Select(int(current))
	return p
}

// Capturing implements Capturer.
func (p *PickerModal) Capturing() bool { return p.list.FilterState() == list.Filtering }

// Init implements View.
func (p *PickerModal) Init() tea.Cmd { return nil }

// Update implements View.
func (p *PickerModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && p.list.FilterState() != list.Filtering {
		switch km.String() {
		case "esc":
			return p, dismiss
		case "enter":
			it, ok := p.list.SelectedItem().(pickerItem)
			if !ok {
				return p, nil
			}
			chosen := it.msg
			return p, tea.Sequence(dismiss, func() tea.Msg { return chosen })
		}
	}
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

// View implements View.
func (p *PickerModal) View() string {
	return ModalStyles.BoxCompact.Render(p.list.View() + "\n" + ModalStyles.Help.Render("enter: choisir  /: filtrer  esc: annuler"))
}
