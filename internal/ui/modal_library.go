package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"dalil/internal/domain"
)

// LibraryFormModal adds a directory entry to a category.
type LibraryFormModal struct {
	Category     domain.DirectoryCategory
	ResourceType string
	fields       *fieldSet
}

var (
	_ View     = (*LibraryFormModal)(nil)
	_ Capturer = (*LibraryFormModal)(nil)
)

// NewLibraryFormModal creates an empty entry form for cat.
func NewLibraryFormModal(resourceType string, cat domain.DirectoryCategory) *LibraryFormModal {
	return &LibraryFormModal{
		Category:     cat,
		ResourceType: resourceType,
		fields: newFieldSet(true,
			textField("name", "Nom", "obligatoire"),
			textField("type", "Type", "ex. Juridiction administrative"),
			textField("address", "Adresse", ""),
			textField("phone", "Téléphone", "+213 …"),
			textField("email", "Email", ""),
			textField("website", "Site web", "www.…"),
			textField("description", "Description", ""),
		),
	}
}

// Entry reads the form.
func (m *LibraryFormModal) Entry() domain.DirectoryEntry {
	v := m.fields.Value
	return domain.DirectoryEntry{
		Category:    m.Category,
		Name:        strings.TrimSpace(v("name")),
		Type:        v("type"),
		Address:     v("address"),
		Phone:       v("phone"),
		Email:       v("email"),
		Website:     v("website"),
		Description: v("description"),
	}
}

// Capturing implements Capturer.
func (m *LibraryFormModal) Capturing() bool { return m.fields.Capturing() }

// Init implements View.
func (m *LibraryFormModal) Init() tea.Cmd { return m.fields.syncFocus() }

// Update implements View.
func (m *LibraryFormModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			return m, dismiss
		case "ctrl+s":
			return m, m.submit()
		case "enter":
			if m.fields.focus.Current == "description" {
				return m, m.submit()
			}
		}
	}
	_, cmd := m.fields.Update(msg)
	return m, cmd
}

func (m *LibraryFormModal) submit() tea.Cmd {
	e := m.Entry()
	if e.Name == "" {
		m.fields.SetError("name", "Veuillez saisir un nom.")
		return nil
	}
	return tea.Sequence(
		func() tea.Msg { return SaveDirectoryEntriesMsg{Entries: []domain.DirectoryEntry{e}} },
		dismiss,
	)
}

// View implements View.
func (m *LibraryFormModal) View() string {
	content := ModalStyles.Title.Render("Ajouter à l'annuaire") + "  " + Styles.Muted.Render(m.Category.Label()) + "\n\n"
	content += m.fields.View()
	content += "\n\n" + ModalStyles.Help.Render("tab: champ  ctrl+s: enregistrer  esc: annuler")
	return ModalStyles.BoxDefault.Render(content)
}
