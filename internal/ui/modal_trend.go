package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"dalil/internal/analytics"
	"dalil/internal/domain"
)

var priorityOptions = []option{
	{string(domain.PriorityMedium), "Moyenne"},
	{string(domain.PriorityHigh), "Haute"},
	{string(domain.PriorityLow), "Basse"},
}

// TrendFormModal is the "new trend" form of the watch tab.
type TrendFormModal struct {
	fields *fieldSet
}

var (
	_ View     = (*TrendFormModal)(nil)
	_ Capturer = (*TrendFormModal)(nil)
)

// NewTrendFormModal creates an empty trend form.
func NewTrendFormModal() *TrendFormModal {
	cats := []option{{"", "— choisir —"}}
	for _, c := range analytics.TrendCategories {
		cats = append(cats, option{c, c})
	}
	return &TrendFormModal{fields: newFieldSet(true,
		textField("title", "Titre", "obligatoire"),
		choiceField("category", "Catégorie", cats...),
		textField("description", "Description", ""),
		textField("keywords", "Mots-clés", "séparés par des virgules"),
		choiceField("priority", "Priorité", priorityOptions...),
	)}
}

// Input reads the form.
func (m *TrendFormModal) Input() analytics.NewTrend {
	v := m.fields.Value
	return analytics.NewTrend{
		Title:       v("title"),
		Category:    v("category"),
		Description: v("description"),
		Keywords:    v("keywords"),
		Priority:    domain.Priority(v("priority")),
	}
}

// ShowError attaches a validation message to a field.
func (m *TrendFormModal) ShowError(field, msg string) { m.fields.SetError(field, msg) }

// Capturing implements Capturer.
func (m *TrendFormModal) Capturing() bool { return m.fields.Capturing() }

// Init implements View.
func (m *TrendFormModal) Init() tea.Cmd { return m.fields.syncFocus() }

// Update implements View.
func (m *TrendFormModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			return m, dismiss
		case "ctrl+s":
			in := m.Input()
			return m, func() tea.Msg { return AddTrendMsg{Input: in} }
		}
	}
	_, cmd := m.fields.Update(msg)
	return m, cmd
}

// View implements View.
func (m *TrendFormModal) View() string {
	content := ModalStyles.Title.Render("Nouvelle tendance") + "\n\n"
	content += m.fields.View()
	content += "\n\n" + ModalStyles.Help.Render("tab: champ  ←/→: choix  ctrl+s: ajouter  esc: annuler")
	return ModalStyles.BoxDefault.Render(content)
}
