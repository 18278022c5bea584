package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"dalil/internal/domain"
	"dalil/internal/extract"
)

// ExtractionModal takes pasted scan or OCR text and fills the form of its
// context with the extracted fields.
type ExtractionModal struct {
	Title     string
	Context   domain.ContextTag
	extractor extract.Extractor
	area      textarea.Model
	err       string
}

var (
	_ View     = (*ExtractionModal)(nil)
	_ Capturer = (*ExtractionModal)(nil)
)

// NewExtractionModal creates the modal. A nil extractor copies the raw text
// into the content field only.
func NewExtractionModal(title string, ctx domain.ContextTag, ex extract.Extractor) *ExtractionModal {
	ta := textarea.New()
	ta.Placeholder = "Collez ici le texte numérisé…"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(64)
	ta.SetHeight(10)
	ta.Focus()
	return &ExtractionModal{Title: title, Context: ctx, extractor: ex, area: ta}
}

// SetText replaces the pasted text.
func (m *ExtractionModal) SetText(s string) { m.area.SetValue(s) }

// Capturing implements Capturer.
func (m *ExtractionModal) Capturing() bool { return true }

// Init implements View.
func (m *ExtractionModal) Init() tea.Cmd { return textarea.Blink }

// Update implements View.
func (m *ExtractionModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			return m, dismiss
		case "ctrl+s", "ctrl+e":
			raw := m.area.Value()
			if strings.TrimSpace(raw) == "" {
				m.err = "Aucun texte à analyser."
				return m, nil
			}
			d := extract.Fill(raw, m.extractor)
			ctx := m.Context
			return m, tea.Sequence(
				func() tea.Msg { return ScanResultMsg{Draft: d, Context: ctx} },
				dismiss,
			)
		}
	}
	m.err = ""
	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	return m, cmd
}

// View implements View.
func (m *ExtractionModal) View() string {
	content := ModalStyles.Title.Render(m.Title) + "  " + Styles.Muted.Render(m.Context.Label()) + "\n\n"
	content += m.area.View()
	if m.err != "" {
		content += "\n" + Styles.Error.Render(m.err)
	}
	mode := "extraction des champs"
	if m.extractor == nil {
		mode = "texte brut dans le contenu"
	}
	content += "\n\n" + ModalStyles.Help.Render("ctrl+s: extraire ("+mode+")  esc: annuler")
	return ModalStyles.BoxDefault.Render(content)
}
