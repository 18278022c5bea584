package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"dalil/internal/domain"
	"dalil/internal/export"
)

// PreviewWindow shows the Markdown export of a draft in a scrollable viewport.
type PreviewWindow struct {
	Title string
	Kind  domain.TextKind
	Draft domain.FormDraft
	vp    viewport.Model
}

var _ View = (*PreviewWindow)(nil)

// NewPreviewWindow renders d as it would be exported.
func NewPreviewWindow(kind domain.TextKind, d domain.FormDraft, width, height int) *PreviewWindow {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	vp := viewport.New(width-8, height-10)
	md := export.Markdown(domain.LegalText{Kind: kind, Draft: d})
	vp.SetContent(md)
	title := d.Get(domain.FieldTitle)
	if strings.TrimSpace(title) == "" {
		title = "Sans titre"
	}
	return &PreviewWindow{Title: title, Kind: kind, Draft: d, vp: vp}
}

// Init implements View.
func (w *PreviewWindow) Init() tea.Cmd { return nil }

// Update implements View.
func (w *PreviewWindow) Update(msg tea.Msg) (View, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc", "q":
			return w, dismiss
		case "x":
			kind, d := w.Kind, w.Draft
			return w, func() tea.Msg { return ExportTextMsg{Kind: kind, Draft: d} }
		case "y":
			md := export.Markdown(domain.LegalText{Kind: w.Kind, Draft: w.Draft})
			title := w.Title
			return w, func() tea.Msg { return CopyMsg{Text: md, Label: title} }
		}
	}
	var cmd tea.Cmd
	w.vp, cmd = w.vp.Update(msg)
	return w, cmd
}

// View implements View.
func (w *PreviewWindow) View() string {
	content := ModalStyles.Title.Render("Aperçu : "+w.Title) + "\n\n" + w.vp.View()
	content += "\n\n" + ModalStyles.Help.Render("j/k: défiler  x: exporter  y: copier le Markdown  esc: fermer")
	return ModalStyles.BoxDefault.Render(content)
}
