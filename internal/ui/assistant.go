package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"dalil/internal/domain"
	"dalil/internal/signal"
)

// AssistantView is the AI assistant section: a question box answered from the
// local index, and the general-context auto-fill wizard. The last accepted
// generation can be saved as a legal text or copied.
type AssistantView struct {
	box  searchBox
	Last *domain.GenerationResult
	subs subscriptions
}

var (
	_ View     = (*AssistantView)(nil)
	_ Mounter  = (*AssistantView)(nil)
	_ Capturer = (*AssistantView)(nil)
)

// NewAssistantView creates the section.
func NewAssistantView() *AssistantView {
	return &AssistantView{box: newSearchBox("Posez votre question juridique…")}
}

// Mount implements Mounter.
func (v *AssistantView) Mount(bus *signal.Bus) {
	v.subs.add(signal.On(bus, func(s signal.ContentGenerated) {
		if s.Context != domain.ContextGeneral {
			return
		}
		r := s.Result
		v.Last = &r
	}))
}

// Unmount implements Mounter.
func (v *AssistantView) Unmount() { v.subs.release() }

// Capturing implements Capturer.
func (v *AssistantView) Capturing() bool { return v.box.Focused() }

// Init implements View.
func (v *AssistantView) Init() tea.Cmd { return nil }

// Update implements View.
func (v *AssistantView) Update(msg tea.Msg) (View, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	if v.box.Focused() {
		return v, v.box.Update(msg)
	}
	switch km.String() {
	case "/", "i":
		return v, v.box.Focus()
	case "down", "j":
		v.box.Move(1)
	case "up", "k":
		v.box.Move(-1)
	case "enter":
		return v, v.box.Open()
	case "g":
		return v, openModal(signal.ModalAIGeneration, "Assistant IA", signal.ModalData{Feature: "assistant", Context: domain.ContextGeneral})
	case "s":
		if v.Last != nil {
			d := domain.NewFormDraft().ApplyGeneration(*v.Last)
			return v, func() tea.Msg { return SubmitTextMsg{Kind: domain.KindLegalText, Draft: d} }
		}
	case "c", "y":
		if v.Last != nil {
			r := *v.Last
			return v, func() tea.Msg { return CopyMsg{Text: r.FullContent, Label: r.Title} }
		}
	}
	return v, nil
}

// View implements View.
func (v *AssistantView) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render("Assistant IA") + "\n")
	b.WriteString(Styles.Muted.Render("Recherchez dans les textes, procédures, annuaires et tendances, ou générez un document.") + "\n\n")
	b.WriteString(v.box.View(72) + "\n\n")
	if v.Last != nil {
		b.WriteString(Styles.Subtitle.Render("Dernière génération") + "\n")
		b.WriteString(Styles.Box.Render(renderResult(*v.Last, 64)) + "\n")
		b.WriteString(Styles.Hint.Render("s: enregistrer comme texte juridique  c: copier") + "\n")
	}
	b.WriteString(Styles.Hint.Render("/: question  enter: ouvrir le résultat  g: générer un document"))
	return b.String()
}
