package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"dalil/internal/domain"
	"dalil/internal/signal"
	"dalil/internal/ui/textutil"
)

const (
	tabForm = iota
	tabEnrich
	tabSaved
)

// actionItem is a row of the enrichment tab.
type actionItem struct {
	title, desc string
	run         func() tea.Cmd
}

func (a actionItem) FilterValue() string { return a.title }
func (a actionItem) Title() string       { return a.title }
func (a actionItem) Description() string { return a.desc }

// textItem is a saved text in the "Enregistrés" tab.
type textItem struct {
	domain.LegalText
}

func (t textItem) FilterValue() string { return t.LegalText.Title() }
func (t textItem) Title() string       { return t.LegalText.Title() }
func (t textItem) Description() string {
	d := t.Draft
	parts := []string{}
	for _, v := range []string{d.Get(domain.FieldType), d.Get(domain.FieldReference), t.CreatedAt.Format("02/01/2006")} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " · ")
}

// TextSectionView is the legal-texts or procedures section: a manual form,
// an enrichment tab of import and AI actions, and the list of saved texts.
type TextSectionView struct {
	Form    *FormView
	Tab     int
	actions list.Model
	saved   list.Model
	texts   []domain.LegalText
	subs    subscriptions
}

var (
	_ View     = (*TextSectionView)(nil)
	_ Mounter  = (*TextSectionView)(nil)
	_ Capturer = (*TextSectionView)(nil)
)

// NewTextSectionView creates the section for kind.
func NewTextSectionView(kind domain.TextKind) *TextSectionView {
	v := &TextSectionView{Form: NewFormView(kind)}

	al := list.New(v.actionItems(), NewDescribedListDelegate(), 60, 14)
	al.SetShowTitle(false)
	al.SetShowStatusBar(false)
	al.SetFilteringEnabled(false)
	al.SetShowHelp(false)
	al.DisableQuitKeybindings()
	v.actions = al

	sl := list.New(nil, NewDescribedListDelegate(), 60, 14)
	sl.SetShowTitle(false)
	sl.SetShowStatusBar(false)
	sl.SetShowHelp(false)
	sl.DisableQuitKeybindings()
	sl.SetStatusBarItemName("texte", "textes")
	v.saved = sl
	return v
}

func (v *TextSectionView) kind() domain.TextKind { return v.Form.Kind }

func (v *TextSectionView) tabLabels() []string {
	if v.kind() == domain.KindProcedure {
		return []string{"Nouvelle procédure", "Enrichissement", "Enregistrées"}
	}
	return []string{"Nouveau texte", "Enrichissement", "Enregistrés"}
}

func openModal(kind signal.ModalKind, title string, data signal.ModalData) tea.Cmd {
	return func() tea.Msg {
		return EmitSignalMsg{Signal: signal.OpenModal{Modal: kind, Title: title, Data: data}}
	}
}

func (v *TextSectionView) actionItems() []list.Item {
	ctx := v.Form.Context()
	toForm := func() tea.Cmd {
		v.Tab = tabForm
		return nil
	}
	newLabel, newDesc := "Nouveau texte", "Saisie manuelle d'un texte juridique"
	importTitle := "Importer des textes juridiques"
	if v.kind() == domain.KindProcedure {
		newLabel, newDesc = "Nouvelle procédure", "Saisie manuelle d'une procédure administrative"
		importTitle = "Importer des procédures"
	}
	return []list.Item{
		actionItem{newLabel, newDesc, toForm},
		actionItem{"Numériser un document", "Coller le texte d'un document numérisé",
			func() tea.Cmd {
				return openModal(signal.ModalExtraction, "Numériser un document",
					signal.ModalData{Feature: "scan", Context: ctx})
			}},
		actionItem{"Importer un fichier", "CSV (une ligne par texte) ou document .txt/.md",
			func() tea.Cmd {
				return openModal(signal.ModalImport, importTitle,
					signal.ModalData{Feature: "file-import", Context: ctx, AcceptedTypes: []string{".csv", ".txt", ".md"}})
			}},
		actionItem{"Remplissage automatique", "Générer le contenu à partir d'une référence",
			func() tea.Cmd {
				return openModal(signal.ModalAIGeneration, "Remplissage automatique",
					signal.ModalData{Feature: "auto-fill", Context: ctx})
			}},
		actionItem{"Extraction automatique", "Extraire les champs d'un texte existant",
			func() tea.Cmd {
				return openModal(signal.ModalExtraction, "Extraction automatique",
					signal.ModalData{Feature: "extraction", Context: ctx})
			}},
	}
}

// SetTexts replaces the saved list.
func (v *TextSectionView) SetTexts(texts []domain.LegalText) {
	v.texts = texts
	items := make([]list.Item, len(texts))
	for i, t := range texts {
		items[i] = textItem{t}
	}
	v.saved.SetItems(items)
}

// AddText prepends a freshly saved text.
func (v *TextSectionView) AddText(t domain.LegalText) {
	v.SetTexts(append([]domain.LegalText{t}, v.texts...))
}

// Texts returns the saved texts, newest first.
func (v *TextSectionView) Texts() []domain.LegalText { return v.texts }

// Mount implements Mounter.
func (v *TextSectionView) Mount(bus *signal.Bus) {
	ctx := v.Form.Context()
	v.subs.add(signal.On(bus, func(s signal.ContentGenerated) {
		if s.Context != ctx {
			return
		}
		v.Form.ApplyGeneration(s.Result)
		v.Tab = tabForm
	}))
}

// Unmount implements Mounter.
func (v *TextSectionView) Unmount() { v.subs.release() }

// Capturing implements Capturer.
func (v *TextSectionView) Capturing() bool {
	switch v.Tab {
	case tabForm:
		return v.Form.Capturing()
	case tabSaved:
		return v.saved.FilterState() == list.Filtering
	}
	return false
}

// Init implements View.
func (v *TextSectionView) Init() tea.Cmd { return nil }

// Update implements View.
func (v *TextSectionView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.Form.SetWidth(msg.Width)
		v.actions.SetSize(msg.Width-4, msg.Height-8)
		v.saved.SetSize(msg.Width-4, msg.Height-8)
		return v, nil
	case FormActionMsg:
		return v, v.formAction(msg.Action)
	case tea.KeyMsg:
		if !v.Capturing() {
			switch msg.String() {
			case "]":
				v.Tab = (v.Tab + 1) % 3
				return v, nil
			case "[":
				v.Tab = (v.Tab + 2) % 3
				return v, nil
			}
		}
		switch v.Tab {
		case tabEnrich:
			if msg.String() == "enter" {
				if it, ok := v.actions.SelectedItem().(actionItem); ok {
					return v, it.run()
				}
				return v, nil
			}
		case tabSaved:
			if v.saved.FilterState() == list.Filtering {
				break
			}
			if cmd, ok := v.savedKey(msg.String()); ok {
				return v, cmd
			}
		}
	}

	var cmd tea.Cmd
	switch v.Tab {
	case tabForm:
		_, cmd = v.Form.Update(msg)
	case tabEnrich:
		v.actions, cmd = v.actions.Update(msg)
	case tabSaved:
		v.saved, cmd = v.saved.Update(msg)
	}
	return v, cmd
}

func (v *TextSectionView) savedKey(k string) (tea.Cmd, bool) {
	it, ok := v.saved.SelectedItem().(textItem)
	if !ok {
		return nil, false
	}
	kind := v.kind()
	switch k {
	case "enter", "p":
		return func() tea.Msg { return PreviewTextMsg{Kind: kind, Draft: it.Draft} }, true
	case "x":
		return func() tea.Msg { return ExportTextMsg{Kind: kind, Draft: it.Draft} }, true
	case "y":
		return func() tea.Msg { return CopyMsg{Text: it.Draft.Get(domain.FieldContent), Label: it.LegalText.Title()} }, true
	case "o":
		v.Form.SetDraft(it.Draft)
		v.Tab = tabForm
		return nil, true
	}
	return nil, false
}

func (v *TextSectionView) formAction(a formAction) tea.Cmd {
	kind := v.kind()
	switch a {
	case formSave:
		v.Tab = tabForm
		return v.Form.Submit()
	case formExport:
		d := v.Form.Draft()
		return func() tea.Msg { return ExportTextMsg{Kind: kind, Draft: d} }
	case formPreview:
		d := v.Form.Draft()
		return func() tea.Msg { return PreviewTextMsg{Kind: kind, Draft: d} }
	case formReset:
		return func() tea.Msg { return ConfirmResetMsg{Kind: kind} }
	case formToggleInput:
		return openModal(signal.ModalExtraction, "Numériser un document",
			signal.ModalData{Feature: "scan", Context: v.Form.Context()})
	}
	return nil
}

// View implements View.
func (v *TextSectionView) View() string {
	var b strings.Builder
	b.WriteString(tabs(v.tabLabels(), v.Tab) + "\n\n")
	switch v.Tab {
	case tabForm:
		b.WriteString(v.Form.View())
	case tabEnrich:
		b.WriteString(v.actions.View())
		b.WriteString("\n" + Styles.Hint.Render("enter: lancer  [ ]: onglet"))
	case tabSaved:
		if len(v.texts) == 0 {
			b.WriteString(Styles.Empty.Render("Aucun élément enregistré.") + "\n")
		} else {
			b.WriteString(Styles.Muted.Render(fmt.Sprintf("%d enregistré(s)", len(v.texts))) + "\n")
			b.WriteString(v.saved.View())
		}
		b.WriteString("\n" + Styles.Hint.Render("enter: aperçu  o: ouvrir  x: exporter  y: copier  /: filtrer  [ ]: onglet"))
	}
	return b.String()
}

// summaryLine is a one-line preview used by the dashboard and the assistant.
func summaryLine(t domain.LegalText, width int) string {
	return textutil.Truncate(t.Title(), width)
}
