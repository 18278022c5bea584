package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"dalil/internal/domain"
)

var statusOptions = []option{
	{domain.StatusDraft, "Brouillon"},
	{domain.StatusPublished, "Publié"},
	{domain.StatusArchived, "Archivé"},
}

var procedureTypes = []option{
	{"Demande", "Demande"},
	{"Déclaration", "Déclaration"},
	{"Autorisation", "Autorisation"},
	{"Certificat", "Certificat"},
	{"Inscription", "Inscription"},
}

func legalTypes() []option {
	out := make([]option, len(domain.DocumentTypes))
	for i, t := range domain.DocumentTypes {
		out[i] = option{t.Label(), t.Label()}
	}
	return out
}

// formOrder is the on-screen order; content comes last because it is the tall one.
var formOrder = []domain.Field{
	domain.FieldTitle, domain.FieldType, domain.FieldDomain, domain.FieldReference,
	domain.FieldDate, domain.FieldSource, domain.FieldKeywords, domain.FieldDescription,
	domain.FieldStatus, domain.FieldContent,
}

// FormView is the manual-entry form for a legal text or a procedure.
type FormView struct {
	Kind   domain.TextKind
	fields *fieldSet
	notice string
}

var _ View = (*FormView)(nil)

// NewFormView creates an empty form for kind.
func NewFormView(kind domain.TextKind) *FormView {
	types := legalTypes()
	if kind == domain.KindProcedure {
		types = procedureTypes
	}
	fields := make([]*formField, 0, len(formOrder))
	for _, f := range formOrder {
		id, label := f.String(), f.Label()
		switch f {
		case domain.FieldType:
			fields = append(fields, choiceField(id, label, types...))
		case domain.FieldStatus:
			fields = append(fields, choiceField(id, label, statusOptions...))
		case domain.FieldContent:
			fields = append(fields, areaField(id, label, "Texte intégral"))
		case domain.FieldDate:
			fields = append(fields, textField(id, label, "jj/mm/aaaa"))
		case domain.FieldKeywords:
			fields = append(fields, textField(id, label, "séparés par des virgules"))
		default:
			fields = append(fields, textField(id, label, ""))
		}
	}
	return &FormView{Kind: kind, fields: newFieldSet(false, fields...)}
}

// Context is the generation context matching the form kind.
func (f *FormView) Context() domain.ContextTag {
	if f.Kind == domain.KindProcedure {
		return domain.ContextProcedures
	}
	return domain.ContextLegalTexts
}

// Draft reads the current field values.
func (f *FormView) Draft() domain.FormDraft {
	var d domain.FormDraft
	for _, fld := range domain.AllFields() {
		d = d.Set(fld, f.fields.Value(fld.String()))
	}
	return d
}

// SetDraft replaces every field with the values of d.
func (f *FormView) SetDraft(d domain.FormDraft) {
	for _, fld := range domain.AllFields() {
		f.fields.SetValue(fld.String(), d.Get(fld))
	}
}

// Merge copies the non-empty fields of partial into the form.
func (f *FormView) Merge(partial domain.FormDraft) {
	f.SetDraft(f.Draft().Merge(partial))
	f.fields.ClearErrors()
}

// ApplyGeneration fills the form from an accepted auto-fill result.
func (f *FormView) ApplyGeneration(r domain.GenerationResult) {
	f.SetDraft(f.Draft().ApplyGeneration(r))
	f.fields.ClearErrors()
	f.notice = "Contenu généré appliqué au formulaire."
}

// Reset clears the form back to a new draft.
func (f *FormView) Reset() {
	f.fields.Reset()
	f.SetDraft(domain.NewFormDraft())
	f.notice = ""
}

// Saved is called after the draft was stored.
func (f *FormView) Saved(t domain.LegalText) {
	f.Reset()
	f.notice = "Enregistré : " + t.Title()
}

// Submit validates the draft and returns the save command, or nil with the
// error shown next to the offending field.
func (f *FormView) Submit() tea.Cmd {
	d := f.Draft()
	if err := d.Validate(); err != nil {
		var field string
		if de := asDomainError(err); de != nil {
			field = de.Field
		}
		if field == "" {
			field = domain.FieldTitle.String()
		}
		f.fields.SetError(field, domain.UserMessage(err))
		f.notice = ""
		return nil
	}
	f.fields.ClearErrors()
	kind := f.Kind
	return func() tea.Msg { return SubmitTextMsg{Kind: kind, Draft: d, FromForm: true} }
}

// Capturing implements Capturer.
func (f *FormView) Capturing() bool { return f.fields.Capturing() }

// SetWidth resizes the inputs.
func (f *FormView) SetWidth(w int) { f.fields.SetWidth(w) }

// Init implements View.
func (f *FormView) Init() tea.Cmd { return nil }

// Update implements View.
func (f *FormView) Update(msg tea.Msg) (View, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+s" {
		return f, f.Submit()
	}
	_, cmd := f.fields.Update(msg)
	return f, cmd
}

// View implements View.
func (f *FormView) View() string {
	var b strings.Builder
	b.WriteString(f.fields.View())
	b.WriteString("\n\n")
	if f.notice != "" {
		b.WriteString(Styles.Success.Render(f.notice) + "\n")
	}
	hint := "enter/i: éditer  tab/j/k: champ  ←/→: choix  ctrl+s: enregistrer  SPC f: formulaire"
	if f.fields.editing {
		hint = "esc: terminer  tab: champ suivant  ctrl+s: enregistrer"
	}
	b.WriteString(Styles.Hint.Render(hint))
	return b.String()
}
