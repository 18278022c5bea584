package domain

import (
	"strings"
	"time"
)

// Field names a FormDraft field.
type Field int

const (
	FieldTitle Field = iota
	FieldType
	FieldDomain
	FieldReference
	FieldDate
	FieldContent
	FieldSource
	FieldKeywords
	FieldDescription
	FieldStatus
	fieldCount
)

var fieldNames = [fieldCount]string{
	"title", "type", "domain", "reference", "date",
	"content", "source", "keywords", "description", "status",
}

// Field labels shown in the form, in French like the rest of the platform.
var fieldLabels = [fieldCount]string{
	"Titre", "Type", "Domaine", "Référence", "Date",
	"Contenu", "Source", "Mots-clés", "Description", "Statut",
}

func (f Field) String() string {
	if !f.valid() {
		return "unknown"
	}
	return fieldNames[f]
}

// Label returns the display label for the field.
func (f Field) Label() string {
	if !f.valid() {
		return ""
	}
	return fieldLabels[f]
}

func (f Field) valid() bool { return f >= 0 && f < fieldCount }

// ParseField maps a field name ("title", "content", ...) to a Field.
func ParseField(name string) (Field, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range fieldNames {
		if n == name {
			return Field(i), true
		}
	}
	return 0, false
}

// AllFields returns every field in canonical order.
func AllFields() []Field {
	out := make([]Field, fieldCount)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

// Draft statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// FormDraft is the in-progress, unsaved field set for a manually entered
// legal text or procedure. It is a value type: Set and Merge return copies.
type FormDraft struct {
	values [fieldCount]string
}

// NewFormDraft returns an empty draft with status "draft".
func NewFormDraft() FormDraft {
	return FormDraft{}.Set(FieldStatus, StatusDraft)
}

// Get returns the value of f ("" for unknown fields).
func (d FormDraft) Get(f Field) string {
	if !f.valid() {
		return ""
	}
	return d.values[f]
}

// Set returns a copy of d with f replaced by value. Unknown fields are ignored.
func (d FormDraft) Set(f Field, value string) FormDraft {
	if !f.valid() {
		return d
	}
	d.values[f] = value
	return d
}

// FieldUpdate is a single field write.
type FieldUpdate struct {
	Field Field
	Value string
}

// Apply folds updates into d left to right; the last write per field wins.
func (d FormDraft) Apply(updates ...FieldUpdate) FormDraft {
	for _, u := range updates {
		d = d.Set(u.Field, u.Value)
	}
	return d
}

// Merge returns d with every non-empty field of partial copied over.
func (d FormDraft) Merge(partial FormDraft) FormDraft {
	for i, v := range partial.values {
		if v != "" {
			d.values[i] = v
		}
	}
	return d
}

// IsEmpty reports whether every field is empty.
func (d FormDraft) IsEmpty() bool {
	for _, v := range d.values {
		if v != "" {
			return false
		}
	}
	return true
}

// Map returns the draft as a field-name keyed map. Empty fields are included.
func (d FormDraft) Map() map[string]string {
	m := make(map[string]string, fieldCount)
	for i, v := range d.values {
		m[fieldNames[i]] = v
	}
	return m
}

// FormDraftFromMap builds a draft from a field-name keyed map, ignoring unknown keys.
func FormDraftFromMap(m map[string]string) FormDraft {
	var d FormDraft
	for k, v := range m {
		if f, ok := ParseField(k); ok {
			d = d.Set(f, v)
		}
	}
	return d
}

// KeywordList splits the keywords field on commas, trimming blanks.
func (d FormDraft) KeywordList() []string {
	return SplitKeywords(d.Get(FieldKeywords))
}

// Validate checks the fields a submit requires. Only the title is required.
func (d FormDraft) Validate() error {
	if strings.TrimSpace(d.Get(FieldTitle)) == "" {
		return &Error{
			Op:    "draft.validate",
			Kind:  KindValidation,
			Field: FieldTitle.String(),
			Msg:   "Veuillez saisir un titre avant d'enregistrer.",
			Err:   ErrRequired,
		}
	}
	return nil
}

// ApplyGeneration copies a generation result into the matching draft fields.
func (d FormDraft) ApplyGeneration(r GenerationResult) FormDraft {
	return d.Apply(
		FieldUpdate{FieldTitle, r.Title},
		FieldUpdate{FieldDescription, r.Summary},
		FieldUpdate{FieldKeywords, strings.Join(r.Keywords, ", ")},
		FieldUpdate{FieldDomain, r.Category},
		FieldUpdate{FieldContent, r.FullContent},
	)
}

// SplitKeywords splits a comma separated keyword string.
func SplitKeywords(s string) []string {
	var out []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// TextKind distinguishes legal texts from administrative procedures.
type TextKind string

const (
	KindLegalText TextKind = "legal-text"
	KindProcedure TextKind = "procedure"
)

// LegalText is a submitted FormDraft.
type LegalText struct {
	ID        string
	Kind      TextKind
	Draft     FormDraft
	CreatedAt time.Time
}

// Title is a shortcut for the draft title.
func (t LegalText) Title() string { return t.Draft.Get(FieldTitle) }
