package domain

import "strings"

// ContextTag is the coarse context a generation runs in.
type ContextTag string

const (
	ContextLegalTexts ContextTag = "legal-texts"
	ContextProcedures ContextTag = "procedures"
	ContextGeneral    ContextTag = "general"
)

// ParseContext accepts the canonical tags plus the singular forms used by older screens.
// Unknown values map to ContextGeneral.
func ParseContext(s string) ContextTag {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "legal-texts", "legal-text", "legal":
		return ContextLegalTexts
	case "procedures", "procedure":
		return ContextProcedures
	default:
		return ContextGeneral
	}
}

// Label returns the French display label.
func (c ContextTag) Label() string {
	switch c {
	case ContextLegalTexts:
		return "Texte juridique"
	case ContextProcedures:
		return "Procédure administrative"
	default:
		return "Général"
	}
}

// DocumentType is the kind of legal instrument a generation targets.
type DocumentType string

const (
	DocLaw       DocumentType = "law"
	DocDecree    DocumentType = "decree"
	DocOrder     DocumentType = "order"
	DocOrdinance DocumentType = "ordinance"
	DocCircular  DocumentType = "circular"
	DocDecision  DocumentType = "decision"
)

// DocumentTypes lists the selectable document types in display order.
var DocumentTypes = []DocumentType{DocLaw, DocDecree, DocOrder, DocOrdinance, DocCircular, DocDecision}

// Label returns the French display label.
func (t DocumentType) Label() string {
	switch t {
	case DocLaw:
		return "Loi"
	case DocDecree:
		return "Décret"
	case DocOrder:
		return "Arrêté"
	case DocOrdinance:
		return "Ordonnance"
	case DocCircular:
		return "Circulaire"
	case DocDecision:
		return "Décision"
	default:
		return "Document"
	}
}

// GenerationResult is the output of the auto-fill feature.
type GenerationResult struct {
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	Keywords    []string `json:"keywords"`
	Category    string   `json:"category"`
	FullContent string   `json:"fullContent"`
}

// IsZero reports whether r carries no content.
func (r GenerationResult) IsZero() bool {
	return r.Title == "" && r.Summary == "" && len(r.Keywords) == 0 && r.Category == "" && r.FullContent == ""
}
