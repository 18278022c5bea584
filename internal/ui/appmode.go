package ui

import (
	"dalil/internal/domain"
	"dalil/internal/signal"
)

// AppMode is the active console section.
type AppMode int

const (
	ModeDashboard AppMode = iota
	ModeLegalTexts
	ModeProcedures
	ModeDirectories
	ModeTrends
	ModeAssistant
)

// Modes lists the sections in tab order (digit keys 1-6).
var Modes = []AppMode{ModeDashboard, ModeLegalTexts, ModeProcedures, ModeDirectories, ModeTrends, ModeAssistant}

func (m AppMode) String() string {
	switch m {
	case ModeDashboard:
		return "Tableau de bord"
	case ModeLegalTexts:
		return "Textes juridiques"
	case ModeProcedures:
		return "Procédures"
	case ModeDirectories:
		return "Annuaires"
	case ModeTrends:
		return "Tendances"
	case ModeAssistant:
		return "Assistant IA"
	default:
		return "Inconnu"
	}
}

// Section returns the navigation identifier carried by Navigate signals.
func (m AppMode) Section() signal.Section {
	switch m {
	case ModeLegalTexts:
		return signal.SectionLegalTexts
	case ModeProcedures:
		return signal.SectionProcedures
	case ModeDirectories:
		return signal.SectionDirectories
	case ModeTrends:
		return signal.SectionTrends
	case ModeAssistant:
		return signal.SectionAssistant
	default:
		return signal.SectionDashboard
	}
}

// Context is the generation context a section runs the wizard in.
func (m AppMode) Context() domain.ContextTag {
	switch m {
	case ModeLegalTexts:
		return domain.ContextLegalTexts
	case ModeProcedures:
		return domain.ContextProcedures
	default:
		return domain.ContextGeneral
	}
}

// ModeForSection maps a section identifier back to a mode.
// Unknown sections report false.
func ModeForSection(s signal.Section) (AppMode, bool) {
	for _, m := range Modes {
		if m.Section() == s {
			return m, true
		}
	}
	return ModeDashboard, false
}

// isForm reports whether the mode shows a text form (SPC f bindings apply).
func (m AppMode) isForm() bool {
	return m == ModeLegalTexts || m == ModeProcedures
}
