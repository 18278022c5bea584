package ui

import (
	"dalil/internal/activity"
	"dalil/internal/analytics"
	"dalil/internal/domain"
	"dalil/internal/signal"
)

// EmitSignalMsg asks the root model to emit a signal on the bus. Views return
// it instead of holding the bus so delivery always happens inside Update.
type EmitSignalMsg struct {
	Signal signal.Signal
}

// DismissModalMsg is sent when user cancels a modal (Esc).
type DismissModalMsg struct{}

// StatusMsg sets the status line. Err takes precedence over Text.
type StatusMsg struct {
	Text string
	Err  error
}

// DataLoadedMsg carries everything read from the store at startup or refresh.
type DataLoadedMsg struct {
	Texts      []domain.LegalText
	Procedures []domain.LegalText
	Entries    []domain.DirectoryEntry
	Trends     []domain.Trend
	Activity   []activity.Event
	Err        error
}

// RefreshMsg reloads data from the store (SPC r).
type RefreshMsg struct{}

// SubmitTextMsg asks for a draft to be saved as a legal text or procedure.
// FromForm is set when the section form should be cleared after saving.
type SubmitTextMsg struct {
	Kind     domain.TextKind
	Draft    domain.FormDraft
	FromForm bool
}

// TextSavedMsg reports the outcome of SubmitTextMsg.
type TextSavedMsg struct {
	Text     domain.LegalText
	FromForm bool
	Err      error
}

// ImportTextsMsg saves a batch of drafts read from a CSV file.
type ImportTextsMsg struct {
	Kind   domain.TextKind
	Drafts []domain.FormDraft
	Skips  int
}

// TextsImportedMsg reports how many drafts of ImportTextsMsg were saved.
type TextsImportedMsg struct {
	Kind  domain.TextKind
	Saved int
	Skips int
	Err   error
}

// ExportTextMsg writes a draft to the export directory.
type ExportTextMsg struct {
	Kind  domain.TextKind
	Draft domain.FormDraft
}

// ExportedMsg reports the outcome of ExportTextMsg.
type ExportedMsg struct {
	Path string
	Err  error
}

// PreviewTextMsg opens the rendered preview of a draft.
type PreviewTextMsg struct {
	Kind  domain.TextKind
	Draft domain.FormDraft
}

// ConfirmResetMsg asks for confirmation before clearing a form.
type ConfirmResetMsg struct {
	Kind domain.TextKind
}

// ResetFormMsg clears the form of the given kind.
type ResetFormMsg struct {
	Kind domain.TextKind
}

// ScanResultMsg carries a draft extracted from scanned text for the form of Context.
type ScanResultMsg struct {
	Draft   domain.FormDraft
	Context domain.ContextTag
}

// SaveDirectoryEntriesMsg stores entries added by hand or imported from CSV.
type SaveDirectoryEntriesMsg struct {
	Entries []domain.DirectoryEntry
	Skips   int
}

// DirectoryEntriesSavedMsg reports the outcome of SaveDirectoryEntriesMsg.
type DirectoryEntriesSavedMsg struct {
	Entries []domain.DirectoryEntry
	Skips   int
	Err     error
}

// AddTrendMsg asks for a new trend to be created.
type AddTrendMsg struct {
	Input analytics.NewTrend
}

// EnrichTrendMsg asks for a trend to be enriched.
type EnrichTrendMsg struct {
	Trend domain.Trend
}

// TrendSavedMsg reports the outcome of AddTrendMsg or EnrichTrendMsg.
type TrendSavedMsg struct {
	Trend    domain.Trend
	Enriched bool
	Err      error
}

// formAction is a SPC f command applied to the active form.
type formAction int

const (
	formSave formAction = iota
	formExport
	formPreview
	formReset
	formToggleInput
)

// FormActionMsg routes a SPC f command to the active form.
type FormActionMsg struct {
	Action formAction
}

// ShowSectionSwitcherMsg opens the section picker (SPC s).
type ShowSectionSwitcherMsg struct{}

// GoBackMsg returns to the previous section (SPC b).
type GoBackMsg struct{}

// OpenLinkMsg hands a tel:, mailto: or https: URL to the host.
type OpenLinkMsg struct {
	URL string
}

// CopyMsg writes text to the clipboard.
type CopyMsg struct {
	Text  string
	Label string
}

// wizardTickMsg advances the auto-fill progress bar for a run.
type wizardTickMsg struct {
	run uint64
}

// wizardDoneMsg carries the generator outcome for a run.
type wizardDoneMsg struct {
	run uint64
	res domain.GenerationResult
	err error
}

// ShowTrendFormMsg opens the new-trend modal.
type ShowTrendFormMsg struct{}

// openAutoFillMsg and openExtractionMsg open the modal for the active section (SPC a f, SPC a x).
type (
	openAutoFillMsg   struct{}
	openExtractionMsg struct{}
)

// activityRecordedMsg triggers a redraw once the feed has a new event.
type activityRecordedMsg struct{}
