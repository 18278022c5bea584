package signal

import "dalil/internal/domain"

// Section identifies a top-level console section.
type Section string

const (
	SectionDashboard   Section = "dashboard"
	SectionLegalTexts  Section = "legal-texts"
	SectionProcedures  Section = "procedures"
	SectionDirectories Section = "directories"
	SectionTrends      Section = "trends"
	SectionAssistant   Section = "ai-assistant"
)

// ModalKind identifies which modal an OpenModal signal asks for.
type ModalKind string

const (
	ModalAIGeneration ModalKind = "ai-generation"
	ModalExtraction   ModalKind = "extraction"
	ModalImport       ModalKind = "import"
)

// Navigate asks the shell to switch to a section.
type Navigate struct {
	Section Section
}

// ModalData is the data bag carried by OpenModal.
type ModalData struct {
	Feature       string
	Context       domain.ContextTag
	Category      domain.DirectoryCategory
	AcceptedTypes []string
}

// OpenModal asks the shell to open a modal.
type OpenModal struct {
	Modal ModalKind
	Title string
	Data  ModalData
}

// ContentGenerated is emitted when the auto-fill wizard result is accepted.
type ContentGenerated struct {
	Result  domain.GenerationResult
	Context domain.ContextTag
}

// OpenLibraryForm asks the shell to open the add form for a resource category.
type OpenLibraryForm struct {
	ResourceType string
	Category     domain.DirectoryCategory
}

func (Navigate) Kind() Kind         { return KindNavigate }
func (OpenModal) Kind() Kind        { return KindOpenModal }
func (ContentGenerated) Kind() Kind { return KindContentGenerated }
func (OpenLibraryForm) Kind() Kind  { return KindOpenLibraryForm }

func (Navigate) isSignal()         {}
func (OpenModal) isSignal()        {}
func (ContentGenerated) isSignal() {}
func (OpenLibraryForm) isSignal()  {}
