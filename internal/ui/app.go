package ui

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dalil/internal/activity"
	"dalil/internal/analytics"
	"dalil/internal/clipboard"
	"dalil/internal/directory"
	"dalil/internal/domain"
	"dalil/internal/extract"
	"dalil/internal/generate"
	"dalil/internal/search"
	"dalil/internal/signal"
	"dalil/internal/wizard"
)

// Store is the persistence the console reads and writes.
type Store interface {
	SaveText(ctx context.Context, kind domain.TextKind, d domain.FormDraft) (domain.LegalText, error)
	SaveTexts(ctx context.Context, kind domain.TextKind, drafts []domain.FormDraft) ([]domain.LegalText, error)
	ListTexts(ctx context.Context, kind domain.TextKind) ([]domain.LegalText, error)
	AddDirectoryEntry(ctx context.Context, e domain.DirectoryEntry) (domain.DirectoryEntry, error)
	ListDirectoryEntries(ctx context.Context, cat domain.DirectoryCategory) ([]domain.DirectoryEntry, error)
	SaveTrend(ctx context.Context, t domain.Trend) (domain.Trend, error)
	ListTrends(ctx context.Context) ([]domain.Trend, error)
	RecentActivity(ctx context.Context, limit int) ([]activity.Event, error)
}

// Deps are the collaborators of the console. Only Bus is required; a nil
// Extractor means scanned text is copied into the content field unchanged.
type Deps struct {
	Bus       *signal.Bus
	Store     Store
	Generator generate.Generator
	Extractor extract.Extractor
	Catalog   *directory.Catalog
	Feed      *activity.Feed
	Clipboard clipboard.Writer
	Opener    directory.Opener
	Trends    *analytics.Trends
	Timing    wizard.Timing
	ExportDir string
	Logger    *slog.Logger
}

// AppModel is the root model. It owns one view per section, the overlay
// stack for modals, and the app-level bus subscriptions.
type AppModel struct {
	Mode        AppMode
	Dashboard   *DashboardView
	LegalTexts  *TextSectionView
	Procedures  *TextSectionView
	Directories *DirectoriesView
	Trends      *TrendsView
	Assistant   *AssistantView
	Overlays    OverlayStack
	History     ViewStack
	KeyHandler  *KeyHandler
	Index       *search.Index

	deps      Deps
	log       *slog.Logger
	status    string
	statusErr bool
	width     int
	height    int
	pending   []tea.Cmd
	subs      subscriptions
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root application model and subscribes it to the bus.
func NewAppModel(deps Deps) *AppModel {
	if deps.Bus == nil {
		deps.Bus = signal.NewBus(deps.Logger)
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	if deps.Generator == nil {
		deps.Generator = generate.Simulated{}
	}
	if deps.Trends == nil {
		deps.Trends = analytics.NewTrends(nil)
	}
	if deps.ExportDir == "" {
		deps.ExportDir = "."
	}
	if deps.Timing == (wizard.Timing{}) {
		deps.Timing = wizard.DefaultTiming()
	}

	a := &AppModel{
		Mode:        ModeDashboard,
		Dashboard:   NewDashboardView(deps.Feed),
		LegalTexts:  NewTextSectionView(domain.KindLegalText),
		Procedures:  NewTextSectionView(domain.KindProcedure),
		Directories: NewDirectoriesView(deps.Catalog),
		Trends:      NewTrendsView(),
		Assistant:   NewAssistantView(),
		History:     ViewStack{Max: 20},
		deps:        deps,
		log:         deps.Logger,
		width:       100,
		height:      32,
	}
	a.KeyHandler = NewKeyHandler(a.keybinds())
	a.subscribe()
	a.reindex()
	return a
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (a *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: a}
}

// Close releases the app-level bus subscriptions and cancels any running wizard.
func (a *AppModel) Close() {
	for a.Overlays.Len() > 0 {
		a.popOverlay()
	}
	if m, ok := a.currentView().(Mounter); ok {
		m.Unmount()
	}
	a.subs.release()
}

func (a *AppModel) keybinds() *KeybindRegistry {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quitter")
	reg.BindWithDesc("q", tea.Quit, "Quitter")
	reg.BindWithDesc("SPC q", tea.Quit, "Quitter")

	goKeys := map[AppMode]string{
		ModeDashboard: "d", ModeLegalTexts: "l", ModeProcedures: "p",
		ModeDirectories: "r", ModeTrends: "t", ModeAssistant: "a",
	}
	for i, m := range Modes {
		sig := navigate(m)
		reg.BindWithDesc("SPC g "+goKeys[m], emit(sig), m.String())
		reg.BindWithDesc(fmt.Sprint(i+1), emit(sig), m.String())
	}
	reg.BindWithDesc("SPC s", func() tea.Msg { return ShowSectionSwitcherMsg{} }, "Sections")
	reg.BindWithDesc("SPC b", func() tea.Msg { return GoBackMsg{} }, "Retour")
	reg.BindWithDesc("SPC r", func() tea.Msg { return RefreshMsg{} }, "Actualiser")
	reg.BindWithDesc("SPC a f", func() tea.Msg { return openAutoFillMsg{} }, "Remplissage automatique")
	reg.BindWithDesc("SPC a x", func() tea.Msg { return openExtractionMsg{} }, "Extraction automatique")

	forms := []AppMode{ModeLegalTexts, ModeProcedures}
	formKeys := []struct {
		seq    string
		action formAction
		desc   string
	}{
		{"SPC f s", formSave, "Enregistrer"},
		{"SPC f e", formExport, "Exporter en HTML"},
		{"SPC f p", formPreview, "Aperçu"},
		{"SPC f r", formReset, "Réinitialiser"},
		{"SPC f m", formToggleInput, "Numériser"},
	}
	for _, fk := range formKeys {
		action := fk.action
		reg.BindWithDescForMode(fk.seq, func() tea.Msg { return FormActionMsg{Action: action} }, fk.desc, forms)
	}
	return reg
}

// subscribe registers the app-level handlers. They run inside Update, when
// EmitSignalMsg is processed, so they may change the model directly.
func (a *AppModel) subscribe() {
	bus := a.deps.Bus
	a.subs.add(signal.On(bus, func(s signal.Navigate) {
		m, ok := ModeForSection(s.Section)
		if !ok {
			a.log.Debug("ui.navigate_unknown", "section", s.Section)
			return
		}
		for a.Overlays.Len() > 0 {
			a.popOverlay()
		}
		a.setMode(m, true)
	}))
	a.subs.add(signal.On(bus, func(s signal.OpenModal) {
		ctx := s.Data.Context
		if ctx == "" {
			ctx = a.Mode.Context()
		}
		switch s.Modal {
		case signal.ModalAIGeneration:
			a.pushOverlay(NewAutoFillModal(s.Title, ctx, a.deps.Generator, a.deps.Timing))
		case signal.ModalExtraction:
			a.pushOverlay(NewExtractionModal(s.Title, ctx, a.deps.Extractor))
		case signal.ModalImport:
			data := s.Data
			data.Context = ctx
			a.pushOverlay(NewImportModal(s.Title, data, a.deps.Extractor))
		default:
			a.log.Warn("ui.open_modal_unknown", "modal", s.Modal)
		}
	}))
	a.subs.add(signal.On(bus, func(s signal.OpenLibraryForm) {
		cat := s.Category
		if cat == "" {
			cat = a.Directories.Category()
		}
		a.pushOverlay(NewLibraryFormModal(s.ResourceType, cat))
	}))
	a.subs.add(signal.On(bus, func(s signal.ContentGenerated) {
		a.queue(recordCmd(a.deps.Feed, activity.KindGeneration, "Contenu généré : "+s.Result.Title))
	}))
}

func (a *AppModel) queue(cmd tea.Cmd) {
	if cmd != nil {
		a.pending = append(a.pending, cmd)
	}
}

func (a *AppModel) pushOverlay(v View) {
	if m, ok := v.(Mounter); ok {
		m.Mount(a.deps.Bus)
	}
	a.Overlays.Push(Overlay{View: v})
	a.queue(v.Init())
}

func (a *AppModel) popOverlay() {
	o, ok := a.Overlays.Pop()
	if !ok {
		return
	}
	if af, ok := o.View.(*AutoFillModal); ok {
		af.Close()
	}
	if m, ok := o.View.(Mounter); ok {
		m.Unmount()
	}
}

// setMode switches section, unmounting the old view and mounting the new one.
func (a *AppModel) setMode(m AppMode, record bool) {
	if m == a.Mode {
		return
	}
	if old, ok := a.currentView().(Mounter); ok {
		old.Unmount()
	}
	if record {
		a.History.Push(a.Mode)
	}
	a.Mode = m
	if nv, ok := a.currentView().(Mounter); ok {
		nv.Mount(a.deps.Bus)
	}
	a.queue(a.currentView().Init())
}

func (a *AppModel) currentView() View {
	switch a.Mode {
	case ModeLegalTexts:
		return a.LegalTexts
	case ModeProcedures:
		return a.Procedures
	case ModeDirectories:
		return a.Directories
	case ModeTrends:
		return a.Trends
	case ModeAssistant:
		return a.Assistant
	default:
		return a.Dashboard
	}
}

func (a *AppModel) section(kind domain.TextKind) *TextSectionView {
	if kind == domain.KindProcedure {
		return a.Procedures
	}
	return a.LegalTexts
}

func (a *AppModel) sectionForContext(ctx domain.ContextTag) (*TextSectionView, AppMode) {
	if ctx == domain.ContextProcedures {
		return a.Procedures, ModeProcedures
	}
	return a.LegalTexts, ModeLegalTexts
}

// reindex rebuilds the search index from everything on screen.
func (a *AppModel) reindex() {
	var docs []search.Doc
	docs = append(docs, search.FromTexts(a.LegalTexts.Texts())...)
	docs = append(docs, search.FromTexts(a.Procedures.Texts())...)
	docs = append(docs, search.FromDirectory(a.Directories.All())...)
	docs = append(docs, search.FromTrends(a.Trends.Trends)...)
	a.Index = search.New(docs...)
	a.Dashboard.box.index = a.Index
	a.Assistant.box.index = a.Index
}

func (a *AppModel) refreshCounts() {
	a.Dashboard.SetCounts(len(a.LegalTexts.Texts()), len(a.Procedures.Texts()))
	recent := append(append([]domain.LegalText{}, a.LegalTexts.Texts()...), a.Procedures.Texts()...)
	sortTextsNewest(recent)
	a.Dashboard.SetRecent(recent)
}

func (a *AppModel) setStatus(text string) {
	a.status, a.statusErr = text, false
}

func (a *AppModel) setError(op string, err error) {
	a.status, a.statusErr = domain.UserMessage(err), true
	a.log.Error(op, "err", err)
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	if m, ok := a.currentView().(Mounter); ok {
		m.Mount(a.deps.Bus)
	}
	return tea.Batch(a.currentView().Init(), loadDataCmd(a.deps.Store))
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	if len(a.pending) > 0 {
		cmds := append(a.pending, cmd)
		a.pending = nil
		cmd = tea.Batch(cmds...)
	}
	return a, cmd
}

func (a *AppModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		inner := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		for _, v := range []View{a.Dashboard, a.LegalTexts, a.Procedures, a.Directories, a.Trends, a.Assistant} {
			v.Update(inner)
		}
		return nil
	case EmitSignalMsg:
		a.log.Debug("ui.emit", "kind", msg.Signal.Kind().String())
		a.deps.Bus.Emit(msg.Signal)
		return nil
	case DismissModalMsg:
		a.popOverlay()
		return nil
	case StatusMsg:
		if msg.Err != nil {
			a.setError("ui.status", msg.Err)
		} else {
			a.setStatus(msg.Text)
		}
		return nil
	case activityRecordedMsg:
		return nil
	case RefreshMsg:
		a.setStatus("Actualisation…")
		return loadDataCmd(a.deps.Store)
	case DataLoadedMsg:
		return a.applyData(msg)
	case SubmitTextMsg:
		return saveTextCmd(a.deps.Store, msg)
	case TextSavedMsg:
		return a.textSaved(msg)
	case ImportTextsMsg:
		a.setStatus(fmt.Sprintf("Import de %d élément(s)…", len(msg.Drafts)))
		return importTextsCmd(a.deps.Store, msg)
	case TextsImportedMsg:
		return a.textsImported(msg)
	case ExportTextMsg:
		return exportCmd(a.deps.ExportDir, msg)
	case ExportedMsg:
		if msg.Err != nil {
			a.setError("ui.export_failed", msg.Err)
			return nil
		}
		a.setStatus("Exporté vers " + msg.Path)
		a.log.Info("ui.exported", "path", msg.Path)
		return recordCmd(a.deps.Feed, activity.KindUser, "Export HTML : "+filepath.Base(msg.Path))
	case PreviewTextMsg:
		a.pushOverlay(NewPreviewWindow(msg.Kind, msg.Draft, a.width, a.height))
		return nil
	case ConfirmResetMsg:
		a.pushOverlay(NewResetFormConfirmModal(msg.Kind))
		return nil
	case ResetFormMsg:
		a.section(msg.Kind).Form.Reset()
		a.setStatus("Formulaire réinitialisé.")
		return nil
	case ScanResultMsg:
		sec, mode := a.sectionForContext(msg.Context)
		sec.Form.Merge(msg.Draft)
		sec.Tab = tabForm
		a.setMode(mode, true)
		a.setStatus("Champs extraits : vérifiez le formulaire avant d'enregistrer.")
		return recordCmd(a.deps.Feed, activity.KindUser, "Extraction de texte : "+titleOr(msg.Draft, "document"))
	case SaveDirectoryEntriesMsg:
		return saveEntriesCmd(a.deps.Store, msg)
	case DirectoryEntriesSavedMsg:
		return a.entriesSaved(msg)
	case ShowTrendFormMsg:
		a.pushOverlay(NewTrendFormModal())
		return nil
	case AddTrendMsg:
		t, err := a.deps.Trends.Add(msg.Input)
		if err != nil {
			if i, ok := a.Overlays.Find(isTrendForm); ok {
				field := "title"
				if de := asDomainError(err); de != nil && de.Field != "" {
					field = de.Field
				}
				a.Overlays.Stack[i].View.(*TrendFormModal).ShowError(field, domain.UserMessage(err))
			}
			return nil
		}
		if top, ok := a.Overlays.Peek(); ok && isTrendForm(top.View) {
			a.popOverlay()
		}
		return saveTrendCmd(a.deps.Store, t, false)
	case EnrichTrendMsg:
		return saveTrendCmd(a.deps.Store, a.deps.Trends.Enrich(msg.Trend), true)
	case TrendSavedMsg:
		return a.trendSaved(msg)
	case FormActionMsg:
		if !a.Mode.isForm() {
			return nil
		}
		_, cmd := a.currentView().Update(msg)
		return cmd
	case ShowSectionSwitcherMsg:
		a.pushOverlay(NewSectionSwitcherModal(a.Mode))
		return nil
	case GoBackMsg:
		if m, ok := a.History.Pop(); ok {
			a.setMode(m, false)
		}
		return nil
	case openAutoFillMsg:
		if !a.Mode.isForm() {
			// General-context results are picked up by the assistant.
			a.setMode(ModeAssistant, true)
		}
		a.deps.Bus.Emit(signal.OpenModal{
			Modal: signal.ModalAIGeneration, Title: "Remplissage automatique",
			Data: signal.ModalData{Feature: "auto-fill", Context: a.Mode.Context()},
		})
		return nil
	case openExtractionMsg:
		a.deps.Bus.Emit(signal.OpenModal{
			Modal: signal.ModalExtraction, Title: "Extraction automatique",
			Data: signal.ModalData{Feature: "extraction", Context: a.Mode.Context()},
		})
		return nil
	case OpenLinkMsg:
		return openLinkCmd(a.deps.Opener, msg.URL)
	case CopyMsg:
		return copyCmd(a.deps.Clipboard, msg)
	case wizardTickMsg, wizardDoneMsg:
		if i, ok := a.Overlays.Find(isAutoFill); ok {
			return a.Overlays.UpdateAt(i, msg)
		}
		return nil
	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Everything else (spinner ticks, cursor blinks) goes to the top overlay
	// and the active view; components ignore IDs that are not theirs.
	var cmds []tea.Cmd
	if cmd, ok := a.Overlays.UpdateTop(msg); ok {
		cmds = append(cmds, cmd)
	}
	_, cmd := a.currentView().Update(msg)
	return tea.Batch(append(cmds, cmd)...)
}

func isAutoFill(v View) bool {
	_, ok := v.(*AutoFillModal)
	return ok
}

func isTrendForm(v View) bool {
	_, ok := v.(*TrendFormModal)
	return ok
}

func (a *AppModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if top, ok := a.Overlays.Peek(); ok {
		if top.IsDismissKey(msg.String()) {
			a.popOverlay()
			return nil
		}
		cmd, _ := a.Overlays.UpdateTop(msg)
		return cmd
	}
	view := a.currentView()
	if capturing(view) {
		_, cmd := view.Update(msg)
		return cmd
	}
	if consumed, cmd := a.KeyHandler.Handle(msg, a.Mode); consumed {
		return cmd
	}
	_, cmd := view.Update(msg)
	return cmd
}

func (a *AppModel) applyData(msg DataLoadedMsg) tea.Cmd {
	if msg.Err != nil {
		a.setError("ui.load_failed", msg.Err)
		a.Dashboard.SetCounts(0, 0)
		return nil
	}
	a.LegalTexts.SetTexts(msg.Texts)
	a.Procedures.SetTexts(msg.Procedures)
	a.Directories.SetExtra(msg.Entries)
	a.Trends.SetTrends(msg.Trends)
	if a.deps.Feed != nil && len(msg.Activity) > 0 {
		a.deps.Feed.Load(msg.Activity)
	}
	a.refreshCounts()
	a.reindex()
	if a.status == "Actualisation…" {
		a.setStatus("Données actualisées.")
	}
	a.log.Debug("ui.data_loaded", "texts", len(msg.Texts), "procedures", len(msg.Procedures),
		"entries", len(msg.Entries), "trends", len(msg.Trends))
	return nil
}

func (a *AppModel) textSaved(msg TextSavedMsg) tea.Cmd {
	if msg.Err != nil {
		a.setError("ui.save_failed", msg.Err)
		return nil
	}
	sec := a.section(msg.Text.Kind)
	sec.AddText(msg.Text)
	if msg.FromForm {
		sec.Form.Saved(msg.Text)
	}
	a.refreshCounts()
	a.reindex()
	kind, label := activity.KindLegal, "Texte juridique enregistré : "
	if msg.Text.Kind == domain.KindProcedure {
		kind, label = activity.KindProcedure, "Procédure enregistrée : "
	}
	a.setStatus(label + msg.Text.Title())
	a.log.Info("ui.text_saved", "id", msg.Text.ID, "kind", string(msg.Text.Kind))
	return recordCmd(a.deps.Feed, kind, label+msg.Text.Title())
}

func (a *AppModel) textsImported(msg TextsImportedMsg) tea.Cmd {
	status := fmt.Sprintf("%d élément(s) importé(s)", msg.Saved)
	if msg.Skips > 0 {
		status += fmt.Sprintf(", %d ligne(s) ignorée(s)", msg.Skips)
	}
	if msg.Err != nil {
		a.setError("ui.import_failed", fmt.Errorf("%s: %w", status, msg.Err))
	} else {
		a.setStatus(status + ".")
	}
	kind := activity.KindLegal
	if msg.Kind == domain.KindProcedure {
		kind = activity.KindProcedure
	}
	var cmds []tea.Cmd
	if msg.Saved > 0 {
		cmds = append(cmds, recordCmd(a.deps.Feed, kind, fmt.Sprintf("Import CSV : %d élément(s)", msg.Saved)))
	}
	return tea.Batch(append(cmds, loadDataCmd(a.deps.Store))...)
}

func (a *AppModel) entriesSaved(msg DirectoryEntriesSavedMsg) tea.Cmd {
	a.Directories.AddExtra(msg.Entries...)
	a.reindex()
	if msg.Err != nil {
		a.setError("ui.directory_save_failed", msg.Err)
		return nil
	}
	status := fmt.Sprintf("%d entrée(s) ajoutée(s) à l'annuaire", len(msg.Entries))
	if msg.Skips > 0 {
		status += fmt.Sprintf(", %d ignorée(s)", msg.Skips)
	}
	a.setStatus(status + ".")
	if len(msg.Entries) == 0 {
		return nil
	}
	label := "Annuaire enrichi : " + msg.Entries[0].Name
	if len(msg.Entries) > 1 {
		label = fmt.Sprintf("Annuaire enrichi : %d entrées", len(msg.Entries))
	}
	return recordCmd(a.deps.Feed, activity.KindDirectory, label)
}

func (a *AppModel) trendSaved(msg TrendSavedMsg) tea.Cmd {
	if msg.Err != nil {
		a.setError("ui.trend_save_failed", msg.Err)
		return nil
	}
	a.Trends.Upsert(msg.Trend)
	a.reindex()
	label := "Nouvelle tendance : " + msg.Trend.Title
	if msg.Enriched {
		label = "Tendance enrichie : " + msg.Trend.Title
	}
	a.setStatus(label)
	return recordCmd(a.deps.Feed, activity.KindTrend, label)
}

func sortTextsNewest(ts []domain.LegalText) {
	slices.SortStableFunc(ts, func(x, y domain.LegalText) int {
		return y.CreatedAt.Compare(x.CreatedAt)
	})
}

func titleOr(d domain.FormDraft, fallback string) string {
	if t := strings.TrimSpace(d.Get(domain.FieldTitle)); t != "" {
		return t
	}
	return fallback
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	labels := make([]string, len(Modes))
	for i, m := range Modes {
		labels[i] = fmt.Sprintf("%d %s", i+1, m)
	}
	header := Styles.Title.Render("Dalil") + " " + tabs(labels, int(a.Mode))

	body := a.currentView().View()
	if top, ok := a.Overlays.Peek(); ok {
		h := a.height - 4
		if h < lipgloss.Height(top.View.View()) {
			h = lipgloss.Height(top.View.View())
		}
		body = lipgloss.Place(a.width, h, lipgloss.Center, lipgloss.Center, top.View.View())
	}

	var b strings.Builder
	b.WriteString(header + "\n\n" + body)
	if a.status != "" {
		style := Styles.Success
		if a.statusErr {
			style = Styles.Error
		}
		b.WriteString("\n" + style.Render(a.status))
	}
	if a.KeyHandler != nil && a.KeyHandler.LeaderWaiting {
		b.WriteString("\n" + RenderKeybindHelp(a.KeyHandler, a.Mode))
	}
	return b.String()
}
