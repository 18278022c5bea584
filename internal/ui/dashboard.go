package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dalil/internal/activity"
	"dalil/internal/analytics"
	"dalil/internal/domain"
	"dalil/internal/signal"
	"dalil/internal/ui/textutil"
)

// quickAction is a dashboard shortcut.
type quickAction struct {
	label string
	cmd   tea.Cmd
}

func (q quickAction) FilterValue() string { return q.label }
func (q quickAction) Title() string       { return q.label }
func (q quickAction) Description() string { return "" }

// DashboardView is the landing section: stat tiles, quick actions, recent
// activity, popular searches and a search box.
type DashboardView struct {
	actions    list.Model
	box        searchBox
	feed       *activity.Feed
	spinner    spinner.Model
	loading    bool
	texts      int
	procedures int
	recent     []domain.LegalText
	now        func() time.Time
	width      int
}

var (
	_ View     = (*DashboardView)(nil)
	_ Capturer = (*DashboardView)(nil)
)

func emit(sig signal.Signal) func() tea.Msg {
	return func() tea.Msg { return EmitSignalMsg{Signal: sig} }
}

// NewDashboardView creates the dashboard. Counts arrive with DataLoadedMsg.
func NewDashboardView(feed *activity.Feed) *DashboardView {
	items := []list.Item{
		quickAction{"Nouveau texte juridique", emit(navigate(ModeLegalTexts))},
		quickAction{"Nouvelle procédure", emit(navigate(ModeProcedures))},
		// The form must be mounted before the wizard result is emitted.
		quickAction{"Remplissage automatique", tea.Sequence(
			emit(navigate(ModeLegalTexts)),
			emit(signal.OpenModal{
				Modal: signal.ModalAIGeneration, Title: "Remplissage automatique",
				Data: signal.ModalData{Feature: "auto-fill", Context: domain.ContextLegalTexts},
			}),
		)},
		quickAction{"Consulter les annuaires", emit(navigate(ModeDirectories))},
		quickAction{"Analyser les tendances", emit(navigate(ModeTrends))},
		quickAction{"Poser une question", emit(navigate(ModeAssistant))},
	}
	l := list.New(items, NewCompactListDelegate(), 34, len(items)+1)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = Styles.Title

	return &DashboardView{
		actions: l,
		box:     newSearchBox("Rechercher un texte, une procédure, un organisme…"),
		feed:    feed,
		spinner: s,
		loading: true,
		now:     time.Now,
		width:   100,
	}
}

// SetCounts updates the saved-text tiles.
func (d *DashboardView) SetCounts(texts, procedures int) {
	d.texts, d.procedures = texts, procedures
	d.loading = false
}

// SetRecent sets the most recently saved texts.
func (d *DashboardView) SetRecent(ts []domain.LegalText) { d.recent = ts }

// Capturing implements Capturer.
func (d *DashboardView) Capturing() bool { return d.box.Focused() }

// Init implements View.
func (d *DashboardView) Init() tea.Cmd {
	return d.spinner.Tick
}

// Update implements View.
func (d *DashboardView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		return d, nil
	case spinner.TickMsg:
		if !d.loading {
			return d, nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd
	case tea.KeyMsg:
		if d.box.Focused() {
			return d, d.box.Update(msg)
		}
		switch msg.String() {
		case "/":
			return d, d.box.Focus()
		case "enter":
			if it, ok := d.actions.SelectedItem().(quickAction); ok {
				return d, it.cmd
			}
			return d, nil
		case "o":
			return d, d.box.Open()
		case "n":
			d.box.Move(1)
			return d, nil
		case "N":
			d.box.Move(-1)
			return d, nil
		}
	}
	var cmd tea.Cmd
	d.actions, cmd = d.actions.Update(msg)
	return d, cmd
}

func (d *DashboardView) tiles() string {
	var out []string
	for _, s := range analytics.DashboardStats(d.texts, d.procedures) {
		body := Styles.Muted.Render(s.Title) + "\n" +
			lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorText)).Render(s.Value) + "  " +
			Styles.Success.Render(s.Change)
		out = append(out, Styles.Tile.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

func (d *DashboardView) activity() string {
	var b strings.Builder
	b.WriteString(Styles.Subtitle.Render("Activité récente") + "\n")
	var events []activity.Event
	if d.feed != nil {
		events = d.feed.Recent()
	}
	if len(events) == 0 {
		b.WriteString(Styles.Empty.Render("Aucune activité pour le moment."))
		return b.String()
	}
	now := d.now()
	for i, ev := range events {
		if i == 5 {
			break
		}
		b.WriteString(fmt.Sprintf("%s %s\n", Styles.Badge.Render("•"), textutil.Truncate(ev.Message, 44)))
		b.WriteString("  " + Styles.Muted.Render(activity.Ago(now, ev.Timestamp)) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (d *DashboardView) searches() string {
	var b strings.Builder
	b.WriteString(Styles.Subtitle.Render("Tendances de recherche") + "\n")
	for _, s := range analytics.TopSearches()[:4] {
		b.WriteString(textutil.PadRight(s.Term, 28) + " " +
			Styles.Muted.Render(textutil.PadRight(analytics.Thousands(s.Searches), 6)) + " " +
			Styles.Success.Render(analytics.Growth(s.Growth)) + "\n")
	}
	if len(d.recent) > 0 {
		b.WriteString("\n" + Styles.Subtitle.Render("Derniers enregistrements") + "\n")
		for i, t := range d.recent {
			if i == 3 {
				break
			}
			b.WriteString(Styles.Muted.Render("› ") + summaryLine(t, 40) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// View implements View.
func (d *DashboardView) View() string {
	var b strings.Builder
	title := Styles.Title.Render("Tableau de bord")
	if d.loading {
		title += " " + d.spinner.View()
	}
	b.WriteString(title + "\n")
	b.WriteString(Styles.Muted.Render("Plateforme de gestion des textes juridiques et procédures administratives") + "\n\n")
	b.WriteString(d.tiles() + "\n\n")
	b.WriteString(d.box.View(d.width-4) + "\n\n")

	left := Styles.Subtitle.Render("Actions rapides") + "\n" + d.actions.View()
	cols := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(38).Render(left),
		lipgloss.NewStyle().Width(52).Render(d.activity()),
		d.searches(),
	)
	b.WriteString(cols + "\n\n")
	b.WriteString(Styles.Hint.Render("j/k + enter: action  /: rechercher  n/N + o: résultat  SPC: commandes"))
	return b.String()
}
