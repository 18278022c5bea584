package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dalil/internal/analytics"
	"dalil/internal/domain"
	"dalil/internal/ui/textutil"
)

const chartHeight = 8

// TrendsView has an analysis tab (metrics, top searches, monthly chart,
// insights) and a watch tab listing trends that can be added and enriched.
type TrendsView struct {
	Tab      int
	Trends   []domain.Trend
	Selected int
	width    int
}

var _ View = (*TrendsView)(nil)

// NewTrendsView creates the view with the seed trends.
func NewTrendsView() *TrendsView {
	return &TrendsView{Trends: analytics.SeedTrends(), width: 80}
}

// SetTrends replaces the watched trends. An empty list keeps the seeds.
func (v *TrendsView) SetTrends(ts []domain.Trend) {
	if len(ts) == 0 {
		ts = analytics.SeedTrends()
	}
	v.Trends = ts
	if v.Selected >= len(ts) {
		v.Selected = len(ts) - 1
	}
}

// Upsert replaces the trend with t's ID or prepends t.
func (v *TrendsView) Upsert(t domain.Trend) {
	for i := range v.Trends {
		if v.Trends[i].ID == t.ID {
			v.Trends[i] = t
			return
		}
	}
	v.Trends = append([]domain.Trend{t}, v.Trends...)
	v.Selected = 0
}

// Init implements View.
func (v *TrendsView) Init() tea.Cmd { return nil }

// Update implements View.
func (v *TrendsView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "]", "[":
			v.Tab = 1 - v.Tab
		case "down", "j":
			if v.Tab == 1 && v.Selected < len(v.Trends)-1 {
				v.Selected++
			}
		case "up", "k":
			if v.Tab == 1 && v.Selected > 0 {
				v.Selected--
			}
		case "n":
			return v, func() tea.Msg { return ShowTrendFormMsg{} }
		case "e":
			if v.Tab == 1 && v.Selected < len(v.Trends) {
				t := v.Trends[v.Selected]
				return v, func() tea.Msg { return EnrichTrendMsg{Trend: t} }
			}
		}
	}
	return v, nil
}

// View implements View.
func (v *TrendsView) View() string {
	var b strings.Builder
	b.WriteString(tabs([]string{"Analyse", "Veille juridique"}, v.Tab) + "\n\n")
	if v.Tab == 0 {
		b.WriteString(v.analysis())
		b.WriteString("\n" + Styles.Hint.Render("[ ]: onglet  n: nouvelle tendance"))
	} else {
		b.WriteString(v.watch())
		b.WriteString("\n" + Styles.Hint.Render("j/k: tendance  n: nouvelle  e: enrichir  [ ]: onglet"))
	}
	return b.String()
}

func growthStyle(up bool) lipgloss.Style {
	if up {
		return Styles.Success
	}
	return Styles.Details
}

func (v *TrendsView) analysis() string {
	var tiles []string
	for _, m := range analytics.Metrics() {
		body := Styles.Muted.Render(textutil.Truncate(m.Title, 22)) + "\n" +
			growthStyle(m.Up).Bold(true).Render(m.Value) + "\n" +
			Styles.Muted.Render(textutil.Truncate(m.Description, 22))
		tiles = append(tiles, Styles.Tile.Render(body))
	}
	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tiles...) + "\n\n")

	var top strings.Builder
	top.WriteString(Styles.Subtitle.Render("Recherches populaires") + "\n")
	for i, s := range analytics.TopSearches() {
		top.WriteString(fmt.Sprintf("%d. %s %s %s\n", i+1,
			textutil.PadRight(s.Term, 28),
			Styles.Muted.Render(textutil.PadRight(analytics.Thousands(s.Searches), 6)),
			growthStyle(s.Growth >= 0).Render(analytics.Growth(s.Growth))))
	}

	left := top.String()
	right := Styles.Subtitle.Render("Activité mensuelle") + "\n" + monthlyChart(analytics.Monthly())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right) + "\n")

	b.WriteString(Styles.Subtitle.Render("Prédictions et recommandations") + "\n")
	for _, in := range analytics.Insights() {
		b.WriteString(Styles.Badge.Render("• "+in.Title) + " " + Styles.Muted.Render(in.Text) + "\n")
	}
	return b.String()
}

// monthlyChart draws consultation (▇) and procedure (▒) bars side by side.
func monthlyChart(points []analytics.MonthPoint) string {
	cons := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))
	proc := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHighlight))
	var rows []string
	for row := chartHeight; row >= 1; row-- {
		var line strings.Builder
		for _, p := range points {
			c, pr := " ", " "
			if analytics.Bar(p.Consultations, analytics.ConsultationsScale, chartHeight) >= row {
				c = cons.Render("▇")
			}
			if analytics.Bar(p.Procedures, analytics.ProceduresScale, chartHeight) >= row {
				pr = proc.Render("▒")
			}
			line.WriteString(" " + c + pr + "  ")
		}
		rows = append(rows, line.String())
	}
	var labels strings.Builder
	for _, p := range points {
		labels.WriteString(textutil.PadRight(" "+p.Month, 5))
	}
	rows = append(rows, Styles.Muted.Render(labels.String()))
	rows = append(rows, cons.Render("▇")+Styles.Muted.Render(" consultations  ")+proc.Render("▒")+Styles.Muted.Render(" procédures"))
	return strings.Join(rows, "\n")
}

func priorityLabel(p domain.Priority) string {
	for _, o := range priorityOptions {
		if o.Value == string(p) {
			return o.Label
		}
	}
	return string(p)
}

func (v *TrendsView) watch() string {
	if len(v.Trends) == 0 {
		return Styles.Empty.Render("Aucune tendance suivie.") + "\n"
	}
	width := v.width - 4
	if width > 76 {
		width = 76
	}
	if width < 30 {
		width = 30
	}
	var b strings.Builder
	for i, t := range v.Trends {
		head := Styles.Subtitle.Render(textutil.Truncate(t.Title, width-20)) + "  " +
			Styles.Success.Render(analytics.Growth(t.Growth))
		meta := Styles.Muted.Render(fmt.Sprintf("%s · priorité %s · %s recherches · %s",
			t.Category, strings.ToLower(priorityLabel(t.Priority)), analytics.Thousands(t.Searches), t.UpdatedAt.Format("02/01/2006")))
		body := head + "\n" + meta
		if len(t.Keywords) > 0 {
			body += "\n" + Styles.Badge.Render(textutil.Truncate(strings.Join(t.Keywords, " · "), width-4))
		}
		style := Styles.Card
		if i == v.Selected {
			style = Styles.CardActive
		}
		b.WriteString(style.Width(width).Render(body) + "\n")
	}
	return b.String()
}
