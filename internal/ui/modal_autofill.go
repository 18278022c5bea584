package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dalil/internal/domain"
	"dalil/internal/generate"
	"dalil/internal/ui/textutil"
	"dalil/internal/wizard"
)

const (
	afReference   = "reference"
	afType        = "type"
	afKeywords    = "keywords"
	afDescription = "description"
)

// AutoFillModal runs the auto-fill wizard: input, simulated progress,
// result preview, and accept into the form of the same context.
type AutoFillModal struct {
	Title    string
	State    wizard.State
	timing   wizard.Timing
	gen      generate.Generator
	fields   *fieldSet
	bar      progress.Model
	spin     spinner.Model
	cancel   context.CancelFunc
	canceled bool
}

var (
	_ View     = (*AutoFillModal)(nil)
	_ Capturer = (*AutoFillModal)(nil)
)

// NewAutoFillModal creates an Idle wizard for ctx.
func NewAutoFillModal(title string, ctx domain.ContextTag, gen generate.Generator, t wizard.Timing) *AutoFillModal {
	if title == "" {
		title = "Remplissage automatique"
	}
	if gen == nil {
		gen = generate.Simulated{}
	}
	types := make([]option, len(domain.DocumentTypes))
	for i, dt := range domain.DocumentTypes {
		types[i] = option{string(dt), dt.Label()}
	}
	bar := progress.New(progress.WithGradient("#2DD4BF", "#A855F7"))
	bar.Width = 44
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = Styles.Badge
	return &AutoFillModal{
		Title:  title,
		State:  wizard.New(ctx, t),
		timing: t,
		gen:    gen,
		fields: newFieldSet(true,
			textField(afReference, "Référence", "ex. Loi n° 24-15"),
			choiceField(afType, "Type", types...),
			textField(afKeywords, "Mots-clés", "séparés par des virgules"),
			textField(afDescription, "Description", "objet du texte"),
		),
		bar:  bar,
		spin: sp,
	}
}

func (m *AutoFillModal) input() wizard.Input {
	return wizard.Input{
		Reference:    m.fields.Value(afReference),
		DocumentType: domain.DocumentType(m.fields.Value(afType)),
		Keywords:     m.fields.Value(afKeywords),
		Description:  m.fields.Value(afDescription),
	}
}

func (m *AutoFillModal) interval() time.Duration {
	if m.timing.Interval > 0 {
		return m.timing.Interval
	}
	return wizard.DefaultTiming().Interval
}

func (m *AutoFillModal) tick() tea.Cmd {
	run := m.State.Run()
	return tea.Tick(m.interval(), func(time.Time) tea.Msg { return wizardTickMsg{run: run} })
}

// launch starts the generator for the current run alongside the ticks.
func (m *AutoFillModal) launch() tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	run, req, gen := m.State.Run(), m.State.Request(), m.gen
	generateCmd := func() tea.Msg {
		res, err := gen.Generate(ctx, req)
		return wizardDoneMsg{run: run, res: res, err: err}
	}
	return tea.Batch(m.tick(), generateCmd, m.spin.Tick)
}

func (m *AutoFillModal) start() tea.Cmd {
	s, err := m.State.SetInput(m.input())
	if err != nil {
		return nil
	}
	if s, err = s.Start(); err != nil {
		return nil
	}
	m.State = s
	return m.launch()
}

// Close cancels an in-flight run. Late ticks and completions are stale after this.
func (m *AutoFillModal) Close() {
	if m.canceled {
		return
	}
	m.canceled = true
	if m.cancel != nil {
		m.cancel()
	}
	m.State = m.State.Cancel()
}

func dismiss() tea.Msg { return DismissModalMsg{} }

// Capturing implements Capturer.
func (m *AutoFillModal) Capturing() bool {
	return m.State.Stage() == wizard.Idle && m.fields.Capturing()
}

// Init implements View.
func (m *AutoFillModal) Init() tea.Cmd { return m.fields.syncFocus() }

// Update implements View.
func (m *AutoFillModal) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case wizardTickMsg:
		m.State = m.State.Tick(msg.run)
		if m.State.NeedsTick() && msg.run == m.State.Run() {
			return m, m.tick()
		}
		return m, nil
	case wizardDoneMsg:
		m.State = m.State.Complete(msg.run, msg.res, msg.err)
		return m, nil
	case spinner.TickMsg:
		if m.State.Stage() != wizard.Processing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	if m.State.Stage() == wizard.Idle {
		_, cmd := m.fields.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *AutoFillModal) handleKey(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()
	if k == "esc" {
		m.Close()
		return dismiss
	}
	switch m.State.Stage() {
	case wizard.Idle:
		if k == "ctrl+s" || (k == "enter" && m.fields.focus.Current == afDescription) {
			return m.start()
		}
		_, cmd := m.fields.Update(msg)
		return cmd
	case wizard.Result:
		switch k {
		case "enter", "a":
			s, sig, err := m.State.Accept()
			if err != nil {
				return nil
			}
			m.State = s
			return tea.Sequence(
				func() tea.Msg { return EmitSignalMsg{Signal: sig} },
				dismiss,
			)
		case "r":
			if s, err := m.State.Regenerate(); err == nil {
				m.State = s
				return m.fields.syncFocus()
			}
		case "c", "y":
			if res, ok := m.State.Result(); ok {
				return func() tea.Msg { return CopyMsg{Text: res.FullContent, Label: res.Title} }
			}
		}
	case wizard.Failed:
		switch k {
		case "enter", "r":
			if s, err := m.State.Retry(); err == nil {
				m.State = s
				return m.launch()
			}
		case "b":
			if s, err := m.State.Back(); err == nil {
				m.State = s
				return m.fields.syncFocus()
			}
		}
	}
	return nil
}

// View implements View.
func (m *AutoFillModal) View() string {
	var b strings.Builder
	b.WriteString(ModalStyles.Title.Render(m.Title))
	b.WriteString("  " + Styles.Muted.Render(m.State.Context().Label()) + "\n\n")

	switch m.State.Stage() {
	case wizard.Idle:
		b.WriteString(m.fields.View())
		b.WriteString("\n\n" + ModalStyles.Help.Render("tab: champ  ←/→: type  ctrl+s: générer  esc: fermer"))
	case wizard.Processing:
		label := "Génération en cours"
		if m.State.Waiting() {
			label = "Finalisation"
		}
		b.WriteString(m.spin.View() + " " + label + "…\n\n")
		b.WriteString(m.bar.ViewAs(float64(m.State.Progress()) / 100))
		b.WriteString(fmt.Sprintf("  %d%%", m.State.Progress()))
		b.WriteString("\n\n" + ModalStyles.Help.Render("esc: annuler"))
	case wizard.Result:
		res, _ := m.State.Result()
		b.WriteString(renderResult(res, 60))
		b.WriteString("\n\n" + ModalStyles.Help.Render("enter: utiliser  r: régénérer  c: copier  esc: fermer"))
	case wizard.Failed:
		b.WriteString(Styles.Error.Render("La génération a échoué.") + "\n")
		b.WriteString(Styles.Muted.Render(domain.UserMessage(m.State.Err())))
		b.WriteString(fmt.Sprintf("\n%s", Styles.Muted.Render(fmt.Sprintf("Tentative %d", m.State.Attempts()))))
		b.WriteString("\n\n" + ModalStyles.Help.Render("r: réessayer  b: retour  esc: fermer"))
	}
	return ModalStyles.BoxAI.Render(b.String())
}

// renderResult shows a generation result: title, category, keywords, summary
// and the start of the generated content.
func renderResult(res domain.GenerationResult, width int) string {
	var b strings.Builder
	b.WriteString(Styles.Subtitle.Render(textutil.Truncate(res.Title, width)) + "\n")
	b.WriteString(Styles.Label.Render("Catégorie") + Styles.Value.Render(res.Category) + "\n")
	if len(res.Keywords) > 0 {
		b.WriteString(Styles.Label.Render("Mots-clés") + Styles.Badge.Render(strings.Join(res.Keywords, " · ")) + "\n")
	}
	b.WriteString("\n" + strings.Join(textutil.Wrap(res.Summary, width), "\n") + "\n\n")
	lines := strings.Split(res.FullContent, "\n")
	if len(lines) > 8 {
		lines = append(lines[:8], "…")
	}
	for i, l := range lines {
		lines[i] = textutil.Truncate(l, width)
	}
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDim)).Render(strings.Join(lines, "\n")))
	return b.String()
}
