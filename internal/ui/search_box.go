package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"dalil/internal/search"
	"dalil/internal/signal"
	"dalil/internal/ui/textutil"
)

const searchLimit = 6

// searchBox is a query input over the shared index with a selectable hit list.
type searchBox struct {
	input    textinput.Model
	index    *search.Index
	Hits     []search.Hit
	selected int
	searched bool
}

func newSearchBox(placeholder string) searchBox {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "⌕ "
	ti.Width = 50
	return searchBox{input: ti}
}

func (s *searchBox) Focused() bool { return s.input.Focused() }

func (s *searchBox) Focus() tea.Cmd { return s.input.Focus() }

func (s *searchBox) Blur() { s.input.Blur() }

func (s *searchBox) Query() string { return s.input.Value() }

func (s *searchBox) SetQuery(q string) { s.input.SetValue(q) }

// Run searches the index with the current query.
func (s *searchBox) Run() {
	s.searched = true
	s.selected = 0
	if s.index == nil {
		s.Hits = nil
		return
	}
	s.Hits = s.index.Search(s.input.Value(), searchLimit)
}

// Update handles a key while the input is focused. Enter runs the search
// and blurs; esc blurs.
func (s *searchBox) Update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			s.Run()
			s.input.Blur()
			return nil
		case "esc":
			s.input.Blur()
			return nil
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *searchBox) Move(delta int) {
	if len(s.Hits) == 0 {
		return
	}
	s.selected = (s.selected + delta + len(s.Hits)) % len(s.Hits)
}

// Open navigates to the section holding the selected hit.
func (s *searchBox) Open() tea.Cmd {
	if s.selected >= len(s.Hits) {
		return nil
	}
	mode := modeForKind(s.Hits[s.selected].Kind)
	return func() tea.Msg { return EmitSignalMsg{Signal: navigate(mode)} }
}

func modeForKind(k search.Kind) AppMode {
	switch k {
	case search.KindLegalText:
		return ModeLegalTexts
	case search.KindProcedure:
		return ModeProcedures
	case search.KindDirectory:
		return ModeDirectories
	case search.KindTrend:
		return ModeTrends
	}
	return ModeDashboard
}

func navigate(m AppMode) signal.Navigate {
	return signal.Navigate{Section: m.Section()}
}

func (s *searchBox) View(width int) string {
	var b strings.Builder
	b.WriteString(s.input.View())
	if !s.searched {
		return b.String()
	}
	b.WriteString("\n")
	if len(s.Hits) == 0 {
		b.WriteString(Styles.Empty.Render("Aucun résultat pour « " + s.input.Value() + " »."))
		return b.String()
	}
	for i, h := range s.Hits {
		line := fmt.Sprintf("%s %s", Styles.Badge.Render(textutil.PadRight(string(h.Kind), 10)), textutil.Truncate(h.Title, width-14))
		if i == s.selected && !s.input.Focused() {
			line = Styles.Selected.Render("▸ ") + line
		} else {
			line = "  " + line
		}
		b.WriteString("\n" + line)
	}
	return b.String()
}
