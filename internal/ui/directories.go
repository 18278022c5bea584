package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dalil/internal/directory"
	"dalil/internal/domain"
	"dalil/internal/signal"
	"dalil/internal/ui/textutil"
)

// directoryImportTypes are the formats offered by the enrich action.
var directoryImportTypes = []string{".pdf", ".doc", ".docx", ".csv", ".xlsx"}

// DirectoriesView shows the directory as one tab per category with a card
// per entry. Entries come from the built-in catalog plus user-added ones.
type DirectoriesView struct {
	catalog  *directory.Catalog
	extra    []domain.DirectoryEntry
	Tab      int
	Selected int
	width    int
}

var _ View = (*DirectoriesView)(nil)

// NewDirectoriesView creates the view over catalog (nil means empty).
func NewDirectoriesView(catalog *directory.Catalog) *DirectoriesView {
	return &DirectoriesView{catalog: catalog, width: 80}
}

// Category is the active tab.
func (v *DirectoriesView) Category() domain.DirectoryCategory {
	return domain.DirectoryCategories[v.Tab]
}

// SetExtra replaces the user-added entries.
func (v *DirectoriesView) SetExtra(entries []domain.DirectoryEntry) {
	v.extra = entries
	v.clamp()
}

// AddExtra appends user-added entries, replacing any with the same ID.
func (v *DirectoriesView) AddExtra(entries ...domain.DirectoryEntry) {
	for _, e := range entries {
		replaced := false
		for i := range v.extra {
			if v.extra[i].ID == e.ID {
				v.extra[i], replaced = e, true
			}
		}
		if !replaced {
			v.extra = append(v.extra, e)
		}
	}
}

// Entries lists the active tab's cards.
func (v *DirectoriesView) Entries() []domain.DirectoryEntry {
	if v.catalog == nil {
		var out []domain.DirectoryEntry
		for _, e := range v.extra {
			if e.Category == v.Category() {
				out = append(out, e)
			}
		}
		return out
	}
	return v.catalog.Entries(v.Category(), v.extra...)
}

// All returns every entry across categories, for the search index.
func (v *DirectoriesView) All() []domain.DirectoryEntry {
	var out []domain.DirectoryEntry
	if v.catalog != nil {
		out = append(out, v.catalog.All()...)
	}
	return append(out, v.extra...)
}

func (v *DirectoriesView) current() (domain.DirectoryEntry, bool) {
	es := v.Entries()
	if v.Selected < 0 || v.Selected >= len(es) {
		return domain.DirectoryEntry{}, false
	}
	return es[v.Selected], true
}

func (v *DirectoriesView) clamp() {
	n := len(v.Entries())
	if v.Selected >= n {
		v.Selected = n - 1
	}
	if v.Selected < 0 {
		v.Selected = 0
	}
}

// Init implements View.
func (v *DirectoriesView) Init() tea.Cmd { return nil }

// Update implements View.
func (v *DirectoriesView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
	case tea.KeyMsg:
		return v, v.handleKey(msg.String())
	}
	return v, nil
}

func (v *DirectoriesView) handleKey(k string) tea.Cmd {
	n := len(domain.DirectoryCategories)
	switch k {
	case "]", "right", "l":
		v.Tab, v.Selected = (v.Tab+1)%n, 0
	case "[", "left", "h":
		v.Tab, v.Selected = (v.Tab+n-1)%n, 0
	case "down", "j":
		if v.Selected < len(v.Entries())-1 {
			v.Selected++
		}
	case "up", "k":
		if v.Selected > 0 {
			v.Selected--
		}
	case "a":
		cat := v.Category()
		return func() tea.Msg {
			return EmitSignalMsg{Signal: signal.OpenLibraryForm{ResourceType: "directory", Category: cat}}
		}
	case "e":
		return openModal(signal.ModalImport, "Enrichir : "+v.Category().Label(), signal.ModalData{
			Feature:       "directory-import",
			Category:      v.Category(),
			AcceptedTypes: directoryImportTypes,
		})
	case "t", "m", "w":
		e, ok := v.current()
		if !ok {
			return nil
		}
		links := directory.LinksFor(e)
		url := map[string]string{"t": links.Phone, "m": links.Email, "w": links.Website}[k]
		if url == "" {
			return func() tea.Msg { return StatusMsg{Text: "Aucun lien de ce type pour " + e.Name} }
		}
		return func() tea.Msg { return OpenLinkMsg{URL: url} }
	case "y":
		e, ok := v.current()
		if !ok {
			return nil
		}
		return func() tea.Msg { return CopyMsg{Text: contactCard(e), Label: e.Name} }
	}
	return nil
}

// contactCard is the plain-text form of an entry copied to the clipboard.
func contactCard(e domain.DirectoryEntry) string {
	lines := []string{e.Name}
	for _, l := range []string{e.Type, e.Address, e.Phone, e.Email, e.Website} {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return strings.Join(lines, "\n")
}

func (v *DirectoriesView) card(e domain.DirectoryEntry, active bool, width int) string {
	inner := width - 4
	var b strings.Builder
	b.WriteString(Styles.Subtitle.Render(textutil.Truncate(e.Name, inner)) + "\n")
	if e.Type != "" {
		b.WriteString(Styles.Badge.Render(textutil.Truncate(e.Type, inner)) + "\n")
	}
	row := func(icon, val string) {
		if val != "" {
			b.WriteString(Styles.Muted.Render(icon+" ") + textutil.Truncate(val, inner-2) + "\n")
		}
	}
	row("⌂", e.Address)
	row("☎", e.Phone)
	row("✉", e.Email)
	row("⌘", e.Website)
	if e.Description != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDim)).Render(
			strings.Join(textutil.Wrap(e.Description, inner), "\n")))
	}
	style := Styles.Card
	if active {
		style = Styles.CardActive
	}
	return style.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

// View implements View.
func (v *DirectoriesView) View() string {
	labels := make([]string, len(domain.DirectoryCategories))
	for i, c := range domain.DirectoryCategories {
		labels[i] = c.Label()
	}
	var b strings.Builder
	b.WriteString(tabs(labels, v.Tab) + "\n\n")

	es := v.Entries()
	if len(es) == 0 {
		b.WriteString(Styles.Empty.Render("Aucune entrée dans cette catégorie.") + "\n")
	}
	width := v.width - 4
	if width > 72 {
		width = 72
	}
	if width < 30 {
		width = 30
	}
	for i, e := range es {
		b.WriteString(v.card(e, i == v.Selected, width) + "\n")
	}
	b.WriteString(Styles.Muted.Render(fmt.Sprintf("%d entrée(s)", len(es))) + "\n")
	b.WriteString(Styles.Hint.Render("[ ]: catégorie  j/k: entrée  a: ajouter  e: enrichir  t/m/w: appeler/écrire/site  y: copier"))
	return b.String()
}
