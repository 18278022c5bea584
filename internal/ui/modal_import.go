package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"dalil/internal/directory"
	"dalil/internal/domain"
	"dalil/internal/extract"
	"dalil/internal/signal"
)

// ImportModal asks for a file path and imports it. CSV files become
// directory entries (when a category is set) or texts; .txt and .md files go
// through extraction into the form.
type ImportModal struct {
	Title     string
	Data      signal.ModalData
	extractor extract.Extractor
	input     textinput.Model
	err       string
}

var (
	_ View     = (*ImportModal)(nil)
	_ Capturer = (*ImportModal)(nil)
)

// NewImportModal creates the modal for an OpenModal{import} request.
func NewImportModal(title string, data signal.ModalData, ex extract.Extractor) *ImportModal {
	ti := textinput.New()
	ti.Placeholder = "chemin du fichier"
	ti.Prompt = "› "
	ti.Width = 56
	ti.Focus()
	if title == "" {
		title = "Importer un fichier"
	}
	return &ImportModal{Title: title, Data: data, extractor: ex, input: ti}
}

// SetPath replaces the typed path.
func (m *ImportModal) SetPath(p string) { m.input.SetValue(p) }

// Capturing implements Capturer.
func (m *ImportModal) Capturing() bool { return true }

// Init implements View.
func (m *ImportModal) Init() tea.Cmd { return textinput.Blink }

// Update implements View.
func (m *ImportModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			return m, dismiss
		case "enter":
			next, err := m.load(expandHome(strings.TrimSpace(m.input.Value())))
			if err != nil {
				m.err = err.Error()
				return m, nil
			}
			return m, tea.Sequence(next, dismiss)
		}
	}
	m.err = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ImportModal) accepts(ext string) bool {
	return len(m.Data.AcceptedTypes) == 0 || slices.Contains(m.Data.AcceptedTypes, ext)
}

// load reads path and returns the command carrying its content.
func (m *ImportModal) load(path string) (tea.Cmd, error) {
	if path == "" {
		return nil, errors.New("Veuillez indiquer un fichier.")
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !m.accepts(ext) {
		return nil, fmt.Errorf("Format non accepté (%s). Formats : %s", ext, strings.Join(m.Data.AcceptedTypes, ", "))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Impossible d'ouvrir le fichier : %w", err)
	}
	defer f.Close()

	switch {
	case ext == ".csv" && m.Data.Category != "":
		res, err := directory.ImportCSV(f, m.Data.Category)
		if err != nil {
			return nil, err
		}
		skips := res.Skipped + len(res.Errors)
		return func() tea.Msg { return SaveDirectoryEntriesMsg{Entries: res.Entries, Skips: skips} }, nil
	case ext == ".csv":
		drafts, rowErrs, err := extract.ReadCSV(f)
		if err != nil {
			return nil, err
		}
		kind := domain.KindLegalText
		if m.Data.Context == domain.ContextProcedures {
			kind = domain.KindProcedure
		}
		skips := len(rowErrs)
		return func() tea.Msg { return ImportTextsMsg{Kind: kind, Drafts: drafts, Skips: skips} }, nil
	case ext == ".txt" || ext == ".md":
		raw, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}
		d := extract.Fill(string(raw), m.extractor)
		ctx := m.Data.Context
		return func() tea.Msg { return ScanResultMsg{Draft: d, Context: ctx} }, nil
	default:
		return nil, fmt.Errorf("Le format %s n'est pas encore pris en charge.", ext)
	}
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// View implements View.
func (m *ImportModal) View() string {
	content := ModalStyles.Title.Render(m.Title) + "\n"
	if m.Data.Category != "" {
		content += Styles.Muted.Render(m.Data.Category.Label()) + "\n"
	}
	if len(m.Data.AcceptedTypes) > 0 {
		content += Styles.Muted.Render("Formats acceptés : "+strings.Join(m.Data.AcceptedTypes, ", ")) + "\n"
	}
	content += "\n" + m.input.View()
	if m.err != "" {
		content += "\n" + Styles.Error.Render(m.err)
	}
	content += "\n\n" + ModalStyles.Help.Render("enter: importer  esc: annuler")
	return ModalStyles.BoxDefault.Render(content)
}
