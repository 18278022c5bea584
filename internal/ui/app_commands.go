package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dalil/internal/activity"
	"dalil/internal/clipboard"
	"dalil/internal/directory"
	"dalil/internal/domain"
	"dalil/internal/export"
	"dalil/internal/search"
)

// storeTimeout bounds every store call made from a command.
const storeTimeout = 5 * time.Second

// importRowTimeout extends storeTimeout per imported row.
const importRowTimeout = 50 * time.Millisecond

func storeCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}

// loadDataCmd reads texts, directory entries, trends and recent activity.
// A nil store yields an empty load.
func loadDataCmd(st Store) tea.Cmd {
	return func() tea.Msg {
		if st == nil {
			return DataLoadedMsg{}
		}
		ctx, cancel := storeCtx()
		defer cancel()

		var msg DataLoadedMsg
		var err error
		if msg.Texts, err = st.ListTexts(ctx, domain.KindLegalText); err != nil {
			return DataLoadedMsg{Err: err}
		}
		if msg.Procedures, err = st.ListTexts(ctx, domain.KindProcedure); err != nil {
			return DataLoadedMsg{Err: err}
		}
		if msg.Entries, err = st.ListDirectoryEntries(ctx, ""); err != nil {
			return DataLoadedMsg{Err: err}
		}
		if msg.Trends, err = st.ListTrends(ctx); err != nil {
			return DataLoadedMsg{Err: err}
		}
		if msg.Activity, err = st.RecentActivity(ctx, 10); err != nil {
			return DataLoadedMsg{Err: err}
		}
		return msg
	}
}

// saveTextCmd stores a validated draft.
func saveTextCmd(st Store, msg SubmitTextMsg) tea.Cmd {
	return func() tea.Msg {
		if st == nil {
			return TextSavedMsg{Err: fmt.Errorf("save text: no store configured"), FromForm: msg.FromForm}
		}
		ctx, cancel := storeCtx()
		defer cancel()
		t, err := st.SaveText(ctx, msg.Kind, msg.Draft)
		return TextSavedMsg{Text: t, FromForm: msg.FromForm, Err: err}
	}
}

// importTextsCmd stores the drafts in one transaction: a failure saves none.
func importTextsCmd(st Store, msg ImportTextsMsg) tea.Cmd {
	return func() tea.Msg {
		res := TextsImportedMsg{Kind: msg.Kind, Skips: msg.Skips}
		if st == nil {
			res.Err = fmt.Errorf("import texts: no store configured")
			return res
		}
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout+time.Duration(len(msg.Drafts))*importRowTimeout)
		defer cancel()
		saved, err := st.SaveTexts(ctx, msg.Kind, msg.Drafts)
		res.Saved, res.Err = len(saved), err
		return res
	}
}

// saveEntriesCmd stores user-added directory entries.
func saveEntriesCmd(st Store, msg SaveDirectoryEntriesMsg) tea.Cmd {
	return func() tea.Msg {
		res := DirectoryEntriesSavedMsg{Skips: msg.Skips}
		if st == nil {
			res.Err = fmt.Errorf("save entries: no store configured")
			return res
		}
		ctx, cancel := storeCtx()
		defer cancel()
		for _, e := range msg.Entries {
			saved, err := st.AddDirectoryEntry(ctx, e)
			if err != nil {
				res.Err = err
				return res
			}
			res.Entries = append(res.Entries, saved)
		}
		return res
	}
}

// saveTrendCmd upserts a trend. Without a store the trend is kept in memory only.
func saveTrendCmd(st Store, t domain.Trend, enriched bool) tea.Cmd {
	return func() tea.Msg {
		if st == nil {
			return TrendSavedMsg{Trend: t, Enriched: enriched}
		}
		ctx, cancel := storeCtx()
		defer cancel()
		saved, err := st.SaveTrend(ctx, t)
		return TrendSavedMsg{Trend: saved, Enriched: enriched, Err: err}
	}
}

// exportCmd renders a draft to <dir>/<slug>.html.
func exportCmd(dir string, msg ExportTextMsg) tea.Cmd {
	return func() tea.Msg {
		if err := msg.Draft.Validate(); err != nil {
			return ExportedMsg{Err: err}
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ExportedMsg{Err: fmt.Errorf("create export dir: %w", err)}
		}
		path := filepath.Join(dir, slug(msg.Draft.Get(domain.FieldTitle))+".html")
		t := domain.LegalText{Kind: msg.Kind, Draft: msg.Draft, CreatedAt: time.Now()}
		if err := export.WriteFile(path, t); err != nil {
			return ExportedMsg{Err: err}
		}
		return ExportedMsg{Path: path}
	}
}

// slug turns a title into an accent-free file name.
func slug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range search.Normalize(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if len(s) > 60 {
		s = strings.TrimSuffix(s[:60], "-")
	}
	if s == "" {
		s = "document"
	}
	return s
}

func openLinkCmd(o directory.Opener, url string) tea.Cmd {
	return func() tea.Msg {
		if o == nil {
			return StatusMsg{Text: url}
		}
		if err := o.Open(url); err != nil {
			return StatusMsg{Err: err}
		}
		return StatusMsg{Text: "Ouverture de " + url}
	}
}

func copyCmd(w clipboard.Writer, msg CopyMsg) tea.Cmd {
	return func() tea.Msg {
		if w == nil {
			return StatusMsg{Err: clipboard.ErrUnsupported}
		}
		if err := w.WriteAll(msg.Text); err != nil {
			return StatusMsg{Err: err}
		}
		label := msg.Label
		if label == "" {
			label = "Texte"
		}
		return StatusMsg{Text: label + " copié dans le presse-papiers."}
	}
}

// recordCmd adds an event to the activity feed, which persists it.
func recordCmd(feed *activity.Feed, kind activity.Kind, message string) tea.Cmd {
	if feed == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := storeCtx()
		defer cancel()
		feed.Record(ctx, activity.Event{Message: message, Kind: kind})
		return activityRecordedMsg{}
	}
}
