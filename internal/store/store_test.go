package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dalil/internal/activity"
	"dalil/internal/domain"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "sub", "dalil.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_MigratesTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dalil.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestSaveText_RoundTrip(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	d := domain.NewFormDraft().Apply(
		domain.FieldUpdate{Field: domain.FieldTitle, Value: "Décret n°24-15"},
		domain.FieldUpdate{Field: domain.FieldKeywords, Value: "décret, réglementation"},
		domain.FieldUpdate{Field: domain.FieldContent, Value: "Article 1er"},
	)
	saved, err := s.SaveText(ctx, domain.KindLegalText, d)
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	got, err := s.GetText(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.KindLegalText, got.Kind)
	assert.Equal(t, "Décret n°24-15", got.Title())
	assert.Equal(t, domain.StatusDraft, got.Draft.Get(domain.FieldStatus))
	assert.Equal(t, []string{"décret", "réglementation"}, got.Draft.KeywordList())

	byPrefix, err := s.GetText(ctx, saved.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, saved.ID, byPrefix.ID)
}

func TestSaveText_RequiresTitle(t *testing.T) {
	s := openTest(t)
	_, err := s.SaveText(context.Background(), domain.KindProcedure, domain.NewFormDraft())
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	n, err := s.CountTexts(context.Background(), "")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGetText_NotFound(t *testing.T) {
	s := openTest(t)
	_, err := s.GetText(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestGetText_PrefixIsLiteral(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	_, err := s.SaveText(ctx, domain.KindLegalText, domain.NewFormDraft().Set(domain.FieldTitle, "Loi n° 24-15"))
	require.NoError(t, err)

	for _, id := range []string{"_", "%", "%%", "________"} {
		_, err := s.GetText(ctx, id)
		assert.True(t, domain.IsKind(err, domain.KindNotFound), "id %q: %v", id, err)
	}
}

func TestSaveTexts_AllOrNothing(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	title := func(v string) domain.FormDraft { return domain.NewFormDraft().Set(domain.FieldTitle, v) }

	saved, err := s.SaveTexts(ctx, domain.KindProcedure, []domain.FormDraft{title("Carte grise"), title("Passeport")})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.NotEqual(t, saved[0].ID, saved[1].ID)

	_, err = s.SaveTexts(ctx, domain.KindProcedure, []domain.FormDraft{
		title("Permis de conduire"),
		domain.NewFormDraft(), // no title
		title("Casier judiciaire"),
	})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindValidation))
	assert.Contains(t, err.Error(), "row 2")

	texts, err := s.ListTexts(ctx, domain.KindProcedure)
	require.NoError(t, err)
	require.Len(t, texts, 2, "the failed batch must be rolled back")
	for _, tx := range texts {
		assert.NotEqual(t, "Permis de conduire", tx.Title())
	}
}

func TestListTexts_FiltersByKind(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	title := func(v string) domain.FormDraft { return domain.NewFormDraft().Set(domain.FieldTitle, v) }

	_, err := s.SaveText(ctx, domain.KindLegalText, title("Loi 08-09"))
	require.NoError(t, err)
	_, err = s.SaveText(ctx, domain.KindProcedure, title("Demande de passeport"))
	require.NoError(t, err)
	_, err = s.SaveText(ctx, domain.KindLegalText, title("Ordonnance 75-58"))
	require.NoError(t, err)

	legal, err := s.ListTexts(ctx, domain.KindLegalText)
	require.NoError(t, err)
	require.Len(t, legal, 2)
	assert.Equal(t, "Ordonnance 75-58", legal[0].Title())

	all, err := s.ListTexts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	n, err := s.CountTexts(ctx, domain.KindProcedure)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDirectoryEntries(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	_, err := s.AddDirectoryEntry(ctx, domain.DirectoryEntry{Category: domain.CategoryFaculties})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	e, err := s.AddDirectoryEntry(ctx, domain.DirectoryEntry{
		Category: domain.CategoryFaculties,
		Name:     "Faculté de droit d'Oran",
		Phone:    "+213 41 00 00 00",
	})
	require.NoError(t, err)
	require.NotEmpty(t, e.ID)

	_, err = s.AddDirectoryEntry(ctx, domain.DirectoryEntry{Name: "Cour suprême"})
	require.NoError(t, err)

	fac, err := s.ListDirectoryEntries(ctx, domain.CategoryFaculties)
	require.NoError(t, err)
	require.Len(t, fac, 1)
	assert.Equal(t, "Faculté de droit d'Oran", fac[0].Name)

	all, err := s.ListDirectoryEntries(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, domain.CategoryInstitutions, all[1].Category)
}

func TestTrends_Upsert(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	tr, err := s.SaveTrend(ctx, domain.Trend{Title: "Droit numérique", Category: "Technologie", Searches: 120, Keywords: []string{"cyber", "données"}})
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, tr.Priority)

	tr.Searches = 150
	_, err = s.SaveTrend(ctx, tr)
	require.NoError(t, err)
	_, err = s.SaveTrend(ctx, domain.Trend{Title: "Fiscalité", Category: "Finances", Searches: 300})
	require.NoError(t, err)

	list, err := s.ListTrends(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Fiscalité", list[0].Title)
	assert.Equal(t, 150, list[1].Searches)
	assert.Equal(t, []string{"cyber", "données"}, list[1].Keywords)
}

func TestActivity(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	for i, msg := range []string{"premier", "deuxième", "troisième"} {
		require.NoError(t, s.AppendActivity(ctx, activity.Event{
			Message:   msg,
			Kind:      activity.KindLegal,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	got, err := s.RecentActivity(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "troisième", got[0].Message)
	assert.Equal(t, activity.KindLegal, got[0].Kind)
	assert.True(t, got[0].Timestamp.Equal(base.Add(2*time.Minute)))
}
