package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dalil/internal/domain"
)

func fixture() *Index {
	texts := []domain.LegalText{
		{ID: "t1", Kind: domain.KindLegalText, Draft: domain.NewFormDraft().
			Set(domain.FieldTitle, "Décret n°24-15 relatif à la réglementation").
			Set(domain.FieldKeywords, "décret, réglementation")},
		{ID: "t2", Kind: domain.KindProcedure, Draft: domain.NewFormDraft().
			Set(domain.FieldTitle, "Demande de passeport biométrique").
			Set(domain.FieldDescription, "Procédure auprès de la daïra")},
	}
	ix := New(FromTexts(texts)...)
	ix.Add(FromDirectory([]domain.DirectoryEntry{
		{ID: "d1", Name: "Conseil d'État", Type: "Institution judiciaire", Category: domain.CategoryInstitutions},
	})...)
	ix.Add(FromTrends([]domain.Trend{
		{ID: "r1", Title: "Nouvelles Procédures Fiscales", Category: "Fiscalité", Keywords: []string{"impôts"}},
	})...)
	return ix
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "decret reglementation", Normalize("Décret Réglementation"))
	assert.Equal(t, []string{"decret", "n", "24", "15"}, Tokens("Décret n°24-15"))
}

func TestSearch_AccentInsensitive(t *testing.T) {
	hits := fixture().Search("decret", 0)
	require.NotEmpty(t, hits)
	assert.Equal(t, "t1", hits[0].ID)
	assert.Equal(t, KindLegalText, hits[0].Kind)
}

func TestSearch_Typos(t *testing.T) {
	hits := fixture().Search("pasport", 0)
	require.Len(t, hits, 1)
	assert.Equal(t, "t2", hits[0].ID)
	assert.Equal(t, KindProcedure, hits[0].Kind)
}

func TestSearch_AllTokensMustMatch(t *testing.T) {
	assert.Empty(t, fixture().Search("conseil passeport", 0))
	hits := fixture().Search("conseil etat", 0)
	require.Len(t, hits, 1)
	assert.Equal(t, KindDirectory, hits[0].Kind)
}

func TestSearch_TitleOutranksBody(t *testing.T) {
	// "procedures" is in the trend title and only in the body of t2.
	hits := fixture().Search("procedures", 0)
	require.Len(t, hits, 2)
	assert.Equal(t, "r1", hits[0].ID)
}

func TestSearch_ShortTokensNeedExactSubstring(t *testing.T) {
	assert.Empty(t, fixture().Search("xyz", 0))
	assert.Empty(t, fixture().Search("   ", 0))
}

func TestSearch_Limit(t *testing.T) {
	hits := fixture().Search("e", 1)
	assert.Len(t, hits, 1)
}
