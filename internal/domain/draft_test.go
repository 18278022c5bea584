package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormDraft_StatusDraft(t *testing.T) {
	d := NewFormDraft()
	assert.Equal(t, StatusDraft, d.Get(FieldStatus))
	for _, f := range AllFields() {
		if f != FieldStatus {
			assert.Empty(t, d.Get(f), "field %s", f)
		}
	}
}

func TestFormDraft_SetIsCopy(t *testing.T) {
	a := NewFormDraft()
	b := a.Set(FieldTitle, "Loi 90-11")
	assert.Empty(t, a.Get(FieldTitle))
	assert.Equal(t, "Loi 90-11", b.Get(FieldTitle))
}

func TestFormDraft_ApplyLastWriteWins(t *testing.T) {
	cases := []struct {
		name    string
		updates []FieldUpdate
		want    map[Field]string
	}{
		{
			name:    "single",
			updates: []FieldUpdate{{FieldTitle, "A"}},
			want:    map[Field]string{FieldTitle: "A", FieldStatus: StatusDraft},
		},
		{
			name: "overwrite same field",
			updates: []FieldUpdate{
				{FieldTitle, "A"}, {FieldReference, "r1"}, {FieldTitle, "B"},
			},
			want: map[Field]string{FieldTitle: "B", FieldReference: "r1", FieldStatus: StatusDraft},
		},
		{
			name:    "clear a field",
			updates: []FieldUpdate{{FieldSource, "JORA"}, {FieldSource, ""}},
			want:    map[Field]string{FieldStatus: StatusDraft},
		},
		{
			name:    "status replaced",
			updates: []FieldUpdate{{FieldStatus, StatusPublished}},
			want:    map[Field]string{FieldStatus: StatusPublished},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewFormDraft().Apply(tc.updates...)

			// Equivalent right fold, one update at a time.
			folded := NewFormDraft()
			for _, u := range tc.updates {
				folded = folded.Set(u.Field, u.Value)
			}
			assert.Equal(t, folded, got)

			for _, f := range AllFields() {
				assert.Equal(t, tc.want[f], got.Get(f), "field %s", f)
			}
		})
	}
}

func TestFormDraft_SetUnknownFieldIgnored(t *testing.T) {
	d := NewFormDraft()
	assert.Equal(t, d, d.Set(Field(99), "x"))
	assert.Empty(t, d.Get(Field(-1)))
}

func TestFormDraft_MergeSkipsEmpty(t *testing.T) {
	base := NewFormDraft().Set(FieldTitle, "Titre").Set(FieldSource, "JORA")
	partial := FormDraft{}.Set(FieldTitle, "Nouveau").Set(FieldContent, "texte")

	got := base.Merge(partial)
	assert.Equal(t, "Nouveau", got.Get(FieldTitle))
	assert.Equal(t, "JORA", got.Get(FieldSource))
	assert.Equal(t, "texte", got.Get(FieldContent))
	assert.Equal(t, StatusDraft, got.Get(FieldStatus))
}

func TestFormDraft_MapRoundTrip(t *testing.T) {
	d := NewFormDraft().Set(FieldTitle, "T").Set(FieldKeywords, "a, b")
	m := d.Map()
	require.Len(t, m, len(AllFields()))
	assert.Equal(t, "T", m["title"])
	assert.Equal(t, d, FormDraftFromMap(m))
	assert.Equal(t, []string{"a", "b"}, d.KeywordList())
}

func TestFormDraft_ValidateRequiresTitle(t *testing.T) {
	err := NewFormDraft().Set(FieldTitle, "   ").Validate()
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))
	assert.ErrorIs(t, err, ErrRequired)
	assert.Contains(t, UserMessage(err), "titre")

	assert.NoError(t, NewFormDraft().Set(FieldTitle, "Loi").Validate())
}

func TestFormDraft_ApplyGeneration(t *testing.T) {
	r := GenerationResult{
		Title:       "Décret n°24-15",
		Summary:     "Résumé",
		Keywords:    []string{"décret", "marchés"},
		Category:    "Textes juridiques",
		FullContent: "Article 1er",
	}
	d := NewFormDraft().Set(FieldSource, "JORA").ApplyGeneration(r)
	assert.Equal(t, "Décret n°24-15", d.Get(FieldTitle))
	assert.Equal(t, "Résumé", d.Get(FieldDescription))
	assert.Equal(t, "décret, marchés", d.Get(FieldKeywords))
	assert.Equal(t, "Textes juridiques", d.Get(FieldDomain))
	assert.Equal(t, "Article 1er", d.Get(FieldContent))
	assert.Equal(t, "JORA", d.Get(FieldSource))
}

func TestParseField(t *testing.T) {
	f, ok := ParseField(" Content ")
	require.True(t, ok)
	assert.Equal(t, FieldContent, f)
	_, ok = ParseField("nope")
	assert.False(t, ok)
}

func TestSplitKeywords(t *testing.T) {
	assert.Equal(t, []string{"a", "b c"}, SplitKeywords(" a ,, b c ,"))
	assert.Nil(t, SplitKeywords(""))
}
