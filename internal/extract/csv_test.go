package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dalil/internal/domain"
)

func TestReadCSV(t *testing.T) {
	in := strings.Join([]string{
		"title,reference,unknown,keywords",
		`Demande de passeport,P-01,x,"passeport, daïra"`,
		",P-02,y,",
		"Carte grise,P-03",
	}, "\n")
	drafts, rowErrs, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	require.Len(t, rowErrs, 1)
	assert.Contains(t, rowErrs[0].Error(), "line 3")
	assert.True(t, domain.IsKind(rowErrs[0], domain.KindValidation))

	assert.Equal(t, "Demande de passeport", drafts[0].Get(domain.FieldTitle))
	assert.Equal(t, []string{"passeport", "daïra"}, drafts[0].KeywordList())
	assert.Equal(t, domain.StatusDraft, drafts[0].Get(domain.FieldStatus))
	assert.Equal(t, "P-03", drafts[1].Get(domain.FieldReference))
}

func TestReadCSV_RequiresTitleColumn(t *testing.T) {
	_, _, err := ReadCSV(strings.NewReader("reference,content\nx,y\n"))
	assert.ErrorIs(t, err, ErrNoTitleColumn)

	_, _, err = ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoTitleColumn)
}
