package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dalil/internal/domain"
)

func TestFill_WithoutExtractorKeepsRawInContent(t *testing.T) {
	d := Fill("Loi 08-09", nil)
	assert.Equal(t, "Loi 08-09", d.Get(domain.FieldContent))
	for _, f := range domain.AllFields() {
		if f != domain.FieldContent {
			assert.Empty(t, d.Get(f), "field %s", f)
		}
	}
}

func TestHeuristic_Extract(t *testing.T) {
	raw := `
Décret exécutif n° 24-15 du 15 janvier 2024 fixant les modalités d'application
Journal officiel n° 05 du 21/01/2024

Article 1er : Le présent décret a pour objet...`

	d := Fill(raw, Heuristic{})
	assert.Equal(t, "Décret", d.Get(domain.FieldType))
	assert.Equal(t, "24-15", d.Get(domain.FieldReference))
	assert.Equal(t, "15 janvier 2024", d.Get(domain.FieldDate))
	assert.Equal(t, "Journal officiel n° 05 du 21/01/2024", d.Get(domain.FieldSource))
	assert.Contains(t, d.Get(domain.FieldTitle), "Décret exécutif n° 24-15")
	assert.Equal(t, raw, d.Get(domain.FieldContent))
}

func TestHeuristic_BareReferenceAndNumericDate(t *testing.T) {
	d := Heuristic{}.Extract("Loi 08-09 du 25/02/2008 portant code de procédure civile")
	assert.Equal(t, "Loi", d.Get(domain.FieldType))
	assert.Equal(t, "08-09", d.Get(domain.FieldReference))
	assert.Equal(t, "25/02/2008", d.Get(domain.FieldDate))
	assert.Empty(t, d.Get(domain.FieldSource))
}

func TestHeuristic_UnknownHeader(t *testing.T) {
	d := Heuristic{}.Extract("note interne sans en-tête")
	assert.Empty(t, d.Get(domain.FieldType))
	assert.Empty(t, d.Get(domain.FieldReference))
	assert.Equal(t, "note interne sans en-tête", d.Get(domain.FieldTitle))
}
