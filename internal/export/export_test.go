package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dalil/internal/domain"
	"dalil/internal/generate"
)

func manualText() domain.LegalText {
	return domain.LegalText{
		ID:   "abc",
		Kind: domain.KindLegalText,
		Draft: domain.NewFormDraft().Apply(
			domain.FieldUpdate{Field: domain.FieldTitle, Value: "Loi 08-09 <portant code>"},
			domain.FieldUpdate{Field: domain.FieldReference, Value: "08-09"},
			domain.FieldUpdate{Field: domain.FieldSource, Value: "Journal officiel | n° 21"},
			domain.FieldUpdate{Field: domain.FieldContent, Value: "Article 1er\nLa présente loi..."},
		),
	}
}

func TestMarkdown_Manual(t *testing.T) {
	out := Markdown(manualText())
	assert.True(t, strings.HasPrefix(out, "# Loi 08-09 &lt;portant code>\n"))
	assert.Contains(t, out, "| Référence | 08-09 |")
	assert.Contains(t, out, `| Source | Journal officiel \| n° 21 |`)
	assert.Contains(t, out, "| Statut | draft |")
	assert.NotContains(t, out, "| Date |")
}

func TestMarkdown_GeneratedContentKeepsItsHeading(t *testing.T) {
	res, err := generate.Simulated{}.Generate(t.Context(), generate.Request{
		Context:   domain.ContextLegalTexts,
		Reference: "Décret n°24-15",
	})
	require.NoError(t, err)
	text := domain.LegalText{Draft: domain.NewFormDraft().ApplyGeneration(res)}

	out := Markdown(text)
	assert.True(t, strings.HasPrefix(out, "# "+res.Title+"\n"))
	assert.NotContains(t, out, "\n# ")
	assert.Contains(t, out, "> "+res.Summary)
	assert.Contains(t, out, "## Article 1er")
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, manualText()))
	out := buf.String()
	assert.Contains(t, out, "<title>Loi 08-09 &lt;portant code&gt;</title>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<h1>Loi 08-09 &lt;portant code&gt;</h1>")
	assert.Contains(t, out, "Article 1er<br>")
}

func TestWriteFile_PicksFormatFromExtension(t *testing.T) {
	dir := t.TempDir()
	mdPath := filepath.Join(dir, "out", "loi.md")
	htmlPath := filepath.Join(dir, "loi.html")

	require.NoError(t, WriteFile(mdPath, manualText()))
	require.NoError(t, WriteFile(htmlPath, manualText()))

	mdOut, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(mdOut), "# "))

	htmlOut, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(htmlOut), "<!DOCTYPE html>"))
}
