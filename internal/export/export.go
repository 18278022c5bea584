// Package export renders saved texts to Markdown and standalone HTML.
package export

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"dalil/internal/domain"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
)

// metadata rows shown under the title, in this order.
var metaFields = []domain.Field{
	domain.FieldType, domain.FieldReference, domain.FieldDate, domain.FieldDomain,
	domain.FieldSource, domain.FieldKeywords, domain.FieldStatus,
}

// Markdown renders t as a Markdown document. When the content already opens
// with a level-one heading (generated texts), that heading replaces the title.
func Markdown(t domain.LegalText) string {
	d := t.Draft
	var b strings.Builder
	content := strings.TrimSpace(d.Get(domain.FieldContent))
	heading := "# " + escapeInline(d.Get(domain.FieldTitle))
	if strings.HasPrefix(content, "# ") {
		heading, content, _ = strings.Cut(content, "\n")
		content = strings.TrimSpace(content)
	}
	b.WriteString(heading)
	b.WriteString("\n\n")

	var rows []string
	for _, f := range metaFields {
		if v := strings.TrimSpace(d.Get(f)); v != "" {
			rows = append(rows, fmt.Sprintf("| %s | %s |", f.Label(), escapeCell(v)))
		}
	}
	if len(rows) > 0 {
		b.WriteString("| Champ | Valeur |\n|---|---|\n")
		b.WriteString(strings.Join(rows, "\n"))
		b.WriteString("\n\n")
	}
	if desc := strings.TrimSpace(d.Get(domain.FieldDescription)); desc != "" {
		fmt.Fprintf(&b, "> %s\n\n", strings.ReplaceAll(desc, "\n", "\n> "))
	}
	if content != "" {
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String()
}

func escapeCell(s string) string {
	return escapeInline(strings.ReplaceAll(strings.ReplaceAll(s, "|", `\|`), "\n", " "))
}

// escapeInline keeps angle brackets from being read as raw HTML.
func escapeInline(s string) string {
	return strings.ReplaceAll(s, "<", "&lt;")
}

// HTML writes t as a standalone HTML page.
func HTML(w io.Writer, t domain.LegalText) error {
	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(t)), &body); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err := fmt.Fprintf(w, page, html.EscapeString(t.Title()), body.String())
	return err
}

// WriteFile renders t to path, choosing Markdown for .md files and HTML otherwise.
func WriteFile(path string, t domain.LegalText) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		_, err = io.WriteString(f, Markdown(t))
	default:
		err = HTML(f, t)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

const page = `<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; line-height: 1.5; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: .25rem .5rem; text-align: left; }
blockquote { color: #555; border-left: 3px solid #0d9488; margin-left: 0; padding-left: 1rem; }
</style>
</head>
<body>
%s</body>
</html>
`
