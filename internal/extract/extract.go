// Package extract turns raw scanned text into a best-effort FormDraft.
package extract

import (
	"regexp"
	"strings"

	"dalil/internal/domain"
)

// Extractor guesses form fields from raw text.
type Extractor interface {
	Extract(raw string) domain.FormDraft
}

// Fill runs ex on raw. With no extractor the raw text goes into the content
// field and every other field stays empty.
func Fill(raw string, ex Extractor) domain.FormDraft {
	if ex == nil {
		return domain.FormDraft{}.Set(domain.FieldContent, raw)
	}
	return ex.Extract(raw)
}

var (
	reType = regexp.MustCompile(`(?i)^\s*(loi|décret(?:\s+(?:exécutif|présidentiel|législatif))?|decret|arrêté(?:\s+interministériel)?|arrete|ordonnance|circulaire|décision|decision)(?:\s|$|[,:])`)
	reRef  = regexp.MustCompile(`(?i)n\s*[°º]?\s*(\d{1,4}\s*[-/]\s*\d{1,4})`)
	reBare = regexp.MustCompile(`\b(\d{2}\s*-\s*\d{2,4})\b`)
	reDate = regexp.MustCompile(`\b(\d{1,2}[/.-]\d{1,2}[/.-]\d{4})\b`)
	reDay  = regexp.MustCompile(`(?i)\b(\d{1,2}(?:er)?\s+(?:janvier|février|fevrier|mars|avril|mai|juin|juillet|août|aout|septembre|octobre|novembre|décembre|decembre)\s+\d{4})\b`)
	reJO   = regexp.MustCompile(`(?i)journal\s+officiel[^\n]*`)
)

var typeNames = map[string]string{
	"loi":        "Loi",
	"décret":     "Décret",
	"decret":     "Décret",
	"arrêté":     "Arrêté",
	"arrete":     "Arrêté",
	"ordonnance": "Ordonnance",
	"circulaire": "Circulaire",
	"décision":   "Décision",
	"decision":   "Décision",
}

// Heuristic recognizes the usual headers of Algerian official texts.
type Heuristic struct{}

// Extract implements Extractor.
func (Heuristic) Extract(raw string) domain.FormDraft {
	d := domain.FormDraft{}.Set(domain.FieldContent, raw)

	first := firstLine(raw)
	d = d.Set(domain.FieldTitle, first)

	if m := reType.FindStringSubmatch(first); m != nil {
		word := strings.ToLower(strings.Fields(m[1])[0])
		d = d.Set(domain.FieldType, typeNames[word])
	}

	if m := reRef.FindStringSubmatch(raw); m != nil {
		d = d.Set(domain.FieldReference, compact(m[1]))
	} else if m := reBare.FindStringSubmatch(first); m != nil {
		d = d.Set(domain.FieldReference, compact(m[1]))
	}

	if m := reDay.FindStringSubmatch(raw); m != nil {
		d = d.Set(domain.FieldDate, m[1])
	} else if m := reDate.FindStringSubmatch(raw); m != nil {
		d = d.Set(domain.FieldDate, m[1])
	}

	if m := reJO.FindString(raw); m != "" {
		d = d.Set(domain.FieldSource, strings.TrimSpace(m))
	}
	return d
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

func compact(s string) string {
	return strings.Join(strings.Fields(s), "")
}
