// Package search does fuzzy lookups over saved texts, directory entries and
// trends.
package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"dalil/internal/domain"
)

// Kind tags a document's origin.
type Kind string

const (
	KindLegalText Kind = "texte"
	KindProcedure Kind = "procédure"
	KindDirectory Kind = "annuaire"
	KindTrend     Kind = "tendance"
)

// Doc is an indexed record.
type Doc struct {
	ID    string
	Kind  Kind
	Title string
	Body  []string // secondary fields, searched with a lower weight
}

// Hit is a matching document with its score (higher is better).
type Hit struct {
	Doc
	Score float64
}

type indexed struct {
	doc   Doc
	title []string
	body  []string
	full  string
}

// Index is an in-memory search index. Not safe for concurrent mutation.
type Index struct {
	docs []indexed
}

// New builds an index over docs.
func New(docs ...Doc) *Index {
	ix := &Index{}
	ix.Add(docs...)
	return ix
}

// Add indexes more documents.
func (ix *Index) Add(docs ...Doc) {
	for _, d := range docs {
		body := strings.Join(d.Body, " ")
		ix.docs = append(ix.docs, indexed{
			doc:   d,
			title: Tokens(d.Title),
			body:  Tokens(body),
			full:  Normalize(d.Title + " " + body),
		})
	}
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int { return len(ix.docs) }

// Search returns documents matching every token of q, best first. A limit
// of 0 returns all hits.
func (ix *Index) Search(q string, limit int) []Hit {
	qt := Tokens(q)
	if len(qt) == 0 {
		return nil
	}
	phrase := Normalize(q)
	var hits []Hit
	for _, d := range ix.docs {
		score, ok := scoreDoc(qt, d)
		if !ok {
			continue
		}
		if strings.Contains(d.full, phrase) {
			score += 1
		}
		hits = append(hits, Hit{Doc: d.doc, Score: score})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Title < hits[j].Title
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

func scoreDoc(qt []string, d indexed) (float64, bool) {
	total := 0.0
	for _, q := range qt {
		best := 2 * bestMatch(q, d.title)
		if b := bestMatch(q, d.body); b > best {
			best = b
		}
		if best == 0 {
			return 0, false
		}
		total += best
	}
	return total / float64(len(qt)), true
}

// bestMatch scores q against tokens: 1 for a prefix or substring hit,
// 1-d/len for a close edit distance, 0 otherwise.
func bestMatch(q string, tokens []string) float64 {
	best := 0.0
	n := len([]rune(q))
	maxDist := tolerance(n)
	for _, t := range tokens {
		if strings.Contains(t, q) {
			return 1
		}
		if maxDist == 0 {
			continue
		}
		if d := levenshtein.ComputeDistance(q, t); d <= maxDist {
			if s := 1 - float64(d)/float64(n); s > best {
				best = s
			}
		}
	}
	return best
}

func tolerance(n int) int {
	switch {
	case n <= 3:
		return 0
	case n <= 6:
		return 1
	default:
		return 2
	}
}

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases s and strips diacritics ("Décret" -> "decret").
func Normalize(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// Tokens splits the normalized s on anything that is not a letter or digit.
func Tokens(s string) []string {
	return strings.FieldsFunc(Normalize(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// FromTexts converts saved texts to documents.
func FromTexts(texts []domain.LegalText) []Doc {
	out := make([]Doc, 0, len(texts))
	for _, t := range texts {
		kind := KindLegalText
		if t.Kind == domain.KindProcedure {
			kind = KindProcedure
		}
		d := t.Draft
		out = append(out, Doc{
			ID:    t.ID,
			Kind:  kind,
			Title: t.Title(),
			Body: []string{
				d.Get(domain.FieldReference), d.Get(domain.FieldType), d.Get(domain.FieldDomain),
				d.Get(domain.FieldKeywords), d.Get(domain.FieldDescription),
			},
		})
	}
	return out
}

// FromDirectory converts directory entries to documents.
func FromDirectory(entries []domain.DirectoryEntry) []Doc {
	out := make([]Doc, 0, len(entries))
	for _, e := range entries {
		out = append(out, Doc{
			ID:    e.ID,
			Kind:  KindDirectory,
			Title: e.Name,
			Body:  []string{e.Type, e.Address, e.Description, e.Category.Label()},
		})
	}
	return out
}

// FromTrends converts trends to documents.
func FromTrends(trends []domain.Trend) []Doc {
	out := make([]Doc, 0, len(trends))
	for _, t := range trends {
		out = append(out, Doc{
			ID:    t.ID,
			Kind:  KindTrend,
			Title: t.Title,
			Body:  append([]string{t.Category, t.Description}, t.Keywords...),
		})
	}
	return out
}
