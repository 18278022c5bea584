package analytics

import (
	"math/rand/v2"
	"strings"
	"time"

	"dalil/internal/domain"
)

// TrendCategories are the categories offered when adding a trend.
var TrendCategories = []string{
	"Droit Commercial",
	"Droit du Travail",
	"Fiscalité",
	"Droit Administratif",
	"Droit Pénal",
	"Droit Civil",
}

// EnrichmentKeywords are proposed when a trend is enriched; the first two are applied.
var EnrichmentKeywords = []string{"nouveauté", "jurisprudence", "application"}

// SeedTrends are the trends shown before any has been stored.
func SeedTrends() []domain.Trend {
	day := func(d int) time.Time { return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC) }
	return []domain.Trend{
		{ID: "seed-1", Title: "Réforme du Code du Commerce", Category: "Droit Commercial", Priority: domain.PriorityMedium,
			Searches: 245, Growth: 18, Keywords: []string{"commerce", "réforme", "entreprise"}, UpdatedAt: day(15)},
		{ID: "seed-2", Title: "Nouvelles Procédures Fiscales", Category: "Fiscalité", Priority: domain.PriorityMedium,
			Searches: 189, Growth: 12, Keywords: []string{"fiscalité", "impôts", "procédures"}, UpdatedAt: day(14)},
		{ID: "seed-3", Title: "Évolutions du Droit du Travail", Category: "Droit Social", Priority: domain.PriorityMedium,
			Searches: 156, Growth: 25, Keywords: []string{"travail", "salarié", "contrat"}, UpdatedAt: day(13)},
	}
}

// NewTrend is the add-trend form.
type NewTrend struct {
	Title       string
	Category    string
	Description string
	Keywords    string // comma separated
	Priority    domain.Priority
}

// Trends creates and enriches trends with simulated search figures.
type Trends struct {
	rnd *rand.Rand
	now func() time.Time
}

// NewTrends returns a Trends using r for the simulated figures (a random
// source when nil).
func NewTrends(r *rand.Rand) *Trends {
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Trends{rnd: r, now: time.Now}
}

// Add turns the form into a Trend. Title and category are required.
// Searches are drawn from 50..249 and growth from 5..34 percent.
func (t *Trends) Add(in NewTrend) (domain.Trend, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Category) == "" {
		field := "title"
		if strings.TrimSpace(in.Title) != "" {
			field = "category"
		}
		return domain.Trend{}, &domain.Error{
			Op:    "trends.add",
			Kind:  domain.KindValidation,
			Field: field,
			Msg:   "Le titre et la catégorie sont obligatoires.",
			Err:   domain.ErrRequired,
		}
	}
	prio := in.Priority
	if prio == "" {
		prio = domain.PriorityMedium
	}
	return domain.Trend{
		Title:       strings.TrimSpace(in.Title),
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		Priority:    prio,
		Searches:    50 + t.rnd.IntN(200),
		Growth:      5 + t.rnd.IntN(30),
		Keywords:    domain.SplitKeywords(in.Keywords),
		UpdatedAt:   t.now().UTC(),
	}, nil
}

// Enrich appends the first two enrichment keywords and adds 0..49 searches.
func (t *Trends) Enrich(tr domain.Trend) domain.Trend {
	kw := make([]string, 0, len(tr.Keywords)+2)
	kw = append(kw, tr.Keywords...)
	tr.Keywords = append(kw, EnrichmentKeywords[:2]...)
	tr.Searches += t.rnd.IntN(50)
	tr.UpdatedAt = t.now().UTC()
	return tr
}
