package generate

import (
	"context"
	"fmt"
	"strings"

	"dalil/internal/domain"
)

// Fixed categories per context.
const (
	CategoryLegalTexts = "Textes juridiques"
	CategoryProcedures = "Procédures administratives"
	CategoryGeneral    = "Général"
)

type canned struct {
	category string
	keywords []string
	summary  string
	articles []string
}

var cannedByContext = map[domain.ContextTag]canned{
	domain.ContextLegalTexts: {
		category: CategoryLegalTexts,
		keywords: []string{"réglementation", "journal officiel", "application"},
		summary:  "Texte fixant %s. Il précise le champ d'application, les autorités compétentes et les conditions d'entrée en vigueur.",
		articles: []string{
			"Le présent texte a pour objet de fixer %s.",
			"Les dispositions du présent texte s'appliquent à l'ensemble des administrations publiques concernées.",
			"Le présent texte sera publié au Journal officiel de la République algérienne démocratique et populaire.",
		},
	},
	domain.ContextProcedures: {
		category: CategoryProcedures,
		keywords: []string{"procédure", "dossier", "délais"},
		summary:  "Procédure décrivant %s : pièces à fournir, étapes de traitement et délais de réponse.",
		articles: []string{
			"La demande porte sur %s et est déposée auprès du service compétent.",
			"Le dossier comprend une demande manuscrite, une copie de la pièce d'identité et tout justificatif requis.",
			"Le service compétent statue dans un délai de trente (30) jours à compter du dépôt du dossier complet.",
		},
	},
	domain.ContextGeneral: {
		category: CategoryGeneral,
		keywords: []string{"veille juridique", "synthèse"},
		summary:  "Synthèse portant sur %s.",
		articles: []string{
			"Ce document présente %s.",
			"Les éléments ci-dessus sont fournis à titre indicatif.",
		},
	},
}

// Simulated returns canned output keyed only by the context tag. It never fails.
type Simulated struct{}

// Generate implements Generator.
func (Simulated) Generate(_ context.Context, req Request) (domain.GenerationResult, error) {
	c, ok := cannedByContext[req.Context]
	if !ok {
		c = cannedByContext[domain.ContextGeneral]
	}
	subj := subject(req)
	t := title(req)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", t)
	if ref := strings.TrimSpace(req.Reference); ref != "" {
		fmt.Fprintf(&b, "**Référence :** %s\n\n", ref)
	}
	fmt.Fprintf(&b, "**Type :** %s\n\n", req.DocumentType.Label())
	for i, a := range c.articles {
		if strings.Contains(a, "%s") {
			a = fmt.Sprintf(a, subj)
		}
		if i == 0 {
			b.WriteString("## Article 1er\n\n")
		} else {
			fmt.Fprintf(&b, "## Article %d\n\n", i+1)
		}
		b.WriteString(a + "\n\n")
	}

	return domain.GenerationResult{
		Title:       t,
		Summary:     fmt.Sprintf(c.summary, subj),
		Keywords:    mergeKeywords(req.Keywords, c.keywords),
		Category:    c.category,
		FullContent: strings.TrimRight(b.String(), "\n"),
	}, nil
}
