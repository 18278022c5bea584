// Package generate produces GenerationResults for the auto-fill wizard.
package generate

import (
	"context"
	"fmt"
	"strings"

	"dalil/internal/domain"
)

// Request is the wizard input handed to a generator.
type Request struct {
	Context      domain.ContextTag
	Reference    string
	DocumentType domain.DocumentType
	Keywords     string
	Description  string
}

// Generator turns a request into a generation result.
type Generator interface {
	Generate(ctx context.Context, req Request) (domain.GenerationResult, error)
}

// Provider names accepted by New.
const (
	ProviderSimulated = "simulated"
	ProviderOpenAI    = "openai"
)

// Settings configures New.
type Settings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// New returns the generator selected by s.Provider. An empty provider selects the simulated one.
func New(s Settings) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(s.Provider)) {
	case "", ProviderSimulated:
		return Simulated{}, nil
	case ProviderOpenAI:
		client, err := NewOpenAIClient(s)
		if err != nil {
			return nil, err
		}
		return &LLM{Client: client}, nil
	default:
		return nil, fmt.Errorf("unknown generator provider %q", s.Provider)
	}
}

// subject picks the free-text subject of a request, falling back to a per-context default.
func subject(req Request) string {
	if d := strings.TrimSpace(req.Description); d != "" {
		return d
	}
	switch req.Context {
	case domain.ContextLegalTexts:
		return "l'organisation et le fonctionnement des services publics"
	case domain.ContextProcedures:
		return "les modalités de traitement des demandes administratives"
	default:
		return "les dispositions applicables"
	}
}

// title builds "<reference> relatif à <subject>", using the document type when no reference is given.
func title(req Request) string {
	head := strings.TrimSpace(req.Reference)
	if head == "" {
		head = req.DocumentType.Label()
	}
	return fmt.Sprintf("%s relatif à %s", head, subject(req))
}

// mergeKeywords appends extra to the user's keywords, dropping case-insensitive duplicates.
func mergeKeywords(user string, extra []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, k := range append(domain.SplitKeywords(user), extra...) {
		key := strings.ToLower(k)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, k)
	}
	return out
}
