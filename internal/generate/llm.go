package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/tidwall/gjson"

	"dalil/internal/domain"
)

// Completer abstracts a chat model so LLM can be tested without a network.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// LLM generates results by asking a model for a JSON object.
type LLM struct {
	Client Completer
}

const systemPrompt = `Tu es un assistant de saisie pour une plateforme de veille juridique algérienne.
Réponds uniquement avec un objet JSON ayant les clés:
"title" (string), "summary" (string), "keywords" (tableau de strings),
"category" (string), "fullContent" (string, markdown).`

// Generate implements Generator.
func (l *LLM) Generate(ctx context.Context, req Request) (domain.GenerationResult, error) {
	if l == nil || l.Client == nil {
		return domain.GenerationResult{}, &domain.Error{Op: "generate.llm", Kind: domain.KindGeneration, Err: errors.New("no model client")}
	}
	raw, err := l.Client.Complete(ctx, systemPrompt, userPrompt(req))
	if err != nil {
		return domain.GenerationResult{}, &domain.Error{
			Op:   "generate.llm",
			Kind: domain.KindGeneration,
			Msg:  "La génération a échoué. Réessayez.",
			Err:  err,
		}
	}
	res, err := parseResult(raw)
	if err != nil {
		return domain.GenerationResult{}, &domain.Error{
			Op:   "generate.llm",
			Kind: domain.KindGeneration,
			Msg:  "Réponse du modèle illisible. Réessayez.",
			Err:  err,
		}
	}
	if res.Category == "" {
		res.Category = cannedByContext[req.Context].category
	}
	return res, nil
}

func userPrompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Contexte: %s\n", req.Context.Label())
	fmt.Fprintf(&b, "Type de document: %s\n", req.DocumentType.Label())
	if req.Reference != "" {
		fmt.Fprintf(&b, "Référence: %s\n", req.Reference)
	}
	if req.Keywords != "" {
		fmt.Fprintf(&b, "Mots-clés: %s\n", req.Keywords)
	}
	if req.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", req.Description)
	}
	b.WriteString("Le titre doit contenir la référence telle quelle.")
	return b.String()
}

// parseResult extracts a GenerationResult from a model reply, tolerating markdown code fences.
func parseResult(raw string) (domain.GenerationResult, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	if !gjson.Valid(s) {
		return domain.GenerationResult{}, errors.New("reply is not valid JSON")
	}
	doc := gjson.Parse(s)
	if !doc.IsObject() {
		return domain.GenerationResult{}, errors.New("reply is not a JSON object")
	}
	res := domain.GenerationResult{
		Title:       doc.Get("title").String(),
		Summary:     doc.Get("summary").String(),
		Category:    doc.Get("category").String(),
		FullContent: doc.Get("fullContent").String(),
	}
	for _, k := range doc.Get("keywords").Array() {
		if v := strings.TrimSpace(k.String()); v != "" {
			res.Keywords = append(res.Keywords, v)
		}
	}
	if res.Title == "" {
		return domain.GenerationResult{}, errors.New("reply has no title")
	}
	return res, nil
}

// OpenAIClient implements Completer with the openai-go SDK.
type OpenAIClient struct {
	Model string
	Opts  []option.RequestOption
}

// NewOpenAIClient validates settings and builds a client.
func NewOpenAIClient(s Settings) (*OpenAIClient, error) {
	if s.APIKey == "" {
		return nil, errors.New("openai api key missing; set generator.api_key or the variable named by generator.api_key_env")
	}
	if s.Model == "" {
		return nil, errors.New("generator.model is required for the openai provider")
	}
	opts := []option.RequestOption{option.WithAPIKey(s.APIKey)}
	if s.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(s.BaseURL))
	}
	return &OpenAIClient{Model: s.Model, Opts: opts}, nil
}

// Complete implements Completer.
func (o *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	client := openai.NewClient(o.Opts...)
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion")
	}
	return resp.Choices[0].Message.Content, nil
}
