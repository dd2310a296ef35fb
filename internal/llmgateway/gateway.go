// Package llmgateway implements C1: the one-shot calls to the external
// chat and embedding models that every other component depends on.
package llmgateway

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/appmarket/matchcore/internal/domain"
)

// maxRetries bounds the "small fixed bound" the spec mandates for
// generate_card_fields and extract_requirements (spec.md §4.1).
const maxRetries = 3

// CardFields is the output of generate_card_fields.
type CardFields struct {
	Title       string
	Description string
}

// Gateway is the LLM Gateway contract consumed by the rest of the core.
type Gateway interface {
	TranslateToEnglish(ctx context.Context, text string) (string, error)
	ExtractRequirements(ctx context.Context, turnText string, prior *domain.Accumulated) (domain.RequirementDelta, error)
	GetEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateCardFields(ctx context.Context, promptText string) (CardFields, error)
}

// EmbeddingCache is the optional cross-request memoization hook described
// in SPEC_FULL.md §4.1. A nil cache disables memoization entirely.
type EmbeddingCache interface {
	Get(ctx context.Context, key string) ([]float32, bool)
	Set(ctx context.Context, key string, vec []float32)
}

// Config configures the underlying OpenAI-backed gateway.
type Config struct {
	APIKey         string
	BaseURL        string
	ChatModel      string
	EmbeddingModel string
}

type gateway struct {
	client         openai.Client
	chatModel      string
	embeddingModel string
	cache          EmbeddingCache
}

// New builds a Gateway. cache may be nil.
func New(cfg Config, cache EmbeddingCache) (Gateway, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llmgateway: API key is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = "gpt-4o-mini"
	}
	embeddingModel := cfg.EmbeddingModel
	if embeddingModel == "" {
		embeddingModel = "text-embedding-3-small"
	}

	return &gateway{
		client:         openai.NewClient(opts...),
		chatModel:      chatModel,
		embeddingModel: embeddingModel,
		cache:          cache,
	}, nil
}

// TranslateToEnglish is idempotent: English input is returned unchanged.
func (g *gateway) TranslateToEnglish(ctx context.Context, text string) (string, error) {
	resp, err := g.chatOnce(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage("You translate buyer text to English. " +
			"If the text is already English, return it verbatim. " +
			"Respond with the translated text only, no commentary."),
		openai.UserMessage(text),
	}, nil)
	if err != nil {
		return "", domain.NewError(domain.ErrExternalService, "translate to english", err)
	}
	out := strings.TrimSpace(resp)
	if out == "" {
		return text, nil
	}
	return out, nil
}

// extractionSchema is the JSON shape constraining extract_requirements
// output, generated once at package init via invopop/jsonschema the same
// way the teacher's GenerateSchemaFrom helper does.
var extractionSchema = buildExtractionSchema()

type extractionResult struct {
	Labels       []string `json:"labels"`
	Tags         []string `json:"tags"`
	Integrations []string `json:"integrations"`
	PriceMax     *float64 `json:"price_max"`
}

func (g *gateway) ExtractRequirements(ctx context.Context, turnText string, prior *domain.Accumulated) (domain.RequirementDelta, error) {
	system := buildExtractionSystemPrompt(prior)

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		raw, err := g.chatOnce(ctx, []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(turnText),
		}, extractionSchema)
		if err != nil {
			return domain.RequirementDelta{}, domain.NewError(domain.ErrExternalService, "extract requirements", err)
		}

		var parsed extractionResult
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			lastErr = err
			slog.WarnContext(ctx, "extraction response failed to parse, retrying",
				"attempt", attempt+1, "error", err)
			continue
		}

		return domain.RequirementDelta{
			Labels:       parsed.Labels,
			Tags:         parsed.Tags,
			Integrations: titleCaseAll(parsed.Integrations),
			PriceMax:     parsed.PriceMax,
		}, nil
	}

	return domain.RequirementDelta{}, domain.NewError(domain.ErrMalformedResponse, "extraction response did not conform after retries", lastErr)
}

func titleCaseAll(vs []string) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = domain.TitleCase(v)
	}
	return out
}

func (g *gateway) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	key := cacheKey(text)
	if g.cache != nil {
		if vec, ok := g.cache.Get(ctx, key); ok {
			return vec, nil
		}
	}

	resp, err := g.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(g.embeddingModel),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: []string{text},
		},
	})
	if err != nil {
		return nil, domain.NewError(domain.ErrExternalService, "get embedding", err)
	}
	if len(resp.Data) == 0 {
		return nil, domain.NewError(domain.ErrExternalService, "get embedding: empty response", nil)
	}

	vec := make([]float32, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vec[i] = float32(v)
	}

	if g.cache != nil {
		g.cache.Set(ctx, key, vec)
	}
	return vec, nil
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(strings.ToLower(text))))
	return "embedding:" + hex.EncodeToString(sum[:])
}

var cardFieldsSchema = buildCardFieldsSchema()

type cardFieldsResult struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (g *gateway) GenerateCardFields(ctx context.Context, promptText string) (CardFields, error) {
	system := "You write backlog card fields for a marketplace feature-request tracker. " +
		"Given a buyer prompt, produce a title of at most 10 words and a one-paragraph " +
		"English description summarizing the request. Respond only with the JSON shape requested."

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		raw, err := g.chatOnce(ctx, []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(promptText),
		}, cardFieldsSchema)
		if err != nil {
			return CardFields{}, domain.NewError(domain.ErrExternalService, "generate card fields", err)
		}

		var parsed cardFieldsResult
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			lastErr = err
			continue
		}

		title := strings.TrimSpace(parsed.Title)
		desc := strings.TrimSpace(parsed.Description)
		if title == "" || desc == "" || countWords(title) > 10 {
			lastErr = fmt.Errorf("card fields failed validation: title=%q", title)
			continue
		}

		return CardFields{Title: title, Description: desc}, nil
	}

	return CardFields{}, domain.NewError(domain.ErrExternalService, "card field generation exhausted retry budget", lastErr)
}

func countWords(s string) int {
	return len(strings.Fields(s))
}

// chatOnce issues a single chat completion. When schema is non-nil the
// response is constrained to that JSON schema.
func (g *gateway) chatOnce(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion, schema *jsonSchemaFormat) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    g.chatModel,
		Messages: messages,
	}
	if schema != nil {
		params.ResponseFormat = schema.toResponseFormat()
	}

	start := time.Now()
	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	slog.DebugContext(ctx, "llm gateway chat completed",
		"model", g.chatModel,
		"duration_ms", time.Since(start).Milliseconds())

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in chat completion response")
	}
	return resp.Choices[0].Message.Content, nil
}
