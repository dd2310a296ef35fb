// Package backlog implements C8 (backlog matcher) and C9 (backlog writer):
// deduplicating incoming feature requests against the active card backlog.
package backlog

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/appmarket/matchcore/internal/catalog"
	"github.com/appmarket/matchcore/internal/domain"
	"github.com/appmarket/matchcore/internal/llmgateway"
	"github.com/appmarket/matchcore/internal/scorer"
)

const (
	minPromptLen  = 5
	maxPromptLen  = 2000
	maxCommentLen = 1000

	// MatchThresholdPercent is the minimum similarity percent at which an
	// incoming prompt is folded into an existing card (spec.md §4.8 step 4).
	MatchThresholdPercent = 50
)

// Rand is the source of randomness for per-card prompt sampling. Tests
// inject a deterministic one; production passes nil and NewMatcher builds
// a randomly seeded source (spec.md §4.8 determinism note: sampling is
// not seeded by default).
type Rand interface {
	Intn(n int) int
}

// Matcher is the C8 contract.
type Matcher interface {
	// Match returns the id of the best active card whose sampled prompt
	// clears MatchThresholdPercent, or domain.NoMatchCardID.
	Match(ctx context.Context, englishPrompt string) (int64, error)
}

type matcher struct {
	reader  catalog.BacklogReader
	gateway llmgateway.Gateway
	rng     Rand
}

// NewMatcher builds a Matcher. rng may be nil to use a new math/rand
// source seeded from the global generator.
func NewMatcher(reader catalog.BacklogReader, gateway llmgateway.Gateway, rng Rand) Matcher {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &matcher{reader: reader, gateway: gateway, rng: rng}
}

func (m *matcher) Match(ctx context.Context, englishPrompt string) (int64, error) {
	cards, err := m.reader.ActiveCards(ctx)
	if err != nil {
		return 0, domain.NewError(domain.ErrStorage, "fetch active cards", err)
	}

	promptEmbedding, err := m.gateway.GetEmbedding(ctx, englishPrompt)
	if err != nil {
		return 0, err
	}

	bestCard := domain.NoMatchCardID
	bestPercent := -1

	for _, card := range cards {
		if len(card.Prompts) == 0 {
			continue
		}
		sampled := card.Prompts[m.rng.Intn(len(card.Prompts))]

		sampledEnglish, err := m.gateway.TranslateToEnglish(ctx, sampled)
		if err != nil {
			return 0, err
		}
		sampledEmbedding, err := m.gateway.GetEmbedding(ctx, sampledEnglish)
		if err != nil {
			return 0, err
		}

		cosine := scorer.CosineSimilarity(promptEmbedding, sampledEmbedding)
		percent := scorer.SigmoidPercent(cosine)
		if percent > bestPercent {
			bestPercent = percent
			bestCard = card.ID
		}
	}

	if bestPercent >= MatchThresholdPercent {
		return bestCard, nil
	}
	return domain.NoMatchCardID, nil
}

// ValidateIngest enforces the length bounds on a raw ingest request
// (spec.md §4.8).
func ValidateIngest(req domain.BacklogIngestRequest) error {
	prompt := strings.TrimSpace(req.PromptText)
	if len(prompt) < minPromptLen || len(prompt) > maxPromptLen {
		return domain.NewError(domain.ErrInvalidInput,
			fmt.Sprintf("prompt_text must be between %d and %d characters", minPromptLen, maxPromptLen), nil)
	}
	if req.CommentText != nil && len(strings.TrimSpace(*req.CommentText)) > maxCommentLen {
		return domain.NewError(domain.ErrInvalidInput,
			fmt.Sprintf("comment_text must be at most %d characters", maxCommentLen), nil)
	}
	return nil
}
