// Package requirement implements C3: turning one dialog turn into a
// structured requirement delta.
package requirement

import (
	"context"

	"github.com/appmarket/matchcore/internal/domain"
	"github.com/appmarket/matchcore/internal/llmgateway"
)

// Parser is the C3 contract.
type Parser interface {
	Parse(ctx context.Context, turnText string, prior *domain.Accumulated) (domain.RequirementDelta, error)
}

type parser struct {
	gateway llmgateway.Gateway
}

// New builds a Parser backed by the given LLM gateway.
func New(gateway llmgateway.Gateway) Parser {
	return &parser{gateway: gateway}
}

// Parse translates the turn to English, extracts the requirement delta,
// and deduplicates its lists case-insensitively (spec.md §4.3).
func (p *parser) Parse(ctx context.Context, turnText string, prior *domain.Accumulated) (domain.RequirementDelta, error) {
	english, err := p.gateway.TranslateToEnglish(ctx, turnText)
	if err != nil {
		return domain.RequirementDelta{}, err
	}

	delta, err := p.gateway.ExtractRequirements(ctx, english, prior)
	if err != nil {
		return domain.RequirementDelta{}, err
	}

	return domain.RequirementDelta{
		Labels:       dedupe(delta.Labels),
		Tags:         dedupe(delta.Tags),
		Integrations: dedupe(delta.Integrations),
		PriceMax:     delta.PriceMax,
	}, nil
}

// dedupe removes case-insensitive duplicates while keeping first-seen
// casing and order, the same rule applied to session accumulation.
func dedupe(vs []string) []string {
	set := domain.NewStringSet(vs...)
	return set.Values()
}
