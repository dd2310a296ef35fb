package backlog_test

import (
	"context"

	"github.com/appmarket/matchcore/internal/domain"
	"github.com/appmarket/matchcore/internal/llmgateway"
)

type mockBacklogReader struct {
	cards []domain.ActiveCard
	err   error
}

func (m *mockBacklogReader) ActiveCards(_ context.Context) ([]domain.ActiveCard, error) {
	return m.cards, m.err
}

type mockGateway struct {
	translateFn func(ctx context.Context, text string) (string, error)
	embedFn     func(ctx context.Context, text string) ([]float32, error)
	cardFn      func(ctx context.Context, promptText string) (llmgateway.CardFields, error)
}

func (m *mockGateway) TranslateToEnglish(ctx context.Context, text string) (string, error) {
	if m.translateFn != nil {
		return m.translateFn(ctx, text)
	}
	return text, nil
}

func (m *mockGateway) ExtractRequirements(_ context.Context, _ string, _ *domain.Accumulated) (domain.RequirementDelta, error) {
	return domain.RequirementDelta{}, nil
}

func (m *mockGateway) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return []float32{1, 0, 0}, nil
}

func (m *mockGateway) GenerateCardFields(ctx context.Context, promptText string) (llmgateway.CardFields, error) {
	if m.cardFn != nil {
		return m.cardFn(ctx, promptText)
	}
	return llmgateway.CardFields{Title: "Untitled", Description: promptText}, nil
}

// fixedRand always returns n (0 for fixedRand{}), making "random"
// sampling deterministic for tests (spec.md §4.8 determinism note).
type fixedRand struct{ n int }

func (f fixedRand) Intn(_ int) int { return f.n }
