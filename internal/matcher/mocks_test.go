package matcher_test

import (
	"context"

	"github.com/appmarket/matchcore/internal/domain"
	"github.com/appmarket/matchcore/internal/llmgateway"
)

type mockGateway struct {
	translateFn func(ctx context.Context, text string) (string, error)
	extractFn   func(ctx context.Context, text string, prior *domain.Accumulated) (domain.RequirementDelta, error)
	embedFn     func(ctx context.Context, text string) ([]float32, error)
	cardFn      func(ctx context.Context, promptText string) (llmgateway.CardFields, error)
}

func (m *mockGateway) TranslateToEnglish(ctx context.Context, text string) (string, error) {
	if m.translateFn != nil {
		return m.translateFn(ctx, text)
	}
	return text, nil
}

func (m *mockGateway) ExtractRequirements(ctx context.Context, text string, prior *domain.Accumulated) (domain.RequirementDelta, error) {
	if m.extractFn != nil {
		return m.extractFn(ctx, text, prior)
	}
	return domain.RequirementDelta{}, nil
}

func (m *mockGateway) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (m *mockGateway) GenerateCardFields(ctx context.Context, promptText string) (llmgateway.CardFields, error) {
	if m.cardFn != nil {
		return m.cardFn(ctx, promptText)
	}
	return llmgateway.CardFields{}, nil
}

type mockCatalog struct {
	vectorFn   func(ctx context.Context, embedding []float32, k int) ([]domain.VectorCandidate, error)
	featuresFn func(ctx context.Context, ids []int64) (map[int64]domain.AppFeatures, error)
	synonymsFn func(ctx context.Context, labels []string) (map[string]domain.LabelSynonyms, error)
	namesFn    func(ctx context.Context, ids []int64) (map[int64]string, error)
}

func (m *mockCatalog) VectorCandidates(ctx context.Context, embedding []float32, k int) ([]domain.VectorCandidate, error) {
	if m.vectorFn != nil {
		return m.vectorFn(ctx, embedding, k)
	}
	return nil, nil
}

func (m *mockCatalog) FetchFeatures(ctx context.Context, ids []int64) (map[int64]domain.AppFeatures, error) {
	if m.featuresFn != nil {
		return m.featuresFn(ctx, ids)
	}
	return nil, nil
}

func (m *mockCatalog) FetchSynonyms(ctx context.Context, labels []string) (map[string]domain.LabelSynonyms, error) {
	if m.synonymsFn != nil {
		return m.synonymsFn(ctx, labels)
	}
	return nil, nil
}

func (m *mockCatalog) FetchAppNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	if m.namesFn != nil {
		return m.namesFn(ctx, ids)
	}
	return nil, nil
}
