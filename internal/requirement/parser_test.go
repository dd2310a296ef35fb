package requirement

import (
	"context"
	"errors"
	"testing"

	"github.com/appmarket/matchcore/internal/domain"
	"github.com/appmarket/matchcore/internal/llmgateway"
)

type fakeGateway struct {
	translateFn func(ctx context.Context, text string) (string, error)
	extractFn   func(ctx context.Context, turnText string, prior *domain.Accumulated) (domain.RequirementDelta, error)
}

func (f *fakeGateway) TranslateToEnglish(ctx context.Context, text string) (string, error) {
	if f.translateFn != nil {
		return f.translateFn(ctx, text)
	}
	return text, nil
}

func (f *fakeGateway) ExtractRequirements(ctx context.Context, turnText string, prior *domain.Accumulated) (domain.RequirementDelta, error) {
	return f.extractFn(ctx, turnText, prior)
}

func (f *fakeGateway) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeGateway) GenerateCardFields(ctx context.Context, promptText string) (llmgateway.CardFields, error) {
	return llmgateway.CardFields{}, errors.New("not implemented")
}

func TestParse_TranslatesThenExtractsAndDedupes(t *testing.T) {
	var translatedInput string
	gw := &fakeGateway{
		translateFn: func(ctx context.Context, text string) (string, error) {
			return "I need a CRM", nil
		},
		extractFn: func(ctx context.Context, turnText string, prior *domain.Accumulated) (domain.RequirementDelta, error) {
			translatedInput = turnText
			return domain.RequirementDelta{Labels: []string{"CRM", "crm", " CRM "}}, nil
		},
	}

	p := New(gw)
	delta, err := p.Parse(context.Background(), "necesito un CRM", domain.NewAccumulated())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if translatedInput != "I need a CRM" {
		t.Fatalf("expected extraction to receive translated text, got %q", translatedInput)
	}
	if len(delta.Labels) != 1 {
		t.Fatalf("expected deduped labels, got %v", delta.Labels)
	}
}

func TestParse_PropagatesTranslateError(t *testing.T) {
	wantErr := domain.NewError(domain.ErrExternalService, "translate to english", errors.New("timeout"))
	gw := &fakeGateway{
		translateFn: func(ctx context.Context, text string) (string, error) {
			return "", wantErr
		},
	}

	p := New(gw)
	_, err := p.Parse(context.Background(), "x", domain.NewAccumulated())
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected translate error to propagate, got %v", err)
	}
}

func TestParse_PropagatesExtractError(t *testing.T) {
	wantErr := domain.NewError(domain.ErrMalformedResponse, "bad json", nil)
	gw := &fakeGateway{
		extractFn: func(ctx context.Context, turnText string, prior *domain.Accumulated) (domain.RequirementDelta, error) {
			return domain.RequirementDelta{}, wantErr
		},
	}

	p := New(gw)
	_, err := p.Parse(context.Background(), "x", domain.NewAccumulated())
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected extract error to propagate, got %v", err)
	}
}
