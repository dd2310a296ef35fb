package backlog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/appmarket/matchcore/common/logger"
	"github.com/appmarket/matchcore/internal/domain"
	"github.com/appmarket/matchcore/internal/llmgateway"
)

// Pipeline ties C8 and C9 together behind the single ingest operation the
// HTTP transport exercises.
type Pipeline struct {
	gateway llmgateway.Gateway
	matcher Matcher
	writer  Writer
	logger  *slog.Logger
}

// NewPipeline wires the backlog ingest pipeline. logger may be nil.
func NewPipeline(gateway llmgateway.Gateway, matcher Matcher, writer Writer, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{gateway: gateway, matcher: matcher, writer: writer, logger: logger}
}

// Ingest runs the full C8/C9 flow for one incoming request: translate,
// match, then write the match or no-match branch (spec.md §4.8-§4.9).
func (p *Pipeline) Ingest(ctx context.Context, req domain.BacklogIngestRequest) error {
	sc := logger.StartSpan(ctx, "backlog.ingest")
	defer sc.End()
	ctx = sc.Context()

	if err := ValidateIngest(req); err != nil {
		sc.RecordError(err)
		return err
	}

	englishPrompt, err := p.gateway.TranslateToEnglish(ctx, req.PromptText)
	if err != nil {
		sc.RecordError(err)
		return err
	}

	comparisonText := englishPrompt
	if req.CommentText != nil && strings.TrimSpace(*req.CommentText) != "" {
		englishComment, err := p.gateway.TranslateToEnglish(ctx, *req.CommentText)
		if err != nil {
			sc.RecordError(err)
			return err
		}
		comparisonText = englishPrompt + "\n" + englishComment
	}

	cardID, err := p.matcher.Match(ctx, comparisonText)
	if err != nil {
		sc.RecordError(err)
		return err
	}

	if cardID != domain.NoMatchCardID {
		p.logger.InfoContext(ctx, "backlog prompt matched existing card", "card_id", cardID)
		if err := p.writer.RecordMatch(ctx, cardID, req.PromptText, req.CommentText); err != nil {
			sc.RecordError(err)
			return err
		}
		return nil
	}

	newCardID, err := p.writer.RecordNoMatch(ctx, englishPrompt, req.PromptText, req.CommentText)
	if err != nil {
		sc.RecordError(err)
		return err
	}
	p.logger.InfoContext(ctx, "backlog prompt created new card", "card_id", newCardID)
	return nil
}
