package backlog

import (
	"context"

	"github.com/appmarket/matchcore/common/id"
	"github.com/appmarket/matchcore/core/db"
	"github.com/appmarket/matchcore/core/db/queries"
	"github.com/appmarket/matchcore/internal/domain"
	"github.com/appmarket/matchcore/internal/llmgateway"
)

// Writer is the C9 contract: the transactional match/no-match branches
// that follow a C8 decision.
type Writer interface {
	// RecordMatch attaches promptText/commentText to cardID and bumps its
	// request count, in one transaction (spec.md §4.9 "On match").
	RecordMatch(ctx context.Context, cardID int64, promptText string, commentText *string) error

	// RecordNoMatch generates card fields from englishPrompt, then creates
	// the card and its first prompt_comment in one transaction, storing
	// the original (non-translated) promptText in the child row
	// (spec.md §4.9 "On no-match").
	RecordNoMatch(ctx context.Context, englishPrompt, promptText string, commentText *string) (int64, error)
}

type writer struct {
	database *db.DB
	gateway  llmgateway.Gateway
}

// NewWriter builds a Writer.
func NewWriter(database *db.DB, gateway llmgateway.Gateway) Writer {
	return &writer{database: database, gateway: gateway}
}

func (w *writer) RecordMatch(ctx context.Context, cardID int64, promptText string, commentText *string) error {
	err := w.database.WithTx(ctx, func(q *queries.Queries) error {
		if _, err := q.InsertPromptComment(ctx, id.New(), cardID, promptText, commentText); err != nil {
			return err
		}
		return q.IncrementCardRequests(ctx, cardID)
	})
	if err != nil {
		return domain.NewError(domain.ErrStorage, "record backlog match", err)
	}
	return nil
}

func (w *writer) RecordNoMatch(ctx context.Context, englishPrompt, promptText string, commentText *string) (int64, error) {
	fields, err := w.gateway.GenerateCardFields(ctx, englishPrompt)
	if err != nil {
		return 0, err
	}

	cardID := id.New()
	err = w.database.WithTx(ctx, func(q *queries.Queries) error {
		if _, err := q.CreateCard(ctx, cardID, fields.Title, fields.Description); err != nil {
			return err
		}
		_, err := q.InsertPromptComment(ctx, id.New(), cardID, promptText, commentText)
		return err
	})
	if err != nil {
		return 0, domain.NewError(domain.ErrStorage, "record backlog no-match", err)
	}
	return cardID, nil
}
