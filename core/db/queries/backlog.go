package queries

import "context"

// ActiveCards returns every status=active card together with the text of
// its linked prompts, for the backlog matcher's per-card sampling
// (spec.md §4.2 active_cards). Cards with zero prompts are included with
// an empty Prompts slice; the matcher skips those during sampling.
func (q *Queries) ActiveCards(ctx context.Context) ([]ActiveCardRow, error) {
	const sql = `
		SELECT
			c.id,
			COALESCE(array_agg(p.prompt_text) FILTER (WHERE p.id IS NOT NULL), '{}') AS prompts
		FROM cards c
		LEFT JOIN card_prompts_comments p ON p.card_id = c.id
		WHERE c.status = 1
		GROUP BY c.id
	`

	rows, err := q.db.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ActiveCardRow
	for rows.Next() {
		var r ActiveCardRow
		if err := rows.Scan(&r.CardID, &r.Prompts); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CreateCard inserts a new card with status=active and
// number_of_requests=1 (spec.md §4.9, no-match branch), returning the
// generated row including its server-assigned created_at.
func (q *Queries) CreateCard(ctx context.Context, id int64, title, description string) (Card, error) {
	const sql = `
		INSERT INTO cards (id, title, description, status, number_of_requests, created_at)
		VALUES ($1, $2, $3, 1, 1, now())
		RETURNING id, title, description, status, number_of_requests, created_at
	`

	var c Card
	err := q.db.QueryRow(ctx, sql, id, title, description).Scan(
		&c.ID, &c.Title, &c.Description, &c.Status, &c.NumberOfRequests, &c.CreatedAt,
	)
	return c, err
}

// InsertPromptComment inserts one child row verbatim, storing the
// original (non-translated) prompt text (spec.md §4.9).
func (q *Queries) InsertPromptComment(ctx context.Context, id, cardID int64, promptText string, commentText *string) (PromptComment, error) {
	const sql = `
		INSERT INTO card_prompts_comments (id, card_id, prompt_text, comment_text, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id, card_id, prompt_text, comment_text, created_at
	`

	var pc PromptComment
	err := q.db.QueryRow(ctx, sql, id, cardID, promptText, commentText).Scan(
		&pc.ID, &pc.CardID, &pc.PromptText, &pc.CommentText, &pc.CreatedAt,
	)
	return pc, err
}

// IncrementCardRequests atomically bumps number_of_requests by one
// (spec.md §4.9, match branch), keeping the invariant that it equals the
// count of linked card_prompts_comments.
func (q *Queries) IncrementCardRequests(ctx context.Context, cardID int64) error {
	const sql = `UPDATE cards SET number_of_requests = number_of_requests + 1 WHERE id = $1`

	tag, err := q.db.Exec(ctx, sql, cardID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCardNotFound
	}
	return nil
}
