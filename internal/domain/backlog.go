package domain

import "time"

// CardStatus mirrors the status codes of the persisted cards table.
type CardStatus int

const (
	// CardStatusActive is status code 1, per spec.md §3.
	CardStatusActive CardStatus = 1
)

// Card is a backlog entity clustering near-duplicate feature requests.
type Card struct {
	ID                int64
	Title             string
	Description       string
	Status            CardStatus
	NumberOfRequests  int64
	CreatedAt         time.Time
}

// PromptComment is a child record of a Card: one ingested prompt (and an
// optional free-form comment) that was attached to it.
type PromptComment struct {
	ID          int64
	CardID      int64
	PromptText  string
	CommentText *string
	CreatedAt   time.Time
}

// ActiveCard is the shape the backlog matcher reads: a card plus the text
// of every linked prompt, ready for per-card sampling.
type ActiveCard struct {
	ID      int64
	Prompts []string
}

// BacklogIngestRequest is the input to the backlog matcher/writer pipeline.
type BacklogIngestRequest struct {
	PromptText  string
	CommentText *string
}

// NoMatchCardID is the sentinel returned by the backlog matcher when no
// active card clears the match threshold (spec.md §4.8).
const NoMatchCardID int64 = 0
