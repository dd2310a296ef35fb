package httpapi

import "github.com/appmarket/matchcore/internal/domain"

// The four request/response shapes mirror the normative bodies in
// spec.md §6 exactly.

type startRequest struct {
	PromptText string `json:"prompt_text" binding:"required"`
}

type continueRequest struct {
	Session    *domain.Session `json:"session" binding:"required"`
	AnswerText string          `json:"answer_text" binding:"required"`
}

type finalizeRequest struct {
	Session *domain.Session `json:"session" binding:"required"`
	TopK    int             `json:"top_k"`
	TopN    int             `json:"top_n"`
}

type matchResponse struct {
	Status      string             `json:"status"`
	Session     *domain.Session    `json:"session"`
	Question    string             `json:"question,omitempty"`
	Missing     *domain.Missing    `json:"missing,omitempty"`
	FinalPrompt string             `json:"final_prompt,omitempty"`
	Results     []domain.ScoredApp `json:"results"`
}

type backlogIngestRequest struct {
	PromptText  string  `json:"prompt_text" binding:"required"`
	CommentText *string `json:"comment_text"`
}
