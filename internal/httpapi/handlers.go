// Package httpapi is the thin gin transport adapter exposing C7 and the
// C8/C9 backlog pipeline over the four documented HTTP endpoints
// (spec.md §6). Transport itself is explicitly out of scope for the
// core's semantics; this package only binds, dispatches, and classifies.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/appmarket/matchcore/internal/apierr"
	"github.com/appmarket/matchcore/internal/backlog"
	"github.com/appmarket/matchcore/internal/domain"
	"github.com/appmarket/matchcore/internal/matcher"
)

// MatchHandler exposes C7's three operations.
type MatchHandler struct {
	controller matcher.Controller
}

// NewMatchHandler builds a MatchHandler.
func NewMatchHandler(controller matcher.Controller) *MatchHandler {
	return &MatchHandler{controller: controller}
}

func (h *MatchHandler) Start(c *gin.Context) {
	ctx := c.Request.Context()

	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: prompt_text is required"})
		return
	}

	res, err := h.controller.Start(ctx, req.PromptText)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(res))
}

func (h *MatchHandler) Continue(c *gin.Context) {
	ctx := c.Request.Context()

	var req continueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: session and answer_text are required"})
		return
	}

	res, err := h.controller.Continue(ctx, req.Session, req.AnswerText)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(res))
}

func (h *MatchHandler) Finalize(c *gin.Context) {
	ctx := c.Request.Context()

	var req finalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: session is required"})
		return
	}

	res, err := h.controller.Finalize(ctx, req.Session, req.TopK, req.TopN)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(res))
}

func toResponse(res matcher.Result) matchResponse {
	results := res.Results
	if results == nil {
		results = []domain.ScoredApp{}
	}
	return matchResponse{
		Status:      res.Status,
		Session:     res.Session,
		Question:    res.Question,
		Missing:     res.Missing,
		FinalPrompt: res.FinalPrompt,
		Results:     results,
	}
}

// BacklogHandler exposes the C8/C9 ingest pipeline.
type BacklogHandler struct {
	pipeline *backlog.Pipeline
}

// NewBacklogHandler builds a BacklogHandler.
func NewBacklogHandler(pipeline *backlog.Pipeline) *BacklogHandler {
	return &BacklogHandler{pipeline: pipeline}
}

func (h *BacklogHandler) Ingest(c *gin.Context) {
	ctx := c.Request.Context()

	var req backlogIngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: prompt_text is required"})
		return
	}

	err := h.pipeline.Ingest(ctx, domain.BacklogIngestRequest{
		PromptText:  req.PromptText,
		CommentText: req.CommentText,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// respondErr classifies err via C10 and logs it at a severity matching
// its class.
func respondErr(c *gin.Context, err error) {
	status := apierr.Classify(err)
	ctx := c.Request.Context()
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "request failed", "error", err, "status", status)
	} else {
		slog.WarnContext(ctx, "request rejected", "error", err, "status", status)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
