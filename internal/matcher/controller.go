// Package matcher implements C7: the interactive controller coordinating
// C1, C2, C3, C4, C5, and C6 across the start/continue/finalize operations.
package matcher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/appmarket/matchcore/internal/catalog"
	"github.com/appmarket/matchcore/internal/domain"
	"github.com/appmarket/matchcore/internal/llmgateway"
	"github.com/appmarket/matchcore/internal/question"
	"github.com/appmarket/matchcore/internal/requirement"
	"github.com/appmarket/matchcore/internal/scorer"
	"github.com/appmarket/matchcore/internal/session"
)

const (
	minPromptLen = 10
	maxPromptLen = 2000
	minAnswerLen = 1
	maxAnswerLen = 1000

	defaultTopK = 30
	defaultTopN = 10
)

// Status values mirror the external contract's `status` field (spec.md §6).
const (
	StatusReady     = "ready"
	StatusNeedsMore = "needs_more"
)

// Result is the controller's uniform return shape across all three
// operations, matching the response bodies of the three matcher endpoints.
type Result struct {
	Status      string
	Session     *domain.Session
	Question    string
	Missing     *domain.Missing
	FinalPrompt string
	Results     []domain.ScoredApp
}

// Controller is the C7 contract.
type Controller interface {
	Start(ctx context.Context, promptText string) (Result, error)
	Continue(ctx context.Context, sess *domain.Session, answerText string) (Result, error)
	Finalize(ctx context.Context, sess *domain.Session, topK, topN int) (Result, error)
}

type controller struct {
	parser      requirement.Parser
	validator   session.Validator
	synthesizer question.Synthesizer
	gateway     llmgateway.Gateway
	catalog     catalog.CatalogReader
	scorer      scorer.Scorer
}

// New wires C3-C6 plus the gateway and catalog into a Controller.
func New(
	parser requirement.Parser,
	validator session.Validator,
	synthesizer question.Synthesizer,
	gateway llmgateway.Gateway,
	catalogReader catalog.CatalogReader,
	sc scorer.Scorer,
) Controller {
	return &controller{
		parser:      parser,
		validator:   validator,
		synthesizer: synthesizer,
		gateway:     gateway,
		catalog:     catalogReader,
		scorer:      sc,
	}
}

func (c *controller) Start(ctx context.Context, promptText string) (Result, error) {
	text := strings.TrimSpace(promptText)
	if len(text) < minPromptLen || len(text) > maxPromptLen {
		return Result{}, domain.NewError(domain.ErrInvalidInput,
			fmt.Sprintf("prompt_text must be between %d and %d characters", minPromptLen, maxPromptLen), nil)
	}

	sess := domain.NewSession()
	sess.AppendTurn(domain.RoleUser, text)

	if err := c.applyTurn(ctx, sess, text); err != nil {
		return Result{}, err
	}
	return c.branch(sess), nil
}

func (c *controller) Continue(ctx context.Context, sess *domain.Session, answerText string) (Result, error) {
	if !sess.WellFormed() {
		return Result{}, domain.NewError(domain.ErrInvalidInput, "session is corrupt", nil)
	}
	if sess.IsValid != session.Recompute(sess).IsZero() {
		return Result{}, domain.NewError(domain.ErrInvalidInput, "session is corrupt", nil)
	}
	if sess.IsValid {
		return Result{}, domain.NewError(domain.ErrInvalidInput, "session is already valid, call finalize", nil)
	}

	text := strings.TrimSpace(answerText)
	if len(text) < minAnswerLen || len(text) > maxAnswerLen {
		return Result{}, domain.NewError(domain.ErrInvalidInput,
			fmt.Sprintf("answer_text must be between %d and %d characters", minAnswerLen, maxAnswerLen), nil)
	}

	sess.AppendTurn(domain.RoleUser, text)
	if err := c.applyTurn(ctx, sess, text); err != nil {
		return Result{}, err
	}
	return c.branch(sess), nil
}

// applyTurn runs C3 against the turn and C4 against the result, mutating
// sess in place (spec.md §4.7 start/continue).
func (c *controller) applyTurn(ctx context.Context, sess *domain.Session, turnText string) error {
	delta, err := c.parser.Parse(ctx, turnText, sess.Accumulated)
	if err != nil {
		return err
	}
	c.validator.Validate(sess, delta)
	return nil
}

// branch implements the shared ready/needs_more decision of start and
// continue (spec.md §4.7).
func (c *controller) branch(sess *domain.Session) Result {
	if sess.IsValid {
		return Result{
			Status:      StatusReady,
			Session:     sess,
			FinalPrompt: composeFinalPrompt(sess),
		}
	}

	q := c.synthesizer.Synthesize(sess.Missing, len(sess.Turns))
	sess.AppendTurn(domain.RoleAssistant, q)
	missing := sess.Missing
	return Result{
		Status:   StatusNeedsMore,
		Session:  sess,
		Question: q,
		Missing:  &missing,
	}
}

func (c *controller) Finalize(ctx context.Context, sess *domain.Session, topK, topN int) (Result, error) {
	if !sess.WellFormed() {
		return Result{}, domain.NewError(domain.ErrInvalidInput, "session is corrupt", nil)
	}
	if sess.IsValid != session.Recompute(sess).IsZero() {
		return Result{}, domain.NewError(domain.ErrInvalidInput, "session is corrupt", nil)
	}
	if !sess.IsValid {
		return Result{}, domain.NewError(domain.ErrInvalidInput, "session is not ready to finalize", nil)
	}
	if topK <= 0 {
		topK = defaultTopK
	}
	if topN <= 0 {
		topN = defaultTopN
	}

	profile := buildProfile(sess.Accumulated)
	finalPrompt := composeFinalPrompt(sess)

	embedding, err := c.gateway.GetEmbedding(ctx, finalPrompt)
	if err != nil {
		return Result{}, err
	}

	vectorCandidates, err := c.catalog.VectorCandidates(ctx, embedding, topK)
	if err != nil {
		return Result{}, wrapStorageErr(err)
	}

	appSearchIDs := make([]int64, len(vectorCandidates))
	for i, vc := range vectorCandidates {
		appSearchIDs[i] = vc.AppSearchID
	}
	features, err := c.catalog.FetchFeatures(ctx, appSearchIDs)
	if err != nil {
		return Result{}, wrapStorageErr(err)
	}

	synonyms, err := c.catalog.FetchSynonyms(ctx, profile.LabelsMust)
	if err != nil {
		return Result{}, wrapStorageErr(err)
	}
	synonymMap := make(map[string][]string, len(synonyms))
	for label, ls := range synonyms {
		synonymMap[strings.ToLower(label)] = ls.Synonyms
	}

	candidates := buildCandidates(vectorCandidates, features)

	scored, err := c.scorer.Score(profile, candidates, synonymMap, topN)
	if err != nil {
		return Result{}, err
	}

	appIDs := make([]int64, len(scored))
	for i, s := range scored {
		appIDs[i] = s.AppID
	}
	names, err := c.catalog.FetchAppNames(ctx, appIDs)
	if err != nil {
		return Result{}, wrapStorageErr(err)
	}
	for i := range scored {
		if name, ok := names[scored[i].AppID]; ok {
			scored[i].Name = name
		}
	}

	return Result{
		Status:      StatusReady,
		Session:     sess,
		FinalPrompt: finalPrompt,
		Results:     scored,
	}, nil
}

// maxMust and maxNice bound how many accumulated values of a dimension
// flow into the must/nice split (spec.md §4.7 finalize).
const (
	maxMust = 6
	maxNice = 6
)

func buildProfile(acc *domain.Accumulated) domain.RequirementProfile {
	labelsMust, labelsNice := splitFirst(acc.Labels.Values())
	tagMust, tagNice := splitFirst(acc.Tags.Values())
	integrationRequired, integrationNice := splitFirst(acc.Integrations.Values())

	return domain.RequirementProfile{
		LabelsMust:          labelsMust,
		LabelsNice:          labelsNice,
		TagMust:             tagMust,
		TagNice:             tagNice,
		IntegrationRequired: integrationRequired,
		IntegrationNice:     integrationNice,
		PriceMax:            acc.PriceMax,
	}
}

// splitFirst returns the first ≤6 values and the next ≤6 after them, per
// the must/nice split (spec.md §4.7 finalize). Values beyond the first 12
// are dropped.
func splitFirst(values []string) (must, nice []string) {
	if len(values) <= maxMust {
		return values, nil
	}
	end := maxMust + maxNice
	if end > len(values) {
		end = len(values)
	}
	return values[:maxMust], values[maxMust:end]
}

// composeFinalPrompt concatenates every user turn in order, prefixed with
// a header and labeled sections (spec.md §4.7 finalize).
func composeFinalPrompt(sess *domain.Session) string {
	var b strings.Builder
	b.WriteString("Buyer requirement summary:\n")
	for i, turn := range sess.UserTurns() {
		fmt.Fprintf(&b, "Turn %d: %s\n", i+1, turn)
	}
	return strings.TrimRight(b.String(), "\n")
}

func buildCandidates(vectorCandidates []domain.VectorCandidate, features map[int64]domain.AppFeatures) []scorer.Candidate {
	out := make([]scorer.Candidate, 0, len(vectorCandidates))
	for _, vc := range vectorCandidates {
		f := features[vc.AppSearchID]
		out = append(out, scorer.Candidate{
			AppID:            vc.AppID,
			Labels:           f.Labels,
			IntegrationKeys:  f.IntegrationKeys,
			Tags:             f.Tags,
			PriceText:        f.PriceText,
			CosineSimilarity: vc.CosineSimilarity,
		})
	}
	return out
}

// wrapStorageErr classifies a raw catalog error as storage per spec.md
// §4.7's failure classification, unless it already carries a domain.Error
// kind (propagated unchanged).
func wrapStorageErr(err error) error {
	if err == nil {
		return nil
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return domain.NewError(domain.ErrStorage, "catalog repository", err)
}
