// Package scorer implements C6: hard-constraint filtering and the hybrid
// vector/categorical score that produces the final similarity percentage.
package scorer

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/appmarket/matchcore/internal/domain"
)

// SigmoidSteepness controls how sharply score compresses toward 0/100
// (spec.md §4.6 Step C). Kept as a named constant per the Open Question
// in spec.md §9 — implementers should tune here, not inline.
const SigmoidSteepness = 10.0

// HardConstraintPercent is the floor assigned to any candidate that fails
// a hard constraint (spec.md §4.6 Step A).
const HardConstraintPercent = 5

// score weights for the hybrid formula (spec.md §4.6 Step B).
const (
	weightCosine          = 0.60
	weightTagMust         = 0.10
	weightLabelsNice      = 0.10
	weightTagNice         = 0.05
	weightIntegrationNice = 0.15

	calibrationScale  = 0.45
	calibrationOffset = 0.55
)

var freeIndicators = []string{"gratis", "free", "kostenlos", "gratuit"}

var firstNumberPattern = regexp.MustCompile(`[0-9]+(?:[.,][0-9]+)?`)

// Candidate is one row from the catalog repository, enriched with the
// features the scorer needs.
type Candidate struct {
	AppID            int64
	Name             string
	Labels           []string
	IntegrationKeys  []string
	Tags             []string
	PriceText        string
	CosineSimilarity float64
}

// Scorer is the C6 contract.
type Scorer interface {
	// Score ranks candidates against profile and returns the top n by
	// similarity_percent descending. synonyms maps each of
	// profile.LabelsMust to its synonym list (spec.md §4.6).
	Score(profile domain.RequirementProfile, candidates []Candidate, synonyms map[string][]string, n int) ([]domain.ScoredApp, error)
}

type scorer struct{}

// New builds the default Scorer.
func New() Scorer {
	return scorer{}
}

func (scorer) Score(profile domain.RequirementProfile, candidates []Candidate, synonyms map[string][]string, n int) ([]domain.ScoredApp, error) {
	if !profile.HasAnyRequirement() {
		return nil, domain.NewError(domain.ErrInvalidInput, "requirement profile has no labels, tags, or integrations", nil)
	}
	if len(candidates) == 0 {
		return []domain.ScoredApp{}, nil
	}

	results := make([]domain.ScoredApp, 0, len(candidates))
	for _, c := range candidates {
		percent := scoreCandidate(profile, c, synonyms)
		results = append(results, domain.ScoredApp{
			AppID:             c.AppID,
			Name:              c.Name,
			SimilarityPercent: percent,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SimilarityPercent > results[j].SimilarityPercent
	})

	if n > 0 && len(results) > n {
		results = results[:n]
	}
	return results, nil
}

func scoreCandidate(profile domain.RequirementProfile, c Candidate, synonyms map[string][]string) int {
	if !passesHardConstraints(profile, c, synonyms) {
		return HardConstraintPercent
	}

	raw := weightCosine*c.CosineSimilarity +
		weightTagMust*overlapRatio(profile.TagMust, c.Tags) +
		weightLabelsNice*overlapRatio(profile.LabelsNice, c.Labels) +
		weightTagNice*overlapRatio(profile.TagNice, c.Tags) +
		weightIntegrationNice*overlapRatio(titleCaseAll(profile.IntegrationNice), titleCaseAll(c.IntegrationKeys))

	score := raw*calibrationScale + calibrationOffset
	return percentage(score)
}

// passesHardConstraints evaluates Step A: required labels (with synonym
// matching), required integrations, and budget.
func passesHardConstraints(profile domain.RequirementProfile, c Candidate, synonyms map[string][]string) bool {
	for _, label := range profile.LabelsMust {
		if !labelSatisfied(label, c.Labels, synonyms[strings.ToLower(label)]) {
			return false
		}
	}

	requiredIntegrations := titleCaseAll(profile.IntegrationRequired)
	appIntegrations := titleCaseAll(c.IntegrationKeys)
	for _, integration := range requiredIntegrations {
		if !domain.ContainsFold(appIntegrations, integration) {
			return false
		}
	}

	if profile.PriceMax != nil {
		price, ok := parsePrice(c.PriceText)
		if ok && price > *profile.PriceMax {
			return false
		}
	}

	return true
}

// labelSatisfied reports whether a required label is present on the app
// directly (case-insensitive) or via one of its catalog synonyms.
func labelSatisfied(required string, appLabels, syns []string) bool {
	if domain.ContainsFold(appLabels, required) {
		return true
	}
	for _, syn := range syns {
		if domain.ContainsFold(appLabels, syn) {
			return true
		}
	}
	return false
}

// overlapRatio implements O(buyer_list, app_list) from spec.md §4.6 Step
// B: |intersection| / |buyer_list| if buyer_list is non-empty, else 0.1.
// Comparisons are case-insensitive.
func overlapRatio(buyerList, appList []string) float64 {
	if len(buyerList) == 0 {
		return 0.1
	}
	matches := 0
	for _, b := range buyerList {
		if domain.ContainsFold(appList, b) {
			matches++
		}
	}
	return float64(matches) / float64(len(buyerList))
}

// percentage implements Step C's sigmoid mapping, rounded to the nearest
// integer percentage point.
func percentage(score float64) int {
	v := 100.0 / (1.0 + math.Exp(-SigmoidSteepness*(score-0.5)))
	return int(math.Round(v))
}

// parsePrice derives price_value from a raw price_text per spec.md §4.6
// Step A: free indicators yield 0; otherwise the first numeric token is
// used, tolerating currency prefixes and "/period" suffixes. Returns
// ok=false when nothing parses (caller then treats budget as passing).
func parsePrice(priceText string) (float64, bool) {
	lower := strings.ToLower(priceText)
	for _, free := range freeIndicators {
		if strings.Contains(lower, free) {
			return 0, true
		}
	}

	match := firstNumberPattern.FindString(priceText)
	if match == "" {
		return 0, false
	}
	normalized := strings.ReplaceAll(match, ",", ".")
	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func titleCaseAll(vs []string) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = domain.TitleCase(v)
	}
	return out
}
