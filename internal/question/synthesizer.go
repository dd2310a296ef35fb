// Package question implements C5: synthesizing a single clarifying
// question targeted at the most pressing missing requirement dimension.
package question

import (
	"fmt"
	"strings"

	"github.com/appmarket/matchcore/internal/domain"
	"github.com/appmarket/matchcore/internal/llmgateway"
)

// dimension is the missing-requirement axis a question can target.
type dimension int

const (
	dimLabels dimension = iota
	dimIntegrations
	dimTags
)

// integrationExamplePools and tagExamplePools are curated example pools;
// rotating through them by turn count keeps repeat prompts from feeling
// templated (spec.md §4.5).
var integrationExamplePools = [][]string{
	{"Salesforce", "HubSpot", "Stripe", "Slack"},
	{"QuickBooks", "Google Workspace", "Zapier", "Shopify"},
	{"Microsoft 365", "Xero", "Twilio", "DocuSign"},
}

var tagExamplePools = [][]string{
	{"B2B", "Healthcare", "Remote Team", "Startup"},
	{"E-commerce", "Nonprofit", "Enterprise", "Freelancer"},
	{"Manufacturing", "Education", "Hospitality", "Retail"},
}

// Synthesizer is the C5 contract.
type Synthesizer interface {
	// Synthesize returns one English question for the missing dimension
	// with the highest priority (labels > integrations > tags). Callers
	// must not invoke this when missing.IsZero().
	Synthesize(missing domain.Missing, turnCount int) string
}

type synthesizer struct{}

// New builds the default Synthesizer.
func New() Synthesizer {
	return synthesizer{}
}

func (synthesizer) Synthesize(missing domain.Missing, turnCount int) string {
	dim, count := pickDimension(missing)
	examples := pickExamples(dim, turnCount)

	switch dim {
	case dimLabels:
		return fmt.Sprintf(
			"What kind of functionality are you looking for? For example: %s. (need %d more)",
			strings.Join(examples, ", "), count,
		)
	case dimIntegrations:
		return fmt.Sprintf(
			"Which tools or services does it need to integrate with? For example: %s. (need %d more)",
			strings.Join(examples, ", "), count,
		)
	default:
		return fmt.Sprintf(
			"Tell me a bit about your business context so I can narrow things down — "+
				"for example: %s. (need %d more)",
			strings.Join(examples, ", "), count,
		)
	}
}

// pickDimension selects the highest-priority missing dimension: labels,
// then integrations, then tags (spec.md §4.5).
func pickDimension(missing domain.Missing) (dimension, int) {
	if missing.LabelsNeeded > 0 {
		return dimLabels, missing.LabelsNeeded
	}
	if missing.IntegrationsNeeded > 0 {
		return dimIntegrations, missing.IntegrationsNeeded
	}
	return dimTags, missing.TagsNeeded
}

// pickExamples rotates through the curated pools (or the closed label
// catalog, sampled into groups of four) seeded by the turn count so
// repeat requests produce varied examples (spec.md §4.5).
func pickExamples(dim dimension, turnCount int) []string {
	switch dim {
	case dimLabels:
		return rotateLabels(turnCount)
	case dimIntegrations:
		return integrationExamplePools[turnCount%len(integrationExamplePools)]
	default:
		return tagExamplePools[turnCount%len(tagExamplePools)]
	}
}

const labelsPerExample = 4

func rotateLabels(turnCount int) []string {
	catalog := llmgateway.LabelCatalogSample
	groups := (len(catalog) + labelsPerExample - 1) / labelsPerExample
	start := (turnCount % groups) * labelsPerExample
	end := start + labelsPerExample
	if end > len(catalog) {
		end = len(catalog)
	}
	return catalog[start:end]
}
