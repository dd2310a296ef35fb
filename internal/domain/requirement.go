package domain

// RequirementProfile is the matcher's central value: the structured buyer
// specification the hybrid scorer consumes.
type RequirementProfile struct {
	BuyerText string

	LabelsMust []string
	LabelsNice []string

	TagMust []string
	TagNice []string

	IntegrationRequired []string
	IntegrationNice     []string

	PriceMax *float64
	Notes    string
}

// HasAnyRequirement reports whether at least one of the labels/tags/
// integrations lists is non-empty, the scorer's precondition (spec.md
// §4.6: "at least one of labels_must/nice, tag_must/nice,
// integration_required/nice must be non-empty").
func (p RequirementProfile) HasAnyRequirement() bool {
	return len(p.LabelsMust) > 0 || len(p.LabelsNice) > 0 ||
		len(p.TagMust) > 0 || len(p.TagNice) > 0 ||
		len(p.IntegrationRequired) > 0 || len(p.IntegrationNice) > 0
}

// RequirementDelta is what a single dialog turn contributes, before it is
// merged into a session's accumulated state.
type RequirementDelta struct {
	Labels       []string
	Tags         []string
	Integrations []string
	PriceMax     *float64
}

// MergeInto folds d into the accumulated sets/price ceiling of acc,
// case-insensitive union preserving first-seen casing, price_max adopting
// the minimum when both are present (spec.md §4.3 merge policy).
func (d RequirementDelta) MergeInto(acc *Accumulated) {
	acc.Labels.AddAll(d.Labels)
	acc.Tags.AddAll(d.Tags)
	acc.Integrations.AddAll(d.Integrations)

	switch {
	case acc.PriceMax == nil:
		acc.PriceMax = d.PriceMax
	case d.PriceMax != nil && *d.PriceMax < *acc.PriceMax:
		v := *d.PriceMax
		acc.PriceMax = &v
	}
}
