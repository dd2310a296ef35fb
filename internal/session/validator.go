// Package session implements C4: merging turn deltas into the session's
// accumulated state and deciding whether the dialog is ready to finalize.
package session

import "github.com/appmarket/matchcore/internal/domain"

// Thresholds are the minimum counts the session validator enforces before
// a requirement profile is considered complete (spec.md §4.4).
const (
	MinLabelsRequired       = 2
	MinTagsRequired         = 1
	MinIntegrationsRequired = 1
)

// Validator is the C4 contract.
type Validator interface {
	// Validate merges delta into sess.Accumulated and recomputes
	// sess.Missing / sess.IsValid in place.
	Validate(sess *domain.Session, delta domain.RequirementDelta)
}

type validator struct{}

// New builds the default Validator.
func New() Validator {
	return validator{}
}

func (validator) Validate(sess *domain.Session, delta domain.RequirementDelta) {
	delta.MergeInto(sess.Accumulated)
	sess.Missing = computeMissing(sess.Accumulated)
	// is_valid transitions only false->true and never reverts (spec.md §3).
	if !sess.IsValid && sess.Missing.IsZero() {
		sess.IsValid = true
	}
}

// computeMissing derives missing = max(0, MIN_X - |accumulated.X|) per
// dimension (spec.md §4.4).
func computeMissing(acc *domain.Accumulated) domain.Missing {
	return domain.Missing{
		LabelsNeeded:       needed(MinLabelsRequired, acc.Labels.Len()),
		TagsNeeded:         needed(MinTagsRequired, acc.Tags.Len()),
		IntegrationsNeeded: needed(MinIntegrationsRequired, acc.Integrations.Len()),
	}
}

func needed(min, have int) int {
	if have >= min {
		return 0
	}
	return min - have
}

// Recompute re-derives Missing from the current accumulated state without
// merging anything new or modifying sess; the matching IsValid is
// Missing.IsZero(). Used by the controller to detect a corrupt session
// (SPEC_FULL.md §4.7): if the caller-supplied IsValid disagrees with
// recomputation, the session is rejected.
func Recompute(sess *domain.Session) domain.Missing {
	return computeMissing(sess.Accumulated)
}
