package domain

// Role distinguishes dialog turns carried in a session.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in the client-held dialog continuation.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Accumulated is the running union of everything extracted across turns.
// It is monotonically non-shrinking: once a value is added it is never
// removed by a later merge (spec.md §3 invariant).
type Accumulated struct {
	Labels       *StringSet `json:"labels"`
	Tags         *StringSet `json:"tags"`
	Integrations *StringSet `json:"integrations"`
	PriceMax     *float64   `json:"price_max,omitempty"`
}

// NewAccumulated returns an Accumulated with initialized empty sets, never
// nil ones, so merges and len-checks never need a nil guard downstream.
func NewAccumulated() *Accumulated {
	return &Accumulated{
		Labels:       NewStringSet(),
		Tags:         NewStringSet(),
		Integrations: NewStringSet(),
	}
}

// Missing reports how many more of each dimension are needed to cross the
// session-validator thresholds (spec.md §4.4).
type Missing struct {
	LabelsNeeded       int `json:"labels_needed"`
	TagsNeeded         int `json:"tags_needed"`
	IntegrationsNeeded int `json:"integrations_needed"`
}

// IsZero reports whether every dimension has met its threshold.
func (m Missing) IsZero() bool {
	return m.LabelsNeeded == 0 && m.TagsNeeded == 0 && m.IntegrationsNeeded == 0
}

// Session is the client-carried continuation between interactive-matcher
// turns. It is never persisted server-side (spec.md §3 Lifecycle).
type Session struct {
	Turns       []Turn       `json:"turns"`
	Accumulated *Accumulated `json:"accumulated"`
	Missing     Missing      `json:"missing"`
	IsValid     bool         `json:"is_valid"`
}

// NewSession starts a fresh session with no turns and empty accumulation.
func NewSession() *Session {
	return &Session{
		Turns:       nil,
		Accumulated: NewAccumulated(),
	}
}

// AppendTurn records a turn in order. Role must already be validated by
// the caller; this is a pure data operation.
func (s *Session) AppendTurn(role Role, text string) {
	s.Turns = append(s.Turns, Turn{Role: role, Text: text})
}

// UserTurns returns the text of every user turn, in order — the raw
// material for the composed final_prompt (spec.md §4.7 finalize).
func (s *Session) UserTurns() []string {
	out := make([]string, 0, len(s.Turns))
	for _, t := range s.Turns {
		if t.Role == RoleUser {
			out = append(out, t.Text)
		}
	}
	return out
}

// WellFormed checks the session shape the controller's continue operation
// must reject as corrupt (spec.md §4.7, resolved in SPEC_FULL.md §4.7):
// every turn has a known role and Accumulated is non-nil.
func (s *Session) WellFormed() bool {
	if s == nil || s.Accumulated == nil {
		return false
	}
	if s.Accumulated.Labels == nil || s.Accumulated.Tags == nil || s.Accumulated.Integrations == nil {
		return false
	}
	for _, t := range s.Turns {
		if t.Role != RoleUser && t.Role != RoleAssistant {
			return false
		}
	}
	return true
}
