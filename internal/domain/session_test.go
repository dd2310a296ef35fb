package domain

import "testing"

func TestSession_AppendTurnAndUserTurns(t *testing.T) {
	s := NewSession()
	s.AppendTurn(RoleUser, "I need a CRM")
	s.AppendTurn(RoleAssistant, "which integrations?")
	s.AppendTurn(RoleUser, "Salesforce")

	got := s.UserTurns()
	want := []string{"I need a CRM", "Salesforce"}
	if len(got) != len(want) {
		t.Fatalf("expected %d user turns, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("turn %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSession_WellFormed(t *testing.T) {
	valid := NewSession()
	valid.AppendTurn(RoleUser, "hi")
	if !valid.WellFormed() {
		t.Fatal("expected freshly built session to be well-formed")
	}

	var nilSession *Session
	if nilSession.WellFormed() {
		t.Fatal("expected nil session to not be well-formed")
	}

	noAccumulated := &Session{}
	if noAccumulated.WellFormed() {
		t.Fatal("expected session with nil Accumulated to not be well-formed")
	}

	badRole := NewSession()
	badRole.Turns = append(badRole.Turns, Turn{Role: "system", Text: "x"})
	if badRole.WellFormed() {
		t.Fatal("expected session with unknown role to not be well-formed")
	}

	partialAccumulated := NewSession()
	partialAccumulated.Accumulated.Tags = nil
	if partialAccumulated.WellFormed() {
		t.Fatal("expected session with a nil accumulated set to not be well-formed")
	}
}

func TestMissing_IsZero(t *testing.T) {
	if !(Missing{}).IsZero() {
		t.Fatal("expected zero-value Missing to report IsZero")
	}
	if (Missing{LabelsNeeded: 1}).IsZero() {
		t.Fatal("expected non-zero LabelsNeeded to report not IsZero")
	}
}

func TestRequirementDelta_MergeInto(t *testing.T) {
	acc := NewAccumulated()
	priceA := 100.0
	RequirementDelta{Labels: []string{"CRM"}, PriceMax: &priceA}.MergeInto(acc)

	priceB := 50.0
	RequirementDelta{Labels: []string{"crm"}, Integrations: []string{"Slack"}, PriceMax: &priceB}.MergeInto(acc)

	if acc.Labels.Len() != 1 {
		t.Fatalf("expected case-insensitive label dedup, got len %d", acc.Labels.Len())
	}
	if acc.Integrations.Len() != 1 {
		t.Fatalf("expected 1 integration, got %d", acc.Integrations.Len())
	}
	if acc.PriceMax == nil || *acc.PriceMax != 50.0 {
		t.Fatalf("expected price_max to adopt the minimum of 100 and 50, got %v", acc.PriceMax)
	}

	priceC := 75.0
	RequirementDelta{PriceMax: &priceC}.MergeInto(acc)
	if *acc.PriceMax != 50.0 {
		t.Fatalf("expected price_max to stay at the lower value 50, got %v", *acc.PriceMax)
	}
}

func TestRequirementProfile_HasAnyRequirement(t *testing.T) {
	if (RequirementProfile{}).HasAnyRequirement() {
		t.Fatal("expected empty profile to report no requirements")
	}
	if !(RequirementProfile{TagNice: []string{"B2B"}}).HasAnyRequirement() {
		t.Fatal("expected a single populated list to satisfy HasAnyRequirement")
	}
}
