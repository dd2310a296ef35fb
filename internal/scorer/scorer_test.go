package scorer

import (
	"testing"

	"github.com/appmarket/matchcore/internal/domain"
)

func TestScore_RejectsEmptyProfile(t *testing.T) {
	_, err := New().Score(domain.RequirementProfile{}, []Candidate{{AppID: 1}}, nil, 10)
	if err == nil {
		t.Fatal("expected error for a profile with no labels/tags/integrations")
	}
	if domain.KindOf(err) != domain.ErrInvalidInput {
		t.Fatalf("expected invalid_input classification, got %v", domain.KindOf(err))
	}
}

func TestScore_NoCandidatesReturnsEmptySlice(t *testing.T) {
	profile := domain.RequirementProfile{LabelsMust: []string{"CRM"}}
	got, err := New().Score(profile, nil, nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}

func TestScore_HardConstraintFailureFloors(t *testing.T) {
	profile := domain.RequirementProfile{LabelsMust: []string{"CRM"}}
	candidates := []Candidate{
		{AppID: 1, Name: "Unrelated", Labels: []string{"Accounting"}, CosineSimilarity: 0.99},
	}
	got, err := New().Score(profile, candidates, nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].SimilarityPercent != HardConstraintPercent {
		t.Fatalf("expected hard-constraint floor of %d, got %+v", HardConstraintPercent, got)
	}
}

func TestScore_LabelSatisfiedViaSynonym(t *testing.T) {
	profile := domain.RequirementProfile{LabelsMust: []string{"CRM"}}
	candidates := []Candidate{
		{AppID: 1, Name: "Contactly", Labels: []string{"Customer Relationship Management"}, CosineSimilarity: 0.9},
	}
	synonyms := map[string][]string{"crm": {"Customer Relationship Management"}}

	got, err := New().Score(profile, candidates, synonyms, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].SimilarityPercent == HardConstraintPercent {
		t.Fatal("expected synonym match to clear the hard label constraint")
	}
}

func TestScore_BudgetExceededFloors(t *testing.T) {
	priceMax := 10.0
	profile := domain.RequirementProfile{LabelsMust: []string{"CRM"}, PriceMax: &priceMax}
	candidates := []Candidate{
		{AppID: 1, Name: "Pricey", Labels: []string{"CRM"}, PriceText: "$99/month", CosineSimilarity: 0.95},
		{AppID: 2, Name: "FreeTier", Labels: []string{"CRM"}, PriceText: "Free", CosineSimilarity: 0.5},
	}
	got, err := New().Score(profile, candidates, nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byID := map[int64]int{}
	for _, r := range got {
		byID[r.AppID] = r.SimilarityPercent
	}
	if byID[1] != HardConstraintPercent {
		t.Fatalf("expected over-budget app to floor, got %d", byID[1])
	}
	if byID[2] == HardConstraintPercent {
		t.Fatal("expected free app to clear the budget constraint")
	}
}

func TestScore_IntegrationRequiredIsCaseAndFormInsensitive(t *testing.T) {
	profile := domain.RequirementProfile{
		LabelsMust:          []string{"CRM"},
		IntegrationRequired: []string{"slack"},
	}
	candidates := []Candidate{
		{AppID: 1, Name: "Has It", Labels: []string{"CRM"}, IntegrationKeys: []string{"SLACK"}, CosineSimilarity: 0.8},
		{AppID: 2, Name: "Missing It", Labels: []string{"CRM"}, IntegrationKeys: []string{"Stripe"}, CosineSimilarity: 0.8},
	}
	got, err := New().Score(profile, candidates, nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	byID := map[int64]int{}
	for _, r := range got {
		byID[r.AppID] = r.SimilarityPercent
	}
	if byID[1] == HardConstraintPercent {
		t.Fatal("expected case/form-insensitive integration match to pass")
	}
	if byID[2] != HardConstraintPercent {
		t.Fatal("expected missing required integration to floor")
	}
}

func TestScore_OrdersDescendingAndRespectsN(t *testing.T) {
	profile := domain.RequirementProfile{LabelsMust: []string{"CRM"}}
	candidates := []Candidate{
		{AppID: 1, Name: "Low", Labels: []string{"CRM"}, CosineSimilarity: 0.1},
		{AppID: 2, Name: "High", Labels: []string{"CRM"}, CosineSimilarity: 0.95},
		{AppID: 3, Name: "Mid", Labels: []string{"CRM"}, CosineSimilarity: 0.5},
	}
	got, err := New().Score(profile, candidates, nil, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected n=2 to cap results, got %d", len(got))
	}
	if got[0].AppID != 2 || got[1].AppID != 3 {
		t.Fatalf("expected descending order [High, Mid], got %+v", got)
	}
}
