package question

import (
	"strings"
	"testing"

	"github.com/appmarket/matchcore/internal/domain"
)

func TestSynthesize_PrioritizesLabelsOverIntegrationsAndTags(t *testing.T) {
	s := New()
	q := s.Synthesize(domain.Missing{LabelsNeeded: 2, IntegrationsNeeded: 1, TagsNeeded: 1}, 0)
	if !strings.Contains(q, "functionality") {
		t.Fatalf("expected a labels question, got %q", q)
	}
	if !strings.Contains(q, "need 2 more") {
		t.Fatalf("expected question to mention the missing count, got %q", q)
	}
}

func TestSynthesize_FallsBackToIntegrationsThenTags(t *testing.T) {
	s := New()

	integrationsQ := s.Synthesize(domain.Missing{IntegrationsNeeded: 1, TagsNeeded: 1}, 0)
	if !strings.Contains(integrationsQ, "integrate") {
		t.Fatalf("expected an integrations question, got %q", integrationsQ)
	}

	tagsQ := s.Synthesize(domain.Missing{TagsNeeded: 1}, 0)
	if !strings.Contains(tagsQ, "business context") {
		t.Fatalf("expected a tags question, got %q", tagsQ)
	}
}

func TestSynthesize_RotatesExamplesByTurnCount(t *testing.T) {
	s := New()
	first := s.Synthesize(domain.Missing{IntegrationsNeeded: 1}, 0)
	second := s.Synthesize(domain.Missing{IntegrationsNeeded: 1}, 1)
	if first == second {
		t.Fatal("expected varying turn counts to rotate through different example pools")
	}
}
