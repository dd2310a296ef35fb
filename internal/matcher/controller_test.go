package matcher_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/appmarket/matchcore/internal/domain"
	"github.com/appmarket/matchcore/internal/matcher"
	"github.com/appmarket/matchcore/internal/question"
	"github.com/appmarket/matchcore/internal/requirement"
	"github.com/appmarket/matchcore/internal/scorer"
	"github.com/appmarket/matchcore/internal/session"
)

var _ = Describe("Controller", func() {
	var (
		ctrl     matcher.Controller
		gateway  *mockGateway
		cat      *mockCatalog
		ctx      context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		gateway = &mockGateway{}
		cat = &mockCatalog{}
		ctrl = matcher.New(
			requirement.New(gateway),
			session.New(),
			question.New(),
			gateway,
			cat,
			scorer.New(),
		)
	})

	Describe("Start", func() {
		It("rejects a prompt shorter than 10 characters", func() {
			_, err := ctrl.Start(ctx, "too short")
			Expect(err).To(HaveOccurred())
			Expect(domain.KindOf(err)).To(Equal(domain.ErrInvalidInput))
		})

		It("returns needs_more when the extraction leaves requirements missing", func() {
			gateway.extractFn = func(_ context.Context, _ string, _ *domain.Accumulated) (domain.RequirementDelta, error) {
				return domain.RequirementDelta{Labels: []string{"CRM"}}, nil
			}

			res, err := ctrl.Start(ctx, "I need a CRM for my small business")
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Status).To(Equal(matcher.StatusNeedsMore))
			Expect(res.Question).NotTo(BeEmpty())
			Expect(res.Session.Accumulated.Labels.Values()).To(ContainElement("CRM"))
		})

		It("returns ready once all thresholds are met", func() {
			gateway.extractFn = func(_ context.Context, _ string, _ *domain.Accumulated) (domain.RequirementDelta, error) {
				return domain.RequirementDelta{
					Labels:       []string{"CRM", "Invoicing"},
					Tags:         []string{"B2B"},
					Integrations: []string{"Salesforce"},
				}, nil
			}

			res, err := ctrl.Start(ctx, "I need a CRM with invoicing and Salesforce sync")
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Status).To(Equal(matcher.StatusReady))
			Expect(res.FinalPrompt).To(ContainSubstring("Turn 1"))
			Expect(res.Session.IsValid).To(BeTrue())
		})
	})

	Describe("Continue", func() {
		It("rejects a corrupt session", func() {
			_, err := ctrl.Continue(ctx, &domain.Session{}, "more detail")
			Expect(err).To(HaveOccurred())
			Expect(domain.KindOf(err)).To(Equal(domain.ErrInvalidInput))
		})

		It("rejects continuing an already-valid session", func() {
			sess := domain.NewSession()
			sess.IsValid = true
			_, err := ctrl.Continue(ctx, sess, "more detail")
			Expect(err).To(HaveOccurred())
			Expect(domain.KindOf(err)).To(Equal(domain.ErrInvalidInput))
		})
	})

	Describe("Finalize", func() {
		It("rejects a session that is not yet valid", func() {
			sess := domain.NewSession()
			_, err := ctrl.Finalize(ctx, sess, 0, 0)
			Expect(err).To(HaveOccurred())
			Expect(domain.KindOf(err)).To(Equal(domain.ErrInvalidInput))
		})

		It("scores candidates and attaches names", func() {
			sess := domain.NewSession()
			sess.Accumulated.Labels.AddAll([]string{"CRM", "Invoicing"})
			sess.Accumulated.Tags.AddAll([]string{"B2B"})
			sess.Accumulated.Integrations.AddAll([]string{"Salesforce"})
			sess.IsValid = true
			sess.AppendTurn(domain.RoleUser, "I need a CRM with invoicing and Salesforce sync")

			cat.vectorFn = func(_ context.Context, _ []float32, _ int) ([]domain.VectorCandidate, error) {
				return []domain.VectorCandidate{{AppSearchID: 1, AppID: 100, CosineSimilarity: 0.9}}, nil
			}
			cat.featuresFn = func(_ context.Context, _ []int64) (map[int64]domain.AppFeatures, error) {
				return map[int64]domain.AppFeatures{
					1: {Labels: []string{"CRM", "Invoicing"}, IntegrationKeys: []string{"Salesforce"}, Tags: []string{"B2B"}},
				}, nil
			}
			cat.namesFn = func(_ context.Context, _ []int64) (map[int64]string, error) {
				return map[int64]string{100: "Acme CRM"}, nil
			}

			res, err := ctrl.Finalize(ctx, sess, 0, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Status).To(Equal(matcher.StatusReady))
			Expect(res.Results).To(HaveLen(1))
			Expect(res.Results[0].AppID).To(Equal(int64(100)))
			Expect(res.Results[0].Name).To(Equal("Acme CRM"))
		})
	})
})
