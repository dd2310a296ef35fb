// Package catalog adapts the Typesense vector index and the Postgres
// query layer into the narrow, domain-shaped contracts the matcher and
// backlog packages depend on (mirrors the teacher's store.XStore split).
package catalog

import (
	"context"

	"github.com/appmarket/matchcore/internal/domain"
)

// CatalogReader is C2's read surface over the application catalog.
type CatalogReader interface {
	// VectorCandidates runs an approximate nearest-neighbor search over
	// the application_search collection's embedding field and returns
	// the top k matches ordered by ascending cosine distance.
	VectorCandidates(ctx context.Context, embedding []float32, k int) ([]domain.VectorCandidate, error)

	// FetchFeatures batches labels, integration keys, tags, and
	// price_text for the given app_search_ids.
	FetchFeatures(ctx context.Context, appSearchIDs []int64) (map[int64]domain.AppFeatures, error)

	// FetchSynonyms returns the synonym catalog entry for each label
	// that has one; labels without a catalog row are simply absent.
	FetchSynonyms(ctx context.Context, labels []string) (map[string]domain.LabelSynonyms, error)

	// FetchAppNames batches display names for the given app_ids.
	FetchAppNames(ctx context.Context, appIDs []int64) (map[int64]string, error)
}

// BacklogReader is C8's read surface over the backlog.
type BacklogReader interface {
	// ActiveCards returns every status=active card together with the
	// text of its linked prompts.
	ActiveCards(ctx context.Context) ([]domain.ActiveCard, error)
}
