package catalog

import (
	"context"

	"github.com/appmarket/matchcore/core/db/queries"
	"github.com/appmarket/matchcore/internal/domain"
)

// pgReader implements the relational half of CatalogReader and all of
// BacklogReader over the hand-maintained query layer.
type pgReader struct {
	q *queries.Queries
}

// NewPostgresReader wraps q for the read paths that stay in Postgres:
// fetch_features, fetch_synonyms, fetch_app_names, and active_cards
// (spec.md §4.2). Vector search is handled separately by a
// Typesense-backed CatalogReader; see NewHybridCatalog.
func NewPostgresReader(q *queries.Queries) *pgReader {
	return &pgReader{q: q}
}

func (r *pgReader) FetchFeatures(ctx context.Context, appSearchIDs []int64) (map[int64]domain.AppFeatures, error) {
	rows, err := r.q.FetchFeatures(ctx, appSearchIDs)
	if err != nil {
		return nil, err
	}

	out := make(map[int64]domain.AppFeatures, len(rows))
	for _, row := range rows {
		out[row.AppSearchID] = domain.AppFeatures{
			Labels:          row.Labels,
			IntegrationKeys: row.IntegrationKeys,
			Tags:            row.Tags,
			PriceText:       row.PriceText,
		}
	}
	return out, nil
}

func (r *pgReader) FetchSynonyms(ctx context.Context, labels []string) (map[string]domain.LabelSynonyms, error) {
	rows, err := r.q.FetchSynonyms(ctx, labels)
	if err != nil {
		return nil, err
	}

	out := make(map[string]domain.LabelSynonyms, len(rows))
	for _, row := range rows {
		out[row.Label] = domain.LabelSynonyms{
			Label:    row.Label,
			Synonyms: row.Synonyms,
		}
	}
	return out, nil
}

func (r *pgReader) FetchAppNames(ctx context.Context, appIDs []int64) (map[int64]string, error) {
	rows, err := r.q.FetchAppNames(ctx, appIDs)
	if err != nil {
		return nil, err
	}

	out := make(map[int64]string, len(rows))
	for _, row := range rows {
		out[row.AppID] = row.Name
	}
	return out, nil
}

func (r *pgReader) ActiveCards(ctx context.Context) ([]domain.ActiveCard, error) {
	rows, err := r.q.ActiveCards(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ActiveCard, len(rows))
	for i, row := range rows {
		out[i] = domain.ActiveCard{ID: row.CardID, Prompts: row.Prompts}
	}
	return out, nil
}
