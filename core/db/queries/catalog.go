package queries

import (
	"context"
	"strings"
)

// FetchFeatures batches labels, integration keys, tags, and price_text
// for every given app_search_id in a single round trip (spec.md §4.2).
// Labels/integrations are joined on application_search_id; tags are
// joined on the application's app_id, per the schema note in spec.md §6
// that tags are keyed by app_id while labels/integrations are keyed by
// app_search_id.
func (q *Queries) FetchFeatures(ctx context.Context, appSearchIDs []int64) ([]FeatureRow, error) {
	const sql = `
		SELECT
			s.id AS app_search_id,
			s.app_id,
			a.price_text,
			COALESCE(array_agg(DISTINCT l.label) FILTER (WHERE l.label IS NOT NULL), '{}') AS labels,
			COALESCE(array_agg(DISTINCT ik.integration_key) FILTER (WHERE ik.integration_key IS NOT NULL), '{}') AS integration_keys,
			COALESCE(array_agg(DISTINCT t.tag) FILTER (WHERE t.tag IS NOT NULL), '{}') AS tags
		FROM application_search s
		JOIN application a ON a.id = s.app_id
		LEFT JOIN application_labels l ON l.app_search_id = s.id
		LEFT JOIN application_integration_keys ik ON ik.app_search_id = s.id
		LEFT JOIN apps_tags t ON t.app_id = s.app_id
		WHERE s.id = ANY($1)
		GROUP BY s.id, s.app_id, a.price_text
	`

	rows, err := q.db.Query(ctx, sql, appSearchIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FeatureRow
	for rows.Next() {
		var r FeatureRow
		if err := rows.Scan(&r.AppSearchID, &r.AppID, &r.PriceText, &r.Labels, &r.IntegrationKeys, &r.Tags); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// FetchSynonyms returns the synonym list for each requested label name
// (spec.md §4.2 fetch_synonyms). Labels with no catalog row are simply
// absent from the result; callers treat a missing entry as "no synonyms".
func (q *Queries) FetchSynonyms(ctx context.Context, labels []string) ([]SynonymRow, error) {
	const sql = `
		SELECT label, synonyms
		FROM labels
		WHERE lower(label) = ANY($1)
	`

	lowered := make([]string, len(labels))
	for i, l := range labels {
		lowered[i] = strings.ToLower(l)
	}

	rows, err := q.db.Query(ctx, sql, lowered)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SynonymRow
	for rows.Next() {
		var r SynonymRow
		if err := rows.Scan(&r.Label, &r.Synonyms); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// FetchAppNames batches display names for the given app_ids (spec.md
// §4.2 fetch_app_names), used by the controller to attach names to
// scored results after C6 has produced app_ids alone.
func (q *Queries) FetchAppNames(ctx context.Context, appIDs []int64) ([]AppNameRow, error) {
	const sql = `SELECT id, name FROM application WHERE id = ANY($1)`

	rows, err := q.db.Query(ctx, sql, appIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AppNameRow
	for rows.Next() {
		var r AppNameRow
		if err := rows.Scan(&r.AppID, &r.Name); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
