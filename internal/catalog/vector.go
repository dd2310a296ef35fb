package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/typesense/typesense-go/v4/typesense"
	"github.com/typesense/typesense-go/v4/typesense/api"
	"github.com/typesense/typesense-go/v4/typesense/api/pointer"

	"github.com/appmarket/matchcore/internal/domain"
)

// vectorSearcher is the narrow slice of the Typesense client the vector
// reader depends on, so it can be faked in tests without a live server.
type vectorSearcher interface {
	searchDocuments(ctx context.Context, collection string, params *api.SearchCollectionParams) (*api.SearchResult, error)
}

const applicationSearchCollection = "application_search"

// typesenseSearcher adapts *typesense.Client to vectorSearcher.
type typesenseSearcher struct {
	client *typesense.Client
}

// NewTypesenseClient builds a Typesense client from a base URL and API key.
func NewTypesenseClient(url, apiKey string) *typesense.Client {
	return typesense.NewClient(
		typesense.WithServer(url),
		typesense.WithAPIKey(apiKey),
	)
}

func (s *typesenseSearcher) searchDocuments(ctx context.Context, collection string, params *api.SearchCollectionParams) (*api.SearchResult, error) {
	return s.client.Collection(collection).Documents().Search(ctx, params)
}

// vectorReader implements the vector_candidates half of CatalogReader
// against a Typesense collection whose `embedding` field is indexed for
// HNSW cosine search (spec.md §6, SPEC_FULL.md §4.2).
type vectorReader struct {
	searcher vectorSearcher
}

// NewVectorReader wraps client for vector_candidates reads.
func NewVectorReader(client *typesense.Client) *vectorReader {
	return &vectorReader{searcher: &typesenseSearcher{client: client}}
}

func (r *vectorReader) VectorCandidates(ctx context.Context, embedding []float32, k int) ([]domain.VectorCandidate, error) {
	vec := make([]string, len(embedding))
	for i, v := range embedding {
		vec[i] = strconv.FormatFloat(float64(v), 'f', -1, 32)
	}
	vectorQuery := fmt.Sprintf("embedding:([%s], k:%d)", strings.Join(vec, ","), k)

	params := &api.SearchCollectionParams{
		Q:           pointer.String("*"),
		QueryBy:     pointer.String("name"),
		VectorQuery: pointer.String(vectorQuery),
		PerPage:     pointer.Int(k),
	}

	result, err := r.searcher.searchDocuments(ctx, applicationSearchCollection, params)
	if err != nil {
		return nil, fmt.Errorf("typesense vector search: %w", err)
	}
	if result.Hits == nil {
		return nil, nil
	}

	out := make([]domain.VectorCandidate, 0, len(*result.Hits))
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		doc := *hit.Document

		cand := domain.VectorCandidate{
			AppSearchID: asInt64(doc["id"]),
			AppID:       asInt64(doc["app_id"]),
			PriceText:   asString(doc["price_text"]),
		}
		if hit.VectorDistance != nil {
			cand.CosineSimilarity = 1 - float64(*hit.VectorDistance)
		}
		out = append(out, cand)
	}
	return out, nil
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case string:
		id, _ := strconv.ParseInt(n, 10, 64)
		return id
	default:
		return 0
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
