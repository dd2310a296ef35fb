package catalog

import (
	"github.com/typesense/typesense-go/v4/typesense"

	"github.com/appmarket/matchcore/core/db/queries"
)

// hybridCatalog splits CatalogReader across the two stores spec.md §6
// describes: Typesense for the ANN vector index, Postgres for everything
// relational (SPEC_FULL.md §4.2).
type hybridCatalog struct {
	*vectorReader
	*pgReader
}

// NewHybridCatalog composes a full CatalogReader from a Typesense client
// and a Postgres query layer.
func NewHybridCatalog(ts *typesense.Client, q *queries.Queries) CatalogReader {
	return &hybridCatalog{
		vectorReader: NewVectorReader(ts),
		pgReader:     NewPostgresReader(q),
	}
}

var (
	_ CatalogReader = (*hybridCatalog)(nil)
	_ BacklogReader = (*pgReader)(nil)
)
