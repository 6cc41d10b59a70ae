package catalog

import (
	"context"

	"ipcpredict-backend/models"
	"ipcpredict-backend/repository"
)

// PgCatalog queries pgvector per request instead of holding the catalog in
// memory. Ordering semantics match MemoryCatalog: cosine similarity
// descending, ties broken by insertion order in SQL.
type PgCatalog struct {
	repo *repository.SectionRepository
}

// NewPgCatalog creates a pgvector-backed catalog
func NewPgCatalog(repo *repository.SectionRepository) *PgCatalog {
	return &PgCatalog{repo: repo}
}

// Search delegates to the repository's nearest-neighbour query
func (c *PgCatalog) Search(ctx context.Context, queryEmbedding []float64, k int) (models.CandidateSet, error) {
	return c.repo.SearchNearest(ctx, queryEmbedding, k)
}

// Lookup resolves a section number via the repository
func (c *PgCatalog) Lookup(ctx context.Context, sectionNumber string) (*models.SectionRecord, error) {
	return c.repo.GetByNumber(ctx, sectionNumber)
}
