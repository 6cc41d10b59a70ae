package catalog

import (
	"context"
	"fmt"
	"os"

	"ipcpredict-backend/models"
	"ipcpredict-backend/repository"
)

// Catalog is the read-only section index the prediction pipeline consumes.
// Implementations must be safe for unbounded concurrent readers.
type Catalog interface {
	// Search returns the k nearest sections by cosine similarity, descending,
	// ties broken by catalog insertion order.
	Search(ctx context.Context, queryEmbedding []float64, k int) (models.CandidateSet, error)

	// Lookup resolves a section number to its full record.
	Lookup(ctx context.Context, sectionNumber string) (*models.SectionRecord, error)
}

// BackendType represents the catalog backend type
type BackendType string

const (
	BackendMemory   BackendType = "memory"
	BackendPgvector BackendType = "pgvector"
)

// NewCatalogFromEnv builds a catalog from the CATALOG_BACKEND environment
// variable. The default is "memory": all sections are loaded from Postgres
// once at startup and served from process memory thereafter. "pgvector"
// queries the database per request instead.
func NewCatalogFromEnv(ctx context.Context, repo *repository.SectionRepository) (Catalog, error) {
	backend := os.Getenv("CATALOG_BACKEND")
	if backend == "" {
		backend = string(BackendMemory)
	}

	switch BackendType(backend) {
	case BackendMemory:
		records, err := repo.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load section catalog: %w", err)
		}
		if len(records) == 0 {
			return nil, fmt.Errorf("section catalog is empty; run cmd/build-embeddings first")
		}
		return NewMemoryCatalog(records), nil

	case BackendPgvector:
		return NewPgCatalog(repo), nil

	default:
		return nil, fmt.Errorf("unknown catalog backend: %s", backend)
	}
}
