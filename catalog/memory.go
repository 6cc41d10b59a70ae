package catalog

import (
	"context"
	"fmt"
	"math"
	"sort"

	"ipcpredict-backend/models"
)

// MemoryCatalog serves the section index from process memory. It is built
// once at startup and never mutated, so concurrent reads need no locking.
type MemoryCatalog struct {
	records  []models.SectionRecord
	byNumber map[string]int
}

// NewMemoryCatalog builds an in-memory catalog. Slice order is the catalog
// insertion order used for similarity tie-breaking.
func NewMemoryCatalog(records []models.SectionRecord) *MemoryCatalog {
	byNumber := make(map[string]int, len(records))
	for i, record := range records {
		byNumber[record.SectionNumber] = i
	}
	return &MemoryCatalog{
		records:  records,
		byNumber: byNumber,
	}
}

// Search returns the k most similar sections by cosine similarity,
// descending. The stable sort preserves insertion order between equal scores.
func (c *MemoryCatalog) Search(ctx context.Context, queryEmbedding []float64, k int) (models.CandidateSet, error) {
	if len(queryEmbedding) == 0 {
		return nil, fmt.Errorf("query embedding is empty")
	}
	if k <= 0 {
		return nil, nil
	}

	candidates := make(models.CandidateSet, 0, len(c.records))
	for _, record := range c.records {
		sim, err := cosineSimilarity(queryEmbedding, record.Embedding)
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", record.SectionNumber, err)
		}
		candidates = append(candidates, models.Candidate{
			Section:    record,
			Similarity: sim,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Similarity > candidates[j].Similarity
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates, nil
}

// Lookup resolves a section number to its record
func (c *MemoryCatalog) Lookup(ctx context.Context, sectionNumber string) (*models.SectionRecord, error) {
	i, ok := c.byNumber[sectionNumber]
	if !ok {
		return nil, fmt.Errorf("section %s not in catalog", sectionNumber)
	}
	record := c.records[i]
	return &record, nil
}

// Len returns the number of sections in the catalog
func (c *MemoryCatalog) Len() int {
	return len(c.records)
}

func cosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("dimension mismatch: %d vs %d", len(a), len(b))
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
