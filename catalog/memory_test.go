package catalog

import (
	"context"
	"testing"

	"ipcpredict-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryRecords() []models.SectionRecord {
	return []models.SectionRecord{
		{SectionNumber: "302", Title: "Punishment for murder", Embedding: []float64{1, 0, 0}},
		{SectionNumber: "304A", Title: "Causing death by negligence", Embedding: []float64{0, 1, 0}},
		{SectionNumber: "378", Title: "Theft", Embedding: []float64{0, 0, 1}},
		{SectionNumber: "420", Title: "Cheating and dishonestly inducing delivery of property", Embedding: []float64{0.6, 0.8, 0}},
	}
}

func TestMemoryCatalog_SearchOrdering(t *testing.T) {
	cat := NewMemoryCatalog(memoryRecords())

	candidates, err := cat.Search(context.Background(), []float64{1, 0, 0}, 4)
	require.NoError(t, err)
	require.Len(t, candidates, 4)

	assert.Equal(t, "302", candidates[0].Section.SectionNumber)
	assert.InDelta(t, 1.0, candidates[0].Similarity, 1e-9)
	for i := 1; i < len(candidates); i++ {
		assert.LessOrEqual(t, candidates[i].Similarity, candidates[i-1].Similarity)
	}
}

func TestMemoryCatalog_SearchTruncatesToK(t *testing.T) {
	cat := NewMemoryCatalog(memoryRecords())

	candidates, err := cat.Search(context.Background(), []float64{1, 0, 0}, 2)
	require.NoError(t, err)
	assert.Len(t, candidates, 2)

	// k larger than the catalog returns everything.
	candidates, err = cat.Search(context.Background(), []float64{1, 0, 0}, 100)
	require.NoError(t, err)
	assert.Len(t, candidates, 4)
}

func TestMemoryCatalog_TiesKeepInsertionOrder(t *testing.T) {
	// Two records equidistant from the query: the earlier one must come
	// first no matter how the scores interleave.
	records := []models.SectionRecord{
		{SectionNumber: "100", Embedding: []float64{1, 0}},
		{SectionNumber: "200", Embedding: []float64{1, 0}},
		{SectionNumber: "300", Embedding: []float64{0, 1}},
	}
	cat := NewMemoryCatalog(records)

	candidates, err := cat.Search(context.Background(), []float64{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	assert.Equal(t, "100", candidates[0].Section.SectionNumber)
	assert.Equal(t, "200", candidates[1].Section.SectionNumber)
	assert.Equal(t, candidates[0].Similarity, candidates[1].Similarity)
	assert.Equal(t, "300", candidates[2].Section.SectionNumber)
}

func TestMemoryCatalog_SearchEmptyQuery(t *testing.T) {
	cat := NewMemoryCatalog(memoryRecords())

	_, err := cat.Search(context.Background(), nil, 3)
	assert.Error(t, err)
}

func TestMemoryCatalog_SearchDimensionMismatch(t *testing.T) {
	cat := NewMemoryCatalog(memoryRecords())

	_, err := cat.Search(context.Background(), []float64{1, 0}, 3)
	assert.Error(t, err)
}

func TestMemoryCatalog_Lookup(t *testing.T) {
	cat := NewMemoryCatalog(memoryRecords())

	record, err := cat.Lookup(context.Background(), "420")
	require.NoError(t, err)
	assert.Equal(t, "Cheating and dishonestly inducing delivery of property", record.Title)

	_, err = cat.Lookup(context.Background(), "999")
	assert.Error(t, err)
}

func TestCosineSimilarity(t *testing.T) {
	sim, err := cosineSimilarity([]float64{1, 0}, []float64{1, 0})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-9)

	sim, err = cosineSimilarity([]float64{1, 0}, []float64{0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, sim, 1e-9)

	sim, err = cosineSimilarity([]float64{1, 0}, []float64{-1, 0})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, sim, 1e-9)

	// Zero vector has no direction; similarity is defined as 0.
	sim, err = cosineSimilarity([]float64{1, 0}, []float64{0, 0})
	require.NoError(t, err)
	assert.Zero(t, sim)
}
