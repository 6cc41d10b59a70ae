package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"ipcpredict-backend/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SectionRepository handles database operations for IPC sections
type SectionRepository struct {
	db *pgxpool.Pool
}

// NewSectionRepository creates a new section repository
func NewSectionRepository(db *pgxpool.Pool) *SectionRepository {
	return &SectionRepository{db: db}
}

// formatVector formats an embedding vector as a string for pgx
func formatVector(embedding []float64) string {
	if len(embedding) == 0 {
		return "[]"
	}
	var parts []string
	for _, v := range embedding {
		parts = append(parts, fmt.Sprintf("%.6f", v))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// parseVector parses the text form of a pgvector column back into floats
func parseVector(text string) ([]float64, error) {
	trimmed := strings.Trim(strings.TrimSpace(text), "[]")
	if trimmed == "" {
		return nil, nil
	}
	fields := strings.Split(trimmed, ",")
	values := make([]float64, 0, len(fields))
	for _, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid vector component %q: %w", field, err)
		}
		values = append(values, v)
	}
	return values, nil
}

// SearchNearest returns the limit nearest sections by cosine similarity,
// descending. Ties are broken by catalog insertion order so repeated queries
// stay deterministic. Similarity is 1 - cosine distance.
func (r *SectionRepository) SearchNearest(
	ctx context.Context,
	embedding []float64,
	limit int,
) (models.CandidateSet, error) {
	if len(embedding) != 768 {
		return nil, fmt.Errorf("embedding must be 768 dimensions, got %d", len(embedding))
	}

	vectorStr := formatVector(embedding)

	query := `
		SELECT
			section_number,
			title,
			summary,
			keywords,
			full_text,
			offence_type,
			1 - (embedding <=> $1::vector) AS similarity
		FROM ipc_sections
		ORDER BY
			embedding <=> $1::vector,
			insertion_order
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, vectorStr, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}
	defer rows.Close()

	var candidates models.CandidateSet
	for rows.Next() {
		var c models.Candidate
		err := rows.Scan(
			&c.Section.SectionNumber,
			&c.Section.Title,
			&c.Section.Summary,
			&c.Section.Keywords,
			&c.Section.FullText,
			&c.Section.OffenceType,
			&c.Similarity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		candidates = append(candidates, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sections: %w", err)
	}

	return candidates, nil
}

// GetByNumber retrieves a single section by its section number
func (r *SectionRepository) GetByNumber(ctx context.Context, sectionNumber string) (*models.SectionRecord, error) {
	record := &models.SectionRecord{}
	query := `
		SELECT section_number, title, summary, keywords, full_text, offence_type
		FROM ipc_sections
		WHERE section_number = $1`

	err := r.db.QueryRow(ctx, query, sectionNumber).Scan(
		&record.SectionNumber,
		&record.Title,
		&record.Summary,
		&record.Keywords,
		&record.FullText,
		&record.OffenceType,
	)
	if err != nil {
		return nil, err
	}

	return record, nil
}

// ListAll returns every section with its embedding, in insertion order.
// Used to build the in-memory catalog at process start.
func (r *SectionRepository) ListAll(ctx context.Context) ([]models.SectionRecord, error) {
	query := `
		SELECT section_number, title, summary, keywords, full_text, offence_type,
			embedding::text
		FROM ipc_sections
		ORDER BY insertion_order`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	defer rows.Close()

	var records []models.SectionRecord
	for rows.Next() {
		var record models.SectionRecord
		var embeddingText string
		err := rows.Scan(
			&record.SectionNumber,
			&record.Title,
			&record.Summary,
			&record.Keywords,
			&record.FullText,
			&record.OffenceType,
			&embeddingText,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		record.Embedding, err = parseVector(embeddingText)
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", record.SectionNumber, err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// ReplaceAll replaces the entire catalog in a single transaction, assigning
// insertion order from slice position. Used by cmd/build-embeddings.
func (r *SectionRepository) ReplaceAll(ctx context.Context, records []models.SectionRecord) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM ipc_sections"); err != nil {
		return fmt.Errorf("failed to clear sections: %w", err)
	}

	query := `
		INSERT INTO ipc_sections (
			section_number, insertion_order, title, summary, keywords,
			full_text, offence_type, embedding
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8::vector)`

	for i, record := range records {
		_, err := tx.Exec(ctx, query,
			record.SectionNumber,
			i,
			record.Title,
			record.Summary,
			record.Keywords,
			record.FullText,
			record.OffenceType,
			formatVector(record.Embedding),
		)
		if err != nil {
			return fmt.Errorf("failed to insert section %s: %w", record.SectionNumber, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Count returns the number of sections in the catalog
func (r *SectionRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM ipc_sections").Scan(&count)
	return count, err
}
