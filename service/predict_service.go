package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"ipcpredict-backend/catalog"
	"ipcpredict-backend/models"

	"github.com/google/uuid"
)

// PredictService runs the grounded prediction pipeline: retrieval gate,
// prompt construction, generation call, validation guard, response mapping.
// Each request is an independent, stateless invocation; the service holds no
// mutable state, so any number of requests may run in parallel.
type PredictService struct {
	catalog   catalog.Catalog
	embedder  Embedder
	generator Generator
	config    Config
}

// PredictServiceOption is a functional option for PredictService
type PredictServiceOption func(*PredictService)

// WithCatalog sets the section catalog
func WithCatalog(c catalog.Catalog) PredictServiceOption {
	return func(s *PredictService) {
		s.catalog = c
	}
}

// WithEmbedder sets the embedding provider
func WithEmbedder(e Embedder) PredictServiceOption {
	return func(s *PredictService) {
		s.embedder = e
	}
}

// WithGenerator sets the text-generation provider
func WithGenerator(g Generator) PredictServiceOption {
	return func(s *PredictService) {
		s.generator = g
	}
}

// WithConfig sets the pipeline configuration
func WithConfig(cfg Config) PredictServiceOption {
	return func(s *PredictService) {
		s.config = cfg
	}
}

// NewPredictService creates a new prediction service
func NewPredictService(opts ...PredictServiceOption) *PredictService {
	s := &PredictService{config: DefaultConfig()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	ErrEmbeddingFailed  = errors.New("failed to generate query embedding")
	ErrRetrievalFailed  = errors.New("failed to retrieve candidate sections")
	ErrGenerationFailed = errors.New("failed to generate prediction")
)

// PredictRequest represents one incident description to classify
type PredictRequest struct {
	IncidentText string
}

// PredictResult is the mapped pipeline outcome. For a fallback result
// SectionNumber and Title are empty and Confidence is 0. Confidence is
// scaled to the external 0-100 contract exactly once, here.
type PredictResult struct {
	RequestID     uuid.UUID
	SectionNumber string
	Title         string
	Confidence    int
	Explanation   string
	Fallback      bool
}

// Config returns the service's pipeline configuration
func (s *PredictService) Config() Config {
	return s.config
}

// Predict runs the full pipeline for one incident description. It is the
// error boundary: every internal failure (embedding, retrieval, generation,
// validation, title lookup) is logged and collapsed to the canonical
// fallback result, so callers never observe provider or model detail.
func (s *PredictService) Predict(ctx context.Context, req PredictRequest) *PredictResult {
	requestID := uuid.New()

	candidates, err := s.retrieve(ctx, req.IncidentText)
	if err != nil {
		log.Printf("[%s] retrieval failed: %v", requestID, err)
		return s.fallbackResult(requestID)
	}

	// Similarity gate: below the threshold the request is non-actionable
	// and the generator must not be invoked.
	if candidates.BestSimilarity() < s.config.SimilarityThreshold {
		return s.fallbackResult(requestID)
	}

	prompt := BuildSectionPrompt(req.IncidentText, candidates)

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("[%s] %v: %v", requestID, ErrGenerationFailed, err)
		return s.fallbackResult(requestID)
	}

	outcome := ValidateGenerationOutput(raw, candidates.SectionNumbers(), s.config.MinConfidence)
	if !outcome.Valid {
		return s.fallbackResult(requestID)
	}

	// Grounding held, so the lookup must succeed; a miss means the catalog
	// and the candidate set disagree and the safe answer is no answer.
	record, err := s.catalog.Lookup(ctx, outcome.Prediction.SectionNumber)
	if err != nil {
		log.Printf("[%s] grounding violation: validated section %s not in catalog: %v",
			requestID, outcome.Prediction.SectionNumber, err)
		return s.fallbackResult(requestID)
	}

	return &PredictResult{
		RequestID:     requestID,
		SectionNumber: outcome.Prediction.SectionNumber,
		Title:         record.Title,
		Confidence:    int(math.Round(outcome.Prediction.Confidence * 100)),
		Explanation:   outcome.Prediction.Explanation,
	}
}

// retrieve embeds the incident text and fetches the TopK nearest sections
func (s *PredictService) retrieve(ctx context.Context, incidentText string) (models.CandidateSet, error) {
	if s.catalog == nil {
		return nil, errors.New("catalog not set")
	}
	if s.embedder == nil {
		return nil, errors.New("embedder not set")
	}
	if s.generator == nil {
		return nil, errors.New("generator not set")
	}

	queryEmbedding, err := s.embedder.Embed(ctx, incidentText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}

	candidates, err := s.catalog.Search(ctx, queryEmbedding, s.config.TopK)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrievalFailed, err)
	}

	return candidates, nil
}

func (s *PredictService) fallbackResult(requestID uuid.UUID) *PredictResult {
	return &PredictResult{
		RequestID:   requestID,
		Explanation: models.FallbackExplanation,
		Fallback:    true,
	}
}
