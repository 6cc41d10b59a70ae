package service

import (
	"os"
	"strconv"
	"time"
)

// Config holds the pipeline tuning constants. Every value can be overridden
// by environment variable; the defaults match the validated production
// settings.
type Config struct {
	// TopK is the number of nearest sections retrieved per query.
	TopK int

	// SimilarityThreshold gates generation: if the best retrieval similarity
	// falls below it, the request short-circuits to the fallback result.
	// Irrelevant text still has *some* nearest neighbour in a finite catalog,
	// so raw similarity alone cannot separate a plausible match from noise.
	SimilarityThreshold float64

	// MinConfidence is the minimum accepted generator confidence, on the
	// model's 0..1 scale.
	MinConfidence float64

	// Temperature for the generation call. Kept at 0 so repeated calls on
	// the same prompt are deterministic (best effort on the provider side).
	Temperature float64

	// GenerationTimeout caps the single generation call.
	GenerationTimeout time.Duration

	// MinInputLength is the minimum incident-text length (in runes, after
	// trimming) enforced by the request framing layer.
	MinInputLength int
}

// DefaultConfig returns the standard pipeline configuration
func DefaultConfig() Config {
	return Config{
		TopK:                7,
		SimilarityThreshold: -0.60,
		MinConfidence:       0.30,
		Temperature:         0.0,
		GenerationTimeout:   60 * time.Second,
		MinInputLength:      7,
	}
}

// ConfigFromEnv returns DefaultConfig with any environment overrides applied
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v, ok := envInt("TOP_K"); ok {
		cfg.TopK = v
	}
	if v, ok := envFloat("SIMILARITY_THRESHOLD"); ok {
		cfg.SimilarityThreshold = v
	}
	if v, ok := envFloat("MIN_CONFIDENCE"); ok {
		cfg.MinConfidence = v
	}
	if v, ok := envFloat("GENERATION_TEMPERATURE"); ok {
		cfg.Temperature = v
	}
	if v, ok := envInt("GENERATION_TIMEOUT_SECONDS"); ok {
		cfg.GenerationTimeout = time.Duration(v) * time.Second
	}
	if v, ok := envInt("MIN_INPUT_LENGTH"); ok {
		cfg.MinInputLength = v
	}

	return cfg
}

func envInt(key string) (int, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envFloat(key string) (float64, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
