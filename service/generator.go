package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
)

// Generator produces raw text from a prompt. The output is untrusted until
// it passes the validation guard.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const generationModel = "models/gemini-2.5-flash"

// GeminiGenerator calls Gemini generateContent once per request: no retry
// loop and no parameter changes, so a deterministic model at temperature 0
// yields identical output for identical prompts.
type GeminiGenerator struct {
	model   *genai.GenerativeModel
	timeout time.Duration
}

// NewGeminiGenerator creates a generator with a fixed temperature and a hard
// per-call timeout
func NewGeminiGenerator(client *genai.Client, temperature float64, timeout time.Duration) *GeminiGenerator {
	model := client.GenerativeModel(generationModel)
	model.SetTemperature(float32(temperature))
	return &GeminiGenerator{
		model:   model,
		timeout: timeout,
	}
}

// Generate performs the single generation call. Transport failures,
// timeouts, and empty responses all surface as errors the pipeline maps to
// the fallback result.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.model.GenerateContent(callCtx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generation call failed: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("API returned no candidates")
	}

	var out strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				out.WriteString(string(text))
			}
		}
	}

	result := out.String()
	if result == "" {
		return "", fmt.Errorf("API returned empty content")
	}

	return result, nil
}
