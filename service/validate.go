package service

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"

	"ipcpredict-backend/models"
)

// fencePattern matches a whole response wrapped in markdown code fences,
// with or without a json language tag.
var fencePattern = regexp.MustCompile("(?s)^```(?:json)?\\s*\n?(.*?)\n?\\s*```$")

// stripMarkdownFences removes the code fences LLMs often wrap around JSON
func stripMarkdownFences(text string) string {
	stripped := strings.TrimSpace(text)
	if m := fencePattern.FindStringSubmatch(stripped); m != nil {
		return strings.TrimSpace(m[1])
	}
	return stripped
}

// ValidateGenerationOutput checks the raw generator output against the
// response contract and the allowed section set from the same request.
// The checks short-circuit: the first failure wins, and every failure maps
// to the identical canonical fallback so callers cannot distinguish failure
// causes. On success the returned prediction's section number is guaranteed
// to be a member of allowedNumbers.
func ValidateGenerationOutput(raw string, allowedNumbers []string, minConfidence float64) models.PredictionOutcome {
	cleaned := stripMarkdownFences(raw)

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return models.Fallback()
	}

	// Extra keys are ignored; the required keys must all be present.
	for _, key := range []string{"predicted_sections", "confidence", "explanation"} {
		if _, ok := parsed[key]; !ok {
			return models.Fallback()
		}
	}

	predictedSections, ok := parsed["predicted_sections"].([]interface{})
	if !ok {
		return models.Fallback()
	}

	// An empty list is the model explicitly declining; indistinguishable
	// from validation failure by design.
	if len(predictedSections) != 1 {
		return models.Fallback()
	}

	sectionValue, ok := predictedSections[0].(string)
	if !ok {
		return models.Fallback()
	}

	sanitizedSection := strings.TrimSpace(sectionValue)
	if sanitizedSection == "" {
		return models.Fallback()
	}

	allowed := make(map[string]struct{}, len(allowedNumbers))
	for _, number := range allowedNumbers {
		trimmed := strings.TrimSpace(number)
		if trimmed != "" {
			allowed[trimmed] = struct{}{}
		}
	}
	if _, ok := allowed[sanitizedSection]; !ok {
		return models.Fallback()
	}

	confidence, ok := parsed["confidence"].(float64)
	if !ok {
		return models.Fallback()
	}
	if math.IsNaN(confidence) || math.IsInf(confidence, 0) {
		return models.Fallback()
	}

	clamped := math.Max(0.0, math.Min(1.0, confidence))
	if clamped < minConfidence {
		return models.Fallback()
	}

	explanation, ok := parsed["explanation"].(string)
	if !ok {
		return models.Fallback()
	}
	sanitizedExplanation := strings.TrimSpace(explanation)
	if sanitizedExplanation == "" {
		return models.Fallback()
	}

	return models.PredictionOutcome{
		Valid: true,
		Prediction: models.ValidatedPrediction{
			SectionNumber: sanitizedSection,
			Confidence:    clamped,
			Explanation:   sanitizedExplanation,
		},
	}
}
