package models

// FallbackExplanation is the canonical "no confident prediction" text.
// Every failure mode in the pipeline converges to this exact value.
const FallbackExplanation = "The described incident does not clearly fall under a specific IPC section."

// ValidatedPrediction is a generator output that passed every guard check.
// Confidence is on the model's 0..1 scale; scaling to 0-100 happens once in
// the response mapper.
type ValidatedPrediction struct {
	SectionNumber string  `json:"section_number"`
	Confidence    float64 `json:"confidence"`
	Explanation   string  `json:"explanation"`
}

// PredictionOutcome is the tagged result of the validation guard: either a
// validated prediction or the canonical fallback, never anything else.
type PredictionOutcome struct {
	Valid      bool                `json:"valid"`
	Prediction ValidatedPrediction `json:"prediction"`
}

// Fallback returns the canonical no-prediction outcome. Callers compare by
// value; there is no singleton identity requirement.
func Fallback() PredictionOutcome {
	return PredictionOutcome{
		Valid: false,
		Prediction: ValidatedPrediction{
			Confidence:  0,
			Explanation: FallbackExplanation,
		},
	}
}
