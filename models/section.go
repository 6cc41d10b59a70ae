package models

import "math"

// SectionRecord represents one IPC section from the enriched catalog.
// Records are created offline by cmd/build-embeddings and are read-only
// for the lifetime of the process.
type SectionRecord struct {
	SectionNumber string    `json:"section_number"`
	Title         string    `json:"title"`
	Summary       string    `json:"summary"`
	Keywords      []string  `json:"keywords"`
	FullText      string    `json:"full_text"`
	OffenceType   string    `json:"offence_type"`
	Embedding     []float64 `json:"embedding,omitempty"`
}

// Candidate is one retrieved section with its similarity to the query.
type Candidate struct {
	Section    SectionRecord `json:"section"`
	Similarity float64       `json:"similarity"`
}

// CandidateSet is the ordered (descending similarity) retrieval result for
// one query. It defines the allowed section set for that request.
type CandidateSet []Candidate

// SectionNumbers returns the allowed section numbers in candidate order.
func (cs CandidateSet) SectionNumbers() []string {
	numbers := make([]string, 0, len(cs))
	for _, c := range cs {
		numbers = append(numbers, c.Section.SectionNumber)
	}
	return numbers
}

// BestSimilarity returns the top candidate's similarity, or -Inf when the
// set is empty so that any threshold comparison fails closed.
func (cs CandidateSet) BestSimilarity() float64 {
	if len(cs) == 0 {
		return math.Inf(-1)
	}
	return cs[0].Similarity
}
