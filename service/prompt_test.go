package service

import (
	"fmt"
	"strings"
	"testing"

	"ipcpredict-backend/models"

	"github.com/stretchr/testify/assert"
)

func promptCandidates() models.CandidateSet {
	return models.CandidateSet{
		{
			Section: models.SectionRecord{
				SectionNumber: "420",
				Title:         "Cheating and dishonestly inducing delivery of property",
				Summary:       "Punishes cheating that dishonestly induces delivery of property.",
				Keywords:      []string{"cheating", "fraud", "dishonest inducement"},
				OffenceType:   "Property",
			},
			Similarity: 0.82,
		},
		{
			Section: models.SectionRecord{
				SectionNumber: "406",
				Title:         "Punishment for criminal breach of trust",
				Summary:       "Punishes dishonest misappropriation of entrusted property.",
				Keywords:      []string{"breach of trust", "misappropriation"},
				OffenceType:   "Property",
			},
			Similarity: 0.74,
		},
	}
}

func TestBuildSectionPrompt_Deterministic(t *testing.T) {
	candidates := promptCandidates()
	text := "The shopkeeper took an advance payment and never delivered the goods."

	first := BuildSectionPrompt(text, candidates)
	second := BuildSectionPrompt(text, candidates)

	assert.Equal(t, first, second)
}

func TestBuildSectionPrompt_ContainsCandidatesAndAllowedList(t *testing.T) {
	candidates := promptCandidates()
	prompt := BuildSectionPrompt("He was tricked into paying for a fake job offer.", candidates)

	assert.Contains(t, prompt, `["420","406"]`)
	for _, c := range candidates {
		assert.Contains(t, prompt, "Section Number: "+c.Section.SectionNumber)
		assert.Contains(t, prompt, "Title: "+c.Section.Title)
		assert.Contains(t, prompt, "Summary: "+c.Section.Summary)
		assert.Contains(t, prompt, "Keywords: "+strings.Join(c.Section.Keywords, ", "))
	}
	assert.Contains(t, prompt, "He was tricked into paying for a fake job offer.")
}

func TestBuildSectionPrompt_SimilarityScoresNeverShown(t *testing.T) {
	candidates := promptCandidates()
	prompt := BuildSectionPrompt("Some incident text here.", candidates)

	for _, c := range candidates {
		assert.NotContains(t, prompt, fmt.Sprintf("%v", c.Similarity))
	}
	assert.NotContains(t, strings.ToLower(prompt), "similarity")
}

func TestBuildSectionPrompt_CandidateOrderPreserved(t *testing.T) {
	candidates := promptCandidates()
	prompt := BuildSectionPrompt("Some incident text here.", candidates)

	first := strings.Index(prompt, "Section Number: 420")
	second := strings.Index(prompt, "Section Number: 406")
	assert.Greater(t, first, -1)
	assert.Greater(t, second, first)
}
