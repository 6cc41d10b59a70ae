package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"ipcpredict-backend/models"
)

// BuildSectionPrompt constructs the constrained reasoning prompt for one
// request. Pure function: same candidates and text always produce the same
// prompt. Candidates are described by number, title, summary, keywords, and
// offence type; similarity scores are a retrieval-internal signal and are
// never shown to the generator.
func BuildSectionPrompt(incidentText string, candidates models.CandidateSet) string {
	allowedNumbers := candidates.SectionNumbers()
	allowedJSON, _ := json.Marshal(allowedNumbers)

	blocks := make([]string, 0, len(candidates))
	for _, c := range candidates {
		s := c.Section
		blocks = append(blocks, strings.Join([]string{
			"Section Number: " + strings.TrimSpace(s.SectionNumber),
			"Title: " + strings.TrimSpace(s.Title),
			"Summary: " + strings.TrimSpace(s.Summary),
			"Keywords: " + strings.Join(s.Keywords, ", "),
			"Offence Type: " + strings.TrimSpace(s.OffenceType),
		}, "\n"))
	}

	return fmt.Sprintf(`You are a legal reasoning assistant for IPC section prediction.
You are strictly restricted to the provided candidate sections.
You are not allowed to invent, infer, or reference any section outside the allowed list.

Allowed Section Numbers:
%s

Candidate Sections:
%s

Incident Description:
%s

Decision Rules:
1. Select exactly one section number or return an empty list.
2. You may choose only from Allowed Section Numbers.
3. If no section is even remotely applicable, return an empty list.
4. Select the most applicable section even if the match is partial.
5. Return an empty list only when NO candidate section is genuinely relevant.
6. Confidence must be a float between 0.0 and 1.0.
7. Output must be strict JSON only.
8. Do not output markdown.
9. Do not output backticks.
10. Do not output additional commentary.
11. Do not output additional keys.
12. predicted_sections must contain at most one element.
13. confidence must be a numeric value (not a string).
14. Set confidence above 0.3 if the section is a reasonable match.

Output Schema:
{
  "predicted_sections": ["<section_number>"] OR [],
  "confidence": float,
  "explanation": "Plain English explanation."
}

Return ONLY valid JSON.`,
		string(allowedJSON),
		strings.Join(blocks, "\n\n"),
		strings.TrimSpace(incidentText),
	)
}
