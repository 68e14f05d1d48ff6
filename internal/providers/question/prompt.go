package question

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
)

func buildPrompt(req Request) string {
	var b strings.Builder

	role := req.Role.JobRole
	if role == "" {
		role = "software_engineer"
	}

	fmt.Fprintf(&b, "You are a professional interviewer. Generate %d interview question(s) for a %s position.\n",
		req.Count, strings.ReplaceAll(role, "_", " "))

	if len(req.Role.Skills) > 0 {
		fmt.Fprintf(&b, "The candidate lists these skills: %s.\n", strings.Join(req.Role.Skills, ", "))
	}
	if req.Role.ExperienceYears > 0 {
		fmt.Fprintf(&b, "They have about %d years of experience.\n", req.Role.ExperienceYears)
	}
	if req.Role.Summary != "" {
		fmt.Fprintf(&b, "Resume highlights: %s\n", req.Role.Summary)
	}

	if len(req.Prior) > 0 {
		b.WriteString("Do not repeat any of these already-asked questions:\n")
		for _, q := range req.Prior {
			fmt.Fprintf(&b, "- %s\n", q.Text)
		}
	}
	if req.LastAnswer != "" {
		fmt.Fprintf(&b, "The candidate's most recent answer was: %q\nThe next question may probe deeper into it.\n", req.LastAnswer)
	}

	b.WriteString(`Respond with a JSON array only, no prose. Each element: {"question": string, "type": "technical"|"behavioral"|"situational", "difficulty": "easy"|"medium"|"hard"}`)
	return b.String()
}

// parseQuestions extracts a question list from model output, tolerating
// markdown fences and surrounding prose.
func parseQuestions(provider, raw string) ([]models.Question, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start < 0 || end <= start {
		return nil, failf(provider, Malformed, fmt.Errorf("no JSON array in response"))
	}

	var out []models.Question
	if err := json.Unmarshal([]byte(s[start:end+1]), &out); err != nil {
		return nil, failf(provider, Malformed, err)
	}

	kept := out[:0]
	for _, q := range out {
		q.Text = strings.TrimSpace(q.Text)
		if q.Text == "" {
			continue
		}
		if q.Category == "" {
			q.Category = models.CategoryTechnical
		}
		if q.Difficulty == "" {
			q.Difficulty = "medium"
		}
		q.Provenance = provider
		kept = append(kept, q)
	}
	if len(kept) == 0 {
		return nil, failf(provider, Malformed, fmt.Errorf("response contained no usable questions"))
	}
	return kept, nil
}
