package question

import (
	"strings"
	"testing"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
)

func TestBuildPromptIncludesContext(t *testing.T) {
	p := buildPrompt(Request{
		Role: models.RoleContext{
			JobRole: "data_scientist",
			Skills:  []string{"pandas", "sql"},
		},
		Prior:      []models.Question{{Text: "Explain overfitting."}},
		LastAnswer: "I would use cross-validation.",
		Count:      1,
	})

	for _, want := range []string{"data scientist", "pandas", "Explain overfitting.", "cross-validation", "JSON array"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestParseQuestionsPlain(t *testing.T) {
	qs, err := parseQuestions("test", `[{"question":"What is a goroutine?","type":"technical","difficulty":"easy"}]`)
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 1 || qs[0].Text != "What is a goroutine?" || qs[0].Provenance != "test" {
		t.Fatalf("got %+v", qs)
	}
}

func TestParseQuestionsFencedWithProse(t *testing.T) {
	raw := "Sure, here you go:\n```json\n[{\"question\":\"Describe a deadlock.\"}]\n```"
	qs, err := parseQuestions("test", raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 1 || qs[0].Category != models.CategoryTechnical || qs[0].Difficulty != "medium" {
		t.Fatalf("defaults not applied: %+v", qs)
	}
}

func TestParseQuestionsMalformed(t *testing.T) {
	for _, raw := range []string{"", "no array here", `[{"question":"   "}]`, "[not json]"} {
		_, err := parseQuestions("test", raw)
		f, ok := AsFailure(err)
		if !ok || f.Kind != Malformed {
			t.Errorf("raw %q: err = %v, want malformed failure", raw, err)
		}
	}
}
