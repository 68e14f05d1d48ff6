package interview

import (
	"strings"
	"testing"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
)

func TestFeedbackBands(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{10, "Excellent!"},
		{8, "Excellent!"},
		{7.99, "Good job."},
		{6, "Good job."},
		{5.5, "Okay."},
		{4, "Okay."},
		{3.99, "I see."},
		{0, "I see."},
	}
	for _, tc := range cases {
		if got := feedbackFor(tc.score); !strings.HasPrefix(got, tc.want) {
			t.Errorf("feedbackFor(%v) = %q, want prefix %q", tc.score, got, tc.want)
		}
	}
}

func TestOverallFeedbackDeterministic(t *testing.T) {
	role := models.RoleContext{CandidateName: "Priya", JobRole: "data_scientist"}
	responses := []models.Response{
		{QuestionIndex: 0, Question: "Explain overfitting.", MergedScore: 8.5},
		{QuestionIndex: 1, Question: "Describe a conflict.", MergedScore: 5.0},
	}

	a := overallFeedback(role, responses)
	b := overallFeedback(role, responses)
	if a != b {
		t.Fatal("narrative is not deterministic")
	}
	if !strings.Contains(a, "Priya") {
		t.Errorf("narrative missing candidate name: %q", a)
	}
	if !strings.Contains(a, "question 1") {
		t.Errorf("narrative missing strongest question: %q", a)
	}
}

func TestOverallFeedbackEmpty(t *testing.T) {
	got := overallFeedback(models.RoleContext{}, nil)
	if got == "" {
		t.Fatal("empty narrative for zero responses")
	}
}
