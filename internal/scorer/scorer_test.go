package scorer

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
)

type failingProvider struct{ calls int }

func (p *failingProvider) Name() string { return "failing" }

func (p *failingProvider) Score(context.Context, models.RoleContext, string, string) (float64, string, error) {
	p.calls++
	return 0, "", context.DeadlineExceeded
}

type fixedProvider struct{ score float64 }

func (p *fixedProvider) Name() string { return "fixed" }

func (p *fixedProvider) Score(context.Context, models.RoleContext, string, string) (float64, string, error) {
	return p.score, "fine", nil
}

func quiet() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestProviderScoreUsed(t *testing.T) {
	s := New(&fixedProvider{score: 8.2}, time.Second, quiet())
	score, b := s.Score(context.Background(), models.RoleContext{}, "q", "a fine answer")
	if score != 8.2 {
		t.Fatalf("score = %v, want 8.2", score)
	}
	if b.UsedFallback {
		t.Fatal("breakdown flagged fallback on provider success")
	}
}

func TestHeuristicOnProviderFailure(t *testing.T) {
	p := &failingProvider{}
	s := New(p, time.Second, quiet())

	score, b := s.Score(context.Background(), models.RoleContext{}, "q",
		"this answer has exactly enough words to cross the thirty word boundary used by the heuristic scoring path "+
			"so the midpoint gets a length bonus and the result is fully deterministic for this test")
	if p.calls != 1 {
		t.Fatalf("provider called %d times, want 1", p.calls)
	}
	if !b.UsedFallback {
		t.Fatal("fallback not flagged")
	}
	if score != 6.0 {
		t.Fatalf("heuristic score = %v, want 6.0 (midpoint + length bonus)", score)
	}
}

func TestEmptyAnswerFloor(t *testing.T) {
	s := New(nil, time.Second, quiet())
	score, _ := s.Score(context.Background(), models.RoleContext{}, "q", "   ")
	if score != 1.0 {
		t.Fatalf("score = %v, want 1.0 for empty answer", score)
	}
}

func TestHeuristicDeterministic(t *testing.T) {
	s := New(nil, time.Second, quiet())
	role := models.RoleContext{Skills: []string{"Go", "Kubernetes"}}
	answer := "I have used Go and Kubernetes in production for three years."

	a, ba := s.Score(context.Background(), role, "q", answer)
	b, bb := s.Score(context.Background(), role, "q", answer)
	if a != b || len(ba.KeywordHits) != len(bb.KeywordHits) {
		t.Fatalf("heuristic not deterministic: %v vs %v", a, b)
	}
	if len(ba.KeywordHits) != 2 {
		t.Fatalf("keyword hits = %v, want both skills", ba.KeywordHits)
	}
}

func TestScoreNeverErrors(t *testing.T) {
	s := New(&failingProvider{}, time.Second, quiet())
	score, _ := s.Score(context.Background(), models.RoleContext{}, "q", "short")
	if score < 0 || score > 10 {
		t.Fatalf("score %v out of range", score)
	}
}
