package resolver

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/providers/question"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/questionbank"
)

type stub struct {
	name      string
	calls     int
	questions []string
	err       error
}

func (s *stub) Name() string { return s.name }

func (s *stub) Generate(_ context.Context, req question.Request) ([]models.Question, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.Question, 0, len(s.questions))
	for _, q := range s.questions {
		out = append(out, models.Question{Text: q, Provenance: s.name})
	}
	return out, nil
}

func newResolver(t *testing.T, providers ...question.Provider) *Resolver {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	bank, _ := questionbank.Load("no-such-file.json")
	return New(providers, bank, time.Second, log)
}

func req(prior ...string) question.Request {
	r := question.Request{
		Role:  models.RoleContext{JobRole: "software_engineer"},
		Count: 1,
	}
	for _, p := range prior {
		r.Prior = append(r.Prior, models.Question{Text: p})
	}
	return r
}

func TestStrictPriorityOrder(t *testing.T) {
	first := &stub{name: "first", questions: []string{"from first"}}
	second := &stub{name: "second", questions: []string{"from second"}}

	got := newResolver(t, first, second).Next(context.Background(), req())
	if len(got) != 1 || got[0].Provenance != "first" {
		t.Fatalf("got %+v, want question from first provider", got)
	}
	if second.calls != 0 {
		t.Fatal("second provider called although first succeeded")
	}
}

func TestFallsThroughOnFailure(t *testing.T) {
	down := &stub{name: "down", err: &question.Failure{Provider: "down", Kind: question.Unavailable}}
	up := &stub{name: "up", questions: []string{"rescued"}}

	got := newResolver(t, down, up).Next(context.Background(), req())
	if len(got) != 1 || got[0].Text != "rescued" {
		t.Fatalf("got %+v", got)
	}
	if down.calls != 1 {
		t.Fatalf("failed provider attempted %d times, want exactly 1", down.calls)
	}
}

func TestDeduplicatesAgainstPrior(t *testing.T) {
	dup := &stub{name: "dup", questions: []string{"Tell me  about YOURSELF."}}

	got := newResolver(t, dup).Next(context.Background(), req("tell me about yourself."))
	if len(got) != 1 {
		t.Fatalf("got %d questions, want 1", len(got))
	}
	if got[0].Provenance != models.ProvenanceBank {
		t.Fatalf("duplicate not replaced by bank draw: %+v", got[0])
	}
}

func TestBankFloorNeverEmpty(t *testing.T) {
	down := &stub{name: "down", err: &question.Failure{Provider: "down", Kind: question.RateLimited}}
	r := newResolver(t, down)

	// exhaust well past the bank size; repeats are acceptable, gaps are not
	for i := 0; i < 30; i++ {
		got := r.Next(context.Background(), req())
		if len(got) != 1 || got[0].Text == "" {
			t.Fatalf("draw %d returned no question", i)
		}
		if got[0].Provenance != models.ProvenanceBank {
			t.Fatalf("draw %d provenance = %q", i, got[0].Provenance)
		}
	}
}

func TestNoProvidersStillServes(t *testing.T) {
	got := newResolver(t).Next(context.Background(), req())
	if len(got) != 1 {
		t.Fatalf("got %d questions, want 1 from bank", len(got))
	}
}
