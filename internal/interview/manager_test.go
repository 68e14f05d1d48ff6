package interview

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rishi6824/AIinterview-and-resume-analyser/config"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/providers/question"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/questionbank"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/resolver"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/scorer"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/utils"
)

type seqProvider struct {
	mu    sync.Mutex
	calls int
	fail  bool
}

func (p *seqProvider) Name() string { return "stub" }

func (p *seqProvider) Generate(_ context.Context, req question.Request) ([]models.Question, error) {
	p.mu.Lock()
	p.calls++
	n := p.calls
	p.mu.Unlock()

	if p.fail {
		return nil, &question.Failure{Provider: "stub", Kind: question.Unavailable}
	}

	out := make([]models.Question, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		out = append(out, models.Question{
			Text:       "stub question " + string(rune('a'+n)) + "-" + string(rune('0'+i)),
			Category:   models.CategoryTechnical,
			Difficulty: "medium",
			Provenance: "stub",
		})
	}
	return out, nil
}

type seqScorer struct {
	mu     sync.Mutex
	scores []float64
	next   int
}

func (s *seqScorer) Name() string { return "stub-scorer" }

func (s *seqScorer) Score(context.Context, models.RoleContext, string, string) (float64, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.scores[s.next%len(s.scores)]
	s.next++
	return v, "stub remark", nil
}

type memSink struct {
	mu    sync.Mutex
	saved []*models.FinalReport
	fail  bool
}

func (m *memSink) Save(_ context.Context, rep *models.FinalReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return io.ErrClosedPipe
	}
	m.saved = append(m.saved, rep)
	return nil
}

func testConfig() config.InterviewConfig {
	return config.InterviewConfig{
		MinQuestions:       1,
		MaxQuestions:       5,
		DefaultQuestions:   3,
		ConfidenceWeight:   0.4,
		VoiceWeight:        0.35,
		BodyLanguageWeight: 0.25,
		AnswerWeight:       0.7,
		PhysicalWeight:     0.3,
		ProviderTimeout:    time.Second,
		ScorePrecision:     2,
	}
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestManager(t *testing.T, qp question.Provider, scores []float64, sink *memSink) *Manager {
	t.Helper()

	log := quietLogger()
	bank, _ := questionbank.Load("no-such-file.json")

	var providers []question.Provider
	if qp != nil {
		providers = append(providers, qp)
	}
	res := resolver.New(providers, bank, time.Second, log)

	var sc *scorer.Service
	if scores != nil {
		sc = scorer.New(&seqScorer{scores: scores}, time.Second, log)
	} else {
		sc = scorer.New(nil, time.Second, log)
	}

	if sink != nil {
		return NewManager(res, sc, sink, testConfig(), log)
	}
	return NewManager(res, sc, nil, testConfig(), log)
}

func TestStartClampsTarget(t *testing.T) {
	m := newTestManager(t, &seqProvider{}, nil, nil)

	if got := m.Start(models.RoleContext{JobRole: "software_engineer"}, 0).TargetLength(); got != 3 {
		t.Fatalf("default target = %d, want 3", got)
	}
	if got := m.Start(models.RoleContext{JobRole: "software_engineer"}, 99).TargetLength(); got != 5 {
		t.Fatalf("clamped target = %d, want 5", got)
	}
}

func TestLazyGenerationIdempotent(t *testing.T) {
	qp := &seqProvider{}
	m := newTestManager(t, qp, nil, nil)
	s := m.Start(models.RoleContext{JobRole: "software_engineer"}, 3)

	q1, completed, err := m.CurrentQuestion(context.Background(), s.ID())
	if err != nil || completed {
		t.Fatalf("first read: q=%v completed=%v err=%v", q1, completed, err)
	}
	q2, _, err := m.CurrentQuestion(context.Background(), s.ID())
	if err != nil {
		t.Fatal(err)
	}

	if q1.Text != q2.Text {
		t.Fatalf("repeated reads returned different questions: %q vs %q", q1.Text, q2.Text)
	}
	if qp.calls != 1 {
		t.Fatalf("provider called %d times, want 1", qp.calls)
	}
}

func TestFallbackToBankWhenProvidersDown(t *testing.T) {
	m := newTestManager(t, &seqProvider{fail: true}, nil, nil)
	s := m.Start(models.RoleContext{JobRole: "software_engineer"}, 3)

	q, completed, err := m.CurrentQuestion(context.Background(), s.ID())
	if err != nil || completed || q == nil {
		t.Fatalf("q=%v completed=%v err=%v", q, completed, err)
	}
	if q.Provenance != models.ProvenanceBank {
		t.Fatalf("provenance = %q, want bank fallback", q.Provenance)
	}
}

func TestUnknownSession(t *testing.T) {
	m := newTestManager(t, &seqProvider{}, nil, nil)

	_, _, err := m.CurrentQuestion(context.Background(), "nope")
	if !utils.IsCode(err, utils.CodeNotFound) {
		t.Fatalf("err = %v, want not-found", err)
	}
}

func TestStaleSampleRejected(t *testing.T) {
	m := newTestManager(t, &seqProvider{}, []float64{7}, nil)
	s := m.Start(models.RoleContext{JobRole: "software_engineer"}, 3)

	if _, _, err := m.CurrentQuestion(context.Background(), s.ID()); err != nil {
		t.Fatal(err)
	}
	if _, err := m.SubmitAnswer(context.Background(), s.ID(), "an answer with enough words to score"); err != nil {
		t.Fatal(err)
	}

	// index 0 already committed; its samples must not leak into question 1
	_, accepted, err := m.PushSample(s.ID(), models.PhysicalSample{QuestionIndex: 0, Confidence: f(9)})
	if err != nil {
		t.Fatal(err)
	}
	if accepted {
		t.Fatal("stale sample was accepted")
	}

	_, accepted, err = m.PushSample(s.ID(), models.PhysicalSample{QuestionIndex: 1, Confidence: f(9)})
	if err != nil || !accepted {
		t.Fatalf("live sample rejected: accepted=%v err=%v", accepted, err)
	}
}

func TestMergedScoreBlending(t *testing.T) {
	m := newTestManager(t, &seqProvider{}, []float64{6.0}, nil)
	s := m.Start(models.RoleContext{JobRole: "software_engineer"}, 3)

	if _, _, err := m.CurrentQuestion(context.Background(), s.ID()); err != nil {
		t.Fatal(err)
	}

	for _, sample := range []models.PhysicalSample{
		{QuestionIndex: 0, Confidence: f(8), Posture: f(5)},
		{QuestionIndex: 0, Voice: f(7)},
	} {
		if _, accepted, err := m.PushSample(s.ID(), sample); err != nil || !accepted {
			t.Fatalf("sample rejected: accepted=%v err=%v", accepted, err)
		}
	}

	res, err := m.SubmitAnswer(context.Background(), s.ID(), "a reasonably detailed answer about the topic")
	if err != nil {
		t.Fatal(err)
	}
	// 6.0*0.7 + 6.9*0.3
	if res.Score != 6.27 {
		t.Fatalf("merged score = %v, want 6.27", res.Score)
	}
}

func TestMergedEqualsBaseWithoutSamples(t *testing.T) {
	m := newTestManager(t, &seqProvider{}, []float64{6.0}, nil)
	s := m.Start(models.RoleContext{JobRole: "software_engineer"}, 3)

	res, err := m.SubmitAnswer(context.Background(), s.ID(), "an answer")
	if err != nil {
		t.Fatal(err)
	}
	if res.Score != 6.0 {
		t.Fatalf("score = %v, want base 6.0", res.Score)
	}
}

func TestScenarioAggregate(t *testing.T) {
	sink := &memSink{}
	m := newTestManager(t, &seqProvider{}, []float64{7, 5, 9}, sink)
	s := m.Start(models.RoleContext{JobRole: "software_engineer", CandidateName: "Sam"}, 3)

	ctx := context.Background()
	answers := []string{"first answer", "second answer", "third answer"}
	var last *models.ScoreResult
	for i, a := range answers {
		if _, completed, err := m.CurrentQuestion(ctx, s.ID()); err != nil || completed {
			t.Fatalf("question %d: completed=%v err=%v", i, completed, err)
		}
		res, err := m.SubmitAnswer(ctx, s.ID(), a)
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		last = res
	}

	if !last.Completed {
		t.Fatal("final submission did not complete the interview")
	}
	if _, completed, err := m.CurrentQuestion(ctx, s.ID()); err != nil || !completed {
		t.Fatalf("post-completion read: completed=%v err=%v", completed, err)
	}

	rep, err := m.Finalize(ctx, s.ID())
	if err != nil {
		t.Fatal(err)
	}
	if rep.AggregateScore != 7.0 {
		t.Fatalf("aggregate = %v, want 7.0", rep.AggregateScore)
	}
	if rep.TotalScore != 21.0 {
		t.Fatalf("total = %v, want 21.0", rep.TotalScore)
	}
	if rep.Feedback == "" {
		t.Fatal("missing overall feedback")
	}

	// memoized: second finalize serves the same report, archives once
	rep2, err := m.Finalize(ctx, s.ID())
	if err != nil {
		t.Fatal(err)
	}
	if rep2.AggregateScore != rep.AggregateScore || len(sink.saved) != 1 {
		t.Fatalf("finalize not memoized: saves=%d", len(sink.saved))
	}
}

func TestSubmitAfterCompletion(t *testing.T) {
	m := newTestManager(t, &seqProvider{}, []float64{7}, nil)
	s := m.Start(models.RoleContext{JobRole: "software_engineer"}, 1)

	if _, err := m.SubmitAnswer(context.Background(), s.ID(), "only answer"); err != nil {
		t.Fatal(err)
	}
	_, err := m.SubmitAnswer(context.Background(), s.ID(), "extra answer")
	if !utils.IsCode(err, utils.CodeConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestFinalizeBeforeCompletion(t *testing.T) {
	m := newTestManager(t, &seqProvider{}, []float64{7}, nil)
	s := m.Start(models.RoleContext{JobRole: "software_engineer"}, 3)

	_, err := m.Finalize(context.Background(), s.ID())
	if !utils.IsCode(err, utils.CodeConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestArchiveFailureNonFatal(t *testing.T) {
	sink := &memSink{fail: true}
	m := newTestManager(t, &seqProvider{}, []float64{8}, sink)
	s := m.Start(models.RoleContext{JobRole: "software_engineer"}, 1)

	if _, err := m.SubmitAnswer(context.Background(), s.ID(), "the answer"); err != nil {
		t.Fatal(err)
	}
	rep, err := m.Finalize(context.Background(), s.ID())
	if err != nil || rep == nil {
		t.Fatalf("report withheld on archive failure: rep=%v err=%v", rep, err)
	}
}

func TestTerminate(t *testing.T) {
	m := newTestManager(t, &seqProvider{}, nil, nil)
	s := m.Start(models.RoleContext{JobRole: "software_engineer"}, 3)

	m.Terminate(s.ID())
	if _, err := m.Get(s.ID()); !utils.IsCode(err, utils.CodeNotFound) {
		t.Fatalf("err = %v, want not-found after terminate", err)
	}
}
