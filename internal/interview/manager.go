package interview

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rishi6824/AIinterview-and-resume-analyser/config"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/archive"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/resolver"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/scorer"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/utils"
)

// Manager owns the arena of active sessions. Sessions share nothing with each
// other; operations on different sessions run fully in parallel.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	resolver *resolver.Resolver
	scorer   *scorer.Service
	sink     archive.Sink // may be nil
	cfg      config.InterviewConfig
	weights  Weights
	log      *logrus.Logger
}

func NewManager(r *resolver.Resolver, sc *scorer.Service, sink archive.Sink, cfg config.InterviewConfig, log *logrus.Logger) *Manager {
	if log == nil {
		log = logrus.New()
	}
	return &Manager{
		sessions: map[string]*Session{},
		resolver: r,
		scorer:   sc,
		sink:     sink,
		cfg:      cfg,
		weights: Weights{
			Confidence: cfg.ConfidenceWeight,
			Voice:      cfg.VoiceWeight,
			Posture:    cfg.BodyLanguageWeight,
		},
		log: log,
	}
}

// Start creates a session with a fixed target length clamped into the
// configured band. requestedLength 0 takes the default.
func (m *Manager) Start(role models.RoleContext, requestedLength int) *Session {
	target := requestedLength
	if target == 0 {
		target = m.cfg.DefaultQuestions
	}
	if target < m.cfg.MinQuestions {
		target = m.cfg.MinQuestions
	}
	if target > m.cfg.MaxQuestions {
		target = m.cfg.MaxQuestions
	}

	s := newSession(uuid.NewString(), role, target)

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	m.log.WithFields(logrus.Fields{
		"session_id": s.id,
		"job_role":   role.JobRole,
		"target":     target,
	}).Info("interview session started")
	return s
}

// Get returns the active session or a NoActiveSession error.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, utils.E(utils.CodeNotFound, "InterviewManager.Get", "no active interview", nil)
	}
	return s, nil
}

// CurrentQuestion returns the question at the session's current index,
// generating it just-in-time. completed is true once the target is reached.
func (m *Manager) CurrentQuestion(ctx context.Context, id string) (q *models.Question, completed bool, err error) {
	s, err := m.Get(id)
	if err != nil {
		return nil, false, err
	}
	defer m.guard(s, "InterviewManager.CurrentQuestion", &err)

	idx, _, done := s.Progress()
	if done {
		return nil, true, nil
	}
	return m.peek(ctx, s, idx)
}

// SubmitAnswer scores the answer, merges the physical snapshot for the
// current question (snapshot-then-clear, atomically under the session lock),
// commits the response, and advances the index. If the session is not yet
// complete the next question is eagerly pre-generated so the following read
// has zero added latency.
func (m *Manager) SubmitAnswer(ctx context.Context, id, answer string) (res *models.ScoreResult, err error) {
	const op = "InterviewManager.SubmitAnswer"

	s, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	defer m.guard(s, op, &err)

	s.mu.Lock()
	if s.state == StateCompleted {
		s.mu.Unlock()
		return nil, utils.E(utils.CodeConflict, op, "interview already completed", nil)
	}
	idx := s.currentIndex
	haveQuestion := idx < len(s.questions)
	role := s.role
	var questionText string
	if haveQuestion {
		questionText = s.questions[idx].Text
	}
	s.mu.Unlock()

	// The current question normally exists (CurrentQuestion minted it), but a
	// direct submit may arrive first.
	if !haveQuestion {
		if err := m.ensureQuestionAt(ctx, s, idx); err != nil {
			return nil, err
		}
		s.mu.Lock()
		questionText = s.questions[idx].Text
		s.mu.Unlock()
	}

	// Scoring is blocking I/O; never run it under the session lock.
	base, breakdown := m.scorer.Score(ctx, role, questionText, answer)

	s.mu.Lock()
	if s.state == StateCompleted || s.currentIndex != idx {
		s.mu.Unlock()
		return nil, utils.E(utils.CodeConflict, op, "interview advanced concurrently", nil)
	}

	merged := base
	var physScore *float64
	var physSnap *models.PhysicalSnapshot
	if s.bucket != nil && s.bucket.questionIndex == idx && s.bucket.hasSamples() {
		snap := s.bucket.snapshot()
		physSnap = &snap
		physScore = &snap.Overall
		merged = roundTo(base*m.cfg.AnswerWeight+snap.Overall*m.cfg.PhysicalWeight, m.cfg.ScorePrecision)
	}
	// Discard the bucket regardless: stale samples must not leak forward.
	s.bucket = nil

	resp := models.Response{
		QuestionIndex: idx,
		Question:      questionText,
		Answer:        answer,
		BaseScore:     base,
		PhysicalScore: physScore,
		MergedScore:   merged,
		Feedback:      feedbackFor(merged),
		Breakdown:     breakdown,
		Physical:      physSnap,
	}

	s.responses = append(s.responses, resp)
	s.scoreSum += merged
	s.currentIndex++

	completed := s.currentIndex == s.targetLength
	if completed {
		s.state = StateCompleted
		s.endTime = time.Now().UTC()
	} else {
		s.state = StateInProgress
	}
	s.checkInvariants()
	next := s.currentIndex
	s.mu.Unlock()

	if !completed {
		// Eager pre-generation; a failure here only costs latency on the next
		// read, which regenerates.
		if genErr := m.ensureQuestionAt(ctx, s, next); genErr != nil {
			m.log.WithField("session_id", s.id).WithError(genErr).Warn("eager question pre-generation failed")
		}
	}

	return &models.ScoreResult{
		NextQuestion: next,
		Score:        merged,
		Feedback:     resp.Feedback,
		Breakdown:    breakdown,
		Completed:    completed,
	}, nil
}

// PushSample ingests one physical sample tagged to a question index. Samples
// for anything other than the live current question are rejected, never
// merged into a newer bucket.
func (m *Manager) PushSample(id string, sample models.PhysicalSample) (snap models.PhysicalSnapshot, accepted bool, err error) {
	const op = "InterviewManager.PushSample"

	s, err := m.Get(id)
	if err != nil {
		return models.PhysicalSnapshot{}, false, err
	}
	defer m.guard(s, op, &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateCompleted || sample.QuestionIndex != s.currentIndex {
		return models.PhysicalSnapshot{}, false, nil
	}

	if s.bucket == nil {
		s.bucket = newBucket(s.currentIndex)
	}
	if s.state == StateCreated {
		s.state = StateInProgress
	}
	s.bucket.add(sample, m.weights, m.cfg.ScorePrecision)
	return s.bucket.snapshot(), true, nil
}

// Snapshot returns the running physical state for the current question, for
// mid-question polling. ok is false when no bucket exists yet.
func (m *Manager) Snapshot(id string) (models.PhysicalSnapshot, bool, error) {
	s, err := m.Get(id)
	if err != nil {
		return models.PhysicalSnapshot{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bucket == nil {
		return models.PhysicalSnapshot{}, false, nil
	}
	return s.bucket.snapshot(), true, nil
}

// Finalize builds the final report. Computable only once the session is
// complete; the report is memoized and the archival write happens once,
// outside the session lock. Archive failures are logged, never surfaced: the
// in-memory report is still returned.
func (m *Manager) Finalize(ctx context.Context, id string) (rep *models.FinalReport, err error) {
	const op = "InterviewManager.Finalize"

	s, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	defer m.guard(s, op, &err)

	s.mu.Lock()
	if s.state != StateCompleted {
		s.mu.Unlock()
		return nil, utils.E(utils.CodeConflict, op, "interview is not completed yet", nil)
	}

	firstFinalize := s.report == nil
	if firstFinalize {
		s.report = m.buildReport(s)
	}
	report := *s.report
	s.mu.Unlock()

	if firstFinalize && m.sink != nil {
		if saveErr := m.sink.Save(ctx, &report); saveErr != nil {
			m.log.WithField("session_id", s.id).WithError(saveErr).Warn("archival write failed; report still served")
		}
	}
	return &report, nil
}

// Terminate drops a session (client abandoned it or a proctoring violation
// cancelled it). No background work continues: generation is at most one
// question ahead by construction.
func (m *Manager) Terminate(id string) {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		m.log.WithField("session_id", id).Info("interview session terminated")
	}
}

// buildReport must be called with s.mu held and the session completed.
func (m *Manager) buildReport(s *Session) *models.FinalReport {
	total := roundTo(s.scoreSum, m.cfg.ScorePrecision)
	n := len(s.responses)

	aggregate := 0.0
	if n > 0 {
		aggregate = roundTo(s.scoreSum/float64(n), m.cfg.ScorePrecision)
	}

	return &models.FinalReport{
		SessionID:      s.id,
		CandidateName:  s.role.CandidateName,
		JobRole:        s.role.JobRole,
		TargetLength:   s.targetLength,
		Responses:      append([]models.Response(nil), s.responses...),
		TotalScore:     total,
		AggregateScore: aggregate,
		Percentage:     roundTo(aggregate*10, m.cfg.ScorePrecision),
		Feedback:       overallFeedback(s.role, s.responses),
		StartTime:      s.startTime,
		EndTime:        s.endTime,
		Physical:       summarizePhysical(s.responses, m.cfg.ScorePrecision),
	}
}

// summarizePhysical averages committed per-question snapshots for the final
// report.
func summarizePhysical(responses []models.Response, precision int) models.PhysicalSummary {
	var sum models.PhysicalSummary
	var confSum, voiceSum, postureSum float64
	var count int
	seen := map[string]struct{}{}

	for _, r := range responses {
		if r.Physical == nil {
			continue
		}
		count++
		confSum += r.Physical.Confidence
		voiceSum += r.Physical.VoiceQuality
		postureSum += r.Physical.BodyLanguage
		for _, v := range r.Physical.Violations {
			sum.ViolationsCount++
			if _, dup := seen[v]; !dup {
				seen[v] = struct{}{}
				sum.UniqueViolations = append(sum.UniqueViolations, v)
			}
		}
	}

	if count > 0 {
		sum.AvgConfidence = roundTo(confSum/float64(count), precision)
		sum.AvgVoice = roundTo(voiceSum/float64(count), precision)
		sum.AvgPosture = roundTo(postureSum/float64(count), precision)
	}
	return sum
}

// guard converts an invariant panic into a diagnosable internal error and
// aborts the corrupted session rather than letting it continue.
func (m *Manager) guard(s *Session, op string, err *error) {
	if r := recover(); r != nil {
		m.mu.Lock()
		delete(m.sessions, s.id)
		m.mu.Unlock()
		m.log.WithField("session_id", s.id).Errorf("session aborted: %v", r)
		*err = utils.E(utils.CodeInternal, op, fmt.Sprintf("session aborted: %v", r), nil)
	}
}
