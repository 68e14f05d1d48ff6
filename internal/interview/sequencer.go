package interview

import (
	"context"
	"fmt"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/providers/question"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/utils"
)

// ensureQuestionAt lazily mints questions[index] if it does not exist yet:
// exactly one resolver call for exactly one question, with the most recent
// answer as generation context. Idempotent; a second call with no intervening
// submission is a no-op. Generation runs outside the session lock.
func (m *Manager) ensureQuestionAt(ctx context.Context, s *Session, index int) error {
	const op = "Sequencer.EnsureQuestionAt"

	if index >= s.targetLength {
		return nil
	}

	// genMu serializes concurrent generation for the same session so the
	// question is appended once even under racing readers.
	s.genMu.Lock()
	defer s.genMu.Unlock()

	s.mu.Lock()
	if index < len(s.questions) {
		s.mu.Unlock()
		return nil
	}
	if index > len(s.questions) {
		s.mu.Unlock()
		return utils.E(utils.CodeInternal, op,
			fmt.Sprintf("non-sequential generation requested: index %d, have %d", index, len(s.questions)), nil)
	}

	req := question.Request{
		Role:  s.role,
		Prior: append([]models.Question(nil), s.questions...),
		Count: 1,
	}
	if n := len(s.responses); n > 0 {
		req.LastAnswer = s.responses[n-1].Answer
	}
	s.mu.Unlock()

	// Provider round-trip happens with no locks held beyond genMu.
	qs := m.resolver.Next(ctx, req)
	if len(qs) == 0 {
		return utils.E(utils.CodeUnavailable, op, "no question available from providers or bank", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if index == len(s.questions) {
		s.questions = append(s.questions, qs[0])
	}
	if s.state == StateCreated {
		s.state = StateInProgress
	}
	s.checkInvariants()
	return nil
}

// peek returns questions[index], generating it just-in-time when missing.
// completed is true when index is past the fixed target.
func (m *Manager) peek(ctx context.Context, s *Session, index int) (*models.Question, bool, error) {
	if index >= s.targetLength {
		return nil, true, nil
	}
	if err := m.ensureQuestionAt(ctx, s, index); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if index >= len(s.questions) {
		return nil, false, utils.E(utils.CodeInternal, "Sequencer.Peek", "question missing after generation", nil)
	}
	q := s.questions[index]
	return &q, false, nil
}
