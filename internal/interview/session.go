package interview

import (
	"sync"
	"time"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
)

// State is the session lifecycle. Completed is terminal.
type State string

const (
	StateCreated    State = "created"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

// Session is one interview: a single logical actor. All mutating access goes
// through mu; genMu serializes question generation separately so provider
// round-trips never run under the session lock.
type Session struct {
	mu    sync.Mutex
	genMu sync.Mutex

	id           string
	role         models.RoleContext
	targetLength int
	state        State

	questions    []models.Question
	responses    []models.Response
	currentIndex int
	scoreSum     float64

	// bucket exists for at most one question index at a time: currentIndex.
	bucket *bucket

	startTime time.Time
	endTime   time.Time

	report *models.FinalReport // memoized by finalize
}

func newSession(id string, role models.RoleContext, targetLength int) *Session {
	return &Session{
		id:           id,
		role:         role,
		targetLength: targetLength,
		state:        StateCreated,
		startTime:    time.Now().UTC(),
	}
}

// ID returns the immutable session identifier.
func (s *Session) ID() string { return s.id }

// Role returns the read-only candidate context.
func (s *Session) Role() models.RoleContext { return s.role }

// TargetLength returns the fixed question target.
func (s *Session) TargetLength() int { return s.targetLength }

// Progress reports (currentIndex, targetLength, completed) under the lock.
func (s *Session) Progress() (int, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentIndex, s.targetLength, s.state == StateCompleted
}

// checkInvariants panics on internal corruption; the manager converts the
// panic into an aborted session rather than silently continuing.
// Invariant: len(responses) == currentIndex <= len(questions) <= targetLength,
// except len(questions) may briefly be currentIndex+1 during lazy generation.
func (s *Session) checkInvariants() {
	if len(s.responses) != s.currentIndex {
		panic("interview: responses out of step with current index")
	}
	if s.currentIndex > s.targetLength {
		panic("interview: current index exceeded target length")
	}
	if len(s.questions) > s.targetLength {
		panic("interview: question list exceeded target length")
	}
}
