package scoring

import (
	"context"
	"errors"
	"fmt"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
)

// Provider is an upstream answer-evaluation service. It returns a score on
// the 0-10 scale plus a short free-text remark. Callers must treat any error
// as recoverable and degrade to a local heuristic.
type Provider interface {
	Name() string
	Score(ctx context.Context, role models.RoleContext, questionText, answer string) (score float64, remark string, err error)
}

// FailureKind mirrors the question-provider taxonomy.
type FailureKind string

const (
	Unavailable FailureKind = "unavailable"
	RateLimited FailureKind = "rate_limited"
	Malformed   FailureKind = "malformed_response"
)

type Failure struct {
	Provider string
	Kind     FailureKind
	Err      error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("scoring provider %s: %s: %v", f.Provider, f.Kind, f.Err)
	}
	return fmt.Sprintf("scoring provider %s: %s", f.Provider, f.Kind)
}

func (f *Failure) Unwrap() error { return f.Err }

func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

func failf(provider string, kind FailureKind, err error) error {
	return &Failure{Provider: provider, Kind: kind, Err: err}
}
