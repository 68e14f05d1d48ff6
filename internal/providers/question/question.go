package question

import (
	"context"
	"errors"
	"fmt"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
)

// Request is the uniform generation request sent to every provider.
type Request struct {
	Role  models.RoleContext
	Prior []models.Question // already-issued questions, for dedup and topic spread
	// LastAnswer lets later questions adapt to what the candidate just said.
	LastAnswer string
	Count      int
}

// Provider is a single upstream question-generation service. One call is one
// bounded-timeout network round-trip; retries belong to the resolver, never
// here.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) ([]models.Question, error)
}

// FailureKind classifies an upstream failure for the resolver.
type FailureKind string

const (
	Unavailable FailureKind = "unavailable" // network error or timeout
	RateLimited FailureKind = "rate_limited"
	Malformed   FailureKind = "malformed_response"
)

// Failure is the typed error every provider returns on an unsuccessful call.
type Failure struct {
	Provider string
	Kind     FailureKind
	Err      error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("provider %s: %s: %v", f.Provider, f.Kind, f.Err)
	}
	return fmt.Sprintf("provider %s: %s", f.Provider, f.Kind)
}

func (f *Failure) Unwrap() error { return f.Err }

// AsFailure extracts the typed failure, if any.
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
