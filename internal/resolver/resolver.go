package resolver

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/providers/question"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/questionbank"
)

// Resolver walks an ordered provider chain, one bounded attempt per
// provider, and falls back to the static bank so question generation never
// blocks an interview. Upstream APIs are rate-limited and slow, so there is
// deliberately no same-provider retry.
type Resolver struct {
	providers []question.Provider
	bank      *questionbank.Bank
	timeout   time.Duration
	log       *logrus.Logger
}

func New(providers []question.Provider, bank *questionbank.Bank, timeout time.Duration, log *logrus.Logger) *Resolver {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if log == nil {
		log = logrus.New()
	}
	return &Resolver{providers: providers, bank: bank, timeout: timeout, log: log}
}

// Next returns exactly req.Count questions. Provider results are deduplicated
// against req.Prior by normalized text; shortfalls are filled from the next
// provider and finally from the bank (repeating entries when the bank is
// smaller than the shortfall).
func (r *Resolver) Next(ctx context.Context, req question.Request) []models.Question {
	if req.Count <= 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(req.Prior)+req.Count)
	for _, q := range req.Prior {
		seen[normalize(q.Text)] = struct{}{}
	}

	out := make([]models.Question, 0, req.Count)
	for _, p := range r.providers {
		if len(out) == req.Count {
			break
		}

		attempt := req
		attempt.Count = req.Count - len(out)

		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		qs, err := p.Generate(callCtx, attempt)
		cancel()

		if err != nil {
			entry := r.log.WithField("provider", p.Name())
			if f, ok := question.AsFailure(err); ok {
				entry = entry.WithField("kind", string(f.Kind))
			}
			entry.WithError(err).Warn("question provider failed, trying next")
			continue
		}

		for _, q := range qs {
			key := normalize(q.Text)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, q)
			if len(out) == req.Count {
				break
			}
		}
	}

	if len(out) < req.Count {
		out = append(out, r.fromBank(req.Role.JobRole, req.Count-len(out), seen)...)
	}
	return out
}

// fromBank fills a shortfall from the static bank. Unique entries first;
// repeats are allowed when the bank cannot cover the request, because an
// empty result would stall the interview.
func (r *Resolver) fromBank(role string, count int, seen map[string]struct{}) []models.Question {
	out := make([]models.Question, 0, count)

	unique := len(r.bank.Questions(role)) // upper bound on dedup attempts
	for tries := 0; len(out) < count && tries < unique; {
		batch := r.bank.Draw(role, count-len(out))
		for _, q := range batch {
			tries++
			key := normalize(q.Text)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, q)
			if len(out) == count {
				break
			}
		}
	}

	if len(out) < count {
		out = append(out, r.bank.Draw(role, count-len(out))...)
	}
	return out
}

func normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
