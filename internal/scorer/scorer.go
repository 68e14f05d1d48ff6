package scorer

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/providers/scoring"
)

// fallbackMidpoint is the baseline score for a non-empty answer when the
// upstream evaluator is unreachable. A submission must never stall on a
// scoring failure.
const fallbackMidpoint = 5.0

// Service evaluates submitted answers. It always yields a numeric score in
// [0,10]: provider first, deterministic heuristic when the provider fails.
type Service struct {
	provider scoring.Provider // may be nil
	timeout  time.Duration
	log      *logrus.Logger
}

func New(provider scoring.Provider, timeout time.Duration, log *logrus.Logger) *Service {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if log == nil {
		log = logrus.New()
	}
	return &Service{provider: provider, timeout: timeout, log: log}
}

// Score evaluates one answer. Never returns an error: scoring failures
// degrade to the heuristic baseline.
func (s *Service) Score(ctx context.Context, role models.RoleContext, questionText, answer string) (float64, models.ScoreBreakdown) {
	breakdown := analyze(role, answer)

	if s.provider != nil && strings.TrimSpace(answer) != "" {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		score, _, err := s.provider.Score(callCtx, role, questionText, answer)
		cancel()
		if err == nil {
			return clamp(round1(score)), breakdown
		}

		entry := s.log.WithField("provider", s.provider.Name())
		if f, ok := scoring.AsFailure(err); ok {
			entry = entry.WithField("kind", string(f.Kind))
		}
		entry.WithError(err).Warn("answer scoring degraded to heuristic")
	}

	breakdown.UsedFallback = true
	return heuristicScore(answer, breakdown), breakdown
}

// heuristicScore is the deterministic local fallback: midpoint baseline for a
// non-empty answer, nudged by length and skill mentions.
func heuristicScore(answer string, b models.ScoreBreakdown) float64 {
	if strings.TrimSpace(answer) == "" {
		return 1.0
	}

	score := fallbackMidpoint
	switch {
	case b.WordCount >= 80:
		score += 1.5
	case b.WordCount >= 30:
		score += 1.0
	case b.WordCount < 10:
		score -= 1.5
	}
	score += math.Min(float64(len(b.KeywordHits))*0.5, 1.5)
	return clamp(round1(score))
}

// analyze produces the structured breakdown from the answer text alone.
func analyze(role models.RoleContext, answer string) models.ScoreBreakdown {
	words := strings.Fields(answer)
	lower := strings.ToLower(answer)

	var hits []string
	for _, skill := range role.Skills {
		if skill != "" && strings.Contains(lower, strings.ToLower(skill)) {
			hits = append(hits, skill)
		}
	}

	b := models.ScoreBreakdown{
		WordCount:   len(words),
		KeywordHits: hits,
	}

	// Relevance tracks skill mentions; depth tracks elaboration; clarity
	// penalizes one-liners and run-ons.
	b.Relevance = clamp(4 + math.Min(float64(len(hits))*1.5, 6))
	b.Depth = clamp(2 + math.Min(float64(len(words))/15.0, 8))
	switch {
	case len(words) == 0:
		b.Clarity = 0
	case len(words) < 5:
		b.Clarity = 3
	case len(words) > 300:
		b.Clarity = 5
	default:
		b.Clarity = 7
	}
	return b
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(10, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
