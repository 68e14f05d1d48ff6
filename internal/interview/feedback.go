package interview

import (
	"fmt"
	"strings"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
)

// scoreBand maps a score floor to its fixed feedback template. Bands are
// ordered by descending floor and resolved by a single lookup, so feedback is
// reproducible independent of any upstream model text.
type scoreBand struct {
	min     float64
	label   string
	opening string
	closing string
}

var scoreBands = []scoreBand{
	{8, "excellent", "Excellent!", "That was a well-structured response."},
	{6, "good", "Good job.", "You're on the right track."},
	{4, "okay", "Okay.", "Let's work on improving this."},
	{0, "needs work", "I see.", "We'll practice more on this area."},
}

func bandFor(score float64) scoreBand {
	for _, b := range scoreBands {
		if score >= b.min {
			return b
		}
	}
	return scoreBands[len(scoreBands)-1]
}

// feedbackFor renders the per-answer feedback from the numeric score.
func feedbackFor(score float64) string {
	b := bandFor(score)
	return b.opening + " " + b.closing
}

// overallFeedback builds the final narrative from per-response score bands.
// Deterministic template, not a second scoring pass.
func overallFeedback(role models.RoleContext, responses []models.Response) string {
	if len(responses) == 0 {
		return "No answers were recorded for this interview."
	}

	counts := map[string]int{}
	var best, worst *models.Response
	for i := range responses {
		r := &responses[i]
		counts[bandFor(r.MergedScore).label]++
		if best == nil || r.MergedScore > best.MergedScore {
			best = r
		}
		if worst == nil || r.MergedScore < worst.MergedScore {
			worst = r
		}
	}

	var b strings.Builder
	name := role.CandidateName
	if name == "" {
		name = "The candidate"
	}

	fmt.Fprintf(&b, "%s answered %d question(s).", name, len(responses))
	if n := counts["excellent"]; n > 0 {
		fmt.Fprintf(&b, " %d answer(s) were excellent.", n)
	}
	if n := counts["good"]; n > 0 {
		fmt.Fprintf(&b, " %d answer(s) were good.", n)
	}
	if n := counts["okay"]; n > 0 {
		fmt.Fprintf(&b, " %d answer(s) were okay.", n)
	}
	if n := counts["needs work"]; n > 0 {
		fmt.Fprintf(&b, " %d answer(s) need more work.", n)
	}

	if best != nil && bandFor(best.MergedScore).label != "needs work" {
		fmt.Fprintf(&b, " Strongest on question %d: %q.", best.QuestionIndex+1, best.Question)
	}
	if worst != nil && worst != best {
		fmt.Fprintf(&b, " Weakest on question %d: %q.", worst.QuestionIndex+1, worst.Question)
	}
	return b.String()
}
