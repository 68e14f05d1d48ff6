package models

// Question categories mirror the static bank schema.
const (
	CategoryTechnical   = "technical"
	CategoryBehavioral  = "behavioral"
	CategorySituational = "situational"
)

// ProvenanceBank marks questions drawn from the static bank rather than a provider.
const ProvenanceBank = "fallback-bank"

// Question is a single interview question. Immutable once issued.
type Question struct {
	Text       string `json:"question"`
	Category   string `json:"type"`       // technical|behavioral|situational
	Difficulty string `json:"difficulty"` // easy|medium|hard

	// Provenance records which provider (or the fallback bank) produced the
	// question. Observability only; never affects session logic.
	Provenance string `json:"provenance,omitempty"`
}

// RoleContext is the read-only candidate context used to bias question
// generation and answer scoring. Fixed at session start.
type RoleContext struct {
	JobRole         string   `json:"job_role"`
	CandidateName   string   `json:"candidate_name"`
	Skills          []string `json:"skills,omitempty"`
	ExperienceYears int      `json:"experience_years,omitempty"`
	Summary         string   `json:"summary,omitempty"` // resume-derived highlights
}
