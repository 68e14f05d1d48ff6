package models

// ScoreBreakdown is the per-answer structured evaluation detail.
type ScoreBreakdown struct {
	Relevance    float64  `json:"relevance"`    // 0-10
	Depth        float64  `json:"depth"`        // 0-10
	Clarity      float64  `json:"clarity"`      // 0-10
	KeywordHits  []string `json:"keyword_hits,omitempty"`
	WordCount    int      `json:"word_count"`
	UsedFallback bool     `json:"used_fallback"` // heuristic baseline, no provider
}

// Response is one completed answer-submission cycle. Created exactly once per
// question and never mutated afterwards.
type Response struct {
	QuestionIndex int            `json:"question_index"`
	Question      string         `json:"question"`
	Answer        string         `json:"answer"`
	BaseScore     float64        `json:"base_score"`
	PhysicalScore *float64       `json:"physical_score,omitempty"` // nil when no samples existed at commit
	MergedScore   float64        `json:"score"`
	Feedback      string         `json:"feedback"`
	Breakdown     ScoreBreakdown `json:"detailed_analysis"`

	Physical *PhysicalSnapshot `json:"physical_analysis,omitempty"`
}

// ScoreResult is what a submission returns to the caller.
type ScoreResult struct {
	NextQuestion int            `json:"next_question"`
	Score        float64        `json:"score"`
	Feedback     string         `json:"feedback"`
	Breakdown    ScoreBreakdown `json:"detailed_analysis"`
	Completed    bool           `json:"completed"`
}
