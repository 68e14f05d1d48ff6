package models

import (
	"time"

	"gorm.io/datatypes"
)

// FinalReport is the immutable record emitted at finalize. The archival sink
// persists it; it is never read back into the session core.
type FinalReport struct {
	SessionID      string          `json:"interview_id"`
	CandidateName  string          `json:"candidate_name"`
	JobRole        string          `json:"job_role"`
	TargetLength   int             `json:"total_questions"`
	Responses      []Response      `json:"responses"`
	TotalScore     float64         `json:"total_score"`
	AggregateScore float64         `json:"overall_score"`
	Percentage     float64         `json:"percentage"`
	Feedback       string          `json:"overall_feedback"`
	StartTime      time.Time       `json:"start_time"`
	EndTime        time.Time       `json:"end_time"`
	Physical       PhysicalSummary `json:"physical_summary"`
}

// InterviewRecord is the archived interview row in PostgreSQL.
type InterviewRecord struct {
	ID            string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CandidateName string `gorm:"column:candidate_name;type:text" json:"candidate_name"`
	JobRole       string `gorm:"column:job_role;type:text;index" json:"job_role"`

	TotalQuestions     int     `gorm:"column:total_questions;type:integer" json:"total_questions"`
	CompletedQuestions int     `gorm:"column:completed_questions;type:integer" json:"completed_questions"`
	OverallScore       float64 `gorm:"column:overall_score;type:double precision" json:"overall_score"`
	Status             string  `gorm:"column:status;type:text" json:"status"` // completed

	Responses       datatypes.JSON `gorm:"column:responses;type:jsonb" json:"responses"`
	PhysicalSummary datatypes.JSON `gorm:"column:physical_summary;type:jsonb" json:"physical_summary"`
	OverallFeedback string         `gorm:"column:overall_feedback;type:text" json:"overall_feedback"`

	StartTime time.Time `gorm:"column:start_time;type:timestamptz" json:"start_time"`
	EndTime   time.Time `gorm:"column:end_time;type:timestamptz" json:"end_time"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (InterviewRecord) TableName() string { return "interviews" }

// InterviewStats is the admin panel aggregate view.
type InterviewStats struct {
	TotalInterviews   int            `json:"total_interviews"`
	AvgScore          float64        `json:"avg_score"`
	ScoreDistribution map[string]int `json:"score_distribution"` // "0-2".."8-10"
	RoleStats         []RoleStat     `json:"job_role_stats"`
}

// RoleStat is a per-role average for the admin panel.
type RoleStat struct {
	JobRole  string  `json:"job_role"`
	Total    int     `json:"total"`
	AvgScore float64 `json:"avg_score"`
}
