package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PhysicalSample is one already-scored observation tagged to a question.
// Frame-derived samples carry Confidence/Posture; audio-derived ones carry
// Voice. All sub-scores are on the 0-10 scale.
type PhysicalSample struct {
	QuestionIndex int      `json:"question_index"`
	Confidence    *float64 `json:"confidence,omitempty"`
	Posture       *float64 `json:"posture,omitempty"`
	Voice         *float64 `json:"voice,omitempty"`

	PersonCount   *int  `json:"person_count,omitempty"`
	PhoneDetected *bool `json:"phone_detected,omitempty"`
}

// PhysicalSnapshot is the running (or committed) state of one question's
// sample bucket: arithmetic means plus the weighted composite.
type PhysicalSnapshot struct {
	Confidence    float64  `json:"confidence"`
	VoiceQuality  float64  `json:"voice_quality"`
	BodyLanguage  float64  `json:"body_language"`
	Overall       float64  `json:"overall_physical_score"`
	FrameCount    int      `json:"frame_count"`
	AudioCount    int      `json:"audio_segment_count"`
	PersonCount   int      `json:"person_count"`
	PhoneDetected bool     `json:"phone_detected"`
	Violations    []string `json:"violations,omitempty"`
}

// PhysicalSummary aggregates committed snapshots across the whole interview
// for the final report.
type PhysicalSummary struct {
	AvgConfidence    float64  `json:"avg_confidence"`
	AvgVoice         float64  `json:"avg_voice"`
	AvgPosture       float64  `json:"avg_posture"`
	ViolationsCount  int      `json:"violations_count"`
	UniqueViolations []string `json:"unique_violations,omitempty"`
}

// SampleRecord is the write-only audit row kept in MongoDB for each ingested
// raw chunk. Expired by TTL index; never read back into the core.
type SampleRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID     string             `bson:"session_id" json:"session_id"`
	QuestionIndex int                `bson:"question_index" json:"question_index"`
	Kind          string             `bson:"kind" json:"kind"` // frame|audio
	Confidence    float64            `bson:"confidence,omitempty" json:"confidence,omitempty"`
	Posture       float64            `bson:"posture,omitempty" json:"posture,omitempty"`
	Voice         float64            `bson:"voice,omitempty" json:"voice,omitempty"`
	Accepted      bool               `bson:"accepted" json:"accepted"` // false when rejected as stale
	Timestamp     time.Time          `bson:"timestamp" json:"timestamp"`
	ExpiresAt     time.Time          `bson:"expires_at" json:"expires_at"` // for TTL index
}
