// Package vision scores raw proctoring media. Frames yield confidence and
// posture sub-scores plus person/phone detections; audio segments yield a
// voice quality sub-score. All scores are on the 0-10 scale.
package vision

import "context"

type FrameResult struct {
	Confidence    float64 `json:"confidence"`
	Posture       float64 `json:"posture"`
	PersonCount   int     `json:"person_count"`
	PhoneDetected bool    `json:"phone_detected"`
}

type AudioResult struct {
	Voice float64 `json:"voice"`
}

type Analyzer interface {
	AnalyzeFrame(ctx context.Context, image []byte) (FrameResult, error)
	AnalyzeAudio(ctx context.Context, audio []byte) (AudioResult, error)
}
