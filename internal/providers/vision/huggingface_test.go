package vision

import (
	"math"
	"testing"
)

func TestBlendScores(t *testing.T) {
	cls := []classification{
		{Label: "happy", Score: 0.8},
		{Label: "sad", Score: 0.2},
	}
	// (8.5*0.8 + 3.5*0.2) / 1.0
	if got := blendScores(cls, emotionScores); math.Abs(got-7.5) > 1e-9 {
		t.Fatalf("blend = %v, want 7.5", got)
	}
}

func TestBlendScoresUnknownLabels(t *testing.T) {
	cls := []classification{{Label: "mystery", Score: 0.9}}
	if got := blendScores(cls, emotionScores); got != 5.0 {
		t.Fatalf("blend = %v, want neutral 5.0", got)
	}
}

func TestPostureScoreNoPerson(t *testing.T) {
	if got := postureScore(nil); got != 2.0 {
		t.Fatalf("posture = %v, want 2.0 with nobody in frame", got)
	}
}

func TestPostureScoreUpright(t *testing.T) {
	var d detection
	d.Label = "person"
	d.Score = 0.9
	d.Box.XMin, d.Box.YMin, d.Box.XMax, d.Box.YMax = 100, 10, 300, 480

	got := postureScore([]detection{d})
	if got < 8.5 || got > 10 {
		t.Fatalf("posture = %v, want upright bonus range", got)
	}
}
