package interview

import (
	"math"
	"testing"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
)

func f(v float64) *float64 { return &v }
func ip(v int) *int        { return &v }
func bp(v bool) *bool      { return &v }

func TestBucketComposite(t *testing.T) {
	b := newBucket(0)
	b.add(models.PhysicalSample{Confidence: f(8), Posture: f(5)}, DefaultWeights, 2)
	b.add(models.PhysicalSample{Voice: f(7)}, DefaultWeights, 2)

	snap := b.snapshot()
	if snap.Confidence != 8 || snap.VoiceQuality != 7 || snap.BodyLanguage != 5 {
		t.Fatalf("unexpected sub-scores: %+v", snap)
	}
	// 8*0.4 + 7*0.35 + 5*0.25
	if snap.Overall != 6.9 {
		t.Fatalf("overall = %v, want 6.9", snap.Overall)
	}
}

func TestBucketRunningMeans(t *testing.T) {
	b := newBucket(0)
	b.add(models.PhysicalSample{Confidence: f(6)}, DefaultWeights, 2)
	b.add(models.PhysicalSample{Confidence: f(8)}, DefaultWeights, 2)
	b.add(models.PhysicalSample{Confidence: f(10)}, DefaultWeights, 2)

	if got := b.snapshot().Confidence; got != 8 {
		t.Fatalf("confidence mean = %v, want 8", got)
	}
	if got := b.snapshot().FrameCount; got != 3 {
		t.Fatalf("frame count = %d, want 3", got)
	}
}

func TestBucketViolations(t *testing.T) {
	b := newBucket(0)
	b.add(models.PhysicalSample{Confidence: f(7), PersonCount: ip(2), PhoneDetected: bp(true)}, DefaultWeights, 2)

	snap := b.snapshot()
	if !snap.PhoneDetected {
		t.Fatal("phone detection not recorded")
	}
	if len(snap.Violations) != 2 {
		t.Fatalf("violations = %v, want phone + multiple people", snap.Violations)
	}
}

func TestBucketNoFaceViolation(t *testing.T) {
	b := newBucket(0)
	b.add(models.PhysicalSample{Confidence: f(3), PersonCount: ip(0)}, DefaultWeights, 2)

	snap := b.snapshot()
	if len(snap.Violations) != 1 || snap.Violations[0] != "No face detected" {
		t.Fatalf("violations = %v, want no-face only", snap.Violations)
	}
}

func TestBucketHasSamples(t *testing.T) {
	b := newBucket(0)
	if b.hasSamples() {
		t.Fatal("fresh bucket reports samples")
	}
	b.add(models.PhysicalSample{PersonCount: ip(1)}, DefaultWeights, 2)
	if b.hasSamples() {
		t.Fatal("detection-only sample must not count as a sub-score")
	}
	b.add(models.PhysicalSample{Voice: f(6)}, DefaultWeights, 2)
	if !b.hasSamples() {
		t.Fatal("voice sample not counted")
	}
}

func TestRoundTo(t *testing.T) {
	if got := roundTo(6.271, 2); math.Abs(got-6.27) > 1e-9 {
		t.Fatalf("roundTo(6.271, 2) = %v", got)
	}
	if got := roundTo(6.275, 1); math.Abs(got-6.3) > 1e-9 {
		t.Fatalf("roundTo(6.275, 1) = %v", got)
	}
}
