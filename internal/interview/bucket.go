package interview

import (
	"fmt"
	"math"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
)

// Weights blend the three physical sub-scores into the composite. They must
// sum to 1.
type Weights struct {
	Confidence float64
	Voice      float64
	Posture    float64
}

// DefaultWeights mirror the analyzer defaults: confidence counts most.
var DefaultWeights = Weights{Confidence: 0.4, Voice: 0.35, Posture: 0.25}

// bucket accumulates physical samples for exactly one question index. It is
// created lazily on the first sample and discarded when the corresponding
// response commits, so stale samples can never leak into the next question.
type bucket struct {
	questionIndex int

	confidence []float64
	voice      []float64
	posture    []float64

	personCounts []int
	phoneSeen    bool

	snap models.PhysicalSnapshot
}

func newBucket(questionIndex int) *bucket {
	return &bucket{questionIndex: questionIndex}
}

// add ingests one sample and recomputes the running means and composite, so
// clients polling mid-question always see a current value.
func (b *bucket) add(s models.PhysicalSample, w Weights, precision int) {
	if s.Confidence != nil {
		b.confidence = append(b.confidence, *s.Confidence)
	}
	if s.Posture != nil {
		b.posture = append(b.posture, *s.Posture)
	}
	if s.Voice != nil {
		b.voice = append(b.voice, *s.Voice)
	}
	if s.PersonCount != nil {
		b.personCounts = append(b.personCounts, *s.PersonCount)
	}
	if s.PhoneDetected != nil && *s.PhoneDetected {
		b.phoneSeen = true
	}

	snap := models.PhysicalSnapshot{
		Confidence:   roundTo(mean(b.confidence), precision),
		VoiceQuality: roundTo(mean(b.voice), precision),
		BodyLanguage: roundTo(mean(b.posture), precision),
		FrameCount:   max(len(b.confidence), len(b.posture)),
		AudioCount:   len(b.voice),
		PersonCount:  1,
		PhoneDetected: b.phoneSeen,
	}

	if len(b.personCounts) > 0 {
		snap.PersonCount = maxInt(b.personCounts)
	}

	snap.Overall = roundTo(
		snap.Confidence*w.Confidence+
			snap.VoiceQuality*w.Voice+
			snap.BodyLanguage*w.Posture,
		precision,
	)

	if snap.PhoneDetected {
		snap.Violations = append(snap.Violations, "Mobile phone detected")
	}
	switch {
	case len(b.personCounts) > 0 && snap.PersonCount == 0:
		snap.Violations = append(snap.Violations, "No face detected")
	case snap.PersonCount > 1:
		snap.Violations = append(snap.Violations, fmt.Sprintf("Multiple people detected (%d)", snap.PersonCount))
	}

	b.snap = snap
}

func (b *bucket) snapshot() models.PhysicalSnapshot { return b.snap }

// hasSamples reports whether at least one sub-score landed. The composite is
// merged into the answer score only in that case.
func (b *bucket) hasSamples() bool {
	return len(b.confidence) > 0 || len(b.voice) > 0 || len(b.posture) > 0
}

func mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

func maxInt(v []int) int {
	m := v[0]
	for _, x := range v[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
