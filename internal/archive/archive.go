// Package archive persists finalized interview reports. Sinks are write-once
// and best-effort: a failed write is logged by the caller and never fails the
// interview itself.
package archive

import (
	"context"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
)

type Sink interface {
	Save(ctx context.Context, rep *models.FinalReport) error
}

// Multi fans a report out to every sink, returning the first error after all
// sinks were attempted.
type Multi []Sink

func (m Multi) Save(ctx context.Context, rep *models.FinalReport) error {
	var first error
	for _, s := range m {
		if err := s.Save(ctx, rep); err != nil && first == nil {
			first = err
		}
	}
	return first
}
