package archive

import (
	"context"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/repositories/postgres"
)

type dbSink struct {
	repo postgres.InterviewRepository
}

// NewPostgres archives reports as rows in the interviews table.
func NewPostgres(repo postgres.InterviewRepository) Sink {
	return &dbSink{repo: repo}
}

func (s *dbSink) Save(ctx context.Context, rep *models.FinalReport) error {
	rec, err := postgres.FromReport(rep)
	if err != nil {
		return err
	}
	return s.repo.Insert(ctx, rec)
}
