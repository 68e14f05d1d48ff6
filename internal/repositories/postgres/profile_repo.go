package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/utils"
)

type ProfileRepository interface {
	Upsert(ctx context.Context, p *models.CandidateProfile) error
	GetByName(ctx context.Context, name string) (*models.CandidateProfile, error)
}

type profileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Upsert(ctx context.Context, p *models.CandidateProfile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "candidate_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"job_role", "skills", "experience_years", "experience", "summary", "updated_at"}),
		}).
		Create(p).Error
}

func (r *profileRepo) GetByName(ctx context.Context, name string) (*models.CandidateProfile, error) {
	var p models.CandidateProfile
	err := r.db.WithContext(ctx).
		Where("candidate_name = ?", name).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &p, err
}
