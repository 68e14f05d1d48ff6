package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/utils"
)

type InterviewRepository interface {
	Insert(ctx context.Context, rec *models.InterviewRecord) error
	GetByID(ctx context.Context, id string) (*models.InterviewRecord, error)
	List(ctx context.Context, limit, offset int) ([]models.InterviewRecord, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*models.InterviewStats, error)
}

type interviewRepo struct {
	db *gorm.DB
}

func NewInterviewRepo(db *gorm.DB) InterviewRepository {
	return &interviewRepo{db: db}
}

// FromReport maps a final report onto the archival row.
func FromReport(rep *models.FinalReport) (*models.InterviewRecord, error) {
	responses, err := json.Marshal(rep.Responses)
	if err != nil {
		return nil, err
	}
	physical, err := json.Marshal(rep.Physical)
	if err != nil {
		return nil, err
	}
	return &models.InterviewRecord{
		ID:                 rep.SessionID,
		CandidateName:      rep.CandidateName,
		JobRole:            rep.JobRole,
		TotalQuestions:     rep.TargetLength,
		CompletedQuestions: len(rep.Responses),
		OverallScore:       rep.AggregateScore,
		Status:             "completed",
		Responses:          responses,
		PhysicalSummary:    physical,
		OverallFeedback:    rep.Feedback,
		StartTime:          rep.StartTime,
		EndTime:            rep.EndTime,
		CreatedAt:          time.Now().UTC(),
	}, nil
}

func (r *interviewRepo) Insert(ctx context.Context, rec *models.InterviewRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *interviewRepo) GetByID(ctx context.Context, id string) (*models.InterviewRecord, error) {
	var row models.InterviewRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *interviewRepo) List(ctx context.Context, limit, offset int) ([]models.InterviewRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var rows []models.InterviewRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *interviewRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.InterviewRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *interviewRepo) Stats(ctx context.Context) (*models.InterviewStats, error) {
	stats := &models.InterviewStats{
		ScoreDistribution: map[string]int{"0-2": 0, "2-4": 0, "4-6": 0, "6-8": 0, "8-10": 0},
	}

	var totals struct {
		Total int
		Avg   float64
	}
	err := r.db.WithContext(ctx).
		Model(&models.InterviewRecord{}).
		Select("COUNT(*) AS total, COALESCE(AVG(overall_score), 0) AS avg").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	stats.TotalInterviews = totals.Total
	stats.AvgScore = totals.Avg

	var scores []float64
	if err := r.db.WithContext(ctx).
		Model(&models.InterviewRecord{}).
		Pluck("overall_score", &scores).Error; err != nil {
		return nil, err
	}
	for _, s := range scores {
		switch {
		case s < 2:
			stats.ScoreDistribution["0-2"]++
		case s < 4:
			stats.ScoreDistribution["2-4"]++
		case s < 6:
			stats.ScoreDistribution["4-6"]++
		case s < 8:
			stats.ScoreDistribution["6-8"]++
		default:
			stats.ScoreDistribution["8-10"]++
		}
	}

	err = r.db.WithContext(ctx).
		Model(&models.InterviewRecord{}).
		Select("job_role, COUNT(*) AS total, AVG(overall_score) AS avg_score").
		Group("job_role").
		Order("total DESC").
		Scan(&stats.RoleStats).Error
	return stats, err
}
