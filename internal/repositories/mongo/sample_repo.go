package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
)

type SampleRepository interface {
	Insert(ctx context.Context, rec *models.SampleRecord) error
	ListBySession(ctx context.Context, sessionID string, limit int64) ([]models.SampleRecord, error)
}

type sampleRepo struct {
	col *mongo.Collection
	ttl time.Duration
}

// NewSampleRepo writes the raw-sample audit trail. Rows expire via the TTL
// index on expires_at; nothing in the interview core reads them back.
func NewSampleRepo(db *mongo.Database, ttl time.Duration) SampleRepository {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &sampleRepo{col: db.Collection("physical_buffer"), ttl: ttl}
}

func (r *sampleRepo) Insert(ctx context.Context, rec *models.SampleRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	if rec.ExpiresAt.IsZero() {
		rec.ExpiresAt = rec.Timestamp.Add(r.ttl)
	}
	_, err := r.col.InsertOne(ctx, rec)
	return err
}

func (r *sampleRepo) ListBySession(ctx context.Context, sessionID string, limit int64) ([]models.SampleRecord, error) {
	if limit <= 0 {
		limit = 500
	}

	cur, err := r.col.Find(ctx,
		bson.M{"session_id": sessionID},
		options.Find().
			SetSort(bson.D{{Key: "timestamp", Value: 1}}).
			SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.SampleRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
