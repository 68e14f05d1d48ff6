package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rishi6824/AIinterview-and-resume-analyser/config"
	appcache "github.com/rishi6824/AIinterview-and-resume-analyser/internal/cache"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/interview"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/questionbank"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/resolver"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/scorer"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type memProfileRepo struct {
	mu       sync.Mutex
	upserted []*models.CandidateProfile
}

func (r *memProfileRepo) Upsert(_ context.Context, p *models.CandidateProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserted = append(r.upserted, p)
	return nil
}

func (r *memProfileRepo) GetByName(context.Context, string) (*models.CandidateProfile, error) {
	return nil, utils.ErrNotFound
}

type memCache struct {
	mu      sync.Mutex
	store   map[string][]byte
	deleted []string
}

func newMemCache() *memCache { return &memCache{store: map[string][]byte{}} }

func (c *memCache) GetJSON(context.Context, string, any) (bool, error) { return false, nil }

func (c *memCache) SetJSON(_ context.Context, key string, _ any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = []byte("set")
	return nil
}

func (c *memCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, keys...)
	return nil
}

func resumeForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("resume", "cv.txt")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := fw.Write([]byte("plain text resume")); err != nil {
		t.Fatalf("write: %v", err)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("field %s: %v", k, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestResumeUploadRejectsBadExperienceYears(t *testing.T) {
	profiles := &memProfileRepo{}
	h := NewResumeHandler(nil, nil, profiles, quietLogger())

	r := gin.New()
	r.POST("/resume/upload", h.Upload)

	body, ctype := resumeForm(t, map[string]string{
		"candidate_name":   "Priya",
		"job_role":         "Backend Engineer",
		"experience_years": "seven",
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/resume/upload", body)
	req.Header.Set("Content-Type", ctype)
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "experience_years") {
		t.Fatalf("body = %s, want experience_years error", rec.Body.String())
	}
	if len(profiles.upserted) != 0 {
		t.Fatalf("profile upserted despite invalid form")
	}
}

func TestResumeUploadParsesExperienceYears(t *testing.T) {
	profiles := &memProfileRepo{}
	h := NewResumeHandler(nil, nil, profiles, quietLogger())

	r := gin.New()
	r.POST("/resume/upload", h.Upload)

	body, ctype := resumeForm(t, map[string]string{
		"candidate_name":   "Priya",
		"job_role":         "Backend Engineer",
		"experience_years": "7",
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/resume/upload", body)
	req.Header.Set("Content-Type", ctype)
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if len(profiles.upserted) != 1 {
		t.Fatalf("upserts = %d, want 1", len(profiles.upserted))
	}
	if got := profiles.upserted[0].ExperienceYears; got != 7 {
		t.Fatalf("experience_years = %d, want 7", got)
	}
}

func newHandlerManager(t *testing.T) *interview.Manager {
	t.Helper()

	log := quietLogger()
	bank, _ := questionbank.Load("no-such-file.json")
	res := resolver.New(nil, bank, time.Second, log)
	sc := scorer.New(nil, time.Second, log)

	cfg := config.InterviewConfig{
		MinQuestions:       1,
		MaxQuestions:       5,
		DefaultQuestions:   3,
		ConfidenceWeight:   0.4,
		VoiceWeight:        0.35,
		BodyLanguageWeight: 0.25,
		AnswerWeight:       0.7,
		PhysicalWeight:     0.3,
		ProviderTimeout:    time.Second,
		ScorePrecision:     2,
	}
	return interview.NewManager(res, sc, nil, cfg, log)
}

func TestResultsEvictsStatsCache(t *testing.T) {
	ctx := context.Background()
	m := newHandlerManager(t)
	ch := newMemCache()
	h := NewInterviewHandler(m, nil, nil, ch, quietLogger())

	s := m.Start(models.RoleContext{JobRole: "Backend Engineer", CandidateName: "Priya"}, 1)
	if _, err := m.SubmitAnswer(ctx, s.ID(), "I would shard by tenant and cache hot reads."); err != nil {
		t.Fatalf("submit: %v", err)
	}

	r := gin.New()
	r.GET("/interview/:session_id/results", h.Results)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/interview/"+s.ID()+"/results", nil)
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if _, ok := ch.store[appcache.ReportKey(s.ID())]; !ok {
		t.Fatalf("report was not cached")
	}

	evicted := false
	for _, k := range ch.deleted {
		if k == appcache.StatsKey {
			evicted = true
		}
	}
	if !evicted {
		t.Fatalf("stats cache key survived finalization, deleted = %v", ch.deleted)
	}
}
