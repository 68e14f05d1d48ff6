package handlers

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/cache"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/interview"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/providers/stt"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/repositories/postgres"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/utils"
)

type InterviewHandler struct {
	manager  *interview.Manager
	profiles postgres.ProfileRepository // optional
	speech   stt.Provider               // optional
	cache    cache.Cache                // optional
	log      *logrus.Logger
}

func NewInterviewHandler(m *interview.Manager, profiles postgres.ProfileRepository, speech stt.Provider, ch cache.Cache, log *logrus.Logger) *InterviewHandler {
	return &InterviewHandler{manager: m, profiles: profiles, speech: speech, cache: ch, log: log}
}

type startRequest struct {
	CandidateName   string   `json:"candidate_name"`
	JobRole         string   `json:"job_role" binding:"required"`
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experience_years"`
	Summary         string   `json:"summary"`
	NumQuestions    int      `json:"num_questions"`
}

// Start creates a session and returns its first question. When a stored
// candidate profile exists it fills whatever the request left blank.
func (h *InterviewHandler) Start(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.Start", "job_role is required", err))
		return
	}

	role := models.RoleContext{
		JobRole:         strings.TrimSpace(req.JobRole),
		CandidateName:   strings.TrimSpace(req.CandidateName),
		Skills:          req.Skills,
		ExperienceYears: req.ExperienceYears,
		Summary:         req.Summary,
	}

	if h.profiles != nil && role.CandidateName != "" {
		if p, err := h.profiles.GetByName(c.Request.Context(), role.CandidateName); err == nil {
			if len(role.Skills) == 0 {
				role.Skills = p.Skills
			}
			if role.ExperienceYears == 0 {
				role.ExperienceYears = p.ExperienceYears
			}
			if role.Summary == "" {
				role.Summary = p.Summary
			}
		}
	}

	s := h.manager.Start(role, req.NumQuestions)

	q, _, err := h.manager.CurrentQuestion(c.Request.Context(), s.ID())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id":      s.ID(),
		"job_role":        role.JobRole,
		"total_questions": s.TargetLength(),
		"question_index":  0,
		"question":        q,
	})
}

// Question returns the question at the current index, minting it if needed.
func (h *InterviewHandler) Question(c *gin.Context) {
	id, ok := sessionParam(c)
	if !ok {
		return
	}

	q, completed, err := h.manager.CurrentQuestion(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if completed {
		c.JSON(http.StatusOK, gin.H{"completed": true})
		return
	}

	idx, total, _ := progressOf(h.manager, id)
	c.JSON(http.StatusOK, gin.H{
		"completed":       false,
		"question_index":  idx,
		"total_questions": total,
		"question":        q,
	})
}

type answerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// Answer scores a typed answer and advances the session.
func (h *InterviewHandler) Answer(c *gin.Context) {
	id, ok := sessionParam(c)
	if !ok {
		return
	}

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.Answer", "answer is required", err))
		return
	}

	res, err := h.manager.SubmitAnswer(c.Request.Context(), id, req.Answer)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// VoiceAnswer accepts a recorded answer, transcribes it, and scores the
// transcript exactly like a typed answer.
func (h *InterviewHandler) VoiceAnswer(c *gin.Context) {
	const op = "InterviewHandler.VoiceAnswer"

	id, ok := sessionParam(c)
	if !ok {
		return
	}
	if h.speech == nil {
		writeError(c, utils.E(utils.CodeUnavailable, op, "speech-to-text is not configured", nil))
		return
	}

	file, _, err := c.Request.FormFile("audio")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "audio file is required", err))
		return
	}
	defer file.Close()

	const maxAudio = 10 << 20
	audio, err := io.ReadAll(io.LimitReader(file, maxAudio+1))
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "failed to read audio", err))
		return
	}
	if len(audio) > maxAudio {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "audio exceeds 10MB limit", nil))
		return
	}

	text, conf, err := h.speech.Transcribe(c.Request.Context(), audio, c.PostForm("language"))
	if err != nil {
		writeError(c, utils.E(utils.CodeUnavailable, op, "transcription failed", err))
		return
	}
	if strings.TrimSpace(text) == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "no speech recognized", nil))
		return
	}

	res, err := h.manager.SubmitAnswer(c.Request.Context(), id, text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"transcript":     text,
		"stt_confidence": conf,
		"result":         res,
	})
}

type sampleRequest struct {
	QuestionIndex int      `json:"question_index"`
	Confidence    *float64 `json:"confidence"`
	Posture       *float64 `json:"posture"`
	Voice         *float64 `json:"voice"`
	PersonCount   *int     `json:"person_count"`
	PhoneDetected *bool    `json:"phone_detected"`
}

// Physical ingests one pre-scored physical sample for the current question
// and returns the running snapshot. Stale samples are acknowledged but not
// merged.
func (h *InterviewHandler) Physical(c *gin.Context) {
	const op = "InterviewHandler.Physical"

	id, ok := sessionParam(c)
	if !ok {
		return
	}

	var req sampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid sample payload", err))
		return
	}
	if req.Confidence == nil && req.Posture == nil && req.Voice == nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "at least one sub-score is required", nil))
		return
	}
	for _, v := range []*float64{req.Confidence, req.Posture, req.Voice} {
		if v != nil && (*v < 0 || *v > 10) {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "sub-scores must be within [0,10]", nil))
			return
		}
	}

	snap, accepted, err := h.manager.PushSample(id, models.PhysicalSample{
		QuestionIndex: req.QuestionIndex,
		Confidence:    req.Confidence,
		Posture:       req.Posture,
		Voice:         req.Voice,
		PersonCount:   req.PersonCount,
		PhoneDetected: req.PhoneDetected,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	if !accepted {
		c.JSON(http.StatusOK, gin.H{"accepted": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accepted": true, "snapshot": snap})
}

// PhysicalSnapshot serves the running composite for mid-question polling.
func (h *InterviewHandler) PhysicalSnapshot(c *gin.Context) {
	id, ok := sessionParam(c)
	if !ok {
		return
	}

	snap, exists, err := h.manager.Snapshot(id)
	if err != nil {
		writeError(c, err)
		return
	}
	if !exists {
		c.JSON(http.StatusOK, gin.H{"has_samples": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"has_samples": true, "snapshot": snap})
}

// Results finalizes the interview and serves the report, caching it so the
// results page can be reloaded cheaply.
func (h *InterviewHandler) Results(c *gin.Context) {
	id, ok := sessionParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if h.cache != nil {
		var cached models.FinalReport
		if hit, _ := h.cache.GetJSON(ctx, cache.ReportKey(id), &cached); hit {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	rep, err := h.manager.Finalize(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}

	if h.cache != nil {
		if err := h.cache.SetJSON(ctx, cache.ReportKey(id), rep, time.Hour); err != nil {
			h.log.WithError(err).Warn("report cache write failed")
		}
		// A fresh finalization changes the admin aggregates.
		if err := h.cache.Del(ctx, cache.StatsKey); err != nil {
			h.log.WithError(err).Warn("stats cache evict failed")
		}
	}
	c.JSON(http.StatusOK, rep)
}

// Cancel abandons a session.
func (h *InterviewHandler) Cancel(c *gin.Context) {
	id, ok := sessionParam(c)
	if !ok {
		return
	}
	h.manager.Terminate(id)
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

func progressOf(m *interview.Manager, id string) (int, int, bool) {
	s, err := m.Get(id)
	if err != nil {
		return 0, 0, false
	}
	return s.Progress()
}
