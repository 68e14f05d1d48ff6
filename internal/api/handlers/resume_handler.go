package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/repositories/postgres"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/storage"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/utils"
)

var allowedResumeExt = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
}

type ResumeHandler struct {
	uploader storage.Uploader // optional
	resumes  postgres.ResumeRepository
	profiles postgres.ProfileRepository
	log      *logrus.Logger
}

func NewResumeHandler(uploader storage.Uploader, resumes postgres.ResumeRepository, profiles postgres.ProfileRepository, log *logrus.Logger) *ResumeHandler {
	return &ResumeHandler{uploader: uploader, resumes: resumes, profiles: profiles, log: log}
}

// Upload stores the resume file and upserts the candidate profile from the
// accompanying form fields. Skills arrive comma-separated.
func (h *ResumeHandler) Upload(c *gin.Context) {
	const op = "ResumeHandler.Upload"

	name := strings.TrimSpace(c.PostForm("candidate_name"))
	if name == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "candidate_name is required", nil))
		return
	}

	file, header, err := c.Request.FormFile("resume")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "resume file is required", err))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	mime, ok := allowedResumeExt[ext]
	if !ok {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "unsupported file type; use pdf, doc, docx or txt", nil))
		return
	}
	if header.Size > 5<<20 {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "resume exceeds 5MB limit", nil))
		return
	}

	years := 0
	if raw := strings.TrimSpace(c.PostForm("experience_years")); raw != "" {
		years, err = strconv.Atoi(raw)
		if err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "experience_years must be a whole number", err))
			return
		}
	}

	id := uuid.NewString()
	storedPath := ""
	if h.uploader != nil {
		object := fmt.Sprintf("resumes/%s%s", id, ext)
		storedPath, err = h.uploader.Upload(c.Request.Context(), object, mime, file)
		if err != nil {
			writeError(c, utils.E(utils.CodeUnavailable, op, "resume upload failed", err))
			return
		}
	}

	rec := &models.ResumeFile{
		ID:            id,
		CandidateName: name,
		FileName:      header.Filename,
		FilePath:      storedPath,
		FileSize:      int(header.Size),
		MimeType:      mime,
		UploadAt:      time.Now().UTC(),
	}
	if h.resumes != nil {
		if err := h.resumes.Insert(c.Request.Context(), rec); err != nil {
			writeError(c, utils.E(utils.CodeInternal, op, "failed to record resume", err))
			return
		}
	}

	var skills []string
	for _, s := range strings.Split(c.PostForm("skills"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}

	if h.profiles != nil {
		profile := &models.CandidateProfile{
			ID:              uuid.NewString(),
			CandidateName:   name,
			JobRole:         strings.TrimSpace(c.PostForm("job_role")),
			Skills:          pq.StringArray(skills),
			ExperienceYears: years,
			Summary:         strings.TrimSpace(c.PostForm("summary")),
			UpdatedAt:       time.Now().UTC(),
		}
		if err := h.profiles.Upsert(c.Request.Context(), profile); err != nil {
			h.log.WithError(err).Warn("profile upsert failed")
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"resume_id":      rec.ID,
		"candidate_name": name,
		"file_path":      storedPath,
		"skills":         skills,
	})
}
