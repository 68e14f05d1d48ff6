package handlers

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/api/middleware"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/cache"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/models"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/repositories/postgres"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/utils"
)

// AdminHandler serves the reporting panel over archived interviews. A single
// admin account comes from the environment: ADMIN_USERNAME plus a bcrypt
// ADMIN_PASSWORD_HASH.
type AdminHandler struct {
	interviews postgres.InterviewRepository
	cache      cache.Cache // optional
	log        *logrus.Logger
}

func NewAdminHandler(interviews postgres.InterviewRepository, ch cache.Cache, log *logrus.Logger) *AdminHandler {
	return &AdminHandler{interviews: interviews, cache: ch, log: log}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AdminHandler) Login(c *gin.Context) {
	const op = "AdminHandler.Login"

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "username and password are required", err))
		return
	}

	username := os.Getenv("ADMIN_USERNAME")
	hash := os.Getenv("ADMIN_PASSWORD_HASH")
	if username == "" || hash == "" {
		writeError(c, utils.E(utils.CodeUnavailable, op, "admin login is not configured", nil))
		return
	}

	if req.Username != username || utils.CheckPassword(hash, req.Password) != nil {
		writeError(c, utils.E(utils.CodeUnauthorized, op, "invalid credentials", nil))
		return
	}

	token, err := middleware.IssueAdminToken(username, 12*time.Hour)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "expires_in": int((12 * time.Hour).Seconds())})
}

func (h *AdminHandler) requireStore(c *gin.Context) bool {
	if h.interviews == nil {
		writeError(c, utils.E(utils.CodeUnavailable, "AdminHandler", "interview archive is not configured", nil))
		return false
	}
	return true
}

func (h *AdminHandler) ListInterviews(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	rows, err := h.interviews.List(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "AdminHandler.ListInterviews", "failed to list interviews", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"interviews": rows, "count": len(rows)})
}

func (h *AdminHandler) GetInterview(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	row, err := h.interviews.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *AdminHandler) DeleteInterview(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	id := c.Param("id")
	if err := h.interviews.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	if h.cache != nil {
		_ = h.cache.Del(c.Request.Context(), cache.ReportKey(id), cache.StatsKey)
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *AdminHandler) Stats(c *gin.Context) {
	if !h.requireStore(c) {
		return
	}
	ctx := c.Request.Context()

	if h.cache != nil {
		var cached models.InterviewStats
		if hit, _ := h.cache.GetJSON(ctx, cache.StatsKey, &cached); hit {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	stats, err := h.interviews.Stats(ctx)
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "AdminHandler.Stats", "failed to compute stats", err))
		return
	}

	if h.cache != nil {
		if err := h.cache.SetJSON(ctx, cache.StatsKey, stats, 5*time.Minute); err != nil {
			h.log.WithError(err).Warn("stats cache write failed")
		}
	}
	c.JSON(http.StatusOK, stats)
}
