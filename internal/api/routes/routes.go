package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/api/handlers"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/api/middleware"
)

type Deps struct {
	Interview *handlers.InterviewHandler
	Resume    *handlers.ResumeHandler
	Chatbot   *handlers.ChatbotHandler
	Admin     *handlers.AdminHandler
	WS        *handlers.WSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Candidate-facing routes; sessions are capability-addressed by their id.
	iv := r.Group("/interview")
	iv.POST("/start", d.Interview.Start)
	iv.GET("/:session_id/question", d.Interview.Question)
	iv.POST("/:session_id/answer", d.Interview.Answer)
	iv.POST("/:session_id/voice", d.Interview.VoiceAnswer)
	iv.POST("/:session_id/physical", d.Interview.Physical)
	iv.GET("/:session_id/physical", d.Interview.PhysicalSnapshot)
	iv.GET("/:session_id/results", d.Interview.Results)
	iv.POST("/:session_id/cancel", d.Interview.Cancel)

	r.POST("/resume/upload", d.Resume.Upload)
	r.POST("/chatbot/message", d.Chatbot.Message)

	// WebSocket media streaming
	if d.WS != nil {
		r.GET("/ws/interview/:session_id", d.WS.InterviewWS)
	}

	// Admin panel (JWT)
	r.POST("/admin/login", d.Admin.Login)
	admin := r.Group("/admin")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	admin.GET("/interviews", d.Admin.ListInterviews)
	admin.GET("/interviews/:id", d.Admin.GetInterview)
	admin.DELETE("/interviews/:id", d.Admin.DeleteInterview)
	admin.GET("/stats", d.Admin.Stats)
}
