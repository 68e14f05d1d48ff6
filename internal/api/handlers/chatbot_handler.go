package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/chatbot"
	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/utils"
)

type ChatbotHandler struct{}

func NewChatbotHandler() *ChatbotHandler { return &ChatbotHandler{} }

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h *ChatbotHandler) Message(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ChatbotHandler.Message", "message is required", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": chatbot.Reply(req.Message)})
}
