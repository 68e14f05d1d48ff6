package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rishi6824/AIinterview-and-resume-analyser/internal/utils"
)

type APIError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)

	var ae *utils.AppError
	if errors.As(err, &ae) {
		c.JSON(status, APIError{
			Code:    ae.Code,
			Message: ae.Message,
		})
		return
	}

	c.JSON(status, APIError{
		Code:    utils.CodeInternal,
		Message: http.StatusText(status),
	})
}

func sessionParam(c *gin.Context) (string, bool) {
	id := c.Param("session_id")
	if id == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "API", "missing session_id", nil))
		return "", false
	}
	return id, true
}
