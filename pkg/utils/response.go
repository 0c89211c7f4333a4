package utils

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Error responses are a flat {"error": code, "message": text} object,
// which is what the dashboard frontend matches on.

func SendError(c *gin.Context, statusCode int, err *AppError) {
	c.JSON(statusCode, err)
}

func SendValidationError(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, NewAppError(ErrCodeValidation, message))
}

func SendNotFound(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, NewAppError(ErrCodeNotFound, message))
}

func SendInternalError(c *gin.Context, message string) {
	SendError(c, http.StatusInternalServerError, NewAppError(ErrCodeInternal, message))
}

func SendConfigurationError(c *gin.Context, message string) {
	SendError(c, http.StatusInternalServerError, NewAppError(ErrCodeConfiguration, message))
}

// SendUnsupportedSport enumerates the valid options in the message so
// the caller can self-correct
func SendUnsupportedSport(c *gin.Context, sport string, supported []string) {
	SendError(c, http.StatusNotFound, NewAppError(
		ErrCodeUnsupportedSport,
		fmt.Sprintf("sport %q is not supported; valid options: %s", sport, strings.Join(supported, ", ")),
	))
}

// SendRateLimited sets the Retry-After header and includes the
// retry-after hint in the body
func SendRateLimited(c *gin.Context, retryAfterSeconds int) {
	c.Header("Retry-After", fmt.Sprintf("%d", retryAfterSeconds))
	c.JSON(http.StatusTooManyRequests, gin.H{
		"error":               ErrCodeRateLimited,
		"message":             "too many requests, slow down",
		"retry_after_seconds": retryAfterSeconds,
	})
}
