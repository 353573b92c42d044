package handler

import (
	"errors"
	"net/http"

	"baudboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDuplicateName):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidPosition),
		errors.Is(err, service.ErrInvalidScope),
		errors.Is(err, service.ErrInvalidPriority),
		errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body. Unexpected errors are attached to the
// gin context for the request logger and answered with fallback.
func respondError(c *gin.Context, err error, fallback string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func parseID(c *gin.Context, param, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + what + " ID format"})
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return false
	}
	return true
}
