package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/edufees-api/internal/jobs"
	"github.com/sjperalta/edufees-api/internal/ledger"
	"github.com/sjperalta/edufees-api/internal/services"
	"github.com/sjperalta/edufees-api/pkg/logger"
)

// respondError maps service errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrInvalidFormat),
		errors.Is(err, services.ErrNoEmail),
		errors.Is(err, ledger.ErrNotAList):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrJobNotReady):
		status = http.StatusConflict
	case errors.Is(err, services.ErrNothingDue):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrUpstream):
		status = http.StatusBadGateway
	case errors.Is(err, jobs.ErrWorkerStopped):
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", "path", c.FullPath(), "error", err)
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
