package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/edufees-api/internal/middleware"
	"github.com/sjperalta/edufees-api/internal/models"
	"github.com/sjperalta/edufees-api/internal/services"
)

type JobHandler struct {
	jobService *services.JobService
}

func NewJobHandler(jobSvc *services.JobService) *JobHandler {
	return &JobHandler{
		jobService: jobSvc,
	}
}

// authorizedJob loads a job the caller may see
func (h *JobHandler) authorizedJob(c *gin.Context) (*models.StatementJob, bool) {
	job, err := h.jobService.Get(c.Param("job_id"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if !middleware.CanAccessContact(c, job.ContactID) {
		respondError(c, services.ErrNotFound)
		return nil, false
	}
	return job, true
}

// Show returns the state of a statement job
// @Summary Get statement job
// @Tags Jobs
// @Produce json
// @Param job_id path string true "Job ID"
// @Success 200 {object} models.StatementJob
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /jobs/{job_id} [get]
func (h *JobHandler) Show(c *gin.Context) {
	job, ok := h.authorizedJob(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, job)
}

// Download streams the statement produced by a completed job
// @Summary Download statement job file
// @Tags Jobs
// @Produce octet-stream
// @Param job_id path string true "Job ID"
// @Success 200 {file} file
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /jobs/{job_id}/download [get]
func (h *JobHandler) Download(c *gin.Context) {
	if _, ok := h.authorizedJob(c); !ok {
		return
	}

	f, job, err := h.jobService.Open(c.Param("job_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		respondError(c, err)
		return
	}

	c.DataFromReader(http.StatusOK, info.Size(), job.ContentType, f, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%s", job.FileName),
	})
}

// Status returns the current worker status
// @Summary Get background job status
// @Description Get statistics about background jobs (active, completed, failed, queue length) and statement jobs per state
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.JobStatus
// @Router /jobs/status [get]
func (h *JobHandler) Status(c *gin.Context) {
	status := h.jobService.GetStatus()
	c.JSON(http.StatusOK, status)
}
