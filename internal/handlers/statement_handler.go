package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/edufees-api/internal/models"
	"github.com/sjperalta/edufees-api/internal/services"
)

type StatementHandler struct {
	feeService    *services.FeeService
	exportService *services.ExportService
	jobService    *services.JobService
}

func NewStatementHandler(feeSvc *services.FeeService, exportSvc *services.ExportService, jobSvc *services.JobService) *StatementHandler {
	return &StatementHandler{
		feeService:    feeSvc,
		exportService: exportSvc,
		jobService:    jobSvc,
	}
}

// Download renders a fee statement synchronously
// @Summary Download fee statement
// @Description Fee statement as CSV, XLSX or PDF, newest payment first
// @Tags Statements
// @Produce octet-stream
// @Param contact_id path string true "Student contact ID"
// @Param format query string false "csv, xlsx or pdf" default(pdf)
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /students/{contact_id}/fees/statement [get]
func (h *StatementHandler) Download(c *gin.Context) {
	statementFormat := c.DefaultQuery("format", models.StatementFormatPDF)

	details, err := h.feeService.Details(c.Request.Context(), studentSession(c))
	if err != nil {
		respondError(c, err)
		return
	}

	data, filename, contentType, err := h.exportService.Render(details, statementFormat)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, data)
}

// CreateJob queues a fee statement for background generation
// @Summary Queue fee statement
// @Description Generates the statement in the background; poll the job for its state
// @Tags Statements
// @Produce json
// @Param contact_id path string true "Student contact ID"
// @Param format query string false "csv, xlsx or pdf" default(pdf)
// @Success 202 {object} models.StatementJob
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /students/{contact_id}/fees/statement/jobs [post]
func (h *StatementHandler) CreateJob(c *gin.Context) {
	statementFormat := c.DefaultQuery("format", models.StatementFormatPDF)

	job, err := h.jobService.CreateStatementJob(c.Request.Context(), studentSession(c), statementFormat)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", "/api/v1/jobs/"+job.ID)
	c.JSON(http.StatusAccepted, job)
}
