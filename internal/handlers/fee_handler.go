package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/edufees-api/internal/jobs"
	"github.com/sjperalta/edufees-api/internal/ledger"
	"github.com/sjperalta/edufees-api/internal/middleware"
	"github.com/sjperalta/edufees-api/internal/models"
	"github.com/sjperalta/edufees-api/internal/services"
	"github.com/sjperalta/edufees-api/pkg/logger"
)

// Ledger display orders
const (
	OrderDesc = "desc"
	OrderAsc  = "asc"
)

// FeeDetailsResponse is the ledger and summary returned for a student
type FeeDetailsResponse struct {
	Student  *models.StudentSession       `json:"student,omitempty"`
	Order    string                       `json:"order"`
	Payments []models.LedgerEntryResponse `json:"payments"`
	Summary  models.SummaryResponse       `json:"summary"`
}

// BatchRequest lists the students to summarize
type BatchRequest struct {
	Students []models.StudentSession `json:"students" binding:"required,min=1,max=100,dive"`
}

// BatchResultResponse is one student's entry in a batch response
type BatchResultResponse struct {
	ContactID string                  `json:"contact_id"`
	Name      string                  `json:"name,omitempty"`
	Summary   *models.SummaryResponse `json:"summary,omitempty"`
	Error     string                  `json:"error,omitempty"`
}

// ReminderRequest names the address a balance reminder goes to
type ReminderRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}

type FeeHandler struct {
	feeService   *services.FeeService
	emailService *services.EmailService
	worker       *jobs.Worker
}

func NewFeeHandler(feeSvc *services.FeeService, emailSvc *services.EmailService, worker *jobs.Worker) *FeeHandler {
	return &FeeHandler{
		feeService:   feeSvc,
		emailService: emailSvc,
		worker:       worker,
	}
}

// studentSession builds the session for the student in the route. Staff act
// on another student's records with their own token.
func studentSession(c *gin.Context) models.StudentSession {
	session := middleware.CurrentSession(c)
	contactID := c.Param("contact_id")
	if contactID != "" && contactID != session.ContactID {
		session.ContactID = contactID
		session.Name = c.Query("name")
	}
	return session
}

func newFeeDetailsResponse(details *services.FeeDetails, order string) FeeDetailsResponse {
	resp := FeeDetailsResponse{
		Order:   order,
		Summary: models.NewSummaryResponse(details.Summary),
	}
	if details.Student.ContactID != "" {
		student := details.Student
		resp.Student = &student
	}

	if order == OrderAsc {
		resp.Payments = models.NewLedgerResponse(details.Entries, len(details.Entries)-1)
	} else {
		resp.Payments = models.NewLedgerResponse(details.NewestFirst(), 0)
	}
	return resp
}

func parseOrder(c *gin.Context) (string, bool) {
	order := strings.ToLower(c.DefaultQuery("order", OrderDesc))
	return order, order == OrderDesc || order == OrderAsc
}

// Show returns a student's ledger and summary
// @Summary Student fee details
// @Description Reconciled fee ledger with running balances and totals
// @Tags Fees
// @Produce json
// @Param contact_id path string true "Student contact ID"
// @Param order query string false "desc (newest first) or asc" default(desc)
// @Param name query string false "Student name, forwarded to the portal when staff look up another student"
// @Success 200 {object} FeeDetailsResponse
// @Failure 502 {object} map[string]string
// @Security BearerAuth
// @Router /students/{contact_id}/fees [get]
func (h *FeeHandler) Show(c *gin.Context) {
	order, ok := parseOrder(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order must be desc or asc"})
		return
	}

	details, err := h.feeService.Details(c.Request.Context(), studentSession(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newFeeDetailsResponse(details, order))
}

// Reconcile builds a ledger from payments supplied in the request body
// @Summary Reconcile payments
// @Description Accepts {"payments": [...]} or a bare array of payment records
// @Tags Fees
// @Accept json
// @Produce json
// @Param order query string false "desc (newest first) or asc" default(desc)
// @Success 200 {object} FeeDetailsResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /fees/reconcile [post]
func (h *FeeHandler) Reconcile(c *gin.Context) {
	order, ok := parseOrder(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order must be desc or asc"})
		return
	}

	var payload json.RawMessage
	if err := BindNestedOrFlat(c, "payments", &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	records, err := ledger.DecodeRecords(payload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newFeeDetailsResponse(h.feeService.Reconcile(records), order))
}

// Batch returns summaries for several students
// @Summary Batch fee summaries
// @Description Summaries for up to 100 students; a failed lookup is reported per student
// @Tags Fees
// @Accept json
// @Produce json
// @Param request body BatchRequest true "Students"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /fees/batch [post]
func (h *FeeHandler) Batch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token := middleware.CurrentSession(c).Token
	for i := range req.Students {
		req.Students[i].Token = token
	}

	results, err := h.feeService.BatchSummaries(c.Request.Context(), req.Students)
	if err != nil {
		respondError(c, err)
		return
	}

	data := make([]BatchResultResponse, 0, len(results))
	failed := 0
	for _, r := range results {
		item := BatchResultResponse{ContactID: r.Student.ContactID, Name: r.Student.Name}
		if r.Err != nil {
			item.Error = r.Err.Error()
			failed++
		} else {
			summary := models.NewSummaryResponse(r.Summary)
			item.Summary = &summary
		}
		data = append(data, item)
	}

	c.JSON(http.StatusOK, gin.H{
		"data":   data,
		"total":  len(data),
		"failed": failed,
	})
}

// Remind emails a student their outstanding balance
// @Summary Send balance reminder
// @Description Queues a reminder email when the student has a balance due
// @Tags Fees
// @Accept json
// @Produce json
// @Param contact_id path string true "Student contact ID"
// @Param request body ReminderRequest true "Recipient"
// @Success 202 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /students/{contact_id}/fees/reminder [post]
func (h *FeeHandler) Remind(c *gin.Context) {
	var req ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := studentSession(c)
	if req.Name != "" {
		session.Name = req.Name
	}

	details, err := h.feeService.Details(c.Request.Context(), session)
	if err != nil {
		respondError(c, err)
		return
	}
	if !details.Summary.CurrentBalance.IsPositive() {
		respondError(c, services.ErrNothingDue)
		return
	}

	err = h.worker.EnqueueAsync("balance-reminder:"+session.ContactID, func(ctx context.Context) error {
		return h.emailService.SendBalanceReminder(ctx, req.Email, details)
	})
	if err != nil {
		respondError(c, err)
		return
	}

	requestedBy := middleware.GetUserEmail(c)
	logger.Info("Balance reminder queued", "contact_id", session.ContactID, "requested_by", requestedBy)

	c.JSON(http.StatusAccepted, gin.H{
		"message":         "Reminder queued",
		"contact_id":      session.ContactID,
		"requested_by":    requestedBy,
		"current_balance": models.Amount(details.Summary.CurrentBalance),
	})
}
