package handlers

import (
	"github.com/sjperalta/edufees-api/internal/jobs"
	"github.com/sjperalta/edufees-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health    *HealthHandler
	Fee       *FeeHandler
	Statement *StatementHandler
	Job       *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, worker *jobs.Worker, feeSource string) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(feeSource),
		Fee:       NewFeeHandler(svcs.Fee, svcs.Email, worker),
		Statement: NewStatementHandler(svcs.Fee, svcs.Export, svcs.Job),
		Job:       NewJobHandler(svcs.Job),
	}
}
