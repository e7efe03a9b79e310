package services

import (
	"github.com/sjperalta/edufees-api/internal/config"
	"github.com/sjperalta/edufees-api/internal/jobs"
	"github.com/sjperalta/edufees-api/internal/storage"
)

// Services holds all service instances
type Services struct {
	Fee    *FeeService
	Export *ExportService
	Email  *EmailService
	Job    *JobService
}

// NewServices creates all service instances
func NewServices(source RecordSource, worker *jobs.Worker, storage *storage.LocalStorage, cfg *config.Config) *Services {
	feeSvc := NewFeeService(source, cfg.BatchConcurrency)
	exportSvc := NewExportService()

	return &Services{
		Fee:    feeSvc,
		Export: exportSvc,
		Email:  NewEmailService(cfg),
		Job:    NewJobService(worker, feeSvc, exportSvc, storage, cfg.StatementRetention),
	}
}
