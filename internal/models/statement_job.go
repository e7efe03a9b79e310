package models

import (
	"time"
)

// StatementJob tracks an asynchronous fee statement export
type StatementJob struct {
	ID          string     `json:"id"`
	ContactID   string     `json:"contact_id"`
	Format      string     `json:"format"`
	Status      string     `json:"status"`
	FilePath    string     `json:"-"` // relative to storage root
	FileName    string     `json:"file_name,omitempty"`
	ContentType string     `json:"content_type,omitempty"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
}

// Statement job status constants
const (
	StatementJobQueued    = "queued"
	StatementJobRunning   = "running"
	StatementJobCompleted = "completed"
	StatementJobFailed    = "failed"
)

// Statement formats
const (
	StatementFormatCSV  = "csv"
	StatementFormatXLSX = "xlsx"
	StatementFormatPDF  = "pdf"
)

// IsFinished returns true once the job can no longer change state
func (j *StatementJob) IsFinished() bool {
	return j.Status == StatementJobCompleted || j.Status == StatementJobFailed
}

// HasFile returns true if the job produced a downloadable statement
func (j *StatementJob) HasFile() bool {
	return j.Status == StatementJobCompleted && j.FilePath != ""
}
