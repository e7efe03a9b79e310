package statemachine

import (
	"context"
	"fmt"
	"time"

	"github.com/looplab/fsm"
	"github.com/sjperalta/edufees-api/internal/models"
)

// StatementJobFSM wraps a statement job with its state machine
type StatementJobFSM struct {
	job *models.StatementJob
	fsm *fsm.FSM
}

// NewStatementJobFSM creates a new statement job state machine
func NewStatementJobFSM(job *models.StatementJob) *StatementJobFSM {
	jfsm := &StatementJobFSM{
		job: job,
	}

	jfsm.fsm = fsm.NewFSM(
		job.Status,
		fsm.Events{
			// queued → running
			{Name: "start", Src: []string{models.StatementJobQueued}, Dst: models.StatementJobRunning},

			// running → completed
			{Name: "complete", Src: []string{models.StatementJobRunning}, Dst: models.StatementJobCompleted},

			// queued/running → failed
			{Name: "fail", Src: []string{models.StatementJobQueued, models.StatementJobRunning}, Dst: models.StatementJobFailed},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				jfsm.job.Status = e.Dst
				jfsm.job.UpdatedAt = time.Now()
			},
		},
	)

	return jfsm
}

// Start transitions the job to running
func (j *StatementJobFSM) Start(ctx context.Context) error {
	if err := j.fsm.Event(ctx, "start"); err != nil {
		return fmt.Errorf("failed to start statement job: %w", err)
	}
	return nil
}

// Complete records the produced file and transitions the job to completed
func (j *StatementJobFSM) Complete(ctx context.Context, filePath, fileName, contentType string) error {
	if err := j.fsm.Event(ctx, "complete"); err != nil {
		return fmt.Errorf("failed to complete statement job: %w", err)
	}
	now := time.Now()
	j.job.FilePath = filePath
	j.job.FileName = fileName
	j.job.ContentType = contentType
	j.job.FinishedAt = &now
	return nil
}

// Fail records the cause and transitions the job to failed
func (j *StatementJobFSM) Fail(ctx context.Context, cause error) error {
	if err := j.fsm.Event(ctx, "fail"); err != nil {
		return fmt.Errorf("failed to mark statement job as failed: %w", err)
	}
	now := time.Now()
	if cause != nil {
		j.job.Error = cause.Error()
	}
	j.job.FinishedAt = &now
	return nil
}
