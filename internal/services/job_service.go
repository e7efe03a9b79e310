package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sjperalta/edufees-api/internal/jobs"
	"github.com/sjperalta/edufees-api/internal/models"
	"github.com/sjperalta/edufees-api/internal/statemachine"
	"github.com/sjperalta/edufees-api/internal/storage"
	"github.com/sjperalta/edufees-api/pkg/logger"
)

const statementDir = "statements"

// JobStatus reports worker statistics together with statement job counts
type JobStatus struct {
	jobs.WorkerStats
	StatementJobs map[string]int `json:"statement_jobs"`
}

type JobService struct {
	worker    *jobs.Worker
	fees      *FeeService
	export    *ExportService
	storage   *storage.LocalStorage
	retention time.Duration

	mu   sync.RWMutex
	jobs map[string]*models.StatementJob
}

func NewJobService(worker *jobs.Worker, fees *FeeService, export *ExportService, store *storage.LocalStorage, retention time.Duration) *JobService {
	return &JobService{
		worker:    worker,
		fees:      fees,
		export:    export,
		storage:   store,
		retention: retention,
		jobs:      make(map[string]*models.StatementJob),
	}
}

// CreateStatementJob queues a statement export for the student
func (s *JobService) CreateStatementJob(ctx context.Context, session models.StudentSession, statementFormat string) (*models.StatementJob, error) {
	statementFormat = strings.ToLower(statementFormat)
	switch statementFormat {
	case models.StatementFormatCSV, models.StatementFormatXLSX, models.StatementFormatPDF:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, statementFormat)
	}

	now := time.Now()
	job := &models.StatementJob{
		ID:        uuid.NewString(),
		ContactID: session.ContactID,
		Format:    statementFormat,
		Status:    models.StatementJobQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	snapshot := *job
	s.mu.Unlock()

	err := s.worker.Enqueue("statement:"+job.ID, func(ctx context.Context) error {
		return s.runStatementJob(ctx, job.ID, session)
	})
	if err != nil {
		s.mu.Lock()
		delete(s.jobs, job.ID)
		s.mu.Unlock()
		return nil, fmt.Errorf("failed to queue statement job: %w", err)
	}

	logger.Info("Statement job queued", "job_id", job.ID, "contact_id", job.ContactID, "format", job.Format)
	return &snapshot, nil
}

// runStatementJob renders and stores the statement, moving the job through its lifecycle
func (s *JobService) runStatementJob(ctx context.Context, id string, session models.StudentSession) error {
	if err := s.transition(id, func(jfsm *statemachine.StatementJobFSM) error {
		return jfsm.Start(ctx)
	}); err != nil {
		return err
	}

	relPath, fileName, contentType, err := s.produceStatement(ctx, id, session)
	if err != nil {
		if ferr := s.transition(id, func(jfsm *statemachine.StatementJobFSM) error {
			return jfsm.Fail(ctx, err)
		}); ferr != nil {
			logger.Error("Failed to mark statement job as failed", "job_id", id, "error", ferr)
		}
		return err
	}

	return s.transition(id, func(jfsm *statemachine.StatementJobFSM) error {
		return jfsm.Complete(ctx, relPath, fileName, contentType)
	})
}

func (s *JobService) produceStatement(ctx context.Context, id string, session models.StudentSession) (string, string, string, error) {
	job, err := s.Get(id)
	if err != nil {
		return "", "", "", err
	}

	details, err := s.fees.Details(ctx, session)
	if err != nil {
		return "", "", "", err
	}

	data, fileName, contentType, err := s.export.Render(details, job.Format)
	if err != nil {
		return "", "", "", err
	}

	relPath, err := s.storage.SaveBytes(data, fileName, statementDir)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to store statement: %w", err)
	}
	return relPath, fileName, contentType, nil
}

// transition applies a state change to a stored job under the lock
func (s *JobService) transition(id string, apply func(*statemachine.StatementJobFSM) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return ErrNotFound
	}
	return apply(statemachine.NewStatementJobFSM(job))
}

// Get returns a copy of the job
func (s *JobService) Get(id string) (*models.StatementJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	snapshot := *job
	return &snapshot, nil
}

// Open returns the statement file of a completed job. The caller closes it.
func (s *JobService) Open(id string) (*os.File, *models.StatementJob, error) {
	job, err := s.Get(id)
	if err != nil {
		return nil, nil, err
	}
	if !job.HasFile() {
		return nil, job, ErrJobNotReady
	}

	f, err := s.storage.Open(job.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, job, ErrNotFound
		}
		return nil, job, fmt.Errorf("failed to open statement: %w", err)
	}
	return f, job, nil
}

// CleanupExpired removes finished jobs older than the retention period and their files
func (s *JobService) CleanupExpired(ctx context.Context) error {
	cutoff := time.Now().Add(-s.retention)

	s.mu.Lock()
	var expired []*models.StatementJob
	for id, job := range s.jobs {
		if job.IsFinished() && job.FinishedAt != nil && job.FinishedAt.Before(cutoff) {
			expired = append(expired, job)
			delete(s.jobs, id)
		}
	}
	s.mu.Unlock()

	for _, job := range expired {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if job.FilePath == "" {
			continue
		}
		if err := s.storage.Delete(job.FilePath); err != nil && !os.IsNotExist(err) {
			logger.Warn("Failed to delete expired statement", "job_id", job.ID, "path", job.FilePath, "error", err)
		}
	}

	if len(expired) > 0 {
		logger.Info("Expired statement jobs removed", "count", len(expired))
	}
	return nil
}

// ScheduleCleanup runs CleanupExpired on the worker at the given interval
func (s *JobService) ScheduleCleanup(interval time.Duration) {
	s.worker.ScheduleEvery("statement-cleanup", interval, s.CleanupExpired)
}

// GetStatus returns worker statistics and statement jobs per state
func (s *JobService) GetStatus() JobStatus {
	status := JobStatus{
		WorkerStats: s.worker.GetStats(),
		StatementJobs: map[string]int{
			models.StatementJobQueued:    0,
			models.StatementJobRunning:   0,
			models.StatementJobCompleted: 0,
			models.StatementJobFailed:    0,
		},
	}

	s.mu.RLock()
	for _, job := range s.jobs {
		status.StatementJobs[job.Status]++
	}
	s.mu.RUnlock()

	return status
}
