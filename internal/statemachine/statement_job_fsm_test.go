package statemachine

import (
	"context"
	"errors"
	"testing"

	"github.com/sjperalta/edufees-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatementJobFSM_HappyPath(t *testing.T) {
	ctx := context.Background()
	job := &models.StatementJob{ID: "job-1", Status: models.StatementJobQueued}
	jfsm := NewStatementJobFSM(job)

	require.NoError(t, jfsm.Start(ctx))
	assert.Equal(t, models.StatementJobRunning, job.Status)

	require.NoError(t, jfsm.Complete(ctx, "statements/2024/01/a.pdf", "fee_statement.pdf", "application/pdf"))
	assert.Equal(t, models.StatementJobCompleted, job.Status)
	assert.Equal(t, "statements/2024/01/a.pdf", job.FilePath)
	assert.NotNil(t, job.FinishedAt)
	assert.True(t, job.HasFile())
	assert.True(t, job.IsFinished())
}

func TestStatementJobFSM_Fail(t *testing.T) {
	ctx := context.Background()
	job := &models.StatementJob{Status: models.StatementJobQueued}
	jfsm := NewStatementJobFSM(job)

	require.NoError(t, jfsm.Fail(ctx, errors.New("upstream unavailable")))
	assert.Equal(t, models.StatementJobFailed, job.Status)
	assert.Equal(t, "upstream unavailable", job.Error)
	assert.False(t, job.HasFile())
}

func TestStatementJobFSM_InvalidTransitions(t *testing.T) {
	ctx := context.Background()

	queued := NewStatementJobFSM(&models.StatementJob{Status: models.StatementJobQueued})
	assert.Error(t, queued.Complete(ctx, "x", "x", "x"))

	done := &models.StatementJob{Status: models.StatementJobCompleted}
	doneFSM := NewStatementJobFSM(done)
	assert.Error(t, doneFSM.Start(ctx))
	assert.Error(t, doneFSM.Fail(ctx, nil))
	assert.Equal(t, models.StatementJobCompleted, done.Status)
}
