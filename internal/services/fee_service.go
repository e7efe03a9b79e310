package services

import (
	"context"
	"fmt"

	"github.com/sjperalta/edufees-api/internal/ledger"
	"github.com/sjperalta/edufees-api/internal/models"
	"github.com/sjperalta/edufees-api/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// FeeDetails is a student's reconciled ledger. Entries are in ascending date order.
type FeeDetails struct {
	Student models.StudentSession
	Entries []ledger.LedgerEntry
	Summary ledger.Summary
}

// NewestFirst returns the entries in display order
func (d *FeeDetails) NewestFirst() []ledger.LedgerEntry {
	return ledger.NewestFirst(d.Entries)
}

// BatchResult is one student's outcome within a batch
type BatchResult struct {
	Student models.StudentSession
	Summary ledger.Summary
	Err     error
}

// FeeService reconciles payment records into ledgers and summaries
type FeeService struct {
	source           RecordSource
	batchConcurrency int
}

// NewFeeService creates a new fee service
func NewFeeService(source RecordSource, batchConcurrency int) *FeeService {
	if batchConcurrency < 1 {
		batchConcurrency = 1
	}
	return &FeeService{
		source:           source,
		batchConcurrency: batchConcurrency,
	}
}

// Details fetches the student's records and builds their ledger and summary
func (s *FeeService) Details(ctx context.Context, session models.StudentSession) (*FeeDetails, error) {
	records, err := s.source.FetchPayments(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	details := s.Reconcile(records)
	details.Student = session

	logger.Debug("Fee ledger built",
		"contact_id", session.ContactID,
		"payments", details.Summary.TotalPayments,
		"current_balance", details.Summary.CurrentBalance.String(),
	)
	return details, nil
}

// Reconcile builds a ledger and summary from caller-supplied records
func (s *FeeService) Reconcile(records []ledger.PaymentRecord) *FeeDetails {
	entries := ledger.BuildLedger(records)
	return &FeeDetails{
		Entries: entries,
		Summary: ledger.Summarize(records, entries),
	}
}

// BatchSummaries computes summaries for several students concurrently.
// Results keep the order of sessions; a failed fetch is reported in its
// result's Err and does not fail the batch.
func (s *FeeService) BatchSummaries(ctx context.Context, sessions []models.StudentSession) ([]BatchResult, error) {
	results := make([]BatchResult, len(sessions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)

	for i, session := range sessions {
		g.Go(func() error {
			results[i].Student = session
			details, err := s.Details(gctx, session)
			if err != nil {
				logger.Warn("Batch fee summary failed", "contact_id", session.ContactID, "error", err)
				results[i].Err = err
				return nil
			}
			results[i].Summary = details.Summary
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
