package services

import (
	"context"
	"fmt"

	"github.com/sjperalta/edufees-api/internal/ledger"
	"github.com/sjperalta/edufees-api/internal/models"
	"github.com/sjperalta/edufees-api/internal/repository"
)

// RecordSource provides a student's raw payment records
type RecordSource interface {
	FetchPayments(ctx context.Context, session models.StudentSession) ([]ledger.PaymentRecord, error)
}

// DatabaseSource reads payment records from the fee_payments table
type DatabaseSource struct {
	repo repository.FeePaymentRepository
}

// NewDatabaseSource creates a record source backed by the repository
func NewDatabaseSource(repo repository.FeePaymentRepository) *DatabaseSource {
	return &DatabaseSource{repo: repo}
}

// FetchPayments returns the stored payments for session.ContactID in insertion order
func (s *DatabaseSource) FetchPayments(ctx context.Context, session models.StudentSession) ([]ledger.PaymentRecord, error) {
	payments, err := s.repo.FindByContactID(ctx, session.ContactID)
	if err != nil {
		return nil, fmt.Errorf("failed to load fee payments: %w", err)
	}

	records := make([]ledger.PaymentRecord, 0, len(payments))
	for _, p := range payments {
		records = append(records, p.ToRecord())
	}
	return records, nil
}
