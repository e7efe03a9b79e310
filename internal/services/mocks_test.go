package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/edufees-api/internal/ledger"
	"github.com/sjperalta/edufees-api/internal/models"
	"github.com/sjperalta/edufees-api/internal/repository"
	"github.com/sjperalta/edufees-api/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Setup("test")
	os.Exit(m.Run())
}

// Mock RecordSource
type mockRecordSource struct {
	mockFetchPayments func(ctx context.Context, session models.StudentSession) ([]ledger.PaymentRecord, error)
}

func (m *mockRecordSource) FetchPayments(ctx context.Context, session models.StudentSession) ([]ledger.PaymentRecord, error) {
	if m.mockFetchPayments != nil {
		return m.mockFetchPayments(ctx, session)
	}
	return nil, nil
}

// Mock FeePaymentRepository
type mockFeePaymentRepo struct {
	repository.FeePaymentRepository
	mockFindByContactID func(ctx context.Context, contactID string) ([]models.FeePayment, error)
}

func (m *mockFeePaymentRepo) FindByContactID(ctx context.Context, contactID string) ([]models.FeePayment, error) {
	return m.mockFindByContactID(ctx, contactID)
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func record(receipt, date string, fees, paid int64) ledger.PaymentRecord {
	return ledger.PaymentRecord{
		ReceiptNumber: receipt,
		Course:        "Data Science",
		CourseFees:    decimal.NewFromInt(fees),
		PaidAmount:    decimal.NewFromInt(paid),
		Date:          day(date),
		DateValid:     true,
	}
}

// twoInstallments is a 50000 course paid 20000 then 30000
func twoInstallments() []ledger.PaymentRecord {
	return []ledger.PaymentRecord{
		record("R2", "2024-02-01", 50000, 30000),
		record("R1", "2024-01-01", 50000, 20000),
	}
}
