// Package ledger reconciles raw fee payment records into a chronological
// ledger with running balances, per-entry settlement status and summary totals.
//
// Everything in this package is pure: no I/O, no shared state. Functions can be
// called concurrently with different inputs.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecord is one fee transaction as received from a record source
type PaymentRecord struct {
	ReceiptNumber string          `json:"receipt_number"`
	Course        string          `json:"course"`
	CourseFees    decimal.Decimal `json:"course_fees"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Date          time.Time       `json:"date"`
	DateValid     bool            `json:"date_valid"`

	// ReportedBalance is the balance column sent by the upstream system.
	// It is informational only and never used for reconciliation.
	ReportedBalance decimal.Decimal `json:"reported_balance"`
}

// LedgerEntry is a payment record annotated with its position in the ledger
type LedgerEntry struct {
	PaymentRecord
	RunningBalance decimal.Decimal `json:"running_balance"` // may be negative on overpayment
	SettledBalance decimal.Decimal `json:"settled_balance"` // RunningBalance clamped at zero
	Status         Status          `json:"status"`
}

// Summary aggregates totals over the raw records of one student
type Summary struct {
	TotalAmount    decimal.Decimal `json:"total_amount"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	TotalDue       decimal.Decimal `json:"total_due"`
	TotalPayments  int             `json:"total_payments"`
	CurrentBalance decimal.Decimal `json:"current_balance"`

	OpeningBalance decimal.Decimal `json:"opening_balance"`
	FeesConsistent bool            `json:"fees_consistent"`
	CurrentStatus  Status          `json:"current_status,omitempty"`
	AsOf           *time.Time      `json:"as_of,omitempty"`
}
