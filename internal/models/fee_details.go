package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/edufees-api/internal/format"
	"github.com/sjperalta/edufees-api/internal/ledger"
)

// LedgerEntryResponse is the JSON response format for a ledger row
type LedgerEntryResponse struct {
	ReceiptNumber   string     `json:"receipt_number"`
	Course          string     `json:"course"`
	CourseFees      float64    `json:"course_fees"`
	PaidAmount      float64    `json:"paid_amount"`
	RunningBalance  float64    `json:"running_balance"`
	SettledBalance  float64    `json:"settled_balance"`
	ReportedBalance float64    `json:"reported_balance"`
	Date            *time.Time `json:"date"`
	Status          string     `json:"status"`
	IsLatest        bool       `json:"is_latest"`

	// Display strings
	CourseFeesDisplay     string `json:"course_fees_display"`
	PaidAmountDisplay     string `json:"paid_amount_display"`
	SettledBalanceDisplay string `json:"settled_balance_display"`
	DateDisplay           string `json:"date_display"`
}

// SummaryResponse is the JSON response format for fee totals
type SummaryResponse struct {
	TotalAmount    float64    `json:"total_amount"`
	TotalPaid      float64    `json:"total_paid"`
	TotalDue       float64    `json:"total_due"`
	TotalPayments  int        `json:"total_payments"`
	CurrentBalance float64    `json:"current_balance"`
	CurrentStatus  string     `json:"current_status,omitempty"`
	OpeningBalance float64    `json:"opening_balance"`
	FeesConsistent bool       `json:"fees_consistent"`
	AsOf           *time.Time `json:"as_of,omitempty"`

	TotalAmountDisplay    string `json:"total_amount_display"`
	TotalPaidDisplay      string `json:"total_paid_display"`
	TotalDueDisplay       string `json:"total_due_display"`
	CurrentBalanceDisplay string `json:"current_balance_display"`
}

// Amount converts a decimal into a float rounded to cents for JSON output
func Amount(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// NewLedgerEntryResponse converts a ledger entry into its response format
func NewLedgerEntryResponse(e ledger.LedgerEntry) LedgerEntryResponse {
	resp := LedgerEntryResponse{
		ReceiptNumber:         e.ReceiptNumber,
		Course:                e.Course,
		CourseFees:            Amount(e.CourseFees),
		PaidAmount:            Amount(e.PaidAmount),
		RunningBalance:        Amount(e.RunningBalance),
		SettledBalance:        Amount(e.SettledBalance),
		ReportedBalance:       Amount(e.ReportedBalance),
		Status:                string(e.Status),
		CourseFeesDisplay:     format.Rupees(e.CourseFees),
		PaidAmountDisplay:     format.Rupees(e.PaidAmount),
		SettledBalanceDisplay: format.Rupees(e.SettledBalance),
		DateDisplay:           format.Date(e.Date, e.DateValid),
	}
	if e.DateValid {
		date := e.Date
		resp.Date = &date
	}
	return resp
}

// NewLedgerResponse converts a whole ledger, keeping its order. latest is the
// index of the most recent entry within entries, or -1.
func NewLedgerResponse(entries []ledger.LedgerEntry, latest int) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, 0, len(entries))
	for i, e := range entries {
		resp := NewLedgerEntryResponse(e)
		resp.IsLatest = i == latest
		responses = append(responses, resp)
	}
	return responses
}

// NewSummaryResponse converts a ledger summary into its response format
func NewSummaryResponse(s ledger.Summary) SummaryResponse {
	return SummaryResponse{
		TotalAmount:           Amount(s.TotalAmount),
		TotalPaid:             Amount(s.TotalPaid),
		TotalDue:              Amount(s.TotalDue),
		TotalPayments:         s.TotalPayments,
		CurrentBalance:        Amount(s.CurrentBalance),
		CurrentStatus:         string(s.CurrentStatus),
		OpeningBalance:        Amount(s.OpeningBalance),
		FeesConsistent:        s.FeesConsistent,
		AsOf:                  s.AsOf,
		TotalAmountDisplay:    format.Rupees(s.TotalAmount),
		TotalPaidDisplay:      format.Rupees(s.TotalPaid),
		TotalDueDisplay:       format.Rupees(s.TotalDue),
		CurrentBalanceDisplay: format.Rupees(s.CurrentBalance),
	}
}
