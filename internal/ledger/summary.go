package ledger

import (
	"github.com/shopspring/decimal"
)

// Summarize computes portfolio totals.
//
// TotalAmount is taken from the first record as received, not the earliest by
// date, so it can differ from OpeningBalance when the input is unordered.
// CurrentBalance comes from the ledger, not from the totals arithmetic.
func Summarize(records []PaymentRecord, entries []LedgerEntry) Summary {
	summary := Summary{
		TotalAmount:    decimal.Zero,
		TotalPaid:      decimal.Zero,
		TotalDue:       decimal.Zero,
		CurrentBalance: decimal.Zero,
		OpeningBalance: OpeningBalance(records),
		FeesConsistent: true,
		TotalPayments:  len(records),
	}

	for i, record := range records {
		summary.TotalPaid = summary.TotalPaid.Add(record.PaidAmount)
		if i > 0 && !record.CourseFees.Equal(records[0].CourseFees) {
			summary.FeesConsistent = false
		}
	}

	if len(records) > 0 {
		summary.TotalAmount = records[0].CourseFees
	}
	summary.TotalDue = decimal.Max(summary.TotalAmount.Sub(summary.TotalPaid), decimal.Zero)

	if len(entries) > 0 {
		latest := entries[len(entries)-1]
		summary.CurrentBalance = latest.SettledBalance
		summary.CurrentStatus = latest.Status
		if latest.DateValid {
			asOf := latest.Date
			summary.AsOf = &asOf
		}
	}

	return summary
}
