package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// sortByDate returns a date-ascending copy of records. Records without a valid
// date carry the zero time and therefore sort first; ties keep input order.
func sortByDate(records []PaymentRecord) []PaymentRecord {
	sorted := make([]PaymentRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].effectiveDate().Before(sorted[j].effectiveDate())
	})
	return sorted
}

// OpeningBalance is the running-balance seed: the course fees of the
// earliest-dated record, or zero for an empty list.
func OpeningBalance(records []PaymentRecord) decimal.Decimal {
	if len(records) == 0 {
		return decimal.Zero
	}
	return sortByDate(records)[0].CourseFees
}

// BuildLedger replays the records oldest first and returns one entry per record
// in ascending date order. The input slice is not modified.
func BuildLedger(records []PaymentRecord) []LedgerEntry {
	entries := make([]LedgerEntry, 0, len(records))
	if len(records) == 0 {
		return entries
	}

	sorted := sortByDate(records)
	balance := sorted[0].CourseFees

	for _, record := range sorted {
		balance = balance.Sub(record.PaidAmount)

		entry := LedgerEntry{
			PaymentRecord:  record,
			RunningBalance: balance,
			SettledBalance: decimal.Max(balance, decimal.Zero),
		}
		entry.Status = Classify(entry)
		entries = append(entries, entry)
	}

	return entries
}

// NewestFirst returns a reversed copy of an ascending ledger for display
func NewestFirst(entries []LedgerEntry) []LedgerEntry {
	reversed := make([]LedgerEntry, len(entries))
	for i, entry := range entries {
		reversed[len(entries)-1-i] = entry
	}
	return reversed
}
