package ledger

// Status is the settlement state of a single ledger entry
type Status string

const (
	StatusPaid    Status = "Paid"
	StatusPending Status = "Pending"
	StatusPartial Status = "Partial"
	StatusUnknown Status = "Unknown"
)

// Classify derives the status of an entry from its own settled balance,
// paid amount and course fees. Rules are checked in order; the first match wins.
func Classify(entry LedgerEntry) Status {
	settled := entry.SettledBalance
	paid := entry.PaidAmount
	fees := entry.CourseFees

	switch {
	case settled.IsZero() && paid.IsPositive():
		return StatusPaid
	case settled.Equal(fees) && paid.IsZero():
		return StatusPending
	case settled.IsPositive() && paid.IsPositive() && settled.LessThan(fees):
		return StatusPartial
	default:
		return StatusUnknown
	}
}
