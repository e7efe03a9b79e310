package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotAList is returned when a payments payload is not a JSON array
var ErrNotAList = errors.New("payment records must be a JSON array")

// Field spellings accepted at the boundary, in lookup order
var (
	receiptKeys    = []string{"Receipt", "receiptNumber", "receipt_number", "receipt_no"}
	courseKeys     = []string{"course", "courseName", "course_name"}
	courseFeesKeys = []string{"courseFees", "course_fees", "CourseFees"}
	paidKeys       = []string{"Paid", "paidAmount", "paid_amount"}
	dateKeys       = []string{"Dates", "date", "paymentDate", "payment_date"}
	balanceKeys    = []string{"Balance", "balance"}
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// RawRecord holds one undecoded payment object as received from upstream.
// Non-object array elements decode to an empty record.
type RawRecord struct {
	fields map[string]json.RawMessage
}

// UnmarshalJSON implements json.Unmarshaler
func (r *RawRecord) UnmarshalJSON(data []byte) error {
	r.fields = make(map[string]json.RawMessage)
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	return json.Unmarshal(trimmed, &r.fields)
}

func (r RawRecord) lookup(keys []string) json.RawMessage {
	for _, key := range keys {
		if value, ok := r.fields[key]; ok && !isNull(value) {
			return value
		}
	}
	return nil
}

// Normalize maps the raw fields onto a PaymentRecord
func (r RawRecord) Normalize() PaymentRecord {
	date, valid := ParseDate(r.lookup(dateKeys))
	return PaymentRecord{
		ReceiptNumber:   parseText(r.lookup(receiptKeys)),
		Course:          parseText(r.lookup(courseKeys)),
		CourseFees:      ParseAmount(r.lookup(courseFeesKeys)),
		PaidAmount:      ParseAmount(r.lookup(paidKeys)),
		ReportedBalance: ParseAmount(r.lookup(balanceKeys)),
		Date:            date,
		DateValid:       valid,
	}
}

// DecodeRecords decodes a JSON array of payment objects. A JSON null or an
// empty payload yields an empty list; any other non-array value is rejected.
func DecodeRecords(data []byte) ([]PaymentRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || isNull(trimmed) {
		return []PaymentRecord{}, nil
	}
	if trimmed[0] != '[' {
		return nil, ErrNotAList
	}

	var raws []RawRecord
	if err := json.Unmarshal(trimmed, &raws); err != nil {
		return nil, fmt.Errorf("failed to decode payment records: %w", err)
	}

	records := make([]PaymentRecord, 0, len(raws))
	for _, raw := range raws {
		records = append(records, raw.Normalize())
	}
	return records, nil
}

// ParseAmount reads a JSON number or numeric string. Thousands separators,
// currency symbols and surrounding spaces are ignored; anything else is zero.
func ParseAmount(raw json.RawMessage) decimal.Decimal {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isNull(raw) {
		return decimal.Zero
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return decimal.Zero
		}
	}

	text = strings.NewReplacer(",", "", "₹", "", "Rs.", "", "INR", "", " ", "").Replace(strings.TrimSpace(text))
	if text == "" {
		return decimal.Zero
	}

	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// maxEpochMillis bounds epoch timestamps to the range a browser Date accepts
var maxEpochMillis = decimal.NewFromInt(8_640_000_000_000_000)

// ParseDate reads an ISO-like date string or epoch milliseconds. The second
// return value is false when no usable date is present.
func ParseDate(raw json.RawMessage) (time.Time, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isNull(raw) {
		return time.Time{}, false
	}

	if raw[0] != '"' {
		millis, err := decimal.NewFromString(string(raw))
		if err != nil || millis.Abs().GreaterThan(maxEpochMillis) {
			return time.Time{}, false
		}
		return time.UnixMilli(millis.IntPart()).UTC(), true
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return time.Time{}, false
	}
	text = strings.TrimSpace(text)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	// numeric receipt numbers are common upstream
	return strings.TrimSpace(string(raw))
}

func isNull(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// effectiveDate is the sort key: invalid dates collapse to the zero time
func (r PaymentRecord) effectiveDate() time.Time {
	if !r.DateValid {
		return time.Time{}
	}
	return r.Date
}
