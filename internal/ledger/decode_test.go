package ledger

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRecords_UpstreamShape(t *testing.T) {
	payload := `[
		{"Receipt": "RC-101", "course": "Data Science", "courseFees": "50000", "Paid": 20000, "Balance": "30000", "Dates": "2024-01-01T00:00:00.000Z"},
		{"Receipt": 102, "course": "Data Science", "courseFees": 50000, "Paid": "30,000.00", "Dates": "2024-02-01"}
	]`

	records, err := DecodeRecords([]byte(payload))
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "RC-101", first.ReceiptNumber)
	assert.Equal(t, "Data Science", first.Course)
	assert.Equal(t, "50000", first.CourseFees.String())
	assert.Equal(t, "20000", first.PaidAmount.String())
	assert.Equal(t, "30000", first.ReportedBalance.String())
	assert.True(t, first.DateValid)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), first.Date.UTC())

	second := records[1]
	assert.Equal(t, "102", second.ReceiptNumber)
	assert.Equal(t, "30000", second.PaidAmount.String())
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), second.Date)
}

func TestDecodeRecords_AlternateFieldNames(t *testing.T) {
	payload := `[{"receipt_number": "X1", "course_name": "UI/UX", "course_fees": 1200.5, "paid_amount": "200.25", "payment_date": "2024-06-10 14:30:00"}]`

	records, err := DecodeRecords([]byte(payload))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "X1", records[0].ReceiptNumber)
	assert.Equal(t, "UI/UX", records[0].Course)
	assert.Equal(t, "1200.5", records[0].CourseFees.String())
	assert.Equal(t, "200.25", records[0].PaidAmount.String())
	assert.Equal(t, time.Date(2024, 6, 10, 14, 30, 0, 0, time.UTC), records[0].Date)
}

func TestDecodeRecords_MissingFieldsBecomeZeroEntry(t *testing.T) {
	records, err := DecodeRecords([]byte(`[{}, 42, null]`))
	require.NoError(t, err)
	require.Len(t, records, 3)

	for _, record := range records {
		assert.True(t, record.CourseFees.IsZero())
		assert.True(t, record.PaidAmount.IsZero())
		assert.False(t, record.DateValid)
		assert.Empty(t, record.ReceiptNumber)
	}

	entries := BuildLedger(records)
	assert.Len(t, entries, 3)
}

func TestDecodeRecords_NullAndEmpty(t *testing.T) {
	for _, payload := range []string{"", "null", "  ", "[]"} {
		records, err := DecodeRecords([]byte(payload))
		require.NoError(t, err, "payload %q", payload)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	}
}

func TestDecodeRecords_RejectsNonArray(t *testing.T) {
	for _, payload := range []string{`{"Paid": 10}`, `"payments"`, `12`, `true`} {
		_, err := DecodeRecords([]byte(payload))
		assert.ErrorIs(t, err, ErrNotAList, "payload %s", payload)
	}
}

func TestDecodeRecords_MalformedJSON(t *testing.T) {
	_, err := DecodeRecords([]byte(`[{"Paid": 10}`))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotAList)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{`1500`, "1500"},
		{`"1500.75"`, "1500.75"},
		{`"₹ 44,900.00"`, "44900"},
		{`"Rs. 1,00,000"`, "100000"},
		{`"abc"`, "0"},
		{`""`, "0"},
		{`null`, "0"},
		{`true`, "0"},
		{`{"value": 1}`, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseAmount(json.RawMessage(tt.raw)).String())
		})
	}

	assert.True(t, ParseAmount(nil).IsZero())
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		raw   string
		valid bool
		want  time.Time
	}{
		{`"2024-03-15"`, true, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{`"2024-03-15T10:20:30Z"`, true, time.Date(2024, 3, 15, 10, 20, 30, 0, time.UTC)},
		{`"2024-03-15T10:20:30"`, true, time.Date(2024, 3, 15, 10, 20, 30, 0, time.UTC)},
		{`1710460800000`, true, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{`"not a date"`, false, time.Time{}},
		{`""`, false, time.Time{}},
		{`null`, false, time.Time{}},
		{`{}`, false, time.Time{}},
		{`8640000000000000`, true, time.UnixMilli(8640000000000000).UTC()},
		{`8640000000000001`, false, time.Time{}},
		{`1e30`, false, time.Time{}},
		{`-1e30`, false, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, valid := ParseDate(json.RawMessage(tt.raw))
			assert.Equal(t, tt.valid, valid)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}
