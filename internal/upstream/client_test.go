package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/sjperalta/edufees-api/internal/ledger"
	"github.com/sjperalta/edufees-api/internal/models"
	"github.com/sjperalta/edufees-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Setup("test")
	os.Exit(m.Run())
}

func TestFetchPayments(t *testing.T) {
	var gotQuery, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/feedetails", r.URL.Path)
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {"payments": [
				{"Receipt": "R2", "course": "Java", "courseFees": 40000, "Paid": 10000, "Dates": "2024-02-01"},
				{"Receipt": "R1", "course": "Java", "courseFees": 40000, "Paid": 15000, "Dates": "2024-01-01"}
			]}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	records, err := client.FetchPayments(context.Background(), models.StudentSession{
		ContactID: "C-77",
		Name:      "Asha Rao",
		Token:     "tok",
	})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "contactId=C-77&name=Asha+Rao", gotQuery)
	assert.Equal(t, "Bearer tok", gotAuth)
	// input order is preserved; sorting is the ledger's job
	assert.Equal(t, "R2", records[0].ReceiptNumber)

	entries := ledger.BuildLedger(records)
	assert.Equal(t, "R1", entries[0].ReceiptNumber)
}

func TestFetchPayments_MissingPaymentsIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": true, "data": {}}`))
	}))
	defer server.Close()

	records, err := NewClient(server.URL, time.Second).FetchPayments(context.Background(), models.StudentSession{ContactID: "C-1"})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFetchPayments_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		checkFn func(t *testing.T, err error)
	}{
		{
			name:   "rejected",
			status: http.StatusOK,
			body:   `{"success": false, "message": "Student not found"}`,
			checkFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrRejected)
				assert.Contains(t, err.Error(), "Student not found")
			},
		},
		{
			name:   "server error",
			status: http.StatusBadGateway,
			body:   `oops`,
			checkFn: func(t *testing.T, err error) {
				var statusErr *StatusError
				require.True(t, errors.As(err, &statusErr))
				assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
				assert.Equal(t, "oops", statusErr.Body)
			},
		},
		{
			name:   "payments not a list",
			status: http.StatusOK,
			body:   `{"success": true, "data": {"payments": {"Paid": 1}}}`,
			checkFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ledger.ErrNotAList)
			},
		},
		{
			name:   "not json",
			status: http.StatusOK,
			body:   `<html></html>`,
			checkFn: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient(server.URL, time.Second).FetchPayments(context.Background(), models.StudentSession{ContactID: "C-1"})
			tt.checkFn(t, err)
		})
	}
}

func TestFetchPayments_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(server.URL, time.Second).FetchPayments(ctx, models.StudentSession{ContactID: "C-1"})
	assert.ErrorIs(t, err, context.Canceled)
}
