package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/edufees-api/internal/config"
	"github.com/sjperalta/edufees-api/internal/jobs"
	"github.com/sjperalta/edufees-api/internal/ledger"
	"github.com/sjperalta/edufees-api/internal/middleware"
	"github.com/sjperalta/edufees-api/internal/models"
	"github.com/sjperalta/edufees-api/internal/services"
	"github.com/sjperalta/edufees-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

// Mock RecordSource keyed by contact ID
type mockRecordSource struct {
	records map[string][]ledger.PaymentRecord
	block   chan struct{}
}

func (m *mockRecordSource) FetchPayments(ctx context.Context, session models.StudentSession) ([]ledger.PaymentRecord, error) {
	if m.block != nil {
		<-m.block
	}
	records, ok := m.records[session.ContactID]
	if !ok {
		return nil, errors.New("student not found upstream")
	}
	return records, nil
}

func payment(receipt, date string, fees, paid int64) ledger.PaymentRecord {
	d, _ := time.Parse("2006-01-02", date)
	return ledger.PaymentRecord{
		ReceiptNumber: receipt,
		Course:        "Web Development",
		CourseFees:    decimal.NewFromInt(fees),
		PaidAmount:    decimal.NewFromInt(paid),
		Date:          d,
		DateValid:     true,
	}
}

func newTestSource() *mockRecordSource {
	return &mockRecordSource{records: map[string][]ledger.PaymentRecord{
		// paid in full
		"C-1": {
			payment("R2", "2024-02-01", 50000, 30000),
			payment("R1", "2024-01-01", 50000, 20000),
		},
		// 25000 outstanding
		"C-2": {
			payment("R3", "2024-03-01", 40000, 15000),
		},
	}}
}

func setupTestRouter(t *testing.T, source services.RecordSource) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	worker := jobs.NewWorker(2)
	t.Cleanup(worker.Shutdown)

	cfg := &config.Config{
		BatchConcurrency:   2,
		StatementRetention: time.Hour,
		FromEmail:          "fees@example.com",
	}
	svcs := services.NewServices(source, worker, store, cfg)

	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), NewHandlers(svcs, worker, config.SourceUpstream), testSecret)
	return router
}

func bearer(t *testing.T, contactID, role string) string {
	t.Helper()
	token, err := middleware.GenerateToken(testSecret, middleware.Claims{
		ContactID: contactID,
		Name:      "Test " + contactID,
		Email:     contactID + "@example.com",
		Role:      role,
	}, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(router *gin.Engine, method, path, auth string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeDetails(t *testing.T, w *httptest.ResponseRecorder) FeeDetailsResponse {
	t.Helper()
	var resp FeeDetailsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	router := setupTestRouter(t, newTestSource())

	w := doRequest(router, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestFeeHandler_Show(t *testing.T) {
	router := setupTestRouter(t, newTestSource())

	w := doRequest(router, http.MethodGet, "/api/v1/students/C-1/fees", bearer(t, "C-1", models.RoleStudent), nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeDetails(t, w)
	assert.Equal(t, OrderDesc, resp.Order)
	require.Len(t, resp.Payments, 2)
	assert.Equal(t, "R2", resp.Payments[0].ReceiptNumber)
	assert.True(t, resp.Payments[0].IsLatest)
	assert.False(t, resp.Payments[1].IsLatest)
	assert.Equal(t, "Paid", resp.Payments[0].Status)
	assert.Equal(t, "Partial", resp.Payments[1].Status)
	assert.Equal(t, 30000.0, resp.Payments[1].SettledBalance)
	assert.Equal(t, "₹30,000.00", resp.Payments[1].SettledBalanceDisplay)
	assert.Equal(t, "1/1/2024", resp.Payments[1].DateDisplay)

	assert.Equal(t, 50000.0, resp.Summary.TotalAmount)
	assert.Equal(t, 50000.0, resp.Summary.TotalPaid)
	assert.Equal(t, 0.0, resp.Summary.TotalDue)
	assert.Equal(t, 2, resp.Summary.TotalPayments)
	require.NotNil(t, resp.Student)
	assert.Equal(t, "C-1", resp.Student.ContactID)
}

func TestFeeHandler_Show_Ascending(t *testing.T) {
	router := setupTestRouter(t, newTestSource())

	w := doRequest(router, http.MethodGet, "/api/v1/students/C-1/fees?order=asc", bearer(t, "C-1", models.RoleStudent), nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeDetails(t, w)
	require.Len(t, resp.Payments, 2)
	assert.Equal(t, "R1", resp.Payments[0].ReceiptNumber)
	assert.True(t, resp.Payments[1].IsLatest)
}

func TestFeeHandler_Show_Errors(t *testing.T) {
	router := setupTestRouter(t, newTestSource())

	tests := []struct {
		name       string
		path       string
		auth       string
		wantStatus int
	}{
		{"invalid order", "/api/v1/students/C-1/fees?order=sideways", bearer(t, "C-1", models.RoleStudent), http.StatusBadRequest},
		{"other student", "/api/v1/students/C-2/fees", bearer(t, "C-1", models.RoleStudent), http.StatusForbidden},
		{"unauthenticated", "/api/v1/students/C-1/fees", "", http.StatusUnauthorized},
		{"upstream failure", "/api/v1/students/C-404/fees", bearer(t, "S-1", models.RoleStaff), http.StatusBadGateway},
		{"staff reads student", "/api/v1/students/C-2/fees", bearer(t, "S-1", models.RoleStaff), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodGet, tt.path, tt.auth, nil)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestFeeHandler_Reconcile(t *testing.T) {
	router := setupTestRouter(t, newTestSource())
	auth := bearer(t, "C-1", models.RoleStudent)

	tests := []struct {
		name         string
		body         string
		wantStatus   int
		wantPayments int
		wantDue      float64
	}{
		{
			name:         "wrapped payments",
			body:         `{"payments":[{"Receipt":"A","courseFees":"50,000","Paid":20000,"Dates":"2024-01-01"},{"Receipt":"B","courseFees":50000,"Paid":"30000","Dates":"2024-02-01"}]}`,
			wantStatus:   http.StatusOK,
			wantPayments: 2,
			wantDue:      0,
		},
		{
			name:         "bare array",
			body:         `[{"receipt_number":"A","course_fees":40000,"paid_amount":15000,"payment_date":"2024-03-01"}]`,
			wantStatus:   http.StatusOK,
			wantPayments: 1,
			wantDue:      25000,
		},
		{
			name:         "null payments",
			body:         `{"payments":null}`,
			wantStatus:   http.StatusOK,
			wantPayments: 0,
		},
		{
			name:       "not a list",
			body:       `{"payments":{"Receipt":"A"}}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid json",
			body:       `{"payments":[`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodPost, "/api/v1/fees/reconcile", auth, []byte(tt.body))
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}
			resp := decodeDetails(t, w)
			assert.Len(t, resp.Payments, tt.wantPayments)
			assert.Equal(t, tt.wantDue, resp.Summary.TotalDue)
			assert.Nil(t, resp.Student)
		})
	}
}

func TestFeeHandler_Batch(t *testing.T) {
	router := setupTestRouter(t, newTestSource())
	body := []byte(`{"students":[{"contact_id":"C-2","name":"Ravi"},{"contact_id":"C-404"},{"contact_id":"C-1"}]}`)

	w := doRequest(router, http.MethodPost, "/api/v1/fees/batch", bearer(t, "C-1", models.RoleStudent), body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/fees/batch", bearer(t, "S-1", models.RoleStaff), body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data   []BatchResultResponse `json:"data"`
		Total  int                   `json:"total"`
		Failed int                   `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Data, 3)

	assert.Equal(t, "C-2", resp.Data[0].ContactID)
	assert.Equal(t, "Ravi", resp.Data[0].Name)
	require.NotNil(t, resp.Data[0].Summary)
	assert.Equal(t, 25000.0, resp.Data[0].Summary.CurrentBalance)

	assert.Equal(t, "C-404", resp.Data[1].ContactID)
	assert.Nil(t, resp.Data[1].Summary)
	assert.NotEmpty(t, resp.Data[1].Error)

	assert.Equal(t, "C-1", resp.Data[2].ContactID)

	w = doRequest(router, http.MethodPost, "/api/v1/fees/batch", bearer(t, "S-1", models.RoleAdmin), []byte(`{"students":[]}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFeeHandler_Remind(t *testing.T) {
	router := setupTestRouter(t, newTestSource())
	staff := bearer(t, "S-1", models.RoleStaff)

	tests := []struct {
		name       string
		path       string
		auth       string
		body       string
		wantStatus int
	}{
		{"student cannot send", "/api/v1/students/C-2/fees/reminder", bearer(t, "C-2", models.RoleStudent), `{"email":"ravi@example.com"}`, http.StatusForbidden},
		{"missing email", "/api/v1/students/C-2/fees/reminder", staff, `{}`, http.StatusBadRequest},
		{"nothing due", "/api/v1/students/C-1/fees/reminder", staff, `{"email":"asha@example.com"}`, http.StatusUnprocessableEntity},
		{"balance due", "/api/v1/students/C-2/fees/reminder", staff, `{"email":"ravi@example.com","name":"Ravi"}`, http.StatusAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodPost, tt.path, tt.auth, []byte(tt.body))
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

func TestFeeHandler_Remind_RecordsRequester(t *testing.T) {
	router := setupTestRouter(t, newTestSource())

	w := doRequest(router, http.MethodPost, "/api/v1/students/C-2/fees/reminder", bearer(t, "S-1", models.RoleStaff), []byte(`{"email":"ravi@example.com"}`))
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "C-2", resp["contact_id"])
	assert.Equal(t, "S-1@example.com", resp["requested_by"])
	assert.Equal(t, 25000.0, resp["current_balance"])
}
