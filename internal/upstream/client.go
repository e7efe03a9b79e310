// Package upstream talks to the student portal API that owns the fee records
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sjperalta/edufees-api/internal/ledger"
	"github.com/sjperalta/edufees-api/internal/models"
	"github.com/sjperalta/edufees-api/pkg/logger"
)

// maxBodySize caps the fee details response body (4 MB)
const maxBodySize = 4 << 20

// ErrRejected is returned when the portal answers with success=false
var ErrRejected = errors.New("upstream rejected the request")

// StatusError is returned for non-2xx responses
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// feeDetailsEnvelope mirrors GET /api/feedetails
type feeDetailsEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		Payments json.RawMessage `json:"payments"`
	} `json:"data"`
}

// Client fetches raw payment records from the portal API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a portal API client
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchPayments returns the student's payment records in the order the portal sent them
func (c *Client) FetchPayments(ctx context.Context, session models.StudentSession) ([]ledger.PaymentRecord, error) {
	params := url.Values{}
	if session.Name != "" {
		params.Set("name", session.Name)
	}
	if session.ContactID != "" {
		params.Set("contactId", session.ContactID)
	}

	endpoint := fmt.Sprintf("%s/api/feedetails?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build fee details request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fee details: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read fee details: %w", err)
	}

	logger.Debug("Upstream fee details fetched",
		"contact_id", session.ContactID,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 512)}
	}

	var envelope feeDetailsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode fee details: %w", err)
	}

	if !envelope.Success {
		msg := envelope.Message
		if msg == "" {
			msg = "Failed to fetch payment details"
		}
		return nil, fmt.Errorf("%w: %s", ErrRejected, msg)
	}

	records, err := ledger.DecodeRecords(envelope.Data.Payments)
	if err != nil {
		return nil, fmt.Errorf("invalid payments in fee details: %w", err)
	}
	return records, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
