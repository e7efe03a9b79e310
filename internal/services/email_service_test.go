package services

import (
	"context"
	"errors"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/sjperalta/edufees-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmailSender struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (f *fakeEmailSender) Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, params)
	return &resend.SendEmailResponse{Id: "email-1"}, nil
}

func owingDetails() *FeeDetails {
	details := NewFeeService(&mockRecordSource{}, 1).Reconcile(twoInstallments()[1:])
	details.Student.ContactID = "C-100"
	details.Student.Name = "Asha Rao"
	return details
}

func TestEmailService_SendBalanceReminder(t *testing.T) {
	sender := &fakeEmailSender{}
	service := &EmailService{
		config: &config.Config{ResendAPIKey: "test_key", FromEmail: "fees@example.com"},
		sender: sender,
	}

	err := service.SendBalanceReminder(context.Background(), "asha@example.com", owingDetails())
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, "fees@example.com", msg.From)
	assert.Equal(t, []string{"asha@example.com"}, msg.To)
	assert.Equal(t, "Fee balance reminder", msg.Subject)
	assert.Contains(t, msg.Html, "Hello Asha Rao")
	assert.Contains(t, msg.Html, "₹30,000.00")
	assert.Contains(t, msg.Html, "1/1/2024")
}

func TestEmailService_SendBalanceReminder_Preconditions(t *testing.T) {
	paidUp := NewFeeService(&mockRecordSource{}, 1).Reconcile(twoInstallments())

	tests := []struct {
		name    string
		cfg     *config.Config
		to      string
		details *FeeDetails
		wantErr error
		wantMsg string
	}{
		{
			name:    "nothing due",
			cfg:     &config.Config{ResendAPIKey: "test_key", FromEmail: "fees@example.com"},
			to:      "asha@example.com",
			details: paidUp,
			wantErr: ErrNothingDue,
		},
		{
			name:    "missing api key",
			cfg:     &config.Config{FromEmail: "fees@example.com"},
			to:      "asha@example.com",
			details: owingDetails(),
			wantMsg: "RESEND_API_KEY is not set",
		},
		{
			name:    "empty recipient",
			cfg:     &config.Config{ResendAPIKey: "test_key", FromEmail: "fees@example.com"},
			to:      "  ",
			details: owingDetails(),
			wantErr: ErrNoEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeEmailSender{}
			service := &EmailService{config: tt.cfg, sender: sender}

			err := service.SendBalanceReminder(context.Background(), tt.to, tt.details)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
			assert.Empty(t, sender.sent)
		})
	}
}

func TestEmailService_SendBalanceReminder_SendError(t *testing.T) {
	service := &EmailService{
		config: &config.Config{ResendAPIKey: "test_key", FromEmail: "fees@example.com"},
		sender: &fakeEmailSender{err: errors.New("rate limited")},
	}

	err := service.SendBalanceReminder(context.Background(), "asha@example.com", owingDetails())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}
