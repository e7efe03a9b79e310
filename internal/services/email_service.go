package services

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/resend/resend-go/v2"
	"github.com/sjperalta/edufees-api/internal/config"
	"github.com/sjperalta/edufees-api/internal/format"
	"github.com/sjperalta/edufees-api/pkg/logger"
)

//go:embed templates/email/*.html
var emailTemplates embed.FS

// reminderPaymentLimit caps the payments listed in a reminder
const reminderPaymentLimit = 5

// emailSender is the part of the resend client the service uses
type emailSender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type EmailService struct {
	config *config.Config
	sender emailSender
}

func NewEmailService(cfg *config.Config) *EmailService {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &EmailService{
		config: cfg,
		sender: client.Emails,
	}
}

type reminderPayment struct {
	Receipt string
	Course  string
	Paid    string
	Due     string
	Date    string
}

// SendBalanceReminder emails the student their outstanding balance.
// Returns ErrNothingDue when the current balance is not positive.
func (s *EmailService) SendBalanceReminder(ctx context.Context, to string, details *FeeDetails) error {
	if !details.Summary.CurrentBalance.IsPositive() {
		return ErrNothingDue
	}
	if err := s.checkEmailPreconditions(to); err != nil {
		return err
	}

	data := struct {
		Name           string
		ContactID      string
		CurrentBalance string
		TotalAmount    string
		TotalPaid      string
		TotalDue       string
		AsOf           string
		Payments       []reminderPayment
	}{
		Name:           details.Student.Name,
		ContactID:      details.Student.ContactID,
		CurrentBalance: format.Rupees(details.Summary.CurrentBalance),
		TotalAmount:    format.Rupees(details.Summary.TotalAmount),
		TotalPaid:      format.Rupees(details.Summary.TotalPaid),
		TotalDue:       format.Rupees(details.Summary.TotalDue),
	}
	if data.Name == "" {
		data.Name = "Student"
	}
	if details.Summary.AsOf != nil {
		data.AsOf = format.Date(*details.Summary.AsOf, true)
	}
	for i, e := range details.NewestFirst() {
		if i == reminderPaymentLimit {
			break
		}
		data.Payments = append(data.Payments, reminderPayment{
			Receipt: e.ReceiptNumber,
			Course:  e.Course,
			Paid:    format.Rupees(e.PaidAmount),
			Due:     format.Rupees(e.SettledBalance),
			Date:    format.Date(e.Date, e.DateValid),
		})
	}

	body, err := s.renderTemplate("balance_reminder.html", data)
	if err != nil {
		return err
	}

	subject := "Fee balance reminder"
	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}
	if _, err := s.sender.Send(params); err != nil {
		logger.Error("Failed to send email", "to", to, "subject", subject, "error", err)
		return fmt.Errorf("failed to send balance reminder: %w", err)
	}

	logger.Info("📧 [Email Sent]", "to", to, "subject", subject, "contact_id", details.Student.ContactID)
	return nil
}

// checkEmailPreconditions verifies that email is configured and the recipient is usable
func (s *EmailService) checkEmailPreconditions(to string) error {
	if s.config.ResendAPIKey == "" {
		return errors.New("RESEND_API_KEY is not set")
	}
	if s.config.FromEmail == "" {
		return errors.New("FROM_EMAIL is not set")
	}
	if strings.TrimSpace(to) == "" {
		return ErrNoEmail
	}
	return nil
}

func (s *EmailService) renderTemplate(name string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(emailTemplates, "templates/email/"+name)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}
