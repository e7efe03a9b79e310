package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/edufees-api/internal/config"
	"github.com/sjperalta/edufees-api/internal/ledger"
	"github.com/sjperalta/edufees-api/internal/models"
	"github.com/sjperalta/edufees-api/internal/services"
	"github.com/sjperalta/edufees-api/pkg/logger"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger.Setup("development")

	if cfg.ResendAPIKey == "" {
		log.Fatal("RESEND_API_KEY is not set")
	}

	toEmail := os.Getenv("TEST_EMAIL_TO")
	if toEmail == "" {
		toEmail = "test@example.com"
		log.Println("TEST_EMAIL_TO not set, using test@example.com. Emails might fail if domain not verified.")
	}

	// Sample ledger with a balance due
	now := time.Now()
	records := []ledger.PaymentRecord{
		{ReceiptNumber: "RCPT-1001", Course: "Full Stack Development", CourseFees: decimal.NewFromInt(60000), PaidAmount: decimal.NewFromInt(20000), Date: now.AddDate(0, -2, 0), DateValid: true},
		{ReceiptNumber: "RCPT-1002", Course: "Full Stack Development", CourseFees: decimal.NewFromInt(60000), PaidAmount: decimal.NewFromInt(15000), Date: now.AddDate(0, -1, 0), DateValid: true},
	}
	details := services.NewFeeService(nil, 1).Reconcile(records)
	details.Student = models.StudentSession{ContactID: "TEST-001", Name: "Test Student"}

	emailService := services.NewEmailService(cfg)

	log.Printf("Sending Balance Reminder email to %s...", toEmail)
	if err := emailService.SendBalanceReminder(context.Background(), toEmail, details); err != nil {
		log.Fatalf("Failed to send Balance Reminder email: %v", err)
	}
	log.Println("Balance Reminder email sent successfully!")
}
