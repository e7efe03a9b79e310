package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/edufees-api/internal/ledger"
)

// FeePayment is a stored fee transaction, used when records are served from
// the local database instead of the upstream portal API
type FeePayment struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ContactID     string          `gorm:"not null;index" json:"contact_id"`
	ReceiptNumber string          `gorm:"index" json:"receipt_number"`
	Course        string          `json:"course"`
	CourseFees    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"course_fees"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"paid_amount"`
	Balance       decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"balance"` // as reported by the cashier
	PaidOn        *time.Time      `gorm:"index" json:"paid_on"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName specifies the table name for FeePayment
func (FeePayment) TableName() string {
	return "fee_payments"
}

// ToRecord converts the row into a ledger input record
func (p *FeePayment) ToRecord() ledger.PaymentRecord {
	record := ledger.PaymentRecord{
		ReceiptNumber:   p.ReceiptNumber,
		Course:          p.Course,
		CourseFees:      p.CourseFees,
		PaidAmount:      p.PaidAmount,
		ReportedBalance: p.Balance,
	}
	if p.PaidOn != nil && !p.PaidOn.IsZero() {
		record.Date = *p.PaidOn
		record.DateValid = true
	}
	return record
}
