package repository

import (
	"context"

	"github.com/sjperalta/edufees-api/internal/models"

	"gorm.io/gorm"
)

// FeePaymentRepository defines the interface for stored fee payments
type FeePaymentRepository interface {
	FindByContactID(ctx context.Context, contactID string) ([]models.FeePayment, error)
}

// feePaymentRepository handles database operations for fee payments
type feePaymentRepository struct {
	db *gorm.DB
}

// NewFeePaymentRepository creates a new fee payment repository
func NewFeePaymentRepository(db *gorm.DB) FeePaymentRepository {
	return &feePaymentRepository{db: db}
}

// FindByContactID returns a student's payments in insertion order.
// Chronological ordering is left to the ledger builder.
func (r *feePaymentRepository) FindByContactID(ctx context.Context, contactID string) ([]models.FeePayment, error) {
	var payments []models.FeePayment
	err := r.db.WithContext(ctx).
		Where("contact_id = ?", contactID).
		Order("id ASC").
		Find(&payments).Error
	return payments, err
}
