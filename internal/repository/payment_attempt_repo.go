package repository

import (
	"context"
	"errors"
	"time"

	"cricketleague/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentAttemptRepository struct {
	db *gorm.DB
}

func NewPaymentAttemptRepository(db *gorm.DB) *PaymentAttemptRepository {
	return &PaymentAttemptRepository{db: db}
}

func (r *PaymentAttemptRepository) Create(ctx context.Context, a *domain.PaymentAttempt) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *PaymentAttemptRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.PaymentAttempt, error) {
	var a domain.PaymentAttempt
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PaymentAttemptRepository) ListByRegistration(ctx context.Context, registrationID int64) ([]domain.PaymentAttempt, error) {
	var rows []domain.PaymentAttempt
	err := r.db.WithContext(ctx).
		Where("registration_id = ?", registrationID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// MarkOutcomeIdempotent resolves an attempt exactly once. A second resolution
// of an already-terminal row reports changed=false and leaves it untouched,
// so racing cleanup paths (dismiss vs explicit cancel) converge on one state.
func (r *PaymentAttemptRepository) MarkOutcomeIdempotent(ctx context.Context, orderID string, outcome domain.AttemptOutcome, paymentID, reason string, paidAt *time.Time) (bool, error) {
	var changed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a domain.PaymentAttempt
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("order_id = ?", orderID).First(&a).Error; err != nil {
			return err
		}
		if a.Outcome != domain.AttemptPending {
			changed = false
			return nil
		}

		updates := map[string]interface{}{
			"outcome":        outcome,
			"payment_id":     paymentID,
			"failure_reason": reason,
		}
		if paidAt != nil {
			updates["paid_at"] = *paidAt
		}
		res := tx.Model(&domain.PaymentAttempt{}).Where("order_id = ?", orderID).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("payment attempt row not updated")
		}
		changed = true
		return nil
	})
	return changed, err
}
