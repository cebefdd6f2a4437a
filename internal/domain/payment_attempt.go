package domain

import "time"

type AttemptOutcome string

const (
	AttemptPending   AttemptOutcome = "pending"
	AttemptSucceeded AttemptOutcome = "succeeded"
	AttemptFailed    AttemptOutcome = "failed"
	AttemptCancelled AttemptOutcome = "cancelled"
)

// PaymentAttempt is one run of the payment sub-flow: a gateway order is
// created when the checkout is opened and the row is resolved exactly once.
// A failed or cancelled attempt is never retried silently; a new user action
// creates a new attempt with a new order id.
type PaymentAttempt struct {
	ID             int64          `gorm:"primaryKey" json:"id"`
	RegistrationID int64          `gorm:"index;not null" json:"registration_id"`
	OrderID        string         `gorm:"uniqueIndex;type:varchar(100);not null" json:"order_id"`
	Receipt        string         `gorm:"type:varchar(64)" json:"receipt"`
	Amount         int64          `gorm:"not null" json:"amount"`
	Currency       string         `gorm:"type:varchar(8)" json:"currency"`
	Outcome        AttemptOutcome `gorm:"type:varchar(20);default:'pending';index" json:"outcome"`
	PaymentID      string         `gorm:"type:varchar(100)" json:"payment_id,omitempty"`
	FailureReason  string         `gorm:"type:text" json:"failure_reason,omitempty"`
	PaidAt         *time.Time     `json:"paid_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (PaymentAttempt) TableName() string { return "payment_attempts" }
