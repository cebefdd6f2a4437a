package domain

import "time"

type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationCompleted RegistrationStatus = "completed"
)

type PaymentState string

const (
	PaymentStatePending   PaymentState = "pending"
	PaymentStateCompleted PaymentState = "completed"
	PaymentStateFailed    PaymentState = "failed"
)

type PlayerPosition string

const (
	PositionBatting      PlayerPosition = "Batting"
	PositionBowling      PlayerPosition = "Bowling"
	PositionAllRounder   PlayerPosition = "All-Rounder"
	PositionWicketKeeper PlayerPosition = "Wicket-Keeper"
)

// Registration is one player's attempt to join the league. It is always
// created as pending/pending; status becomes completed only after the
// payment has been verified server-side.
type Registration struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	// Phone is stored normalized with the country calling code prefix.
	Phone string `json:"phone" gorm:"type:varchar(16)"`
	// DateOfBirth is the literal YYYY-MM-DD string the player picked.
	// It is never parsed into a timezone-aware instant.
	DateOfBirth     string         `json:"date_of_birth,omitempty" gorm:"type:varchar(10)"`
	State           string         `json:"state"`
	City            string         `json:"city"`
	Pincode         string         `json:"pincode" gorm:"type:varchar(10)"`
	Position        PlayerPosition `json:"position" gorm:"type:varchar(20)"`
	PreferredTrials string         `json:"preferred_trials,omitempty" gorm:"type:text"`

	Status        RegistrationStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	PaymentStatus PaymentState       `json:"payment_status" gorm:"type:varchar(20);default:'pending';index"`

	// Populated only after successful verification.
	PaymentAmount    int64  `json:"payment_amount,omitempty"`
	GatewayPaymentID string `json:"gateway_payment_id,omitempty" gorm:"type:varchar(100)"`
	GatewayOrderID   string `json:"gateway_order_id,omitempty" gorm:"type:varchar(100)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Registration) TableName() string { return "registrations" }
