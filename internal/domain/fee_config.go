package domain

import "time"

// FeeConfigKey is the fixed key of the single remotely managed fee row.
const FeeConfigKey = "player_registration"

// Fallback values used when the remote configuration cannot be fetched.
// The base fee literal is a placeholder pending product confirmation; the
// remote value is authoritative.
const (
	DefaultRegistrationFee = 699
	DefaultGSTPercentage   = 18
)

type FeeConfiguration struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	ConfigKey       string    `gorm:"uniqueIndex;type:varchar(64);not null" json:"config_key"`
	RegistrationFee int64     `gorm:"not null" json:"registration_fee"`
	GSTPercentage   int       `gorm:"not null" json:"gst_percentage"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (FeeConfiguration) TableName() string { return "fee_configurations" }
