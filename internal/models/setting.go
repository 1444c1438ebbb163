package models

import "time"

// Setting keys used by the billing core.
const (
	SettingPlatformFeeAmount = "platform_fee_amount"
)

// Setting is a global key/value row for operator-tunable values.
type Setting struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"size:255;not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
