package models

import (
	"time"

	"github.com/google/uuid"
)

// Line item types on a billing record.
const (
	BillingTypeToolSubscription = "tool_subscription"
	BillingTypePlatformFee      = "platform_fee"
)

// BillingActive statuses.
const (
	BillingStatusPending   = "pending"
	BillingStatusProcessed = "processed"
)

// BillingActive is one pending charge for the current billing period.
// Rows are ephemeral: each sync fully replaces the user's row set for the
// computed period, never patches it.
type BillingActive struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Type        string     `gorm:"size:50;not null" json:"type"`
	ToolID      *uuid.UUID `gorm:"type:uuid;index" json:"tool_id,omitempty"`
	ToolName    string     `gorm:"size:100" json:"tool_name,omitempty"`
	Amount      float64    `gorm:"type:decimal(10,2);not null" json:"amount"`
	PeriodStart time.Time  `gorm:"not null" json:"period_start"`
	PeriodEnd   time.Time  `gorm:"not null" json:"period_end"`
	BillingDate time.Time  `gorm:"not null;index" json:"billing_date"`
	Status      string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BillingHistory is the immutable archive of a BillingActive row once its
// billing date has passed. Never mutated after insert.
type BillingHistory struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Type        string     `gorm:"size:50;not null" json:"type"`
	ToolID      *uuid.UUID `gorm:"type:uuid" json:"tool_id,omitempty"`
	ToolName    string     `gorm:"size:100" json:"tool_name,omitempty"`
	Amount      float64    `gorm:"type:decimal(10,2);not null" json:"amount"`
	PeriodStart time.Time  `gorm:"not null" json:"period_start"`
	PeriodEnd   time.Time  `gorm:"not null" json:"period_end"`
	BillingDate time.Time  `gorm:"not null;index" json:"billing_date"`
	Status      string     `gorm:"size:20;not null" json:"status"`
	ProcessedAt time.Time  `gorm:"not null" json:"processed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}
