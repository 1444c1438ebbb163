package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription statuses. A purchase starts in trial, becomes active once
// the trial expires (or by admin action), moves to pending_cancellation
// when the user cancels (still billable until the next billing date) and
// ends up inactive once billed past the cancellation date.
const (
	SubscriptionStatusTrial               = "trial"
	SubscriptionStatusActive              = "active"
	SubscriptionStatusPendingCancellation = "pending_cancellation"
	SubscriptionStatusInactive            = "inactive"
)

type Subscription struct {
	ID                        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	ToolID                    uuid.UUID  `gorm:"type:uuid;not null;index" json:"tool_id"`
	Status                    string     `gorm:"not null;default:'trial';size:50;index" json:"status"`
	Price                     float64    `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	TrialStart                time.Time  `json:"trial_start"`
	TrialEnd                  time.Time  `json:"trial_end"`
	CancellationEffectiveDate *time.Time `json:"cancellation_effective_date,omitempty"`
	CreatedAt                 time.Time  `json:"created_at"`
	UpdatedAt                 time.Time  `json:"updated_at"`
	User                      User       `gorm:"foreignKey:UserID" json:"-"`
	Tool                      Tool       `gorm:"foreignKey:ToolID" json:"-"`
}
