package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Calendar event frequencies.
const (
	FrequencyOneTime = "one_time"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyAnnual  = "annual"
)

// CalendarEvent is a recurrence definition. Dates are stored as
// YYYY-MM-DD strings and always interpreted as local calendar dates.
// Occurrences are expanded on read and never persisted.
type CalendarEvent struct {
	ID          uuid.UUID                `gorm:"type:uuid;primaryKey" json:"id"`
	HouseholdID uuid.UUID                `gorm:"type:uuid;not null;index" json:"household_id"`
	UserID      uuid.UUID                `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string                   `gorm:"size:200;not null" json:"title"`
	Description string                   `gorm:"type:text" json:"description"`
	Frequency   string                   `gorm:"size:20;not null" json:"frequency"`
	StartDate   string                   `gorm:"size:10;not null" json:"start_date"`
	EndDate     *string                  `gorm:"size:10" json:"end_date,omitempty"`
	DaysOfWeek  datatypes.JSONSlice[int] `json:"days_of_week,omitempty"`
	DayOfMonth  int                      `json:"day_of_month,omitempty"`
	EventTime   string                   `gorm:"size:5" json:"event_time,omitempty"`
	Metadata    datatypes.JSON           `gorm:"type:jsonb;default:'{}'" json:"metadata,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
	DeletedAt   gorm.DeletedAt           `gorm:"index" json:"-"`
}
