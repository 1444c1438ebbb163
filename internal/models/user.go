package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a household member account.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	HouseholdID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_users_household_email" json:"household_id"`
	Email       string         `gorm:"not null;size:255;uniqueIndex:idx_users_household_email" json:"email"`
	Password    string         `gorm:"not null" json:"-"`
	Name        string         `gorm:"size:100" json:"name"`
	Role        string         `gorm:"size:20;default:'member'" json:"role"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
