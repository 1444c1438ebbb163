package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShoppingList struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	HouseholdID uuid.UUID      `gorm:"type:uuid;not null;index" json:"household_id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Items       []ShoppingItem `gorm:"foreignKey:ListID" json:"items,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type ShoppingItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ListID    uuid.UUID `gorm:"type:uuid;not null;index" json:"list_id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Quantity  int       `gorm:"default:1" json:"quantity"`
	Checked   bool      `gorm:"default:false" json:"checked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
