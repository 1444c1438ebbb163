package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Pet struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	HouseholdID uuid.UUID      `gorm:"type:uuid;not null;index" json:"household_id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Species     string         `gorm:"size:50" json:"species"`
	Breed       string         `gorm:"size:100" json:"breed"`
	BirthDate   *time.Time     `json:"birth_date,omitempty"`
	VetName     string         `gorm:"size:100" json:"vet_name"`
	VetPhone    string         `gorm:"size:30" json:"vet_phone"`
	FoodNotes   string         `gorm:"type:text" json:"food_notes"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
