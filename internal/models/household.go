package models

import (
	"time"

	"github.com/google/uuid"
)

// Household groups user accounts that share documents, pets, goals,
// shopping lists and calendar events. Billing stays per user.
type Household struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
