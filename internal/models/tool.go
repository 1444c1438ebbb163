package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tool is a catalog entry users can subscribe to (meal planner, chore
// board, budget tracker and so on). Price is the monthly charge.
type Tool struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `gorm:"size:50;index" json:"category"`
	Price       float64        `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	Active      bool           `gorm:"default:true" json:"active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
