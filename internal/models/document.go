package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document is a household file stored in object storage. StorageKey is
// the S3 object key, never exposed directly; downloads go through
// presigned URLs.
type Document struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	HouseholdID uuid.UUID      `gorm:"type:uuid;not null;index" json:"household_id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Category    string         `gorm:"size:50;index" json:"category"`
	StorageKey  string         `gorm:"size:512;not null" json:"-"`
	ContentType string         `gorm:"size:100" json:"content_type"`
	SizeBytes   int64          `json:"size_bytes"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
