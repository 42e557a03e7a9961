package company

import (
	"time"

	"github.com/google/uuid"
)

// Company is the tenant root; every other directory entity hangs off one.
type Company struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name      string         `gorm:"size:255;not null"`
	Slug      string         `gorm:"size:255;not null;uniqueIndex"`
	Logo      string         `gorm:"size:512"`
	Email     string         `gorm:"size:255"`
	Phone     string         `gorm:"size:50"`
	Address   string         `gorm:"size:512"`
	Settings  map[string]any `gorm:"serializer:json"`
	IsActive  bool           `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
