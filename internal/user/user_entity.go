package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the login account linked 1:1 to an Employee. Accounts are
// provisioned by employee creation; there is no self-signup surface.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID    *uuid.UUID `gorm:"type:uuid;index"`
	Name         string     `gorm:"size:255;not null"`
	Email        string     `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string     `gorm:"size:255;not null"`
	Phone        string     `gorm:"size:50"`
	IsActive     bool       `gorm:"not null;default:true"`
	Roles        []string   `gorm:"serializer:json"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
