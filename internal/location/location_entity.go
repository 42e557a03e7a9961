package location

import (
	"time"

	"github.com/google/uuid"
)

type Location struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_locations_company_code"`
	Name           string    `gorm:"size:255;not null"`
	Code           string    `gorm:"size:50;not null;uniqueIndex:uq_locations_company_code"`
	Address        string    `gorm:"size:512"`
	City           string    `gorm:"size:128"`
	State          string    `gorm:"size:128"`
	Country        string    `gorm:"size:128"`
	PostalCode     string    `gorm:"size:32"`
	Timezone       string    `gorm:"size:64"`
	Phone          string    `gorm:"size:50"`
	Email          string    `gorm:"size:255"`
	IsHeadquarters bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
