package jobtitle

import (
	"time"

	"github.com/google/uuid"
)

type JobTitle struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_job_titles_company_code" json:"company_id"`
	Name        string    `gorm:"type:varchar(150);not null" json:"name"`
	Code        string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_job_titles_company_code" json:"code"`
	Description string    `gorm:"type:text" json:"description"`
	Level       int       `gorm:"not null;default:1" json:"level"`
	MinSalary   *float64  `gorm:"type:numeric(12,2)" json:"min_salary"`
	MaxSalary   *float64  `gorm:"type:numeric(12,2)" json:"max_salary"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (JobTitle) TableName() string {
	return "job_titles"
}
