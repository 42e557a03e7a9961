package department

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Department struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID   uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:uq_departments_company_code" json:"company_id"`
	ParentID    *uuid.UUID     `gorm:"type:uuid;index" json:"parent_id"`
	LocationID  *uuid.UUID     `gorm:"type:uuid;index" json:"location_id"`
	ManagerID   *uuid.UUID     `gorm:"type:uuid" json:"manager_id"`
	Name        string         `gorm:"type:varchar(150);not null" json:"name"`
	Code        string         `gorm:"type:varchar(30);not null;uniqueIndex:uq_departments_company_code" json:"code"`
	Description string         `gorm:"type:text" json:"description"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Department) TableName() string {
	return "departments"
}
