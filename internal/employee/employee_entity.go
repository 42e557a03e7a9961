package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive     = "active"
	StatusOnLeave    = "on_leave"
	StatusSuspended  = "suspended"
	StatusTerminated = "terminated"
)

const (
	EmploymentFullTime = "full_time"
	EmploymentPartTime = "part_time"
	EmploymentContract = "contract"
	EmploymentIntern   = "intern"
)

type Employee struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:uq_employees_company_number"`
	UserID       *uuid.UUID `gorm:"type:uuid;index"`
	DepartmentID *uuid.UUID `gorm:"type:uuid;index"`
	JobTitleID   *uuid.UUID `gorm:"type:uuid;index"`
	LocationID   *uuid.UUID `gorm:"type:uuid;index"`

	EmployeeNumber string `gorm:"type:varchar(20);not null;uniqueIndex:uq_employees_company_number"`
	FirstName      string `gorm:"type:varchar(100);not null"`
	LastName       string `gorm:"type:varchar(100);not null"`
	Email          string `gorm:"type:varchar(255);not null;index"`
	Phone          string `gorm:"type:varchar(50)"`

	DateOfBirth   *time.Time `gorm:"type:date"`
	Gender        string     `gorm:"type:varchar(20)"`
	MaritalStatus string     `gorm:"type:varchar(20)"`
	Address       string     `gorm:"type:text"`
	City          string     `gorm:"type:varchar(100)"`
	Country       string     `gorm:"type:varchar(100)"`

	HireDate          time.Time  `gorm:"type:date;not null"`
	ProbationEndDate  *time.Time `gorm:"type:date"`
	TerminationDate   *time.Time `gorm:"type:date"`
	TerminationReason string     `gorm:"type:text"`
	Status            string     `gorm:"type:varchar(20);not null;default:active"`
	EmploymentType    string     `gorm:"type:varchar(20);not null;default:full_time"`

	Salary   *float64 `gorm:"type:numeric(12,2)"`
	Currency string   `gorm:"type:varchar(3);default:USD"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// EmployeeManager is one reporting line. An employee may have several
// concurrent managers but at most one primary one.
type EmployeeManager struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ManagerID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	IsPrimary  bool       `gorm:"not null;default:false"`
	StartedAt  time.Time  `gorm:"type:date;not null"`
	EndedAt    *time.Time `gorm:"type:date"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (EmployeeManager) TableName() string {
	return "employee_managers"
}

type EmergencyContact struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:varchar(150);not null"`
	Relationship string    `gorm:"type:varchar(50)"`
	Phone        string    `gorm:"type:varchar(50);not null"`
	Email        string    `gorm:"type:varchar(255)"`
	IsPrimary    bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (EmergencyContact) TableName() string {
	return "emergency_contacts"
}
