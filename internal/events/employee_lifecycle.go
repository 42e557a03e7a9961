package events

import "time"

const EmployeeLifecycleTopic = "hr.employee.lifecycle.v1"

const (
	EmployeeCreated       = "employee.created"
	EmployeeUpdated       = "employee.updated"
	EmployeeDeleted       = "employee.deleted"
	EmployeeRestored      = "employee.restored"
	EmployeeTerminated    = "employee.terminated"
	EmployeeStatusChanged = "employee.status_changed"
)

type EmployeeLifecycleEvent struct {
	EventType      string    `json:"event_type"`
	EmployeeID     string    `json:"employee_id"`
	CompanyID      string    `json:"company_id"`
	EmployeeNumber string    `json:"employee_number,omitempty"`
	Status         string    `json:"status,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
