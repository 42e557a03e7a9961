package employee

type ManagerAssignmentRequest struct {
	ManagerID string `json:"manager_id" binding:"required,uuid"`
	IsPrimary bool   `json:"is_primary"`
}

type CreateEmployeeRequest struct {
	FirstName      string  `json:"first_name" binding:"required"`
	LastName       string  `json:"last_name" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Phone          string  `json:"phone"`
	EmployeeNumber string  `json:"employee_number"`
	DepartmentID   *string `json:"department_id" binding:"omitempty,uuid"`
	JobTitleID     *string `json:"job_title_id" binding:"omitempty,uuid"`
	LocationID     *string `json:"location_id" binding:"omitempty,uuid"`

	DateOfBirth   string `json:"date_of_birth"`
	Gender        string `json:"gender"`
	MaritalStatus string `json:"marital_status"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Country       string `json:"country"`

	HireDate         string `json:"hire_date" binding:"required"`
	ProbationEndDate string `json:"probation_end_date"`
	EmploymentType   string `json:"employment_type" binding:"omitempty,oneof=full_time part_time contract intern"`

	Salary   *float64 `json:"salary" binding:"omitempty,min=0"`
	Currency string   `json:"currency" binding:"omitempty,len=3"`

	Managers []ManagerAssignmentRequest `json:"managers" binding:"omitempty,dive"`
}

type UpdateEmployeeRequest struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Phone        *string `json:"phone"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
	JobTitleID   *string `json:"job_title_id" binding:"omitempty,uuid"`
	LocationID   *string `json:"location_id" binding:"omitempty,uuid"`

	DateOfBirth   *string `json:"date_of_birth"`
	Gender        *string `json:"gender"`
	MaritalStatus *string `json:"marital_status"`
	Address       *string `json:"address"`
	City          *string `json:"city"`
	Country       *string `json:"country"`

	ProbationEndDate *string `json:"probation_end_date"`
	EmploymentType   *string `json:"employment_type" binding:"omitempty,oneof=full_time part_time contract intern"`

	Salary   *float64 `json:"salary" binding:"omitempty,min=0"`
	Currency *string  `json:"currency" binding:"omitempty,len=3"`

	// Managers replaces the full set of reporting lines when present.
	Managers *[]ManagerAssignmentRequest `json:"managers" binding:"omitempty,dive"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active on_leave suspended"`
}

type TerminateEmployeeRequest struct {
	TerminationDate string `json:"termination_date" binding:"required"`
	Reason          string `json:"reason"`
}

type EmergencyContactRequest struct {
	Name         string `json:"name" binding:"required"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone" binding:"required"`
	Email        string `json:"email" binding:"omitempty,email"`
	IsPrimary    bool   `json:"is_primary"`
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	CompanyID      string  `json:"company_id"`
	UserID         *string `json:"user_id,omitempty"`
	DepartmentID   *string `json:"department_id"`
	JobTitleID     *string `json:"job_title_id"`
	LocationID     *string `json:"location_id"`
	EmployeeNumber string  `json:"employee_number"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone,omitempty"`

	DateOfBirth   string `json:"date_of_birth,omitempty"`
	Gender        string `json:"gender,omitempty"`
	MaritalStatus string `json:"marital_status,omitempty"`
	Address       string `json:"address,omitempty"`
	City          string `json:"city,omitempty"`
	Country       string `json:"country,omitempty"`

	HireDate          string `json:"hire_date"`
	ProbationEndDate  string `json:"probation_end_date,omitempty"`
	TerminationDate   string `json:"termination_date,omitempty"`
	TerminationReason string `json:"termination_reason,omitempty"`
	Status            string `json:"status"`
	EmploymentType    string `json:"employment_type"`

	// Salary fields are omitted entirely when the caller may not see them.
	Salary   *float64 `json:"salary,omitempty"`
	Currency string   `json:"currency,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
	DeletedAt string `json:"deleted_at,omitempty"`
}

type EmployeeOption struct {
	ID             string `json:"id"`
	FullName       string `json:"full_name"`
	EmployeeNumber string `json:"employee_number"`
}

type ManagerResponse struct {
	ManagerID string `json:"manager_id"`
	IsPrimary bool   `json:"is_primary"`
	StartedAt string `json:"started_at"`
}

type EmergencyContactResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	Name         string `json:"name"`
	Relationship string `json:"relationship,omitempty"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
	IsPrimary    bool   `json:"is_primary"`
}
