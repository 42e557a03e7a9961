package jobtitle

type CreateJobTitleRequest struct {
	Name        string   `json:"name" binding:"required"`
	Code        string   `json:"code" binding:"required"`
	Description string   `json:"description"`
	Level       int      `json:"level" binding:"omitempty,min=1"`
	MinSalary   *float64 `json:"min_salary" binding:"omitempty,min=0"`
	MaxSalary   *float64 `json:"max_salary" binding:"omitempty,min=0"`
}

type UpdateJobTitleRequest struct {
	Name        *string  `json:"name"`
	Code        *string  `json:"code"`
	Description *string  `json:"description"`
	Level       *int     `json:"level" binding:"omitempty,min=1"`
	MinSalary   *float64 `json:"min_salary" binding:"omitempty,min=0"`
	MaxSalary   *float64 `json:"max_salary" binding:"omitempty,min=0"`
}

type JobTitleResponse struct {
	ID          string   `json:"id"`
	CompanyID   string   `json:"company_id"`
	Name        string   `json:"name"`
	Code        string   `json:"code"`
	Description string   `json:"description,omitempty"`
	Level       int      `json:"level"`
	MinSalary   *float64 `json:"min_salary"`
	MaxSalary   *float64 `json:"max_salary"`
	IsActive    bool     `json:"is_active"`
	CreatedAt   string   `json:"created_at,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
}
