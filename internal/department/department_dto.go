package department

type CreateDepartmentRequest struct {
	Name        string  `json:"name" binding:"required"`
	Code        string  `json:"code" binding:"required"`
	Description string  `json:"description"`
	ParentID    *string `json:"parent_id" binding:"omitempty,uuid"`
	LocationID  *string `json:"location_id" binding:"omitempty,uuid"`
	ManagerID   *string `json:"manager_id" binding:"omitempty,uuid"`
}

type UpdateDepartmentRequest struct {
	Name        *string `json:"name"`
	Code        *string `json:"code"`
	Description *string `json:"description"`
	ParentID    *string `json:"parent_id" binding:"omitempty,uuid"`
	LocationID  *string `json:"location_id" binding:"omitempty,uuid"`
	ManagerID   *string `json:"manager_id" binding:"omitempty,uuid"`
	// ClearParent moves the department to the root level. ParentID wins when
	// both are supplied.
	ClearParent bool `json:"clear_parent"`
}

type MoveDepartmentRequest struct {
	ParentID *string `json:"parent_id" binding:"omitempty,uuid"`
}

type SetManagerRequest struct {
	ManagerID *string `json:"manager_id" binding:"omitempty,uuid"`
}

type DepartmentResponse struct {
	ID          string  `json:"id"`
	CompanyID   string  `json:"company_id"`
	ParentID    *string `json:"parent_id"`
	LocationID  *string `json:"location_id"`
	ManagerID   *string `json:"manager_id"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Description string  `json:"description,omitempty"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

// DepartmentDetailResponse adds the computed placement of the department in
// the hierarchy.
type DepartmentDetailResponse struct {
	DepartmentResponse
	Depth int    `json:"depth"`
	Path  string `json:"path"`
}

type TreeNode struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Code      string     `json:"code"`
	ManagerID *string    `json:"manager_id"`
	IsActive  bool       `json:"is_active"`
	Children  []TreeNode `json:"children"`
}
