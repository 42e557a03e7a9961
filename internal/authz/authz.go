package authz

import "strings"

// Resource is an entity type as it appears in permission strings.
type Resource string

const (
	ResourceCompanies   Resource = "companies"
	ResourceLocations   Resource = "locations"
	ResourceDepartments Resource = "departments"
	ResourceJobTitles   Resource = "job_titles"
	ResourceEmployees   Resource = "employees"
	ResourceUsers       Resource = "users"
)

// Action is a requested operation on a resource.
type Action string

const (
	ActionView           Action = "view"
	ActionViewAll        Action = "view_all"
	ActionViewDepartment Action = "view_department"
	ActionCreate         Action = "create"
	ActionUpdate         Action = "update"
	ActionDelete         Action = "delete"
	ActionRestore        Action = "restore"
	ActionViewSalary     Action = "view_salary"
	ActionUpdateSalary   Action = "update_salary"
	ActionManageSettings Action = "manage_settings"
)

// Permission returns the canonical permission string, e.g. "departments.update".
func Permission(res Resource, act Action) string {
	return string(res) + "." + string(act)
}

// RoleSuperAdmin bypasses every check, including company scoping.
const RoleSuperAdmin = "super_admin"

const (
	RoleCompanyAdmin      = "company_admin"
	RoleHRManager         = "hr_manager"
	RoleDepartmentManager = "department_manager"
	RoleTeamLead          = "team_lead"
	RoleEmployee          = "employee"
)

// Actor is the authenticated principal, extracted from the JWT by the auth
// middleware. DepartmentID and EmployeeID refer to the actor's own linked
// employee record and may be empty for pure back-office accounts.
type Actor struct {
	UserID       string
	CompanyID    string
	EmployeeID   string
	DepartmentID string
	Roles        []string
}

func (a Actor) IsSuperAdmin() bool {
	for _, r := range a.Roles {
		if strings.EqualFold(r, RoleSuperAdmin) {
			return true
		}
	}
	return false
}

// EmployeeRef carries the fields of a target employee record the policy
// needs, without importing the employee package.
type EmployeeRef struct {
	ID           string
	CompanyID    string
	DepartmentID string
}
