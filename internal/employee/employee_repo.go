package employee

import (
	"context"

	"go-hrm/internal/shared/listing"
	"go-hrm/internal/tenant"

	"gorm.io/gorm"
)

type Filters struct {
	DepartmentID   string
	JobTitleID     string
	LocationID     string
	Status         string
	EmploymentType string
	Search         string
	SortBy         string
	SortDir        string
}

type Statistics struct {
	Total          int64    `json:"total"`
	Active         int64    `json:"active"`
	OnLeave        int64    `json:"on_leave"`
	Suspended      int64    `json:"suspended"`
	Terminated     int64    `json:"terminated"`
	Archived       int64    `json:"archived"`
	AverageSalary  *float64 `json:"average_salary"`
	NewThisMonth   int64    `json:"new_this_month"`
	OnProbation    int64    `json:"on_probation"`
	WithoutManager int64    `json:"without_manager"`
}

var sortableColumns = map[string]string{
	"employee_number": "employee_number",
	"first_name":      "first_name",
	"last_name":       "last_name",
	"email":           "email",
	"hire_date":       "hire_date",
	"status":          "status",
	"created_at":      "created_at",
}

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAllByCompany(ctx context.Context, companyID string, f Filters) ([]Employee, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Employee, error)
	FindByIDIncludingDeleted(ctx context.Context, companyID, id string) (*Employee, error)
	FindByNumberAndCompany(ctx context.Context, companyID, number string) (*Employee, error)
	FindByUserID(ctx context.Context, userID string) (*Employee, error)
	FindByDepartment(ctx context.Context, companyID, departmentID string) ([]Employee, error)
	FindDeleted(ctx context.Context, companyID string) ([]Employee, error)
	Update(ctx context.Context, empl *Employee) error
	SoftDelete(ctx context.Context, companyID, id string) error
	Restore(ctx context.Context, companyID, id string) error
	Statistics(ctx context.Context, companyID string) (Statistics, error)

	ReplaceManagers(ctx context.Context, companyID, employeeID string, managers []EmployeeManager) error
	FindManagers(ctx context.Context, companyID, employeeID string) ([]EmployeeManager, error)
	FindDirectReports(ctx context.Context, companyID, managerID string) ([]Employee, error)
	ManagerExists(ctx context.Context, companyID, managerID string) (bool, error)
	DepartmentExists(ctx context.Context, companyID, id string) (bool, error)
	JobTitleExists(ctx context.Context, companyID, id string) (bool, error)
	LocationExists(ctx context.Context, companyID, id string) (bool, error)

	CreateContact(ctx context.Context, contact *EmergencyContact) error
	FindContacts(ctx context.Context, companyID, employeeID string) ([]EmergencyContact, error)
	FindContactByID(ctx context.Context, companyID, employeeID, contactID string) (*EmergencyContact, error)
	UpdateContact(ctx context.Context, contact *EmergencyContact) error
	DeleteContact(ctx context.Context, companyID, employeeID, contactID string) error
	UnsetPrimaryContacts(ctx context.Context, companyID, employeeID, exceptID string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, f Filters) ([]Employee, error) {
	q := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(companyID))

	if f.DepartmentID != "" {
		q = q.Where("department_id = ?", f.DepartmentID)
	}
	if f.JobTitleID != "" {
		q = q.Where("job_title_id = ?", f.JobTitleID)
	}
	if f.LocationID != "" {
		q = q.Where("location_id = ?", f.LocationID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.EmploymentType != "" {
		q = q.Where("employment_type = ?", f.EmploymentType)
	}
	if f.Search != "" {
		like := listing.Like(f.Search)
		q = q.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR employee_number ILIKE ?",
			like, like, like, like,
		)
	}

	q = q.Order(listing.OrderClause(f.SortBy, f.SortDir, "last_name", "asc", sortableColumns))

	var empls []Employee
	err := q.Find(&empls).Error
	return empls, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

// FindByIDIncludingDeleted bypasses the soft delete filter so archived
// records can be restored.
func (r *repository) FindByIDIncludingDeleted(ctx context.Context, companyID, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Unscoped().
		Scopes(tenant.Scope(companyID)).
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindByNumberAndCompany(ctx context.Context, companyID, number string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&empl, "employee_number = ?", number).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		First(&empl, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindByDepartment(ctx context.Context, companyID, departmentID string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("department_id = ?", departmentID).
		Order("last_name asc, first_name asc").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindDeleted(ctx context.Context, companyID string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Unscoped().
		Scopes(tenant.Scope(companyID)).
		Where("deleted_at IS NOT NULL").
		Order("deleted_at desc").
		Find(&empls).Error
	return empls, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) SoftDelete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Employee{}, "id = ?", id).Error
}

func (r *repository) Restore(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Model(&Employee{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Update("deleted_at", nil).Error
}

func (r *repository) Statistics(ctx context.Context, companyID string) (Statistics, error) {
	var stats Statistics
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE deleted_at IS NULL)                             AS total,
			COUNT(*) FILTER (WHERE deleted_at IS NULL AND status = 'active')       AS active,
			COUNT(*) FILTER (WHERE deleted_at IS NULL AND status = 'on_leave')     AS on_leave,
			COUNT(*) FILTER (WHERE deleted_at IS NULL AND status = 'suspended')    AS suspended,
			COUNT(*) FILTER (WHERE deleted_at IS NULL AND status = 'terminated')   AS terminated,
			COUNT(*) FILTER (WHERE deleted_at IS NOT NULL)                         AS archived,
			AVG(salary) FILTER (WHERE deleted_at IS NULL)                          AS average_salary,
			COUNT(*) FILTER (WHERE deleted_at IS NULL
				AND hire_date >= date_trunc('month', CURRENT_DATE))                AS new_this_month,
			COUNT(*) FILTER (WHERE deleted_at IS NULL
				AND probation_end_date IS NOT NULL
				AND probation_end_date >= CURRENT_DATE)                            AS on_probation,
			COUNT(*) FILTER (WHERE deleted_at IS NULL AND id NOT IN (
				SELECT employee_id FROM employee_managers
				WHERE company_id = @cid AND ended_at IS NULL))                     AS without_manager
		FROM employees
		WHERE company_id = @cid
	`, map[string]any{"cid": companyID}).Scan(&stats).Error

	return stats, err
}

// ReplaceManagers swaps the full set of reporting lines for an employee.
// Old rows are removed and the new set inserted in one shot; callers wrap
// this in a transaction together with their validation.
func (r *repository) ReplaceManagers(ctx context.Context, companyID, employeeID string, managers []EmployeeManager) error {
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND employee_id = ?", companyID, employeeID).
		Delete(&EmployeeManager{}).Error
	if err != nil {
		return err
	}

	if len(managers) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Create(&managers).Error
}

func (r *repository) FindManagers(ctx context.Context, companyID, employeeID string) ([]EmployeeManager, error) {
	var managers []EmployeeManager
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND employee_id = ? AND ended_at IS NULL", companyID, employeeID).
		Order("is_primary desc, started_at asc").
		Find(&managers).Error
	return managers, err
}

func (r *repository) FindDirectReports(ctx context.Context, companyID, managerID string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id IN (?)",
			r.db.Table("employee_managers").
				Select("employee_id").
				Where("company_id = ? AND manager_id = ? AND ended_at IS NULL", companyID, managerID),
		).
		Order("last_name asc, first_name asc").
		Find(&empls).Error
	return empls, err
}

func (r *repository) ManagerExists(ctx context.Context, companyID, managerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ? AND status <> ?", managerID, StatusTerminated).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) DepartmentExists(ctx context.Context, companyID, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("departments").
		Where("company_id = ? AND id = ? AND deleted_at IS NULL", companyID, id).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) JobTitleExists(ctx context.Context, companyID, id string) (bool, error) {
	return r.refExists(ctx, "job_titles", companyID, id)
}

func (r *repository) LocationExists(ctx context.Context, companyID, id string) (bool, error) {
	return r.refExists(ctx, "locations", companyID, id)
}

func (r *repository) refExists(ctx context.Context, table, companyID, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table(table).
		Where("company_id = ? AND id = ?", companyID, id).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CreateContact(ctx context.Context, contact *EmergencyContact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *repository) FindContacts(ctx context.Context, companyID, employeeID string) ([]EmergencyContact, error) {
	var contacts []EmergencyContact
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND employee_id = ?", companyID, employeeID).
		Order("is_primary desc, name asc").
		Find(&contacts).Error
	return contacts, err
}

func (r *repository) FindContactByID(ctx context.Context, companyID, employeeID, contactID string) (*EmergencyContact, error) {
	var contact EmergencyContact
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND employee_id = ?", companyID, employeeID).
		First(&contact, "id = ?", contactID).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *repository) UpdateContact(ctx context.Context, contact *EmergencyContact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

func (r *repository) DeleteContact(ctx context.Context, companyID, employeeID, contactID string) error {
	return r.db.WithContext(ctx).
		Where("company_id = ? AND employee_id = ?", companyID, employeeID).
		Delete(&EmergencyContact{}, "id = ?", contactID).Error
}

func (r *repository) UnsetPrimaryContacts(ctx context.Context, companyID, employeeID, exceptID string) error {
	q := r.db.WithContext(ctx).
		Model(&EmergencyContact{}).
		Where("company_id = ? AND employee_id = ? AND is_primary = ?", companyID, employeeID, true)

	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}

	return q.Update("is_primary", false).Error
}
