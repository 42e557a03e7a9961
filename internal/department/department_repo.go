package department

import (
	"context"

	"go-hrm/internal/shared/listing"
	"go-hrm/internal/tenant"

	"gorm.io/gorm"
)

type Filters struct {
	ParentID   string
	LocationID string
	IsActive   *bool
	Search     string
	SortBy     string
	SortDir    string
}

type Statistics struct {
	TotalEmployees  int64    `json:"total_employees"`
	ActiveEmployees int64    `json:"active_employees"`
	ChildCount      int64    `json:"child_count"`
	DescendantCount int64    `json:"descendant_count"`
	TreeEmployees   int64    `json:"tree_employees"`
	AverageSalary   *float64 `json:"average_salary"`
}

var sortableColumns = map[string]string{
	"name":       "name",
	"code":       "code",
	"created_at": "created_at",
}

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, dept *Department) error
	FindAllByCompany(ctx context.Context, companyID string, f Filters) ([]Department, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Department, error)
	FindByCodeAndCompany(ctx context.Context, companyID, code string) (*Department, error)
	FindChildren(ctx context.Context, companyID, parentID string) ([]Department, error)
	FindRoots(ctx context.Context, companyID string) ([]Department, error)
	FindWithoutManager(ctx context.Context, companyID string) ([]Department, error)
	CountByCompany(ctx context.Context, companyID string) (int64, error)
	EmployeeExists(ctx context.Context, companyID, employeeID string) (bool, error)
	CountEmployees(ctx context.Context, companyID, id string) (int64, error)
	CountChildren(ctx context.Context, companyID, id string) (int64, error)
	Update(ctx context.Context, dept *Department) error
	Delete(ctx context.Context, companyID, id string) error
	Statistics(ctx context.Context, companyID, id string) (Statistics, error)
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

func (r *repository) Create(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, f Filters) ([]Department, error) {
	q := r.db.WithContext(ctx).
		Model(&Department{}).
		Scopes(tenant.Scope(companyID))

	if f.ParentID != "" {
		q = q.Where("parent_id = ?", f.ParentID)
	}
	if f.LocationID != "" {
		q = q.Where("location_id = ?", f.LocationID)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	if f.Search != "" {
		like := listing.Like(f.Search)
		q = q.Where("name ILIKE ? OR code ILIKE ?", like, like)
	}

	q = q.Order(listing.OrderClause(f.SortBy, f.SortDir, "name", "asc", sortableColumns))

	var depts []Department
	err := q.Find(&depts).Error
	return depts, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Department, error) {
	var dept Department
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&dept, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *repository) FindByCodeAndCompany(ctx context.Context, companyID, code string) (*Department, error) {
	var dept Department
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&dept, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

// FindChildren returns the direct children of a department ordered by name,
// so traversals walk the hierarchy in a stable order.
func (r *repository) FindChildren(ctx context.Context, companyID, parentID string) ([]Department, error) {
	var depts []Department
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("parent_id = ?", parentID).
		Order("name asc").
		Find(&depts).Error
	return depts, err
}

func (r *repository) FindRoots(ctx context.Context, companyID string) ([]Department, error) {
	var depts []Department
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("parent_id IS NULL").
		Order("name asc").
		Find(&depts).Error
	return depts, err
}

func (r *repository) FindWithoutManager(ctx context.Context, companyID string) ([]Department, error) {
	var depts []Department
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("manager_id IS NULL").
		Order("name asc").
		Find(&depts).Error
	return depts, err
}

func (r *repository) CountByCompany(ctx context.Context, companyID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Department{}).
		Scopes(tenant.Scope(companyID)).
		Count(&count).Error
	return count, err
}

func (r *repository) EmployeeExists(ctx context.Context, companyID, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("company_id = ? AND id = ? AND deleted_at IS NULL", companyID, employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CountEmployees(ctx context.Context, companyID, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("company_id = ? AND department_id = ? AND deleted_at IS NULL", companyID, id).
		Count(&count).Error
	return count, err
}

func (r *repository) CountChildren(ctx context.Context, companyID, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Department{}).
		Scopes(tenant.Scope(companyID)).
		Where("parent_id = ?", id).
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Department{}, "id = ?", id).Error
}

func (r *repository) Statistics(ctx context.Context, companyID, id string) (Statistics, error) {
	var stats Statistics
	// UNION (not UNION ALL) so the walk terminates even if parent links are
	// ever corrupted into a cycle.
	err := r.db.WithContext(ctx).Raw(`
		WITH RECURSIVE subtree AS (
			SELECT id FROM departments
			WHERE company_id = @cid AND id = @id AND deleted_at IS NULL
			UNION
			SELECT d.id FROM departments d
			JOIN subtree s ON d.parent_id = s.id
			WHERE d.company_id = @cid AND d.deleted_at IS NULL
		)
		SELECT
			(SELECT COUNT(*) FROM employees   WHERE company_id = @cid AND department_id = @id AND deleted_at IS NULL)                       AS total_employees,
			(SELECT COUNT(*) FROM employees   WHERE company_id = @cid AND department_id = @id AND deleted_at IS NULL AND status = 'active') AS active_employees,
			(SELECT COUNT(*) FROM departments WHERE company_id = @cid AND parent_id = @id AND deleted_at IS NULL)                           AS child_count,
			(SELECT COUNT(*) - 1 FROM subtree)                                                                                             AS descendant_count,
			(SELECT COUNT(*) FROM employees
				WHERE company_id = @cid AND deleted_at IS NULL
				AND department_id IN (SELECT id FROM subtree))                                                                             AS tree_employees,
			(SELECT AVG(salary) FROM employees WHERE company_id = @cid AND department_id = @id AND deleted_at IS NULL)                     AS average_salary
	`, map[string]any{"cid": companyID, "id": id}).Scan(&stats).Error

	return stats, err
}
