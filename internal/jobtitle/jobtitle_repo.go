package jobtitle

import (
	"context"

	"go-hrm/internal/shared/listing"
	"go-hrm/internal/tenant"

	"gorm.io/gorm"
)

type Filters struct {
	Level    *int
	IsActive *bool
	Search   string
	SortBy   string
	SortDir  string
}

type Statistics struct {
	TotalEmployees int64    `json:"total_employees"`
	AverageSalary  *float64 `json:"average_salary"`
	MinSalary      *float64 `json:"min_salary"`
	MaxSalary      *float64 `json:"max_salary"`
}

var sortableColumns = map[string]string{
	"name":       "name",
	"code":       "code",
	"level":      "level",
	"created_at": "created_at",
}

//go:generate mockgen -source=jobtitle_repo.go -destination=mock/jobtitle_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, jt *JobTitle) error
	FindAllByCompany(ctx context.Context, companyID string, f Filters) ([]JobTitle, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*JobTitle, error)
	FindByCodeAndCompany(ctx context.Context, companyID, code string) (*JobTitle, error)
	Update(ctx context.Context, jt *JobTitle) error
	Delete(ctx context.Context, companyID, id string) error
	CountEmployees(ctx context.Context, companyID, id string) (int64, error)
	Levels(ctx context.Context, companyID string) ([]int, error)
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

func (r *repository) Create(ctx context.Context, jt *JobTitle) error {
	return r.db.WithContext(ctx).Create(jt).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, f Filters) ([]JobTitle, error) {
	q := r.db.WithContext(ctx).
		Model(&JobTitle{}).
		Scopes(tenant.Scope(companyID))

	if f.Level != nil {
		q = q.Where("level = ?", *f.Level)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	if f.Search != "" {
		like := listing.Like(f.Search)
		q = q.Where("name ILIKE ? OR code ILIKE ?", like, like)
	}

	q = q.Order(listing.OrderClause(f.SortBy, f.SortDir, "name", "asc", sortableColumns))

	var titles []JobTitle
	err := q.Find(&titles).Error
	return titles, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*JobTitle, error) {
	var jt JobTitle
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&jt, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &jt, nil
}

func (r *repository) FindByCodeAndCompany(ctx context.Context, companyID, code string) (*JobTitle, error) {
	var jt JobTitle
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&jt, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &jt, nil
}

func (r *repository) Update(ctx context.Context, jt *JobTitle) error {
	return r.db.WithContext(ctx).Save(jt).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&JobTitle{}, "id = ?", id).Error
}

func (r *repository) CountEmployees(ctx context.Context, companyID, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("company_id = ? AND job_title_id = ? AND deleted_at IS NULL", companyID, id).
		Count(&count).Error
	return count, err
}

func (r *repository) Levels(ctx context.Context, companyID string) ([]int, error) {
	var levels []int
	err := r.db.WithContext(ctx).
		Model(&JobTitle{}).
		Scopes(tenant.Scope(companyID)).
		Distinct().
		Order("level").
		Pluck("level", &levels).Error
	return levels, err
}

func (r *repository) Statistics(ctx context.Context, companyID, id string) (Statistics, error) {
	var stats Statistics
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*)    AS total_employees,
			AVG(salary) AS average_salary,
			MIN(salary) AS min_salary,
			MAX(salary) AS max_salary
		FROM employees
		WHERE company_id = @cid AND job_title_id = @id AND deleted_at IS NULL
	`, map[string]any{"cid": companyID, "id": id}).Scan(&stats).Error

	return stats, err
}
