package company

import (
	"context"

	"go-hrm/internal/shared/listing"

	"gorm.io/gorm"
)

// Filters for company listings. All conditions are ANDed; Search is a
// case-insensitive substring match over name and email.
type Filters struct {
	IsActive *bool
	Search   string
	SortBy   string
	SortDir  string
}

// Statistics are plain aggregate counts over a company's directory.
type Statistics struct {
	TotalEmployees   int64 `json:"total_employees"`
	ActiveEmployees  int64 `json:"active_employees"`
	TotalDepartments int64 `json:"total_departments"`
	TotalLocations   int64 `json:"total_locations"`
	TotalJobTitles   int64 `json:"total_job_titles"`
}

var sortableColumns = map[string]string{
	"name":       "name",
	"slug":       "slug",
	"created_at": "created_at",
}

//go:generate mockgen -source=company_repo.go -destination=mock/company_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, com *Company) error
	FindAll(ctx context.Context, f Filters) ([]Company, error)
	FindByID(ctx context.Context, id string) (*Company, error)
	FindBySlug(ctx context.Context, slug string) (*Company, error)
	SlugExists(ctx context.Context, slug string, excludeID string) (bool, error)
	Update(ctx context.Context, com *Company) error
	Delete(ctx context.Context, id string) error
	Statistics(ctx context.Context, id string) (Statistics, error)
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

func (r *repository) Create(ctx context.Context, com *Company) error {
	return r.db.WithContext(ctx).Create(com).Error
}

func (r *repository) FindAll(ctx context.Context, f Filters) ([]Company, error) {
	q := r.db.WithContext(ctx).Model(&Company{})

	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name ILIKE ? OR email ILIKE ?", like, like)
	}

	q = q.Order(listing.OrderClause(f.SortBy, f.SortDir, "name", "asc", sortableColumns))

	var companies []Company
	err := q.Find(&companies).Error
	return companies, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Company, error) {
	var com Company
	err := r.db.WithContext(ctx).First(&com, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &com, nil
}

func (r *repository) FindBySlug(ctx context.Context, slug string) (*Company, error) {
	var com Company
	err := r.db.WithContext(ctx).First(&com, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &com, nil
}

func (r *repository) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&Company{}).Where("slug = ?", slug)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) Update(ctx context.Context, com *Company) error {
	return r.db.WithContext(ctx).Save(com).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Company{}, "id = ?", id).Error
}

func (r *repository) Statistics(ctx context.Context, id string) (Statistics, error) {
	var stats Statistics
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM employees  WHERE company_id = @id AND deleted_at IS NULL)                       AS total_employees,
			(SELECT COUNT(*) FROM employees  WHERE company_id = @id AND deleted_at IS NULL AND status = 'active') AS active_employees,
			(SELECT COUNT(*) FROM departments WHERE company_id = @id AND deleted_at IS NULL)                      AS total_departments,
			(SELECT COUNT(*) FROM locations  WHERE company_id = @id)                                              AS total_locations,
			(SELECT COUNT(*) FROM job_titles WHERE company_id = @id)                                              AS total_job_titles
	`, map[string]any{"id": id}).Scan(&stats).Error

	return stats, err
}
