package location

import (
	"context"

	"go-hrm/internal/shared/listing"
	"go-hrm/internal/tenant"

	"gorm.io/gorm"
)

type Filters struct {
	IsHeadquarters *bool
	Country        string
	Search         string
	SortBy         string
	SortDir        string
}

type Statistics struct {
	TotalEmployees   int64 `json:"total_employees"`
	ActiveEmployees  int64 `json:"active_employees"`
	TotalDepartments int64 `json:"total_departments"`
}

var sortableColumns = map[string]string{
	"name":       "name",
	"code":       "code",
	"city":       "city",
	"country":    "country",
	"created_at": "created_at",
}

//go:generate mockgen -source=location_repo.go -destination=mock/location_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, loc *Location) error
	FindAllByCompany(ctx context.Context, companyID string, f Filters) ([]Location, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Location, error)
	FindByCodeAndCompany(ctx context.Context, companyID, code string) (*Location, error)
	FindHeadquarters(ctx context.Context, companyID string) (*Location, error)
	UnsetHeadquarters(ctx context.Context, companyID, exceptID string) error
	Update(ctx context.Context, loc *Location) error
	Delete(ctx context.Context, companyID, id string) error
	CountEmployees(ctx context.Context, companyID, id string) (int64, error)
	CountDepartments(ctx context.Context, companyID, id string) (int64, error)
	Countries(ctx context.Context, companyID string) ([]string, error)
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

func (r *repository) Create(ctx context.Context, loc *Location) error {
	return r.db.WithContext(ctx).Create(loc).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, f Filters) ([]Location, error) {
	q := r.db.WithContext(ctx).
		Model(&Location{}).
		Scopes(tenant.Scope(companyID))

	if f.IsHeadquarters != nil {
		q = q.Where("is_headquarters = ?", *f.IsHeadquarters)
	}
	if f.Country != "" {
		q = q.Where("country = ?", f.Country)
	}
	if f.Search != "" {
		like := listing.Like(f.Search)
		q = q.Where("name ILIKE ? OR code ILIKE ? OR city ILIKE ?", like, like, like)
	}

	q = q.Order(listing.OrderClause(f.SortBy, f.SortDir, "name", "asc", sortableColumns))

	var locs []Location
	err := q.Find(&locs).Error
	return locs, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Location, error) {
	var loc Location
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&loc, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *repository) FindByCodeAndCompany(ctx context.Context, companyID, code string) (*Location, error) {
	var loc Location
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&loc, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *repository) FindHeadquarters(ctx context.Context, companyID string) (*Location, error) {
	var loc Location
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&loc, "is_headquarters = ?", true).Error
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// UnsetHeadquarters clears the flag on every location of the company except
// the given one. Paired with the flag write inside one transaction so no
// reader ever sees two headquarters.
func (r *repository) UnsetHeadquarters(ctx context.Context, companyID, exceptID string) error {
	q := r.db.WithContext(ctx).
		Model(&Location{}).
		Scopes(tenant.Scope(companyID)).
		Where("is_headquarters = ?", true)

	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}

	return q.Update("is_headquarters", false).Error
}

func (r *repository) Update(ctx context.Context, loc *Location) error {
	return r.db.WithContext(ctx).Save(loc).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Location{}, "id = ?", id).Error
}

func (r *repository) CountEmployees(ctx context.Context, companyID, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("company_id = ? AND location_id = ? AND deleted_at IS NULL", companyID, id).
		Count(&count).Error
	return count, err
}

func (r *repository) CountDepartments(ctx context.Context, companyID, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("departments").
		Where("company_id = ? AND location_id = ? AND deleted_at IS NULL", companyID, id).
		Count(&count).Error
	return count, err
}

func (r *repository) Countries(ctx context.Context, companyID string) ([]string, error) {
	var countries []string
	err := r.db.WithContext(ctx).
		Model(&Location{}).
		Scopes(tenant.Scope(companyID)).
		Where("country <> ''").
		Distinct().
		Order("country").
		Pluck("country", &countries).Error
	return countries, err
}

func (r *repository) Statistics(ctx context.Context, companyID, id string) (Statistics, error) {
	var stats Statistics
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM employees   WHERE company_id = @cid AND location_id = @id AND deleted_at IS NULL)                       AS total_employees,
			(SELECT COUNT(*) FROM employees   WHERE company_id = @cid AND location_id = @id AND deleted_at IS NULL AND status = 'active') AS active_employees,
			(SELECT COUNT(*) FROM departments WHERE company_id = @cid AND location_id = @id AND deleted_at IS NULL)                       AS total_departments
	`, map[string]any{"cid": companyID, "id": id}).Scan(&stats).Error

	return stats, err
}
