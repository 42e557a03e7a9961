package location_test

import (
	"context"
	"sort"
	"testing"

	"go-hrm/internal/location"
	locationerrors "go-hrm/internal/location/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeRepo struct {
	locations   map[string]*location.Location
	employees   map[string]int64
	departments map[string]int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		locations:   map[string]*location.Location{},
		employees:   map[string]int64{},
		departments: map[string]int64{},
	}
}

func (f *fakeRepo) WithTx(tx *gorm.DB) location.Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, loc *location.Location) error {
	cp := *loc
	f.locations[loc.ID.String()] = &cp
	return nil
}

func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string, fl location.Filters) ([]location.Location, error) {
	var out []location.Location
	for _, l := range f.locations {
		if l.CompanyID.String() != companyID {
			continue
		}
		if fl.IsHeadquarters != nil && l.IsHeadquarters != *fl.IsHeadquarters {
			continue
		}
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*location.Location, error) {
	l, ok := f.locations[id]
	if !ok || l.CompanyID.String() != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeRepo) FindByCodeAndCompany(ctx context.Context, companyID, code string) (*location.Location, error) {
	for _, l := range f.locations {
		if l.CompanyID.String() == companyID && l.Code == code {
			cp := *l
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindHeadquarters(ctx context.Context, companyID string) (*location.Location, error) {
	for _, l := range f.locations {
		if l.CompanyID.String() == companyID && l.IsHeadquarters {
			cp := *l
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) UnsetHeadquarters(ctx context.Context, companyID, exceptID string) error {
	for _, l := range f.locations {
		if l.CompanyID.String() != companyID || l.ID.String() == exceptID {
			continue
		}
		l.IsHeadquarters = false
	}
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, loc *location.Location) error {
	cp := *loc
	f.locations[loc.ID.String()] = &cp
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, companyID, id string) error {
	delete(f.locations, id)
	return nil
}

func (f *fakeRepo) CountEmployees(ctx context.Context, companyID, id string) (int64, error) {
	return f.employees[id], nil
}

func (f *fakeRepo) CountDepartments(ctx context.Context, companyID, id string) (int64, error) {
	return f.departments[id], nil
}

func (f *fakeRepo) Countries(ctx context.Context, companyID string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, l := range f.locations {
		if l.CompanyID.String() == companyID && l.Country != "" && !seen[l.Country] {
			seen[l.Country] = true
			out = append(out, l.Country)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeRepo) Statistics(ctx context.Context, companyID, id string) (location.Statistics, error) {
	return location.Statistics{}, nil
}

func newGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func addLocation(repo *fakeRepo, companyID uuid.UUID, name, code, country string, hq bool) *location.Location {
	l := &location.Location{
		ID:             uuid.New(),
		CompanyID:      companyID,
		Name:           name,
		Code:           code,
		Country:        country,
		IsHeadquarters: hq,
	}
	repo.locations[l.ID.String()] = l
	return l
}

func TestCreate_AsHeadquartersDemotesExisting(t *testing.T) {
	db, mock := newGormDB(t)
	repo := newFakeRepo()
	companyID := uuid.New()
	old := addLocation(repo, companyID, "Jakarta HQ", "JKT", "Indonesia", true)

	svc := location.NewService(db, repo, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectCommit()

	got, err := svc.Create(context.Background(), companyID.String(), location.CreateLocationRequest{
		Name:           "Singapore HQ",
		Code:           "SIN",
		Country:        "Singapore",
		IsHeadquarters: true,
	})
	require.NoError(t, err)
	assert.True(t, got.IsHeadquarters)

	assert.False(t, repo.locations[old.ID.String()].IsHeadquarters, "previous headquarters must be demoted")
}

func TestSetHeadquarters_SingleFlagPerCompany(t *testing.T) {
	db, mock := newGormDB(t)
	repo := newFakeRepo()
	companyID := uuid.New()
	hq := addLocation(repo, companyID, "Jakarta", "JKT", "Indonesia", true)
	branch := addLocation(repo, companyID, "Bandung", "BDG", "Indonesia", false)

	// A headquarters in another company is untouched.
	otherCompany := uuid.New()
	foreign := addLocation(repo, otherCompany, "Remote", "RMT", "Singapore", true)

	svc := location.NewService(db, repo, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectCommit()

	got, err := svc.SetHeadquarters(context.Background(), companyID.String(), branch.ID.String())
	require.NoError(t, err)
	assert.True(t, got.IsHeadquarters)

	assert.False(t, repo.locations[hq.ID.String()].IsHeadquarters)
	assert.True(t, repo.locations[foreign.ID.String()].IsHeadquarters)
}

func TestGetHeadquarters_NoneIsNotAnError(t *testing.T) {
	db, _ := newGormDB(t)
	repo := newFakeRepo()
	companyID := uuid.New()
	addLocation(repo, companyID, "Bandung", "BDG", "Indonesia", false)

	svc := location.NewService(db, repo, zap.NewNop())

	got, err := svc.GetHeadquarters(context.Background(), companyID.String())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdate_PromotionDemotesSibling(t *testing.T) {
	db, mock := newGormDB(t)
	repo := newFakeRepo()
	companyID := uuid.New()
	hq := addLocation(repo, companyID, "Jakarta", "JKT", "Indonesia", true)
	branch := addLocation(repo, companyID, "Bandung", "BDG", "Indonesia", false)

	svc := location.NewService(db, repo, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectCommit()

	becomeHQ := true
	got, err := svc.Update(context.Background(), companyID.String(), branch.ID.String(), location.UpdateLocationRequest{
		IsHeadquarters: &becomeHQ,
	})
	require.NoError(t, err)
	assert.True(t, got.IsHeadquarters)
	assert.False(t, repo.locations[hq.ID.String()].IsHeadquarters)
}

func TestDelete_EmployeeGuard(t *testing.T) {
	db, mock := newGormDB(t)
	repo := newFakeRepo()
	companyID := uuid.New()
	loc := addLocation(repo, companyID, "Jakarta", "JKT", "Indonesia", false)
	repo.employees[loc.ID.String()] = 3

	svc := location.NewService(db, repo, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := svc.Delete(context.Background(), companyID.String(), loc.ID.String())
	assert.ErrorIs(t, err, locationerrors.ErrHasEmployees)
}

func TestDelete_DepartmentGuard(t *testing.T) {
	db, mock := newGormDB(t)
	repo := newFakeRepo()
	companyID := uuid.New()
	loc := addLocation(repo, companyID, "Jakarta", "JKT", "Indonesia", false)
	repo.departments[loc.ID.String()] = 1

	svc := location.NewService(db, repo, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := svc.Delete(context.Background(), companyID.String(), loc.ID.String())
	assert.ErrorIs(t, err, locationerrors.ErrHasDepartments)
}

func TestDelete_Unassigned(t *testing.T) {
	db, mock := newGormDB(t)
	repo := newFakeRepo()
	companyID := uuid.New()
	loc := addLocation(repo, companyID, "Jakarta", "JKT", "Indonesia", false)

	svc := location.NewService(db, repo, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := svc.Delete(context.Background(), companyID.String(), loc.ID.String())
	require.NoError(t, err)
	_, ok := repo.locations[loc.ID.String()]
	assert.False(t, ok)
}

func TestGetByID_CrossTenantReadsAsNotFound(t *testing.T) {
	db, _ := newGormDB(t)
	repo := newFakeRepo()
	loc := addLocation(repo, uuid.New(), "Jakarta", "JKT", "Indonesia", false)

	svc := location.NewService(db, repo, zap.NewNop())

	_, err := svc.GetByID(context.Background(), uuid.NewString(), loc.ID.String())
	assert.ErrorIs(t, err, locationerrors.ErrLocationNotFound)
}
