package jobtitle_test

import (
	"context"
	"sort"
	"testing"

	"go-hrm/internal/jobtitle"
	jobtitleerrors "go-hrm/internal/jobtitle/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeRepo struct {
	titles    map[string]*jobtitle.JobTitle
	employees map[string]int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		titles:    map[string]*jobtitle.JobTitle{},
		employees: map[string]int64{},
	}
}

func (f *fakeRepo) WithTx(tx *gorm.DB) jobtitle.Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, jt *jobtitle.JobTitle) error {
	cp := *jt
	f.titles[jt.ID.String()] = &cp
	return nil
}

func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string, fl jobtitle.Filters) ([]jobtitle.JobTitle, error) {
	var out []jobtitle.JobTitle
	for _, t := range f.titles {
		if t.CompanyID.String() != companyID {
			continue
		}
		if fl.Level != nil && t.Level != *fl.Level {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*jobtitle.JobTitle, error) {
	t, ok := f.titles[id]
	if !ok || t.CompanyID.String() != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeRepo) FindByCodeAndCompany(ctx context.Context, companyID, code string) (*jobtitle.JobTitle, error) {
	for _, t := range f.titles {
		if t.CompanyID.String() == companyID && t.Code == code {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) Update(ctx context.Context, jt *jobtitle.JobTitle) error {
	cp := *jt
	f.titles[jt.ID.String()] = &cp
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, companyID, id string) error {
	delete(f.titles, id)
	return nil
}

func (f *fakeRepo) CountEmployees(ctx context.Context, companyID, id string) (int64, error) {
	return f.employees[id], nil
}

func (f *fakeRepo) Levels(ctx context.Context, companyID string) ([]int, error) {
	seen := map[int]bool{}
	var out []int
	for _, t := range f.titles {
		if t.CompanyID.String() == companyID && !seen[t.Level] {
			seen[t.Level] = true
			out = append(out, t.Level)
		}
	}
	sort.Ints(out)
	return out, nil
}

func (f *fakeRepo) Statistics(ctx context.Context, companyID, id string) (jobtitle.Statistics, error) {
	return jobtitle.Statistics{}, nil
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

func fp(v float64) *float64 { return &v }

func addTitle(repo *fakeRepo, companyID uuid.UUID, name, code string, level int, min, max *float64) *jobtitle.JobTitle {
	t := &jobtitle.JobTitle{
		ID:        uuid.New(),
		CompanyID: companyID,
		Name:      name,
		Code:      code,
		Level:     level,
		MinSalary: min,
		MaxSalary: max,
		IsActive:  true,
	}
	repo.titles[t.ID.String()] = t
	return t
}

func TestCreate_InvalidBandRejected(t *testing.T) {
	db, _ := newGormDB(t)
	repo := newFakeRepo()
	svc := jobtitle.NewService(db, repo, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), uuid.NewString(), jobtitle.CreateJobTitleRequest{
		Name:      "Engineer",
		Code:      "ENG1",
		MinSalary: fp(9000),
		MaxSalary: fp(5000),
	})
	assert.ErrorIs(t, err, jobtitleerrors.ErrInvalidSalaryBand)
	assert.Empty(t, repo.titles, "nothing may be written on a rejected band")
}

func TestCreate_DefaultsLevelToOne(t *testing.T) {
	db, _ := newGormDB(t)
	repo := newFakeRepo()
	svc := jobtitle.NewService(db, repo, nil, zap.NewNop())

	got, err := svc.Create(context.Background(), uuid.NewString(), jobtitle.CreateJobTitleRequest{
		Name: "Engineer",
		Code: "ENG1",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Level)
	assert.True(t, got.IsActive)
}

func TestCreate_OpenEndedBandAllowed(t *testing.T) {
	db, _ := newGormDB(t)
	repo := newFakeRepo()
	svc := jobtitle.NewService(db, repo, nil, zap.NewNop())

	// A single bound is fine; the check only fires when both are set.
	got, err := svc.Create(context.Background(), uuid.NewString(), jobtitle.CreateJobTitleRequest{
		Name:      "Engineer",
		Code:      "ENG1",
		MinSalary: fp(5000),
	})
	require.NoError(t, err)
	require.NotNil(t, got.MinSalary)
	assert.Nil(t, got.MaxSalary)
}

func TestUpdate_MinOnlyCheckedAgainstExistingMax(t *testing.T) {
	db, mock := newGormDB(t)
	repo := newFakeRepo()
	companyID := uuid.New()
	jt := addTitle(repo, companyID, "Engineer", "ENG1", 2, fp(4000), fp(8000))

	svc := jobtitle.NewService(db, repo, nil, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Update(context.Background(), companyID.String(), jt.ID.String(), jobtitle.UpdateJobTitleRequest{
		MinSalary: fp(9000),
	})
	assert.ErrorIs(t, err, jobtitleerrors.ErrInvalidSalaryBand)

	assert.Equal(t, 4000.0, *repo.titles[jt.ID.String()].MinSalary, "rejected update leaves the band untouched")
}

func TestUpdate_MaxOnlyCheckedAgainstExistingMin(t *testing.T) {
	db, mock := newGormDB(t)
	repo := newFakeRepo()
	companyID := uuid.New()
	jt := addTitle(repo, companyID, "Engineer", "ENG1", 2, fp(4000), fp(8000))

	svc := jobtitle.NewService(db, repo, nil, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Update(context.Background(), companyID.String(), jt.ID.String(), jobtitle.UpdateJobTitleRequest{
		MaxSalary: fp(3000),
	})
	assert.ErrorIs(t, err, jobtitleerrors.ErrInvalidSalaryBand)
}

func TestUpdate_BothBoundsTogether(t *testing.T) {
	db, mock := newGormDB(t)
	repo := newFakeRepo()
	companyID := uuid.New()
	jt := addTitle(repo, companyID, "Engineer", "ENG1", 2, fp(4000), fp(8000))

	svc := jobtitle.NewService(db, repo, nil, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectCommit()

	got, err := svc.Update(context.Background(), companyID.String(), jt.ID.String(), jobtitle.UpdateJobTitleRequest{
		MinSalary: fp(10000),
		MaxSalary: fp(20000),
	})
	require.NoError(t, err)
	assert.Equal(t, 10000.0, *got.MinSalary)
	assert.Equal(t, 20000.0, *got.MaxSalary)
}

func TestDelete_AssignedEmployeesGuard(t *testing.T) {
	db, mock := newGormDB(t)
	repo := newFakeRepo()
	companyID := uuid.New()
	jt := addTitle(repo, companyID, "Engineer", "ENG1", 2, nil, nil)
	repo.employees[jt.ID.String()] = 2

	svc := jobtitle.NewService(db, repo, nil, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := svc.Delete(context.Background(), companyID.String(), jt.ID.String())
	assert.ErrorIs(t, err, jobtitleerrors.ErrHasEmployees)
	_, ok := repo.titles[jt.ID.String()]
	assert.True(t, ok)
}

func TestDelete_Unassigned(t *testing.T) {
	db, mock := newGormDB(t)
	repo := newFakeRepo()
	companyID := uuid.New()
	jt := addTitle(repo, companyID, "Engineer", "ENG1", 2, nil, nil)

	svc := jobtitle.NewService(db, repo, nil, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := svc.Delete(context.Background(), companyID.String(), jt.ID.String())
	require.NoError(t, err)
	_, ok := repo.titles[jt.ID.String()]
	assert.False(t, ok)
}

func TestToggleActive(t *testing.T) {
	db, _ := newGormDB(t)
	repo := newFakeRepo()
	companyID := uuid.New()
	jt := addTitle(repo, companyID, "Engineer", "ENG1", 2, nil, nil)

	svc := jobtitle.NewService(db, repo, nil, zap.NewNop())

	got, err := svc.ToggleActive(context.Background(), companyID.String(), jt.ID.String())
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	got, err = svc.ToggleActive(context.Background(), companyID.String(), jt.ID.String())
	require.NoError(t, err)
	assert.True(t, got.IsActive)
}

func TestGetLevels_DistinctSorted(t *testing.T) {
	db, _ := newGormDB(t)
	repo := newFakeRepo()
	companyID := uuid.New()
	addTitle(repo, companyID, "Senior", "SR", 3, nil, nil)
	addTitle(repo, companyID, "Junior", "JR", 1, nil, nil)
	addTitle(repo, companyID, "Mid", "MID", 2, nil, nil)
	addTitle(repo, companyID, "Staff", "STF", 3, nil, nil)

	svc := jobtitle.NewService(db, repo, nil, zap.NewNop())

	levels, err := svc.GetLevels(context.Background(), companyID.String())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, levels)
}

func TestGetByID_CrossTenantReadsAsNotFound(t *testing.T) {
	db, _ := newGormDB(t)
	repo := newFakeRepo()
	jt := addTitle(repo, uuid.New(), "Engineer", "ENG1", 2, nil, nil)

	svc := jobtitle.NewService(db, repo, nil, zap.NewNop())

	_, err := svc.GetByID(context.Background(), uuid.NewString(), jt.ID.String())
	assert.ErrorIs(t, err, jobtitleerrors.ErrJobTitleNotFound)
}
