package department_test

import (
	"context"
	"encoding/json"
	"sort"
	"testing"

	"go-hrm/internal/department"
	departmenterrors "go-hrm/internal/department/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// fakeRepo keeps departments in memory so hierarchy walks run against real
// data while the gorm transaction plumbing is satisfied by sqlmock.
type fakeRepo struct {
	departments map[string]*department.Department
	employees   map[string]int64
	emplExists  map[string]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		departments: map[string]*department.Department{},
		employees:   map[string]int64{},
		emplExists:  map[string]bool{},
	}
}

func (f *fakeRepo) WithTx(tx *gorm.DB) department.Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, dept *department.Department) error {
	cp := *dept
	f.departments[dept.ID.String()] = &cp
	return nil
}

func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string, fl department.Filters) ([]department.Department, error) {
	var out []department.Department
	for _, d := range f.departments {
		if d.CompanyID.String() == companyID {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*department.Department, error) {
	d, ok := f.departments[id]
	if !ok || d.CompanyID.String() != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeRepo) FindByCodeAndCompany(ctx context.Context, companyID, code string) (*department.Department, error) {
	for _, d := range f.departments {
		if d.CompanyID.String() == companyID && d.Code == code {
			cp := *d
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindChildren(ctx context.Context, companyID, parentID string) ([]department.Department, error) {
	var out []department.Department
	for _, d := range f.departments {
		if d.CompanyID.String() == companyID && d.ParentID != nil && d.ParentID.String() == parentID {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeRepo) FindRoots(ctx context.Context, companyID string) ([]department.Department, error) {
	var out []department.Department
	for _, d := range f.departments {
		if d.CompanyID.String() == companyID && d.ParentID == nil {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeRepo) FindWithoutManager(ctx context.Context, companyID string) ([]department.Department, error) {
	var out []department.Department
	for _, d := range f.departments {
		if d.CompanyID.String() == companyID && d.ManagerID == nil {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeRepo) CountByCompany(ctx context.Context, companyID string) (int64, error) {
	var n int64
	for _, d := range f.departments {
		if d.CompanyID.String() == companyID {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) EmployeeExists(ctx context.Context, companyID, employeeID string) (bool, error) {
	return f.emplExists[employeeID], nil
}

func (f *fakeRepo) CountEmployees(ctx context.Context, companyID, id string) (int64, error) {
	return f.employees[id], nil
}

func (f *fakeRepo) CountChildren(ctx context.Context, companyID, id string) (int64, error) {
	children, _ := f.FindChildren(ctx, companyID, id)
	return int64(len(children)), nil
}

func (f *fakeRepo) Update(ctx context.Context, dept *department.Department) error {
	cp := *dept
	f.departments[dept.ID.String()] = &cp
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, companyID, id string) error {
	delete(f.departments, id)
	return nil
}

func (f *fakeRepo) Statistics(ctx context.Context, companyID, id string) (department.Statistics, error) {
	return department.Statistics{}, nil
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

type fixture struct {
	svc  department.Service
	repo *fakeRepo
	mock sqlmock.Sqlmock

	companyID   string
	engineering *department.Department
	backend     *department.Department
	platform    *department.Department
	marketing   *department.Department
	foreign     *department.Department
}

func addDept(repo *fakeRepo, companyID uuid.UUID, name, code string, parent *department.Department) *department.Department {
	d := &department.Department{
		ID:        uuid.New(),
		CompanyID: companyID,
		Name:      name,
		Code:      code,
		IsActive:  true,
	}
	if parent != nil {
		pid := parent.ID
		d.ParentID = &pid
	}
	repo.departments[d.ID.String()] = d
	return d
}

// newFixture seeds Engineering > Backend > Platform plus a Marketing root in
// one company and a lone department in another.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, mock := newGormDB(t)
	repo := newFakeRepo()

	companyID := uuid.New()
	otherCompany := uuid.New()

	eng := addDept(repo, companyID, "Engineering", "ENG", nil)
	be := addDept(repo, companyID, "Backend", "BE", eng)
	pf := addDept(repo, companyID, "Platform", "PF", be)
	mk := addDept(repo, companyID, "Marketing", "MKT", nil)
	fg := addDept(repo, otherCompany, "Finance", "FIN", nil)

	svc := department.NewService(db, repo, nil, zap.NewNop())

	return &fixture{
		svc:         svc,
		repo:        repo,
		mock:        mock,
		companyID:   companyID.String(),
		engineering: eng,
		backend:     be,
		platform:    pf,
		marketing:   mk,
		foreign:     fg,
	}
}

func TestGetByID_DepthAndPath(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	got, err := fx.svc.GetByID(ctx, fx.companyID, fx.platform.ID.String())
	require.NoError(t, err)

	assert.Equal(t, 2, got.Depth)
	assert.Equal(t, "Engineering > Backend > Platform", got.Path)

	root, err := fx.svc.GetByID(ctx, fx.companyID, fx.engineering.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 0, root.Depth)
	assert.Equal(t, "Engineering", root.Path)
}

func TestGetByID_CrossTenantReadsAsNotFound(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.GetByID(context.Background(), fx.companyID, fx.foreign.ID.String())
	assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
}

func TestGetAncestors_NearestFirst(t *testing.T) {
	fx := newFixture(t)

	got, err := fx.svc.GetAncestors(context.Background(), fx.companyID, fx.platform.ID.String())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Backend", got[0].Name)
	assert.Equal(t, "Engineering", got[1].Name)
}

func TestGetAncestors_CorruptChainIsCycleDetected(t *testing.T) {
	fx := newFixture(t)

	// Corrupt the stored chain directly: Engineering's parent becomes its
	// own grandchild.
	pid := fx.platform.ID
	fx.repo.departments[fx.engineering.ID.String()].ParentID = &pid

	_, err := fx.svc.GetAncestors(context.Background(), fx.companyID, fx.backend.ID.String())
	assert.ErrorIs(t, err, departmenterrors.ErrCycleDetected)
}

func TestGetDescendants_DepthFirstByName(t *testing.T) {
	fx := newFixture(t)

	// A second Engineering child that sorts before Backend.
	api := addDept(fx.repo, uuid.MustParse(fx.companyID), "API", "API", fx.engineering)

	got, err := fx.svc.GetDescendants(context.Background(), fx.companyID, fx.engineering.ID.String())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, api.ID.String(), got[0].ID)
	assert.Equal(t, fx.backend.ID.String(), got[1].ID)
	assert.Equal(t, fx.platform.ID.String(), got[2].ID)
}

func TestMove_SelfParentRejected(t *testing.T) {
	fx := newFixture(t)
	fx.mock.ExpectBegin()
	fx.mock.ExpectRollback()

	id := fx.backend.ID.String()
	_, err := fx.svc.Move(context.Background(), fx.companyID, id, department.MoveDepartmentRequest{ParentID: &id})
	assert.ErrorIs(t, err, departmenterrors.ErrSelfParent)
}

func TestMove_UnknownParentRejected(t *testing.T) {
	fx := newFixture(t)
	fx.mock.ExpectBegin()
	fx.mock.ExpectRollback()

	missing := uuid.NewString()
	_, err := fx.svc.Move(context.Background(), fx.companyID, fx.backend.ID.String(), department.MoveDepartmentRequest{ParentID: &missing})
	assert.ErrorIs(t, err, departmenterrors.ErrInvalidParent)
}

func TestMove_ForeignParentRejected(t *testing.T) {
	fx := newFixture(t)
	fx.mock.ExpectBegin()
	fx.mock.ExpectRollback()

	// A parent in another company is indistinguishable from a missing one.
	foreign := fx.foreign.ID.String()
	_, err := fx.svc.Move(context.Background(), fx.companyID, fx.backend.ID.String(), department.MoveDepartmentRequest{ParentID: &foreign})
	assert.ErrorIs(t, err, departmenterrors.ErrInvalidParent)
}

func TestMove_UnderOwnDescendantRejected(t *testing.T) {
	fx := newFixture(t)
	fx.mock.ExpectBegin()
	fx.mock.ExpectRollback()

	// Engineering under Backend would orphan the whole subtree into a loop.
	backendID := fx.backend.ID.String()
	_, err := fx.svc.Move(context.Background(), fx.companyID, fx.engineering.ID.String(), department.MoveDepartmentRequest{ParentID: &backendID})
	assert.ErrorIs(t, err, departmenterrors.ErrCircularReference)
}

func TestMove_ToRoot(t *testing.T) {
	fx := newFixture(t)
	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()

	got, err := fx.svc.Move(context.Background(), fx.companyID, fx.platform.ID.String(), department.MoveDepartmentRequest{ParentID: nil})
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)
	assert.Nil(t, fx.repo.departments[fx.platform.ID.String()].ParentID)
}

func TestMove_ValidReparent(t *testing.T) {
	fx := newFixture(t)
	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()

	engID := fx.engineering.ID.String()
	got, err := fx.svc.Move(context.Background(), fx.companyID, fx.marketing.ID.String(), department.MoveDepartmentRequest{ParentID: &engID})
	require.NoError(t, err)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, engID, *got.ParentID)
}

func TestDelete_EmployeeGuardWinsOverChildGuard(t *testing.T) {
	fx := newFixture(t)
	fx.mock.ExpectBegin()
	fx.mock.ExpectRollback()

	// Engineering has both employees and children; the employee guard is
	// reported first.
	fx.repo.employees[fx.engineering.ID.String()] = 4

	err := fx.svc.Delete(context.Background(), fx.companyID, fx.engineering.ID.String())
	assert.ErrorIs(t, err, departmenterrors.ErrHasEmployees)
}

func TestDelete_ChildGuard(t *testing.T) {
	fx := newFixture(t)
	fx.mock.ExpectBegin()
	fx.mock.ExpectRollback()

	err := fx.svc.Delete(context.Background(), fx.companyID, fx.backend.ID.String())
	assert.ErrorIs(t, err, departmenterrors.ErrHasChildren)
}

func TestDelete_Leaf(t *testing.T) {
	fx := newFixture(t)
	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()

	err := fx.svc.Delete(context.Background(), fx.companyID, fx.platform.ID.String())
	require.NoError(t, err)
	_, ok := fx.repo.departments[fx.platform.ID.String()]
	assert.False(t, ok)
}

func TestToggleActive_DoesNotCascade(t *testing.T) {
	fx := newFixture(t)

	got, err := fx.svc.ToggleActive(context.Background(), fx.companyID, fx.engineering.ID.String())
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	assert.True(t, fx.repo.departments[fx.backend.ID.String()].IsActive)
	assert.True(t, fx.repo.departments[fx.platform.ID.String()].IsActive)
}

func TestTree_ThreeLevelsRootsByName(t *testing.T) {
	fx := newFixture(t)

	// Fourth level below Platform must not appear in the tree.
	deep := addDept(fx.repo, uuid.MustParse(fx.companyID), "Deep", "DEEP", fx.platform)

	tree, err := fx.svc.Tree(context.Background(), fx.companyID, "")
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "Engineering", tree[0].Name)
	assert.Equal(t, "Marketing", tree[1].Name)

	require.Len(t, tree[0].Children, 1)
	backend := tree[0].Children[0]
	assert.Equal(t, "Backend", backend.Name)

	require.Len(t, backend.Children, 1)
	platform := backend.Children[0]
	assert.Equal(t, "Platform", platform.Name)
	assert.Empty(t, platform.Children)

	for _, n := range platform.Children {
		assert.NotEqual(t, deep.ID.String(), n.ID)
	}
}

func TestTree_ServedFromCache(t *testing.T) {
	db, _ := newGormDB(t)
	repo := newFakeRepo()
	rdb, rmock := redismock.NewClientMock()

	companyID := uuid.NewString()
	cached := []department.TreeNode{
		{ID: uuid.NewString(), Name: "Engineering", Code: "ENG", Children: []department.TreeNode{}},
	}
	data, err := json.Marshal(cached)
	require.NoError(t, err)
	rmock.ExpectGet("departments:tree:" + companyID).SetVal(string(data))

	svc := department.NewService(db, repo, rdb, zap.NewNop())

	// The fake repository is empty, so a non-empty result proves the cache
	// answered.
	tree, err := svc.Tree(context.Background(), companyID, "")
	require.NoError(t, err)
	assert.Equal(t, cached, tree)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestTree_InvalidatedOnMutation(t *testing.T) {
	db, _ := newGormDB(t)
	repo := newFakeRepo()
	rdb, rmock := redismock.NewClientMock()

	companyID := uuid.New()
	dept := addDept(repo, companyID, "Engineering", "ENG", nil)

	rmock.ExpectDel("departments:tree:" + companyID.String()).SetVal(1)

	svc := department.NewService(db, repo, rdb, zap.NewNop())

	_, err := svc.ToggleActive(context.Background(), companyID.String(), dept.ID.String())
	require.NoError(t, err)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestTree_CacheFailureFallsBackToDatabase(t *testing.T) {
	fx := newFixture(t)

	// No redis expectations are set, so every cache call errors; the tree
	// must still come back from the repository.
	db, _ := newGormDB(t)
	rdb, _ := redismock.NewClientMock()
	svc := department.NewService(db, fx.repo, rdb, zap.NewNop())

	tree, err := svc.Tree(context.Background(), fx.companyID, "")
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "Engineering", tree[0].Name)
}

func TestCreate_ParentMustBeInCompany(t *testing.T) {
	fx := newFixture(t)
	fx.mock.ExpectBegin()
	fx.mock.ExpectRollback()

	foreign := fx.foreign.ID.String()
	_, err := fx.svc.Create(context.Background(), fx.companyID, department.CreateDepartmentRequest{
		Name:     "Growth",
		Code:     "GRW",
		ParentID: &foreign,
	})
	assert.ErrorIs(t, err, departmenterrors.ErrInvalidParent)
}

func TestCreate_WithParent(t *testing.T) {
	fx := newFixture(t)
	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()

	engID := fx.engineering.ID.String()
	got, err := fx.svc.Create(context.Background(), fx.companyID, department.CreateDepartmentRequest{
		Name:     "Growth",
		Code:     "GRW",
		ParentID: &engID,
	})
	require.NoError(t, err)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, engID, *got.ParentID)
	assert.True(t, got.IsActive)
}
