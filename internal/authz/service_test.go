package authz_test

import (
	"testing"

	"go-hrm/internal/authz"
	"go-hrm/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) authz.Service {
	t.Helper()
	svc, err := authz.NewService()
	require.NoError(t, err)
	return svc
}

func TestCan_SuperAdminBypassesEverything(t *testing.T) {
	svc := newService(t)
	actor := authz.Actor{UserID: "u1", Roles: []string{authz.RoleSuperAdmin}}

	ok, err := svc.Can(actor, authz.ResourceCompanies, authz.ActionDelete)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Can(actor, authz.ResourceEmployees, authz.ActionViewSalary)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestCan_RoleGrants(t *testing.T) {
	svc := newService(t)

	hr := authz.Actor{UserID: "u1", CompanyID: "c1", Roles: []string{authz.RoleHRManager}}

	ok, err := svc.Can(hr, authz.ResourceEmployees, authz.ActionCreate)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Can(hr, authz.ResourceEmployees, authz.ActionDelete)
	assert.NoError(t, err)
	assert.False(t, ok, "hr_manager must not archive employees")

	empl := authz.Actor{UserID: "u2", CompanyID: "c1", Roles: []string{authz.RoleEmployee}}

	ok, err = svc.Can(empl, authz.ResourceEmployees, authz.ActionViewAll)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestCan_MultipleRolesUnion(t *testing.T) {
	svc := newService(t)
	actor := authz.Actor{
		UserID:    "u1",
		CompanyID: "c1",
		Roles:     []string{authz.RoleEmployee, authz.RoleTeamLead},
	}

	ok, err := svc.Can(actor, authz.ResourceEmployees, authz.ActionViewDepartment)
	assert.NoError(t, err)
	assert.True(t, ok, "grant from any held role suffices")
}

func TestCanAccess_CompanyScopeIsHardDeny(t *testing.T) {
	svc := newService(t)

	admin := authz.Actor{UserID: "u1", CompanyID: "c1", Roles: []string{authz.RoleCompanyAdmin}}

	err := svc.CanAccess(admin, authz.ResourceCompanies, authz.ActionUpdate, "c1")
	assert.NoError(t, err)

	// Full grants in the actor's own company mean nothing across tenants.
	err = svc.CanAccess(admin, authz.ResourceCompanies, authz.ActionUpdate, "c2")
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestCanAccess_SuperAdminCrossesTenants(t *testing.T) {
	svc := newService(t)
	actor := authz.Actor{UserID: "u1", Roles: []string{authz.RoleSuperAdmin}}

	assert.NoError(t, svc.CanAccess(actor, authz.ResourceCompanies, authz.ActionDelete, "c2"))
}

func TestCanViewEmployee_Graduated(t *testing.T) {
	svc := newService(t)

	target := authz.EmployeeRef{ID: "e9", CompanyID: "c1", DepartmentID: "d1"}

	hr := authz.Actor{UserID: "u1", CompanyID: "c1", Roles: []string{authz.RoleHRManager}}
	ok, err := svc.CanViewEmployee(hr, target)
	assert.NoError(t, err)
	assert.True(t, ok, "view_all sees every record in the company")

	sameDept := authz.Actor{
		UserID: "u2", CompanyID: "c1", EmployeeID: "e2", DepartmentID: "d1",
		Roles: []string{authz.RoleDepartmentManager},
	}
	ok, err = svc.CanViewEmployee(sameDept, target)
	assert.NoError(t, err)
	assert.True(t, ok)

	otherDept := authz.Actor{
		UserID: "u3", CompanyID: "c1", EmployeeID: "e3", DepartmentID: "d2",
		Roles: []string{authz.RoleDepartmentManager},
	}
	ok, err = svc.CanViewEmployee(otherDept, target)
	assert.NoError(t, err)
	assert.False(t, ok)

	self := authz.Actor{
		UserID: "u9", CompanyID: "c1", EmployeeID: "e9", DepartmentID: "d1",
		Roles: []string{authz.RoleEmployee},
	}
	ok, err = svc.CanViewEmployee(self, target)
	assert.NoError(t, err)
	assert.True(t, ok, "everyone may read their own record")

	peer := authz.Actor{
		UserID: "u4", CompanyID: "c1", EmployeeID: "e4", DepartmentID: "d1",
		Roles: []string{authz.RoleEmployee},
	}
	ok, err = svc.CanViewEmployee(peer, target)
	assert.NoError(t, err)
	assert.False(t, ok, "plain employees cannot browse colleagues")
}

func TestCanViewEmployee_CrossTenantAlwaysDenied(t *testing.T) {
	svc := newService(t)

	target := authz.EmployeeRef{ID: "e9", CompanyID: "c2", DepartmentID: "d1"}
	hr := authz.Actor{UserID: "u1", CompanyID: "c1", Roles: []string{authz.RoleHRManager}}

	ok, err := svc.CanViewEmployee(hr, target)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestCanViewSalary(t *testing.T) {
	svc := newService(t)

	target := authz.EmployeeRef{ID: "e9", CompanyID: "c1", DepartmentID: "d1"}

	hr := authz.Actor{UserID: "u1", CompanyID: "c1", Roles: []string{authz.RoleHRManager}}
	ok, err := svc.CanViewSalary(hr, target)
	assert.NoError(t, err)
	assert.True(t, ok)

	// A department manager sees the record but not the salary.
	mgr := authz.Actor{
		UserID: "u2", CompanyID: "c1", EmployeeID: "e2", DepartmentID: "d1",
		Roles: []string{authz.RoleDepartmentManager},
	}
	ok, err = svc.CanViewSalary(mgr, target)
	assert.NoError(t, err)
	assert.False(t, ok)

	self := authz.Actor{
		UserID: "u9", CompanyID: "c1", EmployeeID: "e9",
		Roles: []string{authz.RoleEmployee},
	}
	ok, err = svc.CanViewSalary(self, target)
	assert.NoError(t, err)
	assert.True(t, ok, "own salary is always visible")
}
