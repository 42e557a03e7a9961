package authz

// Static role-to-permission grants, seeded at startup. The grant table is
// not runtime-mutable; super_admin holds no grants because it short-circuits
// before evaluation.
var roleGrants = map[string][]string{
	RoleCompanyAdmin: {
		Permission(ResourceCompanies, ActionView),
		Permission(ResourceCompanies, ActionUpdate),
		Permission(ResourceCompanies, ActionManageSettings),
		Permission(ResourceLocations, ActionView),
		Permission(ResourceLocations, ActionCreate),
		Permission(ResourceLocations, ActionUpdate),
		Permission(ResourceLocations, ActionDelete),
		Permission(ResourceDepartments, ActionView),
		Permission(ResourceDepartments, ActionCreate),
		Permission(ResourceDepartments, ActionUpdate),
		Permission(ResourceDepartments, ActionDelete),
		Permission(ResourceJobTitles, ActionView),
		Permission(ResourceJobTitles, ActionCreate),
		Permission(ResourceJobTitles, ActionUpdate),
		Permission(ResourceJobTitles, ActionDelete),
		Permission(ResourceEmployees, ActionView),
		Permission(ResourceEmployees, ActionViewAll),
		Permission(ResourceEmployees, ActionCreate),
		Permission(ResourceEmployees, ActionUpdate),
		Permission(ResourceEmployees, ActionDelete),
		Permission(ResourceEmployees, ActionRestore),
		Permission(ResourceEmployees, ActionViewSalary),
		Permission(ResourceEmployees, ActionUpdateSalary),
		Permission(ResourceUsers, ActionView),
		Permission(ResourceUsers, ActionCreate),
		Permission(ResourceUsers, ActionUpdate),
		Permission(ResourceUsers, ActionDelete),
	},
	RoleHRManager: {
		Permission(ResourceLocations, ActionView),
		Permission(ResourceDepartments, ActionView),
		Permission(ResourceJobTitles, ActionView),
		Permission(ResourceJobTitles, ActionCreate),
		Permission(ResourceJobTitles, ActionUpdate),
		Permission(ResourceEmployees, ActionView),
		Permission(ResourceEmployees, ActionViewAll),
		Permission(ResourceEmployees, ActionCreate),
		Permission(ResourceEmployees, ActionUpdate),
		Permission(ResourceEmployees, ActionViewSalary),
		Permission(ResourceEmployees, ActionUpdateSalary),
		Permission(ResourceUsers, ActionView),
	},
	RoleDepartmentManager: {
		Permission(ResourceLocations, ActionView),
		Permission(ResourceDepartments, ActionView),
		Permission(ResourceJobTitles, ActionView),
		Permission(ResourceEmployees, ActionView),
		Permission(ResourceEmployees, ActionViewDepartment),
	},
	RoleTeamLead: {
		Permission(ResourceLocations, ActionView),
		Permission(ResourceDepartments, ActionView),
		Permission(ResourceJobTitles, ActionView),
		Permission(ResourceEmployees, ActionView),
		Permission(ResourceEmployees, ActionViewDepartment),
	},
	RoleEmployee: {
		Permission(ResourceLocations, ActionView),
		Permission(ResourceDepartments, ActionView),
		Permission(ResourceJobTitles, ActionView),
		Permission(ResourceEmployees, ActionView),
	},
}
