package rbac

import "fmt"

// defaultPermissions is the authoritative role → permission table. Entries
// are scanned in order and the first match wins; authors must not rely on a
// later entry overriding an earlier one for the same module.
var defaultPermissions = map[Role][]Permission{
	RoleSuperAdmin: {
		{Module: ModuleAll, Actions: []Action{ActionView, ActionCreate, ActionEdit, ActionDelete, ActionApprove, ActionManage}},
	},
	RoleAdmin: {
		{Module: ModuleAll, Actions: []Action{ActionView, ActionCreate, ActionEdit, ActionDelete, ActionApprove, ActionManage}},
	},
	RoleHRManager: {
		{Module: ModuleDashboard, Actions: []Action{ActionView}},
		{Module: ModuleEmployees, Actions: []Action{ActionView, ActionCreate, ActionEdit, ActionManage}},
		{Module: ModuleHiring, Actions: []Action{ActionView, ActionCreate, ActionEdit, ActionApprove, ActionManage}},
		{Module: ModuleSalary, Actions: []Action{ActionView, ActionEdit, ActionManage}},
		{Module: ModuleClaims, Actions: []Action{ActionView, ActionApprove}},
		{Module: ModuleApprovals, Actions: []Action{ActionView, ActionApprove}},
		{Module: ModuleAnnouncements, Actions: []Action{ActionView, ActionCreate, ActionEdit}},
		{Module: ModuleTasks, Actions: []Action{ActionView, ActionCreate, ActionEdit}},
		{Module: ModuleReports, Actions: []Action{ActionView}},
	},
	RoleDepartmentManager: {
		{Module: ModuleDashboard, Actions: []Action{ActionView}},
		{Module: ModuleEmployees, Actions: []Action{ActionView}},
		{Module: ModuleTasks, Actions: []Action{ActionView, ActionCreate, ActionEdit, ActionDelete, ActionApprove}},
		{Module: ModuleApprovals, Actions: []Action{ActionView, ActionApprove}},
		{Module: ModuleClaims, Actions: []Action{ActionView, ActionApprove}},
		{Module: ModuleAnnouncements, Actions: []Action{ActionView, ActionCreate}},
		{Module: ModuleSalary, Actions: []Action{ActionView}},
		{Module: ModuleReports, Actions: []Action{ActionView}},
	},
	RoleTeamLead: {
		{Module: ModuleDashboard, Actions: []Action{ActionView}},
		{Module: ModuleEmployees, Actions: []Action{ActionView}},
		{Module: ModuleTasks, Actions: []Action{ActionView, ActionCreate, ActionEdit, ActionDelete}},
		{Module: ModuleApprovals, Actions: []Action{ActionView, ActionApprove}},
		{Module: ModuleClaims, Actions: []Action{ActionView, ActionCreate}},
		{Module: ModuleAnnouncements, Actions: []Action{ActionView}},
		{Module: ModuleSalary, Actions: []Action{ActionView}},
	},
	RoleSeniorEmployee: {
		{Module: ModuleDashboard, Actions: []Action{ActionView}},
		{Module: ModuleEmployees, Actions: []Action{ActionView}},
		{Module: ModuleTasks, Actions: []Action{ActionView, ActionCreate, ActionEdit}},
		{Module: ModuleApprovals, Actions: []Action{ActionView}},
		{Module: ModuleClaims, Actions: []Action{ActionView, ActionCreate}},
		{Module: ModuleAnnouncements, Actions: []Action{ActionView}},
		{Module: ModuleSalary, Actions: []Action{ActionView}},
	},
	RoleEmployee: {
		{Module: ModuleDashboard, Actions: []Action{ActionView}},
		{Module: ModuleEmployees, Actions: []Action{ActionView}},
		{Module: ModuleTasks, Actions: []Action{ActionView, ActionCreate, ActionEdit}},
		{Module: ModuleClaims, Actions: []Action{ActionView, ActionCreate}},
		{Module: ModuleAnnouncements, Actions: []Action{ActionView}},
		{Module: ModuleSalary, Actions: []Action{ActionView}},
	},
	RoleIntern: {
		{Module: ModuleDashboard, Actions: []Action{ActionView}},
		{Module: ModuleEmployees, Actions: []Action{ActionView}},
		{Module: ModuleTasks, Actions: []Action{ActionView}},
		{Module: ModuleAnnouncements, Actions: []Action{ActionView}},
	},
}

func init() {
	// A role without a catalog entry is a configuration bug; fail at startup
	// rather than denying everything silently at runtime.
	for _, role := range AllRoles {
		if _, ok := defaultPermissions[role]; !ok {
			panic(fmt.Sprintf("rbac: role %q has no default permission entry", role))
		}
		if _, ok := roleCatalog[role]; !ok {
			panic(fmt.Sprintf("rbac: role %q has no rank entry", role))
		}
	}
}

// DefaultPermissions returns the ordered permission list for a role. Unknown
// roles return nil, which resolves to deny everywhere.
func DefaultPermissions(role Role) []Permission {
	return defaultPermissions[role]
}
