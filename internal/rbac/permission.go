package rbac

// ModuleAll is the sentinel module granting an action set across every module.
const ModuleAll = "all"

// Module identifiers for the functional areas of the application.
const (
	ModuleDashboard     = "dashboard"
	ModuleEmployees     = "employees"
	ModuleTasks         = "tasks"
	ModuleApprovals     = "approvals"
	ModuleClaims        = "claims"
	ModuleAnnouncements = "announcements"
	ModuleSalary        = "salary"
	ModuleHiring        = "hiring"
	ModuleReports       = "reports"
	ModuleSettings      = "settings"
)

// Permission grants a set of actions on one module (or ModuleAll).
type Permission struct {
	Module  string   `json:"module"`
	Actions []Action `json:"actions"`
}

// Allows reports whether this entry covers the requested module and action.
func (p Permission) Allows(module string, action Action) bool {
	if p.Module != module && p.Module != ModuleAll {
		return false
	}
	for _, a := range p.Actions {
		if a == action {
			return true
		}
	}
	return false
}
