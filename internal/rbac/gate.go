package rbac

// Mode controls how a gate combines its role and requirement sets.
type Mode string

const (
	ModeAny Mode = "any"
	ModeAll Mode = "all"
)

// Requirement names a single module/action pair a gate can demand.
type Requirement struct {
	Module string
	Action Action
}

// AccessGate is a declarative guard composing resolver decisions. An empty
// role set means no role restriction; an empty requirement set means no
// permission restriction. The zero Mode is ModeAny.
type AccessGate struct {
	Roles        []Role
	Requirements []Requirement
	Mode         Mode
}

// AllowsRole evaluates the gate for a single role. Callers holding a session
// must deny before calling this when no profile is active.
//
// In ModeAll a multi-role set can never be satisfied, since a profile holds
// exactly one role; that literal behavior is kept on purpose.
func (g AccessGate) AllowsRole(role Role) bool {
	mode := g.Mode
	if mode == "" {
		mode = ModeAny
	}

	roleOK := len(g.Roles) == 0
	if !roleOK {
		if mode == ModeAll {
			roleOK = true
			for _, r := range g.Roles {
				if r != role {
					roleOK = false
					break
				}
			}
		} else {
			for _, r := range g.Roles {
				if r == role {
					roleOK = true
					break
				}
			}
		}
	}

	permOK := len(g.Requirements) == 0
	if !permOK {
		if mode == ModeAll {
			permOK = true
			for _, req := range g.Requirements {
				if !HasPermission(role, req.Module, req.Action) {
					permOK = false
					break
				}
			}
		} else {
			for _, req := range g.Requirements {
				if HasPermission(role, req.Module, req.Action) {
					permOK = true
					break
				}
			}
		}
	}

	return roleOK && permOK
}

// ---- named presets ----

// ManagerTier gates on roles that lead people or a department.
func ManagerTier() AccessGate {
	return AccessGate{Roles: []Role{RoleTeamLead, RoleDepartmentManager, RoleHRManager, RoleAdmin, RoleSuperAdmin}}
}

// HRTier gates on HR management and above.
func HRTier() AccessGate {
	return AccessGate{Roles: []Role{RoleHRManager, RoleAdmin, RoleSuperAdmin}}
}

// AdminTier gates on administrators only.
func AdminTier() AccessGate {
	return AccessGate{Roles: []Role{RoleAdmin, RoleSuperAdmin}}
}

// EmployeeTier gates on any known role, i.e. any authenticated employee.
func EmployeeTier() AccessGate {
	return AccessGate{Roles: AllRoles}
}

// RequirePermission is the single-permission convenience gate.
func RequirePermission(module string, action Action) AccessGate {
	return AccessGate{Requirements: []Requirement{{Module: module, Action: action}}}
}
