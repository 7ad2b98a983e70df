package rbac

// Role is the closed set of user roles. Permissions are assigned per role
// through the default catalog, not derived from rank.
type Role string

const (
	RoleIntern            Role = "intern"
	RoleEmployee          Role = "employee"
	RoleSeniorEmployee    Role = "senior_employee"
	RoleTeamLead          Role = "team_lead"
	RoleDepartmentManager Role = "department_manager"
	RoleHRManager         Role = "hr_manager"
	RoleAdmin             Role = "admin"
	RoleSuperAdmin        Role = "super_admin"
)

// AllRoles lists every role. Catalog completeness is checked against this
// slice at init, so adding a role here without a catalog entry fails fast.
var AllRoles = []Role{
	RoleIntern,
	RoleEmployee,
	RoleSeniorEmployee,
	RoleTeamLead,
	RoleDepartmentManager,
	RoleHRManager,
	RoleAdmin,
	RoleSuperAdmin,
}

type roleInfo struct {
	Rank        int
	DisplayName string
	ColorTag    string
}

var roleCatalog = map[Role]roleInfo{
	RoleIntern:            {Rank: 30, DisplayName: "Intern", ColorTag: "gray"},
	RoleEmployee:          {Rank: 40, DisplayName: "Employee", ColorTag: "blue"},
	RoleSeniorEmployee:    {Rank: 50, DisplayName: "Senior Employee", ColorTag: "cyan"},
	RoleTeamLead:          {Rank: 60, DisplayName: "Team Lead", ColorTag: "teal"},
	RoleDepartmentManager: {Rank: 70, DisplayName: "Department Manager", ColorTag: "green"},
	RoleHRManager:         {Rank: 80, DisplayName: "HR Manager", ColorTag: "purple"},
	RoleAdmin:             {Rank: 90, DisplayName: "Administrator", ColorTag: "orange"},
	RoleSuperAdmin:        {Rank: 100, DisplayName: "Super Administrator", ColorTag: "red"},
}

func (r Role) Valid() bool {
	_, ok := roleCatalog[r]
	return ok
}

// Rank returns the seniority rank for a role, 0 for unknown roles.
func Rank(role Role) int {
	return roleCatalog[role].Rank
}

func DisplayName(role Role) string {
	return roleCatalog[role].DisplayName
}

func ColorTag(role Role) string {
	return roleCatalog[role].ColorTag
}

// AtLeast reports whether role ranks at or above min. Used for relative
// seniority display ("manager or above"), never for permission resolution.
func AtLeast(role, min Role) bool {
	return Rank(role) >= Rank(min) && Rank(role) > 0
}
