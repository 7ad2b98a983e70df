package rbac

// Department is the closed set of organizational departments. The catalog is
// used for display and grouping only; it never feeds authorization decisions.
type Department string

const (
	DeptEngineering    Department = "engineering"
	DeptProduct        Department = "product"
	DeptDesign         Department = "design"
	DeptMarketing      Department = "marketing"
	DeptSales          Department = "sales"
	DeptFinance        Department = "finance"
	DeptHumanResources Department = "human_resources"
	DeptOperations     Department = "operations"
	DeptLegal          Department = "legal"
)

var AllDepartments = []Department{
	DeptEngineering,
	DeptProduct,
	DeptDesign,
	DeptMarketing,
	DeptSales,
	DeptFinance,
	DeptHumanResources,
	DeptOperations,
	DeptLegal,
}

type departmentInfo struct {
	DisplayName   string
	ColorTag      string
	NativeModules []string
	ManagerRole   Role
}

var departmentCatalog = map[Department]departmentInfo{
	DeptEngineering: {
		DisplayName:   "Engineering",
		ColorTag:      "blue",
		NativeModules: []string{ModuleTasks, ModuleApprovals},
		ManagerRole:   RoleDepartmentManager,
	},
	DeptProduct: {
		DisplayName:   "Product",
		ColorTag:      "indigo",
		NativeModules: []string{ModuleTasks, ModuleReports},
		ManagerRole:   RoleDepartmentManager,
	},
	DeptDesign: {
		DisplayName:   "Design",
		ColorTag:      "pink",
		NativeModules: []string{ModuleTasks},
		ManagerRole:   RoleTeamLead,
	},
	DeptMarketing: {
		DisplayName:   "Marketing",
		ColorTag:      "orange",
		NativeModules: []string{ModuleTasks, ModuleAnnouncements},
		ManagerRole:   RoleDepartmentManager,
	},
	DeptSales: {
		DisplayName:   "Sales",
		ColorTag:      "green",
		NativeModules: []string{ModuleTasks, ModuleReports},
		ManagerRole:   RoleDepartmentManager,
	},
	DeptFinance: {
		DisplayName:   "Finance",
		ColorTag:      "emerald",
		NativeModules: []string{ModuleClaims, ModuleSalary, ModuleReports},
		ManagerRole:   RoleDepartmentManager,
	},
	DeptHumanResources: {
		DisplayName:   "Human Resources",
		ColorTag:      "purple",
		NativeModules: []string{ModuleEmployees, ModuleHiring, ModuleSalary},
		ManagerRole:   RoleHRManager,
	},
	DeptOperations: {
		DisplayName:   "Operations",
		ColorTag:      "amber",
		NativeModules: []string{ModuleTasks, ModuleSettings},
		ManagerRole:   RoleDepartmentManager,
	},
	DeptLegal: {
		DisplayName:   "Legal",
		ColorTag:      "slate",
		NativeModules: []string{ModuleReports},
		ManagerRole:   RoleDepartmentManager,
	},
}

func (d Department) Valid() bool {
	_, ok := departmentCatalog[d]
	return ok
}

func DeptDisplayName(dept Department) string {
	return departmentCatalog[dept].DisplayName
}

func DeptColorTag(dept Department) string {
	return departmentCatalog[dept].ColorTag
}

func NativeModules(dept Department) []string {
	return departmentCatalog[dept].NativeModules
}

func ManagerRole(dept Department) Role {
	return departmentCatalog[dept].ManagerRole
}
