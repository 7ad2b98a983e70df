package rbac_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/danuprasetya/hr-management/internal/rbac"
)

var _ = Describe("AccessGate", func() {
	Describe("role gating", func() {
		It("should allow any listed role in any-mode", func() {
			gate := rbac.AccessGate{Roles: []rbac.Role{rbac.RoleAdmin, rbac.RoleHRManager}}
			Expect(gate.AllowsRole(rbac.RoleAdmin)).To(BeTrue())
			Expect(gate.AllowsRole(rbac.RoleHRManager)).To(BeTrue())
			Expect(gate.AllowsRole(rbac.RoleEmployee)).To(BeFalse())
		})

		It("should treat an empty role set as no role restriction", func() {
			gate := rbac.AccessGate{}
			Expect(gate.AllowsRole(rbac.RoleIntern)).To(BeTrue())
		})

		It("should satisfy all-mode with a single-role set", func() {
			gate := rbac.AccessGate{
				Roles: []rbac.Role{rbac.RoleAdmin},
				Mode:  rbac.ModeAll,
			}
			Expect(gate.AllowsRole(rbac.RoleAdmin)).To(BeTrue())
			Expect(gate.AllowsRole(rbac.RoleHRManager)).To(BeFalse())
		})

		It("should never satisfy all-mode with multiple roles listed", func() {
			// a profile holds exactly one role, so demanding two can't match
			gate := rbac.AccessGate{
				Roles: []rbac.Role{rbac.RoleAdmin, rbac.RoleSuperAdmin},
				Mode:  rbac.ModeAll,
			}
			for _, role := range rbac.AllRoles {
				Expect(gate.AllowsRole(role)).To(BeFalse(), "role %s", role)
			}
		})
	})

	Describe("permission gating", func() {
		It("should allow any satisfied requirement in any-mode", func() {
			gate := rbac.AccessGate{
				Requirements: []rbac.Requirement{
					{Module: rbac.ModuleSalary, Action: rbac.ActionManage},
					{Module: rbac.ModuleTasks, Action: rbac.ActionView},
				},
			}
			Expect(gate.AllowsRole(rbac.RoleEmployee)).To(BeTrue())
			Expect(gate.AllowsRole(rbac.RoleHRManager)).To(BeTrue())
		})

		It("should demand every requirement in all-mode", func() {
			gate := rbac.AccessGate{
				Requirements: []rbac.Requirement{
					{Module: rbac.ModuleSalary, Action: rbac.ActionManage},
					{Module: rbac.ModuleEmployees, Action: rbac.ActionManage},
				},
				Mode: rbac.ModeAll,
			}
			Expect(gate.AllowsRole(rbac.RoleHRManager)).To(BeTrue())
			Expect(gate.AllowsRole(rbac.RoleDepartmentManager)).To(BeFalse())
			Expect(gate.AllowsRole(rbac.RoleSuperAdmin)).To(BeTrue())
		})

		It("should combine role and permission restrictions", func() {
			gate := rbac.AccessGate{
				Roles: []rbac.Role{rbac.RoleTeamLead, rbac.RoleDepartmentManager},
				Requirements: []rbac.Requirement{
					{Module: rbac.ModuleTasks, Action: rbac.ActionDelete},
				},
			}
			Expect(gate.AllowsRole(rbac.RoleTeamLead)).To(BeTrue())
			Expect(gate.AllowsRole(rbac.RoleDepartmentManager)).To(BeTrue())
			// holds the permission but not the role
			Expect(gate.AllowsRole(rbac.RoleAdmin)).To(BeFalse())
			// holds the role slot but not the permission
			Expect(gate.AllowsRole(rbac.RoleEmployee)).To(BeFalse())
		})
	})

	Describe("task deletion gate", func() {
		gate := rbac.RequirePermission(rbac.ModuleTasks, rbac.ActionDelete)

		It("should admit department managers and team leads", func() {
			Expect(gate.AllowsRole(rbac.RoleDepartmentManager)).To(BeTrue())
			Expect(gate.AllowsRole(rbac.RoleTeamLead)).To(BeTrue())
		})

		It("should refuse employees and interns", func() {
			Expect(gate.AllowsRole(rbac.RoleEmployee)).To(BeFalse())
			Expect(gate.AllowsRole(rbac.RoleIntern)).To(BeFalse())
		})
	})

	Describe("presets", func() {
		It("ManagerTier should start at team lead", func() {
			gate := rbac.ManagerTier()
			Expect(gate.AllowsRole(rbac.RoleTeamLead)).To(BeTrue())
			Expect(gate.AllowsRole(rbac.RoleSeniorEmployee)).To(BeFalse())
		})

		It("HRTier should admit HR managers and admins only", func() {
			gate := rbac.HRTier()
			Expect(gate.AllowsRole(rbac.RoleHRManager)).To(BeTrue())
			Expect(gate.AllowsRole(rbac.RoleAdmin)).To(BeTrue())
			Expect(gate.AllowsRole(rbac.RoleDepartmentManager)).To(BeFalse())
		})

		It("AdminTier should admit admins only", func() {
			gate := rbac.AdminTier()
			Expect(gate.AllowsRole(rbac.RoleSuperAdmin)).To(BeTrue())
			Expect(gate.AllowsRole(rbac.RoleHRManager)).To(BeFalse())
		})

		It("EmployeeTier should admit every known role but no unknown one", func() {
			gate := rbac.EmployeeTier()
			for _, role := range rbac.AllRoles {
				Expect(gate.AllowsRole(role)).To(BeTrue(), "role %s", role)
			}
			Expect(gate.AllowsRole(rbac.Role("contractor"))).To(BeFalse())
		})
	})
})
