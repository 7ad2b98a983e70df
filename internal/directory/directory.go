package directory

import (
	"time"

	"github.com/danuprasetya/hr-management/internal/rbac"
)

// Employee is the directory's read model: the slice of a profile shown in
// the employee listing, enriched with catalog display data.
type Employee struct {
	ID             string    `db:"id" json:"id"`
	Email          string    `db:"email" json:"email"`
	DisplayName    string    `db:"display_name" json:"display_name"`
	Role           string    `db:"role" json:"role"`
	RoleName       string    `db:"-" json:"role_name"`
	Department     string    `db:"department" json:"department"`
	DepartmentName string    `db:"-" json:"department_name"`
	EmployeeID     string    `db:"employee_id" json:"employee_id"`
	ManagerID      *string   `db:"manager_id" json:"manager_id,omitempty"`
	Status         string    `db:"status" json:"status"`
	AvatarURL      *string   `db:"avatar_url" json:"avatar_url,omitempty"`
	JoinedAt       time.Time `db:"joined_at" json:"joined_at"`
}

// Decorate fills the catalog-derived display fields.
func (e *Employee) Decorate() {
	e.RoleName = rbac.DisplayName(rbac.Role(e.Role))
	e.DepartmentName = rbac.DeptDisplayName(rbac.Department(e.Department))
}
