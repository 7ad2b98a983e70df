package profile

import (
	"encoding/json"
	"fmt"
	"time"

	profileDatamodel "github.com/danuprasetya/hr-management/internal/core/datamodel/profile"
	"github.com/danuprasetya/hr-management/internal/rbac"
)

// Status is the profile lifecycle state. pending_verification moves to
// active only after the identity provider reports the contact as verified;
// it never reverts automatically.
type Status string

const (
	StatusActive              Status = "active"
	StatusInactive            Status = "inactive"
	StatusPendingVerification Status = "pending_verification"
)

// UserProfile is the authoritative record for one employee. ID matches the
// identity provider's principal id. ManagerID is a weak reference to another
// profile's id.
type UserProfile struct {
	ID          string          `json:"id"`
	Email       string          `json:"email"`
	DisplayName string          `json:"display_name"`
	Role        rbac.Role       `json:"role"`
	Department  rbac.Department `json:"department"`
	// Permissions is the reserved per-user override list. It is persisted
	// and always created empty; the resolver reads only the role catalog.
	Permissions      []rbac.Permission `json:"permissions"`
	ManagerID        *string           `json:"manager_id,omitempty"`
	EmployeeID       string            `json:"employee_id"`
	JoinedAt         time.Time         `json:"joined_at"`
	Status           Status            `json:"status"`
	AvatarURL        *string           `json:"avatar_url,omitempty"`
	Phone            *string           `json:"phone,omitempty"`
	Address          *string           `json:"address,omitempty"`
	EmergencyContact *string           `json:"emergency_contact,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func (p *UserProfile) IsActive() bool {
	return p.Status == StatusActive
}

// GenerateEmployeeID derives an employee id from the creation instant.
func GenerateEmployeeID(at time.Time) string {
	return fmt.Sprintf("EMP%d", at.UnixMilli())
}

// New builds a freshly created profile with the given defaults. Verified
// controls the initial lifecycle status.
func New(id, email, displayName string, role rbac.Role, dept rbac.Department, verified bool) *UserProfile {
	now := time.Now()
	status := StatusPendingVerification
	if verified {
		status = StatusActive
	}
	return &UserProfile{
		ID:          id,
		Email:       email,
		DisplayName: displayName,
		Role:        role,
		Department:  dept,
		Permissions: []rbac.Permission{},
		EmployeeID:  GenerateEmployeeID(now),
		JoinedAt:    now,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Update carries the fields an explicit profile update may set. Nil fields
// are left unchanged; the merge is shallow.
type Update struct {
	DisplayName      *string          `json:"display_name,omitempty"`
	Role             *rbac.Role       `json:"role,omitempty"`
	Department       *rbac.Department `json:"department,omitempty"`
	ManagerID        *string          `json:"manager_id,omitempty"`
	AvatarURL        *string          `json:"avatar_url,omitempty"`
	Phone            *string          `json:"phone,omitempty"`
	Address          *string          `json:"address,omitempty"`
	EmergencyContact *string          `json:"emergency_contact,omitempty"`
}

func (u Update) Validate() error {
	if u.Role != nil && !u.Role.Valid() {
		return fmt.Errorf("unknown role: %q", *u.Role)
	}
	if u.Department != nil && !u.Department.Valid() {
		return fmt.Errorf("unknown department: %q", *u.Department)
	}
	return nil
}

// Merged returns a copy of the profile with the update applied. Readers only
// ever observe whole replacement profiles, never partial in-place mutation.
func (p UserProfile) Merged(u Update) UserProfile {
	if u.DisplayName != nil {
		p.DisplayName = *u.DisplayName
	}
	if u.Role != nil {
		p.Role = *u.Role
	}
	if u.Department != nil {
		p.Department = *u.Department
	}
	if u.ManagerID != nil {
		p.ManagerID = u.ManagerID
	}
	if u.AvatarURL != nil {
		p.AvatarURL = u.AvatarURL
	}
	if u.Phone != nil {
		p.Phone = u.Phone
	}
	if u.Address != nil {
		p.Address = u.Address
	}
	if u.EmergencyContact != nil {
		p.EmergencyContact = u.EmergencyContact
	}
	p.UpdatedAt = time.Now()
	return p
}

func ToDataModel(p *UserProfile) *profileDatamodel.UserProfile {
	perms, err := json.Marshal(p.Permissions)
	if err != nil {
		perms = []byte("[]")
	}
	return &profileDatamodel.UserProfile{
		ID:               p.ID,
		Email:            p.Email,
		DisplayName:      p.DisplayName,
		Role:             string(p.Role),
		Department:       string(p.Department),
		Permissions:      string(perms),
		ManagerID:        p.ManagerID,
		EmployeeID:       p.EmployeeID,
		JoinedAt:         p.JoinedAt,
		Status:           string(p.Status),
		AvatarURL:        p.AvatarURL,
		Phone:            p.Phone,
		Address:          p.Address,
		EmergencyContact: p.EmergencyContact,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func FromDataModel(m *profileDatamodel.UserProfile) *UserProfile {
	var perms []rbac.Permission
	if m.Permissions != "" {
		// a corrupt override list falls back to empty, never blocks a load
		_ = json.Unmarshal([]byte(m.Permissions), &perms)
	}
	if perms == nil {
		perms = []rbac.Permission{}
	}
	return &UserProfile{
		ID:               m.ID,
		Email:            m.Email,
		DisplayName:      m.DisplayName,
		Role:             rbac.Role(m.Role),
		Department:       rbac.Department(m.Department),
		Permissions:      perms,
		ManagerID:        m.ManagerID,
		EmployeeID:       m.EmployeeID,
		JoinedAt:         m.JoinedAt,
		Status:           Status(m.Status),
		AvatarURL:        m.AvatarURL,
		Phone:            m.Phone,
		Address:          m.Address,
		EmergencyContact: m.EmergencyContact,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
