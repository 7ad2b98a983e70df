package profile

import "time"

// UserProfile is the persisted profile record, keyed by the identity
// provider's principal id. Permissions holds the reserved per-user override
// list serialized as JSON.
type UserProfile struct {
	ID               string    `gorm:"primaryKey;column:id"`
	Email            string    `gorm:"column:email;uniqueIndex;not null"`
	DisplayName      string    `gorm:"column:display_name"`
	Role             string    `gorm:"column:role;not null"`
	Department       string    `gorm:"column:department;not null"`
	Permissions      string    `gorm:"column:permissions;default:'[]'"`
	ManagerID        *string   `gorm:"column:manager_id"`
	EmployeeID       string    `gorm:"column:employee_id;not null"`
	JoinedAt         time.Time `gorm:"column:joined_at"`
	Status           string    `gorm:"column:status;default:pending_verification"`
	AvatarURL        *string   `gorm:"column:avatar_url"`
	Phone            *string   `gorm:"column:phone"`
	Address          *string   `gorm:"column:address"`
	EmergencyContact *string   `gorm:"column:emergency_contact"`
	CreatedAt        time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt        time.Time `gorm:"column:updated_at;default:now()"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
