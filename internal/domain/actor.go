package domain

import "github.com/google/uuid"

// Role is the caller's role as resolved by the auth middleware
type Role string

const (
	RoleClient  Role = "client"
	RoleSalon   Role = "salon"
	RoleManager Role = "manager"
)

// Actor identifies the authenticated caller of a protected operation
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

// IsStaff reports whether the actor acts on behalf of the salon
func (a Actor) IsStaff() bool {
	return a.Role == RoleSalon || a.Role == RoleManager
}
