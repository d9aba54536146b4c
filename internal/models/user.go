package models

import "time"

// RoleType enumerates the roles a user may hold within an institution.
type RoleType string

const (
	RoleStudent               RoleType = "student"
	RoleFaculty               RoleType = "faculty"
	RoleStaff                 RoleType = "staff"
	RoleAdmin                 RoleType = "admin"
	RoleSuper                 RoleType = "super"
	RoleDepartmentAdmin       RoleType = "department-admin"
	RoleDepartmentCoordinator RoleType = "department-coordinator"
)

// Valid returns true when the role is a supported value.
func (r RoleType) Valid() bool {
	switch r {
	case RoleStudent, RoleFaculty, RoleStaff, RoleAdmin, RoleSuper, RoleDepartmentAdmin, RoleDepartmentCoordinator:
		return true
	default:
		return false
	}
}

// User is the root identity record.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRoleAssignment grants a role to a user. A user may hold many roles.
type UserRoleAssignment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      RoleType  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserDetail extends a user with its assigned roles.
type UserDetail struct {
	User
	Roles []RoleType `json:"roles"`
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	Role     RoleType
	Active   *bool
	Search   string
	Page     int
	PageSize int
}
