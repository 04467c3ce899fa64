package models

import (
	"fmt"
	"time"
)

// Role defines the user role type. It is a closed set: every value read from
// storage or a request passes through ParseRole.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// ParseRole decodes a stored or supplied role string, rejecting unknown values.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleStudent, RoleAdmin:
		return Role(value), nil
	default:
		return "", fmt.Errorf("unrecognized role: %q", value)
	}
}

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Email     string    `json:"email" db:"email" example:"admin@coursehub.app"`           // User's email address (unique)
	Username  string    `json:"username" db:"username" example:"admin"`                   // User's username (unique)
	Password  string    `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	Role      Role      `json:"role" db:"role" example:"student"`                         // User's role (student or admin)
	IsActive  bool      `json:"isActive" db:"is_active" example:"true"`                   // Whether the user account is active
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
