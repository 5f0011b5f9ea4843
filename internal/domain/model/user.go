package model

import "time"

// Role controls access to admin endpoints.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered storefront customer or administrator.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// IsAdmin reports whether user may access admin endpoints.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
