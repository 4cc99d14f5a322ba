package domain

import "time"

// Role identifies what a user is allowed to do in the editorial pipeline.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleEditor    Role = "editor"
	RoleReviewer  Role = "reviewer"
	RolePublisher Role = "publisher"
	RoleUser      Role = "user"
)

// ValidRoles contains all valid user roles.
var ValidRoles = []Role{RoleAdmin, RoleEditor, RoleReviewer, RolePublisher, RoleUser}

// IsValidRole checks if a role is valid.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if string(r) == role {
			return true
		}
	}
	return false
}

// User represents a user entity in the system.
// TotalViews accumulates unique views across all articles the user authored.
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	TotalViews int       `json:"total_views"`
	CreatedAt  time.Time `json:"created_at"`
}

// IsStaff reports whether the user holds one of the editorial staff roles.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleEditor || u.Role == RoleReviewer
}
