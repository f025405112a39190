package domain

import "time"

// Role classifies what a user is allowed to do.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
	RoleGuest Role = "GUEST"
)

// IsValid reports whether the role is one of the known values.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleGuest:
		return true
	}
	return false
}

// User represents a registered user. The plaintext password never reaches
// this type; only the bcrypt hash is carried.
type User struct {
	ID            string     `json:"id,omitempty"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	FullName      string     `json:"fullName"`
	PasswordHash  string     `json:"-"`
	Role          Role       `json:"role"`
	RememberMe    bool       `json:"rememberMe"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastUpdatedAt *time.Time `json:"lastUpdatedAt,omitempty"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
}
