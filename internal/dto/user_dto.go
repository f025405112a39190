package dto

import (
	"time"

	"github.com/finnconnect/finnconnect/internal/core/domain"
)

// CreateUserRequest defines the structure for registering a user.
type CreateUserRequest struct {
	Username   string `json:"username" binding:"required,min=3,max=64"`
	Email      string `json:"email" binding:"required,email"`
	FullName   string `json:"fullName" binding:"required"`
	Password   string `json:"password" binding:"required,min=8"`
	Role       string `json:"role" binding:"omitempty,oneof=ADMIN USER GUEST"`
	RememberMe bool   `json:"rememberMe"`
}

// ToDomainUser converts the request to a domain user without credentials;
// the service hashes the password separately.
func (r CreateUserRequest) ToDomainUser() domain.User {
	return domain.User{
		Username:   r.Username,
		Email:      r.Email,
		FullName:   r.FullName,
		Role:       domain.Role(r.Role),
		RememberMe: r.RememberMe,
	}
}

// UserResponse is the public projection of a user. The password hash never
// leaves the service layer.
type UserResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FullName    string     `json:"fullName"`
	Role        string     `json:"role"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// ToUserResponse converts a domain.User to its public projection.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FullName:    user.FullName,
		Role:        string(user.Role),
		CreatedAt:   user.CreatedAt,
		LastLoginAt: user.LastLoginAt,
	}
}
