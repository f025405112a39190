package repositories

import (
	"context"
	"time"

	"github.com/finnconnect/finnconnect/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// GetUserByUsername returns the user with the given username, or
	// apperrors.ErrNotFound when none exists.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// UpsertUser inserts the user or, when the username and email already
	// exist, updates the mutable fields. Returns the user id. A username or
	// email already registered under a different pair yields
	// apperrors.ErrDuplicate.
	UpsertUser(ctx context.Context, user domain.User) (string, error)
	// UpdateLastLoginAt records a successful login.
	UpdateLastLoginAt(ctx context.Context, userID string, at time.Time) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
