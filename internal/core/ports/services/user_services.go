package services

import (
	"context"

	"github.com/finnconnect/finnconnect/internal/core/domain"
)

// UserSvcFacade defines the interface for user registration and login.
type UserSvcFacade interface {
	// RegisterUser hashes the password and upserts the user. Returns the
	// stored user with its id set. Re-registering a username or email under
	// a different pair yields apperrors.ErrDuplicate.
	RegisterUser(ctx context.Context, user domain.User, password string) (*domain.User, error)
	// LoginUser verifies the password against the stored hash and returns a
	// signed JWT together with the user. A wrong password or unknown
	// username yields apperrors.ErrUnauthorized.
	LoginUser(ctx context.Context, username, password string, rememberMe bool) (string, *domain.User, error)
	// GetUserByUsername returns the stored user, or apperrors.ErrNotFound.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
