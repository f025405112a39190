package repositories

import (
	"context"

	"github.com/finnconnect/finnconnect/internal/core/domain"
)

// OAuthTokenReader defines read operations for stored provider tokens
type OAuthTokenReader interface {
	// GetTokenByUserID returns the stored token for the provider user, or
	// apperrors.ErrNotFound when none exists.
	GetTokenByUserID(ctx context.Context, userID string) (*domain.TokenResponse, error)
}

// OAuthTokenWriter defines write operations for stored provider tokens
type OAuthTokenWriter interface {
	// UpsertToken stores the token, fully replacing any existing row for the
	// same provider user.
	UpsertToken(ctx context.Context, token domain.TokenResponse) error
	// DeleteTokenByUserID removes the stored token for the provider user.
	// Deleting a non-existent token is not an error.
	DeleteTokenByUserID(ctx context.Context, userID string) error
}

// OAuthTokenRepositoryFacade combines all token-related repository interfaces
type OAuthTokenRepositoryFacade interface {
	OAuthTokenReader
	OAuthTokenWriter
}
