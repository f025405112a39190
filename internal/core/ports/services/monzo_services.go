package services

import (
	"context"

	"github.com/finnconnect/finnconnect/internal/core/domain"
)

// MonzoSvcFacade defines the interface for the Monzo OAuth flow and the
// account queries made with the stored token.
type MonzoSvcFacade interface {
	// GenerateStateString creates a secure random string used as the CSRF
	// token for the OAuth flow.
	GenerateStateString() (string, error)
	// GetAuthURL returns the Monzo consent URL for the given state.
	GetAuthURL(state string) string
	// HandleCallback exchanges the authorization code and stores the
	// resulting token for its provider user.
	HandleCallback(ctx context.Context, code string) (*domain.TokenResponse, error)
	// WhoAmI checks the stored token's identity with Monzo.
	WhoAmI(ctx context.Context) (*domain.WhoAmIResponse, error)
	// Accounts lists the accounts visible to the stored token.
	Accounts(ctx context.Context) (*domain.MonzoAccountsResponse, error)
	// Balance returns the balance of the configured account.
	Balance(ctx context.Context) (*domain.BalanceResponse, error)
}
