package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finnconnect/finnconnect/internal/core/domain"
	portsprov "github.com/finnconnect/finnconnect/internal/core/ports/providers"
	portssvc "github.com/finnconnect/finnconnect/internal/core/ports/services"
	"github.com/finnconnect/finnconnect/internal/platform/clock"
	"github.com/finnconnect/finnconnect/internal/utils"
)

// MonzoService drives the OAuth flow against Monzo and answers account
// queries with the stored token. The service is bound to a single configured
// Monzo user and account.
type MonzoService struct {
	client    portsprov.MonzoAPI
	tokens    portssvc.OAuthTokenSvcFacade
	clock     clock.Clock
	userID    string
	accountID string
}

// NewMonzoService creates a new MonzoService.
func NewMonzoService(client portsprov.MonzoAPI, tokens portssvc.OAuthTokenSvcFacade, clk clock.Clock, userID, accountID string) *MonzoService {
	return &MonzoService{
		client:    client,
		tokens:    tokens,
		clock:     clk,
		userID:    userID,
		accountID: accountID,
	}
}

// GenerateStateString creates the CSRF token for the OAuth flow.
func (s *MonzoService) GenerateStateString() (string, error) {
	return utils.GenerateSecureRandomString(32)
}

// GetAuthURL returns the Monzo consent URL for the given state.
func (s *MonzoService) GetAuthURL(state string) string {
	return s.client.AuthCodeURL(state)
}

// HandleCallback exchanges the authorization code, stamps the receipt time
// and stores the resulting token. The token is returned even when storing it
// fails; the user is authenticated either way and storage is best effort.
func (s *MonzoService) HandleCallback(ctx context.Context, code string) (*domain.TokenResponse, error) {
	token, err := s.client.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to complete authorization: %w", err)
	}
	token.IssuedAt = s.clock.Now().Unix()
	if token.UserID == "" {
		token.UserID = s.userID
	}
	if ok := s.tokens.SaveToken(ctx, *token); !ok {
		slog.WarnContext(ctx, "Exchanged token could not be stored", slog.String("user_id", token.UserID))
	}
	return token, nil
}

// WhoAmI checks the stored token's identity with Monzo.
func (s *MonzoService) WhoAmI(ctx context.Context) (*domain.WhoAmIResponse, error) {
	accessToken, err := s.tokens.GetValidAccessToken(ctx, s.userID)
	if err != nil {
		return nil, err
	}
	return s.client.WhoAmI(ctx, accessToken)
}

// Accounts lists the accounts visible to the stored token.
func (s *MonzoService) Accounts(ctx context.Context) (*domain.MonzoAccountsResponse, error) {
	accessToken, err := s.tokens.GetValidAccessToken(ctx, s.userID)
	if err != nil {
		return nil, err
	}
	return s.client.Accounts(ctx, accessToken)
}

// Balance returns the balance of the configured account.
func (s *MonzoService) Balance(ctx context.Context) (*domain.BalanceResponse, error) {
	accessToken, err := s.tokens.GetValidAccessToken(ctx, s.userID)
	if err != nil {
		return nil, err
	}
	return s.client.Balance(ctx, accessToken, s.accountID)
}
