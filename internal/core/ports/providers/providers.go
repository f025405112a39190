// Package providers defines the outbound ports to external APIs.
package providers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finnconnect/finnconnect/internal/core/domain"
)

// RateProvider fetches current USD-based exchange rates from an external
// source.
type RateProvider interface {
	// FetchLatestRates returns the current rate for each requested currency
	// code. Currencies the provider does not know are absent from the map.
	FetchLatestRates(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error)
	// FetchAllRates returns the current rate for every currency the provider
	// prices, without a symbol filter.
	FetchAllRates(ctx context.Context) (map[string]decimal.Decimal, error)
}

// MonzoAPI is the outbound port to the Monzo banking API.
type MonzoAPI interface {
	// AuthCodeURL builds the URL to redirect the user to for consent.
	AuthCodeURL(state string) string
	// ExchangeCode swaps an authorization code for an access token.
	ExchangeCode(ctx context.Context, code string) (*domain.TokenResponse, error)
	// WhoAmI checks which identity the access token belongs to.
	WhoAmI(ctx context.Context, accessToken string) (*domain.WhoAmIResponse, error)
	// Accounts lists the accounts visible to the access token.
	Accounts(ctx context.Context, accessToken string) (*domain.MonzoAccountsResponse, error)
	// Balance returns the balance of a single account.
	Balance(ctx context.Context, accessToken, accountID string) (*domain.BalanceResponse, error)
}
