package domain

import "fmt"

// Value objects mirrored from the Monzo API. These are read-only projections
// of provider state and are never persisted.

// WhoAmIResponse is the authenticated-identity check from /ping/whoami.
type WhoAmIResponse struct {
	Authenticated bool   `json:"authenticated"`
	ClientID      string `json:"client_id"`
	UserID        string `json:"user_id"`
}

// MonzoAccountsResponse wraps the account list returned by /accounts.
type MonzoAccountsResponse struct {
	Accounts []MonzoAccount `json:"accounts"`
}

// MonzoAccount is a single bank account owned by the authenticated user.
type MonzoAccount struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Created     string `json:"created"`
}

// BalanceResponse is the /balance payload; amounts are in minor units.
type BalanceResponse struct {
	Balance                         int          `json:"balance"`
	TotalBalance                    int          `json:"total_balance"`
	BalanceIncludingFlexibleSavings int          `json:"balance_including_flexible_savings"`
	Currency                        string       `json:"currency"`
	SpendToday                      int          `json:"spend_today"`
	LocalCurrency                   string       `json:"local_currency,omitempty"`
	LocalExchangeRate               float64      `json:"local_exchange_rate,omitempty"`
	LocalSpend                      []LocalSpend `json:"local_spend,omitempty"`
}

// LocalSpend is today's spend in a foreign currency.
type LocalSpend struct {
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
}

// MonzoAPIError is the typed failure half of a Monzo call: the provider
// answered, but with an error payload. A transport or decode failure is a
// plain error instead, so callers can distinguish "provider said no" from
// "call failed" with errors.As.
type MonzoAPIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Params  map[string]string `json:"params,omitempty"`
}

func (e *MonzoAPIError) Error() string {
	return fmt.Sprintf("monzo api error %s: %s", e.Code, e.Message)
}
