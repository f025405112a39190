package domain

// TokenResponse is an OAuth2 access token issued by the banking provider,
// keyed by the provider user id. One active token per user; a new exchange
// fully replaces the previous row (last write wins). Expiry is derived from
// IssuedAt+ExpiresIn and never stored.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	ClientID     string `json:"client_id"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	UserID       string `json:"user_id"`
	// IssuedAt is stamped by this application (epoch seconds) when the token
	// is received, not returned by the provider.
	IssuedAt int64 `json:"issuedAt"`
}

// ExpiresAt returns the epoch second at which the token stops being valid.
func (t TokenResponse) ExpiresAt() int64 {
	return t.IssuedAt + int64(t.ExpiresIn)
}
