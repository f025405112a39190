// Package monzo implements the outbound client for the Monzo banking API,
// covering both the OAuth2 code exchange and the authenticated account
// endpoints.
package monzo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/finnconnect/finnconnect/internal/core/domain"
)

// Client talks to the Monzo API. The OAuth2 code exchange goes through
// x/oauth2; the account endpoints are plain bearer-token GETs.
type Client struct {
	httpClient  *http.Client
	oauthConfig *oauth2.Config
	apiBaseURL  string
}

// Config carries the provider settings needed to build a Client.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	APIBaseURL   string
}

// NewClient creates a Client from provider settings and a shared HTTP client.
func NewClient(httpClient *http.Client, cfg Config) *Client {
	apiBase := strings.TrimRight(cfg.APIBaseURL, "/")
	return &Client{
		httpClient: httpClient,
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"accounts", "transactions:read"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: apiBase + "/oauth2/token",
			},
		},
		apiBaseURL: apiBase,
	}
}

// AuthCodeURL builds the consent URL the user is redirected to.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauthConfig.AuthCodeURL(state)
}

// ExchangeCode swaps an authorization code for an access token. Monzo returns
// user_id and client_id alongside the standard token fields; both are lifted
// off the token's extra payload.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*domain.TokenResponse, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := c.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	token := &domain.TokenResponse{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
	}
	if v, ok := tok.Extra("user_id").(string); ok {
		token.UserID = v
	}
	if v, ok := tok.Extra("client_id").(string); ok {
		token.ClientID = v
	}
	if v, ok := tok.Extra("expires_in").(float64); ok {
		token.ExpiresIn = int(v)
	}
	return token, nil
}

// WhoAmI checks which identity the access token belongs to.
func (c *Client) WhoAmI(ctx context.Context, accessToken string) (*domain.WhoAmIResponse, error) {
	var out domain.WhoAmIResponse
	if err := c.get(ctx, "/ping/whoami", nil, accessToken, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Accounts lists the accounts visible to the access token.
func (c *Client) Accounts(ctx context.Context, accessToken string) (*domain.MonzoAccountsResponse, error) {
	var out domain.MonzoAccountsResponse
	if err := c.get(ctx, "/accounts", nil, accessToken, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Balance returns the balance of a single account.
func (c *Client) Balance(ctx context.Context, accessToken, accountID string) (*domain.BalanceResponse, error) {
	params := url.Values{}
	params.Set("account_id", accountID)
	var out domain.BalanceResponse
	if err := c.get(ctx, "/balance", params, accessToken, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// get performs an authenticated GET and decodes the 200 payload into out.
// A non-2xx response with a decodable Monzo error body becomes a
// *domain.MonzoAPIError; anything else is a plain error.
func (c *Client) get(ctx context.Context, path string, params url.Values, accessToken string, out any) error {
	endpoint := c.apiBaseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build monzo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("monzo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		apiErr := &domain.MonzoAPIError{}
		if json.Unmarshal(body, apiErr) == nil && apiErr.Code != "" {
			return apiErr
		}
		return fmt.Errorf("monzo returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode monzo response: %w", err)
	}
	return nil
}
