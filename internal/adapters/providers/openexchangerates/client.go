// Package openexchangerates talks to the openexchangerates.org API, the
// source of the USD-based rates this application stores.
package openexchangerates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// Client fetches rates from openexchangerates.org.
type Client struct {
	httpClient *http.Client
	baseURL    string
	appID      string
}

// NewClient creates a Client. baseURL should not include the trailing slash.
func NewClient(httpClient *http.Client, baseURL, appID string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		appID:      appID,
	}
}

type latestResponse struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// FetchLatestRates calls /latest.json for the requested symbols and returns
// the rates keyed by currency code. Symbols the provider does not price are
// simply absent from the result.
func (c *Client) FetchLatestRates(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error) {
	if len(symbols) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	params := url.Values{}
	params.Set("symbols", strings.Join(symbols, ","))
	return c.fetchLatest(ctx, params)
}

// FetchAllRates calls /latest.json without a symbol filter, returning every
// currency the provider prices.
func (c *Client) FetchAllRates(ctx context.Context) (map[string]decimal.Decimal, error) {
	return c.fetchLatest(ctx, url.Values{})
}

func (c *Client) fetchLatest(ctx context.Context, params url.Values) (map[string]decimal.Decimal, error) {
	params.Set("app_id", c.appID)
	endpoint := fmt.Sprintf("%s/latest.json?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rates request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rates request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates request returned status %d", resp.StatusCode)
	}

	var payload latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode rates response: %w", err)
	}
	if payload.Rates == nil {
		return map[string]decimal.Decimal{}, nil
	}
	return payload.Rates, nil
}
