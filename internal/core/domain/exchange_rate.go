package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrencies is the currency set ingested by the scheduled fetch and
// the manual trigger endpoint.
var DefaultCurrencies = []string{"USD", "EUR", "GBP"}

// ExchangeRate is a USD-based conversion rate for a single currency on a
// specific calendar date. The natural key is (CurrencyCode, EffectiveDate);
// persistence upserts on that key. Rate is assumed positive but not enforced.
type ExchangeRate struct {
	CurrencyCode  string          `json:"currencyCode"`
	Rate          decimal.Decimal `json:"exchangeRate"`
	EffectiveDate time.Time       `json:"effectiveDate"`
}
