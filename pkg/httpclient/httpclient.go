// Package httpclient provides the shared HTTP client used for outbound
// provider calls. A single pooled client is reused across all providers so
// keep-alive connections are shared.
package httpclient

import (
	"net"
	"net/http"
	"time"
)

// New returns an HTTP client with connection pooling and sane timeouts for
// talking to external APIs. The overall request timeout covers connection,
// redirects and reading the body.
func New(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: 5 * time.Second,
			}).DialContext,
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
