package resilience

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// HTTPClient wraps an http.Client with a request timeout and an optional
// circuit breaker. It performs a single attempt per call: retry policy
// belongs to callers that can afford it.
type HTTPClient struct {
	Client  *http.Client
	Breaker *Breaker
}

// NewHTTPClient builds a wrapped client whose timeout covers the whole
// exchange, response body included.
func NewHTTPClient(timeout time.Duration, breaker *Breaker) HTTPClient {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return HTTPClient{
		Client:  &http.Client{Timeout: timeout},
		Breaker: breaker,
	}
}

// Do executes the request. When the breaker is open ErrOpenCircuit is
// returned without touching the network. A 5xx response counts as a failure
// for the breaker but is returned to the caller as-is.
func (cl HTTPClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if cl.Client == nil {
		return nil, errors.New("resilience: http client not configured")
	}
	if cl.Breaker != nil && !cl.Breaker.Allow() {
		return nil, ErrOpenCircuit
	}

	resp, err := cl.Client.Do(req.WithContext(ctx))
	if cl.Breaker != nil {
		cl.Breaker.Report(err == nil && resp.StatusCode < 500)
	}
	return resp, err
}
