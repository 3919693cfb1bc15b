package iam

import (
	"github.com/NeuralTrust/FraudShield/pkg/infra/httpx"
)

// Option configures an exchanger.
type Option func(*exchanger)

// WithHTTPClient sets the transport used for the token request.
func WithHTTPClient(client httpx.Client) Option {
	return func(e *exchanger) {
		if client != nil {
			e.client = client
		}
	}
}

// WithURL overrides the IAM token endpoint.
func WithURL(url string) Option {
	return func(e *exchanger) {
		if url != "" {
			e.url = url
		}
	}
}

// WithCircuitBreaker guards the token endpoint. Only transport failures and
// 5xx answers count against the breaker.
func WithCircuitBreaker(breaker httpx.CircuitBreaker) Option {
	return func(e *exchanger) {
		e.breaker = breaker
	}
}
