package watsonx

import (
	"github.com/NeuralTrust/FraudShield/pkg/infra/httpx"
)

type Option func(*client)

func WithHTTPClient(c httpx.Client) Option {
	return func(cl *client) {
		if c != nil {
			cl.http = c
		}
	}
}

func WithURL(url string) Option {
	return func(cl *client) {
		if url != "" {
			cl.url = url
		}
	}
}

// WithCircuitBreaker guards the generation endpoint. Transport failures and
// 5xx answers count against the breaker.
func WithCircuitBreaker(breaker httpx.CircuitBreaker) Option {
	return func(cl *client) {
		cl.breaker = breaker
	}
}
