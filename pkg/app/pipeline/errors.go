package pipeline

import (
	"errors"
	"fmt"
)

// Kind classifies why a model query failed.
type Kind int

const (
	// KindUnauthenticated means no bearer token could be acquired, so no
	// generation request was sent.
	KindUnauthenticated Kind = iota + 1
	// KindAPIError means the generation endpoint answered with a non-200 status.
	KindAPIError
	// KindTransportError covers network failures, timeouts, open breakers and
	// undecodable responses.
	KindTransportError
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindAPIError:
		return "api_error"
	case KindTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

type QueryError struct {
	Kind       Kind
	StatusCode int
	Body       string
	Err        error
}

func (e *QueryError) Error() string {
	switch e.Kind {
	case KindAPIError:
		return fmt.Sprintf("model query failed: api error (status %d): %s", e.StatusCode, e.Body)
	default:
		if e.Err != nil {
			return fmt.Sprintf("model query failed: %s: %v", e.Kind, e.Err)
		}
		return fmt.Sprintf("model query failed: %s", e.Kind)
	}
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

func kindOf(err error) Kind {
	var queryErr *QueryError
	if errors.As(err, &queryErr) {
		return queryErr.Kind
	}
	return 0
}

func IsUnauthenticated(err error) bool {
	return kindOf(err) == KindUnauthenticated
}

func IsAPIError(err error) bool {
	return kindOf(err) == KindAPIError
}

func IsTransportError(err error) bool {
	return kindOf(err) == KindTransportError
}
