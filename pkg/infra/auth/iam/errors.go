package iam

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// maxErrorBody bounds how much of a response body Error() quotes.
const maxErrorBody = 4096

// ErrEmptyAPIKey is wrapped by AuthError when no API key is supplied.
var ErrEmptyAPIKey = errors.New("api key is empty")

// AuthError reports a failed API-key exchange. StatusCode is zero when the
// IAM endpoint was never reached. Body is the raw response body.
type AuthError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *AuthError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err == nil:
		return fmt.Sprintf("iam: token exchange failed with status %d: %s", e.StatusCode, shorten(e.Body))
	case e.StatusCode != 0:
		return fmt.Sprintf("iam: token exchange failed with status %d: %v", e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("iam: token exchange failed: %v", e.Err)
	default:
		return "iam: token exchange failed"
	}
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsAuthError reports whether err is, or wraps, an *AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// shorten cuts s to at most maxErrorBody bytes without splitting a rune.
func shorten(s string) string {
	if len(s) <= maxErrorBody {
		return s
	}
	cut := maxErrorBody
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "...(truncated)"
}
