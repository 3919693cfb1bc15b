package watsonx

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

const maxErrorBody = 4096

var ErrMalformedResponse = errors.New("malformed generation response")

// APIError is a non-200 answer from the generation endpoint. Body is kept
// verbatim; Error() quotes at most maxErrorBody bytes of it.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("watsonx: generation failed with status %d: %s", e.StatusCode, shorten(e.Body))
}

func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

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
