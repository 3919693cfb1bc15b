package common

import "context"

type contextKey string

const (
	RequestIDContextKey contextKey = "request_id"
	SubjectContextKey   contextKey = "subject"
)

// RequestID returns the ID the request-id middleware stored in ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDContextKey).(string)
	return id
}
