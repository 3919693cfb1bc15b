package common

const (
	RequestIDHeader = "X-Request-Id"

	APIPrefix = "/api/v1"
)
