package middleware

import (
	"context"
	"regexp"

	"github.com/NeuralTrust/FraudShield/pkg/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Inbound IDs are echoed into logs, so only short token-like values are kept.
var validRequestID = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

type requestIDMiddleware struct{}

func NewRequestIDMiddleware() Middleware {
	return &requestIDMiddleware{}
}

func (m *requestIDMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(common.RequestIDHeader)
		if !validRequestID.MatchString(requestID) {
			requestID = uuid.NewString()
		}

		c.Locals(string(common.RequestIDContextKey), requestID)
		c.SetUserContext(context.WithValue(c.UserContext(), common.RequestIDContextKey, requestID))
		c.Set(common.RequestIDHeader, requestID)

		return c.Next()
	}
}
