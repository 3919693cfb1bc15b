package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/NeuralTrust/FraudShield/pkg/common"
	"github.com/NeuralTrust/FraudShield/pkg/infra/auth/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const authorizationHeader = "Authorization"
const bearerPrefix = "Bearer "

type authMiddleware struct {
	logger     *logrus.Logger
	jwtManager jwt.Manager
	enabled    bool
}

// NewAuthMiddleware requires a valid HS256 bearer token on every request.
// With enabled false every request passes through untouched.
func NewAuthMiddleware(
	logger *logrus.Logger,
	jwtManager jwt.Manager,
	enabled bool,
) Middleware {
	return &authMiddleware{
		logger:     logger,
		jwtManager: jwtManager,
		enabled:    enabled,
	}
}

func (m *authMiddleware) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if !m.enabled {
			return ctx.Next()
		}

		authHeader := ctx.Get(authorizationHeader)
		if authHeader == "" {
			m.logger.Debug("no authorization header provided")
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authorization required"})
		}
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			m.logger.Debug("invalid authorization header format")
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid authorization format"})
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenString == "" {
			m.logger.Debug("empty token provided")
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Empty token provided"})
		}

		claims, err := m.jwtManager.DecodeToken(tokenString)
		if err != nil {
			m.logger.WithError(err).Debug("invalid token")
			if errors.Is(err, jwt.ErrExpiredToken) {
				return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token expired"})
			}
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}

		ctx.Locals(string(common.SubjectContextKey), claims.Subject)
		ctx.SetUserContext(context.WithValue(ctx.UserContext(), common.SubjectContextKey, claims.Subject))
		return ctx.Next()
	}
}
