package middleware

import (
	"strconv"
	"time"

	"github.com/NeuralTrust/FraudShield/pkg/common"
	"github.com/NeuralTrust/FraudShield/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type metricsMiddleware struct {
	logger  *logrus.Logger
	enabled bool
}

func NewMetricsMiddleware(logger *logrus.Logger, enabled bool) Middleware {
	return &metricsMiddleware{
		logger:  logger,
		enabled: enabled,
	}
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !m.enabled {
			return c.Next()
		}

		startTime := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		// Route patterns keep the label set bounded; raw paths carry session IDs.
		route := c.Route().Path
		method := c.Method()
		prometheus.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		prometheus.HTTPLatency.WithLabelValues(method, route).
			Observe(float64(time.Since(startTime).Milliseconds()))

		m.logger.WithFields(logrus.Fields{
			"method":     method,
			"route":      route,
			"status":     status,
			"latency_ms": time.Since(startTime).Milliseconds(),
			"request_id": c.Locals(string(common.RequestIDContextKey)),
		}).Debug("request served")

		return err
	}
}
