package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/NeuralTrust/FraudShield/pkg/config"
	"github.com/NeuralTrust/FraudShield/pkg/infra/prometheus"
	"github.com/NeuralTrust/FraudShield/pkg/server/router"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

const (
	HealthPath = "/health"
	PingPath   = "/__/ping"
)

// Server interface defines the common behavior for all servers
type Server interface {
	Run() error
	Shutdown() error
}

type BaseServer struct {
	Config     *config.Config
	Logger     *logrus.Logger
	Router     *fiber.App
	metricsApp *fiber.App
}

func NewBaseServer(config *config.Config, logger *logrus.Logger) *BaseServer {
	bodyLimit := config.Server.BodyLimit
	if bodyLimit <= 0 {
		bodyLimit = 1024 * 1024
	}
	r := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		Network:               fiber.NetworkTCP,
		BodyLimit:             bodyLimit,
		// Generation calls may take the full upstream timeout.
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	})

	r.Server().NoDefaultServerHeader = true

	return &BaseServer{
		Config: config,
		Logger: logger,
		Router: r,
	}
}

func (s *BaseServer) setupHealthCheck() {
	s.Router.Get(HealthPath, func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	s.Router.Get(PingPath, func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
}

func (s *BaseServer) WithRouters(routers ...router.ServerRouter) *BaseServer {
	for _, r := range routers {
		err := r.BuildRoutes(s.Router)
		if err != nil {
			s.Logger.WithError(err).Error("failed to build routes")
		}
	}
	return s
}

func (s *BaseServer) setupMetricsEndpoint() {
	if !s.Config.Metrics.Enabled {
		s.Logger.Info("prometheus metrics are disabled by configuration")
		return
	}
	if s.metricsApp != nil {
		return
	}

	metricsApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	metricsApp.Use(recover.New())

	handler := fasthttpadaptor.NewFastHTTPHandler(prometheus.Handler())
	metricsApp.Get("/metrics", func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	})
	s.metricsApp = metricsApp

	// Start metrics server on a different port
	go func() {
		addr := fmt.Sprintf(":%d", s.Config.Server.MetricsPort)
		if err := metricsApp.Listen(addr); err != nil {
			if !strings.Contains(err.Error(), "address already in use") {
				s.Logger.WithError(err).Error("Failed to start metrics server")
			}
		}
	}()
}

func (s *BaseServer) shutdownMetrics() error {
	if s.metricsApp == nil {
		return nil
	}
	return s.metricsApp.Shutdown()
}
