package dependency_container

import (
	"context"
	"fmt"
	"time"

	"github.com/NeuralTrust/FraudShield/pkg/app/analysis"
	"github.com/NeuralTrust/FraudShield/pkg/app/chat"
	"github.com/NeuralTrust/FraudShield/pkg/app/pipeline"
	"github.com/NeuralTrust/FraudShield/pkg/config"
	"github.com/NeuralTrust/FraudShield/pkg/domain/session"
	handlers "github.com/NeuralTrust/FraudShield/pkg/handlers/http"
	"github.com/NeuralTrust/FraudShield/pkg/infra/auth/iam"
	"github.com/NeuralTrust/FraudShield/pkg/infra/auth/jwt"
	"github.com/NeuralTrust/FraudShield/pkg/infra/cache"
	"github.com/NeuralTrust/FraudShield/pkg/infra/httpx"
	"github.com/NeuralTrust/FraudShield/pkg/infra/prometheus"
	"github.com/NeuralTrust/FraudShield/pkg/infra/redact"
	"github.com/NeuralTrust/FraudShield/pkg/infra/repository"
	"github.com/NeuralTrust/FraudShield/pkg/infra/watsonx"
	"github.com/NeuralTrust/FraudShield/pkg/middleware"
	"github.com/NeuralTrust/FraudShield/pkg/version"
	"github.com/sirupsen/logrus"
)

const sessionPurgeInterval = time.Minute

type Container struct {
	Cache               cache.Client
	Pipeline            pipeline.Pipeline
	AnalysisService     analysis.Service
	ChatService         chat.Service
	SessionRepository   session.Repository
	HandlerTransport    *handlers.HandlerTransport
	MiddlewareTransport *middleware.Transport
	JWTManager          jwt.Manager

	memorySessions *cache.TTLMap
}

func NewContainer(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	prometheus.Initialize(prometheus.MetricsConfig{
		EnableProcessCollector: cfg.Metrics.Enabled,
	})

	c := &Container{}

	if cfg.Redis.Host != "" {
		cacheClient, err := cache.NewClient(cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TLS:      cfg.Redis.TLS,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		c.Cache = cacheClient
		c.SessionRepository = repository.NewSessionRepository(cacheClient)
		logger.WithField("host", cfg.Redis.Host).Info("chat sessions stored in redis")
	} else {
		c.memorySessions = cache.NewTTLMap(cfg.Sessions.TTL)
		c.SessionRepository = repository.NewMemorySessionRepository(c.memorySessions)
		logger.Info("redis not configured, chat sessions kept in memory")
	}

	userAgent := fmt.Sprintf("%s/%s", version.AppName, version.Version)

	var exchanger iam.Exchanger = iam.NewExchanger(logger, iamOptions(cfg, userAgent)...)
	if cfg.IAM.TokenCache.Enabled {
		exchanger = iam.NewCachingExchanger(exchanger, cfg.IAM.TokenCache.Skew, cfg.IAM.Timeout)
	}

	client := watsonx.NewClient(logger, watsonxOptions(cfg, userAgent)...)

	c.Pipeline = pipeline.NewPipeline(logger, exchanger, client, redact.New(), pipeline.Config{
		APIKey:              cfg.Watsonx.APIKey,
		ProjectID:           cfg.Watsonx.ProjectID,
		ModelID:             cfg.Watsonx.ModelID,
		SystemPrompt:        cfg.Watsonx.SystemPrompt,
		ModerationThreshold: cfg.Watsonx.ModerationThreshold,
	})

	c.AnalysisService = analysis.NewService(logger, c.Pipeline)
	c.ChatService = chat.NewService(logger, c.SessionRepository, c.Pipeline, chat.Config{
		TTL:         cfg.Sessions.TTL,
		MaxMessages: cfg.Sessions.MaxMessages,
	})

	c.JWTManager = jwt.NewJwtManager(&cfg.Server)

	c.MiddlewareTransport = &middleware.Transport{
		PanicRecoverMiddleware: middleware.NewPanicRecoverMiddleware(logger),
		RequestIDMiddleware:    middleware.NewRequestIDMiddleware(),
		MetricsMiddleware:      middleware.NewMetricsMiddleware(logger, cfg.Metrics.Enabled),
		AuthMiddleware:         middleware.NewAuthMiddleware(logger, c.JWTManager, cfg.Server.SecretKey != ""),
	}

	c.HandlerTransport = &handlers.HandlerTransport{
		GetVersionHandler:         handlers.NewGetVersionHandler(logger),
		AnalyzeTransactionHandler: handlers.NewAnalyzeTransactionHandler(logger, c.AnalysisService),
		AssessRiskHandler:         handlers.NewAssessRiskHandler(logger, c.AnalysisService),
		CreateChatSessionHandler:  handlers.NewCreateChatSessionHandler(logger, c.ChatService),
		GetChatSessionHandler:     handlers.NewGetChatSessionHandler(logger, c.ChatService),
		SendChatMessageHandler:    handlers.NewSendChatMessageHandler(logger, c.ChatService),
	}

	return c, nil
}

func iamOptions(cfg *config.Config, userAgent string) []iam.Option {
	opts := []iam.Option{
		iam.WithURL(cfg.IAM.URL),
		iam.WithHTTPClient(httpx.NewFastHTTPClient(
			httpx.WithTimeout(cfg.IAM.Timeout),
			httpx.WithUserAgent(userAgent),
		)),
	}
	if cfg.IAM.CircuitBreaker.Enabled {
		opts = append(opts, iam.WithCircuitBreaker(httpx.NewCircuitBreaker(
			"iam",
			cfg.IAM.CircuitBreaker.Timeout,
			cfg.IAM.CircuitBreaker.MaxFailures,
		)))
	}
	return opts
}

func watsonxOptions(cfg *config.Config, userAgent string) []watsonx.Option {
	opts := []watsonx.Option{
		watsonx.WithURL(cfg.Watsonx.URL),
		watsonx.WithHTTPClient(httpx.NewFastHTTPClient(
			httpx.WithTimeout(cfg.Watsonx.Timeout),
			httpx.WithUserAgent(userAgent),
		)),
	}
	if cfg.Watsonx.CircuitBreaker.Enabled {
		opts = append(opts, watsonx.WithCircuitBreaker(httpx.NewCircuitBreaker(
			"watsonx",
			cfg.Watsonx.CircuitBreaker.Timeout,
			cfg.Watsonx.CircuitBreaker.MaxFailures,
		)))
	}
	return opts
}

// RunJanitor evicts expired in-memory sessions until ctx is done. It returns
// immediately when sessions live in redis.
func (c *Container) RunJanitor(ctx context.Context, logger *logrus.Logger) {
	if c.memorySessions == nil {
		return
	}
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.memorySessions.Purge(); n > 0 {
				logger.WithField("sessions", n).Debug("expired chat sessions purged")
			}
		}
	}
}

func (c *Container) Close() error {
	if c.Cache != nil {
		return c.Cache.Close()
	}
	return nil
}
