package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NeuralTrust/FraudShield/pkg/config"
	"github.com/NeuralTrust/FraudShield/pkg/dependency_container"
	infraLogger "github.com/NeuralTrust/FraudShield/pkg/infra/logger"
	"github.com/NeuralTrust/FraudShield/pkg/server"
	"github.com/NeuralTrust/FraudShield/pkg/server/router"
	"github.com/joho/godotenv"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger("fraudshield")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config"
	}
	if err := config.Load(configPath); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	container, err := dependency_container.NewContainer(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize dependencies: %v", err)
	}
	defer func() {
		if err := container.Close(); err != nil {
			logger.WithError(err).Error("failed to close dependencies")
		}
	}()

	go container.RunJanitor(ctx, logger)

	srv := server.NewAPIServer(server.APIServerDI{
		Config: cfg,
		Logger: logger,
		Routers: []router.ServerRouter{
			router.NewAPIRouter(container.MiddlewareTransport, container.HandlerTransport),
		},
	})

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	fmt.Println("shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		logger.WithError(err).Error("error shutting down server")
		return
	}
	fmt.Println("server gracefully stopped")
}
