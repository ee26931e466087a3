package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kobzev/LykkeWalletAPI/internal/auth"
	"github.com/kobzev/LykkeWalletAPI/internal/auth/introspection"
	"github.com/kobzev/LykkeWalletAPI/internal/auth/tokencache"
	"github.com/kobzev/LykkeWalletAPI/internal/clients/sessionsvc"
	"github.com/kobzev/LykkeWalletAPI/internal/config"
	"github.com/kobzev/LykkeWalletAPI/internal/server"
	"github.com/kobzev/LykkeWalletAPI/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Create logger
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	zapLogger, err := logger.NewLogger(logLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Select the introspection cache backend. In-process is the default:
	// losing the cache on restart only costs one extra introspection per
	// token, and it removes the external cache dependency.
	var cache tokencache.Cache[introspection.Result]
	switch cfg.Auth.CacheBackend {
	case "redis":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cache = tokencache.NewRedis[introspection.Result](redisClient, "introspection:", cfg.Auth.Introspection.CacheTTL)
	default:
		cache = tokencache.NewMemory[introspection.Result](cfg.Auth.Introspection.CacheTTL)
	}

	// Wire the authentication gate
	introspectionClient := introspection.NewClient(
		cfg.Auth.Introspection.Endpoint,
		cfg.Auth.Introspection.ClientID,
		cfg.Auth.Introspection.ClientSecret,
		nil,
	)
	verifier := introspection.NewCachedVerifier(introspectionClient, cache, zapLogger)
	sessions := sessionsvc.NewClient(cfg.Auth.SessionServiceURL, nil)
	gate := auth.NewGate(
		auth.Classifier{InternalTokenLength: cfg.Auth.InternalTokenLength},
		sessions,
		verifier,
		zapLogger,
	)

	// Create HTTP server
	apiServer := server.NewServer(zapLogger, gate)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      apiServer.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("Starting wallet API server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		zapLogger.Error("Server shutdown failed", zap.Error(err))
	}
}
