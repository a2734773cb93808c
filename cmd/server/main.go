package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/payam/backend/internal/config"
	"github.com/payam/backend/internal/handler"
	"github.com/payam/backend/internal/logging"
	"github.com/payam/backend/internal/repository"
	"github.com/payam/backend/internal/service"
	"github.com/payam/backend/pkg/auth"
	"github.com/redis/go-redis/v9"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	cfg := config.Load()

	pool, err := repository.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	// Redis backs the sign-in throttle; without it the throttle is disabled.
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancel()
			logging.Fatal("redis ping failed", "error", err)
		}
		cancel()
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Warn("redis close error", "error", err)
			}
		}()
	}

	profileRepo := repository.NewPgProfileRepository(pool)
	submissionRepo := repository.NewPgSubmissionRepository(pool)
	authService := service.NewAuthService(profileRepo, cfg.AdminEmails)
	submissionService := service.NewSubmissionService(submissionRepo)

	sessionSecret := auth.SessionSecretBytes(cfg.SessionSecret)
	throttle := handler.NewSignInThrottle(redisClient, cfg.SignInMaxPerMinute)

	h := handler.New(pool, cfg.FrontendURL)
	authHandler := handler.NewAuthHandler(authService, handler.AuthConfig{
		SessionSecret: sessionSecret,
		SessionTTL:    cfg.SessionTTL,
		SecureCookie:  strings.HasPrefix(cfg.FrontendURL, "https://"),
	}, throttle)
	subHandler := handler.NewSubmissionHandler(submissionService)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler.Router(h, authHandler, subHandler, sessionSecret),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
