package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/innovatefest/hackathon-api/internal/api"
	"github.com/innovatefest/hackathon-api/internal/auth"
	"github.com/innovatefest/hackathon-api/internal/database"
	"github.com/innovatefest/hackathon-api/internal/logger"
	"github.com/innovatefest/hackathon-api/internal/middleware"
	"github.com/innovatefest/hackathon-api/internal/roster"
	"github.com/innovatefest/hackathon-api/internal/services"
	"github.com/innovatefest/hackathon-api/pkg/config"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	appLogger := logger.New(cfg.Environment)

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		appLogger.Fatal("Failed to run migrations", err)
	}

	genders, err := roster.LoadGenderScheme(cfg.GenderTokensFile)
	if err != nil {
		appLogger.Fatal("Failed to load gender tokens", err, "path", cfg.GenderTokensFile)
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	svc := services.NewServices(db.DB, services.Dependencies{
		Config:  cfg,
		JWT:     jwtService,
		Genders: genders,
		Logger:  appLogger,
	})

	bootCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := svc.Auth.EnsureAdmin(bootCtx, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail); err != nil {
		appLogger.Fatal("Failed to create bootstrap admin", err)
	}
	if err := svc.Auth.EnsureJudge(bootCtx, cfg.JudgeUsername, cfg.JudgePassword, cfg.JudgeEmail); err != nil {
		appLogger.Fatal("Failed to create bootstrap judge", err)
	}
	cancel()

	var limiter middleware.RateLimiter
	if cfg.EnableRateLimit {
		limiter = newRateLimiter(cfg, appLogger)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := api.NewRouter(cfg, appLogger, limiter)
	if err != nil {
		appLogger.Fatal("Failed to create router", err)
	}
	api.SetupRoutes(r, api.Dependencies{
		Services: svc,
		JWT:      jwtService,
		DB:       db,
		Timeout:  cfg.RequestTimeout,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		appLogger.Info("Server starting", "port", cfg.Port, "env", cfg.Environment, "dialect", string(db.Dialect))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}

	appLogger.Info("Server exited")
}

// newRateLimiter uses Redis when REDIS_URL is set so every instance shares
// one quota per client, and falls back to memory otherwise.
func newRateLimiter(cfg *config.Config, log logger.Logger) middleware.RateLimiter {
	if cfg.RedisURL == "" {
		return middleware.NewMemoryRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal("Invalid REDIS_URL", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, using in-memory rate limiter", "error", err.Error())
		_ = client.Close()
		return middleware.NewMemoryRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	}

	return middleware.NewRedisRateLimiter(client, cfg.RateLimitRequests, cfg.RateLimitWindow)
}
