package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/devconnect/profile-service/internal/auth"
	"github.com/devconnect/profile-service/internal/config"
	"github.com/devconnect/profile-service/internal/database"
	"github.com/devconnect/profile-service/internal/github"
	"github.com/devconnect/profile-service/internal/handlers"
	"github.com/devconnect/profile-service/internal/middleware"
	"github.com/devconnect/profile-service/internal/repository"
	"github.com/devconnect/profile-service/internal/routes"
	"github.com/devconnect/profile-service/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logger *zap.Logger
	if cfg.App.Env == "development" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer func() { _ = logger.Sync() }()
	sugar := logger.Sugar()
	sugar.Infof("Starting profile-service in %s environment on port %d", cfg.App.Env, cfg.App.Port)

	db, mongoClient, err := database.ConnectMongo(cfg.Mongo.URI, cfg.Mongo.Database, sugar)
	if err != nil {
		sugar.Fatal(err)
	}

	// Redis is optional: without it the limiter falls back to in-process
	// token buckets.
	var limiter fiber.Handler
	if cfg.Redis.Addr != "" {
		rdb, err := database.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, sugar)
		if err != nil {
			sugar.Fatal(err)
		}
		defer rdb.Close()
		limiter = middleware.NewRedisRateLimiter(rdb, "ratelimit:auth", cfg.RateLimit.PerMinute, time.Minute, logger).Handler()
	} else {
		sugar.Warn("Redis not configured, using in-memory rate limiter")
		limiter = middleware.NewIPRateLimiter(cfg.RateLimit.PerMinute, logger).Handler()
	}

	userRepo := repository.NewMongoUserRepo(db, cfg.Mongo.UsersCollection)
	profileRepo := repository.NewMongoProfileRepo(db, cfg.Mongo.ProfilesCollection)

	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.TokenTTL)
	userSvc := service.NewUserService(userRepo, tokens, logger)
	profileSvc := service.NewProfileService(profileRepo, userRepo, logger)
	gh := github.NewClient(github.Config{
		BaseURL:      cfg.Github.BaseURL,
		ClientID:     cfg.Github.ClientID,
		ClientSecret: cfg.Github.ClientSecret,
		UserAgent:    cfg.Github.UserAgent,
	}, logger)

	h := handlers.NewHandler(userSvc, profileSvc, gh, logger)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	})
	app.Use(cors.New())
	app.Use(middleware.RequestLogger(logger))

	routes.Setup(app, h, middleware.RequireAuth(tokens), limiter)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		sugar.Infof("Server listening on %s", addr)
		if err := app.Listen(addr); err != nil {
			sugar.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	sugar.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		sugar.Errorf("Fiber app shutdown error: %v", err)
	}
	if err := mongoClient.Disconnect(ctx); err != nil {
		sugar.Errorf("MongoDB disconnect error: %v", err)
	}
	sugar.Info("Graceful shutdown complete")
}
