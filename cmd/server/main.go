package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"clinicbook/internal/config"
	"clinicbook/internal/handlers"
	"clinicbook/internal/middleware"
	"clinicbook/internal/repositories/mongodb"
	"clinicbook/internal/services"
	"clinicbook/pkg/cache"
	"clinicbook/pkg/database"
	"clinicbook/pkg/logger"
	"clinicbook/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Connect to MongoDB
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureIndexes(ctx); err != nil {
		appLogger.Fatalf("Failed to create indexes: %v", err)
	}
	cancel()

	// Redis is optional; repositories run uncached without it.
	var cacheService mongodb.CacheService
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			appLogger.WithError(err).Warn("Redis unavailable, continuing without cache")
		} else {
			defer redisCache.Close()
			cacheService = redisCache
		}
	}

	// Repositories
	accountRepo := mongodb.NewAccountRepository(db.Database, cacheService)
	bookingRepo := mongodb.NewBookingRepository(db.Database, cacheService)

	// Services
	referralService := services.NewReferralService(accountRepo, appLogger)
	accountService := services.NewAccountService(accountRepo, appLogger)
	bookingService := services.NewBookingService(bookingRepo, accountRepo, referralService, appLogger)
	rewardService := services.NewRewardService(accountRepo, bookingRepo, appLogger)

	// Handlers
	accountHandler := handlers.NewAccountHandler(accountService, cfg, appLogger)
	bookingHandler := handlers.NewBookingHandler(bookingService, appLogger)
	rewardHandler := handlers.NewRewardHandler(rewardService, appLogger)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())

	// API routes
	v1 := router.Group("/api/v1")
	routes.SetupRoutes(v1, cfg.Security.JWTSecret, accountHandler, bookingHandler, rewardHandler)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		dbStatus := "up"
		if err := db.Ping(); err != nil {
			status = http.StatusServiceUnavailable
			dbStatus = "down"
		}
		c.JSON(status, gin.H{
			"status":   "healthy",
			"version":  cfg.App.Version,
			"database": dbStatus,
		})
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	appLogger.Infof("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		appLogger.Fatalf("Server stopped: %v", err)
	}
}
