package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/auth"
	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/config"
	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/handler"
	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/repository"
	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/service"
	"github.com/yahyatarique/IMS-BSGearTech-sub001/pkg/logger"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		logger.New("ims-geartech", "info").Fatal("Failed to load config", zap.Error(err))
	}

	log := logger.New(cfg.ServiceName, cfg.LogLevel)
	defer log.Sync()

	// 2. Setup Database
	ctx := context.Background()
	dbPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	if err := dbPool.Ping(ctx); err != nil {
		log.Fatal("Failed to ping database", zap.Error(err))
	}
	log.Info("Connected to database")

	store := repository.NewStore(dbPool)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to apply schema", zap.Error(err))
	}

	// 3. Setup Logic
	redisClient := auth.ConnectRedis(ctx, cfg.RedisURL, log)
	if redisClient != nil {
		defer redisClient.Close()
	}
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	sessions := auth.NewSessionStore(redisClient)
	limiter := auth.NewKeyedLimiter(cfg.Auth.LoginRatePerMinute)

	users := service.NewUserService(store, log)
	if err := users.EnsureAdmin(ctx, cfg.Seed.AdminUsername, cfg.Seed.AdminPassword, cfg.Seed.AdminEmail); err != nil {
		log.Fatal("Failed to seed admin user", zap.Error(err))
	}

	h := handler.NewHandler(handler.Services{
		Auth:           service.NewAuthService(store, tokens, sessions, limiter, log),
		Users:          users,
		Buyers:         service.NewBuyerService(store, log),
		Profiles:       service.NewProfileService(store, log),
		Inventory:      service.NewInventoryService(store, log),
		Orders:         service.NewOrderService(store, log),
		BurningWastage: service.NewBurningWastageService(store, log),
		Calculator:     service.NewCalculationService(),
		Dashboard:      service.NewDashboardService(store),
		DB:             store,
	}, handler.Options{CookieSecure: cfg.Auth.CookieSecure}, log)

	// 4. Setup Server
	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 5. Run Server with Graceful Shutdown
	go func() {
		log.Info("Starting server", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 2)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exiting")
}
