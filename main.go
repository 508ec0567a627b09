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

	"callcenter/analytics"
	"callcenter/attendance"
	"callcenter/config"
	"callcenter/database"
	"callcenter/handlers"
	"callcenter/logger"
	"callcenter/middleware"
	"callcenter/session"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat, "callcenter")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Init(cfg.DatabaseURL)
	if err != nil {
		zl.Fatal("Failed to initialize database", zap.Error(err))
	}
	store := database.NewStore(db)

	if err := database.Seed(ctx, store, database.SeedOptions{
		Password: cfg.DefaultPassword,
		DemoData: cfg.SeedDemoData,
	}, zl); err != nil {
		zl.Fatal("Failed to seed database", zap.Error(err))
	}
	if agents, err := store.CountAgents(ctx); err == nil {
		zl.Info("record store ready", zap.Int64("agents", agents))
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancel()
			zl.Fatal("redis ping failed", zap.Error(err))
		}
		cancel()
		defer func() {
			if err := redisClient.Close(); err != nil {
				zl.Warn("redis close error", zap.Error(err))
			}
		}()
	} else {
		zl.Warn("REDIS_ADDR not set, logout will not revoke tokens")
	}

	auth := middleware.NewAuth(cfg.JWTSecret, cfg.JWTExpiration, store, session.NewDenylist(redisClient), zl)
	engine := analytics.NewEngine(analytics.Options{
		Grouping: analytics.ParseGrouping(cfg.LeaderboardGrouping),
		FillGaps: cfg.FillDailyGaps,
	})
	marks := attendance.NewService(store, zl.Named("attendance"))
	api := handlers.NewAPI(store, auth, engine, marks, cfg.BaseSalary, zl.Named("http"))

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.RequestLogger(zl.Named("access")))
	router.Use(chimiddleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	router.Handle("/metrics", promhttp.Handler())
	router.Mount("/api", api.Routes(auth))

	httpServer := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zl.Info("Server starting", zap.String("port", cfg.ServerPort))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("http server error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zl.Error("shutdown error", zap.Error(err))
	}
	zl.Info("Server stopped")
}
