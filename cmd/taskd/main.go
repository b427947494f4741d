package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Miraines/MoonyAndStarry/task-service/internal/adapters/db/postgres"
	grpcadapter "github.com/Miraines/MoonyAndStarry/task-service/internal/adapters/transport/grpc"
	httpadapter "github.com/Miraines/MoonyAndStarry/task-service/internal/adapters/transport/http"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/app/auth/jwt"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/app/auth/password"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/app/auth/resolver"
	appsvc "github.com/Miraines/MoonyAndStarry/task-service/internal/app/service"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/infra/clock"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/infra/config"
	lg "github.com/Miraines/MoonyAndStarry/task-service/internal/infra/log"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/infra/migrate"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/infra/ratelimit"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/infra/server"
	"github.com/gin-gonic/gin"
	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 5 * time.Second
	limiterSize     = 10_000
	limiterTTL      = time.Hour
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		lg.Must("info").Fatal("failed to load config", zap.Error(err))
	}

	zapLog := lg.Must(cfg.LogLevel)
	defer zapLog.Sync()

	debug := zapLog.Core().Enabled(zap.DebugLevel)
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	clk := clock.New(cfg.UTCOffset)

	db, err := postgres.Open(cfg.DatabaseURL, clk, debug)
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := migrate.Up(sqlDB); err != nil {
		zapLog.Fatal("run migrations", zap.Error(err))
	}

	store := postgres.NewStore(db)
	tokens, err := jwt.NewTokenService(cfg, clk)
	if err != nil {
		zapLog.Fatal("failed to init token service", zap.Error(err))
	}
	hasher := password.NewHasher(cfg.PasswordPepper)
	validate := appsvc.NewValidator()

	handler := httpadapter.NewHandler(
		appsvc.NewAuthService(store, hasher, tokens, validate),
		appsvc.NewUserService(store, hasher, clk, validate),
		appsvc.NewLabelService(store, clk, validate),
		appsvc.NewTaskService(store, clk, validate),
		clk.Location(),
	)

	grpc_prometheus.EnableHandlingTimeHistogram()
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		grpc_prometheus.DefaultServerMetrics,
	)

	router := httpadapter.NewRouter(handler, cfg, httpadapter.RouterDeps{
		Resolver: resolver.New(tokens, store, clk),
		DB:       store,
		Log:      zapLog,
		Registry: registry,
		Limiter:  ratelimit.NewPerKey(cfg.RateLimitRPS, cfg.RateLimitBurst, limiterSize, limiterTTL),
	})
	srv := &http.Server{Addr: cfg.HTTPAddress, Handler: router, ReadHeaderTimeout: 10 * time.Second}

	rootCtx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		limiter := ratelimit.NewPerKey(cfg.RateLimitRPS, cfg.RateLimitBurst, limiterSize, limiterTTL)
		return server.StartGRPCServer(ctx, cfg.GRPCAddress, grpcadapter.NewHandler(store, zapLog), limiter, zapLog)
	})

	g.Go(func() error {
		zapLog.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddress))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		zapLog.Info("shutdown signal received")
	case <-ctx.Done():
		zapLog.Warn("server exited early")
	}
	cancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLog.Error("shutdown error", zap.Error(err))
	}
	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}
