package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	"github.com/BruksfildServices01/barber-agenda/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-agenda/internal/db"
	infraRepo "github.com/BruksfildServices01/barber-agenda/internal/infra/repository"
	"github.com/BruksfildServices01/barber-agenda/internal/lock"
	"github.com/BruksfildServices01/barber-agenda/internal/metrics"
	"github.com/BruksfildServices01/barber-agenda/internal/routes"
	"github.com/BruksfildServices01/barber-agenda/internal/sweeper"
)

func main() {

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	rdb := newRedis(cfg, sugar)

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New("barber-agenda")
	locks := lock.NewKeyed()

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.RegisterRoutes(r, routes.Deps{
		DB:      db,
		Redis:   rdb,
		Config:  cfg,
		Log:     sugar,
		Locks:   locks,
		Metrics: m,
	})

	// Varredura de no-show em background
	auditDispatcher := audit.NewDispatcher(audit.New(db), sugar)
	noShow := sweeper.New(
		infraRepo.NewAppointmentGormRepository(db),
		sugar, auditDispatcher, m,
		cfg.NoShowGrace, cfg.SweepInterval,
	)
	go noShow.Run(ctx)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		sugar.Infow("server running", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("server failed", "err", err)
		}
	}()

	<-ctx.Done()
	sugar.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("shutdown error", "err", err)
	}
}

func newRedis(cfg *config.Config, sugar *zap.SugaredLogger) *redis.Client {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		sugar.Warnw("invalid REDIS_URL, availability cache disabled", "err", err)
		return nil
	}

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		sugar.Warnw("redis unreachable, availability cache disabled", "err", err)
		return nil
	}

	return rdb
}
