package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bryanwahyu/review-miner/internal/application"
	appanalysis "github.com/bryanwahyu/review-miner/internal/application/analysis"
	appcatalog "github.com/bryanwahyu/review-miner/internal/application/catalog"
	"github.com/bryanwahyu/review-miner/internal/config"
	"github.com/bryanwahyu/review-miner/internal/domain/analysis"
	aiopenai "github.com/bryanwahyu/review-miner/internal/infra/ai/openai"
	"github.com/bryanwahyu/review-miner/internal/infra/appstore"
	"github.com/bryanwahyu/review-miner/internal/infra/cache"
	infradb "github.com/bryanwahyu/review-miner/internal/infra/db"
	mysqlp "github.com/bryanwahyu/review-miner/internal/infra/db/mysql"
	pgp "github.com/bryanwahyu/review-miner/internal/infra/db/postgres"
	"github.com/bryanwahyu/review-miner/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/review-miner/internal/infra/storage"
	"github.com/bryanwahyu/review-miner/internal/logger"
	"github.com/bryanwahyu/review-miner/internal/middleware"
)

// historyRepo is what both SQL backends provide.
type historyRepo interface {
	analysis.Repository
	EnsureSchema(ctx context.Context) error
}

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	lg := logger.NewLogger(cfg.Log, nil)
	defer lg.Sync()

	ctx := context.Background()
	checkers := map[string]middleware.HealthChecker{}

	market := cache.NewMarketplace(appstore.New(appstore.Options{
		BaseURL:   cfg.AppStore.BaseURL,
		HintsURL:  cfg.AppStore.HintsURL,
		Timeout:   cfg.AppStore.Timeout,
		UserAgent: cfg.AppStore.UserAgent,
	}), cfg.Cache.Size, cfg.Cache.TTL)

	analysisSvc := &appanalysis.Service{
		Clock:    application.SystemClock{},
		Logger:   lg.Named("analysis"),
		Fallback: appanalysis.NewFallback(uint64(time.Now().UnixNano())),
	}
	if cfg.OpenAI.APIKey != "" {
		ai, err := aiopenai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL)
		if err != nil {
			lg.Fatalw("openai init error", "error", err)
		}
		analysisSvc.Analyzer = ai
	} else {
		lg.Warn("OPENAI_API_KEY is not set; analyses will use the fallback")
	}

	db, repo, err := openHistory(ctx, cfg)
	if err != nil {
		lg.Fatalw("database init error", "driver", cfg.Database.Driver, "error", err)
	}
	if db != nil {
		defer db.Close()
		if err := repo.EnsureSchema(ctx); err != nil {
			lg.Fatalw("database schema error", "error", err)
		}
		analysisSvc.Repo = repo
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	}

	if cfg.Minio.Endpoint != "" {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			lg.Fatalw("minio init error", "error", err)
		}
		analysisSvc.Reports = store
		checkers["minio"] = store
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Capacity > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate)
		defer limiter.Close()
	}

	handler := httpserver.NewRouter(httpserver.Deps{
		Catalog:        &appcatalog.Service{Market: market, Logger: lg.Named("catalog")},
		Analysis:       analysisSvc,
		Metrics:        middleware.NewMetrics(),
		Logger:         lg.Named("http"),
		Health:         checkers,
		CORSOrigins:    cfg.Server.CORSOrigins,
		APIKeys:        cfg.Auth.APIKeys,
		RateLimiter:    limiter,
		RequestTimeout: cfg.Server.WriteTimeout - 5*time.Second,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		lg.Infow("server listening", "addr", addr, "history", analysisSvc.Repo != nil, "archive", analysisSvc.Reports != nil)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Fatalw("server error", "error", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	lg.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		lg.Errorw("shutdown error", "error", err)
	}
}

func openHistory(ctx context.Context, cfg *config.Config) (*sql.DB, historyRepo, error) {
	pool := infradb.Pool{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	switch strings.ToLower(cfg.Database.Driver) {
	case "mysql":
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN(), pool)
		if err != nil {
			return nil, nil, err
		}
		return db, mysqlp.NewAnalysisRepository(db), nil
	case "postgres":
		db, err := pgp.Connect(ctx, cfg.PostgresDSN(), pool)
		if err != nil {
			return nil, nil, err
		}
		return db, pgp.NewAnalysisRepository(db), nil
	default:
		return nil, nil, nil
	}
}

