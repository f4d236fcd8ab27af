package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/portfolio-site/portfolio-backend/config"
	"github.com/portfolio-site/portfolio-backend/internal/auth"
	authhttp "github.com/portfolio-site/portfolio-backend/internal/auth/http"
	"github.com/portfolio-site/portfolio-backend/internal/bootstrap"
	"github.com/portfolio-site/portfolio-backend/internal/logging"
	"github.com/portfolio-site/portfolio-backend/internal/projects/service"
)

const serviceName = "portfolio-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *sql.DB
	if cfg.Database.Backend == config.StoreBackendPostgres {
		db, err = bootstrap.OpenDB(ctx, &cfg.Database, logger)
		if err != nil {
			logger.Fatal("database unavailable", zap.Error(err))
		}
		defer db.Close()
	} else {
		logger.Warn("using in-memory project store; data is lost on restart")
	}

	var rdb *redis.Client
	rdb, err = bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal("redis unavailable", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
	}

	store, err := bootstrap.BuildProjectStore(cfg, db, rdb, logger)
	if err != nil {
		logger.Fatal("project store", zap.Error(err))
	}
	if store.Warmer != nil {
		store.Warmer.Start()
		defer store.Warmer.Stop()
	}

	deps := bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		Logger:         logger,
		DB:             db,
		Redis:          rdb,
		AllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		RateLimitRPS:   cfg.HTTP.RateLimitRPS,
		RateLimitBurst: cfg.HTTP.RateLimitBurst,
	}

	if cfg.Firebase.CredentialsPath != "" {
		client, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			logger.Fatal("firebase", zap.Error(err))
		}
		deps.Verifier = client
	}

	policy := auth.NewAdminPolicy(cfg.Auth.AdminEmail)

	if cfg.Auth.GoogleClientID != "" {
		deps.Sessions = auth.NewSessionManager(cfg.Auth.SessionSecret, cfg.IsProduction())
		deps.OAuth = authhttp.New(authhttp.Options{
			OAuth:      authhttp.NewGoogleOAuthConfig(cfg.Auth.GoogleClientID, cfg.Auth.GoogleClientSecret, cfg.Auth.GoogleRedirectURL),
			Sessions:   deps.Sessions,
			Policy:     policy,
			SuccessURL: cfg.Auth.SuccessURL,
			ErrorURL:   cfg.Auth.ErrorURL,
			Logger:     logger,
		})
	}

	if deps.Verifier == nil && deps.Sessions == nil {
		logger.Warn("no sign-in method configured; project mutations will be denied")
	}

	deps.Projects = service.NewProjectService(store.Store, auth.ContextOracle{}, policy, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      bootstrap.BuildRouter(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
