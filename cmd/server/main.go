package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"tecsoqr/internal/api"
	"tecsoqr/internal/api/handlers"
	"tecsoqr/internal/api/middleware"
	"tecsoqr/internal/engine/analytics"
	"tecsoqr/internal/engine/codes"
	"tecsoqr/internal/engine/render"
	"tecsoqr/internal/pkg/logger"
	"tecsoqr/internal/platform/audit"
	"tecsoqr/internal/platform/auth"
	"tecsoqr/internal/platform/config"
	"tecsoqr/internal/platform/database"
	"tecsoqr/internal/platform/repositories"
	"tecsoqr/internal/workers"
)

func main() {
	configPath := pflag.StringP("config", "c", "configs/config.yaml", "Path to config file")
	migrate := pflag.Bool("migrate", false, "Apply migrations before serving")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging)

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("jwt.secret must be set (JWT_SECRET)")
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if *migrate {
		if _, err := database.Migrate(db, cfg.Database.MigrationsDir); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
	}

	// Repositories
	codeRepo := codes.NewRepository(db)
	keyRepo := repositories.NewAPIKeyRepository(db)

	// Services
	tokenSvc := auth.NewTokenService(cfg.JWT)
	cache := render.NewCache(cfg.Render.CacheTTL)
	codeSvc := codes.NewService(codeRepo, cache, cfg.History.Retention)
	analyticsSvc := analytics.NewService(analytics.NewRepository(db))
	auditLogger := audit.NewLogger(db)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit)

	deps := &api.Dependencies{
		QRHandler:        handlers.NewQRHandler(codeSvc, tokenSvc, cfg.Domains.PublicURL, cfg.Server.MaxBodyBytes, cfg.Render.MaxBatchItems),
		BulkHandler:      handlers.NewBulkHandler(cfg.Render.BulkConcurrency, cfg.Server.MaxBodyBytes),
		CodeHandler:      handlers.NewCodeHandler(codeSvc, tokenSvc),
		AnalyticsHandler: handlers.NewAnalyticsHandler(analyticsSvc),
		APIKeyHandler:    handlers.NewAPIKeyHandler(keyRepo, auditLogger),
		AuditHandler:     handlers.NewAuditHandler(auditLogger),
		HealthHandler:    handlers.NewHealthHandler(db),
		MetricsHandler:   handlers.NewMetricsHandler(),
		AuthMiddleware:   middleware.NewAuthMiddleware(keyRepo, cfg.Auth.RequireAPIKey),
		AdminMiddleware:  middleware.NewAdminMiddleware(cfg.Auth.AdminKeyHash),
		RateLimiter:      rateLimiter,
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.NewRouter(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		workers.RunEvery(ctx, "memory_cleanup", 10*time.Minute, func() error {
			rateLimiter.Cleanup(10 * time.Minute)
			if n := cache.Prune(); n > 0 {
				log.Debug().Int("entries", n).Msg("pruned render cache")
			}
			return nil
		})
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		err := srv.Shutdown(shutdownCtx)
		auditLogger.Wait()
		return err
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
