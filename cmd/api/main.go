package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/adsync-labs/campaigns-backend/api/routes"
	"github.com/adsync-labs/campaigns-backend/internal/campaigns"
	"github.com/adsync-labs/campaigns-backend/internal/countries"
	"github.com/adsync-labs/campaigns-backend/internal/integration"
	"github.com/adsync-labs/campaigns-backend/internal/payouts"
	"github.com/adsync-labs/campaigns-backend/pkg/config"
	"github.com/adsync-labs/campaigns-backend/pkg/db"
	"github.com/adsync-labs/campaigns-backend/pkg/logger"
	"github.com/adsync-labs/campaigns-backend/pkg/metrics"
	"github.com/adsync-labs/campaigns-backend/pkg/migrate"
	"github.com/adsync-labs/campaigns-backend/pkg/redis"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: cfg.App.ServiceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	go dbClient.Monitor(ctx)

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	notifierMetrics := metrics.NewNotifierMetrics(registry)

	notifier, err := integration.NewNotifier(cfg.Integration, logg, notifierMetrics)
	if err != nil {
		logg.Error(ctx, "failed to create notifier", err)
		os.Exit(1)
	}

	countryRepo := countries.NewRepository(dbClient.DB())
	countryService, err := countries.NewService(countryRepo, logg)
	if err != nil {
		logg.Error(ctx, "failed to create country service", err)
		os.Exit(1)
	}

	campaignRepo := campaigns.NewRepository(dbClient.DB())
	campaignService, err := campaigns.NewService(campaignRepo, notifier, logg)
	if err != nil {
		logg.Error(ctx, "failed to create campaign service", err)
		os.Exit(1)
	}

	payoutService, err := payouts.NewService(payouts.NewRepository(dbClient.DB()), campaignRepo, countryRepo, notifier, logg)
	if err != nil {
		logg.Error(ctx, "failed to create payout service", err)
		os.Exit(1)
	}

	if cfg.Seed.Countries {
		go seedCountries(ctx, logg, dbClient, countryService)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	startCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(startCtx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, registry, campaignService, payoutService, countryService),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logg.Info(context.Background(), "shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var closeErr error
	closeErr = multierr.Append(closeErr, server.Shutdown(shutdownCtx))
	notifier.Wait()
	closeErr = multierr.Append(closeErr, dbClient.Close())
	if redisClient != nil {
		closeErr = multierr.Append(closeErr, redisClient.Close())
	}
	if closeErr != nil {
		logg.Error(context.Background(), "shutdown finished with errors", closeErr)
		os.Exit(1)
	}
	logg.Info(context.Background(), "shutdown complete")
}

// seedCountries provisions the country catalog once the database connection
// is up. Retries until it succeeds or the process stops.
func seedCountries(ctx context.Context, logg *logger.Logger, dbClient *db.Client, svc countries.Service) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		if dbClient.Connected() {
			if err := svc.Seed(ctx, countries.DefaultSeed()); err != nil {
				logg.Warn(ctx, "country seed attempt failed: "+err.Error())
			} else {
				return
			}
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
