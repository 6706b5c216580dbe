package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"bizdash/internal/backend"
	"bizdash/internal/cli"
	apphttp "bizdash/internal/http"
	"bizdash/internal/log"
	"bizdash/internal/middleware/ratelimit"
)

const (
	shutdownTimeout    = 30 * time.Second
	cacheSweepInterval = time.Minute
)

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg)

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	b, err := backend.NewFactory(logger).CreateBackend(context.Background(), backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err)
		os.Exit(1)
	}

	rl := ratelimit.DefaultConfig()
	rl.RequestsPerMinute = cfg.RateLimitRPM
	srv := apphttp.NewServer(apphttp.Config{
		Addr:      cfg.Addr(),
		RateLimit: rl,
		Logger:    logger,
	}, apphttp.Services{
		Invoices:   b.Invoices,
		Quotations: b.Quotations,
		Expenses:   b.Expenses,
		Tasks:      b.Tasks,
		Clients:    b.Clients,
		Settings:   b.Settings,
		Reports:    b.Reports,
	})

	ctx, done := cli.GracefulShutdown(logger, shutdownTimeout, func(ctx context.Context) error {
		var result *multierror.Error
		if err := srv.Shutdown(ctx); err != nil {
			result = multierror.Append(result, err)
		}
		if err := b.Close(); err != nil {
			result = multierror.Append(result, err)
		}
		return result.ErrorOrNil()
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting bizdash server", "port", cfg.Port, "seed", cfg.Seed, "events_backend", cfg.EventsBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error { return srv.RunBackground(gctx) })
	g.Go(func() error { return b.Caches.Run(gctx, cacheSweepInterval) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		_ = b.Close()
		os.Exit(1)
	}

	<-done
	logger.Info("Server stopped gracefully")
}
