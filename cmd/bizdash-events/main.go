package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"bizdash/internal/amqp"
	"bizdash/internal/cli"
	"bizdash/internal/log"
	"bizdash/internal/worker"
)

const (
	shutdownTimeout = 10 * time.Second
	reportInterval  = 5 * time.Minute
)

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg)

	logger.Info("Starting bizdash-events")

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required to consume record events")
		os.Exit(1)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}

	ctx, done := cli.GracefulShutdown(logger, shutdownTimeout, func(context.Context) error {
		return amqpClient.Close()
	})

	activity := worker.NewActivityWorker(worker.DefaultCapacity, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return activity.Run(gctx, amqpClient) })
	g.Go(func() error { return activity.Report(gctx, reportInterval) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", log.FieldError, err)
		_ = amqpClient.Close()
		os.Exit(1)
	}

	<-done
	logger.Info("Worker stopped gracefully")
}
