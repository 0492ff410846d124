package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/stylehaven/stylehaven-backend/internal/notifications"
	"github.com/stylehaven/stylehaven-backend/pkg/config"
	"github.com/stylehaven/stylehaven-backend/pkg/logger"
	"github.com/stylehaven/stylehaven-backend/pkg/mailer"
	"github.com/stylehaven/stylehaven-backend/pkg/pubsub"
)

// The worker drains the notification subscription and delivers email over
// SMTP. It runs until interrupted.
func main() {
	logg := logger.New(logger.Options{ServiceName: "worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pubsubClient, err := pubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap pubsub", err)
		os.Exit(1)
	}
	defer func() {
		if err := pubsubClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing pubsub", err)
		}
	}()

	sender, err := mailer.New(cfg.SMTP)
	if err != nil {
		logg.Error(ctx, "failed to create mailer", err)
		os.Exit(1)
	}

	consumer, err := notifications.NewConsumer(pubsubClient.NotificationSubscription(), sender, logg)
	if err != nil {
		logg.Error(ctx, "failed to create notification consumer", err)
		os.Exit(1)
	}

	logCtx := logg.WithFields(ctx, map[string]any{"env": cfg.App.Env})
	logg.Info(logCtx, "starting notification worker")

	if err := consumer.Run(ctx); err != nil && ctx.Err() == nil {
		logg.Error(logCtx, "notification worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(logCtx, "notification worker stopped")
}
