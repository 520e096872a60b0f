package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yeonjoon13/flight-dashboard/internal/api"
	"github.com/yeonjoon13/flight-dashboard/internal/config"
	"github.com/yeonjoon13/flight-dashboard/internal/enrich"
	"github.com/yeonjoon13/flight-dashboard/internal/kafka"
)

func main() {
	cfg, err := config.Load("ingestor", os.Args[1:])
	if err == nil {
		err = cfg.RequireAPI()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := cfg.NewLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := kafka.EnsureTopics(cfg.KafkaBroker, []kafka.TopicConfig{{Topic: cfg.KafkaTopic}}); err != nil {
		logger.Warn("could not ensure topic, relying on auto-creation", "topic", cfg.KafkaTopic, "err", err)
	}

	client := api.NewClient(cfg.APIBaseURL, api.WithAPIKey(cfg.APIKey), api.WithLogger(logger))
	enricher := enrich.New(client, enrich.WithFreshness(cfg.CacheTTL), enrich.WithLogger(logger))

	publisher := kafka.NewPublisher(cfg.KafkaBroker, cfg.KafkaTopic)
	defer publisher.Close()

	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	logger.Info("starting ingestor", "interval", cfg.PollInterval, "topic", cfg.KafkaTopic)
	for {
		poll(ctx, logger, enricher, publisher, cfg.FlightLimit)
		select {
		case <-ctx.Done():
			logger.Info("shutting down ingestor")
			return
		case <-ticker.C:
		}
	}
}

func poll(ctx context.Context, logger *slog.Logger, enricher *enrich.Enricher, publisher *kafka.Publisher, limit int) {
	flights, err := enricher.GetEnrichedFlights(ctx, limit)
	if err != nil {
		logger.Error("fetch error", "err", err)
		return
	}
	logger.Info("fetched enriched flights", "count", len(flights))

	if err := publisher.Publish(ctx, flights); err != nil {
		logger.Error("publish error", "err", err)
		return
	}
	logger.Info("published flights", "count", len(flights))
}
