package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yeonjoon13/flight-dashboard/internal/config"
	"github.com/yeonjoon13/flight-dashboard/internal/kafka"
	"github.com/yeonjoon13/flight-dashboard/internal/model"
)

func main() {
	cfg, err := config.Load("consumer", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := cfg.NewLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reader := kafka.NewReader(cfg.KafkaBroker, cfg.KafkaTopic, cfg.KafkaGroup)
	defer reader.Close()

	logger.Info("starting consumer", "broker", cfg.KafkaBroker, "topic", cfg.KafkaTopic)
	err = kafka.Consume(ctx, reader, logger, func(f model.EnrichedFlight) {
		logger.Info("flight",
			"icao24", f.ICAO24,
			"flight", f.FlightNumber,
			"airline", f.AirlineName,
			"aircraft", f.AircraftModel,
			"status", f.Status,
		)
	})
	if err != nil {
		logger.Error("consumer stopped", "err", err)
	}
	logger.Info("shutting down")
}
