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

	"github.com/yeonjoon13/flight-dashboard/internal/api"
	"github.com/yeonjoon13/flight-dashboard/internal/config"
	"github.com/yeonjoon13/flight-dashboard/internal/enrich"
	"github.com/yeonjoon13/flight-dashboard/internal/httpapi"
	"github.com/yeonjoon13/flight-dashboard/internal/prediction"
)

func main() {
	cfg, err := config.Load("dashboard", os.Args[1:])
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

	client := api.NewClient(cfg.APIBaseURL, api.WithAPIKey(cfg.APIKey), api.WithLogger(logger))
	enricher := enrich.New(client, enrich.WithFreshness(cfg.CacheTTL), enrich.WithLogger(logger))

	var predictor httpapi.Predictor
	if cfg.PredictionBaseURL != "" {
		predictor = prediction.NewClient(cfg.PredictionBaseURL, api.WithAPIKey(cfg.APIKey), api.WithLogger(logger))
	}

	handler := httpapi.NewHandler(enricher, predictor, client, logger)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	// Warm the reference cache so the first request is not slowed by it.
	go enricher.EnsureFresh(ctx)

	logger.Info("dashboard listening", "addr", cfg.HTTPAddr, "api", cfg.APIBaseURL)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
	logger.Info("shutting down")
}
