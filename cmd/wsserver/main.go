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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/yeonjoon13/flight-dashboard/internal/config"
	"github.com/yeonjoon13/flight-dashboard/internal/flights"
	"github.com/yeonjoon13/flight-dashboard/internal/httpx"
	"github.com/yeonjoon13/flight-dashboard/internal/kafka"
	"github.com/yeonjoon13/flight-dashboard/internal/model"
	"github.com/yeonjoon13/flight-dashboard/internal/ws"
)

const (
	broadcastInterval    = time.Second
	cacheCleanupInterval = 5 * time.Minute
)

func main() {
	cfg, err := config.Load("wsserver", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := cfg.NewLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store := flights.NewStore()
	hub := ws.NewHub(logger)

	router := chi.NewRouter()
	router.Use(middleware.RealIP, middleware.Recoverer)
	router.Handle("/ws", hub)
	router.Get("/flights", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, store.List())
	})
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router, ReadHeaderTimeout: 10 * time.Second}

	reader := kafka.NewReader(cfg.KafkaBroker, cfg.KafkaTopic, cfg.KafkaGroup)
	defer reader.Close()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("consuming", "broker", cfg.KafkaBroker, "topic", cfg.KafkaTopic, "group", cfg.KafkaGroup)
		return kafka.Consume(gctx, reader, logger, func(f model.EnrichedFlight) {
			if store.Upsert(f, time.Now()) {
				logger.Debug("cached flight", "icao24", f.ICAO24, "flight", f.FlightNumber)
			}
		})
	})

	g.Go(func() error {
		ticker := time.NewTicker(broadcastInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				hub.Close()
				return nil
			case <-ticker.C:
				if hub.Len() == 0 {
					continue
				}
				if err := hub.BroadcastJSON(store.List()); err != nil {
					logger.Error("json marshaling error", "err", err)
				}
			}
		}
	})

	g.Go(func() error {
		ticker := time.NewTicker(cacheCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case now := <-ticker.C:
				if removed := store.Prune(cfg.StaleAfter, now); removed > 0 {
					logger.Info("cleaned up stale flights", "removed", removed, "size", store.Len())
				}
			}
		}
	})

	g.Go(func() error {
		logger.Info("websocket server starting", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("wsserver stopped", "err", err)
		os.Exit(1)
	}
	logger.Info("shutting down")
}
