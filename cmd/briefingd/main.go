// Package main provides the briefingd server for aviation weather briefings.
//
// briefingd fetches METAR, TAF, and PIREP reports from aviationweather.gov,
// decodes them into plain-language text, classifies flight conditions, and
// serves route briefings over a REST API. PostgreSQL (briefing archive),
// ClickHouse (condition analytics), and NATS (raw-report ingest) are all
// optional and enabled through the environment; see internal/config.
//
// Usage:
//
//	briefingd [options]
//
// Options:
//
//	-listen ADDR        HTTP listen address (default: :8080, env: LISTEN_ADDR)
//	-upstream URL       Weather data base URL (default: aviationweather.gov)
//
// API Endpoints:
//
//	GET  /api/v1/health
//	GET  /api/v1/weather/{station}
//	GET  /api/v1/pireps/{station}
//	GET  /api/v1/notams/{station}
//	POST /api/v1/briefing
//	GET  /api/v1/briefings
//	GET  /metrics
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HappyMeal-git/aviation-weather-briefing/internal/airports"
	"github.com/HappyMeal-git/aviation-weather-briefing/internal/api"
	"github.com/HappyMeal-git/aviation-weather-briefing/internal/briefing"
	"github.com/HappyMeal-git/aviation-weather-briefing/internal/config"
	"github.com/HappyMeal-git/aviation-weather-briefing/internal/ingest"
	"github.com/HappyMeal-git/aviation-weather-briefing/internal/observability"
	"github.com/HappyMeal-git/aviation-weather-briefing/internal/storage"
	"github.com/HappyMeal-git/aviation-weather-briefing/internal/upstream"
)

const version = "1.0.0"

func main() {
	listen := flag.String("listen", "", "HTTP listen address (overrides LISTEN_ADDR)")
	upstreamURL := flag.String("upstream", "", "Weather data base URL (overrides default)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *listen != "" {
		cfg.ListenAddr = *listen
	}

	ctx := context.Background()
	metrics := observability.NewMetrics()

	clientOpts := []upstream.Option{
		upstream.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
	}
	if *upstreamURL != "" {
		clientOpts = append(clientOpts, upstream.WithBaseURL(*upstreamURL))
	}
	client := upstream.NewClient(clientOpts...)

	db, err := storage.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchemas(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating schemas: %v\n", err)
		os.Exit(1)
	}

	svc := briefing.NewService(client, briefing.Options{
		MetarLookbackHours: cfg.MetarLookbackHours,
		PirepRadiusNM:      cfg.PirepRadiusNM,
		PirepLookbackHours: cfg.PirepLookbackHours,
	}, metrics)

	// The coordinate cache makes distance work for stations outside the
	// builtin table, resolved on demand through the provider.
	var airportStore *airports.Store
	if cfg.AirportCachePath != "" {
		airportStore, err = airports.OpenStore(cfg.AirportCachePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening airport cache: %v\n", err)
			os.Exit(1)
		}
		defer airportStore.Close()
	}
	svc.SetLocator(airports.NewResolver(airportStore, client))

	// Raw-report ingest is optional; it needs a NATS URL and feeds the
	// analytics sink when ClickHouse is configured.
	if cfg.NATSURL != "" {
		var sink ingest.Sink
		if db.CH != nil {
			sink = db.CH
		}
		consumer, err := ingest.NewConsumer(cfg.NATSURL, cfg.NATSSubject, sink, metrics)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error connecting to NATS: %v\n", err)
			os.Exit(1)
		}
		if err := consumer.Start(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting ingest: %v\n", err)
			os.Exit(1)
		}
		defer consumer.Stop()
	}

	server := api.NewServer(svc, db, cfg.ListenAddr, version)
	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("briefingd %s listening at %s", version, cfg.ListenAddr)
		errCh <- httpServer.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}
	case sig := <-sigCh:
		log.Printf("briefingd: received %v, shutting down", sig)
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("briefingd: shutdown: %v", err)
		}
	}
}
