package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emberpixel/hermes/internal/config"
	"github.com/emberpixel/hermes/internal/display"
	"github.com/emberpixel/hermes/internal/journal"
	"github.com/emberpixel/hermes/internal/metrics"
	"github.com/emberpixel/hermes/internal/providers/homeassistant"
	"github.com/emberpixel/hermes/internal/providers/septa"
	"github.com/emberpixel/hermes/internal/render"
	"github.com/emberpixel/hermes/internal/tracker"
	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// pollInterval is fixed by design; the feeds are not built for a faster
// cadence and the display does not need one.
const pollInterval = 15 * time.Second

// Terminal stand-in dimensions for the two-line presence layout.
const (
	displayWidth  = 64
	displayHeight = 6
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is
	// received. Cancellation is the forceful teardown path: it cuts the
	// polling loop and the display driver at their next suspension point.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	// The display owns stdout, so logs go to stderr.
	logger := setupLogger(cfg.Env)

	// The feed credentials live in transit.yaml; without them the tracker
	// never starts.
	transitCfg, err := config.LoadTransit()
	if err != nil {
		log.Fatalf("Failed to load transit config: %v", err)
	}

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	jnl, err := journal.Open(cfg.JournalPath, logger)
	if err != nil {
		log.Fatalf("Failed to open transition journal: %v", err)
	}
	defer jnl.Close()

	location := homeassistant.New(
		transitCfg.HomeAssistantURL,
		transitCfg.HomeAssistantBearerToken,
		transitCfg.PersonEntityID,
		logger,
	)
	trains := septa.New(logger)

	trk := tracker.New(logger, location, trains, jnl, appMetrics, pollInterval)

	surface := display.NewTerminalSurface(termenv.NewOutput(os.Stdout), displayWidth, displayHeight)
	driver := display.NewDriver(logger, render.NewPresenceRenderer(trk.View()), surface, cfg.RefreshPeriod)

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	// Start the monitoring server in a goroutine to allow main to listen for signals.
	go startMonitoringServer(ctx, logger, reg, jnl, cfg.Port)

	go driver.Run(ctx)

	go func() {
		// A tick failure kills the loop permanently; the display keeps
		// showing the last published view.
		if runErr := trk.Run(ctx); runErr != nil && !errors.Is(runErr, context.Canceled) {
			logger.ErrorContext(ctx, "Presence tracker terminated", "error", runErr)
		}
	}()

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	// Drop the liveness flag as well so a loop surviving the cancellation
	// race exits at the top of its next iteration.
	trk.Stop()

	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// startMonitoringServer starts an HTTP server that provides health check and
// metrics endpoints. The health check pings the transition journal database.
func startMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	jnl *journal.Journal,
	port int,
) {
	http.HandleFunc("/healthz", func(writer http.ResponseWriter, _ *http.Request) {
		log.DebugContext(ctx, "Performing health checks...")
		status, body := http.StatusOK, "OK"
		if err := jnl.Ping(ctx); err != nil {
			status, body = http.StatusServiceUnavailable, "journal ping failed"
		}
		writer.WriteHeader(status)
		if _, err := writer.Write([]byte(body)); err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}
	})
	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	log.InfoContext(ctx, "Starting monitoring server", "port", port)
	readTimeout := 5
	writeTimeout := 10
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      http.DefaultServeMux,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		log.ErrorContext(ctx, "Monitoring server failed", "error", err)
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		}))
	default:
		logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelError,
		}))
		logger.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))

		return logger
	}
}
