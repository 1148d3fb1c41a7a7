package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kiosk-assistant-be/internal/bootstrap"
	"kiosk-assistant-be/internal/config"
	"kiosk-assistant-be/internal/pkg/logger"
	"kiosk-assistant-be/internal/server"
	"kiosk-assistant-be/internal/tracer"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	if err := cfg.Validate(); err != nil {
		sysLogger.Error("MAIN", "Invalid configuration", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	// 2. Tracer
	shutdownTracer := tracer.InitTracer(cfg.Telemetry, sysLogger)
	defer shutdownTracer(context.Background())

	// 3. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(cfg, sysLogger)
	if err != nil {
		sysLogger.Error("MAIN", "Failed to build container", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Start Background Services
	if err := container.ConsumerService.Consume(ctx); err != nil {
		sysLogger.Error("MAIN", "Failed to start turn event consumer", map[string]interface{}{"error": err.Error()})
	}

	// general answers run without context until ingestion finishes
	go func() {
		report, err := container.LoadKnowledge(ctx)
		if err != nil {
			sysLogger.Warn("MAIN", "Knowledge ingestion interrupted", map[string]interface{}{"error": err.Error()})
			return
		}
		sysLogger.Info("MAIN", "Knowledge ingestion finished", map[string]interface{}{"documents": report.Documents})
	}()

	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				container.RateLimiter.Cleanup(30 * time.Minute)
			}
		}
	}()

	// 5. Run Server
	srv := server.New(cfg, container)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run() }()

	select {
	case err := <-errCh:
		if err != nil {
			sysLogger.Error("MAIN", "Server stopped", map[string]interface{}{"error": err.Error()})
		}
	case <-ctx.Done():
		sysLogger.Info("MAIN", "Shutting down", nil)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sysLogger.Error("MAIN", "Graceful shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}
}
