package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cx-tal-miterani/ticket-admission/internal/config"
	"github.com/cx-tal-miterani/ticket-admission/internal/events"
	"github.com/cx-tal-miterani/ticket-admission/internal/handlers"
	"github.com/cx-tal-miterani/ticket-admission/internal/router"
	"github.com/cx-tal-miterani/ticket-admission/internal/service"
	"github.com/cx-tal-miterani/ticket-admission/internal/websocket"
	"go.temporal.io/sdk/client"
)

func main() {
	// Get configuration from defaults, CONFIG_FILE and environment
	v := config.New()
	cfg, err := config.Load(v, v.GetString("config_file"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := config.NewLogger(cfg, os.Stderr)

	// Create Temporal client
	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalHost,
		Namespace: cfg.Namespace,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("Failed to create Temporal client", "error", err)
		os.Exit(1)
	}
	defer temporalClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Event bus feeding the websocket hub
	bus := events.NewBus(nil)
	defer bus.Close()

	hub, err := websocket.NewHub(ctx, bus, logger)
	if err != nil {
		logger.Error("Failed to start websocket hub", "error", err)
		os.Exit(1)
	}
	go hub.Run(ctx)

	// Initialize services
	deskService := service.NewDeskService(temporalClient, bus, cfg.TaskQueue, logger)

	// Initialize handlers
	h := handlers.NewHandler(deskService)

	// Create router
	r := router.SetupRouter(h, hub.HandleWebSocket)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("API server starting", "port", cfg.APIPort, "temporal", cfg.TemporalHost)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	cancel()

	logger.Info("Server stopped")
}
