package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/joho/godotenv"

	"fleet-maintenance-backend/config"
	"fleet-maintenance-backend/internal/api"
	"fleet-maintenance-backend/internal/db"
	"fleet-maintenance-backend/internal/notification"
	"fleet-maintenance-backend/internal/refresh"
	"fleet-maintenance-backend/internal/service"
	"fleet-maintenance-backend/internal/status"
	"fleet-maintenance-backend/internal/store"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "fleet-maintenance ", log.LstdFlags)

	// Optional .env for local development; deployment uses real env vars.
	if err := godotenv.Load(); err == nil {
		logger.Println(".env file loaded")
	}

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	if !cfg.Auth.Disabled && cfg.Auth.JWTSecret == "" {
		logger.Fatalf("auth is enabled but no JWT secret is configured")
	}
	if cfg.Auth.Disabled {
		logger.Println("WARNING: authentication is disabled")
	}

	var webpushOptions *webpush.Options
	if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
	} else {
		logger.Println("VAPID keys are not configured; overdue push alerts are disabled")
	}

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.New(gormDB)
	logger.Println("data store initialized")

	thresholds := status.Thresholds{
		DueSoonDays:    cfg.Status.DueSoonDays,
		DueSoonMileage: cfg.Status.DueSoonMileage,
	}
	svc := service.New(appStore, thresholds)

	if webpushOptions != nil {
		workerPool := notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, webpushOptions)
		workerPool.Start(ctx)
		svc.SetNotifier(workerPool)
	}

	// Run the periodic status reconciliation in the background
	refreshSvc := refresh.NewService(cfg, svc)
	go refreshSvc.Run(ctx)

	// Initialize router
	router := api.NewRouter(cfg, svc, webpushOptions)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
