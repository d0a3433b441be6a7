package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cafe-system/internal/cart"
	"cafe-system/internal/catalog"
	"cafe-system/internal/config"
	"cafe-system/internal/database"
	"cafe-system/internal/logger"
	"cafe-system/internal/messaging"
	"cafe-system/internal/services/admin"
	"cafe-system/internal/services/checkout"
	"cafe-system/internal/services/history"
)

func main() {
	var (
		mode           = flag.String("mode", "", "Service mode (order-service, admin-service)")
		port           = flag.Int("port", 0, "HTTP port (overrides HTTP_PORT)")
		migrationsPath = flag.String("migrations", "migrations", "Path to SQL migrations")
	)
	flag.Parse()

	if *mode == "" {
		fmt.Fprintf(os.Stderr, "Error: --mode flag is required\n")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port == 0 {
		*port = cfg.HTTP.Port
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
		"port": *port,
	})

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	switch *mode {
	case "order-service":
		err = runOrderService(ctx, cfg, log, *port, *migrationsPath)
	case "admin-service":
		err = runAdminService(ctx, cfg, log, *port)
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	if err != nil {
		log.Error("service_failed", fmt.Sprintf("%s failed", *mode), requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runOrderService runs the customer-facing service: menu, cart, checkout and
// order history
func runOrderService(ctx context.Context, cfg *config.Config, log *logger.Logger, port int, migrationsPath string) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, migrationsPath); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	publisher := messaging.NewPublisher(conn, log)
	reader := catalog.NewReader(db, log)
	carts := cart.NewRegistry()
	orders := checkout.NewRepository(db)

	service := checkout.NewService(reader, orders, publisher, log)
	historySvc := history.NewService(db, log)
	handler := checkout.NewHandler(service, carts, reader, historySvc, db, log)

	return serveHTTP(ctx, log, "Order Service", port, handler.SetupRoutes())
}

// runAdminService runs the admin service: all-orders view, status updates and
// the guarded ad-hoc query endpoint
func runAdminService(ctx context.Context, cfg *config.Config, log *logger.Logger, port int) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	service := admin.NewService(db, log)
	historySvc := history.NewService(db, log)
	handler := admin.NewHandler(service, historySvc, db, log)

	return serveHTTP(ctx, log, "Admin Service", port, handler.SetupRoutes())
}

func serveHTTP(ctx context.Context, log *logger.Logger, name string, port int, mux *http.ServeMux) error {
	requestID := logger.GenerateRequestID()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		log.Info("http_listening", fmt.Sprintf("%s started on port %d", name, port), requestID, map[string]interface{}{
			"port": port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}
