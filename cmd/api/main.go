package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/gestorcrm/quotes-api/internal/config"
	"github.com/gestorcrm/quotes-api/internal/http/handler"
	"github.com/gestorcrm/quotes-api/internal/http/middleware"
	"github.com/gestorcrm/quotes-api/internal/http/router"
	"github.com/gestorcrm/quotes-api/internal/jobs"
	"github.com/gestorcrm/quotes-api/internal/logger"
	"github.com/gestorcrm/quotes-api/internal/repository"
	"github.com/gestorcrm/quotes-api/internal/seed"
	"github.com/gestorcrm/quotes-api/internal/service"
	"github.com/gestorcrm/quotes-api/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	// Open the key-value store
	store, err := storage.NewStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() { _ = store.Close() }()

	log.Info("Store opened",
		zap.String("driver", cfg.Database.Driver),
		zap.String("dsn", cfg.Database.DSN),
	)

	// Initialize repositories
	clientRepo := repository.NewClientRepository(store, log)
	productRepo := repository.NewProductRepository(store, log)
	supplierRepo := repository.NewSupplierRepository(store, log)
	quoteRepo := repository.NewQuoteRepository(store, log)

	// Initialize services
	clientService := service.NewClientService(clientRepo, log)
	productService := service.NewProductService(productRepo, log)
	supplierService := service.NewSupplierService(supplierRepo, productRepo, log)
	quoteService := service.NewQuoteService(quoteRepo, productRepo, cfg.Quotes.TaxRate, log)
	comparisonService := service.NewComparisonService(quoteRepo, log)
	reconciliationService := service.NewReconciliationService(productRepo, supplierRepo, quoteRepo, log)

	// Seed sample data on first start
	if cfg.Seed.Enabled {
		seeder := seed.NewSeeder(clientRepo, productRepo, supplierRepo, log)
		if err := seeder.Run(ctx); err != nil {
			log.Warn("Seeding failed, continuing with existing data", zap.Error(err))
		}
	}

	// Initialize middleware
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	clientHandler := handler.NewClientHandler(clientService, log)
	productHandler := handler.NewProductHandler(productService, log)
	supplierHandler := handler.NewSupplierHandler(supplierService, log)
	quoteHandler := handler.NewQuoteHandler(quoteService, log)
	comparisonHandler := handler.NewComparisonHandler(comparisonService, log)
	maintenanceHandler := handler.NewMaintenanceHandler(reconciliationService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		store,
		rateLimiter,
		clientHandler,
		productHandler,
		supplierHandler,
		quoteHandler,
		comparisonHandler,
		maintenanceHandler,
	)

	// Initialize and start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.ReconcileEnabled {
		scheduler = jobs.NewScheduler(log)
		if err := jobs.RegisterReconcileJob(scheduler, reconciliationService, cfg.Jobs.ReconcileCron, log); err != nil {
			log.Error("Failed to register reconciliation job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with reconciliation job",
				zap.String("cron_expr", cfg.Jobs.ReconcileCron),
			)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler if running
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
