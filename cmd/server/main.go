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

	billingapp "github.com/saurabhwebdev/tailtally-sub001/internal/application/billing"
	identityapp "github.com/saurabhwebdev/tailtally-sub001/internal/application/identity"
	inventoryapp "github.com/saurabhwebdev/tailtally-sub001/internal/application/inventory"
	notificationapp "github.com/saurabhwebdev/tailtally-sub001/internal/application/notification"
	ownerapp "github.com/saurabhwebdev/tailtally-sub001/internal/application/owner"
	reportapp "github.com/saurabhwebdev/tailtally-sub001/internal/application/report"
	saleapp "github.com/saurabhwebdev/tailtally-sub001/internal/application/sale"
	"github.com/saurabhwebdev/tailtally-sub001/internal/infrastructure/auth"
	"github.com/saurabhwebdev/tailtally-sub001/internal/infrastructure/cache"
	"github.com/saurabhwebdev/tailtally-sub001/internal/infrastructure/config"
	"github.com/saurabhwebdev/tailtally-sub001/internal/infrastructure/event"
	"github.com/saurabhwebdev/tailtally-sub001/internal/infrastructure/logger"
	"github.com/saurabhwebdev/tailtally-sub001/internal/infrastructure/persistence"
	"github.com/saurabhwebdev/tailtally-sub001/internal/interfaces/http/handler"
	"github.com/saurabhwebdev/tailtally-sub001/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	zapLogger.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(cfg.Database, zapLogger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Repositories
	saleRepo := persistence.NewGormSaleRepository(db)
	inventoryRepo := persistence.NewGormInventoryRepository(db)
	movementRepo := persistence.NewGormMovementRepository(db)
	ownerRepo := persistence.NewGormOwnerRepository(db)
	petRepo := persistence.NewGormPetRepository(db)
	invoiceRepo := persistence.NewGormInvoiceRepository(db)
	userRepo := persistence.NewGormUserRepository(db)
	reportRepo := persistence.NewGormReportRepository(db)

	// Report cache is optional; reports fall back to the database when
	// Redis is disabled or unreachable at startup.
	var reportCache reportapp.Cache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(cfg.Redis)
		if err != nil {
			zapLogger.Warn("redis unavailable, report caching disabled", zap.Error(err))
		} else {
			defer func() { _ = redisCache.Close() }()
			reportCache = redisCache
			zapLogger.Info("report caching enabled", zap.String("addr", cfg.Redis.Addr()))
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// Application services
	saleService := saleapp.NewService(saleRepo, ownerRepo)
	inventoryService := inventoryapp.NewService(inventoryRepo, movementRepo)
	ownerService := ownerapp.NewService(ownerRepo, petRepo)
	billingService := billingapp.NewService(invoiceRepo, saleRepo, ownerRepo)
	identityService := identityapp.NewService(userRepo, jwtService)
	reportService := reportapp.NewService(reportRepo, reportCache, cfg.Report.CacheTTL, zapLogger)

	// Event bus: the stock deduction handler runs synchronously inside
	// sale confirmation, so its failure aborts the confirmation.
	eventBus := event.NewInMemoryEventBus(zapLogger)
	eventBus.Subscribe(saleapp.NewSaleConfirmedHandler(inventoryService, zapLogger))

	notifier := notificationapp.NewLogNotifier(zapLogger)
	eventBus.Subscribe(notificationapp.NewLowStockHandler(notifier, zapLogger))
	eventBus.Subscribe(notificationapp.NewPaymentRecordedHandler(notifier, zapLogger))

	saleService.SetEventPublisher(eventBus)
	inventoryService.SetEventPublisher(eventBus)
	billingService.SetEventPublisher(eventBus)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := eventBus.Start(ctx); err != nil {
		return fmt.Errorf("start event bus: %w", err)
	}

	engine := router.New(cfg, jwtService, zapLogger, router.Handlers{
		System:    handler.NewSystemHandler(db, cfg.App.Name),
		Auth:      handler.NewAuthHandler(identityService),
		Sale:      handler.NewSaleHandler(saleService),
		Inventory: handler.NewInventoryHandler(inventoryService),
		Owner:     handler.NewOwnerHandler(ownerService),
		Invoice:   handler.NewInvoiceHandler(billingService),
		Report:    handler.NewReportHandler(reportService),
	})

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		zapLogger.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		zapLogger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("http server shutdown failed", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		zapLogger.Error("event bus shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped")
	return nil
}
