package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	auditapp "github.com/stocktally/backend/internal/application/audit"
	countingapp "github.com/stocktally/backend/internal/application/counting"
	inventoryapp "github.com/stocktally/backend/internal/application/inventory"
	"github.com/stocktally/backend/internal/infrastructure/auth"
	"github.com/stocktally/backend/internal/infrastructure/config"
	"github.com/stocktally/backend/internal/infrastructure/event"
	"github.com/stocktally/backend/internal/infrastructure/logger"
	"github.com/stocktally/backend/internal/infrastructure/persistence"
	httpiface "github.com/stocktally/backend/internal/interfaces/http"
	"github.com/stocktally/backend/internal/interfaces/http/handler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting StockTally",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connected and migrated")

	// Repositories and transaction scope
	sessionRepo := persistence.NewGormSessionRepository(db.DB)
	levelRepo := persistence.NewGormLevelRepository(db.DB)
	adjustmentRepo := persistence.NewGormAdjustmentRepository(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB)

	// Event bus and subscribers
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(auditapp.NewHandler(log))
	eventBus.Subscribe(inventoryapp.NewLowStockHandler(log).
		WithNotifier(inventoryapp.NewLoggingLowStockNotifier(log)))

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Application services
	sessionService := countingapp.NewSessionService(sessionRepo, scope, eventBus)
	levelService := inventoryapp.NewLevelService(levelRepo, adjustmentRepo)

	jwtService := auth.NewJWTService(cfg.JWT)

	engine := httpiface.NewRouter(httpiface.RouterConfig{
		Logger:     log,
		JWTService: jwtService,
		Sessions:   handler.NewSessionHandler(sessionService),
		Inventory:  handler.NewInventoryHandler(levelService),
		Health:     handler.NewHealthHandler(db),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
