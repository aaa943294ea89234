package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	adminUseCase "github.com/capsule-market/backend/internal/domain/usecase/admin"
	balanceUseCase "github.com/capsule-market/backend/internal/domain/usecase/balance"
	masscreditUseCase "github.com/capsule-market/backend/internal/domain/usecase/masscredit"
	promoUseCase "github.com/capsule-market/backend/internal/domain/usecase/promo"
	purchaseUseCase "github.com/capsule-market/backend/internal/domain/usecase/purchase"

	adminBot "github.com/capsule-market/backend/internal/infrastructure/adapter/bot"
	"github.com/capsule-market/backend/internal/infrastructure/adapter/database"
	"github.com/capsule-market/backend/internal/infrastructure/adapter/database/migration"
	"github.com/capsule-market/backend/internal/infrastructure/adapter/logger"
	timeProvider "github.com/capsule-market/backend/internal/infrastructure/adapter/time"
	"github.com/capsule-market/backend/internal/infrastructure/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Bot.Token == "" {
		log.Fatal("Bot token is required (CM_BOT_TOKEN)")
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	defer appLogger.Flush()

	tp := timeProvider.NewRealTimeProvider()

	dbConfig := &database.Config{
		Host:            cfg.Database.Host,
		Port:            database.ParsePort(cfg.Database.Port),
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      cfg.Database.RetryDelay,
	}

	dbManager, err := database.NewManager(dbConfig, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	// The API usually migrates first; running again here is a no-op but
	// lets the bot start standalone
	migrationMgr := migration.NewMigrationManager(dbManager.DB(), appLogger, tp)
	if err := migrationMgr.MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	uow := database.NewUnitOfWork(dbManager.DB(), appLogger, tp)

	balanceService := balanceUseCase.NewService(uow, tp, appLogger)
	purchaseService := purchaseUseCase.NewService(uow, tp, appLogger)
	promoService := promoUseCase.NewService(uow, tp, appLogger)
	bulkCoordinator := masscreditUseCase.NewCoordinator(uow, tp, appLogger).
		WithBatchSize(cfg.Admin.MassCreditBatchSize)

	adminService := adminUseCase.NewService(
		balanceService,
		purchaseService,
		promoService,
		bulkCoordinator,
		tp,
		appLogger,
		cfg.Admin.AllowedIDs,
	)

	sessions := adminBot.NewSessionManager(cfg.Bot.SessionTTL)

	b, err := adminBot.New(cfg.Bot.Token, cfg.Bot.PollingTimeout, adminService, sessions, appLogger)
	if err != nil {
		appLogger.Error("Failed to create admin bot", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	b.Start(ctx)

	appLogger.Info("Admin bot exited gracefully", nil)
}
