package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/usecase/commission"
	ledgerUseCase "github.com/kiarash-moradi/mlm-dashboard/internal/domain/usecase/ledger"
	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/usecase/tree"

	"github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/adapter/api/handler"
	"github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/adapter/api/routes"
	"github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/adapter/cache"
	"github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/adapter/database"
	"github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/adapter/database/migration"
	"github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/adapter/logger"
	"github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/adapter/metrics"
	"github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/adapter/repository"
	timeProvider "github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/adapter/time"
	"github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)

	dbConfig := &database.Config{
		Driver:          "postgres",
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
		RetryAttempts:   3,
		RetryDelay:      5,
	}

	tp := timeProvider.NewRealTimeProvider()

	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	if err := dbManager.MigrationManager().MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	if err := migration.CreateDefaultCatalog(context.Background(), dbManager.DB()); err != nil {
		appLogger.Error("Failed to seed default catalog", map[string]any{
			"error": err.Error(),
		})
	}

	// Repositories outside the unit of work serve read-only endpoints.
	userRepo := repository.NewUserRepository(dbManager.DB(), appLogger)
	walletRepo := repository.NewWalletRepository(dbManager.DB(), tp, appLogger)
	ledgerRepo := repository.NewLedgerRepository(dbManager.DB(), appLogger)
	packageRepo := repository.NewPackageRepository(dbManager.DB(), appLogger)

	uow := dbManager.CreateUnitOfWork()

	walker := tree.NewWalker(userRepo, appLogger)
	builder := tree.NewBuilder(userRepo, appLogger)
	engine := commission.NewEngine(ledgerRepo, userRepo, walker, appLogger)
	resolver := commission.NewScheduleResolver(packageRepo)
	poster := ledgerUseCase.NewPoster(uow, tp, appLogger)

	appMetrics := metrics.Registry("mlm_dashboard")

	var treeCache *cache.TreeCache
	if cfg.Redis.Enabled {
		treeCache = cache.NewTreeCache(cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TreeTTL:  cfg.Redis.TreeTTL,
		}, appLogger)
		if err := treeCache.Ping(context.Background()); err != nil {
			appLogger.Warn("Redis unreachable, tree caching disabled", map[string]any{
				"addr":  cfg.Redis.Addr,
				"error": err.Error(),
			})
			treeCache = nil
		} else {
			defer treeCache.Close()
		}
	}

	treeHandler := handler.NewTreeHandler(builder, treeCache, appMetrics, appLogger)
	commissionHandler := handler.NewCommissionHandler(engine, resolver, appLogger)
	walletHandler := handler.NewWalletHandler(poster, walletRepo, appMetrics, appLogger)
	storeHandler := handler.NewStoreHandler(poster, appMetrics, appLogger)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, appMetrics)
	routes.SetupRoutes(router, treeHandler, commissionHandler, walletHandler, storeHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	if err := appLogger.Flush(); err != nil {
		log.Printf("Failed to flush logger: %v", err)
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	if cfg.Database.Host == "" {
		if cfg.Environment == config.Production && os.Getenv("MLM_DB_HOST") == "" {
			missingConfigs = append(missingConfigs, "database.host (or MLM_DB_HOST environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.host")
		}
	}
	if cfg.Database.Username == "" {
		if cfg.Environment == config.Production && os.Getenv("MLM_DB_USERNAME") == "" {
			missingConfigs = append(missingConfigs, "database.username (or MLM_DB_USERNAME environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.username")
		}
	}
	if cfg.Database.Password == "" {
		if cfg.Environment == config.Production && os.Getenv("MLM_DB_PASSWORD") == "" {
			missingConfigs = append(missingConfigs, "database.password (or MLM_DB_PASSWORD environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.password")
		}
	}
	if cfg.Database.Database == "" {
		if cfg.Environment == config.Production && os.Getenv("MLM_DB_NAME") == "" {
			missingConfigs = append(missingConfigs, "database.database (or MLM_DB_NAME environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.database")
		}
	}
	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	if cfg.Environment == config.Production {
		if cfg.Database.SSLMode == "disable" {
			log.Printf("Warning: database.sslMode is 'disable' in production")
		}
		if cfg.Server.ReadTimeout < 5*time.Second || cfg.Server.WriteTimeout < 5*time.Second {
			log.Printf("Warning: server timeouts are very low for production")
		}
	}

	return nil
}
