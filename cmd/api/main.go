// Package main - точка входа HTTP API расписания колледжа.
//
// Сервис отдаёт расписание учебной группы за диапазон дат и список групп.
// Архитектура:
// - Domain: модель расписания, материализация календаря, сборка пар
// - Application: запросы (CQRS read side)
// - Infrastructure: PostgreSQL (pgx + goose), опциональный Redis-кеш
// - Interface: HTTP API
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/college-hub/college-schedule/config"
	"github.com/college-hub/college-schedule/internal/application/query"
	"github.com/college-hub/college-schedule/internal/domain/schedule"
	"github.com/college-hub/college-schedule/internal/infrastructure/persistence/postgres"
	"github.com/college-hub/college-schedule/internal/infrastructure/persistence/redis"
	httpserver "github.com/college-hub/college-schedule/internal/interface/http"
	"github.com/college-hub/college-schedule/internal/interface/http/handlers"
	"github.com/college-hub/college-schedule/pkg/logger"
	"github.com/college-hub/college-schedule/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENTRY POINT
// ══════════════════════════════════════════════════════════════════════════════

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. ЗАГРУЗКА КОНФИГУРАЦИИ
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. НАСТРОЙКА ЛОГИРОВАНИЯ
	// ─────────────────────────────────────────────────────────────────────────
	log := logger.New(logger.Options{
		Level:       logger.ParseLevel(cfg.Log.Level),
		Environment: string(cfg.App.Environment),
		AddCaller:   true,
	})
	defer func() { _ = log.Sync() }()

	log.Info("starting college schedule API",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("version", cfg.App.Version),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. ПОДКЛЮЧЕНИЕ К БАЗЕ ДАННЫХ
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("connecting to database...")
	dbConn, err := connectDatabase(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		log.Info("closing database connection...")
		dbConn.Close()
	}()
	log.Info("database connection established")

	// ─────────────────────────────────────────────────────────────────────────
	// 4. ЗАПУСК МИГРАЦИЙ
	// ─────────────────────────────────────────────────────────────────────────
	if cfg.Database.AutoMigrate {
		log.Info("running database migrations...")
		if err := migrate(ctx, dbConn, log); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. ХРАНИЛИЩЕ РАСПИСАНИЯ И REDIS (опционально)
	// ─────────────────────────────────────────────────────────────────────────
	var store schedule.Store = postgres.NewScheduleStore(dbConn)

	healthChecker := handlers.NewCompositeHealthChecker(cfg.App.Version)
	healthChecker.AddCheckWithDetails("postgres", handlers.NewDatabaseCheck(dbConn),
		func() interface{} { return dbConn.Stats() })

	if cfg.Redis.Enabled {
		log.Info("connecting to Redis...")
		redisCfg := redis.DefaultConfig()
		redisCfg.Host = cfg.Redis.Host
		redisCfg.Port = cfg.Redis.Port
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB

		cache, err := redis.NewCache(ctx, redisCfg)
		if err != nil {
			log.Warn("redis unavailable, group cache disabled", logger.Err(err))
		} else {
			defer func() { _ = cache.Close() }()
			store = redis.NewGroupDirectoryCache(store, cache, cfg.Redis.GroupTTL, log)
			healthChecker.AddCheck("redis", handlers.NewCacheCheck(cache))
			log.Info("redis group cache enabled", logger.Duration("ttl", cfg.Redis.GroupTTL))
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. ИНИЦИАЛИЗАЦИЯ APPLICATION LAYER
	// ─────────────────────────────────────────────────────────────────────────
	getGroupSchedule := query.NewGetGroupScheduleHandler(store)
	listGroups := query.NewListGroupsHandler(store)

	// ─────────────────────────────────────────────────────────────────────────
	// 7. СОЗДАНИЕ HTTP SERVER
	// ─────────────────────────────────────────────────────────────────────────
	httpConfig := httpserver.DefaultConfig()
	httpConfig.Host = cfg.HTTP.Host
	httpConfig.Port = cfg.HTTP.Port
	httpConfig.RequestTimeout = cfg.HTTP.RequestTimeout
	httpConfig.RateLimitPerMinute = cfg.HTTP.RateLimitPerMinute
	if len(cfg.HTTP.CORSOrigins) > 0 {
		httpConfig.AllowedOrigins = cfg.HTTP.CORSOrigins
	}

	httpServer := httpserver.NewServer(httpConfig, httpserver.Dependencies{
		GetGroupScheduleHandler: getGroupSchedule,
		ListGroupsHandler:       listGroups,
		Logger:                  log,
		HealthChecker:           healthChecker,
		Version:                 cfg.App.Version,
	})

	// ─────────────────────────────────────────────────────────────────────────
	// 8. ЗАПУСК И GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	errCh := httpServer.StartAsync()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", logger.String("signal", sig.String()))
	case err, ok := <-errCh:
		if ok && err != nil {
			log.Error("http server error", logger.Err(err))
			return err
		}
	case <-ctx.Done():
	}

	log.Info("starting graceful shutdown...", logger.Duration("timeout", cfg.App.ShutdownTimeout))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop HTTP server gracefully", logger.Err(err))
		return err
	}

	log.Info("shutdown completed successfully")
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// STARTUP HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// connectDatabase opens the pool, retrying while the database starts up.
func connectDatabase(ctx context.Context, cfg *config.Config, log *logger.Logger) (*postgres.Connection, error) {
	pgCfg := postgres.DefaultConfig()
	pgCfg.URL = cfg.Database.URL
	if cfg.Database.Host != "" {
		pgCfg.Host = cfg.Database.Host
	}
	pgCfg.Port = cfg.Database.Port
	pgCfg.Database = cfg.Database.Name
	pgCfg.User = cfg.Database.User
	pgCfg.Password = cfg.Database.Password
	pgCfg.SSLMode = cfg.Database.SSLMode
	pgCfg.MaxConns = int32(cfg.Database.MaxConns)
	pgCfg.MinConns = int32(cfg.Database.MinConns)

	opts := append(
		retry.DatabaseConnectOptions(cfg.Database.ConnectRetries, func(attempt int, err error) {
			log.Warn("database not reachable, retrying",
				logger.Int("attempt", attempt),
				logger.Err(err),
			)
		}),
		// Битая строка подключения не починится сама.
		retry.WithRetryIf(func(err error) bool { return !errors.Is(err, postgres.ErrInvalidConfig) }),
	)

	return retry.DoWithData(ctx, func(ctx context.Context) (*postgres.Connection, error) {
		return postgres.NewConnection(ctx, pgCfg)
	}, opts...)
}

// migrate applies pending schema migrations.
func migrate(ctx context.Context, conn *postgres.Connection, log *logger.Logger) error {
	migrator, err := postgres.NewMigrator(conn, log)
	if err != nil {
		return err
	}
	defer func() { _ = migrator.Close() }()

	return migrator.Up(ctx)
}
