package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/college-hub/college-schedule/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATIONS
// Схема хранится в migrations/*.sql и применяется goose поверх пула pgx.
// ══════════════════════════════════════════════════════════════════════════════

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// Migrator обёртка над goose.
type Migrator struct {
	db  *sql.DB
	log *logger.Logger
}

// NewMigrator создаёт мигратор. Goose работает с *sql.DB, поэтому он
// открывается поверх пула соединения.
func NewMigrator(conn *Connection, log *logger.Logger) (*Migrator, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{log: log.With(logger.Component("migrator"))})

	return &Migrator{
		db:  stdlib.OpenDBFromPool(conn.Pool()),
		log: log,
	}, nil
}

// Up применяет все ожидающие миграции.
func (m *Migrator) Up(ctx context.Context) error {
	if err := goose.UpContext(ctx, m.db, migrationsDir); err != nil {
		return fmt.Errorf("%w: %v", ErrMigrationFailed, err)
	}

	version, err := m.Version(ctx)
	if err != nil {
		return err
	}
	m.log.Info("database migrations applied", logger.Int64("version", version))
	return nil
}

// Version возвращает текущую версию схемы.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return 0, fmt.Errorf("get schema version: %w", err)
	}
	return version, nil
}

// Close закрывает *sql.DB мигратора. Сам пул управляется в main.
func (m *Migrator) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

// gooseLogger направляет вывод goose в структурированный логгер.
type gooseLogger struct {
	log *logger.Logger
}

func (g gooseLogger) Printf(format string, v ...interface{}) {
	g.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	g.log.Fatal(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
