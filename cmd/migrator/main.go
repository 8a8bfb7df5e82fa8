package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/niksmo/storefront/config"
)

const (
	migrationsPathEnvName = "STOREFRONT_MIGRATIONS_PATH"
	defaultMigrationsPath = "migrations"
)

func main() {
	cfg := config.Load()
	applyCatalogMigrations(cfg.SQLDB, migrationsPath())
}

type migrateLogger struct {
	logger *slog.Logger
}

func (l migrateLogger) Printf(format string, v ...any) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l migrateLogger) Verbose() bool {
	return true
}

func migrationsPath() string {
	if env, ok := os.LookupEnv(migrationsPathEnvName); ok {
		return env
	}
	return defaultMigrationsPath
}

// applyCatalogMigrations brings the products and variants tables up to
// the latest revision.
func applyCatalogMigrations(dsn, path string) {
	m, err := migrate.New(
		fmt.Sprintf("file://%s", path),
		databaseURL(dsn),
	)
	if err != nil {
		slog.Error("failed to prepare migrations", "err", err)
		fallDown()
	}
	m.Log = migrateLogger{slog.Default()}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.Log.Printf("catalog is up to date")
			return
		}
		slog.Error("failed to migrate catalog", "err", err)
		fallDown()
	}
	m.Log.Printf("catalog migrations applied")
}

// databaseURL switches the configured DSN to the pgx5 driver scheme
// expected by golang-migrate.
func databaseURL(dsn string) string {
	if rest, ok := strings.CutPrefix(dsn, "postgres://"); ok {
		return "pgx5://" + rest
	}
	return "pgx5://" + dsn
}

func fallDown() {
	os.Exit(2)
}
