package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations executes database migrations based on the configured driver.
// Determines migration path from dbDriver (postgres, mysql or sqlite3) and applies all
// pending migrations. Returns nil if no migrations to apply. Logs migration progress and
// success.
func RunMigrations(logger *slog.Logger, dbDriver, dbConnectionString string) error {
	logger.Info("running database migrations",
		slog.String("driver", dbDriver),
	)

	migrationsPath, databaseURL, err := migrationTarget(dbDriver, dbConnectionString)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	m, err := migrate.New(migrationsPath, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}

// migrationTarget returns the migrations source and the migrate database URL for a driver.
func migrationTarget(dbDriver, dbConnectionString string) (string, string, error) {
	switch dbDriver {
	case "postgres":
		return "file://migrations/postgresql", dbConnectionString, nil
	case "mysql":
		return "file://migrations/mysql", "mysql://" + strings.TrimPrefix(dbConnectionString, "mysql://"), nil
	case "sqlite3":
		return "file://migrations/sqlite3", "sqlite3://" + strings.TrimPrefix(dbConnectionString, "sqlite3://"), nil
	default:
		return "", "", fmt.Errorf("unsupported database driver: %s", dbDriver)
	}
}
