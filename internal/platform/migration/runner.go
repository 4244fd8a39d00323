// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the users, media and achievement schemas under
// data/migrations with golang-migrate. Both the API server and the
// achievements CLI call [RunUp] before touching the database.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// Registers the pgx5 database driver.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// Registers the file:// source.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// pgx5Scheme is the URL scheme the golang-migrate pgx/v5 driver registers.
const pgx5Scheme = "pgx5://"

/*
RunUp brings the schema to the latest version.

Description: A dirty schema aborts startup; it needs a manual
`migrate force` before the engine may write progress again.

Parameters:
  - dsn: postgres://, postgresql:// or pgx5:// URL
  - path: Directory holding the numbered .sql files
  - logger: *slog.Logger

Returns:
  - error: Driver, dirty-state or migration failures
*/
func RunUp(dsn string, path string, logger *slog.Logger) error {
	migrator, err := migrate.New("file://"+path, driverURL(dsn))
	if err != nil {
		return fmt.Errorf("migration: open: %w", err)
	}
	defer func() {
		sourceErr, databaseErr := migrator.Close()
		if err := errors.Join(sourceErr, databaseErr); err != nil {
			logger.Error("migration_close_failed", slog.Any("error", err))
		}
	}()
	migrator.Log = debugLogger{logger: logger}

	from, dirty, err := migrator.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		// Empty database.
	case err != nil:
		return fmt.Errorf("migration: read version: %w", err)
	case dirty:
		return fmt.Errorf("migration: schema is dirty at version %d", from)
	}

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_up_to_date", slog.Uint64("version", uint64(from)))
			return nil
		}
		return fmt.Errorf("migration: up: %w", err)
	}

	to, _, _ := migrator.Version()
	logger.Info("migration_applied",
		slog.Uint64("from_version", uint64(from)),
		slog.Uint64("to_version", uint64(to)),
	)
	return nil
}

// driverURL rewrites a postgres URL to the pgx5 scheme. Other inputs are
// returned unchanged and left for the driver to reject.
func driverURL(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return pgx5Scheme + rest
		}
	}
	return dsn
}

// debugLogger routes golang-migrate's progress lines to slog at debug level.
type debugLogger struct {
	logger *slog.Logger
}

func (l debugLogger) Printf(format string, args ...any) {
	l.logger.Debug("migration_step", slog.String("detail", strings.TrimSpace(fmt.Sprintf(format, args...))))
}

func (l debugLogger) Verbose() bool { return false }
