// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the SQL files under data/migrations with
// golang-migrate. The serve command runs [RunUp] before accepting traffic;
// the migrate command exposes up, down and version.
package migration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers the "pgx5" scheme.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// State is the schema version recorded in the database.
type State struct {
	Version uint
	Dirty   bool
}

// RunUp applies every pending migration. An up-to-date schema is not an error.
func RunUp(dsn, migrationsPath string, logger *slog.Logger) error {
	return withMigrator(dsn, migrationsPath, logger, false, func(migrator *migrate.Migrate, from State) error {
		logger.Info("migration_started", slog.Uint64("current_version", uint64(from.Version)))
		return migrator.Up()
	})
}

// RunDown rolls back the given number of migrations (at least one).
func RunDown(dsn, migrationsPath string, steps int, logger *slog.Logger) error {
	if steps < 1 {
		return fmt.Errorf("migration: steps must be positive, got %d", steps)
	}
	return withMigrator(dsn, migrationsPath, logger, false, func(migrator *migrate.Migrate, from State) error {
		logger.Info("migration_rollback_started",
			slog.Uint64("current_version", uint64(from.Version)),
			slog.Int("steps", steps),
		)
		return migrator.Steps(-steps)
	})
}

// CurrentState reports the applied version without changing anything.
func CurrentState(dsn, migrationsPath string, logger *slog.Logger) (State, error) {
	var state State
	err := withMigrator(dsn, migrationsPath, logger, true, func(_ *migrate.Migrate, from State) error {
		state = from
		return nil
	})
	return state, err
}

/*
withMigrator opens a migrator, runs step and logs the resulting version.
Unless allowDirty is set, a dirty schema is refused before step runs.
*/
func withMigrator(dsn, migrationsPath string, logger *slog.Logger, allowDirty bool, step func(*migrate.Migrate, State) error) error {
	migrator, err := migrate.New("file://"+migrationsPath, pgx5DSN(dsn))
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		sourceErr, dbErr := migrator.Close()
		if sourceErr != nil {
			logger.Error("migration_source_close_failed", slog.Any("error", sourceErr))
		}
		if dbErr != nil {
			logger.Error("migration_db_close_failed", slog.Any("error", dbErr))
		}
	}()
	migrator.Log = &migrateLogger{logger: logger}

	from, err := stateOf(migrator)
	if err != nil {
		return err
	}
	if from.Dirty && !allowDirty {
		return fmt.Errorf("migration: database is dirty at version %d (manual intervention required)", from.Version)
	}

	if err := step(migrator, from); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_already_up_to_date", slog.Uint64("version", uint64(from.Version)))
			return nil
		}
		return fmt.Errorf("migration: %w", err)
	}

	to, err := stateOf(migrator)
	if err != nil {
		return err
	}
	if to != from {
		logger.Info("migration_successful",
			slog.Uint64("from_version", uint64(from.Version)),
			slog.Uint64("to_version", uint64(to.Version)),
		)
	}
	return nil
}

func stateOf(migrator *migrate.Migrate) (State, error) {
	version, dirty, err := migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("migration: read version: %w", err)
	}
	return State{Version: version, Dirty: dirty}, nil
}

// pgx5DSN rewrites postgres:// and postgresql:// URLs to the pgx5:// scheme
// the golang-migrate pgx/v5 driver registers. Other DSNs pass through.
func pgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger routes golang-migrate output to slog at debug level.
type migrateLogger struct {
	logger *slog.Logger
}

func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug("migration_progress", slog.String("detail", strings.TrimSpace(fmt.Sprintf(format, args...))))
}

func (l *migrateLogger) Verbose() bool {
	return l.logger.Enabled(context.Background(), slog.LevelDebug)
}
