// Package migration applies versioned schema changes and records each applied version in the
// f1_migrations table, so a version runs at most once per database.
package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"
)

const (
	createMigrationsTable = `CREATE TABLE IF NOT EXISTS f1_migrations (
    version BIGINT NOT NULL,
    method VARCHAR(4) NOT NULL,
    start_time TIMESTAMP NOT NULL,
    duration BIGINT,
    CONSTRAINT primary_key PRIMARY KEY (version, method)
);`

	getLastMigration = `SELECT COALESCE(MAX(version), 0) FROM f1_migrations;`

	insertMigrationRow         = `INSERT INTO f1_migrations (version, method, start_time, duration) VALUES (?, ?, ?, ?);`
	insertMigrationRowPostgres = `INSERT INTO f1_migrations (version, method, start_time, duration) VALUES ($1, $2, $3, $4);`
)

var errMissingUP = errors.New("migration has no UP function")

// Logger is what the runner logs through.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// SQL is the transaction a migration runs in. *sql.Tx satisfies it.
type SQL interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Datasource is handed to every migration.
type Datasource struct {
	Logger

	Context context.Context
	Dialect string
	SQL     SQL
}

// Migrate is a single schema change.
type Migrate struct {
	UP func(d Datasource) error
}

// Database opens the connection migrations run against.
type Database interface {
	Conn(ctx context.Context) (*sql.DB, error)
	Dialect() string
}

// Run applies, in ascending order, every migration newer than the last recorded version. Each one runs
// in its own transaction together with its f1_migrations row; the first failure is rolled back and
// stops the run.
func Run(ctx context.Context, migrations map[int64]Migrate, db Database, logger Logger) error {
	for version, m := range migrations {
		if m.UP == nil {
			return fmt.Errorf("%w: %d", errMissingUP, version)
		}
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return err
	}

	if _, err := conn.ExecContext(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("creating f1_migrations: %w", err)
	}

	var last int64
	if err := conn.QueryRowContext(ctx, getLastMigration).Scan(&last); err != nil {
		return fmt.Errorf("reading last migration: %w", err)
	}

	logger.Debugf("last applied migration is %d", last)

	versions := make([]int64, 0, len(migrations))
	for v := range migrations {
		if v > last {
			versions = append(versions, v)
		}
	}

	slices.Sort(versions)

	if len(versions) == 0 {
		logger.Infof("no new migrations to run")
		return nil
	}

	for _, v := range versions {
		if err := apply(ctx, conn, db.Dialect(), v, migrations[v], logger); err != nil {
			logger.Errorf("migration %d failed and was rolled back: %v", v, err)
			return err
		}

		logger.Infof("migration %d ran successfully", v)
	}

	return nil
}

func apply(ctx context.Context, conn *sql.DB, dialect string, version int64, m Migrate, logger Logger) error {
	start := time.Now()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	err = m.UP(Datasource{Logger: logger, Context: ctx, Dialect: dialect, SQL: tx})
	if err == nil {
		err = record(ctx, tx, dialect, version, start)
	}

	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, rbErr)
		}

		return err
	}

	return tx.Commit()
}

func record(ctx context.Context, tx *sql.Tx, dialect string, version int64, start time.Time) error {
	query := insertMigrationRow
	if dialect == "postgres" {
		query = insertMigrationRowPostgres
	}

	_, err := tx.ExecContext(ctx, query, version, "UP", start, time.Since(start).Milliseconds())

	return err
}

// Exec runs statements in order, stopping at the first error.
func (d Datasource) Exec(statements ...string) error {
	for _, s := range statements {
		if _, err := d.SQL.ExecContext(d.Context, s); err != nil {
			return err
		}
	}

	return nil
}
