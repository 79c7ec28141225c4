package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

func init() {
	// sqlx does not know modernc's driver name; it uses ? placeholders.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Dialect isolates what differs between the supported SQL engines: the
// DDL, how a unique-key violation is reported, how generated ids come back
// and how identity counters are restarted.
type Dialect interface {
	Name() string
	DriverName() string
	Schema() []string
	IsUniqueViolation(err error) bool
	// InsertID executes an INSERT and returns the generated id column.
	InsertID(ctx context.Context, tx *sqlx.Tx, query string, args ...any) (int64, error)
	// Reset empties all ledger tables and restarts their identity counters.
	Reset(ctx context.Context, tx *sqlx.Tx) error
}

// DialectFor returns the dialect registered under the DB_DRIVER name.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "sqlite":
		return sqliteDialect{}, nil
	case "mysql":
		return mysqlDialect{}, nil
	case "postgres":
		return postgresDialect{}, nil
	}
	return nil, fmt.Errorf("unsupported driver %q", driver)
}

// lastInsertID covers drivers that report generated keys via sql.Result.
func lastInsertID(ctx context.Context, tx *sqlx.Tx, query string, args ...any) (int64, error) {
	res, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ----- sqlite -----

type sqliteDialect struct{}

func (sqliteDialect) Name() string       { return "sqlite" }
func (sqliteDialect) DriverName() string { return "sqlite" }

// AUTOINCREMENT keeps ids monotonic across deletes; without it sqlite would
// hand out max(id)+1 again.
func (sqliteDialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS visitors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			age INTEGER NOT NULL,
			sex TEXT NOT NULL DEFAULT '',
			nationality TEXT NOT NULL DEFAULT '',
			contact_number TEXT NOT NULL DEFAULT '',
			entry_date TEXT NOT NULL DEFAULT '',
			exit_date TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS selections (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			visitor_id INTEGER NOT NULL,
			category TEXT NOT NULL,
			offering TEXT NOT NULL,
			UNIQUE (visitor_id, category, offering)
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			visitor_id INTEGER NOT NULL,
			method TEXT NOT NULL,
			amount_cents INTEGER NOT NULL,
			paid_on TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_visitor ON payments (visitor_id)`,
	}
}

func (sqliteDialect) IsUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(se.Error(), "UNIQUE")
	}
	return false
}

func (sqliteDialect) InsertID(ctx context.Context, tx *sqlx.Tx, query string, args ...any) (int64, error) {
	return lastInsertID(ctx, tx, query, args...)
}

func (sqliteDialect) Reset(ctx context.Context, tx *sqlx.Tx) error {
	for _, stmt := range []string{
		`DELETE FROM selections`,
		`DELETE FROM payments`,
		`DELETE FROM visitors`,
		`DELETE FROM sqlite_sequence WHERE name IN ('visitors', 'selections', 'payments')`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// ----- mysql -----

type mysqlDialect struct{}

func (mysqlDialect) Name() string       { return "mysql" }
func (mysqlDialect) DriverName() string { return "mysql" }

// No FOREIGN KEY clauses: InnoDB would enforce them and refuse to delete a
// visitor that still has selections, while the ledger deliberately keeps
// orphaned rows.
func (mysqlDialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS visitors (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(300) NOT NULL,
			age INT NOT NULL,
			sex VARCHAR(32) NOT NULL DEFAULT '',
			nationality VARCHAR(100) NOT NULL DEFAULT '',
			contact_number VARCHAR(64) NOT NULL DEFAULT '',
			entry_date VARCHAR(32) NOT NULL DEFAULT '',
			exit_date VARCHAR(32) NOT NULL DEFAULT ''
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS selections (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			visitor_id BIGINT NOT NULL,
			category VARCHAR(100) NOT NULL,
			offering VARCHAR(100) NOT NULL,
			UNIQUE KEY uq_selections_visitor_choice (visitor_id, category, offering)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS payments (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			visitor_id BIGINT NOT NULL,
			method VARCHAR(100) NOT NULL,
			amount_cents BIGINT NOT NULL,
			paid_on VARCHAR(32) NOT NULL DEFAULT '',
			KEY idx_payments_visitor (visitor_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}
}

func (mysqlDialect) IsUniqueViolation(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

func (mysqlDialect) InsertID(ctx context.Context, tx *sqlx.Tx, query string, args ...any) (int64, error) {
	return lastInsertID(ctx, tx, query, args...)
}

// TRUNCATE restarts AUTO_INCREMENT.  MySQL commits implicitly around it, so
// the reset is not rolled back if a later statement fails.
func (mysqlDialect) Reset(ctx context.Context, tx *sqlx.Tx) error {
	for _, table := range []string{"selections", "payments", "visitors"} {
		if _, err := tx.ExecContext(ctx, "TRUNCATE TABLE "+table); err != nil {
			return err
		}
	}
	return nil
}

// ----- postgres -----

type postgresDialect struct{}

func (postgresDialect) Name() string       { return "postgres" }
func (postgresDialect) DriverName() string { return "pgx" }

func (postgresDialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS visitors (
			id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
			name TEXT NOT NULL,
			age INTEGER NOT NULL,
			sex TEXT NOT NULL DEFAULT '',
			nationality TEXT NOT NULL DEFAULT '',
			contact_number TEXT NOT NULL DEFAULT '',
			entry_date TEXT NOT NULL DEFAULT '',
			exit_date TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS selections (
			id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
			visitor_id BIGINT NOT NULL,
			category TEXT NOT NULL,
			offering TEXT NOT NULL,
			CONSTRAINT uq_selections_visitor_choice UNIQUE (visitor_id, category, offering)
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
			visitor_id BIGINT NOT NULL,
			method TEXT NOT NULL,
			amount_cents BIGINT NOT NULL,
			paid_on TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_visitor ON payments (visitor_id)`,
	}
}

func (postgresDialect) IsUniqueViolation(err error) bool {
	var pe *pgconn.PgError
	return errors.As(err, &pe) && pe.Code == pgerrcode.UniqueViolation
}

func (postgresDialect) InsertID(ctx context.Context, tx *sqlx.Tx, query string, args ...any) (int64, error) {
	var id int64
	err := tx.QueryRowxContext(ctx, tx.Rebind(query+" RETURNING id"), args...).Scan(&id)
	return id, err
}

func (postgresDialect) Reset(ctx context.Context, tx *sqlx.Tx) error {
	_, err := tx.ExecContext(ctx, `TRUNCATE TABLE selections, payments, visitors RESTART IDENTITY`)
	return err
}
