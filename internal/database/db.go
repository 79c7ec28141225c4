package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/galeragate-ledger/internal/config"
)

// DB is the single store handle owned by the process.  It pairs the sqlx
// connection with the dialect that knows the driver's DDL and error codes.
type DB struct {
	*sqlx.DB
	Dialect Dialect
}

// Open connects to the configured database and verifies the connection.
// The pool is pinned to one connection: the ledger is single-user and an
// in-memory sqlite database only lives as long as its connection.
func Open(cfg config.DBConfig) (*DB, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}
	dsn := cfg.DSN
	if dsn == "" {
		dsn = buildDSN(cfg)
	}

	db, err := sqlx.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open -> %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.PingContext -> %w", err)
	}
	return &DB{DB: db, Dialect: dialect}, nil
}

func buildDSN(cfg config.DBConfig) string {
	switch cfg.Driver {
	case "mysql":
		auth := cfg.User
		if cfg.Pass != "" {
			auth = fmt.Sprintf("%s:%s", cfg.User, cfg.Pass)
		}
		port := cfg.Port
		if port == "" {
			port = "3306"
		}
		// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
		return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
			auth, cfg.Host, port, cfg.Name)
	case "postgres":
		port := cfg.Port
		if port == "" {
			port = "5432"
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(cfg.User, cfg.Pass),
			Host:     cfg.Host + ":" + port,
			Path:     "/" + cfg.Name,
			RawQuery: "sslmode=disable",
		}
		return u.String()
	}
	return cfg.Name
}

// InTx runs fn inside a transaction.  The transaction is committed when fn
// returns nil and rolled back otherwise, so a failed write never partially
// commits.
func (db *DB) InTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx -> %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit -> %w", err)
	}
	return nil
}

// Migrate creates the visitors, selections and payments tables when they do
// not exist yet.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range db.Dialect.Schema() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate %s -> %w", db.Dialect.Name(), err)
		}
	}
	return nil
}
