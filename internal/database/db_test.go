package database

import (
	"context"
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/galeragate-ledger/internal/config"
)

func openMemory(t *testing.T) *DB {
	t.Helper()
	db, err := Open(config.DBConfig{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(context.Background()))
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, db.Migrate(context.Background()))

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('visitors', 'selections', 'payments')`))
	assert.Equal(t, 3, n)
}

func TestSqliteUniqueViolation(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	insert := func() error {
		return db.InTx(ctx, func(tx *sqlx.Tx) error {
			_, err := db.Dialect.InsertID(ctx, tx,
				`INSERT INTO selections (visitor_id, category, offering) VALUES (?, ?, ?)`, 1, "Resort", "Mermaid Resort")
			return err
		})
	}
	require.NoError(t, insert())
	err := insert()
	require.Error(t, err)
	assert.True(t, db.Dialect.IsUniqueViolation(err))
	assert.False(t, db.Dialect.IsUniqueViolation(errors.New("boom")))
}

func TestResetRestartsIdentity(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	insertVisitor := func() int64 {
		var id int64
		require.NoError(t, db.InTx(ctx, func(tx *sqlx.Tx) error {
			var err error
			id, err = db.Dialect.InsertID(ctx, tx, `INSERT INTO visitors (name, age) VALUES (?, ?)`, "Ana", 29)
			return err
		}))
		return id
	}
	assert.Equal(t, int64(1), insertVisitor())
	assert.Equal(t, int64(2), insertVisitor())

	require.NoError(t, db.InTx(ctx, func(tx *sqlx.Tx) error { return db.Dialect.Reset(ctx, tx) }))
	assert.Equal(t, int64(1), insertVisitor())
}

func TestInTxRollsBackOnError(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := db.InTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO visitors (name, age) VALUES ('Ana', 29)`); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM visitors`))
	assert.Zero(t, n)
}

func TestDialectErrorMapping(t *testing.T) {
	my, err := DialectFor("mysql")
	require.NoError(t, err)
	assert.True(t, my.IsUniqueViolation(&mysql.MySQLError{Number: 1062}))
	assert.False(t, my.IsUniqueViolation(&mysql.MySQLError{Number: 1213}))

	pg, err := DialectFor("postgres")
	require.NoError(t, err)
	assert.Equal(t, "pgx", pg.DriverName())
	assert.True(t, pg.IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, pg.IsUniqueViolation(&pgconn.PgError{Code: "23503"}))

	_, err = DialectFor("oracle")
	assert.Error(t, err)
}

func TestBuildDSN(t *testing.T) {
	assert.Equal(t,
		"app:secret@tcp(db:3306)/galeragate?charset=utf8mb4&parseTime=true&loc=UTC",
		buildDSN(config.DBConfig{Driver: "mysql", User: "app", Pass: "secret", Host: "db", Name: "galeragate"}))
	assert.Equal(t,
		"postgres://app:secret@db:5433/galeragate?sslmode=disable",
		buildDSN(config.DBConfig{Driver: "postgres", User: "app", Pass: "secret", Host: "db", Port: "5433", Name: "galeragate"}))
}
