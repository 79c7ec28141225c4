package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/galeragate-ledger/internal/database"
)

// AdminRepo holds ledger-wide maintenance operations.
type AdminRepo struct {
	db *database.DB
}

// NewAdminRepo returns a new AdminRepo bound to the given database.
func NewAdminRepo(db *database.DB) *AdminRepo { return &AdminRepo{db: db} }

// Reset empties visitors, selections and payments and restarts their id
// counters so the next registration receives id 1 again.
func (r *AdminRepo) Reset(ctx context.Context) error {
	return r.db.InTx(ctx, func(tx *sqlx.Tx) error {
		if err := r.db.Dialect.Reset(ctx, tx); err != nil {
			return fmt.Errorf("reset %s -> %w", r.db.Dialect.Name(), err)
		}
		return nil
	})
}
