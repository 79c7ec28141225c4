package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/galeragate-ledger/internal/database"
	"github.com/iliyamo/galeragate-ledger/internal/model"
)

// SelectionRepo stores the catalog offerings each visitor has chosen.
// Uniqueness of (visitor_id, category, offering) is enforced by the table's
// unique key, never by a read-then-write check in Go.
type SelectionRepo struct {
	db *database.DB
}

// NewSelectionRepo returns a new SelectionRepo bound to the given database.
func NewSelectionRepo(db *database.DB) *SelectionRepo { return &SelectionRepo{db: db} }

// Create inserts a selection for an existing visitor and populates s.ID.
// It returns ErrNotFound when the visitor does not exist and ErrDuplicate
// when the visitor already holds the same offering.
func (r *SelectionRepo) Create(ctx context.Context, s *model.Selection) error {
	return r.db.InTx(ctx, func(tx *sqlx.Tx) error {
		ok, err := visitorExists(ctx, tx, s.VisitorID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		const q = `INSERT INTO selections (visitor_id, category, offering) VALUES (?, ?, ?)`
		id, err := r.db.Dialect.InsertID(ctx, tx, q, s.VisitorID, s.Category, s.Offering)
		if err != nil {
			if r.db.Dialect.IsUniqueViolation(err) {
				return ErrDuplicate
			}
			return fmt.Errorf("insert selection -> %w", err)
		}
		s.ID = id
		return nil
	})
}

// ListByVisitor returns the visitor's selections in insertion order.  An
// empty slice is returned when there are none.
func (r *SelectionRepo) ListByVisitor(ctx context.Context, visitorID int64) ([]model.Selection, error) {
	selections := []model.Selection{}
	const q = `SELECT id, visitor_id, category, offering FROM selections WHERE visitor_id = ? ORDER BY id`
	err := r.db.SelectContext(ctx, &selections, r.db.Rebind(q), visitorID)
	return selections, err
}

// ListAll returns every selection grouped by visitor and ordered by
// insertion within each visitor.  Orphaned rows are included.
func (r *SelectionRepo) ListAll(ctx context.Context) ([]model.Selection, error) {
	selections := []model.Selection{}
	const q = `SELECT id, visitor_id, category, offering FROM selections ORDER BY visitor_id, id`
	err := r.db.SelectContext(ctx, &selections, q)
	return selections, err
}

// Delete removes the single matching selection.  ErrNotFound is returned
// when the visitor does not hold it.
func (r *SelectionRepo) Delete(ctx context.Context, visitorID int64, category, offering string) error {
	return r.db.InTx(ctx, func(tx *sqlx.Tx) error {
		const q = `DELETE FROM selections WHERE visitor_id = ? AND category = ? AND offering = ?`
		res, err := tx.ExecContext(ctx, tx.Rebind(q), visitorID, category, offering)
		if err != nil {
			return fmt.Errorf("delete selection -> %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}
