package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/galeragate-ledger/internal/database"
	"github.com/iliyamo/galeragate-ledger/internal/model"
)

const visitorColumns = `id, name, age, sex, nationality, contact_number, entry_date, exit_date`

// VisitorRepo provides CRUD operations on the visitors table.
type VisitorRepo struct {
	db *database.DB
}

// NewVisitorRepo returns a new VisitorRepo bound to the given database.
func NewVisitorRepo(db *database.DB) *VisitorRepo { return &VisitorRepo{db: db} }

// Create inserts a visitor and populates the generated ID on v.
func (r *VisitorRepo) Create(ctx context.Context, v *model.Visitor) error {
	return r.db.InTx(ctx, func(tx *sqlx.Tx) error {
		const q = `INSERT INTO visitors (name, age, sex, nationality, contact_number, entry_date, exit_date)
		           VALUES (?, ?, ?, ?, ?, ?, ?)`
		id, err := r.db.Dialect.InsertID(ctx, tx, q,
			v.Name, v.Age, v.Sex, v.Nationality, v.ContactNumber, v.EntryDate, v.ExitDate)
		if err != nil {
			return fmt.Errorf("insert visitor -> %w", err)
		}
		v.ID = id
		return nil
	})
}

// GetByID fetches a visitor by id.  ErrNotFound is returned when no row
// matches.
func (r *VisitorRepo) GetByID(ctx context.Context, id int64) (model.Visitor, error) {
	var v model.Visitor
	err := r.db.GetContext(ctx, &v, r.db.Rebind(`SELECT `+visitorColumns+` FROM visitors WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Visitor{}, ErrNotFound
	}
	return v, err
}

// Update overwrites every profile column of the visitor identified by v.ID.
// Existence is checked inside the transaction because MySQL reports zero
// affected rows for an update that changes nothing.
func (r *VisitorRepo) Update(ctx context.Context, v model.Visitor) error {
	return r.db.InTx(ctx, func(tx *sqlx.Tx) error {
		ok, err := visitorExists(ctx, tx, v.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		const q = `UPDATE visitors
		           SET name = ?, age = ?, sex = ?, nationality = ?, contact_number = ?, entry_date = ?, exit_date = ?
		           WHERE id = ?`
		_, err = tx.ExecContext(ctx, tx.Rebind(q),
			v.Name, v.Age, v.Sex, v.Nationality, v.ContactNumber, v.EntryDate, v.ExitDate, v.ID)
		if err != nil {
			return fmt.Errorf("update visitor -> %w", err)
		}
		return nil
	})
}

// Delete removes the visitor row only.  Selections and payments that
// reference the visitor are left in place.
func (r *VisitorRepo) Delete(ctx context.Context, id int64) error {
	return r.db.InTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM visitors WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("delete visitor -> %w", err)
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

// Count returns the number of visitor rows.
func (r *VisitorRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM visitors`)
	return n, err
}

// List returns every visitor ordered by id.
func (r *VisitorRepo) List(ctx context.Context) ([]model.Visitor, error) {
	visitors := []model.Visitor{}
	err := r.db.SelectContext(ctx, &visitors, `SELECT `+visitorColumns+` FROM visitors ORDER BY id`)
	return visitors, err
}

// visitorExists checks for a visitor inside tx so that the check and the
// dependent write commit or fail together.
func visitorExists(ctx context.Context, tx *sqlx.Tx, id int64) (bool, error) {
	var n int
	if err := tx.GetContext(ctx, &n, tx.Rebind(`SELECT COUNT(*) FROM visitors WHERE id = ?`), id); err != nil {
		return false, fmt.Errorf("check visitor -> %w", err)
	}
	return n > 0, nil
}
