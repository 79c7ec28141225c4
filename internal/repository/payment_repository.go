package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/galeragate-ledger/internal/database"
	"github.com/iliyamo/galeragate-ledger/internal/model"
)

// PaymentRepo records payments and produces the per-method payment report.
// Amounts are stored in cents.
type PaymentRepo struct {
	db *database.DB
}

// NewPaymentRepo returns a new PaymentRepo bound to the given database.
func NewPaymentRepo(db *database.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// Create inserts a payment for an existing visitor and populates p.ID.
// Several payments per visitor are accepted.
func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	return r.db.InTx(ctx, func(tx *sqlx.Tx) error {
		ok, err := visitorExists(ctx, tx, p.VisitorID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		const q = `INSERT INTO payments (visitor_id, method, amount_cents, paid_on) VALUES (?, ?, ?, ?)`
		id, err := r.db.Dialect.InsertID(ctx, tx, q, p.VisitorID, string(p.Method), p.AmountCents, p.Date)
		if err != nil {
			return fmt.Errorf("insert payment -> %w", err)
		}
		p.ID = id
		return nil
	})
}

// Latest returns the most recently recorded payment of a visitor, by
// insertion order rather than by the free-text payment date.
func (r *PaymentRepo) Latest(ctx context.Context, visitorID int64) (model.Payment, error) {
	var p model.Payment
	const q = `SELECT id, visitor_id, method, amount_cents, paid_on
	           FROM payments WHERE visitor_id = ? ORDER BY id DESC LIMIT 1`
	err := r.db.GetContext(ctx, &p, r.db.Rebind(q), visitorID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Payment{}, ErrNotFound
	}
	return p, err
}

// Report returns every payment with its visitor's name and the total and
// count of all payments sharing its method, newest payment date first.
// Payments whose visitor was deleted are kept with an empty name so the
// per-method totals always cover every row.
func (r *PaymentRepo) Report(ctx context.Context) ([]model.PaymentReportRow, error) {
	const q = `SELECT p.id, p.visitor_id, p.method, p.amount_cents, p.paid_on,
	                  COALESCE(v.name, ''),
	                  SUM(p.amount_cents) OVER (PARTITION BY p.method),
	                  COUNT(p.id) OVER (PARTITION BY p.method)
	           FROM payments p
	           LEFT JOIN visitors v ON v.id = p.visitor_id
	           ORDER BY p.paid_on DESC, p.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query payment report -> %w", err)
	}
	defer rows.Close()

	report := []model.PaymentReportRow{}
	for rows.Next() {
		var (
			row    model.PaymentReportRow
			method string
			// SUM over a BIGINT comes back as DECIMAL (mysql) or NUMERIC (postgres).
			total decimal.Decimal
		)
		if err := rows.Scan(&row.ID, &row.VisitorID, &method, &row.AmountCents, &row.Date,
			&row.VisitorName, &total, &row.MethodCount); err != nil {
			return nil, err
		}
		row.Method = model.PaymentMethod(method)
		row.MethodTotalCents = total.IntPart()
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return report, nil
}
