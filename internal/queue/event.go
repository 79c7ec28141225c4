// Package queue defines the reservation events exchanged over the message
// broker and the consumer that records them.
package queue

import (
	"time"

	"github.com/iliyamo/galeragate-ledger/internal/model"
)

// ReservationConfirmedEvent is published after a visitor checks out.  It
// carries enough of the receipt for a consumer to log the reservation
// without reading the ledger database.
type ReservationConfirmedEvent struct {
	EventID       string   `json:"event_id"`
	VisitorID     int64    `json:"visitor_id"`
	VisitorName   string   `json:"visitor_name"`
	EntryDate     string   `json:"entry_date"`
	ExitDate      string   `json:"exit_date"`
	Selections    []string `json:"selections"` // "Category: Offering"
	PaymentID     int64    `json:"payment_id"`
	PaymentMethod string   `json:"payment_method"`
	AmountCents   int64    `json:"amount_cents"`
	Amount        string   `json:"amount"` // major units, two decimals
	Currency      string   `json:"currency"`
	PaidOn        string   `json:"paid_on"`
	ConfirmedAt   string   `json:"confirmed_at"`
}

// NewReservationConfirmed builds the event for a paid receipt.  An unpaid
// receipt yields an event with zero payment fields.
func NewReservationConfirmed(r model.Receipt, currency string, at time.Time) ReservationConfirmedEvent {
	ev := ReservationConfirmedEvent{
		VisitorID:   r.Visitor.ID,
		VisitorName: r.Visitor.Name,
		EntryDate:   r.Visitor.EntryDate,
		ExitDate:    r.Visitor.ExitDate,
		Selections:  make([]string, 0, len(r.Selections)),
		Currency:    currency,
		ConfirmedAt: at.UTC().Format(time.RFC3339),
	}
	for _, s := range r.Selections {
		ev.Selections = append(ev.Selections, s.Category+": "+s.Offering)
	}
	if r.Payment != nil {
		ev.PaymentID = r.Payment.ID
		ev.PaymentMethod = string(r.Payment.Method)
		ev.AmountCents = r.Payment.AmountCents
		ev.Amount = r.Payment.Amount().StringFixed(2)
		ev.PaidOn = r.Payment.Date
	}
	return ev
}
