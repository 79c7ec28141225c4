package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/galeragate-ledger/internal/model"
)

// State is where a tourist session currently is in the selection flow.
type State int

const (
	Browsing State = iota
	ChoosingOffering
	ReviewingAll
	Paying
	Deleting
	Exited
)

var stateNames = [...]string{"browsing", "choosing-offering", "reviewing-all", "paying", "deleting", "exited"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Session drives one visitor through browsing categories, picking
// offerings, reviewing, paying and deleting selections.  Calls made from
// the wrong state fail with ErrValidation and leave the state unchanged.
//
//	Browsing -> ChoosingOffering -> Browsing
//	Browsing -> ReviewingAll -> Paying | Browsing
//	Paying -> Browsing
//	Browsing -> Deleting -> Browsing
//	Browsing -> Exited
type Session struct {
	visitorID  int64
	state      State
	category   string
	selections *SelectionService
	payments   *PaymentService
}

func NewSession(visitorID int64, selections *SelectionService, payments *PaymentService) *Session {
	return &Session{
		visitorID:  visitorID,
		state:      Browsing,
		selections: selections,
		payments:   payments,
	}
}

func (s *Session) VisitorID() int64 { return s.visitorID }
func (s *Session) State() State     { return s.state }

// Category is the category being chosen from while in ChoosingOffering.
func (s *Session) Category() string { return s.category }

func (s *Session) expect(op string, want State) error {
	if s.state != want {
		return invalid("%s not allowed while %s", op, s.state)
	}
	return nil
}

// ChooseCategory opens category for picking.
func (s *Session) ChooseCategory(category string) ([]string, error) {
	if err := s.expect("choose category", Browsing); err != nil {
		return nil, err
	}
	offerings, err := s.selections.Catalog().Offerings(category)
	if err != nil {
		return nil, catalogErr(err)
	}
	s.category = category
	s.state = ChoosingOffering
	return offerings, nil
}

// Pick adds the offering at the 1-based index of the open category and
// returns to Browsing.  An out-of-range index keeps the category open so
// the caller can ask again; picking something already selected still
// returns to Browsing.
func (s *Session) Pick(ctx context.Context, index int) (model.Selection, error) {
	if err := s.expect("pick", ChoosingOffering); err != nil {
		return model.Selection{}, err
	}
	sel, err := s.selections.Add(ctx, s.visitorID, s.category, index)
	if err != nil && !errors.Is(err, ErrAlreadySelected) {
		return model.Selection{}, err
	}
	s.category = ""
	s.state = Browsing
	return sel, err
}

// Review lists every selection of the visitor.  With nothing selected the
// session stays in Browsing and ErrValidation is returned.
func (s *Session) Review(ctx context.Context) ([]model.Selection, error) {
	if err := s.expect("review", Browsing); err != nil {
		return nil, err
	}
	list, err := s.selections.List(ctx, s.visitorID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, invalid("no selections made yet")
	}
	s.state = ReviewingAll
	return list, nil
}

// BeginPayment moves from reviewing to paying.
func (s *Session) BeginPayment() error {
	if err := s.expect("begin payment", ReviewingAll); err != nil {
		return err
	}
	s.state = Paying
	return nil
}

// Pay checks out and returns to Browsing with the receipt.  A failed
// payment keeps the session in Paying.
func (s *Session) Pay(ctx context.Context, method, amount, date string) (model.Receipt, error) {
	if err := s.expect("pay", Paying); err != nil {
		return model.Receipt{}, err
	}
	receipt, err := s.payments.Checkout(ctx, s.visitorID, method, amount, date)
	if err != nil {
		return model.Receipt{}, err
	}
	s.state = Browsing
	return receipt, nil
}

// BeginDelete lists the selections that can be deleted.  With nothing
// selected the session stays in Browsing and ErrValidation is returned.
func (s *Session) BeginDelete(ctx context.Context) ([]model.Selection, error) {
	if err := s.expect("begin delete", Browsing); err != nil {
		return nil, err
	}
	list, err := s.selections.List(ctx, s.visitorID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, invalid("no selections to delete")
	}
	s.state = Deleting
	return list, nil
}

// Delete removes one selection given a "yes" confirmation and returns to
// Browsing whether it ran or was cancelled.
func (s *Session) Delete(ctx context.Context, category, offering, confirmation string) (Outcome, error) {
	if err := s.expect("delete", Deleting); err != nil {
		return OutcomeCancelled, err
	}
	out, err := s.selections.Delete(ctx, s.visitorID, category, offering, confirmation)
	if err != nil {
		return out, err
	}
	s.state = Browsing
	return out, nil
}

// Back returns to Browsing from ChoosingOffering, ReviewingAll, Paying or
// Deleting.
func (s *Session) Back() error {
	switch s.state {
	case ChoosingOffering, ReviewingAll, Paying, Deleting:
		s.category = ""
		s.state = Browsing
		return nil
	}
	return invalid("back not allowed while %s", s.state)
}

// Exit ends the session.  Only a browsing session can exit.
func (s *Session) Exit() error {
	if err := s.expect("exit", Browsing); err != nil {
		return err
	}
	s.state = Exited
	return nil
}
