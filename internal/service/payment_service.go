package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/galeragate-ledger/internal/model"
	q "github.com/iliyamo/galeragate-ledger/internal/queue"
)

// PaymentService records payments and reports on them.  Checkout also
// builds the receipt and announces it through the publisher.
type PaymentService struct {
	repo      PaymentRepository
	receipts  *ReceiptService
	publisher EventPublisher
	currency  string
	now       func() time.Time
}

func NewPaymentService(repo PaymentRepository, receipts *ReceiptService, publisher EventPublisher, currency string) *PaymentService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &PaymentService{
		repo:      repo,
		receipts:  receipts,
		publisher: publisher,
		currency:  currency,
		now:       time.Now,
	}
}

// Currency is the ISO code amounts are displayed in.
func (s *PaymentService) Currency() string { return s.currency }

// Record parses method and amount and stores a payment for the visitor.
// The date is kept verbatim after trimming.
func (s *PaymentService) Record(ctx context.Context, visitorID int64, method, amount, date string) (model.Payment, error) {
	m, err := model.ParsePaymentMethod(method)
	if err != nil {
		return model.Payment{}, invalid("%v: %q", err, method)
	}
	cents, err := model.ParseAmount(amount)
	if err != nil {
		return model.Payment{}, invalid("%v: %q", err, amount)
	}

	p := model.Payment{
		VisitorID:   visitorID,
		Method:      m,
		AmountCents: cents,
		Date:        strings.TrimSpace(date),
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return model.Payment{}, translate("s.repo.Create", err)
	}

	zap.L().Info("payment recorded",
		zap.Int64("payment_id", p.ID), zap.Int64("visitor_id", visitorID),
		zap.String("method", string(m)), zap.Int64("amount_cents", cents))
	return p, nil
}

// Latest returns the most recently recorded payment of the visitor.
func (s *PaymentService) Latest(ctx context.Context, visitorID int64) (model.Payment, error) {
	p, err := s.repo.Latest(ctx, visitorID)
	if err != nil {
		return model.Payment{}, translate("s.repo.Latest", err)
	}
	return p, nil
}

// Report lists every payment, newest date first, with per-method totals.
func (s *PaymentService) Report(ctx context.Context) ([]model.PaymentReportRow, error) {
	rows, err := s.repo.Report(ctx)
	if err != nil {
		return nil, translate("s.repo.Report", err)
	}
	return rows, nil
}

// Checkout records the payment, then generates the receipt and publishes a
// reservation.confirmed event.  A publish failure is logged and does not
// fail the checkout.
func (s *PaymentService) Checkout(ctx context.Context, visitorID int64, method, amount, date string) (model.Receipt, error) {
	if _, err := s.Record(ctx, visitorID, method, amount, date); err != nil {
		return model.Receipt{}, err
	}
	receipt, err := s.receipts.Generate(ctx, visitorID)
	if err != nil {
		return model.Receipt{}, err
	}

	ev := q.NewReservationConfirmed(receipt, s.currency, s.now())
	if err := s.publisher.PublishReservationConfirmed(ctx, ev); err != nil {
		zap.L().Warn("publish reservation.confirmed failed",
			zap.Int64("visitor_id", visitorID), zap.Error(err))
	}
	return receipt, nil
}

// IsInputError reports whether err should make the console reprompt rather
// than abort the current flow.
func IsInputError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrAlreadySelected)
}
