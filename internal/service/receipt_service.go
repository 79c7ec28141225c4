package service

import (
	"context"
	"errors"

	"github.com/iliyamo/galeragate-ledger/internal/model"
	"github.com/iliyamo/galeragate-ledger/internal/repository"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) error
	Latest(ctx context.Context, visitorID int64) (model.Payment, error)
	Report(ctx context.Context) ([]model.PaymentReportRow, error)
}

// ReceiptService composes a visitor's profile, selections and latest
// payment.  It only reads.
type ReceiptService struct {
	visitors   VisitorRepository
	selections SelectionRepository
	payments   PaymentRepository
}

func NewReceiptService(visitors VisitorRepository, selections SelectionRepository, payments PaymentRepository) *ReceiptService {
	return &ReceiptService{
		visitors:   visitors,
		selections: selections,
		payments:   payments,
	}
}

// Generate fails with ErrNotFound only when the visitor is missing; no
// selections and no payment are both valid receipts.
func (s *ReceiptService) Generate(ctx context.Context, visitorID int64) (model.Receipt, error) {
	v, err := s.visitors.GetByID(ctx, visitorID)
	if err != nil {
		return model.Receipt{}, translate("s.visitors.GetByID", err)
	}
	selections, err := s.selections.ListByVisitor(ctx, visitorID)
	if err != nil {
		return model.Receipt{}, translate("s.selections.ListByVisitor", err)
	}

	receipt := model.Receipt{Visitor: v, Selections: selections}
	p, err := s.payments.Latest(ctx, visitorID)
	switch {
	case err == nil:
		receipt.Payment = &p
	case !errors.Is(err, repository.ErrNotFound):
		return model.Receipt{}, translate("s.payments.Latest", err)
	}
	return receipt, nil
}
