package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/iliyamo/galeragate-ledger/internal/catalog"
	"github.com/iliyamo/galeragate-ledger/internal/model"
)

// SelectionService adds, lists and removes a visitor's catalog choices.
type SelectionService struct {
	repo    SelectionRepository
	catalog *catalog.Catalog
}

func NewSelectionService(repo SelectionRepository, c *catalog.Catalog) *SelectionService {
	return &SelectionService{
		repo:    repo,
		catalog: c,
	}
}

// Catalog returns the catalog selections are checked against.
func (s *SelectionService) Catalog() *catalog.Catalog { return s.catalog }

// Add stores the offering at the 1-based index of category for the visitor.
// A second add of the same offering fails with ErrAlreadySelected and leaves
// exactly one stored selection.
func (s *SelectionService) Add(ctx context.Context, visitorID int64, category string, index int) (model.Selection, error) {
	offering, err := s.catalog.Offering(category, index)
	if err != nil {
		return model.Selection{}, catalogErr(err)
	}

	sel := model.Selection{VisitorID: visitorID, Category: category, Offering: offering}
	if err := s.repo.Create(ctx, &sel); err != nil {
		return model.Selection{}, translate("s.repo.Create", err)
	}

	zap.L().Info("selection added",
		zap.Int64("visitor_id", visitorID), zap.String("category", category), zap.String("offering", offering))
	return sel, nil
}

// List returns the visitor's selections in the order they were added.
func (s *SelectionService) List(ctx context.Context, visitorID int64) ([]model.Selection, error) {
	selections, err := s.repo.ListByVisitor(ctx, visitorID)
	if err != nil {
		return nil, translate("s.repo.ListByVisitor", err)
	}
	return selections, nil
}

// Delete removes one selection once confirmation is "yes".  Any other
// confirmation leaves the store untouched and reports OutcomeCancelled.
// A pair that is not in the catalog is reported as ErrNotFound without a
// store round trip.
func (s *SelectionService) Delete(ctx context.Context, visitorID int64, category, offering, confirmation string) (Outcome, error) {
	if !Confirmed(confirmation) {
		return OutcomeCancelled, nil
	}
	if !s.catalog.Contains(category, offering) {
		return OutcomeDone, fmt.Errorf("%w: %s / %s is not in the catalog", ErrNotFound, category, offering)
	}
	if err := s.repo.Delete(ctx, visitorID, category, offering); err != nil {
		return OutcomeDone, translate("s.repo.Delete", err)
	}

	zap.L().Info("selection deleted",
		zap.Int64("visitor_id", visitorID), zap.String("category", category), zap.String("offering", offering))
	return OutcomeDone, nil
}

func catalogErr(err error) error {
	switch {
	case errors.Is(err, catalog.ErrUnknownCategory), errors.Is(err, catalog.ErrUnknownOffering):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, catalog.ErrIndexOutOfRange):
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return err
}
