package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"

	"github.com/iliyamo/galeragate-ledger/internal/model"
)

type VisitorRepository interface {
	Create(ctx context.Context, v *model.Visitor) error
	GetByID(ctx context.Context, id int64) (model.Visitor, error)
	Update(ctx context.Context, v model.Visitor) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]model.Visitor, error)
}

type SelectionRepository interface {
	Create(ctx context.Context, s *model.Selection) error
	ListByVisitor(ctx context.Context, visitorID int64) ([]model.Selection, error)
	ListAll(ctx context.Context) ([]model.Selection, error)
	Delete(ctx context.Context, visitorID int64, category, offering string) error
}

var errNotPositiveInt = errors.New("must be a positive whole number")

// VisitorService registers and maintains visitor profiles.
type VisitorService struct {
	repo       VisitorRepository
	selections SelectionRepository
}

func NewVisitorService(repo VisitorRepository, selections SelectionRepository) *VisitorService {
	return &VisitorService{
		repo:       repo,
		selections: selections,
	}
}

// Register validates the profile and stores it, returning the new id.
func (s *VisitorService) Register(ctx context.Context, in model.VisitorInput) (int64, error) {
	in = trimInput(in)
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Age, validation.Required, validation.By(positiveInt)),
	)
	if err != nil {
		return 0, invalid("%v", err)
	}
	age, _ := strconv.Atoi(in.Age)

	v := model.Visitor{
		Name:          in.Name,
		Age:           age,
		Sex:           in.Sex,
		Nationality:   in.Nationality,
		ContactNumber: in.ContactNumber,
		EntryDate:     in.EntryDate,
		ExitDate:      in.ExitDate,
	}
	if err := s.repo.Create(ctx, &v); err != nil {
		return 0, translate("s.repo.Create", err)
	}

	zap.L().Info("visitor registered", zap.Int64("visitor_id", v.ID))
	return v.ID, nil
}

func (s *VisitorService) Get(ctx context.Context, id int64) (model.Visitor, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.Visitor{}, translate("s.repo.GetByID", err)
	}
	return v, nil
}

// Update applies in over the stored profile.  Every blank field keeps its
// current value, and an age that is not a positive whole number keeps the
// current age.  Nothing is written when no field changes.
func (s *VisitorService) Update(ctx context.Context, id int64, in model.VisitorInput) (model.Visitor, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.Visitor{}, translate("s.repo.GetByID", err)
	}

	in = trimInput(in)
	next := current
	keep(&next.Name, in.Name)
	if positiveInt(in.Age) == nil {
		next.Age, _ = strconv.Atoi(in.Age)
	}
	keep(&next.Sex, in.Sex)
	keep(&next.Nationality, in.Nationality)
	keep(&next.ContactNumber, in.ContactNumber)
	keep(&next.EntryDate, in.EntryDate)
	keep(&next.ExitDate, in.ExitDate)

	if next == current {
		return current, nil
	}
	if err := s.repo.Update(ctx, next); err != nil {
		return model.Visitor{}, translate("s.repo.Update", err)
	}

	zap.L().Info("visitor updated", zap.Int64("visitor_id", id))
	return next, nil
}

// Delete removes the visitor profile.  Their selections and payments are
// kept and remain visible in reports.
func (s *VisitorService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return translate("s.repo.Delete", err)
	}
	zap.L().Info("visitor deleted", zap.Int64("visitor_id", id))
	return nil
}

func (s *VisitorService) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, translate("s.repo.Count", err)
	}
	return n, nil
}

// Directory lists every visitor with the selections they hold.
func (s *VisitorService) Directory(ctx context.Context) ([]model.VisitorSummary, error) {
	visitors, err := s.repo.List(ctx)
	if err != nil {
		return nil, translate("s.repo.List", err)
	}
	selections, err := s.selections.ListAll(ctx)
	if err != nil {
		return nil, translate("s.selections.ListAll", err)
	}

	byVisitor := make(map[int64][]model.Selection, len(visitors))
	for _, sel := range selections {
		byVisitor[sel.VisitorID] = append(byVisitor[sel.VisitorID], sel)
	}
	out := make([]model.VisitorSummary, 0, len(visitors))
	for _, v := range visitors {
		out = append(out, model.VisitorSummary{Visitor: v, Selections: byVisitor[v.ID]})
	}
	return out, nil
}

func positiveInt(value interface{}) error {
	s, _ := value.(string)
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return errNotPositiveInt
	}
	return nil
}

func keep(field *string, value string) {
	if value != "" {
		*field = value
	}
}

func trimInput(in model.VisitorInput) model.VisitorInput {
	return model.VisitorInput{
		Name:          strings.TrimSpace(in.Name),
		Age:           strings.TrimSpace(in.Age),
		Sex:           strings.TrimSpace(in.Sex),
		Nationality:   strings.TrimSpace(in.Nationality),
		ContactNumber: strings.TrimSpace(in.ContactNumber),
		EntryDate:     strings.TrimSpace(in.EntryDate),
		ExitDate:      strings.TrimSpace(in.ExitDate),
	}
}

// ValidAge reports whether s would be accepted as an age by Register.
func ValidAge(s string) bool { return positiveInt(strings.TrimSpace(s)) == nil }
