package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/galeragate-ledger/internal/repository"
)

// Error kinds returned by every service.  Callers match them with
// errors.Is; the wrapped message carries the detail.
var (
	// ErrValidation marks malformed or out-of-range input.  The console
	// reprompts on it.
	ErrValidation = errors.New("invalid input")
	// ErrNotFound marks a missing visitor, selection, payment or category.
	ErrNotFound = errors.New("not found")
	// ErrAlreadySelected marks a second add of the same selection.
	ErrAlreadySelected = errors.New("already selected")
	// ErrStore marks a persistence failure; see StoreError.
	ErrStore = errors.New("store failure")
	// ErrUnauthorized marks a rejected admin credential or session token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTooManyAttempts marks a throttled admin login.
	ErrTooManyAttempts = errors.New("too many login attempts")
)

// StoreError wraps an underlying persistence failure with the operation
// that hit it.  errors.Is(err, ErrStore) holds for every StoreError.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string        { return fmt.Sprintf("%s -> %v", e.Op, e.Err) }
func (e *StoreError) Unwrap() error        { return e.Err }
func (e *StoreError) Is(target error) bool { return target == ErrStore }

// Outcome reports how a confirmed destructive operation ended when it did
// not fail.
type Outcome int

const (
	OutcomeDone Outcome = iota
	OutcomeCancelled
)

func (o Outcome) String() string {
	if o == OutcomeCancelled {
		return "cancelled"
	}
	return "done"
}

// Confirmed reports whether token is the affirmative confirmation "yes",
// ignoring case and surrounding spaces.
func Confirmed(token string) bool {
	return strings.EqualFold(strings.TrimSpace(token), "yes")
}

// translate maps repository errors onto service error kinds.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%s -> %w", op, ErrNotFound)
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%s -> %w", op, ErrAlreadySelected)
	}
	return &StoreError{Op: op, Err: err}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
