package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/galeragate-ledger/internal/auth"
	"github.com/iliyamo/galeragate-ledger/internal/utils"
)

type AdminRepository interface {
	Reset(ctx context.Context) error
}

// LoginResult is returned by a successful admin login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
}

// LoginError reports a rejected credential together with how many attempts
// the identity has left before it is throttled.  Remaining is -1 when the
// limiter could not be consulted.
type LoginError struct {
	Remaining int
}

func (e *LoginError) Error() string {
	if e.Remaining < 0 {
		return "invalid email or password"
	}
	return fmt.Sprintf("invalid email or password, %d attempts left", e.Remaining)
}
func (e *LoginError) Is(target error) bool { return target == ErrUnauthorized }

// AdminService gates the admin panel and performs the administrative reset.
type AdminService struct {
	repo     AdminRepository
	verifier auth.Verifier
	limiter  auth.Limiter
	secret   string
	ttl      time.Duration
}

// NewAdminService returns the service.  An empty secret is replaced by a
// random one so tokens are only valid for the life of the process.
func NewAdminService(repo AdminRepository, verifier auth.Verifier, limiter auth.Limiter, secret string, ttl time.Duration) (*AdminService, error) {
	if secret == "" {
		s, err := utils.RandomHex(32)
		if err != nil {
			return nil, fmt.Errorf("utils.RandomHex -> %w", err)
		}
		secret = s
	}
	return &AdminService{
		repo:     repo,
		verifier: verifier,
		limiter:  limiter,
		secret:   secret,
		ttl:      ttl,
	}, nil
}

// Login checks the attempt budget for identity, verifies the credential and
// issues a session token.  A limiter backend failure lets the attempt
// through.
func (s *AdminService) Login(ctx context.Context, identity, secret string) (LoginResult, error) {
	key := auth.NormalizeIdentity(identity)

	d, err := s.limiter.Allow(ctx, key)
	if err != nil {
		zap.L().Warn("login limiter unavailable", zap.Error(err))
		d = auth.Decision{Allowed: true, Remaining: -1}
	}
	if !d.Allowed {
		zap.L().Warn("admin login throttled", zap.String("identity", key), zap.Duration("retry_after", d.RetryAfter))
		return LoginResult{}, fmt.Errorf("%w: retry in %s", ErrTooManyAttempts, d.RetryAfter.Round(time.Second))
	}

	if !s.verifier.Verify(identity, secret) {
		zap.L().Warn("admin login rejected", zap.String("identity", key))
		return LoginResult{}, &LoginError{Remaining: d.Remaining}
	}

	if err := s.limiter.Reset(ctx, key); err != nil {
		zap.L().Warn("login limiter reset failed", zap.Error(err))
	}
	tok, err := utils.NewAdminToken(s.secret, key, s.ttl)
	if err != nil {
		return LoginResult{}, fmt.Errorf("utils.NewAdminToken -> %w", err)
	}
	zap.L().Info("admin logged in", zap.String("identity", key))
	return LoginResult{Token: tok.Token, ExpiresAt: tok.Exp}, nil
}

// Authorize validates a session token issued by Login.
func (s *AdminService) Authorize(token string) error {
	if _, err := utils.ParseAdminToken(s.secret, token); err != nil {
		if errors.Is(err, utils.ErrInvalidToken) {
			return fmt.Errorf("%w: %v", ErrUnauthorized, err)
		}
		return err
	}
	return nil
}

// Reset empties visitors, selections and payments and restarts their id
// counters once confirmation is "yes".  Any other confirmation changes
// nothing and reports OutcomeCancelled.
func (s *AdminService) Reset(ctx context.Context, confirmation string) (Outcome, error) {
	if !Confirmed(confirmation) {
		return OutcomeCancelled, nil
	}
	if err := s.repo.Reset(ctx); err != nil {
		return OutcomeDone, translate("s.repo.Reset", err)
	}
	zap.L().Warn("ledger reset")
	return OutcomeDone, nil
}
