// Package auth verifies admin credentials and throttles login attempts.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/galeragate-ledger/internal/utils"
)

// Verifier decides whether an identity/secret pair is an admin credential.
type Verifier interface {
	Verify(identity, secret string) bool
}

// BcryptVerifier accepts exactly one admin: Email (compared case-insensitively)
// with a secret matching the bcrypt Hash.  An unset email or hash rejects
// every login.
type BcryptVerifier struct {
	Email string
	Hash  string
}

func NewBcryptVerifier(email, hash string) BcryptVerifier {
	return BcryptVerifier{Email: NormalizeIdentity(email), Hash: hash}
}

func (v BcryptVerifier) Verify(identity, secret string) bool {
	if v.Email == "" || v.Hash == "" {
		return false
	}
	idOK := subtle.ConstantTimeCompare([]byte(NormalizeIdentity(identity)), []byte(v.Email)) == 1
	// always run bcrypt so timing does not reveal whether the email matched
	pwOK := utils.VerifyPassword(v.Hash, secret)
	return idOK && pwOK
}

// NormalizeIdentity lowercases and trims an email-like identity.
func NormalizeIdentity(identity string) string {
	return strings.ToLower(strings.TrimSpace(identity))
}

var ErrWeakHash = errors.New("admin password hash is below the configured bcrypt cost")

// CheckHash reports whether hash is a bcrypt hash of at least minCost.  It
// is run at startup so a malformed ADMIN_PASSWORD_HASH is noticed before the
// first login attempt silently fails.
func CheckHash(hash string, minCost int) error {
	cost, err := utils.HashCost(hash)
	if err != nil {
		return fmt.Errorf("utils.HashCost -> %w", err)
	}
	if cost < minCost {
		return fmt.Errorf("%w: cost %d < %d", ErrWeakHash, cost, minCost)
	}
	return nil
}
