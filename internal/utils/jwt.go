package utils // package utils provides helpers for admin session tokens and password hashing

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const adminRole = "admin"

var ErrInvalidToken = errors.New("invalid admin token")

// AdminToken is a signed admin session token and its expiry.
type AdminToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // UTC expiration time
}

// AdminClaims are the claims carried by an admin session token.  Subject
// holds the admin identity (email).
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// NewAdminToken signs an HS256 token for identity that expires after ttl.
func NewAdminToken(secret, identity string, ttl time.Duration) (AdminToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := AdminClaims{
		Role: adminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return AdminToken{}, fmt.Errorf("SignedString -> %w", err)
	}
	return AdminToken{Token: signed, Exp: exp}, nil
}

// ParseAdminToken verifies the signature, expiry and role of raw.  Any
// failure is reported as ErrInvalidToken wrapping the parser's reason.
func ParseAdminToken(secret, raw string) (AdminClaims, error) {
	var claims AdminClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return AdminClaims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Role != adminRole {
		return AdminClaims{}, fmt.Errorf("%w: role %q", ErrInvalidToken, claims.Role)
	}
	return claims, nil
}

// RandomHex returns n bytes of secure random data hex encoded.  It backs
// the signing secret when none is configured.
func RandomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
